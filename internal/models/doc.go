// Package models defines the core domain models for Greenside.
//
// # Models
//
//   - Course: A golf course the user plays, optionally carrying official
//     WHS ratings (course rating + slope rating)
//   - Score: A completed, finalized round with its computed handicap figure
//   - ActiveRound: An in-progress, resumable scorecard with per-hole strokes
//   - HoleScore: One hole on an active round's scorecard
//   - User: A registered account; everything else is keyed by its ID
//
// # Design Principles
//
// 1. **Explicit identity**: services receive the owning user ID as an
// argument; no model reads ambient session state.
//
// 2. **Frozen snapshots**: ActiveRound denormalizes the course name, hole
// count and par at round start. Editing a course later never changes a
// round already underway.
//
// 3. **Exactly one handicap figure**: a Score carries either a WHS score
// differential or a simple handicap, never both and never neither.
//
// 4. **Avoid circular references**: relationships use ID strings, not
// pointers.
package models
