package round

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/greenside/greenside/internal/models"
	"github.com/greenside/greenside/internal/storage"
)

// fakeScheduler captures the debounce callback so tests fire it
// deterministically instead of waiting on the wall clock.
type fakeScheduler struct {
	fn        func()
	scheduled int
}

func (f *fakeScheduler) Schedule(fn func()) {
	f.fn = fn
	f.scheduled++
}

func (f *fakeScheduler) Stop() bool {
	had := f.fn != nil
	f.fn = nil
	return had
}

// Fire runs the pending callback, as the real timer would after the
// debounce window.
func (f *fakeScheduler) Fire() {
	fn := f.fn
	f.fn = nil
	if fn != nil {
		fn()
	}
}

// fakeStore is an in-memory round store with injectable failures.
type fakeStore struct {
	rounds      map[string]models.ActiveRound
	upserts     int
	nextID      int
	failUpserts int
	failDeletes int
}

func newFakeStore() *fakeStore {
	return &fakeStore{rounds: make(map[string]models.ActiveRound)}
}

func (f *fakeStore) UpsertActiveRound(_ context.Context, round *models.ActiveRound) error {
	if f.failUpserts > 0 {
		f.failUpserts--
		return errors.New("store unavailable")
	}
	if round.ID == "" {
		f.nextID++
		round.ID = fmt.Sprintf("round-%d", f.nextID)
	}
	stored := *round
	stored.Holes = append([]models.HoleScore(nil), round.Holes...)
	f.rounds[round.ID] = stored
	f.upserts++
	return nil
}

func (f *fakeStore) DeleteActiveRound(_ context.Context, roundID string) error {
	if f.failDeletes > 0 {
		f.failDeletes--
		return errors.New("store unavailable")
	}
	if _, ok := f.rounds[roundID]; !ok {
		return storage.ErrNotFound
	}
	delete(f.rounds, roundID)
	return nil
}

// fakeSink collects completed scores with injectable failures.
type fakeSink struct {
	scores      []models.Score
	failInserts int
}

func (f *fakeSink) InsertScore(_ context.Context, score *models.Score) error {
	if f.failInserts > 0 {
		f.failInserts--
		return errors.New("sink unavailable")
	}
	f.scores = append(f.scores, *score)
	return nil
}

func iptr(v int) *int         { return &v }
func fptr(v float64) *float64 { return &v }

func unratedCourse() models.Course {
	return models.Course{ID: "c1", UserID: "u1", Name: "Pay & Play", Holes: 9, Par: 36}
}

func ratedCourse() models.Course {
	return models.Course{
		ID: "c2", UserID: "u1", Name: "Championship", Holes: 18, Par: 72,
		CourseRating: fptr(72.5), SlopeRating: iptr(130),
	}
}

func newTestSession(t *testing.T) (*Session, *fakeStore, *fakeSink, *fakeScheduler) {
	t.Helper()
	store := newFakeStore()
	sink := &fakeSink{}
	sched := &fakeScheduler{}
	sess := NewSession("u1", store, sink, WithFlushScheduler(sched), WithRetryDelay(0))
	return sess, store, sink, sched
}

func fillAll(t *testing.T, sess *Session, strokes int) {
	t.Helper()
	snap := sess.Snapshot()
	for _, h := range snap.Holes {
		if err := sess.EnterStroke(h.Hole, iptr(strokes)); err != nil {
			t.Fatalf("EnterStroke(%d) failed: %v", h.Hole, err)
		}
	}
}

func TestSelectCourseBuildsScorecard(t *testing.T) {
	tests := []struct {
		name    string
		holes   int
		par     int
		wantPar int
	}{
		{"18 holes par 72 divides evenly", 18, 72, 4},
		{"9 holes par 36 divides evenly", 9, 36, 4},
		{"18 holes par 71 rounds to 4", 18, 71, 4},
		{"9 holes par 31 rounds down to 3", 9, 31, 3},
		{"4 holes par 10 rounds half up to 3", 4, 10, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess, _, _, _ := newTestSession(t)
			course := models.Course{ID: "c1", Holes: tt.holes, Par: tt.par}

			if err := sess.SelectCourse(context.Background(), course); err != nil {
				t.Fatalf("SelectCourse failed: %v", err)
			}

			snap := sess.Snapshot()
			if len(snap.Holes) != tt.holes {
				t.Fatalf("got %d holes, want %d", len(snap.Holes), tt.holes)
			}
			for i, h := range snap.Holes {
				if h.Hole != i+1 {
					t.Errorf("hole %d numbered %d", i, h.Hole)
				}
				if h.Par != tt.wantPar {
					t.Errorf("hole %d par = %d, want %d", h.Hole, h.Par, tt.wantPar)
				}
				if h.Strokes != nil {
					t.Errorf("hole %d has strokes before any entry", h.Hole)
				}
			}
			if snap.ID != "" {
				t.Errorf("fresh selection already has persisted identity %q", snap.ID)
			}
			if sess.State() != StateInProgress {
				t.Errorf("state = %v, want %v", sess.State(), StateInProgress)
			}
		})
	}
}

func TestSelectCourseStashesPersistedRound(t *testing.T) {
	sess, store, _, sched := newTestSession(t)
	if err := sess.SelectCourse(context.Background(), unratedCourse()); err != nil {
		t.Fatalf("SelectCourse failed: %v", err)
	}
	if err := sess.EnterStroke(1, iptr(5)); err != nil {
		t.Fatalf("EnterStroke failed: %v", err)
	}
	sched.Fire()
	if err := sess.EnterStroke(2, iptr(4)); err != nil {
		t.Fatalf("EnterStroke failed: %v", err)
	}

	// Switching courses flushes the pending entry so the persisted round
	// stays resumable at its latest state.
	if err := sess.SelectCourse(context.Background(), ratedCourse()); err != nil {
		t.Fatalf("Second SelectCourse failed: %v", err)
	}

	if len(store.rounds) != 1 {
		t.Fatalf("store holds %d rounds, want the stashed round", len(store.rounds))
	}
	for _, stored := range store.rounds {
		if stored.CourseID != "c1" {
			t.Errorf("stashed round course = %s, want c1", stored.CourseID)
		}
		if stored.Holes[1].Strokes == nil || *stored.Holes[1].Strokes != 4 {
			t.Errorf("stashed hole 2 strokes = %v, want 4", stored.Holes[1].Strokes)
		}
	}

	if got := sess.Snapshot().CourseID; got != "c2" {
		t.Errorf("live round course = %s, want c2", got)
	}
}

func TestSelectCourseDropsUnsavedRound(t *testing.T) {
	sess, store, _, _ := newTestSession(t)
	if err := sess.SelectCourse(context.Background(), unratedCourse()); err != nil {
		t.Fatalf("SelectCourse failed: %v", err)
	}
	if err := sess.EnterStroke(1, iptr(5)); err != nil {
		t.Fatalf("EnterStroke failed: %v", err)
	}

	// No persisted identity yet, so the selection is replaced outright.
	if err := sess.SelectCourse(context.Background(), ratedCourse()); err != nil {
		t.Fatalf("Second SelectCourse failed: %v", err)
	}

	if len(store.rounds) != 0 {
		t.Errorf("unsaved selection was persisted: %d rounds", len(store.rounds))
	}
	if got := sess.Snapshot().CourseID; got != "c2" {
		t.Errorf("live round course = %s, want c2", got)
	}
}

func TestDebounceCoalescesEntries(t *testing.T) {
	sess, store, _, sched := newTestSession(t)
	if err := sess.SelectCourse(context.Background(), unratedCourse()); err != nil {
		t.Fatalf("SelectCourse failed: %v", err)
	}

	// Nine rapid entries inside the debounce window.
	for hole := 1; hole <= 9; hole++ {
		if err := sess.EnterStroke(hole, iptr(hole + 2)); err != nil {
			t.Fatalf("EnterStroke failed: %v", err)
		}
	}

	if store.upserts != 0 {
		t.Fatalf("store written before debounce fired: %d upserts", store.upserts)
	}
	if sched.scheduled != 9 {
		t.Errorf("timer rearmed %d times, want 9", sched.scheduled)
	}

	sched.Fire()

	if store.upserts != 1 {
		t.Fatalf("got %d upserts, want exactly 1", store.upserts)
	}
	for _, stored := range store.rounds {
		for i, h := range stored.Holes {
			want := i + 3
			if h.Strokes == nil || *h.Strokes != want {
				t.Errorf("persisted hole %d strokes = %v, want %d", h.Hole, h.Strokes, want)
			}
		}
	}
}

func TestFlushBindsIdentityOnce(t *testing.T) {
	sess, store, _, sched := newTestSession(t)
	if err := sess.SelectCourse(context.Background(), unratedCourse()); err != nil {
		t.Fatalf("SelectCourse failed: %v", err)
	}

	sess.EnterStroke(1, iptr(4))
	sched.Fire()
	firstID := sess.Snapshot().ID
	if firstID == "" {
		t.Fatal("no identity bound after first flush")
	}

	sess.EnterStroke(2, iptr(5))
	sched.Fire()

	if got := sess.Snapshot().ID; got != firstID {
		t.Errorf("identity changed across flushes: %q then %q", firstID, got)
	}
	if len(store.rounds) != 1 {
		t.Errorf("store holds %d rounds, want 1 (insert-then-update)", len(store.rounds))
	}
}

func TestCompleteRefusedWhileIncomplete(t *testing.T) {
	sess, _, sink, _ := newTestSession(t)
	if err := sess.SelectCourse(context.Background(), unratedCourse()); err != nil {
		t.Fatalf("SelectCourse failed: %v", err)
	}

	for filled := 0; filled < 9; filled++ {
		_, err := sess.Complete(context.Background(), "2026-09-01")
		var incomplete *IncompleteRoundError
		if !errors.As(err, &incomplete) {
			t.Fatalf("Complete with %d filled holes: err = %v, want IncompleteRoundError", filled, err)
		}
		if incomplete.Remaining != 9-filled {
			t.Errorf("Remaining = %d, want %d", incomplete.Remaining, 9-filled)
		}
		if sess.State() != StateInProgress {
			t.Fatalf("refused completion changed state to %v", sess.State())
		}
		sess.EnterStroke(filled+1, iptr(5))
	}

	if len(sink.scores) != 0 {
		t.Errorf("scores emitted despite refusals: %d", len(sink.scores))
	}
}

func TestCompleteRejectsMalformedDate(t *testing.T) {
	sess, _, sink, _ := newTestSession(t)
	if err := sess.SelectCourse(context.Background(), unratedCourse()); err != nil {
		t.Fatalf("SelectCourse failed: %v", err)
	}
	for hole := 1; hole <= 9; hole++ {
		sess.EnterStroke(hole, iptr(5))
	}

	for _, date := range []string{"06/01/2026", "2026-13-40", "yesterday"} {
		if _, err := sess.Complete(context.Background(), date); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("Complete(%q) err = %v, want ErrInvalidDate", date, err)
		}
	}
	if sess.State() != StateInProgress {
		t.Fatalf("refused completion changed state to %v", sess.State())
	}
	if len(sink.scores) != 0 {
		t.Errorf("scores emitted despite refusals: %d", len(sink.scores))
	}

	if _, err := sess.Complete(context.Background(), "2026-09-01"); err != nil {
		t.Fatalf("Complete with valid date failed: %v", err)
	}
}

func TestCompleteSimpleMethod(t *testing.T) {
	sess, store, sink, sched := newTestSession(t)
	if err := sess.SelectCourse(context.Background(), unratedCourse()); err != nil {
		t.Fatalf("SelectCourse failed: %v", err)
	}

	// 9 holes, total 50 on par 36: simple handicap (50-36)*18/9 = 28.0.
	for hole := 1; hole <= 8; hole++ {
		sess.EnterStroke(hole, iptr(6))
	}
	sess.EnterStroke(9, iptr(2))
	sched.Fire()
	boundID := sess.Snapshot().ID

	score, err := sess.Complete(context.Background(), "2026-09-01")
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	if score.Total != 50 {
		t.Errorf("Total = %d, want 50", score.Total)
	}
	if score.SimpleHandicap == nil || *score.SimpleHandicap != 28.0 {
		t.Errorf("SimpleHandicap = %v, want 28.0", score.SimpleHandicap)
	}
	if score.ScoreDifferential != nil {
		t.Errorf("ScoreDifferential = %v, want nil", *score.ScoreDifferential)
	}
	if len(sink.scores) != 1 {
		t.Fatalf("sink received %d scores, want 1", len(sink.scores))
	}
	if _, ok := store.rounds[boundID]; ok {
		t.Error("persisted round survived completion")
	}
	if sess.State() != StateCompleted {
		t.Errorf("state = %v, want %v", sess.State(), StateCompleted)
	}
}

func TestCompleteWHSMethod(t *testing.T) {
	sess, _, _, _ := newTestSession(t)
	if err := sess.SelectCourse(context.Background(), ratedCourse()); err != nil {
		t.Fatalf("SelectCourse failed: %v", err)
	}

	// 18 holes totalling 85 on CR 72.5 / SR 130:
	// (85 - 72.5) * 113 / 130 = 10.865..., rounds to 10.9.
	for hole := 1; hole <= 16; hole++ {
		sess.EnterStroke(hole, iptr(5))
	}
	sess.EnterStroke(17, iptr(2))
	sess.EnterStroke(18, iptr(3))

	score, err := sess.Complete(context.Background(), "2026-09-01")
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if score.Total != 85 {
		t.Errorf("Total = %d, want 85", score.Total)
	}
	if score.ScoreDifferential == nil || *score.ScoreDifferential != 10.9 {
		t.Errorf("ScoreDifferential = %v, want 10.9", score.ScoreDifferential)
	}
	if score.SimpleHandicap != nil {
		t.Errorf("SimpleHandicap = %v, want nil", *score.SimpleHandicap)
	}
}

func TestCompleteUsesLatestEntriesOverPendingFlush(t *testing.T) {
	sess, store, sink, sched := newTestSession(t)
	if err := sess.SelectCourse(context.Background(), unratedCourse()); err != nil {
		t.Fatalf("SelectCourse failed: %v", err)
	}

	fillAll(t, sess, 5)
	sched.Fire() // persist 5s everywhere, identity bound

	// Correct the last hole; the debounced write for it is still pending
	// when Complete runs.
	sess.EnterStroke(9, iptr(8))
	if sched.fn == nil {
		t.Fatal("no pending flush to race against")
	}

	score, err := sess.Complete(context.Background(), "2026-09-01")
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	if score.Total != 8*5+8 {
		t.Errorf("Total = %d, want %d (latest in-memory entries)", score.Total, 8*5+8)
	}
	if sched.fn != nil {
		t.Error("pending flush not cancelled by completion")
	}
	if len(store.rounds) != 0 {
		t.Error("persisted round survived completion")
	}
	if len(sink.scores) != 1 {
		t.Errorf("sink received %d scores, want 1", len(sink.scores))
	}
}

func TestPauseKeepsPersistedRound(t *testing.T) {
	sess, store, _, _ := newTestSession(t)
	if err := sess.SelectCourse(context.Background(), unratedCourse()); err != nil {
		t.Fatalf("SelectCourse failed: %v", err)
	}

	sess.EnterStroke(1, iptr(4))
	sess.EnterStroke(2, iptr(5))
	// Pending debounce must still reach the store even though the user is
	// leaving the scorecard.
	if err := sess.Pause(context.Background()); err != nil {
		t.Fatalf("Pause failed: %v", err)
	}

	if sess.State() != StateNoCourse {
		t.Errorf("state = %v, want %v", sess.State(), StateNoCourse)
	}
	if len(store.rounds) != 1 {
		t.Fatalf("store holds %d rounds after pause, want 1", len(store.rounds))
	}
	for _, stored := range store.rounds {
		if stored.Holes[0].Strokes == nil || *stored.Holes[0].Strokes != 4 {
			t.Errorf("persisted hole 1 = %v, want 4", stored.Holes[0].Strokes)
		}
		if stored.Holes[1].Strokes == nil || *stored.Holes[1].Strokes != 5 {
			t.Errorf("persisted hole 2 = %v, want 5", stored.Holes[1].Strokes)
		}
	}
}

func TestPauseResumeRoundTrip(t *testing.T) {
	// A paused-and-resumed round must complete to the same score as one
	// that was never paused.
	playedStrokes := []int{5, 6, 4, 7, 5, 5, 6, 4, 8}

	direct, _, directSink, _ := newTestSession(t)
	if err := direct.SelectCourse(context.Background(), unratedCourse()); err != nil {
		t.Fatalf("SelectCourse failed: %v", err)
	}
	for i, s := range playedStrokes {
		direct.EnterStroke(i+1, iptr(s))
	}
	want, err := direct.Complete(context.Background(), "2026-09-01")
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	paused, store, pausedSink, _ := newTestSession(t)
	if err := paused.SelectCourse(context.Background(), unratedCourse()); err != nil {
		t.Fatalf("SelectCourse failed: %v", err)
	}
	for i, s := range playedStrokes[:4] {
		paused.EnterStroke(i+1, iptr(s))
	}
	if err := paused.Pause(context.Background()); err != nil {
		t.Fatalf("Pause failed: %v", err)
	}

	var persisted models.ActiveRound
	for _, r := range store.rounds {
		persisted = r
	}
	course := unratedCourse()
	if err := paused.Resume(context.Background(), persisted, &course); err != nil {
		t.Fatalf("Resume failed: %v", err)
	}
	for i, s := range playedStrokes[4:] {
		paused.EnterStroke(i+5, iptr(s))
	}
	got, err := paused.Complete(context.Background(), "2026-09-01")
	if err != nil {
		t.Fatalf("Complete after resume failed: %v", err)
	}

	ignoreIDs := cmpopts.IgnoreFields(models.Score{}, "ID", "CreatedAt")
	if diff := cmp.Diff(want, got, ignoreIDs); diff != "" {
		t.Errorf("score differs from unpaused round (-want +got):\n%s", diff)
	}
	if len(directSink.scores) != 1 || len(pausedSink.scores) != 1 {
		t.Errorf("sinks received %d and %d scores, want 1 each",
			len(directSink.scores), len(pausedSink.scores))
	}
	if len(store.rounds) != 0 {
		t.Error("persisted round survived completion after resume")
	}
}

func TestResumeIsVerbatim(t *testing.T) {
	sess, _, _, _ := newTestSession(t)

	// A persisted round whose per-hole pars do not match what a fresh
	// derivation would produce. They are authoritative and must be kept.
	persisted := models.ActiveRound{
		ID: "round-7", UserID: "u1", CourseID: "c1",
		CourseName: "Old Layout", CourseHoles: 3, CoursePar: 12,
		Holes: []models.HoleScore{
			{Hole: 1, Par: 3, Strokes: iptr(4)},
			{Hole: 2, Par: 5, Strokes: nil},
			{Hole: 3, Par: 4, Strokes: iptr(3)},
		},
		CreatedAt: 1700000000,
	}

	if err := sess.Resume(context.Background(), persisted, nil); err != nil {
		t.Fatalf("Resume failed: %v", err)
	}

	snap := sess.Snapshot()
	if diff := cmp.Diff(persisted, *snap); diff != "" {
		t.Errorf("resumed round mutated (-persisted +resumed):\n%s", diff)
	}
	if sess.State() != StateInProgress {
		t.Errorf("state = %v, want %v", sess.State(), StateInProgress)
	}
}

func TestResumeWithoutCourseFallsBackToSimple(t *testing.T) {
	sess, _, _, _ := newTestSession(t)
	persisted := models.ActiveRound{
		ID: "round-9", UserID: "u1", CourseID: "gone",
		CourseName: "Deleted Course", CourseHoles: 9, CoursePar: 36,
		Holes: make([]models.HoleScore, 9),
	}
	for i := range persisted.Holes {
		persisted.Holes[i] = models.HoleScore{Hole: i + 1, Par: 4}
	}

	// Course record no longer exists: ratings unavailable.
	if err := sess.Resume(context.Background(), persisted, nil); err != nil {
		t.Fatalf("Resume failed: %v", err)
	}
	fillAll(t, sess, 6) // total 54

	score, err := sess.Complete(context.Background(), "2026-09-01")
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if score.SimpleHandicap == nil || *score.SimpleHandicap != 36.0 {
		t.Errorf("SimpleHandicap = %v, want 36.0", score.SimpleHandicap)
	}
}

func TestDiscardDeletesPersistedRound(t *testing.T) {
	sess, store, sink, sched := newTestSession(t)
	if err := sess.SelectCourse(context.Background(), unratedCourse()); err != nil {
		t.Fatalf("SelectCourse failed: %v", err)
	}
	sess.EnterStroke(1, iptr(4))
	sched.Fire()
	boundID := sess.Snapshot().ID
	if boundID == "" {
		t.Fatal("no identity bound")
	}

	if err := sess.Discard(context.Background()); err != nil {
		t.Fatalf("Discard failed: %v", err)
	}

	if _, ok := store.rounds[boundID]; ok {
		t.Error("discarded round still in store")
	}
	if sess.State() != StateDiscarded {
		t.Errorf("state = %v, want %v", sess.State(), StateDiscarded)
	}
	if len(sink.scores) != 0 {
		t.Errorf("discard emitted %d scores", len(sink.scores))
	}
}

func TestDiscardTreatsMissingRoundAsGone(t *testing.T) {
	sess, store, _, sched := newTestSession(t)
	if err := sess.SelectCourse(context.Background(), unratedCourse()); err != nil {
		t.Fatalf("SelectCourse failed: %v", err)
	}
	sess.EnterStroke(1, iptr(4))
	sched.Fire()

	// Someone else already removed the persisted copy.
	delete(store.rounds, sess.Snapshot().ID)

	if err := sess.Discard(context.Background()); err != nil {
		t.Fatalf("Discard of already-gone round failed: %v", err)
	}
	if sess.State() != StateDiscarded {
		t.Errorf("state = %v, want %v", sess.State(), StateDiscarded)
	}
}

func TestAutosaveFailureKeepsEntries(t *testing.T) {
	sess, store, _, sched := newTestSession(t)
	if err := sess.SelectCourse(context.Background(), unratedCourse()); err != nil {
		t.Fatalf("SelectCourse failed: %v", err)
	}
	sess.EnterStroke(1, iptr(4))

	store.failUpserts = persistAttempts // every retry fails
	sched.Fire()

	snap := sess.Snapshot()
	if snap.Holes[0].Strokes == nil || *snap.Holes[0].Strokes != 4 {
		t.Fatalf("entries lost after failed autosave: %v", snap.Holes[0].Strokes)
	}
	if sess.State() != StateInProgress {
		t.Errorf("state = %v, want %v", sess.State(), StateInProgress)
	}

	// The next successful flush catches up.
	sess.EnterStroke(2, iptr(5))
	sched.Fire()
	if store.upserts != 1 {
		t.Fatalf("got %d successful upserts, want 1", store.upserts)
	}
}

func TestFlushRetriesTransientFailure(t *testing.T) {
	sess, store, _, _ := newTestSession(t)
	if err := sess.SelectCourse(context.Background(), unratedCourse()); err != nil {
		t.Fatalf("SelectCourse failed: %v", err)
	}
	sess.EnterStroke(1, iptr(4))

	store.failUpserts = persistAttempts - 1 // last attempt succeeds
	if err := sess.FlushNow(context.Background()); err != nil {
		t.Fatalf("FlushNow failed despite retry budget: %v", err)
	}
	if store.upserts != 1 {
		t.Errorf("got %d upserts, want 1", store.upserts)
	}
}

func TestCompleteFailureLeavesRoundRetryable(t *testing.T) {
	sess, _, sink, _ := newTestSession(t)
	if err := sess.SelectCourse(context.Background(), unratedCourse()); err != nil {
		t.Fatalf("SelectCourse failed: %v", err)
	}
	fillAll(t, sess, 5)

	sink.failInserts = persistAttempts
	if _, err := sess.Complete(context.Background(), "2026-09-01"); err == nil {
		t.Fatal("Complete succeeded with sink down")
	}
	if sess.State() != StateInProgress {
		t.Fatalf("failed completion changed state to %v", sess.State())
	}

	score, err := sess.Complete(context.Background(), "2026-09-01")
	if err != nil {
		t.Fatalf("retried Complete failed: %v", err)
	}
	if score.Total != 45 {
		t.Errorf("Total = %d, want 45", score.Total)
	}
}

func TestEnterStrokeValidation(t *testing.T) {
	sess, _, _, _ := newTestSession(t)

	if err := sess.EnterStroke(1, iptr(4)); !errors.Is(err, ErrNoCourseSelected) {
		t.Errorf("EnterStroke before selection: err = %v, want ErrNoCourseSelected", err)
	}

	if err := sess.SelectCourse(context.Background(), unratedCourse()); err != nil {
		t.Fatalf("SelectCourse failed: %v", err)
	}

	if err := sess.EnterStroke(0, iptr(4)); !errors.Is(err, ErrInvalidHole) {
		t.Errorf("hole 0: err = %v, want ErrInvalidHole", err)
	}
	if err := sess.EnterStroke(10, iptr(4)); !errors.Is(err, ErrInvalidHole) {
		t.Errorf("hole 10 of 9: err = %v, want ErrInvalidHole", err)
	}
	if err := sess.EnterStroke(1, iptr(0)); !errors.Is(err, ErrInvalidStrokes) {
		t.Errorf("zero strokes: err = %v, want ErrInvalidStrokes", err)
	}

	// nil clears an entry.
	sess.EnterStroke(1, iptr(4))
	if err := sess.EnterStroke(1, nil); err != nil {
		t.Fatalf("clearing entry failed: %v", err)
	}
	if got := sess.Snapshot().Holes[0].Strokes; got != nil {
		t.Errorf("hole 1 strokes = %v after clear, want nil", *got)
	}
	_, _, filledHoles := sess.Totals()
	if filledHoles != 0 {
		t.Errorf("filled holes = %d after clear, want 0", filledHoles)
	}
}

func TestTerminalStatesRejectOperations(t *testing.T) {
	sess, _, _, _ := newTestSession(t)
	if err := sess.SelectCourse(context.Background(), unratedCourse()); err != nil {
		t.Fatalf("SelectCourse failed: %v", err)
	}
	fillAll(t, sess, 5)
	if _, err := sess.Complete(context.Background(), "2026-09-01"); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	if err := sess.EnterStroke(1, iptr(4)); !errors.Is(err, ErrNoCourseSelected) {
		t.Errorf("EnterStroke after completion: err = %v", err)
	}
	if err := sess.SelectCourse(context.Background(), unratedCourse()); !errors.Is(err, ErrRoundFinished) {
		t.Errorf("SelectCourse after completion: err = %v, want ErrRoundFinished", err)
	}
	if _, err := sess.Complete(context.Background(), ""); !errors.Is(err, ErrNoCourseSelected) {
		t.Errorf("second Complete: err = %v", err)
	}
	if err := sess.Discard(context.Background()); !errors.Is(err, ErrNoCourseSelected) {
		t.Errorf("Discard after completion: err = %v", err)
	}
}

func TestTotals(t *testing.T) {
	sess, _, _, _ := newTestSession(t)
	if err := sess.SelectCourse(context.Background(), unratedCourse()); err != nil {
		t.Fatalf("SelectCourse failed: %v", err)
	}

	sess.EnterStroke(1, iptr(5))
	sess.EnterStroke(2, iptr(3))

	strokes, par, filledHoles := sess.Totals()
	if strokes != 8 {
		t.Errorf("strokes = %d, want 8", strokes)
	}
	if par != 36 {
		t.Errorf("par = %d, want 36", par)
	}
	if filledHoles != 2 {
		t.Errorf("filled = %d, want 2", filledHoles)
	}
}
