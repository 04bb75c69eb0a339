package sqlite

import "database/sql"

// migrations contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
// IMPORTANT: courses must be created BEFORE scores and active_rounds due
// to foreign key constraints.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    display_name TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS courses (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    name TEXT NOT NULL,
    holes INTEGER NOT NULL,
    par INTEGER NOT NULL,
    course_rating REAL,
    slope_rating INTEGER,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS scores (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    course_id TEXT NOT NULL,
    total INTEGER NOT NULL,
    date TEXT NOT NULL,
    score_differential REAL,
    simple_handicap REAL,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (course_id) REFERENCES courses(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS active_rounds (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    course_id TEXT NOT NULL,
    course_name TEXT NOT NULL,
    course_holes INTEGER NOT NULL,
    course_par INTEGER NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS active_round_holes (
    round_id TEXT NOT NULL,
    hole INTEGER NOT NULL,
    par INTEGER NOT NULL,
    strokes INTEGER,
    PRIMARY KEY (round_id, hole),
    FOREIGN KEY (round_id) REFERENCES active_rounds(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_courses_user_id ON courses(user_id);
CREATE INDEX IF NOT EXISTS idx_scores_user_id ON scores(user_id);
CREATE INDEX IF NOT EXISTS idx_scores_date ON scores(user_id, date);
CREATE INDEX IF NOT EXISTS idx_active_rounds_user_id ON active_rounds(user_id);
CREATE INDEX IF NOT EXISTS idx_active_round_holes_round_id ON active_round_holes(round_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
