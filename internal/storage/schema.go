// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines exercises, the template hierarchy and the workout hierarchy.
package storage

import "fmt"

// schemaStatements are executed in order; each is idempotent.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS exercises (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		measured_in TEXT NOT NULL CHECK (measured_in IN ('duration', 'reps', 'reps_and_weight')),
		created_at INTEGER NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_exercises_name ON exercises(lower(trim(name)))`,

	`CREATE TABLE IF NOT EXISTS templates (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		created_at INTEGER NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS template_set_groups (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		template_id INTEGER NOT NULL REFERENCES templates(id) ON DELETE CASCADE,
		exercise_id INTEGER NOT NULL REFERENCES exercises(id),
		idx INTEGER NOT NULL CHECK (idx >= 0),
		rest_duration_seconds INTEGER NOT NULL DEFAULT 150 CHECK (rest_duration_seconds >= 0),
		is_superset INTEGER NOT NULL DEFAULT 0 CHECK (is_superset IN (0, 1)),
		UNIQUE (template_id, idx)
	)`,

	`CREATE TABLE IF NOT EXISTS template_sets (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		template_set_group_id INTEGER NOT NULL REFERENCES template_set_groups(id) ON DELETE CASCADE,
		template_id INTEGER NOT NULL REFERENCES templates(id) ON DELETE CASCADE,
		exercise_id INTEGER NOT NULL REFERENCES exercises(id),
		idx INTEGER NOT NULL CHECK (idx >= 0),
		type TEXT NOT NULL DEFAULT 'working' CHECK (type IN ('warmup', 'working')),
		UNIQUE (template_set_group_id, idx)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_template_sets_template ON template_sets(template_id)`,

	`CREATE TABLE IF NOT EXISTS workouts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		template_id INTEGER NOT NULL REFERENCES templates(id) ON DELETE RESTRICT,
		started_at INTEGER NOT NULL,
		finished_at INTEGER
	)`,
	`CREATE INDEX IF NOT EXISTS idx_workouts_template ON workouts(template_id)`,
	`CREATE INDEX IF NOT EXISTS idx_workouts_started ON workouts(started_at)`,

	`CREATE TABLE IF NOT EXISTS set_groups (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		workout_id INTEGER NOT NULL REFERENCES workouts(id) ON DELETE CASCADE,
		exercise_id INTEGER NOT NULL REFERENCES exercises(id),
		idx INTEGER NOT NULL CHECK (idx >= 0),
		rest_duration_seconds INTEGER NOT NULL DEFAULT 150 CHECK (rest_duration_seconds >= 0),
		is_superset INTEGER NOT NULL DEFAULT 0 CHECK (is_superset IN (0, 1)),
		UNIQUE (workout_id, idx)
	)`,

	`CREATE TABLE IF NOT EXISTS sets (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		set_group_id INTEGER NOT NULL REFERENCES set_groups(id) ON DELETE CASCADE,
		workout_id INTEGER NOT NULL REFERENCES workouts(id) ON DELETE CASCADE,
		exercise_id INTEGER NOT NULL REFERENCES exercises(id),
		idx INTEGER NOT NULL CHECK (idx >= 0),
		type TEXT NOT NULL DEFAULT 'working' CHECK (type IN ('warmup', 'working')),
		reps INTEGER CHECK (reps IS NULL OR reps > 0),
		weight REAL CHECK (weight IS NULL OR weight > 0),
		duration INTEGER CHECK (duration IS NULL OR duration > 0),
		finished_at INTEGER,
		UNIQUE (set_group_id, idx)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sets_workout ON sets(workout_id)`,
}

// initSchema creates or updates the database schema.
func (d *DB) initSchema() error {
	for _, stmt := range schemaStatements {
		if _, err := d.db.Exec(stmt); err != nil {
			return fmt.Errorf("execute schema statement: %w", err)
		}
	}
	return nil
}
