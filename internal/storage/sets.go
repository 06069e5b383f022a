// ABOUTME: Workout Set CRUD operations for SQLite storage.
// ABOUTME: Supports bulk insertion used when a workout is instantiated.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/reps/internal/models"
)

const setSelect = `
	SELECT id, set_group_id, workout_id, exercise_id, idx, type, reps, weight, duration, finished_at
	FROM sets
`

// InsertSet stores a single set and sets its ID.
func (q *Queries) InsertSet(ctx context.Context, s *models.Set) error {
	query := `
		INSERT INTO sets (set_group_id, workout_id, exercise_id, idx, type, reps, weight, duration, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`
	err := q.q.QueryRowContext(ctx, query, setArgs(s)...).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("create set: %w", err)
	}
	return nil
}

// InsertSets stores many sets with one statement. IDs are not read back.
func (q *Queries) InsertSets(ctx context.Context, sets []models.Set) error {
	if len(sets) == 0 {
		return nil
	}

	placeholders := make([]string, 0, len(sets))
	args := make([]any, 0, len(sets)*9)
	for i := range sets {
		placeholders = append(placeholders, "(?, ?, ?, ?, ?, ?, ?, ?, ?)")
		args = append(args, setArgs(&sets[i])...)
	}

	query := `INSERT INTO sets (set_group_id, workout_id, exercise_id, idx, type, reps, weight, duration, finished_at) VALUES ` +
		strings.Join(placeholders, ", ")
	if _, err := q.q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create sets: %w", err)
	}
	return nil
}

func setArgs(s *models.Set) []any {
	return []any{
		s.SetGroupID, s.WorkoutID, s.ExerciseID, s.Index, string(s.Type),
		nullInt(s.Reps), nullFloat(s.Weight), nullInt(s.Duration), nullMillis(s.FinishedAt),
	}
}

// GetSet retrieves a set scoped to its workout.
func (q *Queries) GetSet(ctx context.Context, workoutID, setID int64) (*models.Set, error) {
	return scanSet(q.q.QueryRowContext(ctx, setSelect+` WHERE id = ? AND workout_id = ?`, setID, workoutID))
}

// ListSets returns a set-group's sets sorted by index.
func (q *Queries) ListSets(ctx context.Context, groupID int64) ([]models.Set, error) {
	return q.querySets(ctx, setSelect+` WHERE set_group_id = ? ORDER BY idx`, groupID)
}

// ListSetsForWorkout returns every set of a workout, unordered.
func (q *Queries) ListSetsForWorkout(ctx context.Context, workoutID int64) ([]models.Set, error) {
	return q.querySets(ctx, setSelect+` WHERE workout_id = ?`, workoutID)
}

func (q *Queries) querySets(ctx context.Context, query string, args ...any) ([]models.Set, error) {
	rows, err := q.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sets: %w", err)
	}
	defer rows.Close()

	var sets []models.Set
	for rows.Next() {
		s, err := scanSet(rows)
		if err != nil {
			return nil, err
		}
		sets = append(sets, *s)
	}
	return sets, rows.Err()
}

// UpdateSetProgress writes a set's metrics and completion time.
func (q *Queries) UpdateSetProgress(ctx context.Context, setID int64, m models.Metrics, finishedAt *time.Time) error {
	query := `UPDATE sets SET reps = ?, weight = ?, duration = ?, finished_at = ? WHERE id = ?`
	result, err := q.q.ExecContext(ctx, query,
		nullInt(m.Reps), nullFloat(m.Weight), nullInt(m.Duration), nullMillis(finishedAt), setID)
	if err != nil {
		return fmt.Errorf("update set: %w", err)
	}
	return requireAffected(result)
}

func scanSet(row rowScanner) (*models.Set, error) {
	var s models.Set
	var setType string
	var reps, duration, finishedAt sql.NullInt64
	var weight sql.NullFloat64
	err := row.Scan(&s.ID, &s.SetGroupID, &s.WorkoutID, &s.ExerciseID, &s.Index, &setType,
		&reps, &weight, &duration, &finishedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan set: %w", err)
	}
	s.Type = models.SetType(setType)
	s.Reps = intPtr(reps)
	s.Weight = floatPtr(weight)
	s.Duration = intPtr(duration)
	s.FinishedAt = timePtr(finishedAt)
	return &s, nil
}
