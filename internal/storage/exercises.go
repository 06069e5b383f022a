// ABOUTME: Exercise catalog CRUD operations for SQLite storage.
// ABOUTME: Names are unique case-insensitively through an expression index.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/harperreed/reps/internal/models"
)

const exerciseColumns = `id, name, measured_in, created_at`

// CreateExercise stores a new exercise and sets its ID.
func (q *Queries) CreateExercise(ctx context.Context, e *models.Exercise) error {
	query := `
		INSERT INTO exercises (name, measured_in, created_at)
		VALUES (?, ?, ?)
		RETURNING id
	`
	err := q.q.QueryRowContext(ctx, query, e.Name, string(e.MeasuredIn), toMillis(e.CreatedAt)).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("create exercise: %w", err)
	}
	return nil
}

// GetExercise retrieves an exercise by ID.
func (q *Queries) GetExercise(ctx context.Context, id int64) (*models.Exercise, error) {
	query := `SELECT ` + exerciseColumns + ` FROM exercises WHERE id = ?`
	return scanExercise(q.q.QueryRowContext(ctx, query, id))
}

// FindExerciseByName looks an exercise up ignoring case and surrounding space.
func (q *Queries) FindExerciseByName(ctx context.Context, name string) (*models.Exercise, error) {
	query := `SELECT ` + exerciseColumns + ` FROM exercises WHERE lower(trim(name)) = lower(trim(?))`
	return scanExercise(q.q.QueryRowContext(ctx, query, name))
}

// ListExercises returns every exercise sorted by name.
func (q *Queries) ListExercises(ctx context.Context) ([]models.Exercise, error) {
	query := `SELECT ` + exerciseColumns + ` FROM exercises ORDER BY name`
	rows, err := q.q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	defer rows.Close()

	var exercises []models.Exercise
	for rows.Next() {
		e, err := scanExercise(rows)
		if err != nil {
			return nil, err
		}
		exercises = append(exercises, *e)
	}
	return exercises, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExercise(row rowScanner) (*models.Exercise, error) {
	var e models.Exercise
	var measuredIn string
	var createdAt int64
	if err := row.Scan(&e.ID, &e.Name, &measuredIn, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan exercise: %w", err)
	}
	e.MeasuredIn = models.MeasuredIn(measuredIn)
	e.CreatedAt = fromMillis(createdAt)
	return &e, nil
}
