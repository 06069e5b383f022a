// ABOUTME: Workout and SetGroup CRUD operations for SQLite storage.
// ABOUTME: Deleting a workout cascades to its set-groups and sets.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/harperreed/reps/internal/models"
)

// InsertWorkout stores a new workout and sets its ID.
func (q *Queries) InsertWorkout(ctx context.Context, w *models.Workout) error {
	query := `INSERT INTO workouts (template_id, started_at, finished_at) VALUES (?, ?, ?) RETURNING id`
	err := q.q.QueryRowContext(ctx, query, w.TemplateID, toMillis(w.StartedAt), nullMillis(w.FinishedAt)).Scan(&w.ID)
	if err != nil {
		return fmt.Errorf("create workout: %w", err)
	}
	return nil
}

const workoutSelect = `
	SELECT w.id, w.template_id, w.started_at, w.finished_at, t.name
	FROM workouts w
	JOIN templates t ON t.id = w.template_id
`

// GetWorkout retrieves a workout row and its template summary, without set-groups.
func (q *Queries) GetWorkout(ctx context.Context, id int64) (*models.Workout, error) {
	return scanWorkout(q.q.QueryRowContext(ctx, workoutSelect+` WHERE w.id = ?`, id))
}

// CurrentWorkout returns the most recently started unfinished workout.
func (q *Queries) CurrentWorkout(ctx context.Context) (*models.Workout, error) {
	query := workoutSelect + ` WHERE w.finished_at IS NULL ORDER BY w.started_at DESC, w.id DESC LIMIT 1`
	return scanWorkout(q.q.QueryRowContext(ctx, query))
}

// ListWorkouts returns one page of workouts, most recent first.
func (q *Queries) ListWorkouts(ctx context.Context, offset, limit int) ([]models.WorkoutSummary, error) {
	query := workoutSelect + ` ORDER BY w.started_at DESC, w.id DESC LIMIT ? OFFSET ?`
	rows, err := q.q.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	defer rows.Close()

	var workouts []models.WorkoutSummary
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, err
		}
		workouts = append(workouts, models.WorkoutSummary{
			ID:           w.ID,
			TemplateID:   w.TemplateID,
			TemplateName: w.Template.Name,
			StartedAt:    w.StartedAt,
			FinishedAt:   w.FinishedAt,
		})
	}
	return workouts, rows.Err()
}

// DeleteWorkout removes a workout; set-groups and sets cascade.
func (q *Queries) DeleteWorkout(ctx context.Context, id int64) error {
	if _, err := q.q.ExecContext(ctx, `DELETE FROM workouts WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete workout: %w", err)
	}
	return nil
}

// SetWorkoutFinishedAt writes or clears a workout's finish time.
func (q *Queries) SetWorkoutFinishedAt(ctx context.Context, id int64, finishedAt *time.Time) error {
	result, err := q.q.ExecContext(ctx, `UPDATE workouts SET finished_at = ? WHERE id = ?`, nullMillis(finishedAt), id)
	if err != nil {
		return fmt.Errorf("update workout: %w", err)
	}
	return requireAffected(result)
}

// InsertSetGroup stores a workout set-group and sets its ID.
func (q *Queries) InsertSetGroup(ctx context.Context, g *models.SetGroup) error {
	query := `
		INSERT INTO set_groups (workout_id, exercise_id, idx, rest_duration_seconds, is_superset)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`
	err := q.q.QueryRowContext(ctx, query,
		g.WorkoutID, g.ExerciseID, g.Index, g.RestDurationSeconds, boolInt(g.IsSuperset),
	).Scan(&g.ID)
	if err != nil {
		return fmt.Errorf("create set group: %w", err)
	}
	return nil
}

const setGroupSelect = `
	SELECT g.id, g.workout_id, g.exercise_id, g.idx, g.rest_duration_seconds, g.is_superset,
	       e.id, e.name, e.measured_in, e.created_at
	FROM set_groups g
	JOIN exercises e ON e.id = g.exercise_id
`

// GetSetGroup retrieves a set-group scoped to its workout.
func (q *Queries) GetSetGroup(ctx context.Context, workoutID, groupID int64) (*models.SetGroup, error) {
	query := setGroupSelect + ` WHERE g.id = ? AND g.workout_id = ?`
	return scanSetGroup(q.q.QueryRowContext(ctx, query, groupID, workoutID))
}

// ListSetGroups returns a workout's set-groups sorted by index.
func (q *Queries) ListSetGroups(ctx context.Context, workoutID int64) ([]models.SetGroup, error) {
	rows, err := q.q.QueryContext(ctx, setGroupSelect+` WHERE g.workout_id = ? ORDER BY g.idx`, workoutID)
	if err != nil {
		return nil, fmt.Errorf("list set groups: %w", err)
	}
	defer rows.Close()

	var groups []models.SetGroup
	for rows.Next() {
		g, err := scanSetGroup(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, *g)
	}
	return groups, rows.Err()
}

// GetWorkoutTree retrieves a workout with its set-groups, exercises and sets,
// each level sorted by index.
func (q *Queries) GetWorkoutTree(ctx context.Context, id int64) (*models.Workout, error) {
	w, err := q.GetWorkout(ctx, id)
	if err != nil {
		return nil, err
	}

	groups, err := q.ListSetGroups(ctx, id)
	if err != nil {
		return nil, err
	}
	sets, err := q.ListSetsForWorkout(ctx, id)
	if err != nil {
		return nil, err
	}

	byGroup := make(map[int64][]models.Set)
	for _, s := range sets {
		byGroup[s.SetGroupID] = append(byGroup[s.SetGroupID], s)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Index < groups[j].Index })
	for i := range groups {
		children := byGroup[groups[i].ID]
		sort.Slice(children, func(a, b int) bool { return children[a].Index < children[b].Index })
		groups[i].Sets = children
	}
	w.SetGroups = groups
	return w, nil
}

func scanWorkout(row rowScanner) (*models.Workout, error) {
	var w models.Workout
	var startedAt int64
	var finishedAt sql.NullInt64
	var templateName string
	if err := row.Scan(&w.ID, &w.TemplateID, &startedAt, &finishedAt, &templateName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan workout: %w", err)
	}
	w.StartedAt = fromMillis(startedAt)
	w.FinishedAt = timePtr(finishedAt)
	w.Template = &models.TemplateSummary{ID: w.TemplateID, Name: templateName}
	return &w, nil
}

func scanSetGroup(row rowScanner) (*models.SetGroup, error) {
	var g models.SetGroup
	var e models.Exercise
	var superset int
	var measuredIn string
	var createdAt int64
	err := row.Scan(&g.ID, &g.WorkoutID, &g.ExerciseID, &g.Index, &g.RestDurationSeconds, &superset,
		&e.ID, &e.Name, &measuredIn, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan set group: %w", err)
	}
	g.IsSuperset = superset == 1
	e.MeasuredIn = models.MeasuredIn(measuredIn)
	e.CreatedAt = fromMillis(createdAt)
	g.Exercise = &e
	return &g, nil
}
