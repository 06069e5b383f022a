// ABOUTME: Workout progress: set metrics, set completion and workout completion.
// ABOUTME: Set and workout completion are independent toggles over finishedAt.
package training

import (
	"context"
	"errors"
	"time"

	"github.com/harperreed/reps/internal/models"
	"github.com/harperreed/reps/internal/storage"
	"go.opentelemetry.io/otel/attribute"
)

var errSetNotFound = notFound("set", "Set not found for workout")

// UpdateSetMetrics replaces a set's metrics with the parsed input. Blank
// fields clear the stored value; fields the exercise does not measure are
// always stored as null.
func (s *Service) UpdateSetMetrics(ctx context.Context, workoutID, setID int64, in MetricInput) error {
	return s.inTx(ctx, "update_set_metrics", func(ctx context.Context, tx *storage.Tx) error {
		annotate(ctx, attribute.Int64("workout.id", workoutID), attribute.Int64("set.id", setID))
		set, kind, err := loadSet(ctx, tx, workoutID, setID)
		if err != nil {
			return err
		}
		parsed, err := ParseMetrics(in)
		if err != nil {
			return err
		}
		return tx.UpdateSetProgress(ctx, set.ID, kind.Filter(parsed), set.FinishedAt)
	})
}

// ToggleSetComplete flips a set between incomplete and complete. Supplied
// metrics are merged over the stored ones; completing requires the merged
// values to satisfy the exercise's measurement kind.
func (s *Service) ToggleSetComplete(ctx context.Context, workoutID, setID int64, in MetricInput) error {
	completed := false
	err := s.inTx(ctx, "toggle_set_complete", func(ctx context.Context, tx *storage.Tx) error {
		annotate(ctx, attribute.Int64("workout.id", workoutID), attribute.Int64("set.id", setID))
		set, kind, err := loadSet(ctx, tx, workoutID, setID)
		if err != nil {
			return err
		}
		parsed, err := ParseMetrics(in)
		if err != nil {
			return err
		}

		merged := set.Metrics.Merge(parsed)
		var finishedAt *time.Time
		if !set.Complete() {
			if !kind.Satisfied(merged) {
				return invalid("set_id", kind.Requirement())
			}
			now := s.now()
			finishedAt = &now
			completed = true
		}
		return tx.UpdateSetProgress(ctx, set.ID, kind.Filter(merged), finishedAt)
	})
	if err == nil && completed {
		s.metrics.CounterSetsCompleted.Inc()
	}
	return err
}

// ToggleWorkoutComplete flips a workout between in progress and finished.
func (s *Service) ToggleWorkoutComplete(ctx context.Context, workoutID int64) error {
	return s.inTx(ctx, "toggle_workout_complete", func(ctx context.Context, tx *storage.Tx) error {
		annotate(ctx, attribute.Int64("workout.id", workoutID))
		w, err := tx.GetWorkout(ctx, workoutID)
		if errors.Is(err, storage.ErrNotFound) {
			return errWorkoutNotFound
		} else if err != nil {
			return err
		}

		var finishedAt *time.Time
		if w.InProgress() {
			now := s.now()
			finishedAt = &now
		}
		return tx.SetWorkoutFinishedAt(ctx, w.ID, finishedAt)
	})
}

// loadSet fetches a set within its workout together with the measurement
// kind of its exercise.
func loadSet(ctx context.Context, tx *storage.Tx, workoutID, setID int64) (*models.Set, models.MeasuredIn, error) {
	set, err := tx.GetSet(ctx, workoutID, setID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, "", errSetNotFound
	} else if err != nil {
		return nil, "", err
	}
	ex, err := tx.GetExercise(ctx, set.ExerciseID)
	if err != nil {
		return nil, "", err
	}
	return set, ex.MeasuredIn, nil
}
