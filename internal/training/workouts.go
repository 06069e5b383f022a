// ABOUTME: Workout reads and structure edits: set-groups and sets of a started workout.
// ABOUTME: Same ordering policy as templates, scoped to the workout.
package training

import (
	"context"
	"errors"

	"github.com/harperreed/reps/internal/models"
	"github.com/harperreed/reps/internal/reorder"
	"github.com/harperreed/reps/internal/storage"
	"go.opentelemetry.io/otel/attribute"
)

var (
	errWorkoutNotFound      = notFound("workout", "Workout not found")
	errWorkoutGroupNotFound = notFound("set group", "Set group not found for workout")
	errWorkoutSetNotFound   = notFound("set", "Set not found in set group for workout")
)

// GetWorkout returns the full nested workout, or nil when it does not exist.
func (s *Service) GetWorkout(ctx context.Context, id int64) (*models.Workout, error) {
	var out *models.Workout
	err := s.run(ctx, "get_workout", func(ctx context.Context) error {
		w, err := s.db.GetWorkoutTree(ctx, id)
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		out = w
		return err
	})
	return out, err
}

// CurrentWorkout returns the most recently started unfinished workout with
// its template, or nil when every workout is finished.
func (s *Service) CurrentWorkout(ctx context.Context) (*models.Workout, error) {
	var out *models.Workout
	err := s.run(ctx, "current_workout", func(ctx context.Context) error {
		w, err := s.db.CurrentWorkout(ctx)
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		} else if err != nil {
			return err
		}
		out, err = s.db.GetWorkoutTree(ctx, w.ID)
		if errors.Is(err, storage.ErrNotFound) {
			// Deleted between the two reads.
			out = nil
			return nil
		}
		return err
	})
	return out, err
}

// ListWorkouts returns up to PageSize workouts, most recent first.
func (s *Service) ListWorkouts(ctx context.Context, offset int) ([]models.WorkoutSummary, error) {
	var out []models.WorkoutSummary
	err := s.run(ctx, "list_workouts", func(ctx context.Context) error {
		if offset < 0 {
			return invalid("offset", "Offset must not be negative")
		}
		var err error
		out, err = s.db.ListWorkouts(ctx, offset, PageSize)
		return err
	})
	return out, err
}

// DeleteWorkout deletes a workout with its set-groups and sets.
func (s *Service) DeleteWorkout(ctx context.Context, id int64) error {
	return s.inTx(ctx, "delete_workout", func(ctx context.Context, tx *storage.Tx) error {
		annotate(ctx, attribute.Int64("workout.id", id))
		return tx.DeleteWorkout(ctx, id)
	})
}

// AddSetGroup appends a set-group for exerciseID to a workout and returns its id.
func (s *Service) AddSetGroup(ctx context.Context, workoutID, exerciseID int64) (int64, error) {
	var id int64
	err := s.inTx(ctx, "add_set_group", func(ctx context.Context, tx *storage.Tx) error {
		annotate(ctx, attribute.Int64("workout.id", workoutID), attribute.Int64("exercise.id", exerciseID))
		if err := requireWorkout(ctx, tx, workoutID); err != nil {
			return err
		}
		if _, err := tx.GetExercise(ctx, exerciseID); errors.Is(err, storage.ErrNotFound) {
			return errExerciseNotFound
		} else if err != nil {
			return err
		}

		next, err := tx.NextIndex(ctx, storage.SetGroups, workoutID)
		if err != nil {
			return err
		}
		g := &models.SetGroup{
			WorkoutID:           workoutID,
			ExerciseID:          exerciseID,
			Index:               next,
			RestDurationSeconds: models.DefaultRestDurationSeconds,
		}
		if err := tx.InsertSetGroup(ctx, g); err != nil {
			return err
		}
		id = g.ID
		return nil
	})
	return id, err
}

// RemoveSetGroup deletes a workout set-group and renumbers the rest.
func (s *Service) RemoveSetGroup(ctx context.Context, workoutID, groupID int64) error {
	return s.inTx(ctx, "remove_set_group", func(ctx context.Context, tx *storage.Tx) error {
		annotate(ctx, attribute.Int64("workout.id", workoutID), attribute.Int64("set_group.id", groupID))
		return s.removeMember(ctx, tx, storage.SetGroups, workoutID, groupID, errWorkoutGroupNotFound)
	})
}

// MoveSetGroup moves a workout set-group one position up or down.
func (s *Service) MoveSetGroup(ctx context.Context, workoutID, groupID int64, dir reorder.Direction) error {
	return s.inTx(ctx, "move_set_group", func(ctx context.Context, tx *storage.Tx) error {
		annotate(ctx, attribute.Int64("workout.id", workoutID), attribute.Int64("set_group.id", groupID))
		return s.moveMember(ctx, tx, storage.SetGroups, workoutID, groupID, dir, errWorkoutGroupNotFound)
	})
}

// AddSet appends an incomplete working set to a workout set-group and returns its id.
func (s *Service) AddSet(ctx context.Context, workoutID, groupID int64) (int64, error) {
	var id int64
	err := s.inTx(ctx, "add_set", func(ctx context.Context, tx *storage.Tx) error {
		annotate(ctx, attribute.Int64("workout.id", workoutID), attribute.Int64("set_group.id", groupID))
		g, err := tx.GetSetGroup(ctx, workoutID, groupID)
		if errors.Is(err, storage.ErrNotFound) {
			return errWorkoutGroupNotFound
		} else if err != nil {
			return err
		}

		next, err := tx.NextIndex(ctx, storage.Sets, groupID)
		if err != nil {
			return err
		}
		set := &models.Set{
			SetGroupID: g.ID,
			WorkoutID:  workoutID,
			ExerciseID: g.ExerciseID,
			Index:      next,
			Type:       models.SetWorking,
		}
		if err := tx.InsertSet(ctx, set); err != nil {
			return err
		}
		id = set.ID
		return nil
	})
	return id, err
}

// RemoveSet deletes a workout set and renumbers the rest.
func (s *Service) RemoveSet(ctx context.Context, workoutID, groupID, setID int64) error {
	return s.inTx(ctx, "remove_set", func(ctx context.Context, tx *storage.Tx) error {
		annotate(ctx, attribute.Int64("workout.id", workoutID), attribute.Int64("set.id", setID))
		if _, err := tx.GetSetGroup(ctx, workoutID, groupID); errors.Is(err, storage.ErrNotFound) {
			return errWorkoutGroupNotFound
		} else if err != nil {
			return err
		}
		return s.removeMember(ctx, tx, storage.Sets, groupID, setID, errWorkoutSetNotFound)
	})
}

// MoveSet moves a workout set one position up or down within its set-group.
func (s *Service) MoveSet(ctx context.Context, workoutID, groupID, setID int64, dir reorder.Direction) error {
	return s.inTx(ctx, "move_set", func(ctx context.Context, tx *storage.Tx) error {
		annotate(ctx, attribute.Int64("workout.id", workoutID), attribute.Int64("set.id", setID))
		if _, err := tx.GetSetGroup(ctx, workoutID, groupID); errors.Is(err, storage.ErrNotFound) {
			return errWorkoutGroupNotFound
		} else if err != nil {
			return err
		}
		return s.moveMember(ctx, tx, storage.Sets, groupID, setID, dir, errWorkoutSetNotFound)
	})
}

func requireWorkout(ctx context.Context, r storage.Repository, id int64) error {
	_, err := r.GetWorkout(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return errWorkoutNotFound
	}
	return err
}
