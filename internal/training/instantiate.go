// ABOUTME: Workout instantiation: deep-copies a template's structure into a new workout.
// ABOUTME: The copy is a snapshot; later template edits never reach started workouts.
package training

import (
	"context"
	"time"

	"github.com/harperreed/reps/internal/models"
	"github.com/harperreed/reps/internal/storage"
	"go.opentelemetry.io/otel/attribute"
)

// StartWorkout creates a workout from templateID and returns its id.
// Any failure rolls the whole copy back and is reported as Internal.
func (s *Service) StartWorkout(ctx context.Context, templateID int64) (int64, error) {
	var id int64
	err := s.inTx(ctx, "start_workout", func(ctx context.Context, tx *storage.Tx) error {
		annotate(ctx, attribute.Int64("template.id", templateID))
		w, err := instantiate(ctx, tx, templateID, s.now())
		if err != nil {
			return internal("Failed to create workout", err)
		}
		id = w.ID
		annotate(ctx, attribute.Int64("workout.id", id))
		return nil
	})
	if err == nil {
		s.metrics.CounterWorkoutsStarted.Inc()
	}
	return id, err
}

func instantiate(ctx context.Context, tx *storage.Tx, templateID int64, startedAt time.Time) (*models.Workout, error) {
	w := &models.Workout{TemplateID: templateID, StartedAt: startedAt}
	if err := tx.InsertWorkout(ctx, w); err != nil {
		return nil, err
	}

	groups, err := tx.ListTemplateSetGroups(ctx, templateID)
	if err != nil {
		return nil, err
	}

	for _, tg := range groups {
		g := &models.SetGroup{
			WorkoutID:           w.ID,
			ExerciseID:          tg.ExerciseID,
			Index:               tg.Index,
			RestDurationSeconds: tg.RestDurationSeconds,
			IsSuperset:          tg.IsSuperset,
		}
		if err := tx.InsertSetGroup(ctx, g); err != nil {
			return nil, err
		}

		targets, err := tx.ListTemplateSets(ctx, tg.ID)
		if err != nil {
			return nil, err
		}
		sets := make([]models.Set, 0, len(targets))
		for _, ts := range targets {
			sets = append(sets, models.Set{
				SetGroupID: g.ID,
				WorkoutID:  w.ID,
				ExerciseID: ts.ExerciseID,
				Index:      ts.Index,
				Type:       ts.Type,
			})
		}
		if err := tx.InsertSets(ctx, sets); err != nil {
			return nil, err
		}
	}

	return w, nil
}
