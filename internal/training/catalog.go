// ABOUTME: Exercise catalog, seeding and template import from TOML files.
// ABOUTME: Imported templates are built in one transaction through the same append helpers as authoring.
package training

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/harperreed/reps/internal/models"
	"github.com/harperreed/reps/internal/storage"
	"go.opentelemetry.io/otel/attribute"
)

var errExerciseNameTaken = conflict("exercise", "Exercise name already exists")

// AddExercise adds an exercise to the catalog and returns its id.
func (s *Service) AddExercise(ctx context.Context, name string, measuredIn models.MeasuredIn) (int64, error) {
	var id int64
	err := s.inTx(ctx, "add_exercise", func(ctx context.Context, tx *storage.Tx) error {
		var err error
		id, err = addExercise(ctx, tx, name, measuredIn, s.now())
		return err
	})
	return id, err
}

func addExercise(ctx context.Context, tx *storage.Tx, name string, measuredIn models.MeasuredIn, now time.Time) (int64, error) {
	name, err := cleanName(name)
	if err != nil {
		return 0, err
	}
	if !models.IsValidMeasuredIn(string(measuredIn)) {
		return 0, invalid("measured_in", "Measured in must be duration, reps or reps_and_weight")
	}
	if _, err := tx.FindExerciseByName(ctx, name); err == nil {
		return 0, errExerciseNameTaken
	} else if !errors.Is(err, storage.ErrNotFound) {
		return 0, err
	}

	e := models.NewExercise(name, measuredIn)
	e.CreatedAt = now
	if err := tx.CreateExercise(ctx, e); err != nil {
		if storage.IsUniqueViolation(err) {
			return 0, errExerciseNameTaken
		}
		return 0, err
	}
	return e.ID, nil
}

// ListExercises returns the whole catalog sorted by name.
func (s *Service) ListExercises(ctx context.Context) ([]models.Exercise, error) {
	var out []models.Exercise
	err := s.run(ctx, "list_exercises", func(ctx context.Context) error {
		var err error
		out, err = s.db.ListExercises(ctx)
		return err
	})
	return out, err
}

// SeedExercises inserts the default catalog, skipping names already present,
// and returns how many were inserted.
func (s *Service) SeedExercises(ctx context.Context) (int, error) {
	inserted := 0
	err := s.inTx(ctx, "seed_exercises", func(ctx context.Context, tx *storage.Tx) error {
		inserted = 0
		for _, e := range models.DefaultExercises {
			_, err := addExercise(ctx, tx, e.Name, e.MeasuredIn, s.now())
			if errors.Is(err, ErrConflict) {
				continue
			}
			if err != nil {
				return err
			}
			inserted++
		}
		return nil
	})
	return inserted, err
}

// SeedTemplates inserts the sample templates whose names are not taken yet
// and returns how many were inserted. Their exercises must already exist.
func (s *Service) SeedTemplates(ctx context.Context) (int, error) {
	inserted := 0
	err := s.inTx(ctx, "seed_templates", func(ctx context.Context, tx *storage.Tx) error {
		inserted = 0
		for _, f := range models.DefaultTemplates {
			_, err := importTemplate(ctx, tx, f, s.now())
			if errors.Is(err, errTemplateNameTaken) {
				continue
			}
			if err != nil {
				return err
			}
			inserted++
		}
		return nil
	})
	return inserted, err
}

// ParseTemplateFile decodes a TOML template document.
func ParseTemplateFile(data []byte) (models.TemplateFile, error) {
	var f models.TemplateFile
	if _, err := toml.Decode(string(data), &f); err != nil {
		return models.TemplateFile{}, invalid("file", fmt.Sprintf("Invalid template file: %v", err))
	}
	return f, nil
}

// ImportTemplate creates a template with its set-groups and target sets from
// a template file and returns the new template id.
func (s *Service) ImportTemplate(ctx context.Context, f models.TemplateFile) (int64, error) {
	var id int64
	err := s.inTx(ctx, "import_template", func(ctx context.Context, tx *storage.Tx) error {
		var err error
		id, err = importTemplate(ctx, tx, f, s.now())
		if err == nil {
			annotate(ctx, attribute.Int64("template.id", id))
		}
		return err
	})
	return id, err
}

func importTemplate(ctx context.Context, tx *storage.Tx, f models.TemplateFile, now time.Time) (int64, error) {
	for _, g := range f.Groups {
		if g.WarmupSets < 0 || g.WorkingSets < 0 {
			return 0, invalid("sets", "Set counts must not be negative")
		}
		if g.RestSeconds != nil && *g.RestSeconds < 0 {
			return 0, invalid("rest_seconds", "Rest duration must not be negative")
		}
	}

	templateID, err := createTemplate(ctx, tx, f.Name, now)
	if err != nil {
		return 0, err
	}

	for _, fg := range f.Groups {
		ex, err := tx.FindExerciseByName(ctx, fg.Exercise)
		if errors.Is(err, storage.ErrNotFound) {
			return 0, notFound("exercise", fmt.Sprintf("Exercise not found: %s", fg.Exercise))
		} else if err != nil {
			return 0, err
		}

		rest := models.DefaultRestDurationSeconds
		if fg.RestSeconds != nil {
			rest = *fg.RestSeconds
		}
		g, err := appendTemplateGroup(ctx, tx, templateID, ex.ID, rest, fg.Superset)
		if err != nil {
			return 0, err
		}

		for i := 0; i < fg.WarmupSets; i++ {
			if _, err := appendTemplateSet(ctx, tx, g, models.SetWarmup); err != nil {
				return 0, err
			}
		}
		for i := 0; i < fg.WorkingSets; i++ {
			if _, err := appendTemplateSet(ctx, tx, g, models.SetWorking); err != nil {
				return 0, err
			}
		}
	}
	return templateID, nil
}
