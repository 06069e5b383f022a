// ABOUTME: Template authoring operations: create, rename, delete and structure edits.
// ABOUTME: Each mutation runs in one transaction and renumbers collections on remove/move.
package training

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/harperreed/reps/internal/models"
	"github.com/harperreed/reps/internal/reorder"
	"github.com/harperreed/reps/internal/storage"
	"go.opentelemetry.io/otel/attribute"
)

var (
	errTemplateNotFound      = notFound("template", "Template not found")
	errTemplateGroupNotFound = notFound("set group", "Set group not found for template")
	errTemplateSetNotFound   = notFound("set", "Set not found in set group for template")
	errExerciseNotFound      = notFound("exercise", "Exercise not found")
	errTemplateNameTaken     = conflict("template", "Template name already exists")
	errTemplateHasWorkouts   = conflict("template", "Cannot delete a template that has workouts")
)

// GroupSettings are the editable properties of a set-group. Nil fields are left unchanged.
type GroupSettings struct {
	RestDurationSeconds *int
	IsSuperset          *bool
}

// ListTemplates returns up to PageSize templates sorted by name, starting at offset.
func (s *Service) ListTemplates(ctx context.Context, offset int) ([]models.TemplateSummary, error) {
	var out []models.TemplateSummary
	err := s.run(ctx, "list_templates", func(ctx context.Context) error {
		if offset < 0 {
			return invalid("offset", "Offset must not be negative")
		}
		var err error
		out, err = s.db.ListTemplates(ctx, offset, PageSize)
		return err
	})
	return out, err
}

// GetTemplate returns the full nested template, or nil when it does not exist.
func (s *Service) GetTemplate(ctx context.Context, id int64) (*models.Template, error) {
	var out *models.Template
	err := s.run(ctx, "get_template", func(ctx context.Context) error {
		t, err := s.db.GetTemplateTree(ctx, id)
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		out = t
		return err
	})
	return out, err
}

// CreateTemplate creates an empty template and returns its id.
func (s *Service) CreateTemplate(ctx context.Context, name string) (int64, error) {
	var id int64
	err := s.inTx(ctx, "create_template", func(ctx context.Context, tx *storage.Tx) error {
		var err error
		id, err = createTemplate(ctx, tx, name, s.now())
		return err
	})
	return id, err
}

func createTemplate(ctx context.Context, tx *storage.Tx, name string, now time.Time) (int64, error) {
	name, err := cleanName(name)
	if err != nil {
		return 0, err
	}
	if _, err := tx.FindTemplateByName(ctx, name); err == nil {
		return 0, errTemplateNameTaken
	} else if !errors.Is(err, storage.ErrNotFound) {
		return 0, err
	}

	t := &models.Template{Name: name, CreatedAt: now}
	if err := tx.CreateTemplate(ctx, t); err != nil {
		if storage.IsUniqueViolation(err) {
			return 0, errTemplateNameTaken
		}
		return 0, err
	}
	return t.ID, nil
}

// RenameTemplate changes a template's name.
func (s *Service) RenameTemplate(ctx context.Context, id int64, name string) error {
	return s.inTx(ctx, "rename_template", func(ctx context.Context, tx *storage.Tx) error {
		annotate(ctx, attribute.Int64("template.id", id))
		name, err := cleanName(name)
		if err != nil {
			return err
		}
		if err := requireTemplate(ctx, tx, id); err != nil {
			return err
		}

		existing, err := tx.FindTemplateByName(ctx, name)
		switch {
		case err == nil && existing.ID != id:
			return errTemplateNameTaken
		case err != nil && !errors.Is(err, storage.ErrNotFound):
			return err
		}
		return tx.RenameTemplate(ctx, id, name)
	})
}

// DeleteTemplate deletes a template and its structure. Templates referenced
// by a workout cannot be deleted.
func (s *Service) DeleteTemplate(ctx context.Context, id int64) error {
	return s.inTx(ctx, "delete_template", func(ctx context.Context, tx *storage.Tx) error {
		annotate(ctx, attribute.Int64("template.id", id))
		n, err := tx.CountWorkoutsForTemplate(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return errTemplateHasWorkouts
		}
		return tx.DeleteTemplate(ctx, id)
	})
}

// AddTemplateSetGroup appends a set-group for exerciseID and returns its id.
func (s *Service) AddTemplateSetGroup(ctx context.Context, templateID, exerciseID int64) (int64, error) {
	var id int64
	err := s.inTx(ctx, "add_template_set_group", func(ctx context.Context, tx *storage.Tx) error {
		annotate(ctx, attribute.Int64("template.id", templateID), attribute.Int64("exercise.id", exerciseID))
		if err := requireTemplate(ctx, tx, templateID); err != nil {
			return err
		}
		g, err := appendTemplateGroup(ctx, tx, templateID, exerciseID, models.DefaultRestDurationSeconds, false)
		if err != nil {
			return err
		}
		id = g.ID
		return nil
	})
	return id, err
}

func appendTemplateGroup(ctx context.Context, tx *storage.Tx, templateID, exerciseID int64, rest int, superset bool) (*models.TemplateSetGroup, error) {
	if _, err := tx.GetExercise(ctx, exerciseID); errors.Is(err, storage.ErrNotFound) {
		return nil, errExerciseNotFound
	} else if err != nil {
		return nil, err
	}

	next, err := tx.NextIndex(ctx, storage.TemplateSetGroups, templateID)
	if err != nil {
		return nil, err
	}
	g := &models.TemplateSetGroup{
		TemplateID:          templateID,
		ExerciseID:          exerciseID,
		Index:               next,
		RestDurationSeconds: rest,
		IsSuperset:          superset,
	}
	if err := tx.InsertTemplateSetGroup(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// RemoveTemplateSetGroup deletes a set-group and renumbers the rest.
func (s *Service) RemoveTemplateSetGroup(ctx context.Context, templateID, groupID int64) error {
	return s.inTx(ctx, "remove_template_set_group", func(ctx context.Context, tx *storage.Tx) error {
		annotate(ctx, attribute.Int64("template.id", templateID), attribute.Int64("set_group.id", groupID))
		return s.removeMember(ctx, tx, storage.TemplateSetGroups, templateID, groupID, errTemplateGroupNotFound)
	})
}

// MoveTemplateSetGroup moves a set-group one position up or down.
func (s *Service) MoveTemplateSetGroup(ctx context.Context, templateID, groupID int64, dir reorder.Direction) error {
	return s.inTx(ctx, "move_template_set_group", func(ctx context.Context, tx *storage.Tx) error {
		annotate(ctx, attribute.Int64("template.id", templateID), attribute.Int64("set_group.id", groupID))
		return s.moveMember(ctx, tx, storage.TemplateSetGroups, templateID, groupID, dir, errTemplateGroupNotFound)
	})
}

// UpdateTemplateSetGroup edits a set-group's rest duration and superset flag.
func (s *Service) UpdateTemplateSetGroup(ctx context.Context, templateID, groupID int64, settings GroupSettings) error {
	return s.inTx(ctx, "update_template_set_group", func(ctx context.Context, tx *storage.Tx) error {
		if settings.RestDurationSeconds != nil && *settings.RestDurationSeconds < 0 {
			return invalid("rest_duration_seconds", "Rest duration must not be negative")
		}
		g, err := tx.GetTemplateSetGroup(ctx, templateID, groupID)
		if errors.Is(err, storage.ErrNotFound) {
			return errTemplateGroupNotFound
		} else if err != nil {
			return err
		}
		if settings.RestDurationSeconds != nil {
			g.RestDurationSeconds = *settings.RestDurationSeconds
		}
		if settings.IsSuperset != nil {
			g.IsSuperset = *settings.IsSuperset
		}
		return tx.UpdateTemplateSetGroup(ctx, g)
	})
}

// AddSetToTemplateGroup appends a working set to a set-group and returns its id.
func (s *Service) AddSetToTemplateGroup(ctx context.Context, templateID, groupID int64) (int64, error) {
	var id int64
	err := s.inTx(ctx, "add_template_set", func(ctx context.Context, tx *storage.Tx) error {
		annotate(ctx, attribute.Int64("template.id", templateID), attribute.Int64("set_group.id", groupID))
		g, err := tx.GetTemplateSetGroup(ctx, templateID, groupID)
		if errors.Is(err, storage.ErrNotFound) {
			return errTemplateGroupNotFound
		} else if err != nil {
			return err
		}
		set, err := appendTemplateSet(ctx, tx, g, models.SetWorking)
		if err != nil {
			return err
		}
		id = set.ID
		return nil
	})
	return id, err
}

func appendTemplateSet(ctx context.Context, tx *storage.Tx, g *models.TemplateSetGroup, setType models.SetType) (*models.TemplateSet, error) {
	next, err := tx.NextIndex(ctx, storage.TemplateSets, g.ID)
	if err != nil {
		return nil, err
	}
	set := &models.TemplateSet{
		TemplateSetGroupID: g.ID,
		TemplateID:         g.TemplateID,
		ExerciseID:         g.ExerciseID,
		Index:              next,
		Type:               setType,
	}
	if err := tx.InsertTemplateSet(ctx, set); err != nil {
		return nil, err
	}
	return set, nil
}

// RemoveSetFromTemplateGroup deletes a target set and renumbers the rest.
func (s *Service) RemoveSetFromTemplateGroup(ctx context.Context, templateID, groupID, setID int64) error {
	return s.inTx(ctx, "remove_template_set", func(ctx context.Context, tx *storage.Tx) error {
		annotate(ctx, attribute.Int64("template.id", templateID), attribute.Int64("set.id", setID))
		if _, err := tx.GetTemplateSetGroup(ctx, templateID, groupID); errors.Is(err, storage.ErrNotFound) {
			return errTemplateGroupNotFound
		} else if err != nil {
			return err
		}
		return s.removeMember(ctx, tx, storage.TemplateSets, groupID, setID, errTemplateSetNotFound)
	})
}

// MoveTemplateSet moves a target set one position up or down within its set-group.
func (s *Service) MoveTemplateSet(ctx context.Context, templateID, groupID, setID int64, dir reorder.Direction) error {
	return s.inTx(ctx, "move_template_set", func(ctx context.Context, tx *storage.Tx) error {
		annotate(ctx, attribute.Int64("template.id", templateID), attribute.Int64("set.id", setID))
		if _, err := tx.GetTemplateSetGroup(ctx, templateID, groupID); errors.Is(err, storage.ErrNotFound) {
			return errTemplateGroupNotFound
		} else if err != nil {
			return err
		}
		return s.moveMember(ctx, tx, storage.TemplateSets, groupID, setID, dir, errTemplateSetNotFound)
	})
}

// SetTemplateSetType switches a target set between warmup and working.
func (s *Service) SetTemplateSetType(ctx context.Context, templateID, groupID, setID int64, setType models.SetType) error {
	return s.inTx(ctx, "set_template_set_type", func(ctx context.Context, tx *storage.Tx) error {
		if !models.IsValidSetType(string(setType)) {
			return invalid("type", "Type must be warmup or working")
		}
		if _, err := tx.GetTemplateSetGroup(ctx, templateID, groupID); errors.Is(err, storage.ErrNotFound) {
			return errTemplateGroupNotFound
		} else if err != nil {
			return err
		}
		err := tx.UpdateTemplateSetType(ctx, groupID, setID, setType)
		if errors.Is(err, storage.ErrNotFound) {
			return errTemplateSetNotFound
		}
		return err
	})
}

func requireTemplate(ctx context.Context, r storage.Repository, id int64) error {
	_, err := r.GetTemplate(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return errTemplateNotFound
	}
	return err
}

// cleanName trims a template or exercise name and checks its length.
func cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", invalid("name", "Name is required")
	}
	if utf8.RuneCountInString(name) > models.MaxNameLength {
		return "", invalid("name", "Name must be at most 100 characters")
	}
	return name, nil
}
