// ABOUTME: Export and import functionality for training data.
// ABOUTME: Dumps every table as flat rows to JSON or YAML and restores them with ids intact.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/reps/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportVersion identifies the dump layout.
const ExportVersion = "1.0"

// ErrNotEmpty is returned when importing into a database that already has data.
var ErrNotEmpty = errors.New("destination database is not empty")

// ExportData represents the full export format for training data.
// Rows are flat; nesting is expressed by the id columns.
type ExportData struct {
	Version           string                    `json:"version" yaml:"version"`
	ExportID          string                    `json:"export_id" yaml:"export_id"`
	ExportedAt        time.Time                 `json:"exported_at" yaml:"exported_at"`
	Tool              string                    `json:"tool" yaml:"tool"`
	Exercises         []models.Exercise         `json:"exercises" yaml:"exercises"`
	Templates         []models.Template         `json:"templates" yaml:"templates"`
	TemplateSetGroups []models.TemplateSetGroup `json:"template_set_groups" yaml:"template_set_groups"`
	TemplateSets      []models.TemplateSet      `json:"template_sets" yaml:"template_sets"`
	Workouts          []models.Workout          `json:"workouts" yaml:"workouts"`
	SetGroups         []models.SetGroup         `json:"set_groups" yaml:"set_groups"`
	Sets              []models.Set              `json:"sets" yaml:"sets"`
}

// GetAllData retrieves all data for export.
func (d *DB) GetAllData(ctx context.Context) (*ExportData, error) {
	data := &ExportData{
		Version:    ExportVersion,
		ExportID:   uuid.NewString(),
		ExportedAt: time.Now().UTC(),
		Tool:       "reps",
	}

	var err error
	if data.Exercises, err = d.ListExercises(ctx); err != nil {
		return nil, err
	}

	rows, err := d.q.QueryContext(ctx, `SELECT id, name, created_at FROM templates ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		data.Templates = append(data.Templates, *t)
	}
	rows.Close()

	groupRows, err := d.q.QueryContext(ctx, templateGroupSelect+` ORDER BY g.id`)
	if err != nil {
		return nil, fmt.Errorf("list template set groups: %w", err)
	}
	for groupRows.Next() {
		g, err := scanTemplateSetGroup(groupRows)
		if err != nil {
			groupRows.Close()
			return nil, err
		}
		g.Exercise = nil
		data.TemplateSetGroups = append(data.TemplateSetGroups, *g)
	}
	groupRows.Close()

	if data.TemplateSets, err = d.queryTemplateSets(ctx, templateSetSelect+` ORDER BY id`); err != nil {
		return nil, err
	}

	workoutRows, err := d.q.QueryContext(ctx, workoutSelect+` ORDER BY w.id`)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	for workoutRows.Next() {
		w, err := scanWorkout(workoutRows)
		if err != nil {
			workoutRows.Close()
			return nil, err
		}
		w.Template = nil
		data.Workouts = append(data.Workouts, *w)
	}
	workoutRows.Close()

	setGroupRows, err := d.q.QueryContext(ctx, setGroupSelect+` ORDER BY g.id`)
	if err != nil {
		return nil, fmt.Errorf("list set groups: %w", err)
	}
	for setGroupRows.Next() {
		g, err := scanSetGroup(setGroupRows)
		if err != nil {
			setGroupRows.Close()
			return nil, err
		}
		g.Exercise = nil
		data.SetGroups = append(data.SetGroups, *g)
	}
	setGroupRows.Close()

	if data.Sets, err = d.querySets(ctx, setSelect+` ORDER BY id`); err != nil {
		return nil, err
	}

	return data, nil
}

// ImportData restores a dump into an empty database in one transaction,
// keeping every identifier.
func (d *DB) ImportData(ctx context.Context, data *ExportData) error {
	return d.WithTx(ctx, func(tx *Tx) error {
		var existing int
		err := tx.q.QueryRowContext(ctx,
			`SELECT (SELECT COUNT(*) FROM exercises) + (SELECT COUNT(*) FROM templates)`).Scan(&existing)
		if err != nil {
			return fmt.Errorf("count existing rows: %w", err)
		}
		if existing > 0 {
			return ErrNotEmpty
		}

		for _, e := range data.Exercises {
			_, err := tx.q.ExecContext(ctx,
				`INSERT INTO exercises (id, name, measured_in, created_at) VALUES (?, ?, ?, ?)`,
				e.ID, e.Name, string(e.MeasuredIn), toMillis(e.CreatedAt))
			if err != nil {
				return fmt.Errorf("import exercise %d: %w", e.ID, err)
			}
		}
		for _, t := range data.Templates {
			_, err := tx.q.ExecContext(ctx,
				`INSERT INTO templates (id, name, created_at) VALUES (?, ?, ?)`,
				t.ID, t.Name, toMillis(t.CreatedAt))
			if err != nil {
				return fmt.Errorf("import template %d: %w", t.ID, err)
			}
		}
		for _, g := range data.TemplateSetGroups {
			_, err := tx.q.ExecContext(ctx, `
				INSERT INTO template_set_groups (id, template_id, exercise_id, idx, rest_duration_seconds, is_superset)
				VALUES (?, ?, ?, ?, ?, ?)`,
				g.ID, g.TemplateID, g.ExerciseID, g.Index, g.RestDurationSeconds, boolInt(g.IsSuperset))
			if err != nil {
				return fmt.Errorf("import template set group %d: %w", g.ID, err)
			}
		}
		for _, s := range data.TemplateSets {
			_, err := tx.q.ExecContext(ctx, `
				INSERT INTO template_sets (id, template_set_group_id, template_id, exercise_id, idx, type)
				VALUES (?, ?, ?, ?, ?, ?)`,
				s.ID, s.TemplateSetGroupID, s.TemplateID, s.ExerciseID, s.Index, string(s.Type))
			if err != nil {
				return fmt.Errorf("import template set %d: %w", s.ID, err)
			}
		}
		for _, w := range data.Workouts {
			_, err := tx.q.ExecContext(ctx,
				`INSERT INTO workouts (id, template_id, started_at, finished_at) VALUES (?, ?, ?, ?)`,
				w.ID, w.TemplateID, toMillis(w.StartedAt), nullMillis(w.FinishedAt))
			if err != nil {
				return fmt.Errorf("import workout %d: %w", w.ID, err)
			}
		}
		for _, g := range data.SetGroups {
			_, err := tx.q.ExecContext(ctx, `
				INSERT INTO set_groups (id, workout_id, exercise_id, idx, rest_duration_seconds, is_superset)
				VALUES (?, ?, ?, ?, ?, ?)`,
				g.ID, g.WorkoutID, g.ExerciseID, g.Index, g.RestDurationSeconds, boolInt(g.IsSuperset))
			if err != nil {
				return fmt.Errorf("import set group %d: %w", g.ID, err)
			}
		}
		for _, s := range data.Sets {
			args := append([]any{s.ID}, setArgs(&s)...)
			_, err := tx.q.ExecContext(ctx, `
				INSERT INTO sets (id, set_group_id, workout_id, exercise_id, idx, type, reps, weight, duration, finished_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, args...)
			if err != nil {
				return fmt.Errorf("import set %d: %w", s.ID, err)
			}
		}
		return nil
	})
}

// ExportJSON exports all data as JSON.
func (d *DB) ExportJSON(ctx context.Context) ([]byte, error) {
	data, err := d.GetAllData(ctx)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML exports all data as YAML.
func (d *DB) ExportYAML(ctx context.Context) ([]byte, error) {
	data, err := d.GetAllData(ctx)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(data)
}

// ImportJSON imports data from JSON bytes.
func (d *DB) ImportJSON(ctx context.Context, raw []byte) error {
	var data ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("unmarshal JSON: %w", err)
	}
	return d.ImportData(ctx, &data)
}
