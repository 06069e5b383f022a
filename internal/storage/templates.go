// ABOUTME: Template, TemplateSetGroup and TemplateSet CRUD for SQLite storage.
// ABOUTME: Nested fetches sort children by index in memory after loading.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/harperreed/reps/internal/models"
)

// CreateTemplate stores a new template and sets its ID.
func (q *Queries) CreateTemplate(ctx context.Context, t *models.Template) error {
	query := `INSERT INTO templates (name, created_at) VALUES (?, ?) RETURNING id`
	if err := q.q.QueryRowContext(ctx, query, t.Name, toMillis(t.CreatedAt)).Scan(&t.ID); err != nil {
		return fmt.Errorf("create template: %w", err)
	}
	return nil
}

// GetTemplate retrieves a template row without its set-groups.
func (q *Queries) GetTemplate(ctx context.Context, id int64) (*models.Template, error) {
	query := `SELECT id, name, created_at FROM templates WHERE id = ?`
	return scanTemplate(q.q.QueryRowContext(ctx, query, id))
}

// FindTemplateByName retrieves a template by its exact name.
func (q *Queries) FindTemplateByName(ctx context.Context, name string) (*models.Template, error) {
	query := `SELECT id, name, created_at FROM templates WHERE name = ?`
	return scanTemplate(q.q.QueryRowContext(ctx, query, name))
}

// RenameTemplate updates a template's name.
func (q *Queries) RenameTemplate(ctx context.Context, id int64, name string) error {
	result, err := q.q.ExecContext(ctx, `UPDATE templates SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return fmt.Errorf("rename template: %w", err)
	}
	return requireAffected(result)
}

// DeleteTemplate removes a template; set-groups and sets cascade.
func (q *Queries) DeleteTemplate(ctx context.Context, id int64) error {
	if _, err := q.q.ExecContext(ctx, `DELETE FROM templates WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	return nil
}

// ListTemplates returns one page of templates sorted by name.
func (q *Queries) ListTemplates(ctx context.Context, offset, limit int) ([]models.TemplateSummary, error) {
	query := `SELECT id, name FROM templates ORDER BY name LIMIT ? OFFSET ?`
	rows, err := q.q.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	var templates []models.TemplateSummary
	for rows.Next() {
		var t models.TemplateSummary
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

// CountWorkoutsForTemplate counts the workouts instantiated from a template.
func (q *Queries) CountWorkoutsForTemplate(ctx context.Context, templateID int64) (int, error) {
	var n int
	err := q.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM workouts WHERE template_id = ?`, templateID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count workouts: %w", err)
	}
	return n, nil
}

// InsertTemplateSetGroup stores a set-group and sets its ID.
func (q *Queries) InsertTemplateSetGroup(ctx context.Context, g *models.TemplateSetGroup) error {
	query := `
		INSERT INTO template_set_groups (template_id, exercise_id, idx, rest_duration_seconds, is_superset)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`
	err := q.q.QueryRowContext(ctx, query,
		g.TemplateID, g.ExerciseID, g.Index, g.RestDurationSeconds, boolInt(g.IsSuperset),
	).Scan(&g.ID)
	if err != nil {
		return fmt.Errorf("create template set group: %w", err)
	}
	return nil
}

const templateGroupSelect = `
	SELECT g.id, g.template_id, g.exercise_id, g.idx, g.rest_duration_seconds, g.is_superset,
	       e.id, e.name, e.measured_in, e.created_at
	FROM template_set_groups g
	JOIN exercises e ON e.id = g.exercise_id
`

// GetTemplateSetGroup retrieves a set-group scoped to its template.
func (q *Queries) GetTemplateSetGroup(ctx context.Context, templateID, groupID int64) (*models.TemplateSetGroup, error) {
	query := templateGroupSelect + ` WHERE g.id = ? AND g.template_id = ?`
	return scanTemplateSetGroup(q.q.QueryRowContext(ctx, query, groupID, templateID))
}

// ListTemplateSetGroups returns a template's set-groups sorted by index.
func (q *Queries) ListTemplateSetGroups(ctx context.Context, templateID int64) ([]models.TemplateSetGroup, error) {
	rows, err := q.q.QueryContext(ctx, templateGroupSelect+` WHERE g.template_id = ? ORDER BY g.idx`, templateID)
	if err != nil {
		return nil, fmt.Errorf("list template set groups: %w", err)
	}
	defer rows.Close()

	var groups []models.TemplateSetGroup
	for rows.Next() {
		g, err := scanTemplateSetGroup(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, *g)
	}
	return groups, rows.Err()
}

// UpdateTemplateSetGroup writes a set-group's rest duration and superset flag.
func (q *Queries) UpdateTemplateSetGroup(ctx context.Context, g *models.TemplateSetGroup) error {
	query := `UPDATE template_set_groups SET rest_duration_seconds = ?, is_superset = ? WHERE id = ? AND template_id = ?`
	result, err := q.q.ExecContext(ctx, query, g.RestDurationSeconds, boolInt(g.IsSuperset), g.ID, g.TemplateID)
	if err != nil {
		return fmt.Errorf("update template set group: %w", err)
	}
	return requireAffected(result)
}

// InsertTemplateSet stores a target set and sets its ID.
func (q *Queries) InsertTemplateSet(ctx context.Context, s *models.TemplateSet) error {
	query := `
		INSERT INTO template_sets (template_set_group_id, template_id, exercise_id, idx, type)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`
	err := q.q.QueryRowContext(ctx, query,
		s.TemplateSetGroupID, s.TemplateID, s.ExerciseID, s.Index, string(s.Type),
	).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("create template set: %w", err)
	}
	return nil
}

const templateSetSelect = `SELECT id, template_set_group_id, template_id, exercise_id, idx, type FROM template_sets`

// GetTemplateSet retrieves a target set scoped to its set-group.
func (q *Queries) GetTemplateSet(ctx context.Context, groupID, setID int64) (*models.TemplateSet, error) {
	query := templateSetSelect + ` WHERE id = ? AND template_set_group_id = ?`
	return scanTemplateSet(q.q.QueryRowContext(ctx, query, setID, groupID))
}

// UpdateTemplateSetType changes a target set between warmup and working.
func (q *Queries) UpdateTemplateSetType(ctx context.Context, groupID, setID int64, setType models.SetType) error {
	query := `UPDATE template_sets SET type = ? WHERE id = ? AND template_set_group_id = ?`
	result, err := q.q.ExecContext(ctx, query, string(setType), setID, groupID)
	if err != nil {
		return fmt.Errorf("update template set: %w", err)
	}
	return requireAffected(result)
}

// ListTemplateSets returns a set-group's target sets sorted by index.
func (q *Queries) ListTemplateSets(ctx context.Context, groupID int64) ([]models.TemplateSet, error) {
	return q.queryTemplateSets(ctx, templateSetSelect+` WHERE template_set_group_id = ? ORDER BY idx`, groupID)
}

// ListTemplateSetsForTemplate returns every target set of a template, unordered.
func (q *Queries) ListTemplateSetsForTemplate(ctx context.Context, templateID int64) ([]models.TemplateSet, error) {
	return q.queryTemplateSets(ctx, templateSetSelect+` WHERE template_id = ?`, templateID)
}

func (q *Queries) queryTemplateSets(ctx context.Context, query string, args ...any) ([]models.TemplateSet, error) {
	rows, err := q.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list template sets: %w", err)
	}
	defer rows.Close()

	var sets []models.TemplateSet
	for rows.Next() {
		s, err := scanTemplateSet(rows)
		if err != nil {
			return nil, err
		}
		sets = append(sets, *s)
	}
	return sets, rows.Err()
}

// GetTemplateTree retrieves a template with its set-groups, exercises and sets,
// each level sorted by index.
func (q *Queries) GetTemplateTree(ctx context.Context, id int64) (*models.Template, error) {
	t, err := q.GetTemplate(ctx, id)
	if err != nil {
		return nil, err
	}

	groups, err := q.ListTemplateSetGroups(ctx, id)
	if err != nil {
		return nil, err
	}
	sets, err := q.ListTemplateSetsForTemplate(ctx, id)
	if err != nil {
		return nil, err
	}

	byGroup := make(map[int64][]models.TemplateSet)
	for _, s := range sets {
		byGroup[s.TemplateSetGroupID] = append(byGroup[s.TemplateSetGroupID], s)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Index < groups[j].Index })
	for i := range groups {
		children := byGroup[groups[i].ID]
		sort.Slice(children, func(a, b int) bool { return children[a].Index < children[b].Index })
		groups[i].Sets = children
	}
	t.SetGroups = groups
	return t, nil
}

func scanTemplate(row rowScanner) (*models.Template, error) {
	var t models.Template
	var createdAt int64
	if err := row.Scan(&t.ID, &t.Name, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan template: %w", err)
	}
	t.CreatedAt = fromMillis(createdAt)
	return &t, nil
}

func scanTemplateSetGroup(row rowScanner) (*models.TemplateSetGroup, error) {
	var g models.TemplateSetGroup
	var e models.Exercise
	var superset int
	var measuredIn string
	var createdAt int64
	err := row.Scan(&g.ID, &g.TemplateID, &g.ExerciseID, &g.Index, &g.RestDurationSeconds, &superset,
		&e.ID, &e.Name, &measuredIn, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan template set group: %w", err)
	}
	g.IsSuperset = superset == 1
	e.MeasuredIn = models.MeasuredIn(measuredIn)
	e.CreatedAt = fromMillis(createdAt)
	g.Exercise = &e
	return &g, nil
}

func scanTemplateSet(row rowScanner) (*models.TemplateSet, error) {
	var s models.TemplateSet
	var setType string
	if err := row.Scan(&s.ID, &s.TemplateSetGroupID, &s.TemplateID, &s.ExerciseID, &s.Index, &setType); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan template set: %w", err)
	}
	s.Type = models.SetType(setType)
	return &s, nil
}
