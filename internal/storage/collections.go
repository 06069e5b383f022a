// ABOUTME: Generic access to the four parent-scoped ordered collections.
// ABOUTME: Each Collection descriptor doubles as a reorder.Indexer bound to a Queries handle.
package storage

import (
	"context"
	"fmt"

	"github.com/harperreed/reps/internal/reorder"
)

// Collection names a table whose rows are ordered by idx within a parent.
type Collection struct {
	Name         string
	Table        string
	ParentColumn string
}

var (
	TemplateSetGroups = Collection{Name: "template_set_groups", Table: "template_set_groups", ParentColumn: "template_id"}
	TemplateSets      = Collection{Name: "template_sets", Table: "template_sets", ParentColumn: "template_set_group_id"}
	SetGroups         = Collection{Name: "set_groups", Table: "set_groups", ParentColumn: "workout_id"}
	Sets              = Collection{Name: "sets", Table: "sets", ParentColumn: "set_group_id"}
)

// OrderedIDs returns the member ids of parentID sorted by index.
func (q *Queries) OrderedIDs(ctx context.Context, c Collection, parentID int64) ([]int64, error) {
	query := fmt.Sprintf(`SELECT id FROM %s WHERE %s = ? ORDER BY idx`, c.Table, c.ParentColumn)
	rows, err := q.q.QueryContext(ctx, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("list %s ids: %w", c.Name, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan %s id: %w", c.Name, err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// NextIndex returns the index a new member of parentID should take:
// one past the current maximum, or 0 for an empty collection.
func (q *Queries) NextIndex(ctx context.Context, c Collection, parentID int64) (int, error) {
	query := fmt.Sprintf(`SELECT COALESCE(MAX(idx) + 1, 0) FROM %s WHERE %s = ?`, c.Table, c.ParentColumn)
	var next int
	if err := q.q.QueryRowContext(ctx, query, parentID).Scan(&next); err != nil {
		return 0, fmt.Errorf("next %s index: %w", c.Name, err)
	}
	return next, nil
}

// DeleteMember deletes memberID if it belongs to parentID.
func (q *Queries) DeleteMember(ctx context.Context, c Collection, parentID, memberID int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ? AND %s = ?`, c.Table, c.ParentColumn)
	result, err := q.q.ExecContext(ctx, query, memberID, parentID)
	if err != nil {
		return fmt.Errorf("delete %s: %w", c.Name, err)
	}
	return requireAffected(result)
}

// Indexer binds c to this handle so the reorder package can renumber it.
func (q *Queries) Indexer(c Collection) reorder.Indexer {
	return &collectionIndexer{q: q, c: c}
}

type collectionIndexer struct {
	q *Queries
	c Collection
}

func (ix *collectionIndexer) ShiftIndexes(ctx context.Context, parentID int64, offset int) error {
	query := fmt.Sprintf(`UPDATE %s SET idx = idx + ? WHERE %s = ?`, ix.c.Table, ix.c.ParentColumn)
	if _, err := ix.q.q.ExecContext(ctx, query, offset, parentID); err != nil {
		return fmt.Errorf("shift %s: %w", ix.c.Name, err)
	}
	return nil
}

func (ix *collectionIndexer) SetIndex(ctx context.Context, parentID, memberID int64, index int) error {
	query := fmt.Sprintf(`UPDATE %s SET idx = ? WHERE id = ? AND %s = ?`, ix.c.Table, ix.c.ParentColumn)
	result, err := ix.q.q.ExecContext(ctx, query, index, memberID, parentID)
	if err != nil {
		return fmt.Errorf("set %s index: %w", ix.c.Name, err)
	}
	return requireAffected(result)
}
