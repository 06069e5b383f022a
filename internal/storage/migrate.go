// ABOUTME: Data migration between training databases.
// ABOUTME: Copies every row from a source to an empty destination, e.g. local SQLite to Turso.
package storage

import (
	"context"
	"fmt"
)

// Dumper is implemented by any store that can dump and restore its data.
type Dumper interface {
	GetAllData(ctx context.Context) (*ExportData, error)
	ImportData(ctx context.Context, data *ExportData) error
}

// MigrateSummary holds counts of migrated entities.
type MigrateSummary struct {
	Exercises int
	Templates int
	Workouts  int
	Sets      int
}

// MigrateData copies all data from src to dst. The destination must be empty.
func MigrateData(ctx context.Context, src, dst Dumper) (*MigrateSummary, error) {
	data, err := src.GetAllData(ctx)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	if err := dst.ImportData(ctx, data); err != nil {
		return nil, fmt.Errorf("write destination: %w", err)
	}
	return &MigrateSummary{
		Exercises: len(data.Exercises),
		Templates: len(data.Templates),
		Workouts:  len(data.Workouts),
		Sets:      len(data.Sets),
	}, nil
}
