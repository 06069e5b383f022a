// ABOUTME: Remove and move helpers shared by the four ordered collections.
// ABOUTME: Scope is checked before any write, then the reorder package renumbers.
package training

import (
	"context"
	"errors"

	"github.com/harperreed/reps/internal/reorder"
	"github.com/harperreed/reps/internal/storage"
)

// removeMember deletes memberID from parentID and closes the gap.
func (s *Service) removeMember(ctx context.Context, tx *storage.Tx, c storage.Collection, parentID, memberID int64, missing error) error {
	ids, err := tx.OrderedIDs(ctx, c, parentID)
	if err != nil {
		return err
	}
	survivors, err := reorder.Remove(ids, memberID)
	if errors.Is(err, reorder.ErrMemberNotFound) {
		return missing
	}

	if err := tx.DeleteMember(ctx, c, parentID, memberID); err != nil {
		return err
	}
	return s.reindex(ctx, tx, c, parentID, survivors)
}

// moveMember swaps memberID with its neighbor. Moving past either end does nothing.
func (s *Service) moveMember(ctx context.Context, tx *storage.Tx, c storage.Collection, parentID, memberID int64, dir reorder.Direction, missing error) error {
	ids, err := tx.OrderedIDs(ctx, c, parentID)
	if err != nil {
		return err
	}
	moved, changed, err := reorder.Move(ids, memberID, dir)
	switch {
	case errors.Is(err, reorder.ErrMemberNotFound):
		return missing
	case errors.Is(err, reorder.ErrInvalidDirection):
		return invalid("direction", "Direction must be up or down")
	case err != nil:
		return err
	}
	if !changed {
		return nil
	}
	return s.reindex(ctx, tx, c, parentID, moved)
}

func (s *Service) reindex(ctx context.Context, tx *storage.Tx, c storage.Collection, parentID int64, ordered []int64) error {
	if err := reorder.Reindex(ctx, tx.Indexer(c), parentID, ordered); err != nil {
		return err
	}
	s.metrics.CounterReindexes.WithLabelValues(c.Name).Inc()
	return nil
}
