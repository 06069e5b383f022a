// ABOUTME: Generic renumbering of parent-scoped ordered collections.
// ABOUTME: Two-phase offset-then-assign so a unique (parent, index) constraint never trips.
package reorder

import (
	"context"
	"errors"
	"fmt"
)

// Offset is added to every index before final positions are assigned.
// It must exceed any realistic collection size.
const Offset = 1_000_000

var (
	// ErrMemberNotFound is returned when a member is not part of the ordering.
	ErrMemberNotFound = errors.New("member not found in parent")
	// ErrInvalidDirection is returned by ParseDirection for unknown values.
	ErrInvalidDirection = errors.New("direction must be up or down")
)

// Direction of a single-step move.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// ParseDirection converts user input into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case Up, Down:
		return Direction(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidDirection, s)
	}
}

// Indexer writes index values for the members of one collection.
// Implementations must run against the same transaction for the whole Reindex call.
type Indexer interface {
	// ShiftIndexes adds offset to the index of every member of parentID.
	ShiftIndexes(ctx context.Context, parentID int64, offset int) error
	// SetIndex sets the index of memberID, scoped to parentID.
	SetIndex(ctx context.Context, parentID, memberID int64, index int) error
}

// Reindex rewrites the indexes of parentID's members so that each member's
// index equals its position in ordered.
func Reindex(ctx context.Context, ix Indexer, parentID int64, ordered []int64) error {
	if err := ix.ShiftIndexes(ctx, parentID, Offset); err != nil {
		return fmt.Errorf("shift indexes: %w", err)
	}
	for pos, id := range ordered {
		if err := ix.SetIndex(ctx, parentID, id, pos); err != nil {
			return fmt.Errorf("set index of %d to %d: %w", id, pos, err)
		}
	}
	return nil
}

// Move returns a copy of ordered with memberID swapped with its neighbor in
// direction dir. changed is false when the member is already at the boundary.
func Move(ordered []int64, memberID int64, dir Direction) (moved []int64, changed bool, err error) {
	pos := indexOf(ordered, memberID)
	if pos < 0 {
		return nil, false, ErrMemberNotFound
	}

	target := pos - 1
	if dir == Down {
		target = pos + 1
	} else if dir != Up {
		return nil, false, fmt.Errorf("%w: %q", ErrInvalidDirection, dir)
	}
	if target < 0 || target >= len(ordered) {
		return ordered, false, nil
	}

	moved = append([]int64(nil), ordered...)
	moved[pos], moved[target] = moved[target], moved[pos]
	return moved, true, nil
}

// Remove returns a copy of ordered without memberID.
func Remove(ordered []int64, memberID int64) ([]int64, error) {
	pos := indexOf(ordered, memberID)
	if pos < 0 {
		return nil, ErrMemberNotFound
	}
	out := make([]int64, 0, len(ordered)-1)
	out = append(out, ordered[:pos]...)
	return append(out, ordered[pos+1:]...), nil
}

func indexOf(ordered []int64, id int64) int {
	for i, v := range ordered {
		if v == id {
			return i
		}
	}
	return -1
}
