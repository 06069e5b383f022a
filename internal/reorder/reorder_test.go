// ABOUTME: Tests for the ordered-collection reindexer.
// ABOUTME: Uses an in-memory indexer that enforces per-parent index uniqueness.
package reorder

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// memIndexer mimics a table with UNIQUE(parent, index).
type memIndexer struct {
	rows   map[int64]map[int64]int // parent -> member -> index
	writes int
}

func newMemIndexer() *memIndexer {
	return &memIndexer{rows: make(map[int64]map[int64]int)}
}

func (m *memIndexer) add(parent, member int64, index int) {
	if m.rows[parent] == nil {
		m.rows[parent] = make(map[int64]int)
	}
	m.rows[parent][member] = index
}

func (m *memIndexer) ShiftIndexes(_ context.Context, parent int64, offset int) error {
	// Row-by-row like a database would, checking uniqueness after each write.
	members := m.rows[parent]
	ids := make([]int64, 0, len(members))
	for id := range members {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		if err := m.write(parent, id, members[id]+offset); err != nil {
			return err
		}
	}
	return nil
}

func (m *memIndexer) SetIndex(_ context.Context, parent, member int64, index int) error {
	if _, ok := m.rows[parent][member]; !ok {
		return ErrMemberNotFound
	}
	return m.write(parent, member, index)
}

func (m *memIndexer) write(parent, member int64, index int) error {
	for id, idx := range m.rows[parent] {
		if id != member && idx == index {
			return fmt.Errorf("unique violation: parent %d index %d", parent, index)
		}
	}
	m.rows[parent][member] = index
	m.writes++
	return nil
}

func (m *memIndexer) ordered(parent int64) []int64 {
	ids := make([]int64, 0, len(m.rows[parent]))
	for id := range m.rows[parent] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return m.rows[parent][ids[i]] < m.rows[parent][ids[j]] })
	return ids
}

func (m *memIndexer) requireContiguous(t *testing.T, parent int64) {
	t.Helper()
	seen := make(map[int]bool)
	for _, idx := range m.rows[parent] {
		seen[idx] = true
	}
	for i := 0; i < len(m.rows[parent]); i++ {
		require.Truef(t, seen[i], "index %d missing in %v", i, m.rows[parent])
	}
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("up")
	require.NoError(t, err)
	assert.Equal(t, Up, d)

	d, err = ParseDirection("down")
	require.NoError(t, err)
	assert.Equal(t, Down, d)

	_, err = ParseDirection("sideways")
	assert.ErrorIs(t, err, ErrInvalidDirection)
}

func TestMove(t *testing.T) {
	ordered := []int64{10, 20, 30}

	tests := []struct {
		name        string
		id          int64
		dir         Direction
		want        []int64
		wantChanged bool
	}{
		{"middle up", 20, Up, []int64{20, 10, 30}, true},
		{"middle down", 20, Down, []int64{10, 30, 20}, true},
		{"first up is a no-op", 10, Up, []int64{10, 20, 30}, false},
		{"last down is a no-op", 30, Down, []int64{10, 20, 30}, false},
		{"first down", 10, Down, []int64{20, 10, 30}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed, err := Move(ordered, tt.id, tt.dir)
			require.NoError(t, err)
			assert.Equal(t, tt.wantChanged, changed)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, []int64{10, 20, 30}, ordered, "input must not be mutated")
}

func TestMoveUnknownMember(t *testing.T) {
	_, _, err := Move([]int64{1, 2}, 3, Up)
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestRemove(t *testing.T) {
	got, err := Remove([]int64{1, 2, 3}, 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, got)

	_, err = Remove([]int64{1, 2, 3}, 4)
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestReindexSwapsWithoutUniqueViolation(t *testing.T) {
	ctx := context.Background()
	ix := newMemIndexer()
	ix.add(1, 100, 0)
	ix.add(1, 101, 1)
	ix.add(1, 102, 2)
	ix.add(2, 200, 0)

	require.NoError(t, Reindex(ctx, ix, 1, []int64{102, 100, 101}))

	assert.Equal(t, []int64{102, 100, 101}, ix.ordered(1))
	ix.requireContiguous(t, 1)
	assert.Equal(t, 0, ix.rows[2][200], "other parents untouched")
}

func TestReindexClosesGap(t *testing.T) {
	ctx := context.Background()
	ix := newMemIndexer()
	ix.add(1, 100, 0)
	ix.add(1, 102, 2)
	ix.add(1, 103, 3)

	require.NoError(t, Reindex(ctx, ix, 1, []int64{100, 102, 103}))
	assert.Equal(t, map[int64]int{100: 0, 102: 1, 103: 2}, ix.rows[1])
}

func TestReindexPropagatesErrors(t *testing.T) {
	ctx := context.Background()
	ix := newMemIndexer()
	ix.add(1, 100, 0)

	err := Reindex(ctx, ix, 1, []int64{100, 999})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMemberNotFound))
}

func TestRandomOperationsKeepIndexesContiguous(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewSource(42))
	ix := newMemIndexer()
	const parent = 7
	next := int64(1)

	for step := 0; step < 500; step++ {
		current := ix.ordered(parent)
		switch op := rng.Intn(3); {
		case op == 0 || len(current) == 0:
			// append at max+1
			ix.add(parent, next, len(current))
			next++
		case op == 1:
			victim := current[rng.Intn(len(current))]
			survivors, err := Remove(current, victim)
			require.NoError(t, err)
			delete(ix.rows[parent], victim)
			require.NoError(t, Reindex(ctx, ix, parent, survivors))
		default:
			id := current[rng.Intn(len(current))]
			dir := Up
			if rng.Intn(2) == 0 {
				dir = Down
			}
			moved, changed, err := Move(current, id, dir)
			require.NoError(t, err)
			if changed {
				require.NoError(t, Reindex(ctx, ix, parent, moved))
				require.Equal(t, moved, ix.ordered(parent))
			}
		}
		ix.requireContiguous(t, parent)
	}
}
