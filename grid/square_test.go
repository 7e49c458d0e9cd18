package grid

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSquare(t *testing.T, w, h int, diagonal bool) *Square {
	t.Helper()
	g, err := NewSquare(w, h, diagonal)
	require.NoError(t, err)
	return g
}

func TestSquareDistance(t *testing.T) {
	plain := mustSquare(t, 5, 5, false)
	assert.Equal(t, 7, plain.Distance(Position{0, 0}, Position{3, 4}), "Manhattan")

	diag := mustSquare(t, 5, 5, true)
	assert.Equal(t, 4, diag.Distance(Position{0, 0}, Position{3, 4}), "Chebyshev")
}

func TestSquareNeighborCounts(t *testing.T) {
	plain := mustSquare(t, 5, 5, false)
	assert.Len(t, plain.Neighbors(Position{2, 2}), 4)
	assert.Len(t, plain.Neighbors(Position{0, 0}), 2, "corner clips out-of-bounds")

	diag := mustSquare(t, 5, 5, true)
	assert.Len(t, diag.Neighbors(Position{2, 2}), 8)
	assert.Len(t, diag.Neighbors(Position{0, 0}), 3)
}

func TestSquareBounds(t *testing.T) {
	g := mustSquare(t, 3, 3, false)
	assert.True(t, g.Contains(Position{0, 0}))
	assert.True(t, g.Contains(Position{2, 2}))
	assert.False(t, g.Contains(Position{3, 0}))
	assert.False(t, g.Contains(Position{0, -1}))

	_, ok := g.CellAt(Position{5, 5})
	assert.False(t, ok)
}

func TestOccupancy(t *testing.T) {
	g := mustSquare(t, 3, 3, false)
	p := Position{1, 1}
	a, b := uuid.New(), uuid.New()

	require.NoError(t, g.Occupy(p, a))
	assert.ErrorIs(t, g.Occupy(p, b), ErrOccupied, "one occupant per cell")
	assert.False(t, g.IsWalkable(p))

	g.Free(p)
	assert.True(t, g.IsWalkable(p))
	require.NoError(t, g.Occupy(p, b))

	assert.ErrorIs(t, g.Occupy(Position{9, 9}, a), ErrNoCell, "absent cell")
	g.Free(Position{9, 9}) // no-op
}

func TestWalkability(t *testing.T) {
	g := mustSquare(t, 3, 3, false)
	require.NoError(t, g.SetCellType(Position{1, 0}, CellBlocked))

	assert.False(t, g.IsWalkable(Position{1, 0}))
	assert.True(t, g.IsWalkable(Position{0, 0}))
	assert.False(t, g.IsWalkable(Position{4, 4}), "out of bounds is never walkable")
	assert.ErrorIs(t, g.SetCellType(Position{4, 4}, CellGoal), ErrNoCell)
}
