// Package grid provides the board topologies and pathfinding used by
// grid-movement games: bounded square and axial-hex coordinate systems with
// matching distance metrics, A* pathfinding and reachable-set search.
package grid

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Board errors, distinguishable with errors.Is.
var (
	ErrNoCell   = errors.New("no cell at position")
	ErrOccupied = errors.New("cell occupied")
)

// Position is a board coordinate: (x, y) on a square grid, axial (q, r) on
// a hex grid.
type Position struct {
	X int
	Y int
}

func (p Position) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// CellType classifies a cell's role on the board.
type CellType string

const (
	CellEmpty      CellType = "empty"
	CellBlocked    CellType = "blocked"
	CellStart      CellType = "start"
	CellGoal       CellType = "goal"
	CellCheckpoint CellType = "checkpoint"
)

// Cell is one board square. At most one player occupies a cell at a time.
// Points and Index carry the scoring payload of goal and checkpoint cells.
type Cell struct {
	Type     CellType
	Occupant uuid.UUID // uuid.Nil when vacant
	Points   int
	Index    int // checkpoint index, for once-only scoring
}

// Occupied reports whether a player is on the cell.
func (c *Cell) Occupied() bool { return c.Occupant != uuid.Nil }

// Grid is the shared surface of the square and hex boards. The distance
// metric of an implementation always matches its neighbor model, so path
// cost and straight-line heuristic stay admissible together.
type Grid interface {
	// Contains reports whether p is inside the board bounds.
	Contains(p Position) bool

	// Neighbors returns the in-bounds cells adjacent to p.
	Neighbors(p Position) []Position

	// Distance is the minimal step count between a and b, ignoring
	// blocking and occupancy.
	Distance(a, b Position) int

	// CellAt returns the cell at p, reporting absence for out-of-bounds.
	CellAt(p Position) (*Cell, bool)

	// SetCellType retypes the cell at p.
	SetCellType(p Position, t CellType) error

	// Occupy seats a player on the cell at p. Fails when the cell is
	// absent or already taken.
	Occupy(p Position, player uuid.UUID) error

	// Free vacates the cell at p. Vacating an absent or empty cell is a
	// no-op.
	Free(p Position)

	// IsWalkable reports whether p can be moved onto: in bounds, not
	// blocked, not occupied.
	IsWalkable(p Position) bool
}

// cellMap is the backing store shared by both topologies.
type cellMap map[Position]*Cell

func (m cellMap) cellAt(p Position) (*Cell, bool) {
	c, ok := m[p]
	return c, ok
}

func (m cellMap) setCellType(p Position, t CellType) error {
	c, ok := m[p]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoCell, p)
	}
	c.Type = t
	return nil
}

func (m cellMap) occupy(p Position, player uuid.UUID) error {
	c, ok := m[p]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoCell, p)
	}
	if c.Occupied() {
		return fmt.Errorf("%w: %s", ErrOccupied, p)
	}
	c.Occupant = player
	return nil
}

func (m cellMap) free(p Position) {
	if c, ok := m[p]; ok {
		c.Occupant = uuid.Nil
	}
}

func (m cellMap) isWalkable(p Position) bool {
	c, ok := m[p]
	return ok && c.Type != CellBlocked && !c.Occupied()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
