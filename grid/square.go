package grid

import (
	"fmt"

	"github.com/google/uuid"
)

// Square is a bounded w×h grid. With diagonal movement disabled it is a
// 4-neighbor board measured in Manhattan distance; enabled, an 8-neighbor
// board measured in Chebyshev distance.
type Square struct {
	width    int
	height   int
	diagonal bool
	cells    cellMap
}

var cardinalOffsets = []Position{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

var diagonalOffsets = []Position{{1, -1}, {1, 1}, {-1, 1}, {-1, -1}}

// NewSquare builds an all-empty square grid.
func NewSquare(width, height int, diagonal bool) (*Square, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("grid dimensions %dx%d", width, height)
	}
	g := &Square{width: width, height: height, diagonal: diagonal, cells: make(cellMap, width*height)}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g.cells[Position{x, y}] = &Cell{Type: CellEmpty}
		}
	}
	return g, nil
}

func (g *Square) Width() int     { return g.width }
func (g *Square) Height() int    { return g.height }
func (g *Square) Diagonal() bool { return g.diagonal }

func (g *Square) Contains(p Position) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

func (g *Square) Neighbors(p Position) []Position {
	offsets := cardinalOffsets
	if g.diagonal {
		offsets = append(append([]Position{}, cardinalOffsets...), diagonalOffsets...)
	}
	out := make([]Position, 0, len(offsets))
	for _, o := range offsets {
		n := Position{p.X + o.X, p.Y + o.Y}
		if g.Contains(n) {
			out = append(out, n)
		}
	}
	return out
}

// Distance is Manhattan in 4-neighbor mode and Chebyshev in 8-neighbor
// mode, matching the respective step models.
func (g *Square) Distance(a, b Position) int {
	dx, dy := abs(a.X-b.X), abs(a.Y-b.Y)
	if g.diagonal {
		return max(dx, dy)
	}
	return dx + dy
}

func (g *Square) CellAt(p Position) (*Cell, bool)           { return g.cells.cellAt(p) }
func (g *Square) SetCellType(p Position, t CellType) error  { return g.cells.setCellType(p, t) }
func (g *Square) Occupy(p Position, id uuid.UUID) error     { return g.cells.occupy(p, id) }
func (g *Square) Free(p Position)                           { g.cells.free(p) }
func (g *Square) IsWalkable(p Position) bool                { return g.cells.isWalkable(p) }
