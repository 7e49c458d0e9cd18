package grid

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// Hex is a bounded hex board in axial coordinates: q along X, r along Y,
// over a rectangular axial range. Distances use the standard cube metric.
type Hex struct {
	width  int // q range
	height int // r range
	cells  cellMap
}

// The six axial neighbor offsets, clockwise from east.
var hexOffsets = []Position{{1, 0}, {1, -1}, {0, -1}, {-1, 0}, {-1, 1}, {0, 1}}

// NewHex builds an all-empty hex grid over q ∈ [0,width), r ∈ [0,height).
func NewHex(width, height int) (*Hex, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("grid dimensions %dx%d", width, height)
	}
	g := &Hex{width: width, height: height, cells: make(cellMap, width*height)}
	for r := 0; r < height; r++ {
		for q := 0; q < width; q++ {
			g.cells[Position{q, r}] = &Cell{Type: CellEmpty}
		}
	}
	return g, nil
}

func (g *Hex) Width() int  { return g.width }
func (g *Hex) Height() int { return g.height }

func (g *Hex) Contains(p Position) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

func (g *Hex) Neighbors(p Position) []Position {
	out := make([]Position, 0, len(hexOffsets))
	for _, o := range hexOffsets {
		n := Position{p.X + o.X, p.Y + o.Y}
		if g.Contains(n) {
			out = append(out, n)
		}
	}
	return out
}

// cube converts an axial position to cube coordinates, where x+y+z = 0.
func cube(p Position) (x, y, z int) {
	x = p.X
	z = p.Y
	y = -x - z
	return
}

// Distance is the cube metric (|Δx|+|Δy|+|Δz|)/2.
func (g *Hex) Distance(a, b Position) int {
	ax, ay, az := cube(a)
	bx, by, bz := cube(b)
	return (abs(ax-bx) + abs(ay-by) + abs(az-bz)) / 2
}

// Range enumerates every in-bounds cell within radius of center, the
// center included.
func (g *Hex) Range(center Position, radius int) []Position {
	var out []Position
	for dx := -radius; dx <= radius; dx++ {
		lo := max(-radius, -dx-radius)
		hi := min(radius, -dx+radius)
		for dy := lo; dy <= hi; dy++ {
			dz := -dx - dy
			p := Position{center.X + dx, center.Y + dz}
			if g.Contains(p) {
				out = append(out, p)
			}
		}
	}
	return out
}

// Line interpolates cube coordinates between the endpoints and rounds each
// sample back onto the grid. Out-of-bounds samples are dropped.
func (g *Hex) Line(from, to Position) []Position {
	n := g.Distance(from, to)
	if n == 0 {
		if g.Contains(from) {
			return []Position{from}
		}
		return nil
	}
	ax, ay, az := cube(from)
	bx, by, bz := cube(to)
	var out []Position
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		q, r := cubeRound(
			lerp(ax, bx, t),
			lerp(ay, by, t),
			lerp(az, bz, t),
		)
		p := Position{q, r}
		if g.Contains(p) {
			out = append(out, p)
		}
	}
	return out
}

func lerp(a, b int, t float64) float64 {
	return float64(a) + float64(b-a)*t
}

// cubeRound rounds fractional cube coordinates to the nearest valid cube
// triple: the axis with the largest rounding error is recomputed from the
// other two to preserve x+y+z = 0.
func cubeRound(x, y, z float64) (q, r int) {
	rx, ry, rz := math.Round(x), math.Round(y), math.Round(z)
	dx, dy, dz := math.Abs(rx-x), math.Abs(ry-y), math.Abs(rz-z)
	switch {
	case dx > dy && dx > dz:
		rx = -ry - rz
	case dy > dz:
		ry = -rx - rz
	default:
		rz = -rx - ry
	}
	return int(rx), int(rz)
}

func (g *Hex) CellAt(p Position) (*Cell, bool)          { return g.cells.cellAt(p) }
func (g *Hex) SetCellType(p Position, t CellType) error { return g.cells.setCellType(p, t) }
func (g *Hex) Occupy(p Position, id uuid.UUID) error    { return g.cells.occupy(p, id) }
func (g *Hex) Free(p Position)                          { g.cells.free(p) }
func (g *Hex) IsWalkable(p Position) bool               { return g.cells.isWalkable(p) }
