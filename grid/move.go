package grid

// MoveSpec is the movement allowance a card grants, topology-agnostic.
type MoveSpec struct {
	Distance int
	Jump     bool // path may cross blocked or occupied cells
	Teleport bool // no path required at all, distance check only
}

// IsValidMove reports whether a move from from to to is legal under spec.
// The destination must be in bounds and walkable no matter the card;
// teleports then only need the straight-line distance to fit, while jump
// and plain cards need a path within the distance budget, with jump
// ignoring walkability along the way.
func IsValidMove(g Grid, from, to Position, spec MoveSpec) bool {
	if !g.Contains(to) || !g.IsWalkable(to) {
		return false
	}
	if g.Distance(from, to) > spec.Distance {
		return false
	}
	if spec.Teleport {
		return true
	}
	return FindPath(g, from, to, spec.Distance, spec.Jump) != nil
}
