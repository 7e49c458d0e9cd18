package grid

// pathNode is an A* open/closed-list entry. order is the insertion counter
// used to break f-cost ties deterministically.
type pathNode struct {
	pos    Position
	gCost  int
	hCost  int
	parent *pathNode
	order  int
}

func (n *pathNode) fCost() int { return n.gCost + n.hCost }

// FindPath runs A* from start to end, expanding no node past maxDistance
// steps. Non-walkable cells stop the search unless jump is set, which walks
// straight over them. The result includes both endpoints; start == end
// yields a single-element path. When no path exists within the budget the
// result is nil, never a partial path.
func FindPath(g Grid, start, end Position, maxDistance int, jump bool) []Position {
	if !g.Contains(start) || !g.Contains(end) {
		return nil
	}
	if start == end {
		return []Position{start}
	}
	if maxDistance <= 0 {
		return nil
	}

	order := 0
	open := []*pathNode{{pos: start, hCost: g.Distance(start, end)}}
	closed := map[Position]bool{}

	for len(open) > 0 {
		// Lowest f-cost wins; equal costs keep the earliest insertion.
		best := 0
		for i := 1; i < len(open); i++ {
			if open[i].fCost() < open[best].fCost() ||
				(open[i].fCost() == open[best].fCost() && open[i].order < open[best].order) {
				best = i
			}
		}
		current := open[best]
		open = append(open[:best], open[best+1:]...)

		if current.pos == end {
			return reconstruct(current)
		}
		closed[current.pos] = true

		for _, nb := range g.Neighbors(current.pos) {
			if closed[nb] {
				continue
			}
			if !jump && !g.IsWalkable(nb) {
				continue
			}
			gCost := current.gCost + 1
			if gCost > maxDistance {
				continue
			}
			if existing := findOpen(open, nb); existing != nil {
				if gCost < existing.gCost {
					existing.gCost = gCost
					existing.parent = current
				}
				continue
			}
			order++
			open = append(open, &pathNode{
				pos:    nb,
				gCost:  gCost,
				hCost:  g.Distance(nb, end),
				parent: current,
				order:  order,
			})
		}
	}
	return nil
}

func findOpen(open []*pathNode, p Position) *pathNode {
	for _, n := range open {
		if n.pos == p {
			return n
		}
	}
	return nil
}

func reconstruct(n *pathNode) []Position {
	var rev []Position
	for ; n != nil; n = n.parent {
		rev = append(rev, n.pos)
	}
	out := make([]Position, len(rev))
	for i, p := range rev {
		out[len(out)-1-i] = p
	}
	return out
}

// ReachablePositions runs a breadth-first search from start and returns
// every position reachable in 1..maxDistance steps, start excluded, each
// cell visited once. Jump bypasses walkability the same way FindPath does.
func ReachablePositions(g Grid, start Position, maxDistance int, jump bool) []Position {
	if !g.Contains(start) || maxDistance <= 0 {
		return nil
	}

	type frame struct {
		pos   Position
		depth int
	}
	visited := map[Position]bool{start: true}
	queue := []frame{{start, 0}}
	var out []Position

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.depth == maxDistance {
			continue
		}
		for _, nb := range g.Neighbors(cur.pos) {
			if visited[nb] {
				continue
			}
			if !jump && !g.IsWalkable(nb) {
				continue
			}
			visited[nb] = true
			out = append(out, nb)
			queue = append(queue, frame{nb, cur.depth + 1})
		}
	}
	return out
}
