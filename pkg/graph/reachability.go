package graph

// An edge u -> v means "v is blocked by u until u is closed". The closed set
// is a per-call boolean overlay indexed by node; it may be shorter than the
// node count, in which case missing entries read as false.

// closedAt reads the closed flag for idx, tolerating short slices.
func closedAt(closed []bool, idx int) bool {
	return idx < len(closed) && closed[idx]
}

// IsActionable reports whether node idx can be worked on under the given
// closed set: it is not closed itself and every predecessor is closed.
// A node with no predecessors is actionable unless closed. Out-of-range
// indices are never actionable.
func IsActionable(g *DiGraph, idx int, closed []bool) bool {
	if idx < 0 || idx >= g.NodeCount() {
		return false
	}
	if closedAt(closed, idx) {
		return false
	}
	for _, p := range g.Predecessors(idx) {
		if !closedAt(closed, p) {
			return false
		}
	}
	return true
}

// ActionableNodes returns every actionable node index in ascending order.
func ActionableNodes(g *DiGraph, closed []bool) []int {
	n := g.NodeCount()
	out := make([]int, 0, n)
	for v := 0; v < n; v++ {
		if IsActionable(g, v, closed) {
			out = append(out, v)
		}
	}
	return out
}
