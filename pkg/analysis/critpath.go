package analysis

import "github.com/beadviewer/bvgraph/pkg/graph"

// Critical-path analysis is defined over acyclic graphs only. Cyclic input
// degrades to the documented best-effort zero: all heights 0, an empty path,
// length 0. Callers gate on HasCycles when they need to distinguish "flat
// DAG" from "cycle".

// TopologicalOrder returns a topological order of the graph via Kahn's
// peeling, ties broken by ascending node index, and true when the graph is
// acyclic. For cyclic graphs it returns nil and false.
func TopologicalOrder(g *graph.DiGraph) ([]int, bool) {
	n := g.NodeCount()
	indeg := make([]int, n)
	for v := 0; v < n; v++ {
		for _, w := range g.Successors(v) {
			indeg[w]++
		}
	}

	// Min-index frontier keeps the order deterministic.
	frontier := &intMinHeap{}
	for v := 0; v < n; v++ {
		if indeg[v] == 0 {
			frontier.push(v)
		}
	}

	order := make([]int, 0, n)
	for frontier.len() > 0 {
		v := frontier.pop()
		order = append(order, v)
		for _, w := range g.Successors(v) {
			indeg[w]--
			if indeg[w] == 0 {
				frontier.push(w)
			}
		}
	}

	if len(order) != n {
		return nil, false
	}
	return order, true
}

// CriticalPathHeights returns, per node, the longest path length in edge
// count ending at that node, computed by dynamic programming over a
// topological order. Sources have height 0.
func CriticalPathHeights(g *graph.DiGraph) []float64 {
	n := g.NodeCount()
	heights := make([]float64, n)
	order, ok := TopologicalOrder(g)
	if !ok {
		return heights
	}

	for _, v := range order {
		for _, w := range g.Successors(v) {
			if h := heights[v] + 1; h > heights[w] {
				heights[w] = h
			}
		}
	}
	return heights
}

// CriticalPathLength returns the maximum height over all nodes: the number of
// edges on the longest path in the graph.
func CriticalPathLength(g *graph.DiGraph) float64 {
	max := 0.0
	for _, h := range CriticalPathHeights(g) {
		if h > max {
			max = h
		}
	}
	return max
}

// CriticalPathNodes returns one longest path as a node-index sequence from a
// source to the node of maximum height. Every tie (terminal choice and each
// backward hop) resolves to the lowest node index, so the result is
// deterministic. Cyclic graphs yield an empty slice.
func CriticalPathNodes(g *graph.DiGraph) []int {
	n := g.NodeCount()
	if n == 0 {
		return []int{}
	}
	heights := CriticalPathHeights(g)
	if _, ok := TopologicalOrder(g); !ok {
		return []int{}
	}

	// Terminal = first node achieving the maximum height.
	end := 0
	for v := 1; v < n; v++ {
		if heights[v] > heights[end] {
			end = v
		}
	}

	// Walk backwards along predecessors that realize height-1 at each hop.
	path := []int{end}
	cur := end
	for heights[cur] > 0 {
		next := -1
		for _, p := range g.Predecessors(cur) {
			if heights[p] == heights[cur]-1 && (next == -1 || p < next) {
				next = p
			}
		}
		if next == -1 {
			break
		}
		path = append(path, next)
		cur = next
	}

	// Reverse into source-to-terminal order.
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// intMinHeap is a minimal binary min-heap over ints for the topological
// frontier.
type intMinHeap struct {
	xs []int
}

func (h *intMinHeap) len() int { return len(h.xs) }

func (h *intMinHeap) push(x int) {
	h.xs = append(h.xs, x)
	i := len(h.xs) - 1
	for i > 0 {
		parent := (i - 1) / 2
		if h.xs[parent] <= h.xs[i] {
			break
		}
		h.xs[parent], h.xs[i] = h.xs[i], h.xs[parent]
		i = parent
	}
}

func (h *intMinHeap) pop() int {
	top := h.xs[0]
	last := len(h.xs) - 1
	h.xs[0] = h.xs[last]
	h.xs = h.xs[:last]
	i := 0
	for {
		l, r := 2*i+1, 2*i+2
		small := i
		if l < len(h.xs) && h.xs[l] < h.xs[small] {
			small = l
		}
		if r < len(h.xs) && h.xs[r] < h.xs[small] {
			small = r
		}
		if small == i {
			break
		}
		h.xs[i], h.xs[small] = h.xs[small], h.xs[i]
		i = small
	}
	return top
}
