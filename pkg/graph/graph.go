// Package graph provides the directed dependency-graph substrate shared by
// every analysis in this module.
//
// A DiGraph is built once through AddNode/AddEdge and is immutable afterwards.
// Nodes are opaque string identifiers mapped to dense integer indices in
// insertion order; every algorithm in pkg/analysis and pkg/whatif addresses
// nodes by index and returns dense result slices aligned with that order.
// Once built, a DiGraph is safe for unlimited concurrent readers because
// nothing mutates it after construction.
package graph

import "fmt"

// DiGraph is a directed graph with dense integer node indices.
//
// Edges are stored twice (forward and reverse adjacency) so that both
// successor and predecessor scans are O(degree). Duplicate edges and
// self-loops are stored as given; deduplication is left to the algorithms
// that require simple graphs.
type DiGraph struct {
	ids   []string
	idMap map[string]int

	succ [][]int
	pred [][]int

	edgeCount int
}

// New returns an empty graph.
func New() *DiGraph {
	return WithCapacity(0, 0)
}

// WithCapacity returns an empty graph pre-sized for the expected number of
// nodes and edges. Capacities are hints only.
func WithCapacity(nodes, edges int) *DiGraph {
	if nodes < 0 {
		nodes = 0
	}
	return &DiGraph{
		ids:   make([]string, 0, nodes),
		idMap: make(map[string]int, nodes),
		succ:  make([][]int, 0, nodes),
		pred:  make([][]int, 0, nodes),
	}
}

// AddNode registers an identifier and returns its dense index.
// Re-adding an existing identifier returns the original index unchanged,
// keeping the index<->identifier mapping bijective.
func (g *DiGraph) AddNode(id string) int {
	if idx, ok := g.idMap[id]; ok {
		return idx
	}
	idx := len(g.ids)
	g.idMap[id] = idx
	g.ids = append(g.ids, id)
	g.succ = append(g.succ, nil)
	g.pred = append(g.pred, nil)
	return idx
}

// AddEdge records the directed edge from -> to ("to is blocked by from").
//
// Endpoint indices must have been produced by AddNode on this graph;
// anything else is a precondition violation and fails loudly instead of
// silently corrupting the adjacency lists.
func (g *DiGraph) AddEdge(from, to int) error {
	n := len(g.ids)
	if from < 0 || from >= n {
		return fmt.Errorf("graph: edge source index %d out of range [0,%d)", from, n)
	}
	if to < 0 || to >= n {
		return fmt.Errorf("graph: edge target index %d out of range [0,%d)", to, n)
	}
	g.succ[from] = append(g.succ[from], to)
	g.pred[to] = append(g.pred[to], from)
	g.edgeCount++
	return nil
}

// NodeCount returns the number of nodes.
func (g *DiGraph) NodeCount() int { return len(g.ids) }

// EdgeCount returns the number of edges, duplicates included.
func (g *DiGraph) EdgeCount() int { return g.edgeCount }

// NodeIndex returns the dense index for an identifier.
func (g *DiGraph) NodeIndex(id string) (int, bool) {
	idx, ok := g.idMap[id]
	return idx, ok
}

// NodeID returns the identifier for a dense index, or "" when out of range.
func (g *DiGraph) NodeID(idx int) string {
	if idx < 0 || idx >= len(g.ids) {
		return ""
	}
	return g.ids[idx]
}

// NodeIDs returns a copy of all identifiers in insertion order.
func (g *DiGraph) NodeIDs() []string {
	out := make([]string, len(g.ids))
	copy(out, g.ids)
	return out
}

// OutDegree returns the number of outgoing edges of idx (0 when out of range).
func (g *DiGraph) OutDegree(idx int) int {
	if idx < 0 || idx >= len(g.succ) {
		return 0
	}
	return len(g.succ[idx])
}

// InDegree returns the number of incoming edges of idx (0 when out of range).
func (g *DiGraph) InDegree(idx int) int {
	if idx < 0 || idx >= len(g.pred) {
		return 0
	}
	return len(g.pred[idx])
}

// Successors returns the outgoing neighbors of idx in edge insertion order.
// The slice is shared with the graph's internal storage: callers must treat
// it as read-only. Out-of-range indices yield nil.
func (g *DiGraph) Successors(idx int) []int {
	if idx < 0 || idx >= len(g.succ) {
		return nil
	}
	return g.succ[idx]
}

// Predecessors returns the incoming neighbors of idx in edge insertion order.
// Same sharing contract as Successors.
func (g *DiGraph) Predecessors(idx int) []int {
	if idx < 0 || idx >= len(g.pred) {
		return nil
	}
	return g.pred[idx]
}

// Density returns e / (n * (n-1)), or 0 for graphs with fewer than two nodes.
func (g *DiGraph) Density() float64 {
	n := float64(len(g.ids))
	if n <= 1 {
		return 0
	}
	return float64(g.edgeCount) / (n * (n - 1))
}

// IsDAG reports whether the graph contains no directed cycle, using Kahn's
// peeling over a scratch in-degree array. Self-loops count as cycles.
func (g *DiGraph) IsDAG() bool {
	n := len(g.ids)
	indeg := make([]int, n)
	for v := 0; v < n; v++ {
		for _, w := range g.succ[v] {
			indeg[w]++
		}
	}

	queue := make([]int, 0, n)
	for v := 0; v < n; v++ {
		if indeg[v] == 0 {
			queue = append(queue, v)
		}
	}

	seen := 0
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		seen++
		for _, w := range g.succ[v] {
			indeg[w]--
			if indeg[w] == 0 {
				queue = append(queue, w)
			}
		}
	}
	return seen == n
}
