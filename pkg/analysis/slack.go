package analysis

import "github.com/beadviewer/bvgraph/pkg/graph"

// Slack computes standard CPM float per node: the critical-path length minus
// the longest path forced through that node (longest path ending at it plus
// longest path starting from it). Critical-path nodes have slack 0; the
// further a node sits off the critical path, the more room it has.
//
// Cyclic graphs degrade to all-zero slack, matching the critical-path policy.
func Slack(g *graph.DiGraph) []float64 {
	n := g.NodeCount()
	slack := make([]float64, n)
	order, ok := TopologicalOrder(g)
	if !ok {
		return slack
	}

	heights := CriticalPathHeights(g)

	// tails[v] = longest path (edge count) starting at v, via reverse
	// topological order.
	tails := make([]float64, n)
	for i := len(order) - 1; i >= 0; i-- {
		v := order[i]
		for _, w := range g.Successors(v) {
			if t := tails[w] + 1; t > tails[v] {
				tails[v] = t
			}
		}
	}

	cpLen := 0.0
	for _, h := range heights {
		if h > cpLen {
			cpLen = h
		}
	}

	for v := 0; v < n; v++ {
		slack[v] = cpLen - (heights[v] + tails[v])
	}
	return slack
}

// TotalFloat sums slack across all nodes: an aggregate measure of how much
// parallel room the graph has around its critical path.
func TotalFloat(g *graph.DiGraph) float64 {
	total := 0.0
	for _, s := range Slack(g) {
		total += s
	}
	return total
}
