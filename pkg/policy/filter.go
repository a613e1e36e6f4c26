package policy

import (
	"github.com/beadviewer/bvgraph/pkg/analysis"
	"github.com/beadviewer/bvgraph/pkg/graph"
)

// FilterNodes returns the indices of the nodes matching the engine's rules,
// in ascending index order. stats may be nil when no rule references a
// centrality attribute; closed may be nil or shorter than the node count.
func (e *Engine) FilterNodes(g *graph.DiGraph, stats *analysis.GraphStats, closed []bool) []int {
	var out []int
	for v := 0; v < g.NodeCount(); v++ {
		nc := NodeContext{
			ID:         g.NodeID(v),
			OutDegree:  g.OutDegree(v),
			InDegree:   g.InDegree(v),
			Closed:     v < len(closed) && closed[v],
			Actionable: graph.IsActionable(g, v, closed),
		}
		if stats != nil {
			if v < len(stats.PageRank) {
				nc.PageRank = stats.PageRank[v]
			}
			if v < len(stats.Betweenness) {
				nc.Betweenness = stats.Betweenness[v]
			}
		}
		if e.Matches(nc) {
			out = append(out, v)
		}
	}
	return out
}
