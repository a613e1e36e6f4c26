package analysis

import (
	"sort"

	"github.com/beadviewer/bvgraph/pkg/graph"
	"github.com/beadviewer/bvgraph/pkg/topk"
)

// InsightItem names a node together with the metric value that put it on a
// list.
type InsightItem struct {
	ID    string  `json:"id"`
	Value float64 `json:"value"`
}

// Insights is the high-level, human-facing summary distilled from GraphStats.
type Insights struct {
	Bottlenecks []InsightItem `json:"bottlenecks"` // top betweenness
	Keystones   []InsightItem `json:"keystones"`   // top critical-path score
	Influencers []InsightItem `json:"influencers"` // top eigenvector
	Hubs        []InsightItem `json:"hubs"`
	Authorities []InsightItem `json:"authorities"`
	Cores       []InsightItem `json:"cores"` // highest core numbers
	Slack       []InsightItem `json:"slack"` // most schedule flexibility
	Orphans     []string      `json:"orphans"`
	Cycles      [][]string    `json:"cycles"`
	Density     float64       `json:"density"`
}

// GenerateInsights ranks each metric and keeps the top limit entries per
// list. Ties resolve to the lexicographically smaller identifier. A
// limit <= 0 keeps everything.
func GenerateInsights(g *graph.DiGraph, stats *GraphStats, limit int) Insights {
	if limit <= 0 {
		limit = stats.NodeCount
	}

	coreScores := make([]float64, len(stats.CoreNumber))
	for i, c := range stats.CoreNumber {
		coreScores[i] = float64(c)
	}

	return Insights{
		Bottlenecks: topItems(g, stats.Betweenness, limit),
		Keystones:   topItems(g, stats.CriticalPathScore, limit),
		Influencers: topItems(g, stats.Eigenvector, limit),
		Hubs:        topItems(g, stats.Hubs, limit),
		Authorities: topItems(g, stats.Authorities, limit),
		Cores:       topItems(g, coreScores, limit),
		Slack:       topItems(g, stats.SlackByIndex, limit),
		Orphans:     findOrphans(g),
		Cycles:      stats.CycleComponents,
		Density:     stats.Density,
	}
}

// topItems collects the limit highest values from a dense metric slice.
func topItems(g *graph.DiGraph, values []float64, limit int) []InsightItem {
	collector := topk.New(limit, func(a, b InsightItem) bool {
		return a.ID < b.ID
	})
	for idx, v := range values {
		collector.Add(InsightItem{ID: g.NodeID(idx), Value: v}, v)
	}
	items := collector.Results()
	if items == nil {
		items = []InsightItem{}
	}
	return items
}

// findOrphans lists nodes that block nothing (out-degree 0), sorted by id.
func findOrphans(g *graph.DiGraph) []string {
	var ids []string
	for v := 0; v < g.NodeCount(); v++ {
		if g.OutDegree(v) == 0 {
			ids = append(ids, g.NodeID(v))
		}
	}
	sort.Strings(ids)
	return ids
}
