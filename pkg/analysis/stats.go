package analysis

import "github.com/beadviewer/bvgraph/pkg/graph"

// GraphStats aggregates every metric the suite computes for a graph snapshot,
// keyed two ways: dense per-index slices for programmatic use and
// identifier-keyed maps for reporting and golden-fixture comparison.
type GraphStats struct {
	NodeCount int
	EdgeCount int
	Density   float64

	// Dense, aligned with node insertion order.
	PageRank          []float64
	Betweenness       []float64
	Eigenvector       []float64
	Hubs              []float64
	Authorities       []float64
	CriticalPathScore []float64
	SlackByIndex      []float64
	CoreNumber        []int

	HasCycles        bool
	CycleComponents  [][]string
	TopologicalOrder []string // nil when the graph is cyclic
	CriticalPath     []string
	TotalFloat       float64
	Degeneracy       int

	// Identifier-keyed views.
	OutDegree map[string]int
	InDegree  map[string]int
}

// ComputeOptions selects how the expensive metrics run.
type ComputeOptions struct {
	// BetweennessSampleSize > 0 switches betweenness to the sampled
	// approximation with that many pivots.
	BetweennessSampleSize int `mapstructure:"betweenness_sample_size"`
	// BetweennessSeed seeds pivot sampling; ignored in exact mode.
	BetweennessSeed int64 `mapstructure:"betweenness_seed"`

	PageRank    PageRankConfig    `mapstructure:"pagerank"`
	Eigenvector EigenvectorConfig `mapstructure:"eigenvector"`
	HITS        HITSConfig        `mapstructure:"hits"`
}

// DefaultComputeOptions runs everything exact with standard power-method
// parameters.
func DefaultComputeOptions() ComputeOptions {
	return ComputeOptions{
		PageRank:    DefaultPageRankConfig(),
		Eigenvector: DefaultEigenvectorConfig(),
		HITS:        DefaultHITSConfig(),
	}
}

// Compute runs the full metric suite over a graph snapshot.
func Compute(g *graph.DiGraph, opts ComputeOptions) *GraphStats {
	n := g.NodeCount()
	stats := &GraphStats{
		NodeCount: n,
		EdgeCount: g.EdgeCount(),
		Density:   g.Density(),
		PageRank:  PageRank(g, opts.PageRank),
		OutDegree: make(map[string]int, n),
		InDegree:  make(map[string]int, n),
	}

	if opts.BetweennessSampleSize > 0 {
		stats.Betweenness = BetweennessApprox(g, opts.BetweennessSampleSize, opts.BetweennessSeed)
	} else {
		stats.Betweenness = Betweenness(g)
	}

	stats.Eigenvector = Eigenvector(g, opts.Eigenvector)
	h := HITS(g, opts.HITS)
	stats.Hubs = h.Hubs
	stats.Authorities = h.Authorities

	stats.CriticalPathScore = CriticalPathHeights(g)
	stats.SlackByIndex = Slack(g)
	stats.TotalFloat = 0
	for _, s := range stats.SlackByIndex {
		stats.TotalFloat += s
	}
	stats.CoreNumber = KCore(g)
	for _, c := range stats.CoreNumber {
		if c > stats.Degeneracy {
			stats.Degeneracy = c
		}
	}

	stats.HasCycles = HasCycles(g)
	for _, comp := range Cycles(g) {
		ids := make([]string, len(comp))
		for i, v := range comp {
			ids[i] = g.NodeID(v)
		}
		stats.CycleComponents = append(stats.CycleComponents, ids)
	}

	if order, ok := TopologicalOrder(g); ok {
		stats.TopologicalOrder = make([]string, len(order))
		for i, v := range order {
			stats.TopologicalOrder[i] = g.NodeID(v)
		}
	}
	for _, v := range CriticalPathNodes(g) {
		stats.CriticalPath = append(stats.CriticalPath, g.NodeID(v))
	}

	for v := 0; v < n; v++ {
		id := g.NodeID(v)
		stats.OutDegree[id] = g.OutDegree(v)
		stats.InDegree[id] = g.InDegree(v)
	}

	return stats
}
