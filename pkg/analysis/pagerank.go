// Package analysis implements the structural and centrality metrics computed
// over a graph.DiGraph: PageRank, eigenvector centrality, HITS, betweenness
// (exact and sampled), Tarjan SCC / cycle detection, k-core decomposition,
// critical path and slack, plus the aggregate GraphStats / Insights summaries.
//
// Every function is a pure function of the graph snapshot and its explicit
// configuration: no hidden state, no I/O, freshly allocated results. Power
// iterations are bounded by their iteration caps and return the best estimate
// on non-convergence rather than an error.
package analysis

import (
	"math"

	"github.com/beadviewer/bvgraph/pkg/graph"
)

// PageRankConfig controls the random-surfer iteration.
type PageRankConfig struct {
	// Damping is the probability of following an edge vs. teleporting.
	Damping float64 `mapstructure:"damping"`
	// Tolerance is the L1 convergence threshold between iterations.
	Tolerance float64 `mapstructure:"tolerance"`
	// MaxIterations bounds the iteration count.
	MaxIterations int `mapstructure:"max_iterations"`
}

// DefaultPageRankConfig returns the standard parameters (0.85 / 1e-6 / 100).
func DefaultPageRankConfig() PageRankConfig {
	return PageRankConfig{
		Damping:       0.85,
		Tolerance:     1e-6,
		MaxIterations: 100,
	}
}

// PageRankDefault runs PageRank with DefaultPageRankConfig.
func PageRankDefault(g *graph.DiGraph) []float64 {
	return PageRank(g, DefaultPageRankConfig())
}

// PageRank computes the stationary rank distribution of the random-surfer
// model over the directed graph. Dangling nodes (out-degree 0) redistribute
// their mass uniformly across all nodes each iteration, so the result is a
// probability distribution: entries are non-negative and sum to 1 for any
// non-empty graph. An empty graph yields an empty slice.
func PageRank(g *graph.DiGraph, cfg PageRankConfig) []float64 {
	n := g.NodeCount()
	if n == 0 {
		return []float64{}
	}

	rank := make([]float64, n)
	next := make([]float64, n)
	inv := 1.0 / float64(n)
	for i := range rank {
		rank[i] = inv
	}

	base := (1.0 - cfg.Damping) * inv

	for iter := 0; iter < cfg.MaxIterations; iter++ {
		// Mass from dangling nodes is spread uniformly.
		dangling := 0.0
		for v := 0; v < n; v++ {
			if g.OutDegree(v) == 0 {
				dangling += rank[v]
			}
		}
		uniform := base + cfg.Damping*dangling*inv

		for i := range next {
			next[i] = uniform
		}
		for v := 0; v < n; v++ {
			out := g.OutDegree(v)
			if out == 0 {
				continue
			}
			share := cfg.Damping * rank[v] / float64(out)
			for _, w := range g.Successors(v) {
				next[w] += share
			}
		}

		delta := 0.0
		for i := range rank {
			delta += math.Abs(next[i] - rank[i])
		}
		rank, next = next, rank
		if delta < cfg.Tolerance {
			break
		}
	}

	return rank
}
