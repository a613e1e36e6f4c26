package analysis

import (
	"math"

	"github.com/beadviewer/bvgraph/pkg/graph"
)

// EigenvectorConfig controls the eigenvector power iteration.
type EigenvectorConfig struct {
	Tolerance     float64 `mapstructure:"tolerance"`
	MaxIterations int     `mapstructure:"max_iterations"`
}

// DefaultEigenvectorConfig returns the standard parameters (1e-6 / 100).
func DefaultEigenvectorConfig() EigenvectorConfig {
	return EigenvectorConfig{
		Tolerance:     1e-6,
		MaxIterations: 100,
	}
}

// EigenvectorDefault runs Eigenvector with DefaultEigenvectorConfig.
func EigenvectorDefault(g *graph.DiGraph) []float64 {
	return Eigenvector(g, DefaultEigenvectorConfig())
}

// Eigenvector computes eigenvector centrality by shifted power iteration:
// each round a node keeps its own score and absorbs the scores of its
// predecessors (x' = x + Aᵀx), then the vector is renormalized to unit L2
// norm. The shift keeps mass on every node in acyclic graphs, where plain
// power iteration would drain everything onto the sinks.
//
// For any non-empty graph the returned vector is non-negative with an L2
// norm of ~1.0; an empty graph yields an empty slice.
func Eigenvector(g *graph.DiGraph, cfg EigenvectorConfig) []float64 {
	n := g.NodeCount()
	if n == 0 {
		return []float64{}
	}

	score := make([]float64, n)
	next := make([]float64, n)
	initial := 1.0 / math.Sqrt(float64(n))
	for i := range score {
		score[i] = initial
	}

	for iter := 0; iter < cfg.MaxIterations; iter++ {
		for v := 0; v < n; v++ {
			s := score[v]
			for _, p := range g.Predecessors(v) {
				s += score[p]
			}
			next[v] = s
		}

		norm := 0.0
		for _, s := range next {
			norm += s * s
		}
		norm = math.Sqrt(norm)
		if norm == 0 {
			// All-zero vector cannot be normalized; return the previous
			// estimate (already unit norm).
			return score
		}
		for i := range next {
			next[i] /= norm
		}

		delta := 0.0
		for i := range score {
			delta += math.Abs(next[i] - score[i])
		}
		score, next = next, score
		if delta < cfg.Tolerance {
			break
		}
	}

	return score
}
