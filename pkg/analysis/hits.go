package analysis

import (
	"math"

	"github.com/beadviewer/bvgraph/pkg/graph"
)

// HITSConfig controls the hub/authority power iteration.
type HITSConfig struct {
	Tolerance     float64 `mapstructure:"tolerance"`
	MaxIterations int     `mapstructure:"max_iterations"`
}

// DefaultHITSConfig returns the standard parameters (1e-6 / 100).
func DefaultHITSConfig() HITSConfig {
	return HITSConfig{
		Tolerance:     1e-6,
		MaxIterations: 100,
	}
}

// HITSResult pairs the two mutually recursive score vectors.
type HITSResult struct {
	Hubs        []float64
	Authorities []float64
}

// HITSDefault runs HITS with DefaultHITSConfig.
func HITSDefault(g *graph.DiGraph) HITSResult {
	return HITS(g, DefaultHITSConfig())
}

// HITS computes hub and authority scores: a node's authority is proportional
// to the hub scores of its predecessors, its hub score proportional to the
// authority scores of its successors. Both vectors are L2-renormalized every
// round. An empty graph yields empty vectors.
func HITS(g *graph.DiGraph, cfg HITSConfig) HITSResult {
	n := g.NodeCount()
	if n == 0 {
		return HITSResult{Hubs: []float64{}, Authorities: []float64{}}
	}

	hubs := make([]float64, n)
	auth := make([]float64, n)
	initial := 1.0 / math.Sqrt(float64(n))
	for i := 0; i < n; i++ {
		hubs[i] = initial
		auth[i] = initial
	}

	newAuth := make([]float64, n)
	newHubs := make([]float64, n)

	for iter := 0; iter < cfg.MaxIterations; iter++ {
		for v := 0; v < n; v++ {
			s := 0.0
			for _, p := range g.Predecessors(v) {
				s += hubs[p]
			}
			newAuth[v] = s
		}
		normalizeL2(newAuth, auth)

		for v := 0; v < n; v++ {
			s := 0.0
			for _, w := range g.Successors(v) {
				s += newAuth[w]
			}
			newHubs[v] = s
		}
		normalizeL2(newHubs, hubs)

		delta := 0.0
		for i := 0; i < n; i++ {
			delta += math.Abs(newAuth[i]-auth[i]) + math.Abs(newHubs[i]-hubs[i])
		}
		auth, newAuth = newAuth, auth
		hubs, newHubs = newHubs, hubs
		if delta < cfg.Tolerance {
			break
		}
	}

	return HITSResult{Hubs: hubs, Authorities: auth}
}

// normalizeL2 scales v to unit L2 norm in place. A zero vector is replaced by
// the previous estimate so the iteration never degenerates.
func normalizeL2(v, prev []float64) {
	norm := 0.0
	for _, x := range v {
		norm += x * x
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		copy(v, prev)
		return
	}
	for i := range v {
		v[i] /= norm
	}
}
