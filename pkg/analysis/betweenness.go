package analysis

import (
	"math/rand"
	"sync"

	"github.com/beadviewer/bvgraph/pkg/graph"
)

// Betweenness computes exact betweenness centrality for every node with
// Brandes' algorithm: one BFS shortest-path pass per source, dependency
// back-propagation in reverse finishing order. Scores are normalized by the
// directed-pair factor (n-1)*(n-2); endpoints are excluded, so graphs with
// fewer than three nodes are all zero.
//
// Complexity is O(V*E). Callers that need speed on large graphs use
// BetweennessApprox instead.
func Betweenness(g *graph.DiGraph) []float64 {
	n := g.NodeCount()
	bc := make([]float64, n)
	if n < 3 {
		return bc
	}

	buf := brandesPool.Get().(*brandesBuffers)
	defer brandesPool.Put(buf)

	for s := 0; s < n; s++ {
		singleSourceBetweenness(g, s, buf)
		for _, w := range buf.stack {
			bc[w] += buf.bc[w]
		}
	}

	norm := float64((n - 1) * (n - 2))
	for i := range bc {
		bc[i] /= norm
	}
	return bc
}

// BetweennessApprox estimates betweenness by running Brandes' single-source
// pass from a Fisher-Yates sample of sampleSize pivots instead of all n
// sources and scaling the accumulated contributions by n/k. The estimate is
// unbiased in expectation and fully deterministic for a fixed seed.
//
// A sampleSize >= n (or < 1, which is clamped to 1) falls back to the exact
// computation.
func BetweennessApprox(g *graph.DiGraph, sampleSize int, seed int64) []float64 {
	n := g.NodeCount()
	if sampleSize < 1 {
		sampleSize = 1
	}
	if sampleSize >= n {
		return Betweenness(g)
	}

	bc := make([]float64, n)
	if n < 3 {
		return bc
	}

	buf := brandesPool.Get().(*brandesBuffers)
	defer brandesPool.Put(buf)

	for _, s := range sampleIndices(n, sampleSize, seed) {
		singleSourceBetweenness(g, s, buf)
		for _, w := range buf.stack {
			bc[w] += buf.bc[w]
		}
	}

	// Extrapolate from the sample to the full source set, then normalize.
	scale := float64(n) / float64(sampleSize)
	norm := float64((n - 1) * (n - 2))
	for i := range bc {
		bc[i] = bc[i] * scale / norm
	}
	return bc
}

// RecommendSampleSize picks a pivot count balancing accuracy against speed.
// Approximation error shrinks as O(1/sqrt(k)).
func RecommendSampleSize(nodeCount int) int {
	switch {
	case nodeCount < 100:
		// Small graph: exact is cheap.
		return nodeCount
	case nodeCount < 500:
		if s := nodeCount / 5; s > 50 {
			return s
		}
		return 50
	case nodeCount < 2000:
		return 100
	default:
		return 200
	}
}

// sampleIndices returns k distinct indices from [0,n) via a partial
// Fisher-Yates shuffle seeded for reproducibility.
func sampleIndices(n, k int, seed int64) []int {
	if k >= n {
		idxs := make([]int, n)
		for i := range idxs {
			idxs[i] = i
		}
		return idxs
	}

	shuffled := make([]int, n)
	for i := range shuffled {
		shuffled[i] = i
	}
	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < k; i++ {
		j := i + rng.Intn(n-i)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled[:k]
}

// brandesBuffers holds the per-source scratch state for Brandes' algorithm.
// Pooled to avoid reallocating O(n) slices for every source.
type brandesBuffers struct {
	sigma []float64 // shortest-path counts
	dist  []int     // BFS distance, -1 = unvisited
	delta []float64 // dependency accumulation
	pred  [][]int   // shortest-path predecessor lists
	queue []int     // BFS frontier
	stack []int     // visit order, walked backwards for accumulation
	bc    []float64 // per-source contributions
}

var brandesPool = sync.Pool{
	New: func() interface{} {
		return &brandesBuffers{}
	},
}

// reset resizes and clears the buffers for a graph of nodeCount nodes while
// retaining capacity between sources.
func (b *brandesBuffers) reset(nodeCount int) {
	if cap(b.sigma) < nodeCount {
		b.sigma = make([]float64, nodeCount)
		b.dist = make([]int, nodeCount)
		b.delta = make([]float64, nodeCount)
		b.bc = make([]float64, nodeCount)
		b.pred = make([][]int, nodeCount)
	}
	b.sigma = b.sigma[:nodeCount]
	clear(b.sigma)
	b.dist = b.dist[:nodeCount]
	for i := range b.dist {
		b.dist[i] = -1
	}
	b.delta = b.delta[:nodeCount]
	clear(b.delta)
	b.bc = b.bc[:nodeCount]
	clear(b.bc)
	b.pred = b.pred[:nodeCount]
	for i := range b.pred {
		b.pred[i] = b.pred[i][:0]
	}
	b.queue = b.queue[:0]
	b.stack = b.stack[:0]
}

// singleSourceBetweenness runs the BFS and accumulation phases of Brandes'
// algorithm from one source. Results land in buf.bc for the nodes listed in
// buf.stack.
func singleSourceBetweenness(g *graph.DiGraph, source int, buf *brandesBuffers) {
	n := g.NodeCount()
	if n == 0 {
		return
	}
	buf.reset(n)

	buf.sigma[source] = 1
	buf.dist[source] = 0
	buf.queue = append(buf.queue, source)

	for len(buf.queue) > 0 {
		v := buf.queue[0]
		buf.queue = buf.queue[1:]
		buf.stack = append(buf.stack, v)

		for _, w := range g.Successors(v) {
			if buf.dist[w] < 0 {
				buf.dist[w] = buf.dist[v] + 1
				buf.queue = append(buf.queue, w)
			}
			if buf.dist[w] == buf.dist[v]+1 {
				buf.sigma[w] += buf.sigma[v]
				buf.pred[w] = append(buf.pred[w], v)
			}
		}
	}

	for i := len(buf.stack) - 1; i >= 0; i-- {
		w := buf.stack[i]
		if w == source {
			continue
		}
		for _, v := range buf.pred[w] {
			if buf.sigma[w] > 0 {
				buf.delta[v] += (buf.sigma[v] / buf.sigma[w]) * (1 + buf.delta[w])
			}
		}
		buf.bc[w] += buf.delta[w]
	}
}
