package analysis

import "github.com/beadviewer/bvgraph/pkg/graph"

// KCore computes the core number of every node by bucket peeling: repeatedly
// remove the node of minimum remaining total degree (in + out, edge direction
// ignored), assigning it a core number equal to the peak minimum degree seen
// so far. Buckets are seeded in ascending index order, so degree ties resolve
// toward the lower node index.
//
// The bucket structure keeps the whole decomposition near-linear in edges
// instead of rescanning degrees each round.
func KCore(g *graph.DiGraph) []int {
	n := g.NodeCount()
	core := make([]int, n)
	if n == 0 {
		return core
	}

	degree := make([]int, n)
	maxDeg := 0
	for v := 0; v < n; v++ {
		degree[v] = g.OutDegree(v) + g.InDegree(v)
		if degree[v] > maxDeg {
			maxDeg = degree[v]
		}
	}

	// Bucket sort nodes by degree; within a bucket, ascending index order.
	buckets := make([][]int, maxDeg+1)
	for v := 0; v < n; v++ {
		buckets[degree[v]] = append(buckets[degree[v]], v)
	}

	removed := make([]bool, n)
	for d := 0; d <= maxDeg; d++ {
		// Peeling a node can drop a neighbor from a higher bucket into this
		// one, so drain the bucket until it stays empty. A neighbor's degree
		// never falls below d (it was > d before the single decrement), so
		// already-passed buckets never refill.
		for len(buckets[d]) > 0 {
			v := buckets[d][0]
			buckets[d] = buckets[d][1:]
			if removed[v] || degree[v] != d {
				// Stale entry; the node was re-filed under a lower degree.
				continue
			}
			removed[v] = true
			core[v] = d

			for _, w := range neighbors(g, v) {
				if removed[w] || degree[w] <= d {
					continue
				}
				degree[w]--
				buckets[degree[w]] = append(buckets[degree[w]], w)
			}
		}
	}

	return core
}

// Degeneracy returns the maximum core number, i.e. the largest k for which a
// k-core exists. An empty graph has degeneracy 0.
func Degeneracy(g *graph.DiGraph) int {
	max := 0
	for _, c := range KCore(g) {
		if c > max {
			max = c
		}
	}
	return max
}

// neighbors yields the undirected neighborhood of v (successors then
// predecessors, duplicates included).
func neighbors(g *graph.DiGraph, v int) []int {
	succ := g.Successors(v)
	pred := g.Predecessors(v)
	out := make([]int, 0, len(succ)+len(pred))
	out = append(out, succ...)
	out = append(out, pred...)
	return out
}
