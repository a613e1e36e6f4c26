// Package whatif simulates the ripple effect of closing nodes in a
// dependency graph: "if I resolve X, what becomes workable?"
//
// Every entry point takes the graph snapshot and the caller's closed set and
// works on its own private copy, so concurrent callers never observe partial
// state. Out-of-range or degenerate input degrades to an empty result, never
// a panic.
package whatif

import (
	"sort"

	"github.com/beadviewer/bvgraph/pkg/graph"
)

// Result describes the impact of closing one node (or one batch).
type Result struct {
	// DirectUnblocks counts immediate dependents whose blockers all became
	// satisfied by the closure itself.
	DirectUnblocks int `json:"direct_unblocks"`
	// TransitiveUnblocks counts the full cascade, direct unblocks included.
	TransitiveUnblocks int `json:"transitive_unblocks"`
	// UnblockedIDs lists the directly unblocked node indices.
	UnblockedIDs []int `json:"unblocked_ids"`
	// CascadeIDs lists every transitively unblocked node in BFS discovery
	// order.
	CascadeIDs []int `json:"cascade_ids"`
	// ParallelGain is the extra parallel work created beyond the first
	// unblock: max(DirectUnblocks-1, 0).
	ParallelGain int `json:"parallel_gain"`
}

// emptyResult is the no-impact value returned for degenerate input.
func emptyResult() Result {
	return Result{UnblockedIDs: []int{}, CascadeIDs: []int{}}
}

// TopEntry pairs a candidate node with its simulated impact for ranking
// output.
type TopEntry struct {
	Node   int    `json:"node"`
	Result Result `json:"result"`
}

// Close simulates closing a single node under the given closed set.
//
// A successor is a direct unblock iff it was blocked under the original
// closed set and becomes actionable once node joins it: exactly the boundary
// effect of this one closure. The cascade then BFS-completes each unblocked
// node in turn and admits a successor the first time all of its predecessors
// are originally closed, completed by the cascade, or already discovered.
func Close(g *graph.DiGraph, node int, closed []bool) Result {
	n := g.NodeCount()
	if node < 0 || node >= n || isClosed(closed, node) {
		return emptyResult()
	}

	newClosed := cloneClosed(closed, n)
	newClosed[node] = true

	direct := []int{}
	for _, succ := range g.Successors(node) {
		if newClosed[succ] {
			continue
		}
		wasBlocked := !graph.IsActionable(g, succ, closed)
		nowUnblocked := graph.IsActionable(g, succ, newClosed)
		if wasBlocked && nowUnblocked {
			direct = append(direct, succ)
		}
	}

	cascade := runCascade(g, direct, newClosed)
	return buildResult(direct, cascade)
}

// CloseBatch simulates closing a set of nodes simultaneously. A successor is
// a direct unblock if it transitions from blocked to actionable given the
// whole batch closed at once; the seen guard prevents double counting when
// several batch members share a successor.
func CloseBatch(g *graph.DiGraph, nodes []int, closed []bool) Result {
	n := g.NodeCount()
	if n == 0 || len(nodes) == 0 {
		return emptyResult()
	}

	newClosed := cloneClosed(closed, n)
	for _, node := range nodes {
		if node >= 0 && node < n {
			newClosed[node] = true
		}
	}

	direct := []int{}
	seen := make([]bool, n)
	for _, node := range nodes {
		if node < 0 || node >= n {
			continue
		}
		for _, succ := range g.Successors(node) {
			if seen[succ] || newClosed[succ] {
				continue
			}
			seen[succ] = true
			wasBlocked := !graph.IsActionable(g, succ, closed)
			nowUnblocked := graph.IsActionable(g, succ, newClosed)
			if wasBlocked && nowUnblocked {
				direct = append(direct, succ)
			}
		}
	}

	cascade := runCascade(g, direct, newClosed)
	return buildResult(direct, cascade)
}

// Top ranks every currently-actionable candidate by transitive unblock count,
// descending, and returns at most limit entries. Zero-impact candidates are
// dropped; ties keep candidate (index) order.
func Top(g *graph.DiGraph, closed []bool, limit int) []TopEntry {
	if g.NodeCount() == 0 {
		return []TopEntry{}
	}
	return rank(g, graph.ActionableNodes(g, closed), closed, limit)
}

// All performs the same ranking as Top but over every non-closed node, not
// only the currently actionable ones, surfacing high-potential items that are
// themselves still blocked.
func All(g *graph.DiGraph, closed []bool, limit int) []TopEntry {
	n := g.NodeCount()
	if n == 0 {
		return []TopEntry{}
	}
	candidates := make([]int, 0, n)
	for v := 0; v < n; v++ {
		if !isClosed(closed, v) {
			candidates = append(candidates, v)
		}
	}
	return rank(g, candidates, closed, limit)
}

func rank(g *graph.DiGraph, candidates []int, closed []bool, limit int) []TopEntry {
	entries := []TopEntry{}
	for _, node := range candidates {
		result := Close(g, node, closed)
		if result.TransitiveUnblocks == 0 {
			continue
		}
		entries = append(entries, TopEntry{Node: node, Result: result})
	}

	// Stable sort keeps candidate order on equal impact.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Result.TransitiveUnblocks > entries[j].Result.TransitiveUnblocks
	})

	if limit >= 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// runCascade BFS-simulates completing each unblocked node and collecting what
// else becomes workable. Roots enter the cascade first; each node enters at
// most once and output order is BFS discovery order.
func runCascade(g *graph.DiGraph, roots []int, initialClosed []bool) []int {
	n := g.NodeCount()
	if n == 0 || len(roots) == 0 {
		return append([]int{}, roots...)
	}

	closed := cloneClosed(initialClosed, n)
	visited := make([]bool, n)
	cascade := []int{}
	queue := make([]int, 0, len(roots))

	for _, root := range roots {
		if root >= 0 && root < n && !visited[root] && !closed[root] {
			visited[root] = true
			cascade = append(cascade, root)
			queue = append(queue, root)
		}
	}

	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]

		// Treat v as completed from here on.
		closed[v] = true

		for _, w := range g.Successors(v) {
			if visited[w] || closed[w] {
				continue
			}
			allResolved := true
			for _, p := range g.Predecessors(w) {
				if !closed[p] && !visited[p] {
					allResolved = false
					break
				}
			}
			if allResolved {
				visited[w] = true
				cascade = append(cascade, w)
				queue = append(queue, w)
			}
		}
	}

	return cascade
}

func buildResult(direct, cascade []int) Result {
	gain := len(direct) - 1
	if gain < 0 {
		gain = 0
	}
	return Result{
		DirectUnblocks:     len(direct),
		TransitiveUnblocks: len(cascade),
		UnblockedIDs:       direct,
		CascadeIDs:         cascade,
		ParallelGain:       gain,
	}
}

func isClosed(closed []bool, idx int) bool {
	return idx < len(closed) && closed[idx]
}

// cloneClosed copies the caller's closed set into a private slice padded to
// the node count.
func cloneClosed(closed []bool, n int) []bool {
	out := make([]bool, n)
	copy(out, closed)
	return out
}
