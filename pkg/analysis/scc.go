package analysis

import "github.com/beadviewer/bvgraph/pkg/graph"

// TarjanSCC partitions the graph into strongly connected components: two
// nodes share a component iff each is reachable from the other. The
// traversal uses an explicit work stack instead of recursion so the stack
// depth stays bounded on deep graphs.
//
// Components are emitted in completion order, which is stable for a fixed
// graph. Every node appears in exactly one component.
func TarjanSCC(g *graph.DiGraph) [][]int {
	n := g.NodeCount()
	if n == 0 {
		return [][]int{}
	}

	const unvisited = -1
	index := make([]int, n)
	lowlink := make([]int, n)
	onStack := make([]bool, n)
	for i := range index {
		index[i] = unvisited
	}

	var (
		counter int
		stack   []int // Tarjan's component stack
		comps   [][]int
	)

	// frame tracks an in-progress DFS visit: which successor of v to
	// examine next.
	type frame struct {
		v, next int
	}
	work := make([]frame, 0, 64)

	for root := 0; root < n; root++ {
		if index[root] != unvisited {
			continue
		}

		work = append(work, frame{v: root})
		for len(work) > 0 {
			f := &work[len(work)-1]
			v := f.v

			if f.next == 0 {
				index[v] = counter
				lowlink[v] = counter
				counter++
				stack = append(stack, v)
				onStack[v] = true
			}

			advanced := false
			succ := g.Successors(v)
			for f.next < len(succ) {
				w := succ[f.next]
				f.next++
				if index[w] == unvisited {
					work = append(work, frame{v: w})
					advanced = true
					break
				}
				if onStack[w] && index[w] < lowlink[v] {
					lowlink[v] = index[w]
				}
			}
			if advanced {
				continue
			}

			// v is finished: pop its frame and fold its lowlink into the
			// parent, then emit a component if v is a root.
			work = work[:len(work)-1]
			if len(work) > 0 {
				parent := work[len(work)-1].v
				if lowlink[v] < lowlink[parent] {
					lowlink[parent] = lowlink[v]
				}
			}

			if lowlink[v] == index[v] {
				var comp []int
				for {
					w := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					onStack[w] = false
					comp = append(comp, w)
					if w == v {
						break
					}
				}
				comps = append(comps, comp)
			}
		}
	}

	return comps
}

// HasCycles reports whether the graph contains a directed cycle: some SCC has
// more than one node, or a node carries a self-loop.
func HasCycles(g *graph.DiGraph) bool {
	for _, comp := range TarjanSCC(g) {
		if len(comp) > 1 {
			return true
		}
	}
	return hasSelfLoop(g)
}

// Cycles returns only the cyclic components: SCCs of size > 1 plus singleton
// components whose node has a self-loop.
func Cycles(g *graph.DiGraph) [][]int {
	cycles := [][]int{}
	for _, comp := range TarjanSCC(g) {
		if len(comp) > 1 || selfLoops(g, comp[0]) {
			cycles = append(cycles, comp)
		}
	}
	return cycles
}

func hasSelfLoop(g *graph.DiGraph) bool {
	for v := 0; v < g.NodeCount(); v++ {
		if selfLoops(g, v) {
			return true
		}
	}
	return false
}

func selfLoops(g *graph.DiGraph, v int) bool {
	for _, w := range g.Successors(v) {
		if w == v {
			return true
		}
	}
	return false
}
