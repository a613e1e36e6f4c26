package analysis

import (
	"reflect"
	"testing"

	"github.com/beadviewer/bvgraph/pkg/graph"
)

func TestTopologicalOrder(t *testing.T) {
	order, ok := TopologicalOrder(buildDiamond())
	if !ok {
		t.Fatal("Diamond should have a topological order")
	}
	// Lowest-index-first tie-break makes the order fully deterministic.
	if !reflect.DeepEqual(order, []int{0, 1, 2, 3}) {
		t.Errorf("Order = %v want [0 1 2 3]", order)
	}

	if _, ok := TopologicalOrder(buildCycle(3)); ok {
		t.Error("Cycle should have no topological order")
	}

	order, ok = TopologicalOrder(graph.New())
	if !ok || len(order) != 0 {
		t.Errorf("Empty graph order = %v,%v want empty,true", order, ok)
	}
}

func TestCriticalPathChain(t *testing.T) {
	g := buildChain(3)
	want := []float64{0, 1, 2}
	if got := CriticalPathHeights(g); !reflect.DeepEqual(got, want) {
		t.Errorf("Heights = %v want %v", got, want)
	}
	if got := CriticalPathLength(g); got != 2 {
		t.Errorf("Length = %v want 2", got)
	}
	if got := CriticalPathNodes(g); !reflect.DeepEqual(got, []int{0, 1, 2}) {
		t.Errorf("Path = %v want [0 1 2]", got)
	}
}

func TestCriticalPathDiamondTieBreak(t *testing.T) {
	g := buildDiamond()
	want := []float64{0, 1, 1, 2}
	if got := CriticalPathHeights(g); !reflect.DeepEqual(got, want) {
		t.Errorf("Heights = %v want %v", got, want)
	}
	// Both arms reach d at height 2; the walk must take b (lower index).
	if got := CriticalPathNodes(g); !reflect.DeepEqual(got, []int{0, 1, 3}) {
		t.Errorf("Path = %v want [0 1 3]", got)
	}
}

func TestCriticalPathCyclicPolicy(t *testing.T) {
	// Documented best-effort zero on cyclic input.
	g := buildCycle(4)
	for i, h := range CriticalPathHeights(g) {
		if h != 0 {
			t.Errorf("Cyclic height[%d] = %v want 0", i, h)
		}
	}
	if got := CriticalPathLength(g); got != 0 {
		t.Errorf("Cyclic length = %v want 0", got)
	}
	if got := CriticalPathNodes(g); len(got) != 0 {
		t.Errorf("Cyclic path = %v want empty", got)
	}
}

func TestSlackBalancedDiamond(t *testing.T) {
	// Both diamond arms are critical: slack 0 everywhere.
	for i, s := range Slack(buildDiamond()) {
		if s != 0 {
			t.Errorf("Diamond slack[%d] = %v want 0", i, s)
		}
	}
	if tf := TotalFloat(buildDiamond()); tf != 0 {
		t.Errorf("Diamond total float = %v want 0", tf)
	}
}

func TestSlackSideBranch(t *testing.T) {
	// a -> b -> c is critical; a -> d dead-ends with one hop of float.
	g := graph.New()
	a := g.AddNode("a")
	b := g.AddNode("b")
	c := g.AddNode("c")
	d := g.AddNode("d")
	g.AddEdge(a, b)
	g.AddEdge(b, c)
	g.AddEdge(a, d)

	want := []float64{0, 0, 0, 1}
	if got := Slack(g); !reflect.DeepEqual(got, want) {
		t.Errorf("Slack = %v want %v", got, want)
	}
	if tf := TotalFloat(g); tf != 1 {
		t.Errorf("TotalFloat = %v want 1", tf)
	}
	_, _, _, _ = a, b, c, d
}

func TestSlackCyclicPolicy(t *testing.T) {
	for i, s := range Slack(buildCycle(3)) {
		if s != 0 {
			t.Errorf("Cyclic slack[%d] = %v want 0", i, s)
		}
	}
}
