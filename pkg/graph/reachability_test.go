package graph

import (
	"reflect"
	"testing"
)

func TestIsActionable(t *testing.T) {
	// a -> c, b -> c
	g := New()
	a := g.AddNode("a")
	b := g.AddNode("b")
	c := g.AddNode("c")
	g.AddEdge(a, c)
	g.AddEdge(b, c)

	closed := []bool{false, false, false}

	if !IsActionable(g, a, closed) || !IsActionable(g, b, closed) {
		t.Error("Roots with no predecessors should be actionable")
	}
	if IsActionable(g, c, closed) {
		t.Error("c is blocked by a and b")
	}

	// Closing only a keeps c blocked.
	if IsActionable(g, c, []bool{true, false, false}) {
		t.Error("c still blocked by b")
	}
	// Closing both unblocks c.
	if !IsActionable(g, c, []bool{true, true, false}) {
		t.Error("c should be actionable once both blockers close")
	}
	// A closed node is never actionable.
	if IsActionable(g, a, []bool{true}) {
		t.Error("Closed node reported actionable")
	}
	// Out of range is never actionable.
	if IsActionable(g, 99, closed) || IsActionable(g, -1, closed) {
		t.Error("Out-of-range index reported actionable")
	}
}

func TestIsActionableShortClosedSet(t *testing.T) {
	g := New()
	a := g.AddNode("a")
	b := g.AddNode("b")
	g.AddEdge(a, b)

	// Closed set shorter than node count: missing entries read false.
	if IsActionable(g, b, []bool{}) {
		t.Error("b blocked by a; empty closed set must not unblock it")
	}
	if !IsActionable(g, b, []bool{true}) {
		t.Error("b should be actionable with a closed via short slice")
	}
}

func TestActionableNodes(t *testing.T) {
	// a -> b -> c, d isolated
	g := New()
	a := g.AddNode("a")
	b := g.AddNode("b")
	c := g.AddNode("c")
	d := g.AddNode("d")
	g.AddEdge(a, b)
	g.AddEdge(b, c)

	got := ActionableNodes(g, nil)
	if !reflect.DeepEqual(got, []int{a, d}) {
		t.Errorf("ActionableNodes = %v want [0 3]", got)
	}

	got = ActionableNodes(g, []bool{true, false, false, false})
	if !reflect.DeepEqual(got, []int{b, d}) {
		t.Errorf("ActionableNodes after closing a = %v want [1 3]", got)
	}

	if got := ActionableNodes(New(), nil); len(got) != 0 {
		t.Errorf("Empty graph yields %v want empty", got)
	}

	_ = c
}
