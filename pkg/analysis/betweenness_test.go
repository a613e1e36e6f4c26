package analysis

import (
	"math"
	"reflect"
	"testing"

	"github.com/beadviewer/bvgraph/pkg/graph"
)

func TestBetweennessChain(t *testing.T) {
	// a -> b -> c: only b carries a path (a to c). Raw score 1, normalized
	// by (n-1)(n-2) = 2.
	bc := Betweenness(buildChain(3))
	want := []float64{0, 0.5, 0}
	for i := range want {
		if math.Abs(bc[i]-want[i]) > floatTol {
			t.Errorf("bc[%d] = %v want %v", i, bc[i], want[i])
		}
	}
}

func TestBetweennessDiamond(t *testing.T) {
	// Two equal-length a->d paths split the dependency between b and c.
	bc := Betweenness(buildDiamond())
	if math.Abs(bc[1]-bc[2]) > floatTol {
		t.Errorf("b and c should tie: %v vs %v", bc[1], bc[2])
	}
	if bc[1] <= 0 {
		t.Errorf("Interior node score = %v want > 0", bc[1])
	}
	if bc[0] != 0 || bc[3] != 0 {
		t.Errorf("Endpoints must be excluded: bc[a]=%v bc[d]=%v", bc[0], bc[3])
	}
	// (1/2 + 1/2) over (3*2) ordered pairs.
	if math.Abs(bc[1]-0.5/6.0) > floatTol {
		t.Errorf("bc[b] = %v want %v", bc[1], 0.5/6.0)
	}
}

func TestBetweennessStarIsZero(t *testing.T) {
	for i, v := range Betweenness(buildStar(5)) {
		if v != 0 {
			t.Errorf("Star bc[%d] = %v want 0 (no interior nodes)", i, v)
		}
	}
}

func TestBetweennessTinyGraphs(t *testing.T) {
	if got := Betweenness(graph.New()); len(got) != 0 {
		t.Errorf("Empty graph = %v want empty", got)
	}

	g := graph.New()
	g.AddNode("a")
	g.AddNode("b")
	if got := Betweenness(g); !reflect.DeepEqual(got, []float64{0, 0}) {
		t.Errorf("2-node graph = %v want zeros", got)
	}
}

func TestBetweennessApproxFallsBackToExact(t *testing.T) {
	g := buildChain(5)
	exact := Betweenness(g)
	// sampleSize >= n must produce the exact result.
	approx := BetweennessApprox(g, 10, 42)
	if !reflect.DeepEqual(exact, approx) {
		t.Errorf("Full-sample approx %v != exact %v", approx, exact)
	}
	// Clamped sample still returns sane output.
	if got := BetweennessApprox(g, -3, 42); len(got) != 5 {
		t.Errorf("Clamped sample returned %d entries", len(got))
	}
}

func TestBetweennessApproxDeterministic(t *testing.T) {
	g := buildChain(30)
	a := BetweennessApprox(g, 10, 7)
	b := BetweennessApprox(g, 10, 7)
	if !reflect.DeepEqual(a, b) {
		t.Error("Same seed must give identical estimates")
	}

	// On a chain every interior node is on some shortest path; the scaled
	// estimate must stay non-negative and finite.
	for i, v := range a {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("approx[%d] = %v", i, v)
		}
	}
}

func TestRecommendSampleSize(t *testing.T) {
	cases := []struct {
		nodes, want int
	}{
		{50, 50},    // exact below 100
		{200, 50},   // floor of 50
		{400, 80},   // 20%
		{1000, 100}, // fixed
		{5000, 200}, // larger fixed
	}
	for _, c := range cases {
		if got := RecommendSampleSize(c.nodes); got != c.want {
			t.Errorf("RecommendSampleSize(%d) = %d want %d", c.nodes, got, c.want)
		}
	}
}
