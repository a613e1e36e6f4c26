package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/beadviewer/bvgraph/pkg/analysis"
	"github.com/beadviewer/bvgraph/pkg/graph"
	"github.com/beadviewer/bvgraph/pkg/scenario"
	"github.com/beadviewer/bvgraph/pkg/whatif"
)

func buildDiamond(t *testing.T) *graph.DiGraph {
	t.Helper()
	g := graph.New()
	a := g.AddNode("a")
	b := g.AddNode("b")
	c := g.AddNode("c")
	d := g.AddNode("d")
	require.NoError(t, g.AddEdge(a, b))
	require.NoError(t, g.AddEdge(a, c))
	require.NoError(t, g.AddEdge(b, d))
	require.NoError(t, g.AddEdge(c, d))
	return g
}

func TestWriteJSONGolden(t *testing.T) {
	g := buildDiamond(t)
	stats := analysis.Compute(g, analysis.DefaultComputeOptions())

	steps, err := scenario.Run(g, scenario.Scenario{
		Name:  "diamond",
		Steps: []scenario.Step{{Name: "close-root", Close: []string{"a"}}},
	})
	require.NoError(t, err)

	doc := New("2026-01-02T15:04:05Z", stats).
		WithWhatIf(g, whatif.Top(g, nil, 3)).
		WithScenario(steps)

	var buf bytes.Buffer
	require.NoError(t, doc.WriteJSON(&buf))

	gold := goldie.New(t)
	gold.Assert(t, "diamond_report", buf.Bytes())
}

func TestWriteJSONDeterministic(t *testing.T) {
	g := buildDiamond(t)
	stats := analysis.Compute(g, analysis.DefaultComputeOptions())

	var first, second bytes.Buffer
	doc := New("t0", stats).WithWhatIf(g, whatif.Top(g, nil, 3))
	require.NoError(t, doc.WriteJSON(&first))
	require.NoError(t, doc.WriteJSON(&second))
	require.Equal(t, first.String(), second.String())
}

func TestRender(t *testing.T) {
	g := buildDiamond(t)
	stats := analysis.Compute(g, analysis.DefaultComputeOptions())
	ins := analysis.GenerateInsights(g, stats, 3)

	doc := New("t0", stats).
		WithInsights(ins).
		WithWhatIf(g, whatif.Top(g, nil, 3))

	out := doc.Render()
	for _, want := range []string{
		"GRAPH",
		"critical path: a -> b -> d",
		"INSIGHTS",
		"bottlenecks",
		"WHAT-IF",
		"close",
		"unblocks",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Render output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderCyclicGraph(t *testing.T) {
	g := graph.New()
	a := g.AddNode("a")
	b := g.AddNode("b")
	require.NoError(t, g.AddEdge(a, b))
	require.NoError(t, g.AddEdge(b, a))

	stats := analysis.Compute(g, analysis.DefaultComputeOptions())
	ins := analysis.GenerateInsights(g, stats, 3)
	out := New("t0", stats).WithInsights(ins).Render()

	if !strings.Contains(out, "cycles detected") {
		t.Errorf("Expected cycle warning in:\n%s", out)
	}
	if !strings.Contains(out, "a <-> b") && !strings.Contains(out, "b <-> a") {
		t.Errorf("Expected cycle members in:\n%s", out)
	}
}

func TestRenderScenario(t *testing.T) {
	g := buildDiamond(t)
	stats := analysis.Compute(g, analysis.DefaultComputeOptions())
	steps, err := scenario.Run(g, scenario.Scenario{
		Name:  "diamond",
		Steps: []scenario.Step{{Name: "close-root", Close: []string{"a"}}},
	})
	require.NoError(t, err)

	out := New("t0", stats).WithScenario(steps).Render()
	if !strings.Contains(out, "SCENARIO") || !strings.Contains(out, "close-root") {
		t.Errorf("Scenario section missing in:\n%s", out)
	}
}

func TestRuleMatches(t *testing.T) {
	g := buildDiamond(t)
	stats := analysis.Compute(g, analysis.DefaultComputeOptions())

	doc := New("t0", stats).WithRuleMatches([]string{"a", "b"})

	var buf bytes.Buffer
	require.NoError(t, doc.WriteJSON(&buf))
	require.Contains(t, buf.String(), `"rule_matches"`)
	require.Contains(t, buf.String(), `"a",`)

	out := doc.Render()
	require.Contains(t, out, "RULES")
	require.Contains(t, out, "matched 2")
}

func TestRuleMatchesEmpty(t *testing.T) {
	g := buildDiamond(t)
	stats := analysis.Compute(g, analysis.DefaultComputeOptions())

	out := New("t0", stats).WithRuleMatches([]string{}).Render()
	require.Contains(t, out, "no nodes matched")
}
