package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beadviewer/bvgraph/pkg/analysis"
	"github.com/beadviewer/bvgraph/pkg/graph"
)

func TestCompileAndEvaluate(t *testing.T) {
	e, err := NewEngine()
	require.NoError(t, err)

	err = e.Compile([]Rule{
		{ID: "hot", Condition: "out_degree > 2"},
		{ID: "open-root", Condition: "!closed && in_degree == 0"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, e.RuleCount())

	matches, err := e.Evaluate(NodeContext{ID: "a", OutDegree: 5, InDegree: 0})
	require.NoError(t, err)
	assert.Equal(t, []string{"hot", "open-root"}, matches)

	matches, err = e.Evaluate(NodeContext{ID: "b", OutDegree: 1, InDegree: 2, Closed: true})
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestCompileRejectsBadExpression(t *testing.T) {
	e, err := NewEngine()
	require.NoError(t, err)

	err = e.Compile([]Rule{{ID: "broken", Condition: "out_degree >"}})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestCompileRejectsUnknownVariable(t *testing.T) {
	e, err := NewEngine()
	require.NoError(t, err)

	err = e.Compile([]Rule{{ID: "typo", Condition: "cost > 100.0"}})
	assert.Error(t, err)
}

func TestStringFunctions(t *testing.T) {
	e, err := NewEngine()
	require.NoError(t, err)
	require.NoError(t, e.Compile([]Rule{
		{ID: "infra", Condition: `id.startsWith("infra/")`},
	}))

	assert.True(t, e.Matches(NodeContext{ID: "infra/db"}))
	assert.False(t, e.Matches(NodeContext{ID: "app/web"}))
}

func TestCentralityAttributes(t *testing.T) {
	e, err := NewEngine()
	require.NoError(t, err)
	require.NoError(t, e.Compile([]Rule{
		{ID: "central", Condition: "pagerank > 0.3 || betweenness > 0.5"},
	}))

	assert.True(t, e.Matches(NodeContext{ID: "a", PageRank: 0.4}))
	assert.True(t, e.Matches(NodeContext{ID: "b", Betweenness: 0.9}))
	assert.False(t, e.Matches(NodeContext{ID: "c", PageRank: 0.1}))
}

func TestMatchesWithNoRules(t *testing.T) {
	e, err := NewEngine()
	require.NoError(t, err)

	// An empty filter passes everything through.
	assert.True(t, e.Matches(NodeContext{ID: "anything"}))
}

func TestFilterNodes(t *testing.T) {
	g := graph.New()
	a := g.AddNode("a")
	b := g.AddNode("b")
	c := g.AddNode("c")
	require.NoError(t, g.AddEdge(a, b))
	require.NoError(t, g.AddEdge(b, c))

	e, err := NewEngine()
	require.NoError(t, err)
	require.NoError(t, e.Compile([]Rule{
		{ID: "ready", Condition: "actionable && !closed"},
	}))

	// Only a has no open blockers.
	got := e.FilterNodes(g, nil, make([]bool, 3))
	assert.Equal(t, []int{a}, got)

	// Closing a makes b actionable; a itself is closed and drops out.
	got = e.FilterNodes(g, nil, []bool{true, false, false})
	assert.Equal(t, []int{b}, got)
}

func TestFilterNodesWithStats(t *testing.T) {
	g := graph.New()
	a := g.AddNode("a")
	b := g.AddNode("b")
	require.NoError(t, g.AddEdge(a, b))

	e, err := NewEngine()
	require.NoError(t, err)
	require.NoError(t, e.Compile([]Rule{
		{ID: "ranked", Condition: "pagerank > 0.5"},
	}))

	// Without stats the pagerank attribute is zero everywhere.
	assert.Empty(t, e.FilterNodes(g, nil, nil))

	// The sink b absorbs the damped mass and crosses the threshold.
	stats := analysis.Compute(g, analysis.DefaultComputeOptions())
	got := e.FilterNodes(g, stats, nil)
	assert.Equal(t, []int{b}, got)
}
