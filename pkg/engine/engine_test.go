package engine

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beadviewer/bvgraph/pkg/graph"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(context.Background(),
		WithConfig(Config{SkipTelemetry: true}),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	require.NoError(t, err)
	return e
}

func writeTempGraph(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "graph.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

const diamondJSON = `{
  "description": "diamond",
  "nodes": ["a", "b", "c", "d"],
  "edges": [[0, 1], [0, 2], [1, 3], [2, 3]]
}`

func TestLoadGraph(t *testing.T) {
	e := newTestEngine(t)
	g, err := e.LoadGraph(context.Background(), writeTempGraph(t, diamondJSON))
	require.NoError(t, err)
	assert.Equal(t, 4, g.NodeCount())
}

func TestLoadGraphBadFile(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.LoadGraph(context.Background(), writeTempGraph(t, "not json"))
	assert.Error(t, err)
}

func TestAnalyze(t *testing.T) {
	e := newTestEngine(t)
	g, err := e.LoadGraph(context.Background(), writeTempGraph(t, diamondJSON))
	require.NoError(t, err)

	stats, ins := e.Analyze(context.Background(), g)
	assert.Equal(t, 4, stats.NodeCount)
	assert.False(t, stats.HasCycles)
	assert.Equal(t, []string{"a", "b", "d"}, stats.CriticalPath)
	assert.NotEmpty(t, ins.Keystones)
}

func TestWhatIfTop(t *testing.T) {
	e := newTestEngine(t)
	g, err := e.LoadGraph(context.Background(), writeTempGraph(t, diamondJSON))
	require.NoError(t, err)

	top := e.WhatIfTop(context.Background(), g, nil, false)
	require.Len(t, top, 1)
	assert.Equal(t, 3, top[0].Result.TransitiveUnblocks)

	// The all variant also ranks the still-blocked b and c.
	all := e.WhatIfTop(context.Background(), g, nil, true)
	assert.Greater(t, len(all), 1)
}

func TestWhatIfClose(t *testing.T) {
	e := newTestEngine(t)
	g, err := e.LoadGraph(context.Background(), writeTempGraph(t, diamondJSON))
	require.NoError(t, err)

	res, err := e.WhatIfClose(context.Background(), g, []string{"a"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, res.DirectUnblocks)
	assert.Equal(t, 3, res.TransitiveUnblocks)

	_, err = e.WhatIfClose(context.Background(), g, []string{"ghost"}, nil)
	assert.Error(t, err)
}

func TestRunScenario(t *testing.T) {
	e := newTestEngine(t)
	g, err := e.LoadGraph(context.Background(), writeTempGraph(t, diamondJSON))
	require.NoError(t, err)

	scPath := filepath.Join(t.TempDir(), "sc.hcl")
	require.NoError(t, os.WriteFile(scPath, []byte(`
scenario "demo" {
  step "root" {
    close = ["a"]
  }
}
`), 0o644))

	results, err := e.RunScenario(context.Background(), g, scPath)
	require.NoError(t, err)
	require.Len(t, results["demo"], 1)
	assert.Equal(t, 3, results["demo"][0].Total)
}

func TestLoadRules(t *testing.T) {
	e := newTestEngine(t)

	// Empty path compiles a match-everything filter.
	filter, err := e.LoadRules("")
	require.NoError(t, err)
	assert.Equal(t, 0, filter.RuleCount())

	rulesPath := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(rulesPath, []byte(`
rules:
  - id: busy
    condition: "out_degree > 1"
`), 0o644))

	filter, err = e.LoadRules(rulesPath)
	require.NoError(t, err)
	assert.Equal(t, 1, filter.RuleCount())
}

func TestAnalyzeRecordsHistory(t *testing.T) {
	dir := t.TempDir()
	e, err := New(context.Background(),
		WithConfig(Config{SkipTelemetry: true, HistoryDir: dir}),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	require.NoError(t, err)
	require.NotNil(t, e.History)

	g, err := e.LoadGraph(context.Background(), writeTempGraph(t, diamondJSON))
	require.NoError(t, err)
	e.Analyze(context.Background(), g)
	e.Analyze(context.Background(), g)

	window, err := e.History.LoadWindow(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, window, 2)
	assert.Equal(t, 4, window[1].Nodes)
	// Closing the diamond root cascades through b, c and d.
	assert.Equal(t, 3, window[1].TopImpact)
}

func TestResolveClosed(t *testing.T) {
	g := graph.New()
	g.AddNode("a")
	g.AddNode("b")

	closed, err := ResolveClosed(g, []string{"b"})
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true}, closed)

	_, err = ResolveClosed(g, []string{"nope"})
	assert.Error(t, err)
}
