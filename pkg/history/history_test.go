package history

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendAndLoadWindow(t *testing.T) {
	c := NewLocalClient(t.TempDir())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, c.Append(ctx, Snapshot{
			Timestamp: int64(1000 * i),
			Nodes:     10 + i,
			Edges:     20 + i,
		}))
	}

	window, err := c.LoadWindow(ctx, 3)
	require.NoError(t, err)
	require.Len(t, window, 3)
	assert.Equal(t, 12, window[0].Nodes)
	assert.Equal(t, 14, window[2].Nodes)

	all, err := c.LoadWindow(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestLoadWindowMissingLedger(t *testing.T) {
	c := NewLocalClient(t.TempDir())

	window, err := c.LoadWindow(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, window)
}

func TestAnalyzeTrend(t *testing.T) {
	window := []Snapshot{
		{Timestamp: 0, Nodes: 100, Edges: 200, Density: 0.02},
		{Timestamp: 7200, Nodes: 110, Edges: 230, Density: 0.021},
	}

	trend := Analyze(window)
	assert.Equal(t, 10, trend.NodeDelta)
	assert.Equal(t, 30, trend.EdgeDelta)
	assert.InDelta(t, 5.0, trend.NodesPerHour, 1e-9)
	assert.Empty(t, trend.Alerts)
}

func TestAnalyzeAlerts(t *testing.T) {
	window := []Snapshot{
		{Timestamp: 0, Nodes: 10, Density: 0.1, Degeneracy: 1},
		{Timestamp: 3600, Nodes: 12, Density: 0.3, HasCycles: true, Degeneracy: 3},
	}

	trend := Analyze(window)
	require.Len(t, trend.Alerts, 3)
	assert.Contains(t, trend.Alerts[0], "CYCLE INTRODUCED")
	assert.Contains(t, trend.Alerts[1], "DENSITY JUMP")
	assert.Contains(t, trend.Alerts[2], "CORE DEEPENED")
}

func TestAnalyzeShortWindow(t *testing.T) {
	assert.Empty(t, Analyze(nil).Alerts)
	assert.Empty(t, Analyze([]Snapshot{{Nodes: 1}}).Alerts)
}
