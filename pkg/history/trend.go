package history

import "fmt"

// Trend holds the derived signals between the two most recent runs.
type Trend struct {
	NodeDelta    int
	EdgeDelta    int
	DensityDelta float64
	// NodesPerHour is the graph growth rate between the last two runs.
	NodesPerHour float64

	Alerts []string
}

// Analyze compares the last runs in the window and flags regressions: new
// cycles, density jumps, and fast growth. Fewer than two runs yields an
// empty trend.
func Analyze(window []Snapshot) Trend {
	if len(window) < 2 {
		return Trend{}
	}

	current := window[len(window)-1]
	prev := window[len(window)-2]

	t := Trend{
		NodeDelta:    current.Nodes - prev.Nodes,
		EdgeDelta:    current.Edges - prev.Edges,
		DensityDelta: current.Density - prev.Density,
	}

	hours := float64(current.Timestamp-prev.Timestamp) / 3600.0
	if hours > 0 {
		t.NodesPerHour = float64(t.NodeDelta) / hours
	}

	if current.HasCycles && !prev.HasCycles {
		t.Alerts = append(t.Alerts, "CYCLE INTRODUCED: the dependency graph is no longer a DAG")
	}
	if t.DensityDelta > 0.1 {
		t.Alerts = append(t.Alerts, fmt.Sprintf("DENSITY JUMP: +%.3f since the previous run", t.DensityDelta))
	}
	if current.Degeneracy > prev.Degeneracy {
		t.Alerts = append(t.Alerts, fmt.Sprintf("CORE DEEPENED: degeneracy %d -> %d", prev.Degeneracy, current.Degeneracy))
	}

	return t
}
