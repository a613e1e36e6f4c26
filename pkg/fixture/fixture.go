// Package fixture loads shared graph definitions and expected-metric files
// used for cross-validation between implementations. Graph files list node
// identifiers and index pairs; metric files hold identifier-keyed expected
// values. Both formats decode from JSON or YAML, chosen by file extension.
package fixture

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/beadviewer/bvgraph/pkg/analysis"
	"github.com/beadviewer/bvgraph/pkg/graph"
)

// GraphFile is the on-disk graph definition. Edges reference nodes by index
// into the Nodes list.
type GraphFile struct {
	Description string   `json:"description" yaml:"description"`
	Nodes       []string `json:"nodes" yaml:"nodes"`
	Edges       [][2]int `json:"edges" yaml:"edges"`
}

// Metrics is the on-disk expected-metric set for one graph. Float maps may
// cover only a subset of nodes; absent identifiers are not checked. A nil
// TopologicalOrder means the graph is cyclic and has none.
type Metrics struct {
	Description       string             `json:"description" yaml:"description"`
	NodeCount         int                `json:"node_count" yaml:"node_count"`
	EdgeCount         int                `json:"edge_count" yaml:"edge_count"`
	Density           float64            `json:"density" yaml:"density"`
	PageRank          map[string]float64 `json:"pagerank" yaml:"pagerank"`
	Betweenness       map[string]float64 `json:"betweenness" yaml:"betweenness"`
	Eigenvector       map[string]float64 `json:"eigenvector" yaml:"eigenvector"`
	Hubs              map[string]float64 `json:"hubs" yaml:"hubs"`
	Authorities       map[string]float64 `json:"authorities" yaml:"authorities"`
	CriticalPathScore map[string]float64 `json:"critical_path_score" yaml:"critical_path_score"`
	TopologicalOrder  []string           `json:"topological_order" yaml:"topological_order"`
	CoreNumber        map[string]int     `json:"core_number" yaml:"core_number"`
	Slack             map[string]float64 `json:"slack" yaml:"slack"`
	HasCycles         bool               `json:"has_cycles" yaml:"has_cycles"`
	Cycles            [][]string         `json:"cycles" yaml:"cycles"`
	OutDegree         map[string]int     `json:"out_degree" yaml:"out_degree"`
	InDegree          map[string]int     `json:"in_degree" yaml:"in_degree"`
}

// LoadGraph reads, decodes and builds a graph definition file.
func LoadGraph(path string) (*graph.DiGraph, *GraphFile, error) {
	var gf GraphFile
	if err := decodeFile(path, &gf); err != nil {
		return nil, nil, err
	}
	g, err := gf.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("graph file %s: %w", path, err)
	}
	return g, &gf, nil
}

// LoadMetrics reads and decodes an expected-metric file.
func LoadMetrics(path string) (*Metrics, error) {
	var m Metrics
	if err := decodeFile(path, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Build materializes the definition into a graph.
func (gf *GraphFile) Build() (*graph.DiGraph, error) {
	g := graph.WithCapacity(len(gf.Nodes), len(gf.Edges))
	for _, id := range gf.Nodes {
		g.AddNode(id)
	}
	for i, e := range gf.Edges {
		if err := g.AddEdge(e[0], e[1]); err != nil {
			return nil, fmt.Errorf("edge %d (%d -> %d): %w", i, e[0], e[1], err)
		}
	}
	return g, nil
}

// Tolerances holds the per-metric float comparison bounds. The power-method
// metrics converge iteratively and get a looser bound than the exactly
// computed scheduling metrics.
type Tolerances struct {
	PageRank     float64
	HITS         float64
	Eigenvector  float64
	Betweenness  float64
	CriticalPath float64
	Slack        float64
	Density      float64
}

// DefaultTolerances returns the bounds the shared fixture format specifies:
// 1e-5 for the iterative centralities, 1e-6 for everything else.
func DefaultTolerances() Tolerances {
	return Tolerances{
		PageRank:     1e-5,
		HITS:         1e-5,
		Eigenvector:  1e-5,
		Betweenness:  1e-6,
		CriticalPath: 1e-6,
		Slack:        1e-6,
		Density:      1e-6,
	}
}

// UniformTolerances applies one bound to every metric.
func UniformTolerances(tol float64) Tolerances {
	return Tolerances{
		PageRank:     tol,
		HITS:         tol,
		Eigenvector:  tol,
		Betweenness:  tol,
		CriticalPath: tol,
		Slack:        tol,
		Density:      tol,
	}
}

// Diff compares computed stats against the expected metrics and returns one
// message per mismatch. Float comparisons use the per-metric tolerances. An
// empty result means everything matched.
func (m *Metrics) Diff(g *graph.DiGraph, stats *analysis.GraphStats, tol Tolerances) []string {
	var diffs []string
	addf := func(format string, args ...interface{}) {
		diffs = append(diffs, fmt.Sprintf(format, args...))
	}

	if stats.NodeCount != m.NodeCount {
		addf("node_count: got %d, expected %d", stats.NodeCount, m.NodeCount)
	}
	if stats.EdgeCount != m.EdgeCount {
		addf("edge_count: got %d, expected %d", stats.EdgeCount, m.EdgeCount)
	}
	if math.Abs(stats.Density-m.Density) > tol.Density {
		addf("density: got %g, expected %g", stats.Density, m.Density)
	}
	if stats.HasCycles != m.HasCycles {
		addf("has_cycles: got %v, expected %v", stats.HasCycles, m.HasCycles)
	}

	diffs = append(diffs, diffFloats(g, "pagerank", stats.PageRank, m.PageRank, tol.PageRank)...)
	diffs = append(diffs, diffFloats(g, "betweenness", stats.Betweenness, m.Betweenness, tol.Betweenness)...)
	diffs = append(diffs, diffFloats(g, "eigenvector", stats.Eigenvector, m.Eigenvector, tol.Eigenvector)...)
	diffs = append(diffs, diffFloats(g, "hubs", stats.Hubs, m.Hubs, tol.HITS)...)
	diffs = append(diffs, diffFloats(g, "authorities", stats.Authorities, m.Authorities, tol.HITS)...)
	diffs = append(diffs, diffFloats(g, "critical_path_score", stats.CriticalPathScore, m.CriticalPathScore, tol.CriticalPath)...)
	diffs = append(diffs, diffFloats(g, "slack", stats.SlackByIndex, m.Slack, tol.Slack)...)

	for id, want := range m.CoreNumber {
		idx, ok := g.NodeIndex(id)
		if !ok {
			addf("core_number: unknown node %q", id)
			continue
		}
		if got := stats.CoreNumber[idx]; got != want {
			addf("core_number for %s: got %d, expected %d", id, got, want)
		}
	}

	if m.TopologicalOrder != nil && !equalStrings(stats.TopologicalOrder, m.TopologicalOrder) {
		addf("topological_order: got %v, expected %v", stats.TopologicalOrder, m.TopologicalOrder)
	}
	if m.Cycles != nil && !equalCycles(stats.CycleComponents, m.Cycles) {
		addf("cycles: got %v, expected %v", stats.CycleComponents, m.Cycles)
	}

	diffs = append(diffs, diffInts("out_degree", stats.OutDegree, m.OutDegree)...)
	diffs = append(diffs, diffInts("in_degree", stats.InDegree, m.InDegree)...)

	return diffs
}

func diffFloats(g *graph.DiGraph, name string, got []float64, want map[string]float64, tol float64) []string {
	var diffs []string
	for id, exp := range want {
		idx, ok := g.NodeIndex(id)
		if !ok {
			diffs = append(diffs, fmt.Sprintf("%s: unknown node %q", name, id))
			continue
		}
		act := got[idx]
		if math.Abs(act-exp) > tol {
			diffs = append(diffs, fmt.Sprintf("%s for %s: got %g, expected %g", name, id, act, exp))
		}
	}
	return diffs
}

func diffInts(name string, got, want map[string]int) []string {
	var diffs []string
	for id, exp := range want {
		if act, ok := got[id]; !ok || act != exp {
			diffs = append(diffs, fmt.Sprintf("%s for %s: got %d, expected %d", name, id, act, exp))
		}
	}
	sort.Strings(diffs)
	return diffs
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// equalCycles compares components as sets of sets, since emission order is
// an implementation detail.
func equalCycles(a, b [][]string) bool {
	if len(a) != len(b) {
		return false
	}
	return canonCycles(a) == canonCycles(b)
}

func canonCycles(cs [][]string) string {
	keys := make([]string, len(cs))
	for i, c := range cs {
		members := append([]string(nil), c...)
		sort.Strings(members)
		keys[i] = strings.Join(members, ",")
	}
	sort.Strings(keys)
	return strings.Join(keys, ";")
}

func decodeFile(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read fixture %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to parse fixture yaml %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to parse fixture json %s: %w", path, err)
		}
	}
	return nil
}
