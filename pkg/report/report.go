// Package report assembles analysis output into export documents and
// terminal summaries. The JSON form is deterministic for a given input so
// exports diff cleanly between runs.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/beadviewer/bvgraph/pkg/analysis"
	"github.com/beadviewer/bvgraph/pkg/graph"
	"github.com/beadviewer/bvgraph/pkg/scenario"
	"github.com/beadviewer/bvgraph/pkg/whatif"
)

// Document is the top-level export payload.
type Document struct {
	GeneratedAt string                `json:"generated_at"`
	Graph       GraphSummary          `json:"graph"`
	Insights    *analysis.Insights    `json:"insights,omitempty"`
	WhatIf      []Impact              `json:"what_if,omitempty"`
	Scenario    []scenario.StepResult `json:"scenario,omitempty"`
	RuleMatches []string              `json:"rule_matches,omitempty"`
}

// GraphSummary carries the headline structural numbers.
type GraphSummary struct {
	Nodes        int      `json:"nodes"`
	Edges        int      `json:"edges"`
	Density      float64  `json:"density"`
	HasCycles    bool     `json:"has_cycles"`
	CriticalPath []string `json:"critical_path,omitempty"`
	TotalFloat   float64  `json:"total_float"`
	Degeneracy   int      `json:"degeneracy"`
}

// Impact is one ranked what-if outcome, keyed by identifier instead of
// index so exports stand alone.
type Impact struct {
	ID         string   `json:"id"`
	Direct     int      `json:"direct_unblocks"`
	Transitive int      `json:"transitive_unblocks"`
	Gain       int      `json:"parallel_gain"`
	Cascade    []string `json:"cascade"`
}

// New starts a document from computed stats. generatedAt is caller-supplied
// so exports stay reproducible.
func New(generatedAt string, stats *analysis.GraphStats) *Document {
	return &Document{
		GeneratedAt: generatedAt,
		Graph: GraphSummary{
			Nodes:        stats.NodeCount,
			Edges:        stats.EdgeCount,
			Density:      stats.Density,
			HasCycles:    stats.HasCycles,
			CriticalPath: stats.CriticalPath,
			TotalFloat:   stats.TotalFloat,
			Degeneracy:   stats.Degeneracy,
		},
	}
}

// WithInsights attaches an insight summary.
func (d *Document) WithInsights(ins analysis.Insights) *Document {
	d.Insights = &ins
	return d
}

// WithWhatIf attaches a ranked what-if outcome, translating node indices to
// identifiers.
func (d *Document) WithWhatIf(g *graph.DiGraph, entries []whatif.TopEntry) *Document {
	d.WhatIf = make([]Impact, len(entries))
	for i, e := range entries {
		cascade := make([]string, len(e.Result.CascadeIDs))
		for j, v := range e.Result.CascadeIDs {
			cascade[j] = g.NodeID(v)
		}
		d.WhatIf[i] = Impact{
			ID:         g.NodeID(e.Node),
			Direct:     e.Result.DirectUnblocks,
			Transitive: e.Result.TransitiveUnblocks,
			Gain:       e.Result.ParallelGain,
			Cascade:    cascade,
		}
	}
	return d
}

// WithRuleMatches attaches the identifiers matched by a filter rule set.
func (d *Document) WithRuleMatches(ids []string) *Document {
	d.RuleMatches = ids
	return d
}

// WithScenario attaches scenario step results.
func (d *Document) WithScenario(results []scenario.StepResult) *Document {
	d.Scenario = results
	return d
}

// WriteJSON writes the indented JSON form. Object keys and list orders are
// stable, so identical inputs produce identical bytes.
func (d *Document) WriteJSON(w io.Writer) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
