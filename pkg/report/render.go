package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/beadviewer/bvgraph/pkg/analysis"
)

var (
	colorAccent = lipgloss.Color("#874BFD")
	colorGood   = lipgloss.Color("#00FF99")
	colorWarn   = lipgloss.Color("#F59E0B")
	colorSub    = lipgloss.Color("#64748B")

	titleStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(colorGood).
			Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(colorWarn).
			Bold(true)

	subtleStyle = lipgloss.NewStyle().
			Foreground(colorSub)
)

// Render produces the terminal summary of a document.
func (d *Document) Render() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("GRAPH"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  nodes %s  edges %s  density %s\n",
		valueStyle.Render(fmt.Sprintf("%d", d.Graph.Nodes)),
		valueStyle.Render(fmt.Sprintf("%d", d.Graph.Edges)),
		valueStyle.Render(fmt.Sprintf("%.4f", d.Graph.Density)),
	)
	if d.Graph.HasCycles {
		fmt.Fprintf(&b, "  %s\n", warnStyle.Render("cycles detected"))
	} else if len(d.Graph.CriticalPath) > 0 {
		fmt.Fprintf(&b, "  critical path: %s  (total float %.1f)\n",
			strings.Join(d.Graph.CriticalPath, " -> "), d.Graph.TotalFloat)
	}

	if d.Insights != nil {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render("INSIGHTS"))
		b.WriteString("\n")
		renderItems(&b, "bottlenecks", d.Insights.Bottlenecks)
		renderItems(&b, "keystones", d.Insights.Keystones)
		renderItems(&b, "hubs", d.Insights.Hubs)
		renderItems(&b, "authorities", d.Insights.Authorities)
		if len(d.Insights.Orphans) > 0 {
			fmt.Fprintf(&b, "  %-12s %s\n", "orphans", subtleStyle.Render(strings.Join(d.Insights.Orphans, ", ")))
		}
		for _, cycle := range d.Insights.Cycles {
			fmt.Fprintf(&b, "  %-12s %s\n", "cycle", warnStyle.Render(strings.Join(cycle, " <-> ")))
		}
	}

	if len(d.WhatIf) > 0 {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render("WHAT-IF"))
		b.WriteString("\n")
		for i, impact := range d.WhatIf {
			fmt.Fprintf(&b, "  %2d. close %s -> unblocks %s (direct %d, gain %d)\n",
				i+1,
				valueStyle.Render(impact.ID),
				valueStyle.Render(fmt.Sprintf("%d", impact.Transitive)),
				impact.Direct,
				impact.Gain,
			)
		}
	}

	if d.RuleMatches != nil {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render("RULES"))
		b.WriteString("\n")
		if len(d.RuleMatches) == 0 {
			fmt.Fprintf(&b, "  %s\n", subtleStyle.Render("no nodes matched"))
		} else {
			fmt.Fprintf(&b, "  matched %d: %s\n",
				len(d.RuleMatches), valueStyle.Render(strings.Join(d.RuleMatches, ", ")))
		}
	}

	if len(d.Scenario) > 0 {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render("SCENARIO"))
		b.WriteString("\n")
		for _, step := range d.Scenario {
			fmt.Fprintf(&b, "  %s: close [%s] -> unblocks %d",
				step.Step, strings.Join(step.Closed, ", "), step.Total)
			if len(step.Cascade) > 0 {
				fmt.Fprintf(&b, " (%s)", strings.Join(step.Cascade, ", "))
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

// renderItems prints one labeled insight list, skipping empty ones.
func renderItems(b *strings.Builder, label string, items []analysis.InsightItem) {
	if len(items) == 0 {
		return
	}
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = fmt.Sprintf("%s (%.4f)", item.ID, item.Value)
	}
	fmt.Fprintf(b, "  %-12s %s\n", label, strings.Join(parts, ", "))
}
