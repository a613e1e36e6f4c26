package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/beadviewer/bvgraph/pkg/report"
)

var rulesFile string

var analyzeCmd = &cobra.Command{
	Use:   "analyze <graph-file>",
	Short: "Compute the full metric suite for a graph snapshot",
	Long: `Loads a graph snapshot (JSON or YAML), computes centrality, structure
and scheduling metrics, and prints an insight summary.

Example:
  bvgraph analyze fixtures/backlog.json
  bvgraph analyze fixtures/backlog.json --rules rules.yaml --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		eng, err := newEngine(ctx)
		if err != nil {
			return err
		}
		defer eng.Shutdown(ctx)

		g, err := eng.LoadGraph(ctx, args[0])
		if err != nil {
			return err
		}

		stats, ins := eng.Analyze(ctx, g)

		doc := report.New(time.Now().UTC().Format(time.RFC3339), stats).
			WithInsights(ins)

		if rulesFile != "" {
			filter, err := eng.LoadRules(rulesFile)
			if err != nil {
				return err
			}
			matched := filter.FilterNodes(g, stats, nil)
			ids := make([]string, len(matched))
			for i, v := range matched {
				ids[i] = g.NodeID(v)
			}
			doc.WithRuleMatches(ids)
		}

		if jsonOutput {
			return doc.WriteJSON(os.Stdout)
		}
		fmt.Print(doc.Render())
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&rulesFile, "rules", "", "YAML file of CEL filter rules")
}
