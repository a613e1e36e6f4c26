package commands

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/beadviewer/bvgraph/pkg/report"
)

var scenarioCmd = &cobra.Command{
	Use:   "scenario <graph-file> <scenario-file>",
	Short: "Play what-if scenarios from an HCL playbook",
	Long: `Runs every scenario block in an HCL playbook against a graph snapshot,
closing each step's batch in order and reporting what it unblocks.

Example:
  bvgraph scenario fixtures/backlog.json sprint.hcl`,
	Args: cobra.ExactArgs(2),
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
		runs, err := eng.RunScenario(ctx, g, args[1])
		if err != nil {
			return err
		}

		stats, _ := eng.Analyze(ctx, g)

		names := make([]string, 0, len(runs))
		for name := range runs {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			doc := report.New(time.Now().UTC().Format(time.RFC3339), stats).
				WithScenario(runs[name])
			if jsonOutput {
				if err := doc.WriteJSON(os.Stdout); err != nil {
					return err
				}
				continue
			}
			fmt.Printf("=== %s ===\n", name)
			fmt.Print(doc.Render())
		}
		return nil
	},
}
