package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/beadviewer/bvgraph/pkg/fixture"
)

var validateTol float64

var validateCmd = &cobra.Command{
	Use:   "validate <graph-file> <metrics-file>",
	Short: "Check computed metrics against an expected-metrics file",
	Long: `Recomputes the metric suite for a graph snapshot and compares it against
an expected-metrics file, reporting every mismatch. Used to cross-validate
this implementation against others sharing the same fixture format.

Example:
  bvgraph validate testdata/graphs/diamond.json testdata/expected/diamond_metrics.json`,
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
		expected, err := fixture.LoadMetrics(args[1])
		if err != nil {
			return err
		}

		tol := fixture.DefaultTolerances()
		if validateTol > 0 {
			tol = fixture.UniformTolerances(validateTol)
		}

		stats, _ := eng.Analyze(ctx, g)
		diffs := expected.Diff(g, stats, tol)
		if len(diffs) == 0 {
			fmt.Println("OK: all expected metrics match")
			return nil
		}
		for _, d := range diffs {
			fmt.Println(d)
		}
		return fmt.Errorf("%d metric(s) diverged", len(diffs))
	},
}

func init() {
	validateCmd.Flags().Float64Var(&validateTol, "tolerance", 0, "Uniform float tolerance overriding the per-metric defaults")
}
