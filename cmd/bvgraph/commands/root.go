package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/beadviewer/bvgraph/pkg/config"
	"github.com/beadviewer/bvgraph/pkg/engine"
	"github.com/beadviewer/bvgraph/pkg/version"
)

var (
	cfgFile      string
	otelEndpoint string
	noTelemetry  bool
	jsonOutput   bool
	historyDir   string
)

var rootCmd = &cobra.Command{
	Use:   "bvgraph",
	Short: "Structural analysis for dependency graphs",
	Long: `bvgraph - dependency graph analytics

Load a graph snapshot, compute centrality and structure metrics, and
simulate which closures unblock the most downstream work.`,
	Version:       version.Current,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default ~/.bvgraph.yaml)")
	rootCmd.PersistentFlags().StringVar(&otelEndpoint, "otel-endpoint", "", "OTLP HTTP endpoint for trace export")
	rootCmd.PersistentFlags().BoolVar(&noTelemetry, "no-telemetry", false, "Disable tracing setup")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of the terminal summary")
	rootCmd.PersistentFlags().StringVar(&historyDir, "history-dir", "", "Directory for the run ledger (disabled when empty)")

	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		renderHelp(cmd)
	})

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(whatifCmd)
	rootCmd.AddCommand(scenarioCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd)
}

func renderHelp(cmd *cobra.Command) {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#874BFD")).
		MarginBottom(1)
	flagStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA"))

	fmt.Println(titleStyle.Render(fmt.Sprintf("BVGRAPH %s", version.Current)))
	fmt.Println(cmd.Short)

	fmt.Println(titleStyle.Render("USAGE"))
	fmt.Printf("  %s\n\n", cmd.UseLine())

	if cmds := cmd.Commands(); len(cmds) > 0 {
		fmt.Println(titleStyle.Render("COMMANDS"))
		for _, c := range cmds {
			if c.IsAvailableCommand() {
				fmt.Printf("  %-12s %s\n", c.Name(), c.Short)
			}
		}
		fmt.Println("")
	}

	fmt.Println(titleStyle.Render("FLAGS"))
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		output := fmt.Sprintf("  --%-15s %s", f.Name, f.Usage)
		if f.DefValue != "" && f.DefValue != "false" && f.DefValue != "0" {
			output += fmt.Sprintf(" (default %s)", f.DefValue)
		}
		fmt.Println(flagStyle.Render(output))
	})
	fmt.Println("")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.SetConfigFile(filepath.Join(home, ".bvgraph.yaml"))
			viper.SetConfigType("yaml")
		}
	}
	viper.SetEnvPrefix("BVGRAPH")
	viper.AutomaticEnv()
	viper.ReadInConfig()
}

// loadAnalysisConfig layers the config file and environment over the
// defaults.
func loadAnalysisConfig() (config.Config, error) {
	cfg := config.Default()
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newEngine builds the runtime core from flags and config.
func newEngine(ctx context.Context) (*engine.Engine, error) {
	cfg, err := loadAnalysisConfig()
	if err != nil {
		return nil, err
	}
	return engine.New(ctx, engine.WithConfig(engine.Config{
		Analysis:      cfg,
		OtelEndpoint:  otelEndpoint,
		SkipTelemetry: noTelemetry,
		HistoryDir:    historyDir,
	}))
}
