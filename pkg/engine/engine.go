// Package engine is the runtime core tying the analysis pieces together:
// it loads graph snapshots, runs the metric suite, applies rule filters and
// plays what-if simulations, with logging and tracing wired once for every
// caller.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gopkg.in/yaml.v3"

	"github.com/beadviewer/bvgraph/pkg/analysis"
	"github.com/beadviewer/bvgraph/pkg/config"
	"github.com/beadviewer/bvgraph/pkg/fixture"
	"github.com/beadviewer/bvgraph/pkg/graph"
	"github.com/beadviewer/bvgraph/pkg/history"
	"github.com/beadviewer/bvgraph/pkg/policy"
	"github.com/beadviewer/bvgraph/pkg/scenario"
	"github.com/beadviewer/bvgraph/pkg/telemetry"
	"github.com/beadviewer/bvgraph/pkg/version"
	"github.com/beadviewer/bvgraph/pkg/whatif"
)

// Config is the immutable engine configuration.
type Config struct {
	// Analysis holds the algorithm tunables.
	Analysis config.Config
	// OtelEndpoint overrides OTEL_EXPORTER_OTLP_ENDPOINT.
	OtelEndpoint string
	// SkipTelemetry disables tracing setup entirely.
	SkipTelemetry bool
	// HistoryDir enables the run ledger when set.
	HistoryDir string
	// Logger replaces the default JSON logger when set.
	Logger *slog.Logger
}

// Engine is the runtime core.
type Engine struct {
	Logger  *slog.Logger
	Tracer  trace.Tracer
	History *history.Client // nil unless HistoryDir is configured

	cfg      Config
	shutdown func(context.Context) error
}

// Option defines a functional configuration override.
type Option func(*Engine)

// New initializes the Engine with safe defaults: JSON logging to stderr,
// default analysis tunables, and tracing that exports only when an endpoint
// is configured.
func New(ctx context.Context, opts ...Option) (*Engine, error) {
	e := &Engine{
		Logger: slog.New(slog.NewJSONHandler(os.Stderr, nil)),
		Tracer: otel.Tracer("bvgraph/engine"),
		cfg:    Config{Analysis: config.Default()},
	}

	for _, opt := range opts {
		opt(e)
	}

	slog.SetDefault(e.Logger)

	if !e.cfg.SkipTelemetry {
		shutdown, err := telemetry.Init(ctx, version.AppName, version.Current, e.cfg.OtelEndpoint)
		if err != nil {
			e.Logger.Warn("Telemetry failed", "error", err)
		} else {
			e.shutdown = shutdown
		}
	}

	if e.cfg.HistoryDir != "" {
		e.History = history.NewLocalClient(e.cfg.HistoryDir)
	}

	return e, nil
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.Logger = l
		}
	}
}

// WithConfig sets raw config. Zero-value analysis tunables fall back to the
// defaults so partial configs stay usable.
func WithConfig(cfg Config) Option {
	return func(e *Engine) {
		if cfg.Logger != nil {
			e.Logger = cfg.Logger
		}
		if cfg.Analysis == (config.Config{}) {
			cfg.Analysis = config.Default()
		}
		e.cfg = cfg
	}
}

// Shutdown flushes telemetry. Safe to call when tracing never started.
func (e *Engine) Shutdown(ctx context.Context) error {
	if e.shutdown == nil {
		return nil
	}
	return e.shutdown(ctx)
}

// LoadGraph reads a graph snapshot file (JSON or YAML).
func (e *Engine) LoadGraph(ctx context.Context, path string) (*graph.DiGraph, error) {
	_, span := e.Tracer.Start(ctx, "engine.LoadGraph",
		trace.WithAttributes(attribute.String("graph.path", path)))
	defer span.End()

	g, gf, err := fixture.LoadGraph(path)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	e.Logger.Info("Graph loaded",
		"path", path,
		"description", gf.Description,
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
	)
	return g, nil
}

// Analyze runs the full metric suite and distills insights.
func (e *Engine) Analyze(ctx context.Context, g *graph.DiGraph) (*analysis.GraphStats, analysis.Insights) {
	_, span := e.Tracer.Start(ctx, "engine.Analyze",
		trace.WithAttributes(attribute.Int("graph.nodes", g.NodeCount())))
	defer span.End()

	stats := analysis.Compute(g, e.cfg.Analysis.ComputeOptions(g.NodeCount()))
	ins := analysis.GenerateInsights(g, stats, e.cfg.Analysis.Insights.Limit)

	e.Logger.Info("Analysis complete",
		"nodes", stats.NodeCount,
		"edges", stats.EdgeCount,
		"has_cycles", stats.HasCycles,
		"degeneracy", stats.Degeneracy,
	)
	e.recordRun(ctx, g, stats)
	return stats, ins
}

// recordRun appends the run to the ledger and logs any regression signals
// against the previous run. Ledger failures never fail the analysis.
func (e *Engine) recordRun(ctx context.Context, g *graph.DiGraph, stats *analysis.GraphStats) {
	if e.History == nil {
		return
	}
	snap := history.Snapshot{
		Timestamp:  time.Now().Unix(),
		Nodes:      stats.NodeCount,
		Edges:      stats.EdgeCount,
		Density:    stats.Density,
		HasCycles:  stats.HasCycles,
		Degeneracy: stats.Degeneracy,
	}
	if top := whatif.Top(g, nil, 1); len(top) > 0 {
		snap.TopImpact = top[0].Result.TransitiveUnblocks
	}
	if err := e.History.Append(ctx, snap); err != nil {
		e.Logger.Warn("History append failed", "error", err)
		return
	}
	window, err := e.History.LoadWindow(ctx, 10)
	if err != nil {
		return
	}
	for _, alert := range history.Analyze(window).Alerts {
		e.Logger.Warn("Trend alert", "alert", alert)
	}
}

// WhatIfTop ranks the actionable candidates by simulated impact. When all is
// set the ranking covers every open node instead.
func (e *Engine) WhatIfTop(ctx context.Context, g *graph.DiGraph, closed []bool, all bool) []whatif.TopEntry {
	_, span := e.Tracer.Start(ctx, "engine.WhatIfTop",
		trace.WithAttributes(attribute.Bool("whatif.all", all)))
	defer span.End()

	limit := e.cfg.Analysis.WhatIf.Limit
	if all {
		return whatif.All(g, closed, limit)
	}
	return whatif.Top(g, closed, limit)
}

// WhatIfClose simulates closing one batch of node identifiers.
func (e *Engine) WhatIfClose(ctx context.Context, g *graph.DiGraph, ids []string, closed []bool) (whatif.Result, error) {
	_, span := e.Tracer.Start(ctx, "engine.WhatIfClose",
		trace.WithAttributes(attribute.Int("whatif.batch_size", len(ids))))
	defer span.End()

	batch := make([]int, 0, len(ids))
	for _, id := range ids {
		idx, ok := g.NodeIndex(id)
		if !ok {
			err := fmt.Errorf("unknown node %q", id)
			span.RecordError(err)
			return whatif.Result{}, err
		}
		batch = append(batch, idx)
	}
	if len(batch) == 1 {
		return whatif.Close(g, batch[0], closed), nil
	}
	return whatif.CloseBatch(g, batch, closed), nil
}

// RunScenario loads a scenario file and plays every scenario in it.
func (e *Engine) RunScenario(ctx context.Context, g *graph.DiGraph, path string) (map[string][]scenario.StepResult, error) {
	_, span := e.Tracer.Start(ctx, "engine.RunScenario",
		trace.WithAttributes(attribute.String("scenario.path", path)))
	defer span.End()

	scs, err := scenario.LoadFile(path)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	out := make(map[string][]scenario.StepResult, len(scs))
	for _, sc := range scs {
		results, err := scenario.Run(g, sc)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		e.Logger.Info("Scenario complete", "scenario", sc.Name, "steps", len(results))
		out[sc.Name] = results
	}
	return out, nil
}

// LoadRules compiles a YAML rules file into a filter engine. An empty path
// yields an engine with no rules, which matches everything.
func (e *Engine) LoadRules(path string) (*policy.Engine, error) {
	filter, err := policy.NewEngine()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return filter, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}
	var ruleFile struct {
		Rules []policy.Rule `yaml:"rules"`
	}
	if err := yaml.Unmarshal(data, &ruleFile); err != nil {
		return nil, fmt.Errorf("failed to parse rules yaml: %w", err)
	}

	e.Logger.Info("Compiling rules", "count", len(ruleFile.Rules))
	if err := filter.Compile(ruleFile.Rules); err != nil {
		return nil, err
	}
	return filter, nil
}

// ResolveClosed maps closed-node identifiers to a dense closed set.
func ResolveClosed(g *graph.DiGraph, ids []string) ([]bool, error) {
	closed := make([]bool, g.NodeCount())
	for _, id := range ids {
		idx, ok := g.NodeIndex(id)
		if !ok {
			return nil, fmt.Errorf("unknown node %q in closed set", id)
		}
		closed[idx] = true
	}
	return closed, nil
}
