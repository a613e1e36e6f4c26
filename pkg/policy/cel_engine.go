// Package policy filters analysis output through user-defined CEL rules.
// A rule sees one node at a time with its structural attributes bound as
// top-level variables, so expressions read naturally:
//
//	out_degree > 3 && !closed
//	pagerank > 0.1 || id.startsWith("infra/")
package policy

import (
	"fmt"
	"log/slog"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/checker/decls"
)

// Rule is a user-defined filter rule (e.g. from YAML).
type Rule struct {
	ID        string `json:"id" yaml:"id"`
	Condition string `json:"condition" yaml:"condition"` // CEL expression over node attributes
}

// NodeContext carries the attributes a rule may reference for one node.
type NodeContext struct {
	ID          string
	OutDegree   int
	InDegree    int
	Closed      bool
	Actionable  bool
	PageRank    float64
	Betweenness float64
}

// Engine manages the compilation and execution of filter rules.
type Engine struct {
	env      *cel.Env
	programs map[string]cel.Program
	order    []string
}

// NewEngine initializes the CEL environment with the node attribute
// declarations.
func NewEngine() (*Engine, error) {
	env, err := cel.NewEnv(
		cel.Declarations(
			decls.NewVar("id", decls.String),
			decls.NewVar("out_degree", decls.Int),
			decls.NewVar("in_degree", decls.Int),
			decls.NewVar("closed", decls.Bool),
			decls.NewVar("actionable", decls.Bool),
			decls.NewVar("pagerank", decls.Double),
			decls.NewVar("betweenness", decls.Double),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL env: %w", err)
	}

	return &Engine{
		env:      env,
		programs: make(map[string]cel.Program),
	}, nil
}

// Compile compiles a list of rules into executable programs. A compile
// error in any rule fails the whole batch.
func (e *Engine) Compile(rules []Rule) error {
	for _, r := range rules {
		ast, issues := e.env.Compile(r.Condition)
		if issues != nil && issues.Err() != nil {
			return fmt.Errorf("rule %s compilation error: %w", r.ID, issues.Err())
		}

		prg, err := e.env.Program(ast)
		if err != nil {
			return fmt.Errorf("rule %s program creation error: %w", r.ID, err)
		}

		if _, seen := e.programs[r.ID]; !seen {
			e.order = append(e.order, r.ID)
		}
		e.programs[r.ID] = prg
	}
	return nil
}

// RuleCount returns the number of compiled rules.
func (e *Engine) RuleCount() int { return len(e.programs) }

// Evaluate runs every compiled rule against one node and returns the IDs
// of the rules that matched, in compilation order. A rule that errors at
// runtime is logged and skipped rather than failing the node.
func (e *Engine) Evaluate(nc NodeContext) ([]string, error) {
	vars := map[string]interface{}{
		"id":          nc.ID,
		"out_degree":  int64(nc.OutDegree),
		"in_degree":   int64(nc.InDegree),
		"closed":      nc.Closed,
		"actionable":  nc.Actionable,
		"pagerank":    nc.PageRank,
		"betweenness": nc.Betweenness,
	}

	var matches []string
	for _, id := range e.order {
		out, _, err := e.programs[id].Eval(vars)
		if err != nil {
			slog.Error("Rule evaluation failed", "rule_id", id, "error", err)
			continue
		}

		// Rules must return a boolean (true = match).
		if match, ok := out.Value().(bool); ok && match {
			matches = append(matches, id)
		}
	}

	return matches, nil
}

// Matches reports whether any compiled rule matches the node. An engine
// with no rules matches everything, so an empty filter is a no-op.
func (e *Engine) Matches(nc NodeContext) bool {
	if len(e.programs) == 0 {
		return true
	}
	matched, err := e.Evaluate(nc)
	if err != nil {
		return false
	}
	return len(matched) > 0
}
