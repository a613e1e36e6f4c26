// Package scenario loads what-if playbooks from HCL files. A scenario names
// nodes that are already closed and an ordered list of steps; each step
// closes a batch of nodes and the simulator reports what that batch unblocks
// on top of everything closed so far.
//
//	scenario "sprint-12" {
//	  description = "Clear the platform blockers"
//	  closed      = ["auth/login"]
//
//	  step "land-gateway" {
//	    close = ["infra/gateway"]
//	  }
//	}
package scenario

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// Scenario is one decoded scenario block.
type Scenario struct {
	Name        string
	Description string
	Closed      []string // node identifiers closed before the first step
	Steps       []Step
}

// Step closes one batch of nodes.
type Step struct {
	Name  string
	Close []string
}

var fileSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "scenario", LabelNames: []string{"name"}},
	},
}

var scenarioSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "description"},
		{Name: "closed"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "step", LabelNames: []string{"name"}},
	},
}

var stepSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "close", Required: true},
	},
}

// LoadFile parses every scenario block in an HCL file.
func LoadFile(path string) ([]Scenario, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse scenario file %s: %w", path, diags)
	}
	return decode(file)
}

// Parse parses scenario blocks from in-memory HCL source. filename is used
// for diagnostics only.
func Parse(src []byte, filename string) ([]Scenario, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse scenario source %s: %w", filename, diags)
	}
	return decode(file)
}

func decode(file *hcl.File) ([]Scenario, error) {
	content, diags := file.Body.Content(fileSchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid scenario file: %w", diags)
	}

	var scenarios []Scenario
	for _, block := range content.Blocks {
		sc, err := decodeScenario(block)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, sc)
	}
	if len(scenarios) == 0 {
		return nil, fmt.Errorf("no scenario blocks found")
	}
	return scenarios, nil
}

func decodeScenario(block *hcl.Block) (Scenario, error) {
	sc := Scenario{Name: block.Labels[0]}

	content, diags := block.Body.Content(scenarioSchema)
	if diags.HasErrors() {
		return sc, fmt.Errorf("scenario %q: %w", sc.Name, diags)
	}

	if attr, ok := content.Attributes["description"]; ok {
		if err := decodeString(attr, &sc.Description); err != nil {
			return sc, fmt.Errorf("scenario %q: %w", sc.Name, err)
		}
	}
	if attr, ok := content.Attributes["closed"]; ok {
		ids, err := decodeStringList(attr)
		if err != nil {
			return sc, fmt.Errorf("scenario %q: %w", sc.Name, err)
		}
		sc.Closed = ids
	}

	for _, stepBlock := range content.Blocks {
		step, err := decodeStep(stepBlock)
		if err != nil {
			return sc, fmt.Errorf("scenario %q: %w", sc.Name, err)
		}
		sc.Steps = append(sc.Steps, step)
	}
	if len(sc.Steps) == 0 {
		return sc, fmt.Errorf("scenario %q has no steps", sc.Name)
	}
	return sc, nil
}

func decodeStep(block *hcl.Block) (Step, error) {
	step := Step{Name: block.Labels[0]}

	content, diags := block.Body.Content(stepSchema)
	if diags.HasErrors() {
		return step, fmt.Errorf("step %q: %w", step.Name, diags)
	}

	ids, err := decodeStringList(content.Attributes["close"])
	if err != nil {
		return step, fmt.Errorf("step %q: %w", step.Name, err)
	}
	if len(ids) == 0 {
		return step, fmt.Errorf("step %q closes nothing", step.Name)
	}
	step.Close = ids
	return step, nil
}

func decodeString(attr *hcl.Attribute, out *string) error {
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return fmt.Errorf("attribute %s: %w", attr.Name, diags)
	}
	if val.Type() != cty.String {
		return fmt.Errorf("attribute %s: expected string, got %s", attr.Name, val.Type().FriendlyName())
	}
	*out = val.AsString()
	return nil
}

func decodeStringList(attr *hcl.Attribute) ([]string, error) {
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("attribute %s: %w", attr.Name, diags)
	}
	if !val.CanIterateElements() {
		return nil, fmt.Errorf("attribute %s: expected list of strings, got %s", attr.Name, val.Type().FriendlyName())
	}

	var out []string
	for it := val.ElementIterator(); it.Next(); {
		_, elem := it.Element()
		if elem.Type() != cty.String {
			return nil, fmt.Errorf("attribute %s: expected string element, got %s", attr.Name, elem.Type().FriendlyName())
		}
		out = append(out, elem.AsString())
	}
	return out, nil
}
