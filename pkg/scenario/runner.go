package scenario

import (
	"fmt"

	"github.com/beadviewer/bvgraph/pkg/graph"
	"github.com/beadviewer/bvgraph/pkg/whatif"
)

// StepResult pairs a step with its simulation outcome. Cascade lists the
// identifiers of everything the step transitively unblocked.
type StepResult struct {
	Step    string   `json:"step"`
	Closed  []string `json:"closed"`
	Direct  int      `json:"direct_unblocks"`
	Total   int      `json:"transitive_unblocks"`
	Gain    int      `json:"parallel_gain"`
	Cascade []string `json:"cascade_ids"`
}

// Run plays a scenario against a graph. Steps apply in order and each step
// sees everything earlier steps closed. Unknown node identifiers fail the
// run rather than being silently skipped.
func Run(g *graph.DiGraph, sc Scenario) ([]StepResult, error) {
	closed := make([]bool, g.NodeCount())
	for _, id := range sc.Closed {
		idx, ok := g.NodeIndex(id)
		if !ok {
			return nil, fmt.Errorf("scenario %q: unknown node %q in closed set", sc.Name, id)
		}
		closed[idx] = true
	}

	results := make([]StepResult, 0, len(sc.Steps))
	for _, step := range sc.Steps {
		batch := make([]int, 0, len(step.Close))
		for _, id := range step.Close {
			idx, ok := g.NodeIndex(id)
			if !ok {
				return nil, fmt.Errorf("scenario %q step %q: unknown node %q", sc.Name, step.Name, id)
			}
			batch = append(batch, idx)
		}

		res := whatif.CloseBatch(g, batch, closed)

		cascade := make([]string, len(res.CascadeIDs))
		for i, v := range res.CascadeIDs {
			cascade[i] = g.NodeID(v)
		}
		results = append(results, StepResult{
			Step:    step.Name,
			Closed:  append([]string(nil), step.Close...),
			Direct:  res.DirectUnblocks,
			Total:   res.TransitiveUnblocks,
			Gain:    res.ParallelGain,
			Cascade: cascade,
		})

		for _, idx := range batch {
			closed[idx] = true
		}
	}
	return results, nil
}
