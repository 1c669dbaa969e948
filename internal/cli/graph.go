package cli

import (
	"context"
	"fmt"

	"github.com/aretw0/algoscope"
	"github.com/aretw0/algoscope/internal/presentation/graph"
)

// GraphOptions configures the graph command.
type GraphOptions struct {
	Input     InputOptions
	Algorithm string // when set, overlay the state of step Step
	Step      int    // negative selects the last step
}

// RenderGraph returns the Mermaid diagram of the input graph, optionally overlaid with
// the state of one step of an algorithm.
func RenderGraph(ctx context.Context, lab *algoscope.Lab, opts GraphOptions) (string, error) {
	src, err := ResolveInput(ctx, opts.Input)
	if err != nil {
		return "", err
	}
	overlay := &graph.Overlay{Start: src.Input.Start, Goal: src.Input.Goal}

	if opts.Algorithm != "" {
		limit := 0
		if opts.Step >= 0 {
			limit = opts.Step + 1
		}
		steps, _, err := lab.Collect(ctx, opts.Algorithm, src.Input, limit)
		if err != nil {
			return "", err
		}
		if len(steps) == 0 {
			return "", fmt.Errorf("%s produced no steps", opts.Algorithm)
		}
		idx := len(steps) - 1
		if o := graph.FromStep(src.Input, steps[idx]); o != nil {
			overlay = o
		}
	}
	return graph.GenerateMermaid(src.Input.Graph, overlay), nil
}
