package worker

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/dossier-cli/dossier/internal/services"
)

// Result pairs an input with its service output or error.
type Result struct {
	Input  string
	Output services.Result
	Err    error
}

// Run calls svc.Run for every input with at most concurrency calls in flight.
// Results are returned in input order. A failing input never stops the others;
// inputs not yet started when ctx is done carry ctx.Err().
func Run(ctx context.Context, svc services.Service, inputs []string, concurrency int) []Result {
	results := make([]Result, len(inputs))
	if len(inputs) == 0 {
		return results
	}

	var g errgroup.Group
	g.SetLimit(max(concurrency, 1))

	for i, input := range inputs {
		g.Go(func() error {
			results[i].Input = input
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Output, results[i].Err = svc.Run(ctx, input)
			return nil
		})
	}
	_ = g.Wait()
	return results
}
