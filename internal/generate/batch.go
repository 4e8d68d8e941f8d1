package generate

import (
	"context"
	"fmt"
	"math/rand/v2"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// GenerateN produces n sentences on up to workers goroutines. Sentence i
// draws from its own PCG(seed, i) stream, so the output only depends on the
// seed and not on scheduling.
func (g *Generator) GenerateN(ctx context.Context, n int, seed uint64, workers int) ([]Result, error) {
	if n < 0 {
		return nil, fmt.Errorf("sentence count must not be negative, got %d", n)
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	results := make([]Result, n)

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i := 0; i < n; i++ {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rng := rand.New(rand.NewPCG(seed, uint64(i)))
			results[i] = g.Generate(rng)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
