// Package parmap maps a function over a slice with a bounded number of
// goroutines, keeping the results in input order.
package parmap

import (
	"context"
	"runtime"

	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/sync/errgroup"
)

// tracer traces with key 'trakcmp'
func tracer() tracing.Trace {
	return tracing.Select("trakcmp")
}

// Workers returns the default pool size: one less than the number of CPUs,
// but at least 1.
func Workers() int {
	return clamp(runtime.NumCPU() - 1)
}

func clamp(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// Map calls fn for every element of in, running at most workers calls
// concurrently. Result i always belongs to in[i], regardless of completion
// order. A workers value < 1 selects Workers().
//
// Map blocks until all started calls have returned. The first error cancels
// the context passed to the remaining calls and is returned; results are nil
// in that case.
func Map[In, Out any](ctx context.Context, workers int, in []In, fn func(context.Context, In) (Out, error)) ([]Out, error) {
	if workers < 1 {
		workers = Workers()
	}
	if workers > len(in) {
		workers = clamp(len(in))
	}
	tracer().Debugf("mapping %d units on %d workers", len(in), workers)
	out := make([]Out, len(in))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range in {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := fn(gctx, in[i])
			if err != nil {
				return err
			}
			out[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
