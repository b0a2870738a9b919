package kernel

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// RunTiles is the host-side work-sharing pool: it divides [0, n) into
// tiles of tileSize rows and runs fn over each tile concurrently, bounded
// to workers in-flight at once. Every CPU operator kernel drives its tiles
// through this so selection, hash build, probe and group-by all share one
// fan-out/error-propagation path instead of each hand-rolling its own.
func RunTiles(ctx context.Context, n, tileSize, workers int, fn func(ctx context.Context, start, end int) error) error {
	if n <= 0 {
		return nil
	}
	if tileSize <= 0 {
		tileSize = n
	}

	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for start := 0; start < n; start += tileSize {
		start := start
		end := start + tileSize
		if end > n {
			end = n
		}
		g.Go(func() error { return fn(gctx, start, end) })
	}

	return g.Wait()
}
