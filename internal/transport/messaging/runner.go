package messaging

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Worker is a long-running loop that returns when ctx is cancelled.
type Worker interface {
	Run(ctx context.Context) error
}

// RunAll runs workers concurrently. The first worker error cancels the
// others and is returned once all of them stopped.
func RunAll(ctx context.Context, workers ...Worker) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, w := range workers {
		g.Go(func() error {
			return w.Run(ctx)
		})
	}
	return g.Wait()
}
