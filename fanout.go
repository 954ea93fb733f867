package recursor

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/input-output-hk/catalyst-forge-libs/recursor/walktypes"
)

// Fanout walks w with up to parallelism branches at once. The prefixes
// accepted at depth 1 are listed by the calling goroutine and each branch is
// then walked by its own goroutine. fn is called concurrently for objects of
// different branches; objects of one branch arrive in walk order.
//
// The first error, from listing or from fn, cancels the remaining branches
// and is returned. A walker with no filters is walked by the calling
// goroutine alone.
func Fanout(
	ctx context.Context,
	w *Walker,
	parallelism int,
	fn func(ctx context.Context, obj walktypes.Object) error,
) error {
	if parallelism <= 0 {
		parallelism = 5 // Default parallelism
	}

	if len(w.filters) == 0 {
		for obj, err := range w.Objects(ctx) {
			if err != nil {
				return err
			}
			if err := fn(ctx, obj); err != nil {
				return err
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)

	branches := newIterator(gctx, w, w.start, 0, 1)
	for branches.Next() {
		branch := branches.Prefix()

		if w.logger != nil {
			w.logger.DebugContext(gctx, "walking branch", "prefix", branch)
		}

		g.Go(func() error {
			it := newIterator(gctx, w, branch, 1, emitObjects)
			for it.Next() {
				if err := fn(gctx, it.Object()); err != nil {
					return err
				}
			}
			return it.Err()
		})
	}

	if err := branches.Err(); err != nil {
		g.Go(func() error { return err })
	}

	return g.Wait()
}
