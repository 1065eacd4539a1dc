package services

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// collectParallel runs fn for every key with at most limit concurrent
// goroutines and collects the results into a map. A key whose fn fails gets
// fallback instead: one bad key never aborts the siblings. The call blocks
// until every worker has finished.
func collectParallel[K comparable, V any](
	ctx context.Context,
	keys []K,
	limit int,
	fallback V,
	fn func(ctx context.Context, key K) (V, error),
) map[K]V {
	out := make(map[K]V, len(keys))
	if len(keys) == 0 {
		return out
	}

	if limit < 1 {
		limit = 1
	}
	if limit > len(keys) {
		limit = len(keys)
	}

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	g.SetLimit(limit)

	for _, key := range keys {
		key := key
		g.Go(func() error {
			value, err := fn(ctx, key)
			if err != nil {
				value = fallback
			}

			mu.Lock()
			out[key] = value
			mu.Unlock()

			return nil
		})
	}

	// Workers never return errors; Wait is only the join point.
	_ = g.Wait()

	return out
}
