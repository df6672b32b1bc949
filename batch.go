package catalog

import (
	"context"

	"github.com/pitabwire/catalog/batchpkg"
)

const defaultBatchCapacity = 32

// TranslateBatch resolves many independent translate/translate-plural
// requests concurrently across a bounded worker pool (spec §9, batch
// translate worker pool), returning results in input order. A fresh pool is
// spun up per call sized to len(requests) (capped at defaultBatchCapacity)
// since the resolver is stateless and cheap to parallelize; callers doing
// this repeatedly at scale should build their own batchpkg.Pool and drive
// it directly instead.
func (e *Engine) TranslateBatch(ctx context.Context, requests []batchpkg.Request) []batchpkg.Result {
	if len(requests) == 0 {
		return nil
	}

	capacity := len(requests)
	if capacity > defaultBatchCapacity {
		capacity = defaultBatchCapacity
	}

	pool, err := batchpkg.NewPool(capacity)
	if err != nil {
		e.Log(ctx).WithError(err).Warn("batch translate pool creation failed")
		results := make([]batchpkg.Result, len(requests))
		for i, req := range requests {
			if req.Count < 0 {
				results[i] = batchpkg.Result{Index: i, Text: e.Translate(req.Token, req.Args...)}
			} else {
				results[i] = batchpkg.Result{Index: i, Text: e.TranslatePlural(req.Token, req.Count, req.Args...)}
			}
		}
		return results
	}
	defer pool.Release()

	return pool.TranslateBatch(ctx, e, requests)
}
