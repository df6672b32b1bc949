// Package batchpkg fans a slice of independent translate requests out
// across a bounded ants worker pool, adapted from the teacher's own
// worker-pool wrapper shape (single ants.Pool, Submit/Shutdown). Since the
// resolver holds no lock and performs no I/O, running many requests
// concurrently is safe; this package exists purely to amortize call
// overhead across goroutines for large batches.
package batchpkg

import (
	"context"
	"sync"

	"github.com/panjf2000/ants/v2"
)

// Translator is the subset of the engine's API a batch run needs. Declaring
// it locally (rather than importing the root package) avoids a cycle, since
// the root package (batch.go) already imports this package.
type Translator interface {
	Translate(token string, args ...string) string
	TranslatePlural(token string, count int, args ...string) string
}

// Request is one unit of batch work: either a plain translate (Count < 0)
// or a plural translate (Count >= 0).
type Request struct {
	Token string
	Args  []string
	Count int // -1 for a plain Translate call
}

// Result pairs a Request's input index with its resolved string, so callers
// can recover input order after concurrent execution.
type Result struct {
	Index int
	Text  string
}

// Pool wraps a bounded ants.Pool sized for batch translate workloads.
type Pool struct {
	pool *ants.Pool
}

// NewPool builds a Pool with the given worker capacity.
func NewPool(capacity int) (*Pool, error) {
	p, err := ants.NewPool(capacity, ants.WithNonblocking(false))
	if err != nil {
		return nil, err
	}
	return &Pool{pool: p}, nil
}

// Release frees the underlying pool's goroutines.
func (p *Pool) Release() {
	p.pool.Release()
}

// TranslateBatch resolves every request against t, preserving input order
// in the returned slice. It blocks until every request has completed or ctx
// is canceled; a canceled context leaves unresolved entries as their zero
// value.
func (p *Pool) TranslateBatch(ctx context.Context, t Translator, requests []Request) []Result {
	results := make([]Result, len(requests))
	var wg sync.WaitGroup

	for i, req := range requests {
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		idx, r := i, req
		err := p.pool.Submit(func() {
			defer wg.Done()
			var text string
			if r.Count < 0 {
				text = t.Translate(r.Token, r.Args...)
			} else {
				text = t.TranslatePlural(r.Token, r.Count, r.Args...)
			}
			results[idx] = Result{Index: idx, Text: text}
		})
		if err != nil {
			wg.Done()
		}
	}

	wg.Wait()
	return results
}
