// Package fetch runs title resolution against the upstream provider in
// bounded batches.
package fetch

import (
	"context"
	"sync"
	"time"

	"github.com/selimbas/revquiz/internal/catalog"
	"github.com/selimbas/revquiz/internal/domain/types"
	"github.com/selimbas/revquiz/pkg/logger"
)

// Default pool configuration constants.
const (
	defaultBatchSize = 5
	defaultPause     = 500 * time.Millisecond
)

// Resolver turns one catalog entry into a playable quiz entry. The second
// return value reports whether the entry survived resolution.
type Resolver interface {
	Resolve(ctx context.Context, entry catalog.Entry) (types.QuizEntry, bool)
}

// Pool fans resolution out over fixed-size batches with a pause between
// them, keeping pressure on the upstream bounded.
type Pool struct {
	resolver  Resolver
	batchSize int
	pause     time.Duration
	logger    logger.Logger
}

// NewPool creates a batch pool around a resolver.
func NewPool(resolver Resolver, opts ...Option) *Pool {
	p := &Pool{
		resolver:  resolver,
		batchSize: defaultBatchSize,
		pause:     defaultPause,
		logger:    logger.Get().Named("fetch-pool"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run resolves all entries and returns the survivors in catalog order.
// Entries within a batch run concurrently; batches run one after another.
func (p *Pool) Run(ctx context.Context, entries []catalog.Entry) []types.QuizEntry {
	resolved := make([]*types.QuizEntry, len(entries))

	for start := 0; start < len(entries); start += p.batchSize {
		if ctx.Err() != nil {
			p.logger.Warn(ctx, "resolution canceled mid-cycle",
				logger.Int("completed", start),
				logger.Int("total", len(entries)),
			)
			break
		}

		end := start + p.batchSize
		if end > len(entries) {
			end = len(entries)
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				if q, ok := p.resolver.Resolve(ctx, entries[idx]); ok {
					resolved[idx] = &q
				}
			}(i)
		}
		wg.Wait()

		if end < len(entries) && p.pause > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(p.pause):
			}
		}
	}

	out := make([]types.QuizEntry, 0, len(entries))
	for _, q := range resolved {
		if q != nil {
			out = append(out, *q)
		}
	}
	return out
}
