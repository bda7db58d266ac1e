package fetch

import (
	"time"

	"github.com/selimbas/revquiz/pkg/logger"
)

// Option applies a configuration option to the Pool.
type Option func(*Pool)

// WithBatchSize sets how many entries resolve concurrently per batch.
func WithBatchSize(n int) Option {
	return func(p *Pool) {
		if n > 0 {
			p.batchSize = n
		}
	}
}

// WithPause sets the delay between consecutive batches.
func WithPause(d time.Duration) Option {
	return func(p *Pool) {
		if d >= 0 {
			p.pause = d
		}
	}
}

// WithLogger sets a custom logger for the pool.
func WithLogger(l logger.Logger) Option {
	return func(p *Pool) {
		if l != nil {
			p.logger = l
		}
	}
}
