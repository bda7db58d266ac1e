// Package provider fetches raw reviews and title metadata from the upstream
// review source. Every call is bounded by a timeout; failures are per-title
// and callers degrade to skipping or sentinel values.
package provider

import (
	"context"

	"github.com/selimbas/revquiz/internal/domain/review"
)

// Details is per-title store metadata used as quiz hints. Zero values mean
// the field was absent upstream; display code substitutes its sentinel.
type Details struct {
	Developer       string
	ReleaseDate     string
	Recommendations int
}

// Client is the upstream review/content provider.
type Client interface {
	// Reviews returns a single bounded page of raw reviews for a title. A
	// nil, nil return means the title simply has no reviews.
	Reviews(ctx context.Context, appID int) ([]review.Raw, error)

	// Details returns store metadata for a title. Missing fields stay zero.
	Details(ctx context.Context, appID int) (Details, error)
}
