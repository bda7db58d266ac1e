// Package repository defines the score ledger interface and its storage
// backends.
package repository

import (
	"context"
	"time"
)

// Record is one leaderboard row, keyed by (participant, category).
type Record struct {
	Participant string    `json:"username"`
	Category    string    `json:"category"`
	Score       float64   `json:"score"`
	LastSeen    time.Time `json:"last_seen"`
}

// Store provides read/write access to the score ledger.
type Store interface {
	// Submit upserts the record for (participant, category). An existing
	// score is only ever raised; LastSeen refreshes on every submission.
	Submit(ctx context.Context, participant, category string, score float64) error

	// Top returns up to n records ordered by score descending, purging
	// records past the retention window first. An empty category means no
	// filter.
	Top(ctx context.Context, category string, n int) ([]Record, error)

	// Clear removes every record for a participant and returns how many
	// were dropped.
	Clear(ctx context.Context, participant string) int

	// Count returns the number of records currently held.
	Count(ctx context.Context) int
}

// Persister stores the full record set as an opaque blob. Load failures must
// degrade to an empty ledger, never a crash.
type Persister interface {
	Persist(ctx context.Context, records []Record) error
	Load(ctx context.Context) ([]Record, error)
}
