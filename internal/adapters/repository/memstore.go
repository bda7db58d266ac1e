package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/selimbas/revquiz/pkg/logger"
	"github.com/selimbas/revquiz/pkg/metrics"
)

// Default ledger configuration constants.
const (
	defaultRetention = 30 * 24 * time.Hour
)

type key struct {
	participant string
	category    string
}

// MemStore implements Store with an in-memory map guarded by a mutex. The
// merge step always completes before any persistence I/O, and persistence
// itself runs under the same lock, so near-simultaneous submissions cannot
// lose an update and file snapshots land on disk in mutation order.
type MemStore struct {
	mu        sync.Mutex
	records   map[key]Record
	retention time.Duration
	now       func() time.Time
	persister Persister
	logger    logger.Logger
}

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithRetention sets how long an untouched record survives.
func WithRetention(d time.Duration) Option {
	return func(s *MemStore) {
		if d > 0 {
			s.retention = d
		}
	}
}

// WithClock overrides the time source, letting tests age records.
func WithClock(now func() time.Time) Option {
	return func(s *MemStore) {
		if now != nil {
			s.now = now
		}
	}
}

// WithPersister attaches durable storage. The ledger is written through on
// every mutation and loaded once at construction.
func WithPersister(p Persister) Option {
	return func(s *MemStore) {
		s.persister = p
	}
}

// WithLogger sets a custom logger for the store.
func WithLogger(l logger.Logger) Option {
	return func(s *MemStore) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewMemStore creates a ledger store, loading any persisted records.
func NewMemStore(ctx context.Context, opts ...Option) *MemStore {
	s := &MemStore{
		records:   make(map[key]Record),
		retention: defaultRetention,
		now:       time.Now,
		logger:    logger.Get().Named("ledger"),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.persister != nil {
		loaded, err := s.persister.Load(ctx)
		if err != nil {
			// A broken score file must not take the service down.
			s.logger.Warn(ctx, "ledger load failed, starting empty", logger.Error(err))
		}
		for _, r := range loaded {
			s.records[key{r.Participant, r.Category}] = r
		}
	}

	metrics.UpdateLedgerSize(len(s.records))
	return s
}

// Submit upserts the record for (participant, category), keeping the max
// score and refreshing LastSeen.
func (s *MemStore) Submit(ctx context.Context, participant, category string, score float64) error {
	if participant == "" {
		return ErrMissingParticipant
	}

	s.mu.Lock()
	k := key{participant, category}
	rec, exists := s.records[k]
	if !exists {
		rec = Record{Participant: participant, Category: category, Score: score}
	} else if score > rec.Score {
		rec.Score = score
	}
	rec.LastSeen = s.now()
	s.records[k] = rec
	size := len(s.records)
	s.persist(ctx, s.snapshotLocked())
	s.mu.Unlock()

	metrics.UpdateLedgerSize(size)
	return nil
}

// Top returns up to n records by score descending after purging expired ones.
func (s *MemStore) Top(ctx context.Context, category string, n int) ([]Record, error) {
	s.mu.Lock()
	expired := s.purgeLocked()

	out := make([]Record, 0, len(s.records))
	for _, r := range s.records {
		if category == "" || r.Category == category {
			out = append(out, r)
		}
	}
	if expired > 0 {
		s.persist(ctx, s.snapshotLocked())
	}
	size := len(s.records)
	s.mu.Unlock()

	metrics.UpdateLedgerSize(size)
	if expired > 0 {
		s.logger.Debug(ctx, "expired ledger records purged", logger.Int("count", expired))
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out, nil
}

// Clear removes every record for a participant.
func (s *MemStore) Clear(ctx context.Context, participant string) int {
	s.mu.Lock()
	dropped := 0
	for k := range s.records {
		if k.participant == participant {
			delete(s.records, k)
			dropped++
		}
	}
	if dropped > 0 {
		s.persist(ctx, s.snapshotLocked())
	}
	size := len(s.records)
	s.mu.Unlock()

	metrics.UpdateLedgerSize(size)
	return dropped
}

// Count returns the number of records currently held.
func (s *MemStore) Count(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// purgeLocked drops records past the retention window. Caller holds the lock.
func (s *MemStore) purgeLocked() int {
	cutoff := s.now().Add(-s.retention)
	expired := 0
	for k, r := range s.records {
		if r.LastSeen.Before(cutoff) {
			delete(s.records, k)
			expired++
			metrics.RecordLedgerEviction()
		}
	}
	return expired
}

// snapshotLocked copies the record set for persistence. Caller holds the lock.
func (s *MemStore) snapshotLocked() []Record {
	out := make([]Record, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r)
	}
	return out
}

// persist writes one snapshot through the persister. Caller holds the lock,
// which keeps durable snapshots ordered the same way as mutations.
func (s *MemStore) persist(ctx context.Context, snapshot []Record) {
	if s.persister == nil {
		return
	}
	if err := s.persister.Persist(ctx, snapshot); err != nil {
		s.logger.Error(ctx, "ledger persist failed", logger.Error(err))
	}
}
