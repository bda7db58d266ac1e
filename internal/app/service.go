// Package app wires the quiz pipeline together: catalog sampling, background
// cache refresh, round serving, and the score ledger behind one service.
package app

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/selimbas/revquiz/internal/adapters/fetch"
	"github.com/selimbas/revquiz/internal/adapters/provider"
	"github.com/selimbas/revquiz/internal/adapters/repository"
	"github.com/selimbas/revquiz/internal/catalog"
	"github.com/selimbas/revquiz/internal/domain/review"
	"github.com/selimbas/revquiz/internal/domain/types"
	"github.com/selimbas/revquiz/pkg/logger"
	"github.com/selimbas/revquiz/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultRefreshInterval = 6 * time.Hour
	defaultBatchSize       = 5
	defaultBatchPause      = 500 * time.Millisecond
	defaultTitlesPerRound  = 10
	defaultReviewsPerRound = 10
	defaultLeaderboardSize = 10
	defaultImageURL        = "https://shared.akamai.steamstatic.com/store_item_assets/steam/apps/%d/header.jpg"
	defaultUnknownLabel    = "Bilinmiyor"
)

// snapshot is one immutable refresh result. Readers borrow it through an
// atomic pointer and never mutate it.
type snapshot struct {
	// entries maps title id to its fully resolved quiz entry.
	entries map[int]types.QuizEntry
	// order keeps the catalog rows that resolved, preserving tags for
	// category sampling.
	order []catalog.Entry
	at    time.Time
}

// Service implements the API dependencies for the quiz system.
type Service struct {
	mu sync.Mutex

	// Core components
	catalog  []catalog.Entry
	provider provider.Client
	builder  *review.Builder
	sampler  *catalog.Sampler
	store    repository.Store
	cache    atomic.Pointer[snapshot]

	// Configuration
	refreshInterval time.Duration
	batchSize       int
	batchPause      time.Duration
	titlesPerRound  int
	reviewsPerRound int
	leaderboardSize int
	imageURL        string
	unknownLabel    string

	// State
	started bool
	stopCh  chan struct{}

	// sampleMu serializes the sampler and rng; neither shuffle source is safe
	// for concurrent use.
	sampleMu sync.Mutex
	rng      *rand.Rand

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithCatalog sets the title catalog the refresh cycle resolves.
func WithCatalog(entries []catalog.Entry) Option {
	return func(s *Service) {
		s.catalog = entries
	}
}

// WithProvider sets the upstream review provider.
func WithProvider(c provider.Client) Option {
	return func(s *Service) {
		if c != nil {
			s.provider = c
		}
	}
}

// WithBuilder sets the round builder used during resolution.
func WithBuilder(b *review.Builder) Option {
	return func(s *Service) {
		if b != nil {
			s.builder = b
		}
	}
}

// WithSampler sets the catalog sampler used on the read path.
func WithSampler(sampler *catalog.Sampler) Option {
	return func(s *Service) {
		if sampler != nil {
			s.sampler = sampler
		}
	}
}

// WithStore sets the score ledger backend.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithRefreshInterval sets how often the cache refreshes.
func WithRefreshInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.refreshInterval = d
		}
	}
}

// WithBatch sets the refresh fan-out size and the pause between batches.
func WithBatch(size int, pause time.Duration) Option {
	return func(s *Service) {
		if size > 0 {
			s.batchSize = size
		}
		if pause >= 0 {
			s.batchPause = pause
		}
	}
}

// WithTitlesPerRound caps how many titles one round carries.
func WithTitlesPerRound(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.titlesPerRound = n
		}
	}
}

// WithReviewsPerRound caps how many clues each served title carries.
func WithReviewsPerRound(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.reviewsPerRound = n
		}
	}
}

// WithLeaderboardSize sets how many rows the leaderboard returns.
func WithLeaderboardSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.leaderboardSize = n
		}
	}
}

// WithImageURLTemplate sets the header image URL template. It must contain a
// single %d verb for the title id.
func WithImageURLTemplate(tpl string) Option {
	return func(s *Service) {
		if tpl != "" {
			s.imageURL = tpl
		}
	}
}

// WithUnknownLabel sets the sentinel shown for missing metadata.
func WithUnknownLabel(label string) Option {
	return func(s *Service) {
		if label != "" {
			s.unknownLabel = label
		}
	}
}

// WithRand sets the read-path shuffle source, letting tests pin the
// permutation.
func WithRand(rng *rand.Rand) Option {
	return func(s *Service) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		builder:         review.NewBuilder(),
		sampler:         catalog.NewSampler(),
		refreshInterval: defaultRefreshInterval,
		batchSize:       defaultBatchSize,
		batchPause:      defaultBatchPause,
		titlesPerRound:  defaultTitlesPerRound,
		reviewsPerRound: defaultReviewsPerRound,
		leaderboardSize: defaultLeaderboardSize,
		imageURL:        defaultImageURL,
		unknownLabel:    defaultUnknownLabel,
		rng:             rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // clue order is not security sensitive
		stopCh:          make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	return s
}

// Start kicks off the background refresh loop: one cycle immediately, then
// one per interval until the context ends or Stop is called.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	s.started = true

	s.logger.Info(ctx, "starting quiz service",
		logger.Int("titles", len(s.catalog)),
		logger.Duration("refreshInterval", s.refreshInterval),
	)

	go s.refreshLoop(ctx)
	return nil
}

// Stop ends the refresh loop. In-flight refreshes finish on their own.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	close(s.stopCh)
	s.started = false
	s.logger.Info(context.Background(), "quiz service stopped")
}

func (s *Service) refreshLoop(ctx context.Context) {
	s.Refresh(ctx)

	ticker := time.NewTicker(s.refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.Refresh(ctx)
		}
	}
}

// Refresh resolves the whole catalog and swaps in a fresh snapshot. An empty
// result never replaces a non-empty snapshot; stale data beats no data.
func (s *Service) Refresh(ctx context.Context) {
	start := time.Now()

	resolver := &titleResolver{
		provider:     s.provider,
		builder:      s.builder,
		imageURL:     s.imageURL,
		unknownLabel: s.unknownLabel,
		logger:       s.logger.Named("resolver"),
	}
	pool := fetch.NewPool(resolver,
		fetch.WithBatchSize(s.batchSize),
		fetch.WithPause(s.batchPause),
	)
	resolved := pool.Run(ctx, s.catalog)

	elapsed := time.Since(start)
	metrics.RecordRefreshCycle(elapsed.Seconds())

	if len(resolved) == 0 {
		if prev := s.cache.Load(); prev != nil && len(prev.entries) > 0 {
			metrics.RecordRefreshDiscarded()
			s.logger.Warn(ctx, "refresh produced nothing, keeping previous snapshot",
				logger.Int("previous", len(prev.entries)),
				logger.Duration("elapsed", elapsed),
			)
			return
		}
	}

	snap := &snapshot{
		entries: make(map[int]types.QuizEntry, len(resolved)),
		order:   make([]catalog.Entry, 0, len(resolved)),
		at:      time.Now(),
	}
	byID := make(map[int]catalog.Entry, len(s.catalog))
	for _, e := range s.catalog {
		byID[e.ID] = e
	}
	for _, q := range resolved {
		snap.entries[q.ID] = q
		snap.order = append(snap.order, byID[q.ID])
	}
	s.cache.Store(snap)

	metrics.UpdateSnapshotSize(len(snap.entries))
	metrics.UpdateSnapshotAge(0)
	s.logger.Info(ctx, "snapshot refreshed",
		logger.Int("resolved", len(snap.entries)),
		logger.Int("catalog", len(s.catalog)),
		logger.Duration("elapsed", elapsed),
	)
}

// Round samples up to the round size from the current snapshot, reshuffling
// and truncating each title's clue pool. A cold cache returns ErrNotReady;
// reads never touch the upstream provider.
func (s *Service) Round(ctx context.Context, category string) ([]types.QuizEntry, error) {
	snap := s.cache.Load()
	if snap == nil || len(snap.entries) == 0 {
		metrics.RecordColdCacheRead()
		return nil, ErrNotReady
	}
	metrics.UpdateSnapshotAge(time.Since(snap.at).Seconds())

	s.sampleMu.Lock()
	pool := s.sampler.Pool(snap.order, category)

	round := make([]types.QuizEntry, 0, s.titlesPerRound)
	for _, e := range pool {
		if len(round) == s.titlesPerRound {
			break
		}
		q, ok := snap.entries[e.ID]
		if !ok {
			continue
		}

		reviews := append([]types.Review(nil), q.Reviews...)
		s.rng.Shuffle(len(reviews), func(i, j int) {
			reviews[i], reviews[j] = reviews[j], reviews[i]
		})
		if len(reviews) > s.reviewsPerRound {
			reviews = reviews[:s.reviewsPerRound]
		}
		q.Reviews = reviews
		round = append(round, q)
	}
	s.sampleMu.Unlock()

	metrics.RecordRoundServed()
	s.logger.Debug(ctx, "round served",
		logger.String("category", category),
		logger.Int("titles", len(round)),
	)
	return round, nil
}

// Titles returns every catalog title name, sorted for stable autocomplete.
func (s *Service) Titles(ctx context.Context) []string {
	names := make([]string, 0, len(s.catalog))
	for _, e := range s.catalog {
		names = append(names, e.Name)
	}
	sort.Strings(names)
	return names
}

// SubmitScore records a score for a participant in a category.
func (s *Service) SubmitScore(ctx context.Context, participant, category string, score float64) error {
	return s.store.Submit(ctx, participant, category, score)
}

// Leaderboard returns the top rows for a category, highest score first.
func (s *Service) Leaderboard(ctx context.Context, category string) ([]types.ScoreEntry, error) {
	records, err := s.store.Top(ctx, category, s.leaderboardSize)
	if err != nil {
		return nil, err
	}

	out := make([]types.ScoreEntry, len(records))
	for i, r := range records {
		out[i] = types.ScoreEntry{
			Participant: r.Participant,
			Category:    r.Category,
			Score:       r.Score,
		}
	}
	return out, nil
}

// Logout clears every ledger record for a participant and reports how many
// were removed.
func (s *Service) Logout(ctx context.Context, participant string) int {
	return s.store.Clear(ctx, participant)
}

// Ready reports whether a snapshot is available to serve from.
func (s *Service) Ready() bool {
	snap := s.cache.Load()
	return snap != nil && len(snap.entries) > 0
}
