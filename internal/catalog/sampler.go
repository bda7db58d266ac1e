package catalog

import (
	"math/rand"
	"time"
)

// Default sampling constants.
const (
	defaultLowWater = 10
	defaultTopUp    = 15
)

// Sampler builds shuffled candidate pools from the catalog. Small categories
// are topped up with titles from other categories so a round can still fill.
type Sampler struct {
	lowWater  int
	topUp     int
	allLabels map[string]struct{}
	rng       *rand.Rand
}

// SamplerOption applies a configuration option to the Sampler.
type SamplerOption func(*Sampler)

// WithLowWater sets the pool size below which top-up kicks in.
func WithLowWater(n int) SamplerOption {
	return func(s *Sampler) {
		if n > 0 {
			s.lowWater = n
		}
	}
}

// WithTopUp sets the pool size top-up aims for.
func WithTopUp(n int) SamplerOption {
	return func(s *Sampler) {
		if n > 0 {
			s.topUp = n
		}
	}
}

// WithAllLabels sets the filter values treated as "no filter".
func WithAllLabels(labels []string) SamplerOption {
	return func(s *Sampler) {
		s.allLabels = make(map[string]struct{}, len(labels))
		for _, l := range labels {
			s.allLabels[l] = struct{}{}
		}
	}
}

// WithRand sets the shuffle source, letting tests pin the permutation.
func WithRand(rng *rand.Rand) SamplerOption {
	return func(s *Sampler) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// NewSampler creates a Sampler with default pool sizing.
func NewSampler(opts ...SamplerOption) *Sampler {
	s := &Sampler{
		lowWater:  defaultLowWater,
		topUp:     defaultTopUp,
		allLabels: map[string]struct{}{"": {}, "all": {}, "Tümü": {}, "Karışık": {}},
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // traversal order is not security sensitive
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Pool returns the shuffled candidate pool for a category filter. Callers
// walk the pool in order until they have collected enough successes; they
// must tolerate exhausting it early.
func (s *Sampler) Pool(entries []Entry, category string) []Entry {
	pool := s.filter(entries, category)

	if len(pool) < s.lowWater {
		others := make([]Entry, 0, len(entries))
		for _, e := range entries {
			if !containsID(pool, e.ID) {
				others = append(others, e)
			}
		}
		s.shuffle(others)
		need := s.topUp - len(pool)
		if need > len(others) {
			need = len(others)
		}
		pool = append(pool, others[:need]...)
	}

	s.shuffle(pool)
	return pool
}

// Filter returns the pool before any top-up or shuffling.
func (s *Sampler) filter(entries []Entry, category string) []Entry {
	if _, all := s.allLabels[category]; all {
		return append([]Entry(nil), entries...)
	}
	var pool []Entry
	for _, e := range entries {
		if e.HasTag(category) {
			pool = append(pool, e)
		}
	}
	return pool
}

// Matching exposes the raw same-category pool, mostly for tests and stats.
func (s *Sampler) Matching(entries []Entry, category string) []Entry {
	return s.filter(entries, category)
}

func (s *Sampler) shuffle(pool []Entry) {
	s.rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
}

func containsID(pool []Entry, id int) bool {
	for _, e := range pool {
		if e.ID == id {
			return true
		}
	}
	return false
}
