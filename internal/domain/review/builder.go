package review

import (
	"math/rand"
	"sort"
	"time"

	"github.com/selimbas/revquiz/internal/domain/mask"
)

// Default builder configuration constants. The pool is deliberately larger
// than the ten clues one round displays, so repeat rounds for a title can
// draw different subsets.
const (
	defaultPoolSize         = 30
	defaultInformativeQuota = 8
	defaultMinViable        = 3
)

// Stats summarizes one build for observability.
type Stats struct {
	Admitted int
	Rejected map[string]int
	// Policy names the ruleset that produced the result, empty on rejection.
	Policy string
}

// Builder assembles the stored clue pool for one title.
type Builder struct {
	policies         []Policy
	poolSize         int
	informativeQuota int
	minViable        int
	rng              *rand.Rand
}

// Option applies a configuration option to the Builder.
type Option func(*Builder)

// WithPolicies sets the ordered admissibility rulesets. They are tried in
// sequence until the viable floor is met.
func WithPolicies(policies []Policy) Option {
	return func(b *Builder) {
		if len(policies) > 0 {
			b.policies = policies
		}
	}
}

// WithPoolSize caps how many reviews are retained per title. Keeping more
// than one round displays is what lets served rounds vary.
func WithPoolSize(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.poolSize = n
		}
	}
}

// WithInformativeQuota sets how many slots are reserved for informative
// reviews before punchy ones fill the rest.
func WithInformativeQuota(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.informativeQuota = n
		}
	}
}

// WithMinViable sets the floor below which a title is rejected outright.
func WithMinViable(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.minViable = n
		}
	}
}

// WithRand sets the shuffle source, letting tests pin the permutation.
func WithRand(rng *rand.Rand) Option {
	return func(b *Builder) {
		if rng != nil {
			b.rng = rng
		}
	}
}

// NewBuilder creates a Builder with default policies and sizing.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		policies:         DefaultPolicies(),
		poolSize:         defaultPoolSize,
		informativeQuota: defaultInformativeQuota,
		minViable:        defaultMinViable,
		rng:              rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // shuffle order is not security sensitive
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build masks and classifies raws, then composes a shuffled clue pool of at
// most the pool size. It returns false when no policy yields the viable
// floor; the caller must skip the title.
//
// The output is capped at the distinct candidate count: slots that cannot be
// filled stay empty rather than repeating an already picked review.
func (b *Builder) Build(raws []Raw, titleName string) ([]Candidate, Stats, bool) {
	stats := Stats{Rejected: make(map[string]int)}

	var candidates []Candidate
	for _, policy := range b.policies {
		candidates = b.admit(raws, titleName, policy, &stats)
		if len(candidates) >= b.minViable {
			stats.Policy = policy.Name
			break
		}
	}
	if len(candidates) < b.minViable {
		return nil, stats, false
	}
	stats.Admitted = len(candidates)

	picked := b.compose(candidates)
	b.rng.Shuffle(len(picked), func(i, j int) {
		picked[i], picked[j] = picked[j], picked[i]
	})
	return picked, stats, true
}

// admit runs one policy over all raws, masking admitted texts and dropping
// exact duplicates of already admitted clues.
func (b *Builder) admit(raws []Raw, titleName string, policy Policy, stats *Stats) []Candidate {
	stats.Rejected = make(map[string]int)
	seen := make(map[string]struct{}, len(raws))

	var out []Candidate
	for _, raw := range raws {
		verdict := policy.Classify(raw.Text)
		if !verdict.Admissible {
			stats.Rejected[verdict.Reason]++
			continue
		}
		masked := mask.Mask(raw.Text, titleName)
		if _, dup := seen[masked]; dup {
			stats.Rejected[ReasonDuplicate]++
			continue
		}
		seen[masked] = struct{}{}
		out = append(out, Candidate{
			Text:            masked,
			PlaytimeMinutes: max(raw.PlaytimeMinutes, 0),
			HelpfulVotes:    raw.HelpfulVotes,
			Bucket:          verdict.Bucket,
		})
	}
	return out
}

// compose fills up to poolSize slots: informative first up to the quota,
// punchy for the remainder, filler as a last resort. Informative and punchy
// pools are ranked by helpfulness before selection; ties keep input order.
func (b *Builder) compose(candidates []Candidate) []Candidate {
	var informative, punchy, filler []Candidate
	for _, c := range candidates {
		switch c.Bucket {
		case BucketInformative:
			informative = append(informative, c)
		case BucketPunchy:
			punchy = append(punchy, c)
		default:
			filler = append(filler, c)
		}
	}

	byVotes := func(pool []Candidate) {
		sort.SliceStable(pool, func(i, j int) bool {
			return pool[i].HelpfulVotes > pool[j].HelpfulVotes
		})
	}
	byVotes(informative)
	byVotes(punchy)

	picked := make([]Candidate, 0, b.poolSize)
	take := func(pool []Candidate, offset, limit int) int {
		for offset < len(pool) && len(picked) < limit {
			picked = append(picked, pool[offset])
			offset++
		}
		return offset
	}

	quota := b.informativeQuota
	if quota > b.poolSize {
		quota = b.poolSize
	}
	used := take(informative, 0, quota)
	take(punchy, 0, b.poolSize)
	// Informative overflow and filler pad out the pool when the punchy pool
	// runs dry.
	take(informative, used, b.poolSize)
	take(filler, 0, b.poolSize)
	return picked
}
