package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/selimbas/revquiz/internal/adapters/provider"
	"github.com/selimbas/revquiz/internal/catalog"
	"github.com/selimbas/revquiz/internal/domain/review"
	"github.com/selimbas/revquiz/internal/domain/types"
	"github.com/selimbas/revquiz/pkg/logger"
	"github.com/selimbas/revquiz/pkg/metrics"
)

// Skip reasons reported when a title drops out of a refresh cycle.
const (
	skipFetchFailed = "fetch_failed"
	skipNoReviews   = "no_reviews"
	skipNotViable   = "not_viable"
)

// titleResolver turns one catalog entry into a playable quiz entry. Review
// and metadata fetches fail independently: a broken review fetch skips the
// title, broken metadata degrades to sentinel values.
type titleResolver struct {
	provider     provider.Client
	builder      *review.Builder
	imageURL     string
	unknownLabel string
	logger       logger.Logger
}

// Resolve implements fetch.Resolver.
func (r *titleResolver) Resolve(ctx context.Context, entry catalog.Entry) (types.QuizEntry, bool) {
	raws, err := r.provider.Reviews(ctx, entry.ID)
	if err != nil {
		metrics.RecordTitleSkipped(skipFetchFailed)
		r.logger.Warn(ctx, "review fetch failed, skipping title",
			logger.Int("id", entry.ID),
			logger.String("name", entry.Name),
			logger.Error(err),
		)
		return types.QuizEntry{}, false
	}
	if len(raws) == 0 {
		metrics.RecordTitleSkipped(skipNoReviews)
		return types.QuizEntry{}, false
	}

	clues, stats, ok := r.builder.Build(raws, entry.Name)
	r.recordBuildStats(stats)
	if !ok {
		metrics.RecordTitleSkipped(skipNotViable)
		r.logger.Debug(ctx, "too few viable reviews, skipping title",
			logger.Int("id", entry.ID),
			logger.String("name", entry.Name),
			logger.Int("raw", len(raws)),
		)
		return types.QuizEntry{}, false
	}

	q := types.QuizEntry{
		ID:       entry.ID,
		Name:     entry.Name,
		Category: strings.Join(entry.Tags, ", "),
		ImageURL: fmt.Sprintf(r.imageURL, entry.ID),
		Reviews:  make([]types.Review, 0, len(clues)),
	}
	for _, c := range clues {
		q.Reviews = append(q.Reviews, types.Review{
			Text:          c.Text,
			PlaytimeHours: c.PlaytimeMinutes / 60,
		})
	}
	r.applyDetails(ctx, entry.ID, &q)

	metrics.RecordTitleResolved()
	return q, true
}

// applyDetails fills store metadata, substituting the unknown label when the
// lookup fails or a field is absent upstream.
func (r *titleResolver) applyDetails(ctx context.Context, id int, q *types.QuizEntry) {
	d, err := r.provider.Details(ctx, id)
	if err != nil {
		r.logger.Debug(ctx, "details fetch failed, using sentinels",
			logger.Int("id", id), logger.Error(err))
	}

	q.Developer = d.Developer
	if q.Developer == "" {
		q.Developer = r.unknownLabel
	}
	q.ReleaseDate = d.ReleaseDate
	if q.ReleaseDate == "" {
		q.ReleaseDate = r.unknownLabel
	}
	if d.Recommendations > 0 {
		q.Recommendations = strconv.Itoa(d.Recommendations)
	} else {
		q.Recommendations = r.unknownLabel
	}
}

func (r *titleResolver) recordBuildStats(stats review.Stats) {
	for i := 0; i < stats.Admitted; i++ {
		metrics.RecordReviewAdmitted()
	}
	for reason, n := range stats.Rejected {
		for i := 0; i < n; i++ {
			metrics.RecordReviewRejected(reason)
		}
	}
}
