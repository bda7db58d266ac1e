package smoke

import (
	"context"
	"fmt"

	"github.com/selimbas/revquiz/pkg/logger"
)

// maxLeaderboardRows is the row cap the service advertises.
const maxLeaderboardRows = 10

// verifyLeaderboard checks the board the run produced: bounded size, scores
// descending, and no smoke player exceeding the maximum possible score.
func verifyLeaderboard(ctx context.Context, c *client, config *Config, stats *Stats) error {
	rows, err := c.leaderboard(ctx, config.Category)
	if err != nil {
		return err
	}
	stats.LeaderboardRows = len(rows)

	if len(rows) == 0 {
		return fmt.Errorf("leaderboard is empty after %d submissions", stats.ScoresSubmitted)
	}
	if len(rows) > maxLeaderboardRows {
		return fmt.Errorf("leaderboard returned %d rows, expected at most %d", len(rows), maxLeaderboardRows)
	}

	for i := 1; i < len(rows); i++ {
		if rows[i].Score > rows[i-1].Score {
			return fmt.Errorf("leaderboard out of order at row %d: %.0f after %.0f",
				i, rows[i].Score, rows[i-1].Score)
		}
	}

	for _, r := range rows {
		if r.Score > maxRoundScore {
			return fmt.Errorf("impossible score %.0f for %s; lower resubmits may have overwritten higher scores",
				r.Score, r.Username)
		}
	}

	logger.Get().Named("smoke").Info(ctx, "leaderboard verified",
		logger.Int("rows", len(rows)),
		logger.Float64("topScore", rows[0].Score),
	)
	return nil
}
