// Package smoke drives a running quiz service end to end: it waits for the
// cache to warm up, plays simulated rounds concurrently, and verifies the
// leaderboard afterwards.
package smoke

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/selimbas/revquiz/pkg/logger"
)

// Run pacing constants.
const (
	warmUpPollInterval = 2 * time.Second
	maxRoundScore      = 100
)

// Run executes the complete smoke run.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{StartTime: time.Now()}
	log := logger.Get().Named("smoke")

	log.Info(ctx, "starting quiz smoke run",
		logger.String("baseURL", config.BaseURL),
		logger.Int("players", config.Players),
		logger.Int("workers", config.Workers),
		logger.String("category", config.Category),
		logger.Duration("timeout", config.Timeout),
	)

	c := newClient(config.BaseURL, config.Timeout)

	if err := c.health(ctx); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	if err := waitForWarmUp(ctx, c, config, stats); err != nil {
		return fmt.Errorf("cache warm-up failed: %w", err)
	}

	if err := playRounds(ctx, c, config, stats); err != nil {
		return fmt.Errorf("round play failed: %w", err)
	}

	if err := verifyLeaderboard(ctx, c, config, stats); err != nil {
		return fmt.Errorf("leaderboard verification failed: %w", err)
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	log.Info(ctx, "smoke run completed",
		logger.Int("roundsFetched", stats.RoundsFetched),
		logger.Int("scoresSubmitted", stats.ScoresSubmitted),
		logger.Int("scoresFailed", stats.ScoresFailed),
		logger.Int("resubmitsChecked", stats.ResubmitsChecked),
		logger.Int("leaderboardRows", stats.LeaderboardRows),
		logger.Duration("duration", stats.Duration),
	)
	return nil
}

// waitForWarmUp polls the quiz endpoint until the cache serves a round or the
// warm-up budget runs out.
func waitForWarmUp(ctx context.Context, c *client, config *Config, stats *Stats) error {
	log := logger.Get().Named("smoke")
	deadline := time.Now().Add(config.WarmUp)

	for {
		round, warming, err := c.round(ctx, config.Category)
		if err != nil {
			return err
		}
		if !warming {
			if len(round) == 0 {
				return fmt.Errorf("cache is warm but the round is empty")
			}
			stats.RoundsFetched++
			log.Info(ctx, "cache is warm", logger.Int("titles", len(round)))
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("cache still cold after %s", config.WarmUp)
		}

		log.Debug(ctx, "cache still warming up, retrying")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(warmUpPollInterval):
		}
	}
}

// playRounds fans simulated players out over a worker pool. Every player
// fetches a round and submits a score; even-numbered players submit a second,
// lower score so verification can catch a broken max-merge.
func playRounds(ctx context.Context, c *client, config *Config, stats *Stats) error {
	var (
		fetched   int64
		submitted int64
		failed    int64
		resubmits int64
	)

	players := make(chan int, config.Workers*2)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for player := range players {
				select {
				case <-ctx.Done():
					return
				default:
				}

				if _, warming, err := c.round(ctx, config.Category); err != nil || warming {
					atomic.AddInt64(&failed, 1)
					continue
				}
				atomic.AddInt64(&fetched, 1)

				name := fmt.Sprintf("smoke-%04d", player)
				score := float64(rand.Intn(maxRoundScore + 1)) //nolint:gosec // synthetic scores need no strong randomness
				if err := c.submit(ctx, scorePayload{Username: name, Category: config.Category, Score: score}); err != nil {
					atomic.AddInt64(&failed, 1)
					continue
				}
				atomic.AddInt64(&submitted, 1)

				if player%2 == 0 && score > 0 {
					lower := scorePayload{Username: name, Category: config.Category, Score: score - 1}
					if err := c.submit(ctx, lower); err == nil {
						atomic.AddInt64(&resubmits, 1)
					}
				}
			}
		}()
	}

	for p := 1; p <= config.Players; p++ {
		select {
		case <-ctx.Done():
			close(players)
			wg.Wait()
			return ctx.Err()
		case players <- p:
		}
	}
	close(players)
	wg.Wait()

	stats.RoundsFetched += int(atomic.LoadInt64(&fetched))
	stats.ScoresSubmitted = int(atomic.LoadInt64(&submitted))
	stats.ScoresFailed = int(atomic.LoadInt64(&failed))
	stats.ResubmitsChecked = int(atomic.LoadInt64(&resubmits))

	if stats.ScoresSubmitted == 0 {
		return fmt.Errorf("no score submission succeeded")
	}
	return nil
}
