package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if REVQUIZ_CONFIG is set
//  3. env (prefix REVQUIZ_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("REVQUIZ_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: REVQUIZ_ADDR, REVQUIZ_RETENTION_DAYS, ...
	// Keys keep their underscores to match the koanf tags on the struct.
	envProvider := env.Provider("REVQUIZ_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "revquiz_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.TitlesPerRound < 1:
		return fmt.Errorf("%w: titles_per_round must be positive", ErrInvalidConfig)
	case c.ReviewsPerRound < 1:
		return fmt.Errorf("%w: reviews_per_round must be positive", ErrInvalidConfig)
	case c.ReviewPoolSize < c.ReviewsPerRound:
		return fmt.Errorf("%w: review_pool_size must be at least reviews_per_round", ErrInvalidConfig)
	case c.MinViableReviews < 1:
		return fmt.Errorf("%w: min_viable_reviews must be positive", ErrInvalidConfig)
	case c.MinReviewLen >= c.MaxReviewLen:
		return fmt.Errorf("%w: min_review_len must be below max_review_len", ErrInvalidConfig)
	case c.RefreshBatchSize < 1:
		return fmt.Errorf("%w: refresh_batch_size must be positive", ErrInvalidConfig)
	}
	return nil
}
