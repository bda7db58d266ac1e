package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/selimbas/revquiz/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.TitlesPerRound, convey.ShouldEqual, 10)
				convey.So(cfg.ReviewsPerRound, convey.ShouldEqual, 10)
				convey.So(cfg.ReviewPoolSize, convey.ShouldEqual, 30)
				convey.So(cfg.MinViableReviews, convey.ShouldEqual, 3)
				convey.So(cfg.RefreshBatchSize, convey.ShouldEqual, 5)
				convey.So(cfg.RetentionDays, convey.ShouldEqual, 30)
				convey.So(cfg.ForbiddenTerms, convey.ShouldNotBeEmpty)
				convey.So(cfg.MarkerWords, convey.ShouldNotBeEmpty)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("REVQUIZ_ADDR", ":9090")
			_ = os.Setenv("REVQUIZ_TITLES_PER_ROUND", "6")
			_ = os.Setenv("REVQUIZ_RETENTION_DAYS", "7")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.TitlesPerRound, convey.ShouldEqual, 6)
				convey.So(cfg.RetentionDays, convey.ShouldEqual, 7)
				// Untouched fields keep defaults.
				convey.So(cfg.ReviewsPerRound, convey.ShouldEqual, 10)
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			yamlContent := `
addr: ":7070"
reviews_per_round: 8
min_review_len: 10
max_review_len: 200
forbidden_terms:
  - topic-a
  - topic-b
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("REVQUIZ_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from the YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.ReviewsPerRound, convey.ShouldEqual, 8)
				convey.So(cfg.MinReviewLen, convey.ShouldEqual, 10)
				convey.So(cfg.ForbiddenTerms, convey.ShouldResemble, []string{"topic-a", "topic-b"})
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
addr: ":7070"
reviews_per_round: 8
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("REVQUIZ_CONFIG", tmpFile)
			_ = os.Setenv("REVQUIZ_ADDR", ":6060")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":6060")
				convey.So(cfg.ReviewsPerRound, convey.ShouldEqual, 8)
			})
		})

		convey.Convey("When loading config with a non-existent file", func() {
			_ = os.Setenv("REVQUIZ_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an empty addr", func() {
			_ = os.Setenv("REVQUIZ_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the clue pool is smaller than one round", func() {
			_ = os.Setenv("REVQUIZ_REVIEW_POOL_SIZE", "5")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When length bounds are inverted", func() {
			_ = os.Setenv("REVQUIZ_MIN_REVIEW_LEN", "500")
			_ = os.Setenv("REVQUIZ_MAX_REVIEW_LEN", "100")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"REVQUIZ_CONFIG",
		"REVQUIZ_ADDR",
		"REVQUIZ_TITLES_PER_ROUND",
		"REVQUIZ_REVIEWS_PER_ROUND",
		"REVQUIZ_REVIEW_POOL_SIZE",
		"REVQUIZ_RETENTION_DAYS",
		"REVQUIZ_MIN_REVIEW_LEN",
		"REVQUIZ_MAX_REVIEW_LEN",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "revquiz-config-*.yaml")
	if err != nil {
		panic(err)
	}
	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}
	if err := tmpFile.Close(); err != nil {
		panic(err)
	}
	return tmpFile.Name()
}
