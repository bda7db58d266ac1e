package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/cors"

	"github.com/selimbas/revquiz/internal/adapters/http/api"
	"github.com/selimbas/revquiz/internal/adapters/http/site"
	"github.com/selimbas/revquiz/internal/adapters/http/swagger"
	"github.com/selimbas/revquiz/internal/adapters/provider"
	"github.com/selimbas/revquiz/internal/adapters/repository"
	"github.com/selimbas/revquiz/internal/app"
	"github.com/selimbas/revquiz/internal/catalog"
	"github.com/selimbas/revquiz/internal/config"
	"github.com/selimbas/revquiz/internal/domain/review"
	"github.com/selimbas/revquiz/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second

	hoursPerDay = 24
)

func main() {
	// Initialize logging
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	entries := catalog.Load(ctx, cfg.CatalogPath)

	steam := provider.NewSteamClient(
		provider.WithReviewsBaseURL(cfg.ReviewsBaseURL),
		provider.WithDetailsBaseURL(cfg.DetailsBaseURL),
		provider.WithLanguage(cfg.ReviewLanguage),
		provider.WithPageSize(cfg.ReviewPageSize),
		provider.WithTimeout(time.Duration(cfg.FetchTimeoutMS)*time.Millisecond),
	)

	store := repository.NewMemStore(ctx,
		repository.WithRetention(time.Duration(cfg.RetentionDays)*hoursPerDay*time.Hour),
		repository.WithPersister(repository.NewFileLedger(cfg.ScoresPath)),
	)

	builder := review.NewBuilder(
		review.WithPolicies(buildPolicies(cfg)),
		review.WithPoolSize(cfg.ReviewPoolSize),
		review.WithInformativeQuota(cfg.InformativeQuota),
		review.WithMinViable(cfg.MinViableReviews),
	)

	sampler := catalog.NewSampler(
		catalog.WithLowWater(cfg.PoolLowWater),
		catalog.WithTopUp(cfg.PoolTopUp),
		catalog.WithAllLabels(cfg.AllCategoryLabels),
	)

	svc := app.New(
		app.WithLogger(log),
		app.WithCatalog(entries),
		app.WithProvider(steam),
		app.WithStore(store),
		app.WithBuilder(builder),
		app.WithSampler(sampler),
		app.WithRefreshInterval(time.Duration(cfg.RefreshIntervalMinutes)*time.Minute),
		app.WithBatch(cfg.RefreshBatchSize, time.Duration(cfg.RefreshBatchPauseMS)*time.Millisecond),
		app.WithTitlesPerRound(cfg.TitlesPerRound),
		app.WithReviewsPerRound(cfg.ReviewsPerRound),
		app.WithLeaderboardSize(cfg.LeaderboardSize),
		app.WithImageURLTemplate(cfg.ImageURLTemplate),
		app.WithUnknownLabel(cfg.UnknownLabel),
	)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	// HTTP mux and routes.
	mux := http.NewServeMux()

	// Register the embedded front-end at /
	site.Register(ctx, mux)

	// Register the API reference under /api-docs
	swagger.Register(ctx, mux)

	// Register business API routes with the service dependency.
	apiServer := api.NewServer(svc)
	apiServer.Register(ctx, mux)

	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Request-Id"},
	}).Handler(api.RequestIDMiddleware(mux))

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// Start the HTTP server
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			return
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}

// buildPolicies maps the configured curation thresholds onto the strict and
// relaxed rulesets, keeping unexposed knobs at their defaults.
func buildPolicies(cfg *config.Config) []review.Policy {
	policies := review.DefaultPolicies()
	for i := range policies {
		policies[i].InformativeMinLen = cfg.InformativeMinLen
		policies[i].ForbiddenTerms = cfg.ForbiddenTerms
		policies[i].MarkerWords = cfg.MarkerWords
	}

	// strict
	policies[0].MinLen = cfg.MinReviewLen
	policies[0].MaxLen = cfg.MaxReviewLen
	policies[0].PunchyMinLen = cfg.MinReviewLen
	policies[0].StockPhrases = cfg.StockPhrases

	// relaxed
	policies[1].MinLen = cfg.RelaxedMinReviewLen
	policies[1].MaxLen = cfg.RelaxedMaxReviewLen

	return policies
}
