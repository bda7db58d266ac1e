// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Heuristic policy data (term lists, length bounds, quotas) lives here as
//   named configuration, never as inline literals in the domain packages.
// - Provide New() to build a Config with defaults; Load() layers file/env.
// - External errors must be wrapped via this package's sentinel kinds.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// CatalogPath points at the JSON title catalog. A missing or unreadable
	// file falls back to the built-in single-entry catalog.
	CatalogPath string `koanf:"catalog_path"`

	// ScoresPath is the JSON file backing the score ledger.
	ScoresPath string `koanf:"scores_path"`

	// Provider endpoints and fetch behavior.
	ReviewsBaseURL string `koanf:"reviews_base_url"`
	DetailsBaseURL string `koanf:"details_base_url"`
	ReviewLanguage string `koanf:"review_language"`
	FetchTimeoutMS int    `koanf:"fetch_timeout_ms"`
	ReviewPageSize int    `koanf:"review_page_size"`

	// ImageURLTemplate derives a title's artwork URL from its id.
	ImageURLTemplate string `koanf:"image_url_template"`

	// Cache refresh pacing.
	RefreshIntervalMinutes int `koanf:"refresh_interval_minutes"`
	RefreshBatchSize       int `koanf:"refresh_batch_size"`
	RefreshBatchPauseMS    int `koanf:"refresh_batch_pause_ms"`

	// Round shape. ReviewPoolSize bounds the cached clue pool per title and
	// must be at least ReviewsPerRound; keeping it larger lets repeat rounds
	// for the same title show different clues, not just a different order.
	TitlesPerRound  int `koanf:"titles_per_round"`
	ReviewsPerRound int `koanf:"reviews_per_round"`
	ReviewPoolSize  int `koanf:"review_pool_size"`

	// Catalog sampling.
	PoolLowWater int `koanf:"pool_low_water"`
	PoolTopUp    int `koanf:"pool_top_up"`

	// AllCategoryLabels are filter values treated as "no filter".
	AllCategoryLabels []string `koanf:"all_category_labels"`

	// Review curation policy.
	MinReviewLen        int      `koanf:"min_review_len"`
	MaxReviewLen        int      `koanf:"max_review_len"`
	RelaxedMinReviewLen int      `koanf:"relaxed_min_review_len"`
	RelaxedMaxReviewLen int      `koanf:"relaxed_max_review_len"`
	InformativeMinLen   int      `koanf:"informative_min_len"`
	MinViableReviews    int      `koanf:"min_viable_reviews"`
	InformativeQuota    int      `koanf:"informative_quota"`
	ForbiddenTerms      []string `koanf:"forbidden_terms"`
	MarkerWords         []string `koanf:"marker_words"`
	StockPhrases        []string `koanf:"stock_phrases"`

	// UnknownLabel is the sentinel shown when metadata could not be fetched.
	UnknownLabel string `koanf:"unknown_label"`

	// Leaderboard behavior.
	LeaderboardSize int `koanf:"leaderboard_size"`
	RetentionDays   int `koanf:"retention_days"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:    "info",
		Addr:        ":8080",
		CatalogPath: "games.json",
		ScoresPath:  "scores.json",

		ReviewsBaseURL: "https://store.steampowered.com/appreviews",
		DetailsBaseURL: "https://store.steampowered.com/api/appdetails",
		ReviewLanguage: "turkish",
		FetchTimeoutMS: 5000,
		ReviewPageSize: 100,

		ImageURLTemplate: "https://shared.akamai.steamstatic.com/store_item_assets/steam/apps/%d/header.jpg",

		RefreshIntervalMinutes: 360,
		RefreshBatchSize:       5,
		RefreshBatchPauseMS:    500,

		TitlesPerRound:  10,
		ReviewsPerRound: 10,
		ReviewPoolSize:  30,

		PoolLowWater: 10,
		PoolTopUp:    15,

		AllCategoryLabels: []string{"", "all", "Tümü", "Karışık"},

		MinReviewLen:        20,
		MaxReviewLen:        300,
		RelaxedMinReviewLen: 12,
		RelaxedMaxReviewLen: 600,
		InformativeMinLen:   80,
		MinViableReviews:    3,
		InformativeQuota:    8,
		ForbiddenTerms:      []string{"siyaset", "seçim", "politika"},
		MarkerWords:         []string{"the", "is", "and", "this"},
		StockPhrases: []string{
			"tavsiye ederim", "öneririm", "10/10",
			"güzel oyun", "harika oyun", "mükemmel oyun", "efsane oyun",
		},

		UnknownLabel: "Bilinmiyor",

		LeaderboardSize: 10,
		RetentionDays:   30,
	}
}
