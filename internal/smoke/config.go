package smoke

import "time"

// Config holds configuration for the smoke run.
type Config struct {
	BaseURL  string        // Base URL of the service
	Players  int           // Number of simulated players
	Workers  int           // Number of concurrent workers
	Category string        // Category filter to play, empty for mixed
	Timeout  time.Duration // HTTP request timeout
	WarmUp   time.Duration // How long to wait for the quiz cache to warm up
	Verbose  bool          // Enable verbose logging
}

// quizEntry mirrors the round payload served by GET /api/quiz.
type quizEntry struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Reviews []struct {
		Text          string `json:"text"`
		PlaytimeHours int    `json:"playtime"`
	} `json:"reviews"`
}

// scorePayload mirrors the submit payload for POST /api/scores.
type scorePayload struct {
	Username string  `json:"username"`
	Category string  `json:"category"`
	Score    float64 `json:"score"`
}

// leaderRow mirrors one leaderboard row.
type leaderRow struct {
	Username string  `json:"username"`
	Category string  `json:"category"`
	Score    float64 `json:"score"`
}

// Stats holds smoke run statistics.
type Stats struct {
	RoundsFetched    int
	ScoresSubmitted  int
	ScoresFailed     int
	ResubmitsChecked int
	LeaderboardRows  int
	StartTime        time.Time
	EndTime          time.Time
	Duration         time.Duration
}
