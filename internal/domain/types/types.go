// Package types contains common types used across the application.
package types

// Review is one masked review shown as a quiz clue.
type Review struct {
	Text          string `json:"text"`
	PlaytimeHours int    `json:"playtime"`
}

// QuizEntry is one fully resolved title served in a quiz round.
type QuizEntry struct {
	ID              int      `json:"id"`
	Name            string   `json:"name"`
	Category        string   `json:"category"`
	ImageURL        string   `json:"image"`
	Developer       string   `json:"developer"`
	ReleaseDate     string   `json:"date"`
	Recommendations string   `json:"reviews_count"`
	Reviews         []Review `json:"reviews"`
}

// ScoreEntry is one leaderboard row.
type ScoreEntry struct {
	Participant string  `json:"username"`
	Category    string  `json:"category"`
	Score       float64 `json:"score"`
}
