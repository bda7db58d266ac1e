package smoke

import (
	"fmt"
	"os"

	"github.com/selimbas/revquiz/pkg/logger"
)

// SetupLogging initializes the shared logger for CLI use.
func SetupLogging(verbose bool) error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		_ = logger.SetLevelString("debug")
	}
	return nil
}

// ShowHelp prints usage information for the smoke tool.
func ShowHelp() {
	os.Stdout.WriteString(`RevQuiz Smoke Tool
==================

Plays simulated quiz rounds against a running service and verifies the
leaderboard afterwards.

Usage:
  go run cmd/smoke/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:8080")
  -players int
        Number of simulated players (default 50)
  -workers int
        Number of concurrent workers (default CPU cores)
  -category string
        Category to play (default mixed)
  -timeout duration
        HTTP request timeout (default 10s)
  -warmup duration
        How long to wait for the quiz cache (default 2m)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Smoke a local service with defaults
  go run cmd/smoke/main.go

  # Heavier run against another host
  go run cmd/smoke/main.go -url http://quiz:8080 -players 500 -workers 16
`)
}
