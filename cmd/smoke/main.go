package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/selimbas/revquiz/internal/smoke"
)

// Default configuration constants.
const (
	defaultPlayers    = 50
	defaultTimeout    = 10 * time.Second
	defaultWarmUp     = 2 * time.Minute
	defaultRunTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL  = flag.String("url", "http://localhost:8080", "Base URL of the service")
		players  = flag.Int("players", defaultPlayers, "Number of simulated players")
		workers  = flag.Int("workers", runtime.NumCPU(), "Number of concurrent workers")
		category = flag.String("category", "", "Category to play (default mixed)")
		timeout  = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		warmUp   = flag.Duration("warmup", defaultWarmUp, "How long to wait for the quiz cache")
		verbose  = flag.Bool("verbose", false, "Enable verbose logging")
		help     = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		smoke.ShowHelp()
		return
	}

	if err := smoke.SetupLogging(*verbose); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	config := &smoke.Config{
		BaseURL:  *baseURL,
		Players:  *players,
		Workers:  *workers,
		Category: *category,
		Timeout:  *timeout,
		WarmUp:   *warmUp,
		Verbose:  *verbose,
	}

	if err := smoke.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Smoke run failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
