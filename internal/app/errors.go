package app

import "errors"

// Sentinel kinds for service errors.
var (
	// ErrNotReady signals the quiz cache has not produced a snapshot yet.
	// Callers should ask the client to retry shortly.
	ErrNotReady = errors.New("quiz cache not ready")
)
