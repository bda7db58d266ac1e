package provider

import "errors"

// Sentinel kinds for provider errors.
var (
	ErrUpstreamStatus  = errors.New("upstream returned non-success status")
	ErrUpstreamPayload = errors.New("upstream payload malformed")
)
