package repository

import "errors"

// Sentinel kinds for ledger errors.
var (
	ErrMissingParticipant = errors.New("missing participant")
	ErrPersist            = errors.New("ledger persist failed")
)
