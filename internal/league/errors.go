package league

import "errors"

// Sentinel errors used across the store and mapped to HTTP status codes by
// the server.
var (
	ErrTeamNotFound    = errors.New("team not found")
	ErrSessionNotFound = errors.New("session not found")
	ErrGameNotFound    = errors.New("game not found")
	ErrPenaltyNotFound = errors.New("penalty not found")

	// ErrValidation marks business-rule failures detected before any write
	// is persisted: blank names, empty team lists, team ids outside the
	// expected scope, placements below one.
	ErrValidation = errors.New("validation failed")
)
