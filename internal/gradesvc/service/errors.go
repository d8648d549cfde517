package service

import "errors"

// Errors shared by the settlement and stats services and the HTTP/NATS mapping.
var (
	// Game lookups
	ErrGameNotFound     = errors.New("game not found")
	ErrScoreNotRecorded = errors.New("game has no final score recorded")

	// Boundary validation
	ErrInvalidScore  = errors.New("score must be a non-negative integer")
	ErrInvalidSeason = errors.New("season must be a positive integer")
)
