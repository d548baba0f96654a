package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Room errors
	ErrRoomNotFound = errors.New("room not found")
	ErrNotHost      = errors.New("player is not the host")

	// Round errors
	ErrRoundNotActive  = errors.New("no question is active")
	ErrRoundInProgress = errors.New("a question is already active")
	ErrGameNotStarted  = errors.New("game has not started")
	ErrGameFinished    = errors.New("game has finished")
	ErrNoQuestions     = errors.New("room has no questions")

	// Request errors
	ErrInvalidPayload = errors.New("invalid or incomplete payload")
)
