package model

import "errors"

// Common errors used across the application
var (
	// Tournament errors
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrCodeNotFound       = errors.New("join code not found")
	ErrNameTaken          = errors.New("tournament name already in use")
	ErrCreatorLimit       = errors.New("creator already has the maximum number of tournaments")
	ErrRegistrationClosed = errors.New("registrations are closed")
	ErrTournamentFull     = errors.New("tournament is full")
	ErrNotCreator         = errors.New("only the tournament creator can perform this action")

	// Player errors
	ErrPlayerNotFound    = errors.New("player not found in tournament")
	ErrAlreadyRegistered = errors.New("player is already registered in this tournament")
	ErrEpicNotFound      = errors.New("epic account not found")

	// Input errors
	ErrInvalidMMR      = errors.New("mmr must be between 0 and 3000")
	ErrInvalidTeamSize = errors.New("team size must be at least 1")
	ErrInvalidCapacity = errors.New("max players must be at least the team size")

	// Rating service errors
	ErrRatingUnavailable = errors.New("rating service unavailable")
)
