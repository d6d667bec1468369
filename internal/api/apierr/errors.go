package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rlmatchup/rlmatchup-go/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeTournamentNotFound = "TOURNAMENT_NOT_FOUND"
	CodeCodeNotFound       = "CODE_NOT_FOUND"
	CodePlayerNotFound     = "PLAYER_NOT_FOUND"
	CodeEpicNotFound       = "EPIC_ACCOUNT_NOT_FOUND"
	CodeRegistrationClosed = "REGISTRATION_CLOSED"
	CodeTournamentFull     = "TOURNAMENT_FULL"
	CodeAlreadyRegistered  = "ALREADY_REGISTERED"
	CodeInvalidMMR         = "INVALID_MMR"
	CodeNameTaken          = "NAME_TAKEN"
	CodeCreatorLimit       = "CREATOR_LIMIT"
	CodeNotCreator         = "NOT_CREATOR"
	CodeRatingUnavailable  = "RATING_UNAVAILABLE"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrTournamentNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeTournamentNotFound, "Tournament not found"}}
	case errors.Is(err, model.ErrCodeNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeCodeNotFound, "Invalid join code"}}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrEpicNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeEpicNotFound, "Epic account not found"}}
	case errors.Is(err, model.ErrRegistrationClosed):
		return &httpError{http.StatusBadRequest, APIError{CodeRegistrationClosed, "Registrations are closed"}}
	case errors.Is(err, model.ErrTournamentFull):
		return &httpError{http.StatusBadRequest, APIError{CodeTournamentFull, "Tournament is full"}}
	case errors.Is(err, model.ErrAlreadyRegistered):
		return &httpError{http.StatusBadRequest, APIError{CodeAlreadyRegistered, "Already registered in this tournament"}}
	case errors.Is(err, model.ErrInvalidMMR):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidMMR, "MMR must be between 0 and 3000"}}
	case errors.Is(err, model.ErrInvalidTeamSize),
		errors.Is(err, model.ErrInvalidCapacity):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, err.Error()}}
	case errors.Is(err, model.ErrNameTaken):
		return &httpError{http.StatusConflict, APIError{CodeNameTaken, "Tournament name already in use"}}
	case errors.Is(err, model.ErrCreatorLimit):
		return &httpError{http.StatusConflict, APIError{CodeCreatorLimit, "You already have the maximum number of active tournaments"}}
	case errors.Is(err, model.ErrNotCreator):
		return &httpError{http.StatusForbidden, APIError{CodeNotCreator, "Only the tournament creator can perform this action"}}
	case errors.Is(err, model.ErrRatingUnavailable):
		return &httpError{http.StatusBadGateway, APIError{CodeRatingUnavailable, "Rating service unavailable"}}
	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
