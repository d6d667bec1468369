package request

import "github.com/rlmatchup/rlmatchup-go/internal/model"

// CreateTournamentRequest is the request body for creating a tournament
type CreateTournamentRequest struct {
	Name        string `json:"name"`
	MaxPlayers  int    `json:"maxPlayers"`
	TeamSize    int    `json:"teamSize"`
	Region      string `json:"region"`
	IsPublic    bool   `json:"isPublic"`
	BalanceMode string `json:"balanceMode"`
	CreatorID   string `json:"creatorId,omitempty"`
}

// RegisterRequest is the request body for registering a player.
// MMR is optional; when absent the server verifies the epic account
// against the rating service instead.
type RegisterRequest struct {
	DisplayName string `json:"displayName"`
	EpicID      string `json:"epicId"`
	MMR         *int   `json:"mmr,omitempty"`
}

// AssignRequest is the request body for pre-assigning a player to a team.
// A null teamNumber clears the assignment.
type AssignRequest struct {
	TeamNumber *int `json:"teamNumber"`
}

// EditMMRRequest is the request body for overriding a player's rating
type EditMMRRequest struct {
	MMR *int `json:"mmr"`
}

// UpdateTeamsRequest is the request body for overwriting generated teams
type UpdateTeamsRequest struct {
	Teams []model.Team `json:"teams"`
}
