package response

import (
	"time"

	"github.com/rlmatchup/rlmatchup-go/internal/model"
)

// Registration represents a player registration in API responses. The
// public view carries only name, handle, and registration time; ratings
// and pre-assignments are reserved for the creator view.
type Registration struct {
	DisplayName     string     `json:"displayName"`
	EpicID          string     `json:"epicId"`
	MMR             *int       `json:"mmr,omitempty"`
	Timestamp       *time.Time `json:"timestamp,omitempty"`
	PreAssignedTeam *int       `json:"preAssignedTeam,omitempty"`
}

// RegistrationFromModel converts a model.Registration
func RegistrationFromModel(r *model.Registration, creatorView, withTimestamp bool) Registration {
	out := Registration{
		DisplayName: r.DisplayName,
		EpicID:      r.EpicID,
	}
	if withTimestamp {
		ts := r.Timestamp
		out.Timestamp = &ts
	}
	if creatorView {
		mmr := r.MMR
		out.MMR = &mmr
		if r.PreAssignedTeam != nil {
			n := *r.PreAssignedTeam
			out.PreAssignedTeam = &n
		}
	}
	return out
}

// Team represents a generated team. The average rating is public even
// when individual ratings are redacted.
type Team struct {
	TeamNumber int            `json:"teamNumber"`
	Players    []Registration `json:"players"`
	AvgMMR     int            `json:"avgMMR"`
}

// TeamFromModel converts a model.Team
func TeamFromModel(t *model.Team, creatorView bool) Team {
	players := make([]Registration, len(t.Players))
	for i := range t.Players {
		players[i] = RegistrationFromModel(&t.Players[i], creatorView, false)
	}
	return Team{
		TeamNumber: t.TeamNumber,
		Players:    players,
		AvgMMR:     t.AvgMMR,
	}
}

// Tournament represents a full tournament record in API responses
type Tournament struct {
	ID               string         `json:"id"`
	Code             string         `json:"code"`
	Name             string         `json:"name"`
	MaxPlayers       int            `json:"maxPlayers"`
	TeamSize         int            `json:"teamSize"`
	Region           string         `json:"region"`
	IsPublic         bool           `json:"isPublic"`
	BalanceMode      string         `json:"balanceMode"`
	Status           string         `json:"status"`
	Registrations    []Registration `json:"registrations"`
	Teams            []Team         `json:"teams"`
	RemovedPlayers   []Registration `json:"removedPlayers,omitempty"`
	CreatedAt        time.Time      `json:"createdAt"`
	TeamsGeneratedAt *time.Time     `json:"teamsGeneratedAt,omitempty"`
}

// TournamentFromModel converts a model.Tournament, redacting ratings and
// removed players unless the caller is viewing as the creator
func TournamentFromModel(t *model.Tournament, creatorView bool) Tournament {
	regs := make([]Registration, len(t.Registrations))
	for i := range t.Registrations {
		regs[i] = RegistrationFromModel(&t.Registrations[i], creatorView, true)
	}

	teams := make([]Team, len(t.Teams))
	for i := range t.Teams {
		teams[i] = TeamFromModel(&t.Teams[i], creatorView)
	}

	out := Tournament{
		ID:               string(t.ID),
		Code:             string(t.Code),
		Name:             t.Name,
		MaxPlayers:       t.MaxPlayers,
		TeamSize:         t.TeamSize,
		Region:           t.Region,
		IsPublic:         t.IsPublic,
		BalanceMode:      string(t.BalanceMode),
		Status:           string(t.Status),
		Registrations:    regs,
		Teams:            teams,
		CreatedAt:        t.CreatedAt,
		TeamsGeneratedAt: t.TeamsGeneratedAt,
	}

	if creatorView {
		removed := make([]Registration, len(t.RemovedPlayers))
		for i := range t.RemovedPlayers {
			removed[i] = RegistrationFromModel(&t.RemovedPlayers[i], true, true)
		}
		out.RemovedPlayers = removed
	}

	return out
}

// TournamentSummary is the public listing entry for an open tournament
type TournamentSummary struct {
	ID             string `json:"id"`
	Code           string `json:"code"`
	Name           string `json:"name"`
	MaxPlayers     int    `json:"maxPlayers"`
	TeamSize       int    `json:"teamSize"`
	CurrentPlayers int    `json:"currentPlayers"`
	Region         string `json:"region"`
	BalanceMode    string `json:"balanceMode"`
}

// TournamentSummaryFromModel converts a model.Tournament to a listing entry
func TournamentSummaryFromModel(t *model.Tournament) TournamentSummary {
	return TournamentSummary{
		ID:             string(t.ID),
		Code:           string(t.Code),
		Name:           t.Name,
		MaxPlayers:     t.MaxPlayers,
		TeamSize:       t.TeamSize,
		CurrentPlayers: len(t.Registrations),
		Region:         t.Region,
		BalanceMode:    string(t.BalanceMode),
	}
}

// CreateTournamentResponse is the response after creating a tournament
type CreateTournamentResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
	Code    string `json:"code"`
}

// ResolveCodeResponse is the response for a join code lookup
type ResolveCodeResponse struct {
	ID string `json:"id"`
}

// RegisterResponse is the response after a successful registration
type RegisterResponse struct {
	Success bool `json:"success"`
	MMR     int  `json:"mmr"`
}

// PlayerResponse wraps a single registration mutation result
type PlayerResponse struct {
	Success bool         `json:"success"`
	Player  Registration `json:"player"`
}

// GenerateResponse is the response after generating teams
type GenerateResponse struct {
	Success        bool           `json:"success"`
	Teams          []Team         `json:"teams"`
	RemovedPlayers []Registration `json:"removedPlayers"`
}

// SuccessResponse is the bare success envelope
type SuccessResponse struct {
	Success bool `json:"success"`
}
