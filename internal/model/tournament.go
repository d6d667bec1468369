package model

import (
	"strings"
	"time"
)

// TournamentID uniquely identifies a tournament across the system
type TournamentID string

// JoinCode is the short human-readable code players use to find a tournament
type JoinCode string

// BalanceMode selects the team-generation policy
type BalanceMode string

const (
	BalanceModeBalanced BalanceMode = "balanced" // minimize inter-team skill disparity
	BalanceModeRandom   BalanceMode = "random"   // ignore skill entirely
)

// Status represents the lifecycle state of a tournament
type Status string

const (
	StatusOpen      Status = "open"      // accepting registrations
	StatusGenerated Status = "generated" // teams have been generated
	StatusDeleted   Status = "deleted"   // removed by creator or cleanup
)

// MMR bounds accepted for player ratings
const (
	MinMMR = 0
	MaxMMR = 3000
)

// Registration is a single player's entry in a tournament
type Registration struct {
	DisplayName string    `json:"displayName"`
	EpicID      string    `json:"epicId"`
	MMR         int       `json:"mmr"`
	Timestamp   time.Time `json:"timestamp"`

	// PreAssignedTeam is a 1-based team number the creator pinned this
	// player to, or nil when the balancer is free to place them.
	PreAssignedTeam *int `json:"preAssignedTeam,omitempty"`
}

// Team is a generated grouping of registrations
type Team struct {
	TeamNumber int            `json:"teamNumber"`
	Players    []Registration `json:"players"`
	AvgMMR     int            `json:"avgMMR"`
}

// Tournament is the full registration ledger for one event
type Tournament struct {
	ID             TournamentID   `json:"id"`
	Code           JoinCode       `json:"code"`
	Name           string         `json:"name"`
	MaxPlayers     int            `json:"maxPlayers"`
	TeamSize       int            `json:"teamSize"`
	Region         string         `json:"region"`
	IsPublic       bool           `json:"isPublic"`
	BalanceMode    BalanceMode    `json:"balanceMode"`
	Registrations  []Registration `json:"registrations"`
	Teams          []Team         `json:"teams"`
	RemovedPlayers []Registration `json:"removedPlayers"`
	Status         Status         `json:"status"`
	CreatorID      string         `json:"creatorId,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`

	// TeamsGeneratedAt is set the first time teams are generated and
	// never overwritten on re-generation.
	TeamsGeneratedAt *time.Time `json:"teamsGeneratedAt,omitempty"`
}

// FindRegistration returns the registration matching the given epic ID
// (case-insensitive), or nil if not registered.
func (t *Tournament) FindRegistration(epicID string) *Registration {
	for i := range t.Registrations {
		if strings.EqualFold(t.Registrations[i].EpicID, epicID) {
			return &t.Registrations[i]
		}
	}
	return nil
}

// IsFull reports whether the tournament has reached capacity
func (t *Tournament) IsFull() bool {
	return len(t.Registrations) >= t.MaxPlayers
}

// IsCreator reports whether the given identity matches the tournament's
// creator. Tournaments created without a creator identity accept anyone,
// matching the original community-tool behavior.
func (t *Tournament) IsCreator(creatorID string) bool {
	if t.CreatorID == "" {
		return true
	}
	return t.CreatorID == creatorID
}

// Clone returns a deep copy of the tournament. Storage hands out and
// accepts clones so that each request operates on its own snapshot.
func (t *Tournament) Clone() *Tournament {
	c := *t
	c.Registrations = cloneRegistrations(t.Registrations)
	c.RemovedPlayers = cloneRegistrations(t.RemovedPlayers)
	if t.Teams != nil {
		c.Teams = make([]Team, len(t.Teams))
		for i, team := range t.Teams {
			c.Teams[i] = team
			c.Teams[i].Players = cloneRegistrations(team.Players)
		}
	}
	if t.TeamsGeneratedAt != nil {
		ts := *t.TeamsGeneratedAt
		c.TeamsGeneratedAt = &ts
	}
	return &c
}

func cloneRegistrations(regs []Registration) []Registration {
	if regs == nil {
		return nil
	}
	out := make([]Registration, len(regs))
	for i, r := range regs {
		out[i] = r
		if r.PreAssignedTeam != nil {
			n := *r.PreAssignedTeam
			out[i].PreAssignedTeam = &n
		}
	}
	return out
}

// FoldName normalizes a tournament name for uniqueness comparison:
// case-insensitive with internal and surrounding whitespace collapsed.
func FoldName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
