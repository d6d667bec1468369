package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case CreateResult:
		o.printCreateResult(v)
	case Tournament:
		o.printTournament(v)
	case []TournamentSummary:
		o.printSummaries(v)
	case RegisterResult:
		o.printRegisterResult(v)
	case PlayerResult:
		o.printPlayerResult(v)
	case GenerateResult:
		o.printGenerateResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Registration response type (matches API)
type Registration struct {
	DisplayName     string     `json:"displayName"`
	EpicID          string     `json:"epicId"`
	MMR             *int       `json:"mmr,omitempty"`
	Timestamp       *time.Time `json:"timestamp,omitempty"`
	PreAssignedTeam *int       `json:"preAssignedTeam,omitempty"`
}

// Team response type
type Team struct {
	TeamNumber int            `json:"teamNumber"`
	Players    []Registration `json:"players"`
	AvgMMR     int            `json:"avgMMR"`
}

// Tournament response type
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

// TournamentSummary response type for the public listing
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

// CreateResult response type
type CreateResult struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
	Code    string `json:"code"`
}

// ResolveResult response type
type ResolveResult struct {
	ID string `json:"id"`
}

// RegisterResult response type
type RegisterResult struct {
	Success bool `json:"success"`
	MMR     int  `json:"mmr"`
}

// PlayerResult response type
type PlayerResult struct {
	Success bool         `json:"success"`
	Player  Registration `json:"player"`
}

// GenerateResult response type
type GenerateResult struct {
	Success        bool           `json:"success"`
	Teams          []Team         `json:"teams"`
	RemovedPlayers []Registration `json:"removedPlayers"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printCreateResult(c CreateResult) {
	fmt.Printf("Tournament created: %s\n", c.ID)
	fmt.Printf("Join code: %s\n", c.Code)
}

func (o *Output) printTournament(t Tournament) {
	fmt.Printf("Tournament: %s (%s)\n", t.Name, t.ID)
	fmt.Printf("Code: %s\n", t.Code)
	fmt.Printf("Status: %s\n", t.Status)
	fmt.Printf("Mode: %s\n", t.BalanceMode)
	if t.Region != "" {
		fmt.Printf("Region: %s\n", t.Region)
	}
	fmt.Printf("Players: %d/%d (teams of %d)\n", len(t.Registrations), t.MaxPlayers, t.TeamSize)

	for _, r := range t.Registrations {
		fmt.Printf("  - %s%s\n", r.DisplayName, formatMMR(r.MMR))
	}

	if len(t.Teams) > 0 {
		fmt.Println("Teams:")
		for _, team := range t.Teams {
			o.printTeam(team)
		}
	}

	if len(t.RemovedPlayers) > 0 {
		fmt.Printf("Removed (%d):\n", len(t.RemovedPlayers))
		for _, r := range t.RemovedPlayers {
			fmt.Printf("  - %s%s\n", r.DisplayName, formatMMR(r.MMR))
		}
	}
}

func (o *Output) printTeam(t Team) {
	fmt.Printf("  Team %d (avg %d):\n", t.TeamNumber, t.AvgMMR)
	for _, p := range t.Players {
		fmt.Printf("    - %s%s\n", p.DisplayName, formatMMR(p.MMR))
	}
}

func (o *Output) printSummaries(summaries []TournamentSummary) {
	if len(summaries) == 0 {
		fmt.Println("No public tournaments")
		return
	}
	for _, s := range summaries {
		fmt.Printf("%s  %s  %d/%d  %s  [%s]\n", s.Code, s.Name, s.CurrentPlayers, s.MaxPlayers, s.BalanceMode, s.ID)
	}
}

func (o *Output) printRegisterResult(r RegisterResult) {
	fmt.Printf("Registered with MMR %d\n", r.MMR)
}

func (o *Output) printPlayerResult(p PlayerResult) {
	fmt.Printf("Player: %s (%s)%s\n", p.Player.DisplayName, p.Player.EpicID, formatMMR(p.Player.MMR))
	if p.Player.PreAssignedTeam != nil {
		fmt.Printf("Assigned team: %d\n", *p.Player.PreAssignedTeam)
	}
}

func (o *Output) printGenerateResult(g GenerateResult) {
	fmt.Printf("Generated %d teams\n", len(g.Teams))
	for _, team := range g.Teams {
		o.printTeam(team)
	}
	if len(g.RemovedPlayers) > 0 {
		fmt.Printf("Removed (%d):\n", len(g.RemovedPlayers))
		for _, r := range g.RemovedPlayers {
			fmt.Printf("  - %s%s\n", r.DisplayName, formatMMR(r.MMR))
		}
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}

func formatMMR(mmr *int) string {
	if mmr == nil {
		return ""
	}
	return fmt.Sprintf(" (MMR %d)", *mmr)
}
