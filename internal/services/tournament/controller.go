package tournament

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/rlmatchup/rlmatchup-go/internal/dependencies/clock"
	"github.com/rlmatchup/rlmatchup-go/internal/dependencies/random"
	"github.com/rlmatchup/rlmatchup-go/internal/model"
	"github.com/rlmatchup/rlmatchup-go/internal/services/balancer"
	"github.com/rlmatchup/rlmatchup-go/internal/services/rating"
	"github.com/rlmatchup/rlmatchup-go/internal/storage"
)

const (
	// JoinCodeLength is the length of generated join codes
	JoinCodeLength = 6
	// JoinCodeAlphabet is the characters used in join codes (avoid confusing chars)
	JoinCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	// MaxTournamentsPerCreator caps concurrent tournaments per creator identity
	MaxTournamentsPerCreator = 2
)

// Controller manages the tournament registration ledger. Every mutation is
// a single fetch+compute+store cycle on a storage snapshot; there is no
// cross-request locking, which the small-scale use case accepts.
type Controller struct {
	storage  storage.Storage
	balancer *balancer.Service
	verifier rating.Verifier
	clock    clock.Clock
	random   random.Random
	logger   *slog.Logger
}

// NewController creates a new tournament controller
func NewController(
	store storage.Storage,
	balancerService *balancer.Service,
	verifier rating.Verifier,
	clk clock.Clock,
	rnd random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:  store,
		balancer: balancerService,
		verifier: verifier,
		clock:    clk,
		random:   rnd,
		logger:   logger,
	}
}

// CreateParams holds the organizer-supplied settings for a new tournament
type CreateParams struct {
	Name        string
	MaxPlayers  int
	TeamSize    int
	Region      string
	IsPublic    bool
	BalanceMode model.BalanceMode
	CreatorID   string
}

// CreateTournament validates the parameters and opens a new tournament
func (c *Controller) CreateTournament(ctx context.Context, params CreateParams) (*model.Tournament, error) {
	if params.TeamSize < 1 {
		return nil, model.ErrInvalidTeamSize
	}
	if params.MaxPlayers < params.TeamSize {
		return nil, model.ErrInvalidCapacity
	}
	if params.BalanceMode == "" {
		params.BalanceMode = model.BalanceModeBalanced
	}

	// Name uniqueness and creator limit are enforced by a scan of the
	// full record list; a concurrent create can slip past both checks,
	// which the design accepts.
	existing, err := c.storage.ListTournaments(ctx)
	if err != nil {
		return nil, err
	}

	folded := model.FoldName(params.Name)
	created := 0
	for _, t := range existing {
		if t.Status == model.StatusDeleted {
			continue
		}
		if model.FoldName(t.Name) == folded {
			return nil, model.ErrNameTaken
		}
		if params.CreatorID != "" && t.CreatorID == params.CreatorID {
			created++
		}
	}
	if params.CreatorID != "" && created >= MaxTournamentsPerCreator {
		return nil, model.ErrCreatorLimit
	}

	// Generate a unique join code
	var code model.JoinCode
	for {
		code = model.JoinCode(c.random.String(JoinCodeLength, JoinCodeAlphabet))
		_, err := c.storage.GetTournamentByCode(ctx, code)
		if errors.Is(err, model.ErrCodeNotFound) {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	t := &model.Tournament{
		ID:             model.TournamentID(uuid.NewString()),
		Code:           code,
		Name:           params.Name,
		MaxPlayers:     params.MaxPlayers,
		TeamSize:       params.TeamSize,
		Region:         params.Region,
		IsPublic:       params.IsPublic,
		BalanceMode:    params.BalanceMode,
		Registrations:  []model.Registration{},
		Teams:          []model.Team{},
		RemovedPlayers: []model.Registration{},
		Status:         model.StatusOpen,
		CreatorID:      params.CreatorID,
		CreatedAt:      c.clock.Now(),
	}

	if err := c.storage.SaveTournament(ctx, t); err != nil {
		return nil, err
	}

	c.logger.Info("tournament created",
		slog.String("id", string(t.ID)),
		slog.String("code", string(t.Code)),
		slog.String("balance_mode", string(t.BalanceMode)),
	)

	return t, nil
}

// GetTournament retrieves a tournament by id
func (c *Controller) GetTournament(ctx context.Context, id model.TournamentID) (*model.Tournament, error) {
	return c.storage.GetTournament(ctx, id)
}

// ListPublic returns all public tournaments still open for registration,
// oldest first
func (c *Controller) ListPublic(ctx context.Context) ([]*model.Tournament, error) {
	all, err := c.storage.ListTournaments(ctx)
	if err != nil {
		return nil, err
	}

	var public []*model.Tournament
	for _, t := range all {
		if t.IsPublic && t.Status == model.StatusOpen {
			public = append(public, t)
		}
	}
	sort.Slice(public, func(i, j int) bool {
		return public[i].CreatedAt.Before(public[j].CreatedAt)
	})
	return public, nil
}

// ResolveCode finds a tournament by its join code, case-folded to upper
func (c *Controller) ResolveCode(ctx context.Context, code string) (*model.Tournament, error) {
	return c.storage.GetTournamentByCode(ctx, model.JoinCode(strings.ToUpper(code)))
}

// RegisterPlayer adds a player to an open tournament. If mmr is nil the
// rating service is consulted; an explicit value is range-checked instead.
func (c *Controller) RegisterPlayer(ctx context.Context, id model.TournamentID, displayName, epicID string, mmr *int) (*model.Registration, error) {
	t, err := c.storage.GetTournament(ctx, id)
	if err != nil {
		return nil, err
	}

	if t.Status != model.StatusOpen {
		return nil, model.ErrRegistrationClosed
	}
	if t.IsFull() {
		return nil, model.ErrTournamentFull
	}
	if t.FindRegistration(epicID) != nil {
		return nil, model.ErrAlreadyRegistered
	}

	var playerMMR int
	if mmr != nil {
		if *mmr < model.MinMMR || *mmr > model.MaxMMR {
			return nil, model.ErrInvalidMMR
		}
		playerMMR = *mmr
	} else {
		result, err := c.verifier.Verify(ctx, epicID)
		if err != nil {
			return nil, err
		}
		if !result.Exists {
			return nil, model.ErrEpicNotFound
		}
		playerMMR = result.MMR
	}

	reg := model.Registration{
		DisplayName: displayName,
		EpicID:      epicID,
		MMR:         playerMMR,
		Timestamp:   c.clock.Now(),
	}
	t.Registrations = append(t.Registrations, reg)

	if err := c.storage.SaveTournament(ctx, t); err != nil {
		return nil, err
	}

	return &reg, nil
}

// RemovePlayer deletes a registration. Creator only; open tournaments only.
func (c *Controller) RemovePlayer(ctx context.Context, id model.TournamentID, epicID, creatorID string) (*model.Registration, error) {
	t, err := c.storage.GetTournament(ctx, id)
	if err != nil {
		return nil, err
	}
	if !t.IsCreator(creatorID) {
		return nil, model.ErrNotCreator
	}
	if t.Status != model.StatusOpen {
		return nil, model.ErrRegistrationClosed
	}

	for i := range t.Registrations {
		if strings.EqualFold(t.Registrations[i].EpicID, epicID) {
			removed := t.Registrations[i]
			t.Registrations = append(t.Registrations[:i], t.Registrations[i+1:]...)
			if err := c.storage.SaveTournament(ctx, t); err != nil {
				return nil, err
			}
			return &removed, nil
		}
	}
	return nil, model.ErrPlayerNotFound
}

// AssignPlayer pins a registration to a team number for the next
// generation, or clears the pin when teamNumber is nil. Creator only;
// open tournaments only.
func (c *Controller) AssignPlayer(ctx context.Context, id model.TournamentID, epicID string, teamNumber *int, creatorID string) (*model.Registration, error) {
	t, err := c.storage.GetTournament(ctx, id)
	if err != nil {
		return nil, err
	}
	if !t.IsCreator(creatorID) {
		return nil, model.ErrNotCreator
	}
	if t.Status != model.StatusOpen {
		return nil, model.ErrRegistrationClosed
	}

	reg := t.FindRegistration(epicID)
	if reg == nil {
		return nil, model.ErrPlayerNotFound
	}

	reg.PreAssignedTeam = teamNumber

	if err := c.storage.SaveTournament(ctx, t); err != nil {
		return nil, err
	}
	return reg, nil
}

// EditMMR overrides a registration's rating. Creator only; frozen once
// teams have been generated.
func (c *Controller) EditMMR(ctx context.Context, id model.TournamentID, epicID string, mmr int, creatorID string) (*model.Registration, error) {
	if mmr < model.MinMMR || mmr > model.MaxMMR {
		return nil, model.ErrInvalidMMR
	}

	t, err := c.storage.GetTournament(ctx, id)
	if err != nil {
		return nil, err
	}
	if !t.IsCreator(creatorID) {
		return nil, model.ErrNotCreator
	}
	if t.Status != model.StatusOpen {
		return nil, model.ErrRegistrationClosed
	}

	reg := t.FindRegistration(epicID)
	if reg == nil {
		return nil, model.ErrPlayerNotFound
	}

	reg.MMR = mmr

	if err := c.storage.SaveTournament(ctx, t); err != nil {
		return nil, err
	}
	return reg, nil
}

// GenerateTeams trims the current registration pool and partitions it per
// the tournament's balance mode. Re-generation is allowed at any time so
// organizers can re-roll after roster changes; only TeamsGeneratedAt is
// write-once.
func (c *Controller) GenerateTeams(ctx context.Context, id model.TournamentID) (*model.Tournament, error) {
	t, err := c.storage.GetTournament(ctx, id)
	if err != nil {
		return nil, err
	}

	teams, removed := c.balancer.Generate(t.Registrations, t.TeamSize, t.BalanceMode)

	t.Teams = teams
	t.RemovedPlayers = removed
	t.Status = model.StatusGenerated
	if t.TeamsGeneratedAt == nil {
		now := c.clock.Now()
		t.TeamsGeneratedAt = &now
	}

	if err := c.storage.SaveTournament(ctx, t); err != nil {
		return nil, err
	}

	c.logger.Info("teams generated",
		slog.String("id", string(t.ID)),
		slog.Int("teams", len(teams)),
		slog.Int("removed", len(removed)),
	)

	return t, nil
}

// UpdateTeams overwrites the generated team composition with a manual
// edit. Average ratings are always recomputed server-side.
func (c *Controller) UpdateTeams(ctx context.Context, id model.TournamentID, teams []model.Team) (*model.Tournament, error) {
	t, err := c.storage.GetTournament(ctx, id)
	if err != nil {
		return nil, err
	}

	balancer.RecomputeAverages(teams)
	t.Teams = teams
	t.Status = model.StatusGenerated

	if err := c.storage.SaveTournament(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// DeleteTournament removes a tournament, freeing one of the creator's
// slots. Creator only.
func (c *Controller) DeleteTournament(ctx context.Context, id model.TournamentID, creatorID string) error {
	t, err := c.storage.GetTournament(ctx, id)
	if err != nil {
		return err
	}
	if !t.IsCreator(creatorID) {
		return model.ErrNotCreator
	}

	t.Status = model.StatusDeleted
	return c.storage.DeleteTournament(ctx, id)
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateTournament(ctx context.Context, params CreateParams) (*model.Tournament, error)
	GetTournament(ctx context.Context, id model.TournamentID) (*model.Tournament, error)
	ListPublic(ctx context.Context) ([]*model.Tournament, error)
	ResolveCode(ctx context.Context, code string) (*model.Tournament, error)
	RegisterPlayer(ctx context.Context, id model.TournamentID, displayName, epicID string, mmr *int) (*model.Registration, error)
	RemovePlayer(ctx context.Context, id model.TournamentID, epicID, creatorID string) (*model.Registration, error)
	AssignPlayer(ctx context.Context, id model.TournamentID, epicID string, teamNumber *int, creatorID string) (*model.Registration, error)
	EditMMR(ctx context.Context, id model.TournamentID, epicID string, mmr int, creatorID string) (*model.Registration, error)
	GenerateTeams(ctx context.Context, id model.TournamentID) (*model.Tournament, error)
	UpdateTeams(ctx context.Context, id model.TournamentID, teams []model.Team) (*model.Tournament, error)
	DeleteTournament(ctx context.Context, id model.TournamentID, creatorID string) error
}

var _ ControllerInterface = (*Controller)(nil)
