package tournament

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/rlmatchup/rlmatchup-go/internal/dependencies/mocks"
	"github.com/rlmatchup/rlmatchup-go/internal/model"
	"github.com/rlmatchup/rlmatchup-go/internal/services/balancer"
	"github.com/rlmatchup/rlmatchup-go/internal/services/rating"
	"github.com/rlmatchup/rlmatchup-go/internal/storage/memory"
	"github.com/rlmatchup/rlmatchup-go/internal/testutil"
)

type ControllerSuite struct {
	suite.Suite
	storage    *memory.Storage
	clock      *mocks.MockClock
	random     *mocks.MockRandom
	ratings    map[string]int
	controller *Controller
	ctx        context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.storage = memory.New()
	logger := testutil.NopLogger()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.ratings = map[string]int{}

	verifier := rating.VerifierFunc(func(ctx context.Context, epicID string) (*rating.Result, error) {
		mmr, ok := s.ratings[epicID]
		if !ok {
			return &rating.Result{Exists: false}, nil
		}
		return &rating.Result{Exists: true, MMR: mmr}, nil
	})

	s.controller = NewController(s.storage, balancer.New(s.random), verifier, s.clock, s.random, logger)
	s.ctx = context.Background()
}

func (s *ControllerSuite) createTournament(name string, maxPlayers, teamSize int, mode model.BalanceMode, creatorID string) *model.Tournament {
	s.random.QueueString(strings.ToUpper(name) + "-CODE")
	t, err := s.controller.CreateTournament(s.ctx, CreateParams{
		Name:        name,
		MaxPlayers:  maxPlayers,
		TeamSize:    teamSize,
		BalanceMode: mode,
		CreatorID:   creatorID,
	})
	s.Require().NoError(err)
	return t
}

func (s *ControllerSuite) register(id model.TournamentID, epicID string, mmr int) {
	_, err := s.controller.RegisterPlayer(s.ctx, id, epicID, epicID, &mmr)
	s.Require().NoError(err)
}

// CreateTournament tests

func (s *ControllerSuite) TestCreateTournamentSucceeds() {
	s.random.QueueString("AB2345")

	t, err := s.controller.CreateTournament(s.ctx, CreateParams{
		Name:       "Friday Night",
		MaxPlayers: 12,
		TeamSize:   3,
		IsPublic:   true,
		CreatorID:  "creator-1",
	})
	s.Require().NoError(err)

	s.NotEmpty(t.ID)
	s.Equal(model.JoinCode("AB2345"), t.Code)
	s.Equal(model.StatusOpen, t.Status)
	s.Equal(model.BalanceModeBalanced, t.BalanceMode)
	s.Equal(s.clock.Now(), t.CreatedAt)
	s.Empty(t.Registrations)
}

func (s *ControllerSuite) TestCreateTournamentIsPersisted() {
	t := s.createTournament("Friday Night", 12, 3, "", "creator-1")

	stored, err := s.storage.GetTournament(s.ctx, t.ID)
	s.Require().NoError(err)
	s.Equal(t.Name, stored.Name)
}

func (s *ControllerSuite) TestCreateTournamentRejectsBadTeamSize() {
	_, err := s.controller.CreateTournament(s.ctx, CreateParams{
		Name:       "Bad",
		MaxPlayers: 12,
		TeamSize:   0,
	})
	s.ErrorIs(err, model.ErrInvalidTeamSize)
}

func (s *ControllerSuite) TestCreateTournamentRejectsCapacityBelowTeamSize() {
	_, err := s.controller.CreateTournament(s.ctx, CreateParams{
		Name:       "Bad",
		MaxPlayers: 2,
		TeamSize:   3,
	})
	s.ErrorIs(err, model.ErrInvalidCapacity)
}

func (s *ControllerSuite) TestCreateTournamentRejectsFoldedNameCollision() {
	s.createTournament("Friday Night", 12, 3, "", "creator-1")

	s.random.QueueString("ZZ9999")
	_, err := s.controller.CreateTournament(s.ctx, CreateParams{
		Name:       "  friday   NIGHT ",
		MaxPlayers: 12,
		TeamSize:   3,
	})
	s.ErrorIs(err, model.ErrNameTaken)
}

func (s *ControllerSuite) TestCreateTournamentEnforcesCreatorLimit() {
	s.createTournament("First", 12, 3, "", "creator-1")
	s.createTournament("Second", 12, 3, "", "creator-1")

	s.random.QueueString("ZZ9999")
	_, err := s.controller.CreateTournament(s.ctx, CreateParams{
		Name:       "Third",
		MaxPlayers: 12,
		TeamSize:   3,
		CreatorID:  "creator-1",
	})
	s.ErrorIs(err, model.ErrCreatorLimit)
}

func (s *ControllerSuite) TestCreateTournamentDeleteFreesCreatorSlot() {
	first := s.createTournament("First", 12, 3, "", "creator-1")
	s.createTournament("Second", 12, 3, "", "creator-1")

	s.Require().NoError(s.controller.DeleteTournament(s.ctx, first.ID, "creator-1"))

	t := s.createTournament("Third", 12, 3, "", "creator-1")
	s.Equal("Third", t.Name)
}

func (s *ControllerSuite) TestCreateTournamentRetriesOnCodeCollision() {
	s.createTournament("First", 12, 3, "", "creator-1")

	// Queue the taken code first; the retry draws the next one.
	s.random.QueueString("FIRST-CODE", "FRESH1")
	t, err := s.controller.CreateTournament(s.ctx, CreateParams{
		Name:       "Second",
		MaxPlayers: 12,
		TeamSize:   3,
	})
	s.Require().NoError(err)
	s.Equal(model.JoinCode("FRESH1"), t.Code)
}

// ListPublic / ResolveCode tests

func (s *ControllerSuite) TestListPublicFiltersAndSorts() {
	a := s.createTournament("Alpha", 12, 3, "", "c1")
	s.clock.Advance(time.Minute)
	s.createTournament("Hidden", 12, 3, "", "c2") // not public
	s.clock.Advance(time.Minute)
	b := s.createTournament("Beta", 12, 3, "", "c3")

	// Only the ones created as public show up
	s.Require().NoError(s.markPublic(a.ID))
	s.Require().NoError(s.markPublic(b.ID))

	public, err := s.controller.ListPublic(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(public, 2)
	s.Equal("Alpha", public[0].Name)
	s.Equal("Beta", public[1].Name)
}

func (s *ControllerSuite) markPublic(id model.TournamentID) error {
	t, err := s.storage.GetTournament(s.ctx, id)
	if err != nil {
		return err
	}
	t.IsPublic = true
	return s.storage.SaveTournament(s.ctx, t)
}

func (s *ControllerSuite) TestListPublicExcludesGenerated() {
	t := s.createTournament("Alpha", 4, 2, "", "c1")
	s.Require().NoError(s.markPublic(t.ID))
	s.register(t.ID, "p1", 500)
	s.register(t.ID, "p2", 500)
	_, err := s.controller.GenerateTeams(s.ctx, t.ID)
	s.Require().NoError(err)

	public, err := s.controller.ListPublic(s.ctx)
	s.Require().NoError(err)
	s.Empty(public)
}

func (s *ControllerSuite) TestResolveCodeIsCaseInsensitive() {
	t := s.createTournament("Alpha", 12, 3, "", "c1")

	found, err := s.controller.ResolveCode(s.ctx, "alpha-code")
	s.Require().NoError(err)
	s.Equal(t.ID, found.ID)
}

func (s *ControllerSuite) TestResolveCodeUnknown() {
	_, err := s.controller.ResolveCode(s.ctx, "NOPE12")
	s.ErrorIs(err, model.ErrCodeNotFound)
}

// RegisterPlayer tests

func (s *ControllerSuite) TestRegisterPlayerWithExplicitMMR() {
	t := s.createTournament("Alpha", 12, 3, "", "c1")

	mmr := 1500
	reg, err := s.controller.RegisterPlayer(s.ctx, t.ID, "Player One", "epic-1", &mmr)
	s.Require().NoError(err)

	s.Equal("Player One", reg.DisplayName)
	s.Equal(1500, reg.MMR)
	s.Equal(s.clock.Now(), reg.Timestamp)

	stored, _ := s.storage.GetTournament(s.ctx, t.ID)
	s.Len(stored.Registrations, 1)
}

func (s *ControllerSuite) TestRegisterPlayerAcceptsMMRBounds() {
	t := s.createTournament("Alpha", 12, 3, "", "c1")

	low := model.MinMMR
	_, err := s.controller.RegisterPlayer(s.ctx, t.ID, "Low", "epic-low", &low)
	s.NoError(err)

	high := model.MaxMMR
	_, err = s.controller.RegisterPlayer(s.ctx, t.ID, "High", "epic-high", &high)
	s.NoError(err)
}

func (s *ControllerSuite) TestRegisterPlayerRejectsOutOfRangeMMR() {
	t := s.createTournament("Alpha", 12, 3, "", "c1")

	for _, mmr := range []int{-1, model.MaxMMR + 1} {
		v := mmr
		_, err := s.controller.RegisterPlayer(s.ctx, t.ID, "Bad", "epic-bad", &v)
		s.ErrorIs(err, model.ErrInvalidMMR)
	}
}

func (s *ControllerSuite) TestRegisterPlayerLooksUpRating() {
	t := s.createTournament("Alpha", 12, 3, "", "c1")
	s.ratings["epic-1"] = 1234

	reg, err := s.controller.RegisterPlayer(s.ctx, t.ID, "Player One", "epic-1", nil)
	s.Require().NoError(err)
	s.Equal(1234, reg.MMR)
}

func (s *ControllerSuite) TestRegisterPlayerUnknownEpicAccount() {
	t := s.createTournament("Alpha", 12, 3, "", "c1")

	_, err := s.controller.RegisterPlayer(s.ctx, t.ID, "Ghost", "epic-ghost", nil)
	s.ErrorIs(err, model.ErrEpicNotFound)
}

func (s *ControllerSuite) TestRegisterPlayerDuplicateHandleIsCaseInsensitive() {
	t := s.createTournament("Alpha", 12, 3, "", "c1")
	s.register(t.ID, "Foo", 500)

	mmr := 600
	_, err := s.controller.RegisterPlayer(s.ctx, t.ID, "Other", "foo", &mmr)
	s.ErrorIs(err, model.ErrAlreadyRegistered)
}

func (s *ControllerSuite) TestRegisterPlayerTournamentFull() {
	t := s.createTournament("Alpha", 3, 3, "", "c1")
	s.register(t.ID, "p1", 500)
	s.register(t.ID, "p2", 500)
	s.register(t.ID, "p3", 500)

	mmr := 500
	_, err := s.controller.RegisterPlayer(s.ctx, t.ID, "p4", "p4", &mmr)
	s.ErrorIs(err, model.ErrTournamentFull)
}

func (s *ControllerSuite) TestRegisterPlayerClosedAfterGeneration() {
	t := s.createTournament("Alpha", 4, 2, "", "c1")
	s.register(t.ID, "p1", 500)
	s.register(t.ID, "p2", 500)
	_, err := s.controller.GenerateTeams(s.ctx, t.ID)
	s.Require().NoError(err)

	mmr := 500
	_, err = s.controller.RegisterPlayer(s.ctx, t.ID, "p3", "p3", &mmr)
	s.ErrorIs(err, model.ErrRegistrationClosed)
}

func (s *ControllerSuite) TestRegisterPlayerUnknownTournament() {
	mmr := 500
	_, err := s.controller.RegisterPlayer(s.ctx, "missing", "p1", "p1", &mmr)
	s.ErrorIs(err, model.ErrTournamentNotFound)
}

// RemovePlayer / AssignPlayer / EditMMR tests

func (s *ControllerSuite) TestRemovePlayer() {
	t := s.createTournament("Alpha", 12, 3, "", "c1")
	s.register(t.ID, "p1", 500)

	removed, err := s.controller.RemovePlayer(s.ctx, t.ID, "P1", "c1")
	s.Require().NoError(err)
	s.Equal("p1", removed.EpicID)

	stored, _ := s.storage.GetTournament(s.ctx, t.ID)
	s.Empty(stored.Registrations)
}

func (s *ControllerSuite) TestRemovePlayerRequiresCreator() {
	t := s.createTournament("Alpha", 12, 3, "", "c1")
	s.register(t.ID, "p1", 500)

	_, err := s.controller.RemovePlayer(s.ctx, t.ID, "p1", "someone-else")
	s.ErrorIs(err, model.ErrNotCreator)
}

func (s *ControllerSuite) TestRemovePlayerNotRegistered() {
	t := s.createTournament("Alpha", 12, 3, "", "c1")

	_, err := s.controller.RemovePlayer(s.ctx, t.ID, "ghost", "c1")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *ControllerSuite) TestAssignPlayer() {
	t := s.createTournament("Alpha", 12, 3, "", "c1")
	s.register(t.ID, "p1", 500)

	team := 2
	reg, err := s.controller.AssignPlayer(s.ctx, t.ID, "p1", &team, "c1")
	s.Require().NoError(err)
	s.Require().NotNil(reg.PreAssignedTeam)
	s.Equal(2, *reg.PreAssignedTeam)

	stored, _ := s.storage.GetTournament(s.ctx, t.ID)
	s.Equal(2, *stored.Registrations[0].PreAssignedTeam)
}

func (s *ControllerSuite) TestAssignPlayerClearsPin() {
	t := s.createTournament("Alpha", 12, 3, "", "c1")
	s.register(t.ID, "p1", 500)

	team := 2
	_, err := s.controller.AssignPlayer(s.ctx, t.ID, "p1", &team, "c1")
	s.Require().NoError(err)

	reg, err := s.controller.AssignPlayer(s.ctx, t.ID, "p1", nil, "c1")
	s.Require().NoError(err)
	s.Nil(reg.PreAssignedTeam)
}

func (s *ControllerSuite) TestEditMMR() {
	t := s.createTournament("Alpha", 12, 3, "", "c1")
	s.register(t.ID, "p1", 500)

	reg, err := s.controller.EditMMR(s.ctx, t.ID, "p1", 1800, "c1")
	s.Require().NoError(err)
	s.Equal(1800, reg.MMR)

	stored, _ := s.storage.GetTournament(s.ctx, t.ID)
	s.Equal(1800, stored.Registrations[0].MMR)
}

func (s *ControllerSuite) TestEditMMRRejectsOutOfRange() {
	t := s.createTournament("Alpha", 12, 3, "", "c1")
	s.register(t.ID, "p1", 500)

	_, err := s.controller.EditMMR(s.ctx, t.ID, "p1", model.MaxMMR+1, "c1")
	s.ErrorIs(err, model.ErrInvalidMMR)
}

func (s *ControllerSuite) TestEditMMRFrozenAfterGeneration() {
	t := s.createTournament("Alpha", 4, 2, "", "c1")
	s.register(t.ID, "p1", 500)
	s.register(t.ID, "p2", 500)
	_, err := s.controller.GenerateTeams(s.ctx, t.ID)
	s.Require().NoError(err)

	_, err = s.controller.EditMMR(s.ctx, t.ID, "p1", 1800, "c1")
	s.ErrorIs(err, model.ErrRegistrationClosed)
}

// GenerateTeams / UpdateTeams tests

func (s *ControllerSuite) TestGenerateTeamsBalanced() {
	t := s.createTournament("Alpha", 12, 2, model.BalanceModeBalanced, "c1")
	s.register(t.ID, "p1", 1000)
	s.register(t.ID, "p2", 800)
	s.register(t.ID, "p3", 600)
	s.register(t.ID, "p4", 400)

	generated, err := s.controller.GenerateTeams(s.ctx, t.ID)
	s.Require().NoError(err)

	s.Equal(model.StatusGenerated, generated.Status)
	s.Require().Len(generated.Teams, 2)
	s.Equal(700, generated.Teams[0].AvgMMR)
	s.Equal(700, generated.Teams[1].AvgMMR)
	s.Empty(generated.RemovedPlayers)
	s.Require().NotNil(generated.TeamsGeneratedAt)
	s.Equal(s.clock.Now(), *generated.TeamsGeneratedAt)
}

func (s *ControllerSuite) TestGenerateTeamsTrimsRemainder() {
	t := s.createTournament("Alpha", 12, 3, model.BalanceModeBalanced, "c1")
	s.register(t.ID, "p1", 1000)
	s.register(t.ID, "p2", 1000)
	s.register(t.ID, "p3", 1000)
	s.register(t.ID, "p4", 10)

	generated, err := s.controller.GenerateTeams(s.ctx, t.ID)
	s.Require().NoError(err)

	s.Require().Len(generated.Teams, 1)
	s.Len(generated.Teams[0].Players, 3)
	s.Require().Len(generated.RemovedPlayers, 1)
	s.Equal("p4", generated.RemovedPlayers[0].EpicID)
}

func (s *ControllerSuite) TestGenerateTeamsTimestampIsWriteOnce() {
	t := s.createTournament("Alpha", 4, 2, "", "c1")
	s.register(t.ID, "p1", 500)
	s.register(t.ID, "p2", 500)

	first, err := s.controller.GenerateTeams(s.ctx, t.ID)
	s.Require().NoError(err)
	firstAt := *first.TeamsGeneratedAt

	s.clock.Advance(5 * time.Minute)
	second, err := s.controller.GenerateTeams(s.ctx, t.ID)
	s.Require().NoError(err)

	s.Equal(firstAt, *second.TeamsGeneratedAt)
}

func (s *ControllerSuite) TestUpdateTeamsRecomputesAverages() {
	t := s.createTournament("Alpha", 4, 2, "", "c1")
	s.register(t.ID, "p1", 1000)
	s.register(t.ID, "p2", 501)

	generated, err := s.controller.GenerateTeams(s.ctx, t.ID)
	s.Require().NoError(err)
	s.Require().Len(generated.Teams, 1)

	// Swap in a hand-edited composition with a bogus average
	edited := []model.Team{
		{TeamNumber: 1, Players: generated.Teams[0].Players, AvgMMR: 9999},
	}

	updated, err := s.controller.UpdateTeams(s.ctx, t.ID, edited)
	s.Require().NoError(err)
	s.Equal(751, updated.Teams[0].AvgMMR)
}

// DeleteTournament tests

func (s *ControllerSuite) TestDeleteTournament() {
	t := s.createTournament("Alpha", 12, 3, "", "c1")

	s.Require().NoError(s.controller.DeleteTournament(s.ctx, t.ID, "c1"))

	_, err := s.storage.GetTournament(s.ctx, t.ID)
	s.ErrorIs(err, model.ErrTournamentNotFound)
}

func (s *ControllerSuite) TestDeleteTournamentRequiresCreator() {
	t := s.createTournament("Alpha", 12, 3, "", "c1")

	err := s.controller.DeleteTournament(s.ctx, t.ID, "someone-else")
	s.ErrorIs(err, model.ErrNotCreator)
}

func (s *ControllerSuite) TestDeleteTournamentWithoutCreatorAcceptsAnyone() {
	t := s.createTournament("Alpha", 12, 3, "", "")

	s.NoError(s.controller.DeleteTournament(s.ctx, t.ID, "anyone"))
}
