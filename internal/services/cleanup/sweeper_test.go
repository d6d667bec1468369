package cleanup

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/rlmatchup/rlmatchup-go/internal/dependencies/mocks"
	"github.com/rlmatchup/rlmatchup-go/internal/model"
	"github.com/rlmatchup/rlmatchup-go/internal/storage/memory"
	"github.com/rlmatchup/rlmatchup-go/internal/testutil"
)

type SweeperSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	sweeper *Sweeper
	ctx     context.Context
}

func TestSweeperSuite(t *testing.T) {
	suite.Run(t, new(SweeperSuite))
}

func (s *SweeperSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.sweeper = New(s.storage, s.clock, DefaultConfig(), testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *SweeperSuite) addOpen(id string, age time.Duration) {
	t := &model.Tournament{
		ID:        model.TournamentID(id),
		Code:      model.JoinCode(id),
		Name:      id,
		Status:    model.StatusOpen,
		CreatedAt: s.clock.Now().Add(-age),
	}
	s.Require().NoError(s.storage.SaveTournament(s.ctx, t))
}

func (s *SweeperSuite) addGenerated(id string, age time.Duration) {
	generatedAt := s.clock.Now().Add(-age)
	t := &model.Tournament{
		ID:               model.TournamentID(id),
		Code:             model.JoinCode(id),
		Name:             id,
		Status:           model.StatusGenerated,
		CreatedAt:        generatedAt.Add(-time.Hour),
		TeamsGeneratedAt: &generatedAt,
	}
	s.Require().NoError(s.storage.SaveTournament(s.ctx, t))
}

func (s *SweeperSuite) TestSweepEmptyStorage() {
	deleted, err := s.sweeper.Sweep(s.ctx)
	s.Require().NoError(err)
	s.Zero(deleted)
}

func (s *SweeperSuite) TestSweepKeepsFreshTournaments() {
	s.addOpen("open-fresh", 29*time.Minute)
	s.addGenerated("gen-fresh", 14*time.Minute)

	deleted, err := s.sweeper.Sweep(s.ctx)
	s.Require().NoError(err)
	s.Zero(deleted)

	all, _ := s.storage.ListTournaments(s.ctx)
	s.Len(all, 2)
}

func (s *SweeperSuite) TestSweepDeletesStaleOpenTournament() {
	s.addOpen("open-stale", 31*time.Minute)

	deleted, err := s.sweeper.Sweep(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, deleted)

	_, err = s.storage.GetTournament(s.ctx, "open-stale")
	s.ErrorIs(err, model.ErrTournamentNotFound)
}

func (s *SweeperSuite) TestSweepDeletesStaleGeneratedTournament() {
	s.addGenerated("gen-stale", 16*time.Minute)

	deleted, err := s.sweeper.Sweep(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, deleted)
}

func (s *SweeperSuite) TestGeneratedThresholdOverridesOpenThreshold() {
	// Old tournament, but teams were generated recently: the generated
	// threshold governs once TeamsGeneratedAt is set.
	generatedAt := s.clock.Now().Add(-10 * time.Minute)
	t := &model.Tournament{
		ID:               "gen-recent",
		Code:             "GENREC",
		Name:             "gen-recent",
		Status:           model.StatusGenerated,
		CreatedAt:        s.clock.Now().Add(-2 * time.Hour),
		TeamsGeneratedAt: &generatedAt,
	}
	s.Require().NoError(s.storage.SaveTournament(s.ctx, t))

	deleted, err := s.sweeper.Sweep(s.ctx)
	s.Require().NoError(err)
	s.Zero(deleted)
}

func (s *SweeperSuite) TestSweepMixedPool() {
	s.addOpen("open-fresh", 5*time.Minute)
	s.addOpen("open-stale", 45*time.Minute)
	s.addGenerated("gen-fresh", 5*time.Minute)
	s.addGenerated("gen-stale", 20*time.Minute)

	deleted, err := s.sweeper.Sweep(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, deleted)

	all, _ := s.storage.ListTournaments(s.ctx)
	s.Len(all, 2)
}

func (s *SweeperSuite) TestSweepBecomesStaleAsClockAdvances() {
	s.addOpen("open-1", 0)

	deleted, err := s.sweeper.Sweep(s.ctx)
	s.Require().NoError(err)
	s.Zero(deleted)

	s.clock.Advance(31 * time.Minute)

	deleted, err = s.sweeper.Sweep(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, deleted)
}

func (s *SweeperSuite) TestStartAndStop() {
	cfg := DefaultConfig()
	cfg.Interval = time.Hour
	sweeper := New(s.storage, s.clock, cfg, testutil.NopLogger())

	s.Require().NoError(sweeper.Start())
	s.NoError(sweeper.Stop())
}

func (s *SweeperSuite) TestStopWithoutStart() {
	s.NoError(s.sweeper.Stop())
}
