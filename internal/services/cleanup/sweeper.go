package cleanup

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/rlmatchup/rlmatchup-go/internal/dependencies/clock"
	"github.com/rlmatchup/rlmatchup-go/internal/model"
	"github.com/rlmatchup/rlmatchup-go/internal/storage"
)

// Config holds sweep scheduling and age thresholds
type Config struct {
	// Interval between sweeps
	Interval time.Duration
	// GeneratedTTL is how long a tournament lives after team generation
	GeneratedTTL time.Duration
	// OpenTTL is how long a tournament may stay open without generating teams
	OpenTTL time.Duration
}

// DefaultConfig returns the standard sweep thresholds
func DefaultConfig() Config {
	return Config{
		Interval:     time.Minute,
		GeneratedTTL: 15 * time.Minute,
		OpenTTL:      30 * time.Minute,
	}
}

// Sweeper periodically deletes stale tournaments. It scans every record on
// each pass and deletes best-effort: a record mutated or removed between
// the scan and the delete is simply missed until the next pass.
type Sweeper struct {
	storage   storage.Storage
	clock     clock.Clock
	cfg       Config
	logger    *slog.Logger
	scheduler gocron.Scheduler
}

// New creates a new sweeper
func New(store storage.Storage, clk clock.Clock, cfg Config, logger *slog.Logger) *Sweeper {
	return &Sweeper{
		storage: store,
		clock:   clk,
		cfg:     cfg,
		logger:  logger,
	}
}

// Start schedules periodic sweeps until Stop is called
func (s *Sweeper) Start() error {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(s.cfg.Interval),
		gocron.NewTask(func() {
			deleted, err := s.Sweep(context.Background())
			if err != nil {
				s.logger.Error("cleanup sweep failed", slog.String("error", err.Error()))
				return
			}
			if deleted > 0 {
				s.logger.Info("cleanup sweep", slog.Int("deleted", deleted))
			}
		}),
	)
	if err != nil {
		return err
	}

	sched.Start()
	s.scheduler = sched
	return nil
}

// Stop halts the scheduler
func (s *Sweeper) Stop() error {
	if s.scheduler == nil {
		return nil
	}
	return s.scheduler.Shutdown()
}

// Sweep runs a single pass and returns how many tournaments were deleted
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	tournaments, err := s.storage.ListTournaments(ctx)
	if err != nil {
		return 0, err
	}

	now := s.clock.Now()
	deleted := 0
	for _, t := range tournaments {
		if !s.isStale(t, now) {
			continue
		}
		if err := s.storage.DeleteTournament(ctx, t.ID); err != nil {
			s.logger.Warn("failed to delete stale tournament",
				slog.String("id", string(t.ID)),
				slog.String("error", err.Error()),
			)
			continue
		}
		deleted++
	}
	return deleted, nil
}

func (s *Sweeper) isStale(t *model.Tournament, now time.Time) bool {
	if t.TeamsGeneratedAt != nil {
		return now.Sub(*t.TeamsGeneratedAt) > s.cfg.GeneratedTTL
	}
	return now.Sub(t.CreatedAt) > s.cfg.OpenTTL
}
