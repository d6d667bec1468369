package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/rlmatchup/rlmatchup-go/internal/dependencies/clock"
	"github.com/rlmatchup/rlmatchup-go/internal/dependencies/random"
	"github.com/rlmatchup/rlmatchup-go/internal/services/balancer"
	"github.com/rlmatchup/rlmatchup-go/internal/services/cleanup"
	"github.com/rlmatchup/rlmatchup-go/internal/services/rating"
	"github.com/rlmatchup/rlmatchup-go/internal/services/tournament"
	"github.com/rlmatchup/rlmatchup-go/internal/storage"
	"github.com/rlmatchup/rlmatchup-go/internal/storage/memory"
	redisstorage "github.com/rlmatchup/rlmatchup-go/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	BalancerService      *balancer.Service
	RatingService        rating.Verifier
	TournamentController *tournament.Controller
	Sweeper              *cleanup.Sweeper
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// RatingConfig holds tracker API settings (optional)
	// If zero value, defaults to rating.DefaultConfig()
	RatingConfig rating.Config
	// CleanupConfig holds sweep thresholds (optional)
	// If zero value, defaults to cleanup.DefaultConfig()
	CleanupConfig cleanup.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	ratingCfg := cfg.RatingConfig
	if ratingCfg.BaseURL == "" {
		ratingCfg.BaseURL = rating.DefaultConfig().BaseURL
	}
	verifier := rating.New(ratingCfg, rnd, logger)

	cleanupCfg := cfg.CleanupConfig
	if cleanupCfg.Interval == 0 {
		cleanupCfg = cleanup.DefaultConfig()
	}

	return newWithDependencies(store, clk, rnd, verifier, cleanupCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	verifier rating.Verifier,
	cleanupCfg cleanup.Config,
	logger *slog.Logger,
) *App {
	balancerService := balancer.New(rnd)
	tournamentController := tournament.NewController(store, balancerService, verifier, clk, rnd, logger)
	sweeper := cleanup.New(store, clk, cleanupCfg, logger)

	return &App{
		Storage:              store,
		Clock:                clk,
		Random:               rnd,
		BalancerService:      balancerService,
		RatingService:        verifier,
		TournamentController: tournamentController,
		Sweeper:              sweeper,
	}
}
