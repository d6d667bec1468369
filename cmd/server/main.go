package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/rlmatchup/rlmatchup-go/internal/api"
	"github.com/rlmatchup/rlmatchup-go/internal/factory"
	"github.com/rlmatchup/rlmatchup-go/internal/services/rating"
	redisstorage "github.com/rlmatchup/rlmatchup-go/internal/storage/redis"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ratingCfg := rating.DefaultConfig()
	ratingCfg.APIKey = os.Getenv("TRACKER_API_KEY")
	if url := os.Getenv("TRACKER_API_URL"); url != "" {
		ratingCfg.BaseURL = url
	}
	if ratingCfg.APIKey == "" {
		logger.Warn("TRACKER_API_KEY not set, registrations without an explicit mmr will use demo ratings")
	}

	// Build factory config from environment
	cfg := factory.Config{
		Logger:       logger,
		StorageType:  os.Getenv("STORAGE_TYPE"),
		RatingConfig: ratingCfg,
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start the stale-tournament sweeper
	if err := app.Sweeper.Start(); err != nil {
		logger.Error("failed to start cleanup sweeper", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = app.Sweeper.Stop() }()

	// Create API router
	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:               logger,
		TournamentController: app.TournamentController,
	})

	// Combine the API with the static frontend
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", http.FileServer(http.Dir(staticDir())))

	// Create server
	serverConfig := api.DefaultServerConfig()
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			serverConfig.Port = p
		}
	}
	server := api.NewServer(mux, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}

// staticDir resolves the directory holding the static frontend
func staticDir() string {
	if dir := os.Getenv("STATIC_DIR"); dir != "" {
		return dir
	}
	return "public"
}
