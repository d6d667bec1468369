package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/rlmatchup/rlmatchup-go/internal/api/handler"
	"github.com/rlmatchup/rlmatchup-go/internal/api/middleware"
	"github.com/rlmatchup/rlmatchup-go/internal/services/tournament"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger               *slog.Logger
	TournamentController *tournament.Controller
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	tournamentHandler := handler.NewTournamentHandler(cfg.TournamentController)
	playerHandler := handler.NewPlayerHandler(cfg.TournamentController)

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Tournament routes
	api.HandleFunc("/tournament/create", tournamentHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/tournaments/public", tournamentHandler.ListPublic).Methods(http.MethodGet)
	api.HandleFunc("/tournament/code/{code}", tournamentHandler.ResolveCode).Methods(http.MethodGet)
	api.HandleFunc("/tournament/{id}", tournamentHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/tournament/{id}", tournamentHandler.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/tournament/{id}/generate", tournamentHandler.Generate).Methods(http.MethodPost)
	api.HandleFunc("/tournament/{id}/update-teams", tournamentHandler.UpdateTeams).Methods(http.MethodPost)

	// Player routes
	api.HandleFunc("/tournament/{id}/register", playerHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/tournament/{id}/player/{epicId}", playerHandler.Remove).Methods(http.MethodDelete)
	api.HandleFunc("/tournament/{id}/player/{epicId}/assign", playerHandler.Assign).Methods(http.MethodPost)
	api.HandleFunc("/tournament/{id}/player/{epicId}/mmr", playerHandler.EditMMR).Methods(http.MethodPatch)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
