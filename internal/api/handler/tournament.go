package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/rlmatchup/rlmatchup-go/internal/api/request"
	"github.com/rlmatchup/rlmatchup-go/internal/api/response"
	"github.com/rlmatchup/rlmatchup-go/internal/model"
	"github.com/rlmatchup/rlmatchup-go/internal/services/tournament"
)

// CreatorIDHeader carries the caller's creator identity. That identity is
// nothing more than a string the creating client chose; the whole auth
// model is comparing it against the one stored on the tournament.
const CreatorIDHeader = "X-Creator-Id"

// creatorID extracts the caller's creator identity from a request
func creatorID(r *http.Request) string {
	if id := r.Header.Get(CreatorIDHeader); id != "" {
		return id
	}
	return r.URL.Query().Get("creatorId")
}

// TournamentHandler handles tournament-level endpoints
type TournamentHandler struct {
	controller *tournament.Controller
}

// NewTournamentHandler creates a new tournament handler
func NewTournamentHandler(controller *tournament.Controller) *TournamentHandler {
	return &TournamentHandler{controller: controller}
}

// Create handles POST /api/tournament/create
func (h *TournamentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateTournamentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Name == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}

	t, err := h.controller.CreateTournament(r.Context(), tournament.CreateParams{
		Name:        req.Name,
		MaxPlayers:  req.MaxPlayers,
		TeamSize:    req.TeamSize,
		Region:      req.Region,
		IsPublic:    req.IsPublic,
		BalanceMode: model.BalanceMode(req.BalanceMode),
		CreatorID:   req.CreatorID,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.CreateTournamentResponse{
		Success: true,
		ID:      string(t.ID),
		Code:    string(t.Code),
	})
}

// ListPublic handles GET /api/tournaments/public
func (h *TournamentHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	tournaments, err := h.controller.ListPublic(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	summaries := make([]response.TournamentSummary, len(tournaments))
	for i, t := range tournaments {
		summaries[i] = response.TournamentSummaryFromModel(t)
	}
	response.JSON(w, http.StatusOK, summaries)
}

// ResolveCode handles GET /api/tournament/code/{code}
func (h *TournamentHandler) ResolveCode(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	t, err := h.controller.ResolveCode(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ResolveCodeResponse{ID: string(t.ID)})
}

// Get handles GET /api/tournament/{id}
func (h *TournamentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.TournamentID(mux.Vars(r)["id"])

	t, err := h.controller.GetTournament(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	creatorView := r.URL.Query().Get("isCreator") == "true"
	response.JSON(w, http.StatusOK, response.TournamentFromModel(t, creatorView))
}

// Generate handles POST /api/tournament/{id}/generate
func (h *TournamentHandler) Generate(w http.ResponseWriter, r *http.Request) {
	id := model.TournamentID(mux.Vars(r)["id"])

	t, err := h.controller.GenerateTeams(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	teams := make([]response.Team, len(t.Teams))
	for i := range t.Teams {
		teams[i] = response.TeamFromModel(&t.Teams[i], true)
	}
	removed := make([]response.Registration, len(t.RemovedPlayers))
	for i := range t.RemovedPlayers {
		removed[i] = response.RegistrationFromModel(&t.RemovedPlayers[i], true, true)
	}

	response.JSON(w, http.StatusOK, response.GenerateResponse{
		Success:        true,
		Teams:          teams,
		RemovedPlayers: removed,
	})
}

// UpdateTeams handles POST /api/tournament/{id}/update-teams
func (h *TournamentHandler) UpdateTeams(w http.ResponseWriter, r *http.Request) {
	id := model.TournamentID(mux.Vars(r)["id"])

	var req request.UpdateTeamsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if _, err := h.controller.UpdateTeams(r.Context(), id, req.Teams); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SuccessResponse{Success: true})
}

// Delete handles DELETE /api/tournament/{id}
func (h *TournamentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := model.TournamentID(mux.Vars(r)["id"])

	if err := h.controller.DeleteTournament(r.Context(), id, creatorID(r)); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SuccessResponse{Success: true})
}
