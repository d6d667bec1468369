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

// PlayerHandler handles per-registration endpoints
type PlayerHandler struct {
	controller *tournament.Controller
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(controller *tournament.Controller) *PlayerHandler {
	return &PlayerHandler{controller: controller}
}

// Register handles POST /api/tournament/{id}/register
func (h *PlayerHandler) Register(w http.ResponseWriter, r *http.Request) {
	id := model.TournamentID(mux.Vars(r)["id"])

	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.EpicID == "" {
		WriteError(w, NewInvalidRequestError("epicId is required"))
		return
	}
	if req.DisplayName == "" {
		req.DisplayName = req.EpicID
	}

	reg, err := h.controller.RegisterPlayer(r.Context(), id, req.DisplayName, req.EpicID, req.MMR)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RegisterResponse{
		Success: true,
		MMR:     reg.MMR,
	})
}

// Remove handles DELETE /api/tournament/{id}/player/{epicId}
func (h *PlayerHandler) Remove(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := model.TournamentID(vars["id"])
	epicID := vars["epicId"]

	removed, err := h.controller.RemovePlayer(r.Context(), id, epicID, creatorID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerResponse{
		Success: true,
		Player:  response.RegistrationFromModel(removed, true, true),
	})
}

// Assign handles POST /api/tournament/{id}/player/{epicId}/assign
func (h *PlayerHandler) Assign(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := model.TournamentID(vars["id"])
	epicID := vars["epicId"]

	var req request.AssignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	reg, err := h.controller.AssignPlayer(r.Context(), id, epicID, req.TeamNumber, creatorID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerResponse{
		Success: true,
		Player:  response.RegistrationFromModel(reg, true, true),
	})
}

// EditMMR handles PATCH /api/tournament/{id}/player/{epicId}/mmr
func (h *PlayerHandler) EditMMR(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := model.TournamentID(vars["id"])
	epicID := vars["epicId"]

	var req request.EditMMRRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.MMR == nil {
		WriteError(w, NewInvalidRequestError("mmr is required"))
		return
	}

	reg, err := h.controller.EditMMR(r.Context(), id, epicID, *req.MMR, creatorID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerResponse{
		Success: true,
		Player:  response.RegistrationFromModel(reg, true, true),
	})
}
