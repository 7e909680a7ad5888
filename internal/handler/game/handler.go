// Package game exposes the game operations over HTTP.
package game

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quibblegames/twentyq/backend/internal/model/game"
	"github.com/quibblegames/twentyq/backend/internal/service/ai"
	gameservice "github.com/quibblegames/twentyq/backend/internal/service/game"
	"github.com/quibblegames/twentyq/backend/pkg/utils"
)

// Handler adapts the game service to HTTP.
type Handler struct {
	svc *gameservice.Service
}

// New creates the game handler.
func New(svc *gameservice.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the game endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/games/player/start", h.handleStartPlayer)
	r.Post("/games/player/{sessionID}/question", h.handleQuestion)
	r.Get("/games/player/{sessionID}/hint", h.handleHint)
	r.Post("/games/ai/start", h.handleStartAI)
	r.Post("/games/ai/{sessionID}/answer", h.handleAnswer)
}

func (h *Handler) handleStartPlayer(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.StartPlayerGame(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, result)
}

func (h *Handler) handleQuestion(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Input string `json:"input"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reply, err := h.svc.HandleQuestion(r.Context(), chi.URLParam(r, "sessionID"), payload.Input)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, reply)
}

func (h *Handler) handleHint(w http.ResponseWriter, r *http.Request) {
	hintType := game.HintType(r.URL.Query().Get("type"))
	if hintType != "" && !game.ValidHintType(hintType) {
		utils.RespondError(w, http.StatusBadRequest, "unknown hint type")
		return
	}

	hint, err := h.svc.GetHint(r.Context(), chi.URLParam(r, "sessionID"), hintType)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, hint)
}

func (h *Handler) handleStartAI(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.StartAIGame(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, result)
}

func (h *Handler) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Answer string `json:"answer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reply, err := h.svc.HandleAnswer(r.Context(), chi.URLParam(r, "sessionID"), payload.Answer)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, reply)
}

// respondServiceError maps the service error taxonomy to HTTP statuses.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, gameservice.ErrMissingArguments):
		utils.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, gameservice.ErrSessionNotFound):
		utils.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, gameservice.ErrNoHintData):
		utils.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, gameservice.ErrInvalidSessionType):
		utils.RespondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, ai.ErrGeneration):
		utils.RespondError(w, http.StatusBadGateway, "model generation failed")
	default:
		utils.RespondError(w, http.StatusInternalServerError, "internal error")
	}
}
