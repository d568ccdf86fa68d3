package concierge

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	conciergeService "github.com/novawardrobe/concierge/internal/service/concierge"
	"github.com/novawardrobe/concierge/pkg/utils"
)

// Handler exposes the concierge session API and its websocket drive loop.
type Handler struct {
	svc *conciergeService.Service
}

// New creates the concierge handler.
func New(svc *conciergeService.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the concierge routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/concierge/steps", h.handleListSteps)
	r.Post("/concierge/session", h.handleCreateSession)
	r.Get("/concierge/session/{sessionID}/transcript", h.handleTranscript)
	r.Get("/concierge/ws/{sessionID}", h.handleWebSocket)
}

func (h *Handler) handleListSteps(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.svc.Steps())
}

func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.svc.CreateSession(r.Context())
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	state, err := h.svc.State(r.Context(), session.ID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	messages, err := h.svc.Transcript(r.Context(), session.ID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"sessionId": session.ID,
		"createdAt": session.CreatedAt,
		"messages":  messages,
		"state":     state,
	})
}

func (h *Handler) handleTranscript(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	messages, err := h.svc.Transcript(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, conciergeService.ErrSessionNotFound) {
			utils.RespondError(w, http.StatusNotFound, "session not found")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, messages)
}
