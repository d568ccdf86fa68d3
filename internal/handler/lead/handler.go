package lead

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	leadModel "github.com/novawardrobe/concierge/internal/model/lead"
	intakeService "github.com/novawardrobe/concierge/internal/service/intake"
	"github.com/novawardrobe/concierge/pkg/utils"
)

// Handler exposes the lead intake endpoint and the dev read-back path.
type Handler struct {
	intakeSvc  *intakeService.Service
	store      leadModel.Store
	production bool
}

// New creates the lead handler. In production the read-back path returns
// an empty list without touching storage.
func New(intakeSvc *intakeService.Service, store leadModel.Store, production bool) *Handler {
	return &Handler{
		intakeSvc:  intakeSvc,
		store:      store,
		production: production,
	}
}

// RegisterRoutes mounts the lead routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/leads", h.handleSubmit)
	r.Get("/leads", h.handleList)
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var payload leadModel.Payload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid payload.")
		return
	}

	score, err := h.intakeSvc.Submit(r.Context(), payload)
	if err != nil {
		var verr *intakeService.ValidationError
		if errors.As(err, &verr) {
			utils.RespondError(w, http.StatusUnprocessableEntity, verr.Error())
			return
		}
		log.Printf("[leads] submit failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "Submission failed.")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"score":   score,
	})
}

// handleList is a local-development convenience; it never errors, it just
// degrades to an empty list.
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	records := []leadModel.Record{}

	if !h.production {
		all, err := h.store.All(r.Context())
		if err != nil {
			log.Printf("[leads] failed to read lead store: %v", err)
		} else if all != nil {
			records = all
		}
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"leads":   records,
	})
}
