package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	conciergeHandler "github.com/novawardrobe/concierge/internal/handler/concierge"
	leadHandler "github.com/novawardrobe/concierge/internal/handler/lead"
	middlewarePkg "github.com/novawardrobe/concierge/internal/middleware"
	leadModel "github.com/novawardrobe/concierge/internal/model/lead"
	conciergeService "github.com/novawardrobe/concierge/internal/service/concierge"
	intakeService "github.com/novawardrobe/concierge/internal/service/intake"
	"github.com/novawardrobe/concierge/pkg/utils"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(conciergeSvc *conciergeService.Service, intakeSvc *intakeService.Service, store leadModel.Store, production bool) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	leads := leadHandler.New(intakeSvc, store, production)
	concierge := conciergeHandler.New(conciergeSvc)

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		leads.RegisterRoutes(api)
		concierge.RegisterRoutes(api)
	})

	return r
}
