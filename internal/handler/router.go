package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/voicedesk/voicedesk/internal/handler/session"
	"github.com/voicedesk/voicedesk/internal/handler/widgets"
	"github.com/voicedesk/voicedesk/internal/middleware"
	"github.com/voicedesk/voicedesk/pkg/utils"
)

// NewRouter wires HTTP routes to the assistant core.
func NewRouter(sessionHandler *session.Handler, widgetsHandler *widgets.Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS)

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			utils.RespondJSON(w, http.StatusOK, map[string]string{
				"status":  "healthy",
				"service": "voicedesk",
			})
		})

		sessionHandler.RegisterRoutes(api)
		widgetsHandler.RegisterRoutes(api)
	})

	return r
}
