// Package widgets serves the side-panel data to the browser shell. Widget
// failures degrade to fallback content; they never break the chat panel.
package widgets

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/voicedesk/voicedesk/internal/dashboard"
	dashmodel "github.com/voicedesk/voicedesk/internal/model/dashboard"
	"github.com/voicedesk/voicedesk/pkg/utils"
)

// Fetcher is the slice of the dashboard client this handler uses, an
// interface so tests can substitute fakes.
type Fetcher interface {
	FetchEmails(ctx context.Context) ([]dashmodel.EmailItem, error)
	FetchCalendar(ctx context.Context) ([]dashmodel.CalendarEvent, error)
	FetchWeather(ctx context.Context) (dashmodel.WeatherSnapshot, error)
}

// Handler exposes the widget REST surface.
type Handler struct {
	fetcher Fetcher
}

// New creates the widgets handler over the data backend client.
func New(fetcher Fetcher) *Handler {
	return &Handler{fetcher: fetcher}
}

// RegisterRoutes mounts the widget endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/dashboard", func(dash chi.Router) {
		dash.Get("/emails", h.handleEmails)
		dash.Get("/calendar", h.handleCalendar)
		dash.Get("/weather", h.handleWeather)
	})
}

// handleEmails returns the inbox items, or an empty list when the upstream
// is unreachable.
func (h *Handler) handleEmails(w http.ResponseWriter, r *http.Request) {
	items, err := h.fetcher.FetchEmails(r.Context())
	if err != nil {
		log.Printf("[widgets] email fetch failed: %v", err)
		items = []dashmodel.EmailItem{}
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{"emails": items})
}

// handleCalendar returns upcoming events, falling back to the static seed
// schedule when the upstream is unreachable.
func (h *Handler) handleCalendar(w http.ResponseWriter, r *http.Request) {
	events, err := h.fetcher.FetchCalendar(r.Context())
	if err != nil {
		log.Printf("[widgets] calendar fetch failed: %v", err)
		events = dashboard.SeedCalendar()
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{"events": events})
}

// handleWeather returns the current snapshot; failures surface as an
// unavailable snapshot, never as an error status.
func (h *Handler) handleWeather(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.fetcher.FetchWeather(r.Context())
	if err != nil {
		log.Printf("[widgets] weather fetch failed: %v", err)
		snapshot = dashmodel.WeatherSnapshot{Available: false}
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{"weather": snapshot})
}
