package httpadapter

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"donation-kiosk/internal/core/port"
)

// Deps bundles the use cases served over HTTP. Metrics is optional and is
// mounted at /metrics when set. RateLimit of zero disables limiting.
type Deps struct {
	Campaigns port.CampaignUseCase
	Kiosks    port.KioskUseCase
	Donations port.DonationUseCase
	Dashboard port.DashboardUseCase
	Metrics   http.Handler
	RateLimit float64
	RateBurst int
}

// Handler contains dependencies and routes. It is an inbound adapter for
// HTTP. Routes are registered on a chi.Router for convenient method
// handling.
type Handler struct {
	campaigns port.CampaignUseCase
	kiosks    port.KioskUseCase
	donations port.DonationUseCase
	dashboard port.DashboardUseCase
	logger    *slog.Logger
	router    chi.Router
}

// NewHandler creates a handler with all routes configured.
func NewHandler(deps Deps, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	h := &Handler{
		campaigns: deps.Campaigns,
		kiosks:    deps.Kiosks,
		donations: deps.Donations,
		dashboard: deps.Dashboard,
		logger:    logger,
	}
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	if deps.Metrics != nil {
		r.Handle("/metrics", deps.Metrics)
	}

	r.Route("/api/v1", func(r chi.Router) {
		if deps.RateLimit > 0 {
			r.Use(RateLimiter(deps.RateLimit, deps.RateBurst))
		}
		r.Post("/sort-state", h.handleSortState)

		r.Route("/orgs/{orgID}", func(r chi.Router) {
			r.Get("/dashboard", h.handleDashboard)
			r.Get("/alerts", h.handleAlerts)
			r.Get("/assignments/audit", h.handleAudit)
			r.Get("/campaigns", h.handleListCampaigns)
			r.Post("/campaigns", h.handleCreateCampaign)
			r.Get("/kiosks", h.handleListKiosks)
			r.Post("/kiosks", h.handleCreateKiosk)
			r.Get("/donations", h.handleListDonations)
			r.Post("/donations", h.handleRecordDonation)
		})

		r.Route("/campaigns/{id}", func(r chi.Router) {
			r.Get("/", h.handleGetCampaign)
			r.Put("/", h.handleUpdateCampaign)
			r.Delete("/", h.handleDeleteCampaign)
			r.Post("/sync", h.handleSyncCampaign)
		})

		r.Route("/kiosks/{id}", func(r chi.Router) {
			r.Get("/", h.handleGetKiosk)
			r.Put("/", h.handleUpdateKiosk)
			r.Post("/heartbeat", h.handleHeartbeat)
		})
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}
