package httpadapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"donation-kiosk/internal/core/sorting"
)

// handleDashboard returns the aggregated organization view. Sections that
// could not be computed are listed in sectionErrors; the response is still
// 200.
func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboard.Dashboard(r.Context(), chi.URLParam(r, "orgID"))
	if err != nil {
		h.writeError(w, "dashboard", err)
		return
	}
	h.writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) handleAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.dashboard.Alerts(r.Context(), chi.URLParam(r, "orgID"))
	if err != nil {
		h.writeError(w, "alerts", err)
		return
	}
	h.writeJSON(w, http.StatusOK, alerts)
}

func (h *Handler) handleAudit(w http.ResponseWriter, r *http.Request) {
	violations, err := h.dashboard.AuditAssignments(r.Context(), chi.URLParam(r, "orgID"))
	if err != nil {
		h.writeError(w, "assignment audit", err)
		return
	}
	h.writeJSON(w, http.StatusOK, violations)
}

type sortStateRequest struct {
	Current sorting.State `json:"current"`
	Click   string        `json:"click"`
}

// handleSortState advances a table's sort state for a header click.
func (h *Handler) handleSortState(w http.ResponseWriter, r *http.Request) {
	var req sortStateRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	h.writeJSON(w, http.StatusOK, req.Current.Click(req.Click))
}
