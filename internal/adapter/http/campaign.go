package httpadapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"donation-kiosk/internal/core/domain"
	"donation-kiosk/internal/core/sorting"
)

func (h *Handler) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	list, err := h.campaigns.ListCampaigns(r.Context(), chi.URLParam(r, "orgID"))
	if err != nil {
		h.writeError(w, "list campaigns", err)
		return
	}
	key, dir := sortParams(r)
	h.writeJSON(w, http.StatusOK, sorting.Sort(list, key, dir))
}

func (h *Handler) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	c, err := h.campaigns.GetCampaign(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, "get campaign", err)
		return
	}
	h.writeJSON(w, http.StatusOK, c)
}

// handleCreateCampaign creates a campaign in the path organization and links
// its assigned kiosks.
func (h *Handler) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	var c domain.Campaign
	if err := decodeJSON(r, &c); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	c.OrgID = chi.URLParam(r, "orgID")
	report, err := h.campaigns.CreateCampaign(r.Context(), &c)
	h.writeSyncResult(w, "create campaign", http.StatusCreated, report, err)
}

// handleUpdateCampaign replaces the editable fields of a campaign. Kiosks
// added to or dropped from assignedKiosks are synced before responding.
func (h *Handler) handleUpdateCampaign(w http.ResponseWriter, r *http.Request) {
	var c domain.Campaign
	if err := decodeJSON(r, &c); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	c.ID = chi.URLParam(r, "id")
	report, err := h.campaigns.UpdateCampaign(r.Context(), &c)
	h.writeSyncResult(w, "update campaign", http.StatusOK, report, err)
}

func (h *Handler) handleDeleteCampaign(w http.ResponseWriter, r *http.Request) {
	report, err := h.campaigns.DeleteCampaign(r.Context(), chi.URLParam(r, "id"))
	h.writeSyncResult(w, "delete campaign", http.StatusOK, report, err)
}

type syncRequest struct {
	Desired  domain.AssignmentList `json:"desired"`
	Previous domain.AssignmentList `json:"previous"`
}

// handleSyncCampaign repairs the kiosk side of a campaign. desired must be
// the stored assignment; previous lists extra kiosks to unlink. Repeating
// the same request is harmless.
func (h *Handler) handleSyncCampaign(w http.ResponseWriter, r *http.Request) {
	var req syncRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	report, err := h.campaigns.SyncAssignments(r.Context(), chi.URLParam(r, "id"), req.Desired, req.Previous)
	h.writeSyncResult(w, "sync campaign", http.StatusOK, report, err)
}
