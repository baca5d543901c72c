package httpadapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"donation-kiosk/internal/core/domain"
	"donation-kiosk/internal/core/sorting"
)

func (h *Handler) handleListKiosks(w http.ResponseWriter, r *http.Request) {
	list, err := h.kiosks.ListKiosks(r.Context(), chi.URLParam(r, "orgID"))
	if err != nil {
		h.writeError(w, "list kiosks", err)
		return
	}
	key, dir := sortParams(r)
	h.writeJSON(w, http.StatusOK, sorting.Sort(list, key, dir))
}

func (h *Handler) handleGetKiosk(w http.ResponseWriter, r *http.Request) {
	k, err := h.kiosks.GetKiosk(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, "get kiosk", err)
		return
	}
	h.writeJSON(w, http.StatusOK, k)
}

// handleCreateKiosk registers a kiosk. Campaign links are made from the
// campaign side, so any assignedCampaigns in the body are ignored.
func (h *Handler) handleCreateKiosk(w http.ResponseWriter, r *http.Request) {
	var k domain.Kiosk
	if err := decodeJSON(r, &k); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	k.OrgID = chi.URLParam(r, "orgID")
	if err := h.kiosks.CreateKiosk(r.Context(), &k); err != nil {
		h.writeError(w, "create kiosk", err)
		return
	}
	h.writeJSON(w, http.StatusCreated, k)
}

func (h *Handler) handleUpdateKiosk(w http.ResponseWriter, r *http.Request) {
	var k domain.Kiosk
	if err := decodeJSON(r, &k); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	k.ID = chi.URLParam(r, "id")
	if err := h.kiosks.UpdateKiosk(r.Context(), &k); err != nil {
		h.writeError(w, "update kiosk", err)
		return
	}
	updated, err := h.kiosks.GetKiosk(r.Context(), k.ID)
	if err != nil {
		h.writeError(w, "get kiosk", err)
		return
	}
	h.writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) handleHeartbeat(w http.ResponseWriter, r *http.Request) {
	k, err := h.kiosks.Heartbeat(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, "kiosk heartbeat", err)
		return
	}
	h.writeJSON(w, http.StatusOK, k)
}
