package httpadapter

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"donation-kiosk/internal/core/domain"
	"donation-kiosk/internal/core/sorting"
)

// handleListDonations returns the newest donations of an organization. The
// optional limit is capped by the use case; sort/dir reorder the page.
func (h *Handler) handleListDonations(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}
	list, err := h.donations.RecentDonations(r.Context(), chi.URLParam(r, "orgID"), limit)
	if err != nil {
		h.writeError(w, "list donations", err)
		return
	}
	key, dir := sortParams(r)
	h.writeJSON(w, http.StatusOK, sorting.Sort(list, key, dir))
}

func (h *Handler) handleRecordDonation(w http.ResponseWriter, r *http.Request) {
	var d domain.Donation
	if err := decodeJSON(r, &d); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	d.OrgID = chi.URLParam(r, "orgID")
	if err := h.donations.RecordDonation(r.Context(), &d); err != nil {
		h.writeError(w, "record donation", err)
		return
	}
	h.writeJSON(w, http.StatusCreated, d)
}
