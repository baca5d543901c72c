package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"donation-kiosk/internal/core/port"
	"donation-kiosk/internal/core/sorting"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// encoding should rarely fail; the status line is already sent
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

// writeError maps use-case errors onto status codes. Unknown errors are
// logged and hidden behind a generic 500.
func (h *Handler) writeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, port.ErrNotFound):
		h.writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, port.ErrInvalidInput):
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		h.logger.Error(op+" error", slog.Any("error", err))
		h.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

// writeSyncResult answers a campaign write. A sync that left kiosks behind
// is reported as 207 with the failed kiosk ids; the retry is already queued.
func (h *Handler) writeSyncResult(w http.ResponseWriter, op string, status int, report *port.SyncReport, err error) {
	if err != nil && report != nil && len(report.Failed) > 0 {
		h.logger.Warn(op+" partially synced",
			slog.String("campaign_id", report.CampaignID),
			slog.Int("failed", len(report.Failed)),
			slog.Bool("queued", report.Queued))
		h.writeJSON(w, http.StatusMultiStatus, report)
		return
	}
	if err != nil {
		h.writeError(w, op, err)
		return
	}
	h.writeJSON(w, status, report)
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	return dec.Decode(v)
}

// sortParams reads ?sort=<dotted key>&dir=asc|desc. A key without a
// direction sorts ascending.
func sortParams(r *http.Request) (string, sorting.Direction) {
	q := r.URL.Query()
	key := strings.TrimSpace(q.Get("sort"))
	if key == "" {
		return "", sorting.None
	}
	dir := sorting.ParseDirection(q.Get("dir"))
	if dir == sorting.None {
		dir = sorting.Asc
	}
	return key, dir
}
