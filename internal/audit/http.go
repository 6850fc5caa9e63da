package audit

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// Reader lists recorded audit entries.
type Reader interface {
	Recent(ctx context.Context, limit int) ([]Entry, error)
}

// Handler serves the audit trail. Access control is enforced by the auth
// policy in front of it.
type Handler struct {
	reader Reader
}

// NewHandler constructs a Handler.
func NewHandler(reader Reader) (*Handler, error) {
	if reader == nil {
		return nil, errors.New("audit handler: nil reader")
	}
	return &Handler{reader: reader}, nil
}

// ServeHTTP handles GET /api/v1/audit?limit=N.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	entries, err := h.reader.Recent(r.Context(), limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "audit lookup failed")
		return
	}
	if entries == nil {
		entries = []Entry{}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"entries": entries,
	})
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": message,
	})
}
