package geocode

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"rainharvest-cloud/internal/observability/metrics"
)

// Handler serves taluka lookup requests.
type Handler struct {
	client *Client
}

// NewHandler constructs a Handler.
func NewHandler(client *Client) (*Handler, error) {
	if client == nil {
		return nil, errors.New("geocode handler: nil client")
	}
	return &Handler{client: client}, nil
}

// ServeHTTP answers GET /api/v1/geocode/talukas?lat=..&lng=..
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	lat, err := parseCoord(r, "lat", -90, 90)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	lng, err := parseCoord(r, "lng", -180, 180)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	regions, err := h.client.RegionsAt(r.Context(), lat, lng)
	if err != nil {
		metrics.IncGeocodeLookup(metrics.ResultError)
		respondError(w, http.StatusBadGateway, "boundary lookup failed")
		return
	}
	metrics.IncGeocodeLookup(metrics.ResultSuccess)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"regions": regions,
	})
}

func parseCoord(r *http.Request, key string, lo, hi float64) (float64, error) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return 0, errors.New(key + " is required")
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || parsed < lo || parsed > hi {
		return 0, errors.New(key + " must be a valid coordinate")
	}
	return parsed, nil
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": message,
	})
}
