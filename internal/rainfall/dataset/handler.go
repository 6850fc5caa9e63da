package dataset

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"rainharvest-cloud/internal/observability/metrics"
)

// Handler serves district rainfall lookups from the bundled dataset.
type Handler struct {
	data *Dataset
}

// NewHandler constructs a Handler.
func NewHandler(data *Dataset) (*Handler, error) {
	if data == nil {
		return nil, errors.New("dataset handler: nil dataset")
	}
	return &Handler{data: data}, nil
}

// ServeHTTP handles GET /api/v1/rainfall/districts/{name}.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	name := strings.TrimPrefix(r.URL.Path, "/api/v1/rainfall/districts/")
	if name == "" || strings.Contains(name, "/") {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	start := time.Now()
	entry, err := h.data.Lookup(name)
	if err != nil {
		metrics.ObserveRainfallLookup("dataset", metrics.ResultError, time.Since(start))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"message": "district not found in dataset",
		})
		return
	}
	metrics.ObserveRainfallLookup("dataset", metrics.ResultSuccess, time.Since(start))

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success":     true,
		"district":    entry.District,
		"state":       entry.State,
		"rainfall_mm": entry.RainfallMM,
	})
}
