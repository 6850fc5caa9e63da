package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"rainharvest-cloud/internal/auth"
	locationsapp "rainharvest-cloud/internal/locations/application"
	locations "rainharvest-cloud/internal/locations/domain"
)

// Handler serves saved-location endpoints.
type Handler struct {
	service *locationsapp.Service
}

// NewHandler constructs a Handler.
func NewHandler(service *locationsapp.Service) (*Handler, error) {
	if service == nil {
		return nil, errors.New("locations handler: nil service")
	}
	return &Handler{service: service}, nil
}

// ServeHTTP routes saved-location requests.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	switch {
	case r.URL.Path == "/api/v1/locations/options" && r.Method == http.MethodPost:
		h.handleAddOption(w, r, userID)
	case r.URL.Path == "/api/v1/locations/options" && r.Method == http.MethodGet:
		h.handleListOptions(w, r, userID)
	case r.URL.Path == "/api/v1/locations/choice" && r.Method == http.MethodPut:
		h.handleSetChoice(w, r, userID)
	case r.URL.Path == "/api/v1/locations/choice" && r.Method == http.MethodGet:
		h.handleGetChoice(w, r, userID)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

type siteRequest struct {
	Label string  `json:"label"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
}

func (h *Handler) handleAddOption(w http.ResponseWriter, r *http.Request, userID string) {
	var req siteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}
	option, err := h.service.AddOption(r.Context(), userID, req.Label, req.Lat, req.Lng)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "option": option})
}

func (h *Handler) handleListOptions(w http.ResponseWriter, r *http.Request, userID string) {
	options, err := h.service.ListOptions(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "lookup failed")
		return
	}
	if options == nil {
		options = []locations.Option{}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "options": options})
}

func (h *Handler) handleSetChoice(w http.ResponseWriter, r *http.Request, userID string) {
	var req siteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}
	choice, err := h.service.SetChoice(r.Context(), userID, req.Label, req.Lat, req.Lng)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "choice": choice})
}

func (h *Handler) handleGetChoice(w http.ResponseWriter, r *http.Request, userID string) {
	choice, err := h.service.GetChoice(r.Context(), userID)
	if err != nil {
		if errors.Is(err, locations.ErrNotFound) {
			respondError(w, http.StatusNotFound, "no saved choice")
			return
		}
		respondError(w, http.StatusInternalServerError, "lookup failed")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "choice": choice})
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": message,
	})
}
