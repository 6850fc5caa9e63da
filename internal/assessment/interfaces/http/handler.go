package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	assessmentapp "rainharvest-cloud/internal/assessment/application"
	"rainharvest-cloud/internal/assessment/domain"
	"rainharvest-cloud/internal/assessment/interfaces"
	"rainharvest-cloud/internal/audit"
	"rainharvest-cloud/internal/auth"
	"rainharvest-cloud/internal/observability/metrics"
	"rainharvest-cloud/internal/rainfall"
)

// Handler serves assessment endpoints.
type Handler struct {
	service     *assessmentapp.Service
	auditLogger audit.Logger
}

// NewHandler constructs a Handler.
func NewHandler(service *assessmentapp.Service, auditLogger audit.Logger) (*Handler, error) {
	if service == nil {
		return nil, errors.New("assessment handler: nil service")
	}
	return &Handler{service: service, auditLogger: auditLogger}, nil
}

// ServeHTTP routes assessment requests.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	switch r.URL.Path {
	case "/api/v1/assessments":
		h.handleAssess(w, r)
	case "/api/v1/assessments/export.pdf":
		h.handleExport(w, r, "pdf")
	case "/api/v1/assessments/export.xlsx":
		h.handleExport(w, r, "xlsx")
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *Handler) handleAssess(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	result, ok := h.assess(w, r, start)
	if !ok {
		return
	}
	metrics.ObserveAssessment(metrics.ResultSuccess, time.Since(start))
	metrics.IncAssessmentVerdict(result.Feasible)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(result)
	h.logAudit(r, "assessment.run", result)
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request, format string) {
	start := time.Now()
	result, ok := h.assess(w, r, start)
	if !ok {
		metrics.ObserveReportExport(format, metrics.ResultError, time.Since(start))
		return
	}

	var (
		data        []byte
		err         error
		contentType string
		filename    string
	)
	switch format {
	case "pdf":
		data, err = interfaces.BuildAssessmentPDF(result)
		contentType = "application/pdf"
		filename = "assessment.pdf"
	case "xlsx":
		data, err = interfaces.BuildAssessmentXLSX(result)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		filename = "assessment.xlsx"
	}
	if err != nil {
		metrics.ObserveReportExport(format, metrics.ResultError, time.Since(start))
		respondError(w, http.StatusInternalServerError, "report generation failed")
		return
	}
	metrics.ObserveReportExport(format, metrics.ResultSuccess, time.Since(start))
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, _ = w.Write(data)
	h.logAudit(r, "assessment.export."+format, result)
}

// assess decodes the request, runs the pipeline and writes the error response
// on failure. The boolean reports whether a result was produced.
func (h *Handler) assess(w http.ResponseWriter, r *http.Request, start time.Time) (*domain.DesignResult, bool) {
	var in domain.SiteInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		metrics.ObserveAssessment(metrics.ResultError, time.Since(start))
		respondError(w, http.StatusBadRequest, "invalid json")
		return nil, false
	}
	result, err := h.service.Assess(r.Context(), in)
	if err != nil {
		metrics.ObserveAssessment(metrics.ResultError, time.Since(start))
		var verr *domain.ValidationError
		switch {
		case errors.As(err, &verr):
			respondError(w, http.StatusBadRequest, verr.Error())
		case errors.Is(err, rainfall.ErrUnavailable):
			respondError(w, http.StatusNotFound, "rainfall data not available for this location")
		default:
			respondError(w, http.StatusInternalServerError, "assessment failed")
		}
		return nil, false
	}
	return result, true
}

func (h *Handler) logAudit(r *http.Request, action string, result *domain.DesignResult) {
	if h.auditLogger == nil {
		return
	}
	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		return
	}
	payload, _ := json.Marshal(map[string]any{
		"lat":                    result.Inputs.Lat,
		"lng":                    result.Inputs.Lng,
		"roof_area_m2":           result.Inputs.RoofArea,
		"runoff_liters_per_year": result.TotalRunoffLitersYear,
		"feasibility":            result.Feasible,
	})
	_ = h.auditLogger.Log(r.Context(), audit.Entry{
		UserID:       userID,
		Actor:        auth.SubjectFromContext(r.Context()),
		Role:         string(auth.RoleFromContext(r.Context())),
		Action:       action,
		ResourceType: "assessment",
		Metadata:     payload,
		IP:           audit.ClientIP(r),
		UserAgent:    r.UserAgent(),
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
