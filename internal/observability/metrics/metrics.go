package metrics

import (
	"database/sql"
	"log"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "rainharvest_"

	resultSuccess = "success"
	resultError   = "error"
)

var (
	registerOnce sync.Once

	assessmentTotal    *prometheus.CounterVec
	assessmentLatency  *prometheus.HistogramVec
	assessmentFeasible *prometheus.CounterVec

	rainfallLookupTotal   *prometheus.CounterVec
	rainfallLookupLatency *prometheus.HistogramVec

	reportExportTotal   *prometheus.CounterVec
	reportExportLatency *prometheus.HistogramVec

	accountLoginTotal    *prometheus.CounterVec
	accountRegisterTotal *prometheus.CounterVec

	geocodeLookupTotal *prometheus.CounterVec
)

// Init registers observability metrics and DB-backed gauges.
func Init(db *sql.DB, logger *log.Logger) {
	registerOnce.Do(func() {
		assessmentTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "assessment_total",
				Help: "Total feasibility assessments by result",
			},
			[]string{"result"},
		)
		assessmentLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "assessment_latency_seconds",
				Help:    "Assessment pipeline latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)
		assessmentFeasible = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "assessment_verdicts_total",
				Help: "Total completed assessments by feasibility verdict",
			},
			[]string{"verdict"},
		)

		rainfallLookupTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "rainfall_lookup_total",
				Help: "Total rainfall lookups by source and result",
			},
			[]string{"source", "result"},
		)
		rainfallLookupLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "rainfall_lookup_latency_seconds",
				Help:    "Rainfall lookup latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"source", "result"},
		)

		reportExportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "report_export_total",
				Help: "Total report exports by format and result",
			},
			[]string{"format", "result"},
		)
		reportExportLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "report_export_latency_seconds",
				Help:    "Report export latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format", "result"},
		)

		accountLoginTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "account_login_total",
				Help: "Total login attempts by result",
			},
			[]string{"result"},
		)
		accountRegisterTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "account_register_total",
				Help: "Total registrations by result",
			},
			[]string{"result"},
		)

		geocodeLookupTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "geocode_lookup_total",
				Help: "Total geocode taluka lookups by result",
			},
			[]string{"result"},
		)

		prometheus.MustRegister(
			assessmentTotal,
			assessmentLatency,
			assessmentFeasible,
			rainfallLookupTotal,
			rainfallLookupLatency,
			reportExportTotal,
			reportExportLatency,
			accountLoginTotal,
			accountRegisterTotal,
			geocodeLookupTotal,
		)

		if db != nil {
			registerDBMetrics(db, logger)
		}
	})
}

func registerDBMetrics(db *sql.DB, logger *log.Logger) {
	collectors := []prometheus.Collector{
		prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: metricPrefix + "db_open_connections",
				Help: "Open database connections",
			},
			func() float64 { return float64(db.Stats().OpenConnections) },
		),
		prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: metricPrefix + "db_in_use_connections",
				Help: "In-use database connections",
			},
			func() float64 { return float64(db.Stats().InUse) },
		),
		prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: metricPrefix + "db_idle_connections",
				Help: "Idle database connections",
			},
			func() float64 { return float64(db.Stats().Idle) },
		),
	}
	for _, c := range collectors {
		if err := prometheus.Register(c); err != nil && logger != nil {
			logger.Printf("metrics: db gauge registration failed: %v", err)
		}
	}
}

// ObserveAssessment records assessment pipeline latency and result.
func ObserveAssessment(result string, duration time.Duration) {
	if result == "" {
		result = resultSuccess
	}
	if assessmentTotal != nil {
		assessmentTotal.WithLabelValues(result).Inc()
	}
	if assessmentLatency != nil {
		assessmentLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// IncAssessmentVerdict increments the feasibility verdict counter.
func IncAssessmentVerdict(feasible bool) {
	verdict := "infeasible"
	if feasible {
		verdict = "feasible"
	}
	if assessmentFeasible != nil {
		assessmentFeasible.WithLabelValues(verdict).Inc()
	}
}

// ObserveRainfallLookup records rainfall lookup latency and result.
func ObserveRainfallLookup(source, result string, duration time.Duration) {
	if source == "" {
		source = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if rainfallLookupTotal != nil {
		rainfallLookupTotal.WithLabelValues(source, result).Inc()
	}
	if rainfallLookupLatency != nil {
		rainfallLookupLatency.WithLabelValues(source, result).Observe(duration.Seconds())
	}
}

// ObserveReportExport records export latency and result.
func ObserveReportExport(format, result string, duration time.Duration) {
	if format == "" {
		format = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if reportExportTotal != nil {
		reportExportTotal.WithLabelValues(format, result).Inc()
	}
	if reportExportLatency != nil {
		reportExportLatency.WithLabelValues(format, result).Observe(duration.Seconds())
	}
}

// IncAccountLogin increments login attempt counter.
func IncAccountLogin(result string) {
	if result == "" {
		result = "unknown"
	}
	if accountLoginTotal != nil {
		accountLoginTotal.WithLabelValues(result).Inc()
	}
}

// IncAccountRegister increments registration counter.
func IncAccountRegister(result string) {
	if result == "" {
		result = "unknown"
	}
	if accountRegisterTotal != nil {
		accountRegisterTotal.WithLabelValues(result).Inc()
	}
}

// IncGeocodeLookup increments geocode lookup counter.
func IncGeocodeLookup(result string) {
	if result == "" {
		result = "unknown"
	}
	if geocodeLookupTotal != nil {
		geocodeLookupTotal.WithLabelValues(result).Inc()
	}
}

// Exported constants for callers.
const (
	ResultSuccess = resultSuccess
	ResultError   = resultError
)
