package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	accountsapp "rainharvest-cloud/internal/accounts/application"
	accountsrepo "rainharvest-cloud/internal/accounts/infrastructure/postgres"
	accountshttp "rainharvest-cloud/internal/accounts/interfaces/http"
	assessmentapp "rainharvest-cloud/internal/assessment/application"
	assessmenthttp "rainharvest-cloud/internal/assessment/interfaces/http"
	"rainharvest-cloud/internal/audit"
	"rainharvest-cloud/internal/auth"
	"rainharvest-cloud/internal/catalog"
	"rainharvest-cloud/internal/geocode"
	locationsapp "rainharvest-cloud/internal/locations/application"
	locationsrepo "rainharvest-cloud/internal/locations/infrastructure/postgres"
	locationshttp "rainharvest-cloud/internal/locations/interfaces/http"
	"rainharvest-cloud/internal/observability/metrics"
	"rainharvest-cloud/internal/rainfall/dataset"
	"rainharvest-cloud/internal/rainfall/openmeteo"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := loadConfig()
	logger := log.New(os.Stdout, "", log.LstdFlags)

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("db open error: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatalf("db ping error: %v", err)
	}

	metrics.Init(db, logger)
	auditRepo := audit.NewRepository(db)

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		logger.Fatalf("catalog load error: %v", err)
	}

	rainfallProvider := openmeteo.NewClient(
		openmeteo.WithBaseURL(cfg.OpenMeteoBaseURL),
		openmeteo.WithTimeout(cfg.RainfallTimeout),
	)
	assessmentService, err := assessmentapp.NewService(cat, rainfallProvider,
		assessmentapp.WithRainfallTimeout(cfg.RainfallTimeout))
	if err != nil {
		logger.Fatalf("assessment service error: %v", err)
	}
	assessmentHandler, err := assessmenthttp.NewHandler(assessmentService, auditRepo)
	if err != nil {
		logger.Fatalf("assessment handler error: %v", err)
	}

	userRepo := accountsrepo.NewUserRepository(db)
	accountsService, err := accountsapp.NewService(userRepo, []byte(cfg.JWTSecret),
		accountsapp.WithTokenTTL(cfg.TokenTTL))
	if err != nil {
		logger.Fatalf("accounts service error: %v", err)
	}
	accountsHandler, err := accountshttp.NewHandler(accountsService)
	if err != nil {
		logger.Fatalf("accounts handler error: %v", err)
	}

	locationRepo := locationsrepo.NewLocationRepository(db)
	locationsService, err := locationsapp.NewService(locationRepo)
	if err != nil {
		logger.Fatalf("locations service error: %v", err)
	}
	locationsHandler, err := locationshttp.NewHandler(locationsService)
	if err != nil {
		logger.Fatalf("locations handler error: %v", err)
	}

	auditHandler, err := audit.NewHandler(auditRepo)
	if err != nil {
		logger.Fatalf("audit handler error: %v", err)
	}

	geocodeClient := geocode.NewClient(geocode.WithBaseURL(cfg.OverpassBaseURL))
	geocodeHandler, err := geocode.NewHandler(geocodeClient)
	if err != nil {
		logger.Fatalf("geocode handler error: %v", err)
	}

	policy := auth.NewDefaultPolicy(
		[]string{"/healthz", "/metrics"},
		[]string{"/api/v1/accounts/", "/api/v1/rainfall/", "/api/v1/geocode/"},
	)
	authMiddleware := auth.NewMiddleware([]byte(cfg.JWTSecret), policy)

	mux := http.NewServeMux()
	mux.Handle("/api/v1/accounts/register", accountsHandler)
	mux.Handle("/api/v1/accounts/login", accountsHandler)
	mux.Handle("/api/v1/assessments", assessmentHandler)
	mux.Handle("/api/v1/assessments/", assessmentHandler)
	mux.Handle("/api/v1/locations/options", locationsHandler)
	mux.Handle("/api/v1/locations/choice", locationsHandler)
	mux.Handle("/api/v1/geocode/talukas", geocodeHandler)
	mux.Handle("/api/v1/audit", auditHandler)
	if cfg.RainfallDatasetPath != "" {
		districtData, err := dataset.Load(cfg.RainfallDatasetPath)
		if err != nil {
			logger.Fatalf("rainfall dataset error: %v", err)
		}
		districtHandler, err := dataset.NewHandler(districtData)
		if err != nil {
			logger.Fatalf("rainfall dataset handler error: %v", err)
		}
		mux.Handle("/api/v1/rainfall/districts/", districtHandler)
		logger.Printf("rainfall dataset loaded: %d districts", districtData.Len())
	}
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	server := &http.Server{Addr: cfg.HTTPAddr, Handler: loggingMiddleware(authMiddleware.Wrap(mux), logger)}
	logger.Printf("http listening on %s", cfg.HTTPAddr)
	logger.Fatal(server.ListenAndServe())
}

type config struct {
	DatabaseURL         string
	HTTPAddr            string
	JWTSecret           string
	TokenTTL            time.Duration
	CatalogPath         string
	RainfallDatasetPath string
	OpenMeteoBaseURL    string
	RainfallTimeout     time.Duration
	OverpassBaseURL     string
}

func loadConfig() config {
	cfg := config{
		DatabaseURL:         getenvDefault("DATABASE_URL", getenvDefault("PG_DSN", "")),
		HTTPAddr:            getenvDefault("HTTP_ADDR", ":8080"),
		JWTSecret:           getenvDefault("AUTH_JWT_SECRET", getenvDefault("JWT_SECRET", "")),
		TokenTTL:            getenvDuration("AUTH_TOKEN_TTL", 24*time.Hour),
		CatalogPath:         getenvDefault("CATALOG_CONFIG", ""),
		RainfallDatasetPath: getenvDefault("RAINFALL_DATASET", ""),
		OpenMeteoBaseURL:    getenvDefault("OPENMETEO_BASE_URL", ""),
		RainfallTimeout:     getenvDuration("RAINFALL_TIMEOUT", 20*time.Second),
		OverpassBaseURL:     getenvDefault("OVERPASS_BASE_URL", ""),
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL or PG_DSN is required")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("AUTH_JWT_SECRET is required")
	}
	return cfg
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func loggingMiddleware(next http.Handler, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		resp := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(resp, r)
		logger.Printf("http %s %s %d %s", r.Method, r.URL.Path, resp.status, time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
