package application

import (
	"context"
	"errors"
	"time"

	"rainharvest-cloud/internal/assessment/domain"
	"rainharvest-cloud/internal/catalog"
	"rainharvest-cloud/internal/rainfall"
)

const defaultRainfallTimeout = 20 * time.Second

// Service runs the feasibility and design pipeline: one bounded rainfall
// lookup, then pure calculation stages. Failures are atomic; a partial
// DesignResult is never returned.
type Service struct {
	cat      catalog.Catalog
	provider rainfall.Provider
	timeout  time.Duration
}

// Option configures the service.
type Option func(*Service)

// WithRainfallTimeout bounds the rainfall lookup.
func WithRainfallTimeout(timeout time.Duration) Option {
	return func(s *Service) {
		if timeout > 0 {
			s.timeout = timeout
		}
	}
}

// NewService constructs the assessment service.
func NewService(cat catalog.Catalog, provider rainfall.Provider, opts ...Option) (*Service, error) {
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, errors.New("assessment service: nil rainfall provider")
	}
	s := &Service{cat: cat, provider: provider, timeout: defaultRainfallTimeout}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Assess validates the input, fetches the rainfall figure and produces the
// design. Validation errors surface before any lookup; a missing series
// surfaces as rainfall.ErrUnavailable.
func (s *Service) Assess(ctx context.Context, in domain.SiteInput) (*domain.DesignResult, error) {
	normalized := in.Normalize(s.cat)
	if err := normalized.Validate(); err != nil {
		return nil, err
	}

	lookupCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	rainfallMM, err := s.provider.AnnualAverageMM(lookupCtx, normalized.Lat, normalized.Lng)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, rainfall.ErrUnavailable
		}
		return nil, err
	}
	if rainfallMM <= 0 {
		return nil, rainfall.ErrUnavailable
	}

	result := domain.Design(s.cat, normalized, rainfallMM)
	return &result, nil
}
