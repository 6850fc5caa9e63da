package application

import (
	"context"
	"errors"
	"testing"

	"rainharvest-cloud/internal/assessment/domain"
	"rainharvest-cloud/internal/catalog"
	"rainharvest-cloud/internal/rainfall"
)

type stubProvider struct {
	rainfallMM float64
	err        error
	calls      int
}

func (s *stubProvider) AnnualAverageMM(ctx context.Context, lat, lng float64) (float64, error) {
	s.calls++
	return s.rainfallMM, s.err
}

func TestAssess_Success(t *testing.T) {
	provider := &stubProvider{rainfallMM: 800}
	service, err := NewService(catalog.Default(), provider)
	if err != nil {
		t.Fatalf("service error: %v", err)
	}

	result, err := service.Assess(context.Background(), domain.SiteInput{
		Lat: 12.9, Lng: 77.5, RoofArea: 100, RoofType: "concrete", Dwellers: 4,
	})
	if err != nil {
		t.Fatalf("assess error: %v", err)
	}
	if result.RainfallMM != 800 {
		t.Fatalf("expected 800 mm, got %f", result.RainfallMM)
	}
	if result.TotalRunoffLitersYear != 48000 {
		t.Fatalf("expected 48000 L, got %f", result.TotalRunoffLitersYear)
	}
	if provider.calls != 1 {
		t.Fatalf("expected single rainfall lookup, got %d", provider.calls)
	}
}

func TestAssess_ValidationShortCircuits(t *testing.T) {
	provider := &stubProvider{rainfallMM: 800}
	service, err := NewService(catalog.Default(), provider)
	if err != nil {
		t.Fatalf("service error: %v", err)
	}

	_, err = service.Assess(context.Background(), domain.SiteInput{Lat: 95, Lng: 0, RoofArea: 100, RoofType: "concrete"})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if provider.calls != 0 {
		t.Fatalf("expected no rainfall lookup after validation failure, got %d", provider.calls)
	}
}

func TestAssess_RainfallUnavailable(t *testing.T) {
	provider := &stubProvider{err: rainfall.ErrUnavailable}
	service, err := NewService(catalog.Default(), provider)
	if err != nil {
		t.Fatalf("service error: %v", err)
	}

	_, err = service.Assess(context.Background(), domain.SiteInput{Lat: 12.9, Lng: 77.5, RoofArea: 100, RoofType: "concrete"})
	if !errors.Is(err, rainfall.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestAssess_NonPositiveRainfallUnavailable(t *testing.T) {
	provider := &stubProvider{rainfallMM: 0}
	service, err := NewService(catalog.Default(), provider)
	if err != nil {
		t.Fatalf("service error: %v", err)
	}

	_, err = service.Assess(context.Background(), domain.SiteInput{Lat: 12.9, Lng: 77.5, RoofArea: 100, RoofType: "concrete"})
	if !errors.Is(err, rainfall.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable for zero rainfall, got %v", err)
	}
}

func TestNewService_RejectsNilProvider(t *testing.T) {
	if _, err := NewService(catalog.Default(), nil); err == nil {
		t.Fatalf("expected error for nil provider")
	}
}
