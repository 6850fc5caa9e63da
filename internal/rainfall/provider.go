package rainfall

import (
	"context"
	"errors"
)

// ErrUnavailable indicates no usable rainfall series exists for a location.
// It is a data-coverage condition, not a caller error.
var ErrUnavailable = errors.New("rainfall: data not available")

// Provider supplies the average annual rainfall in mm/year for a location,
// already aggregated over a multi-year window.
type Provider interface {
	AnnualAverageMM(ctx context.Context, lat, lng float64) (float64, error)
}
