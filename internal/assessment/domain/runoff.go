package domain

import (
	"math"
	"strings"

	"rainharvest-cloud/internal/catalog"
)

// RoofCoefficient resolves the runoff coefficient for a roof surface type,
// case-insensitively, falling back to the catalog default for unknown keys.
func RoofCoefficient(cat catalog.Catalog, roofType string) float64 {
	if coeff, ok := cat.RoofRunoff[strings.ToLower(roofType)]; ok {
		return coeff
	}
	return cat.DefaultRoofCoeff
}

// GroundCoefficient resolves the runoff coefficient for a ground catchment:
// an explicit client override wins, else the mean of the impermeability
// midpoints of the selected surfaces, else the catalog default.
func GroundCoefficient(cat catalog.Catalog, surfaces []string, override *float64) float64 {
	if override != nil {
		return *override
	}
	sum, count := 0.0, 0
	for _, key := range surfaces {
		if mid, ok := cat.GroundImpermeability[strings.ToLower(key)]; ok {
			sum += mid
			count++
		}
	}
	if count > 0 {
		return sum / float64(count)
	}
	return cat.DefaultGroundCoeff
}

// EstimateRunoffLiters converts a catchment area and annual rainfall into a
// yearly yield. rainfall_mm/1000 puts the depth in meters, the resulting m3
// times 1000 is liters, so the factors cancel.
func EstimateRunoffLiters(areaM2, rainfallMM, coeff float64) float64 {
	return math.Round(areaM2 * rainfallMM * coeff)
}
