package domain

import (
	"math"
	"strings"

	"rainharvest-cloud/internal/catalog"
)

// PitDesign sizes the recharge pit against the wet-season volume.
type PitDesign struct {
	InfiltrationFraction  float64 `json:"infiltration_fraction"`
	InfiltratedLitersYear float64 `json:"infiltrated_liters_per_year"`
	VolumeM3              float64 `json:"pit_volume_m3"`
	Cost                  float64 `json:"pit_cost"`
}

// SizePit applies the soil infiltration fraction to the yearly yield and
// sizes the pit to hold one wet-season month of infiltration. Unknown soil
// keys fall back to the catalog default; wetMonths is clamped to >= 1.
func SizePit(cat catalog.Catalog, totalRunoffLitersYear float64, soilType string, wetMonths int, costPerM3 float64) PitDesign {
	fraction, ok := cat.SoilInfiltration[strings.ToLower(soilType)]
	if !ok {
		fraction = cat.SoilInfiltration[cat.DefaultSoil]
	}
	if wetMonths < 1 {
		wetMonths = 1
	}

	infiltrated := math.Round(totalRunoffLitersYear * fraction)
	volume := round2((infiltrated / 1000) / float64(wetMonths))
	return PitDesign{
		InfiltrationFraction:  fraction,
		InfiltratedLitersYear: infiltrated,
		VolumeM3:              volume,
		Cost:                  math.Round(volume * costPerM3),
	}
}
