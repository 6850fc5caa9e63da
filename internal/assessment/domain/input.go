package domain

import (
	"math"
	"strings"

	"rainharvest-cloud/internal/catalog"
	"rainharvest-cloud/internal/geo"
)

// SiteInput carries every site parameter the design pipeline consumes.
// Zero optional fields are filled from the catalog by Normalize.
type SiteInput struct {
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	RoofArea float64 `json:"roof_area_m2"`
	RoofType string  `json:"roof_type"`
	Dwellers int     `json:"dwellers"`
	SoilType string  `json:"soil_type"`

	Floors         int     `json:"floors"`
	AvgFloorHeight float64 `json:"avg_floor_height_m"`
	VelocityMS     float64 `json:"velocity_m_s"`

	WetMonths          int     `json:"wet_months"`
	FilterSafetyFactor float64 `json:"filter_safety_factor"`
	PitCostPerM3       float64 `json:"pit_cost_per_m3"`

	IncludeGround     bool     `json:"include_ground"`
	GroundArea        float64  `json:"ground_area_m2"`
	GroundSurfaces    []string `json:"ground_surfaces"`
	GroundRunoffCoeff *float64 `json:"ground_runoff_coeff,omitempty"`

	RoofPolygon   []geo.Point `json:"roof_polygon,omitempty"`
	GroundPolygon []geo.Point `json:"ground_polygon,omitempty"`
}

const defaultFloorHeightM = 3.0

// Normalize fills unset optional fields from catalog defaults and lowercases
// lookup keys. It does not touch required fields.
func (in SiteInput) Normalize(cat catalog.Catalog) SiteInput {
	out := in
	out.RoofType = strings.ToLower(strings.TrimSpace(in.RoofType))
	out.SoilType = strings.ToLower(strings.TrimSpace(in.SoilType))
	if out.SoilType == "" {
		out.SoilType = cat.DefaultSoil
	}
	if out.AvgFloorHeight <= 0 {
		out.AvgFloorHeight = defaultFloorHeightM
	}
	if out.WetMonths < 1 {
		out.WetMonths = cat.WetMonths
	}
	if out.FilterSafetyFactor <= 0 {
		out.FilterSafetyFactor = cat.FilterSafetyFactor
	}
	if out.PitCostPerM3 <= 0 {
		out.PitCostPerM3 = cat.PitCostPerM3
	}
	if !out.IncludeGround {
		out.GroundArea = 0
		out.GroundSurfaces = nil
		out.GroundRunoffCoeff = nil
		out.GroundPolygon = nil
	}
	return out
}

// Validate checks required fields and ranges. Polygons with fewer than 3
// vertices are not an error (the engine degrades to area-only formulas), but
// any vertex that is present must be finite.
func (in SiteInput) Validate() error {
	if !finite(in.Lat) || in.Lat < -90 || in.Lat > 90 {
		return invalid("lat", "must be a finite latitude")
	}
	if !finite(in.Lng) || in.Lng < -180 || in.Lng > 180 {
		return invalid("lng", "must be a finite longitude")
	}
	if !finite(in.RoofArea) || in.RoofArea <= 0 {
		return invalid("roof_area_m2", "must be > 0")
	}
	if strings.TrimSpace(in.RoofType) == "" {
		return invalid("roof_type", "required")
	}
	if in.Dwellers < 0 {
		return invalid("dwellers", "must be >= 0")
	}
	if in.Floors < 0 {
		return invalid("floors", "must be >= 0")
	}
	if in.AvgFloorHeight != 0 && (!finite(in.AvgFloorHeight) || in.AvgFloorHeight < 0) {
		return invalid("avg_floor_height_m", "must be > 0")
	}
	if in.VelocityMS != 0 && (!finite(in.VelocityMS) || in.VelocityMS < 0) {
		return invalid("velocity_m_s", "must be > 0")
	}
	if in.WetMonths < 0 {
		return invalid("wet_months", "must be >= 1")
	}
	if in.FilterSafetyFactor != 0 && (!finite(in.FilterSafetyFactor) || in.FilterSafetyFactor < 0) {
		return invalid("filter_safety_factor", "must be > 0")
	}
	if in.PitCostPerM3 != 0 && (!finite(in.PitCostPerM3) || in.PitCostPerM3 < 0) {
		return invalid("pit_cost_per_m3", "must be > 0")
	}
	if in.IncludeGround {
		if !finite(in.GroundArea) || in.GroundArea <= 0 {
			return invalid("ground_area_m2", "required when ground catchment is included")
		}
		if in.GroundRunoffCoeff != nil {
			c := *in.GroundRunoffCoeff
			if !finite(c) || c <= 0 || c > 1 {
				return invalid("ground_runoff_coeff", "must be in (0, 1]")
			}
		}
	}
	if err := validVertices("roof_polygon", in.RoofPolygon); err != nil {
		return err
	}
	if err := validVertices("ground_polygon", in.GroundPolygon); err != nil {
		return err
	}
	return nil
}

func validVertices(field string, pts []geo.Point) error {
	for _, p := range pts {
		if !p.IsFinite() {
			return invalid(field, "vertices must have finite lat and lng")
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
