package domain

import (
	"math"

	"rainharvest-cloud/internal/catalog"
	"rainharvest-cloud/internal/geo"
)

// FlowDesign reports the hydraulic quantities behind the pipe sizing.
type FlowDesign struct {
	VelocityMS    float64 `json:"velocity_m_s"`
	FlowM3S       float64 `json:"flow_m3_s"`
	ManningDriven bool    `json:"manning_driven"`
}

// PipeOption is one priced catalog entry for the computed conveyance length.
type PipeOption struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	StandardLengthM  float64 `json:"standard_length_m"`
	UnitsRequired    int     `json:"units_required"`
	UsedMeters       float64 `json:"used_meters"`
	UnitCostPerMeter float64 `json:"unit_cost_per_meter"`
	TotalCost        float64 `json:"total_cost"`
}

// PipeDesign is the conveyance design: required diameter, run lengths and
// the least-cost standard pipe.
type PipeDesign struct {
	DiameterMM        float64      `json:"calculated_diameter_mm"`
	VerticalLengthM   float64      `json:"vertical_length_m"`
	HorizontalLengthM float64      `json:"horizontal_length_m"`
	TotalLengthM      float64      `json:"total_pipe_length_m"`
	Options           []PipeOption `json:"options"`
	Chosen            PipeOption   `json:"chosen_option"`
}

// DesignVelocity derives the conveyance velocity. With a usable roof polygon
// it applies Manning's equation over the polygon hydraulic radius
// (R = area / perimeter) with the catalog roughness and slope, clamped to the
// configured range; otherwise the caller override or the catalog default.
func DesignVelocity(cat catalog.Catalog, roofPolygon geo.Polygon, overrideMS float64) (velocity float64, manning bool) {
	hyd := cat.Hydraulics
	if !roofPolygon.IsEmpty() {
		perimeter := roofPolygon.Perimeter()
		if perimeter > 0 {
			radius := roofPolygon.Area() / perimeter
			v := (1 / hyd.ManningN) * math.Pow(radius, 2.0/3.0) * math.Sqrt(hyd.Slope)
			if !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0 {
				return clamp(v, hyd.MinVelocityMS, hyd.MaxVelocityMS), true
			}
		}
	}
	if overrideMS > 0 {
		return overrideMS, false
	}
	return hyd.DefaultVelocityMS, false
}

// DesignConveyance sizes the downpipe from the continuity equation
// Q = A x V and D = sqrt(4Q / (pi x V)), totals the pipe run and picks the
// least-cost standard pipe, ties broken by catalog declaration order.
func DesignConveyance(cat catalog.Catalog, in SiteInput, roofPolygon geo.Polygon) (FlowDesign, PipeDesign) {
	velocity, manning := DesignVelocity(cat, roofPolygon, in.VelocityMS)

	flow := in.RoofArea * velocity
	diameterM := math.Sqrt(4 * flow / (math.Pi * velocity))

	vertical := round2(float64(in.Floors) * in.AvgFloorHeight)
	horizontal := math.Sqrt(in.RoofArea)
	if !roofPolygon.IsEmpty() {
		horizontal = roofPolygon.Diagonal()
	}
	horizontal = round2(horizontal)
	total := round2(vertical + horizontal)

	options := make([]PipeOption, 0, len(cat.Pipes))
	chosenIdx := 0
	for i, p := range cat.Pipes {
		units := int(math.Ceil(total / p.LengthM))
		if units < 1 {
			units = 1
		}
		used := float64(units) * p.LengthM
		opt := PipeOption{
			ID:               p.ID,
			Name:             p.Name,
			StandardLengthM:  p.LengthM,
			UnitsRequired:    units,
			UsedMeters:       used,
			UnitCostPerMeter: p.UnitCostPerMeter,
			TotalCost:        math.Round(used * p.UnitCostPerMeter),
		}
		options = append(options, opt)
		if opt.TotalCost < options[chosenIdx].TotalCost {
			chosenIdx = i
		}
	}

	return FlowDesign{
			VelocityMS:    velocity,
			FlowM3S:       flow,
			ManningDriven: manning,
		}, PipeDesign{
			DiameterMM:        math.Round(diameterM * 1000),
			VerticalLengthM:   vertical,
			HorizontalLengthM: horizontal,
			TotalLengthM:      total,
			Options:           options,
			Chosen:            options[chosenIdx],
		}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
