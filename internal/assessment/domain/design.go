package domain

import (
	"math"

	"rainharvest-cloud/internal/catalog"
	"rainharvest-cloud/internal/geo"
)

const (
	// litersPerPersonDay is the domestic demand baseline.
	litersPerPersonDay = 85.0

	// feasibleCoverageRatio marks a site feasible when harvest covers at
	// least this share of domestic demand.
	feasibleCoverageRatio = 0.25

	// feasibleAbsoluteLiters marks a site feasible on yield alone, even
	// with zero dwellers.
	feasibleAbsoluteLiters = 15000.0
)

// Design runs the full calculation pipeline as a pure function of a
// normalized, validated input and a rainfall figure. Identical inputs yield
// an identical result.
func Design(cat catalog.Catalog, in SiteInput, rainfallMM float64) DesignResult {
	roofPolygon := geo.NewPolygon(in.RoofPolygon...)
	groundPolygon := geo.NewPolygon(in.GroundPolygon...)

	roofRunoff := EstimateRunoffLiters(in.RoofArea, rainfallMM, RoofCoefficient(cat, in.RoofType))
	groundRunoff := 0.0
	if in.IncludeGround {
		coeff := GroundCoefficient(cat, in.GroundSurfaces, in.GroundRunoffCoeff)
		groundRunoff = EstimateRunoffLiters(in.GroundArea, rainfallMM, coeff)
	}
	totalRunoff := roofRunoff + groundRunoff

	flow, pipe := DesignConveyance(cat, in, roofPolygon)
	filter := SelectFilter(cat, in.RoofArea, in.FilterSafetyFactor, FilterStrategy(cat.FilterStrategy))
	pit := SizePit(cat, totalRunoff, in.SoilType, in.WetMonths, in.PitCostPerM3)

	var channel *ChannelDesign
	channelCost := 0.0
	if in.IncludeGround {
		ch := DesignChannel(cat, groundPolygon, in.GroundArea)
		channel = &ch
		channelCost = ch.Cost
	}

	annualNeed := math.Round(float64(in.Dwellers) * litersPerPersonDay * 365)
	coverage := 0.0
	if annualNeed > 0 {
		coverage = totalRunoff / annualNeed
	}
	// The verdict compares the raw ratio; rounding is for reporting only.
	feasible := coverage >= feasibleCoverageRatio || totalRunoff >= feasibleAbsoluteLiters

	costs := CostSummary{
		PipeCost:    pipe.Chosen.TotalCost,
		FilterCost:  filter.Chosen.TotalCost,
		PitCost:     pit.Cost,
		ChannelCost: channelCost,
	}
	costs.TotalCost = math.Round(costs.PipeCost + costs.FilterCost + costs.PitCost + costs.ChannelCost)

	return DesignResult{
		Inputs:                 in,
		RainfallMM:             rainfallMM,
		RoofRunoffLitersYear:   roofRunoff,
		GroundRunoffLitersYear: groundRunoff,
		TotalRunoffLitersYear:  totalRunoff,
		AnnualNeedLiters:       annualNeed,
		CoverageRatio:          round3(coverage),
		Flow:                   flow,
		Pipe:                   pipe,
		Filter:                 filter,
		Pit:                    pit,
		Channel:                channel,
		AquiferType:            cat.Band(totalRunoff).Label,
		Costs:                  costs,
		Feasible:               feasible,
	}
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
