package domain

import (
	"math"

	"rainharvest-cloud/internal/catalog"
	"rainharvest-cloud/internal/geo"
)

// ChannelDesign is the surface conveyance channel for a ground catchment.
type ChannelDesign struct {
	LengthM float64 `json:"channel_length_m"`
	Cost    float64 `json:"channel_cost"`
}

// DesignChannel derives the channel run from the ground polygon bounding
// box, taking the longer dimension as the conservative choice, with
// sqrt(area) as the floor and as the fallback when no polygon exists.
func DesignChannel(cat catalog.Catalog, groundPolygon geo.Polygon, groundAreaM2 float64) ChannelDesign {
	length := math.Sqrt(groundAreaM2)
	if !groundPolygon.IsEmpty() {
		dims := groundPolygon.BoundsDims()
		length = math.Max(dims.WidthM, math.Max(dims.HeightM, length))
	}
	length = round2(length)

	ch := cat.Channel
	cost := math.Round(length*ch.UnitCostPerMeter + ch.EndBlockCost + length*ch.GrillCostPerMeter)
	return ChannelDesign{LengthM: length, Cost: cost}
}
