package domain

import (
	"math"
	"sort"

	"rainharvest-cloud/internal/catalog"
)

// FilterStrategy selects the primary criterion for filter selection.
type FilterStrategy string

const (
	// FilterCheapest minimizes total cost, breaking ties on capacity surplus.
	FilterCheapest FilterStrategy = "cheapest"
	// FilterLeastSurplus minimizes capacity surplus, breaking ties on cost.
	FilterLeastSurplus FilterStrategy = "least-surplus"
)

// FilterOption is one priced filtration candidate.
type FilterOption struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	CapacityM2    float64 `json:"capacity_m2"`
	UnitCost      float64 `json:"unit_cost"`
	UnitsRequired int     `json:"units_required"`
	TotalCost     float64 `json:"total_cost"`
	SurplusM2     float64 `json:"surplus_m2"`
}

// FilterSelection is the ranked candidate list with the winner first.
type FilterSelection struct {
	Chosen     FilterOption   `json:"chosen"`
	Candidates []FilterOption `json:"candidates"`
}

// SelectFilter prices every catalog product for the roof area under the
// safety factor and ranks them by the given strategy. Catalog declaration
// order is the final tie-break, keeping the ranking deterministic.
func SelectFilter(cat catalog.Catalog, roofAreaM2, safetyFactor float64, strategy FilterStrategy) FilterSelection {
	candidates := make([]FilterOption, 0, len(cat.Filters))
	for _, f := range cat.Filters {
		effective := f.CapacityM2 * safetyFactor
		units := int(math.Ceil(roofAreaM2 / effective))
		if units < 1 {
			units = 1
		}
		candidates = append(candidates, FilterOption{
			ID:            f.ID,
			Name:          f.Name,
			CapacityM2:    f.CapacityM2,
			UnitCost:      f.UnitCost,
			UnitsRequired: units,
			TotalCost:     float64(units) * f.UnitCost,
			SurplusM2:     float64(units)*f.CapacityM2 - roofAreaM2,
		})
	}

	less := func(a, b FilterOption) bool {
		if a.TotalCost != b.TotalCost {
			return a.TotalCost < b.TotalCost
		}
		return a.SurplusM2 < b.SurplusM2
	}
	if strategy == FilterLeastSurplus {
		less = func(a, b FilterOption) bool {
			if a.SurplusM2 != b.SurplusM2 {
				return a.SurplusM2 < b.SurplusM2
			}
			return a.TotalCost < b.TotalCost
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return less(candidates[i], candidates[j])
	})

	return FilterSelection{Chosen: candidates[0], Candidates: candidates}
}
