package catalog

import (
	"errors"
	"fmt"
)

// PipeStandard is one standard pipe offering in the conveyance catalog.
type PipeStandard struct {
	ID               string  `yaml:"id"`
	Name             string  `yaml:"name"`
	LengthM          float64 `yaml:"length_m"`
	UnitCostPerMeter float64 `yaml:"unit_cost_per_meter"`
}

// FilterProduct is one filtration unit offering.
type FilterProduct struct {
	ID         string  `yaml:"id"`
	Name       string  `yaml:"name"`
	CapacityM2 float64 `yaml:"capacity_m2"`
	UnitCost   float64 `yaml:"unit_cost"`
}

// AquiferBand maps a [MinLitersYear, MaxLitersYear) annual-yield range to a
// recommended recharge structure. MaxLitersYear == 0 marks the open-ended
// last band.
type AquiferBand struct {
	Label         string  `yaml:"label"`
	MinLitersYear float64 `yaml:"min_l_per_year"`
	MaxLitersYear float64 `yaml:"max_l_per_year"`
}

// Contains reports whether the yearly yield falls in this band.
func (b AquiferBand) Contains(litersPerYear float64) bool {
	if litersPerYear < b.MinLitersYear {
		return false
	}
	return b.MaxLitersYear == 0 || litersPerYear < b.MaxLitersYear
}

// Hydraulics holds tunable conveyance constants.
type Hydraulics struct {
	ManningN          float64 `yaml:"manning_n"`
	Slope             float64 `yaml:"slope"`
	DefaultVelocityMS float64 `yaml:"default_velocity_m_s"`
	MinVelocityMS     float64 `yaml:"min_velocity_m_s"`
	MaxVelocityMS     float64 `yaml:"max_velocity_m_s"`
}

// Channel holds surface-channel construction cost constants.
type Channel struct {
	UnitCostPerMeter  float64 `yaml:"unit_cost_per_meter"`
	EndBlockCost      float64 `yaml:"end_block_cost"`
	GrillCostPerMeter float64 `yaml:"grill_cost_per_meter"`
}

// Catalog aggregates every static lookup table the design engine consumes.
// It is loaded once at startup and never mutated afterwards.
type Catalog struct {
	Pipes   []PipeStandard `yaml:"pipes"`
	Filters []FilterProduct `yaml:"filters"`

	RoofRunoff       map[string]float64 `yaml:"roof_runoff"`
	DefaultRoofCoeff float64            `yaml:"default_roof_coeff"`

	GroundImpermeability map[string]float64 `yaml:"ground_impermeability"`
	DefaultGroundCoeff   float64            `yaml:"default_ground_coeff"`

	SoilInfiltration map[string]float64 `yaml:"soil_infiltration"`
	DefaultSoil      string             `yaml:"default_soil"`

	AquiferBands []AquiferBand `yaml:"aquifer_bands"`

	Hydraulics Hydraulics `yaml:"hydraulics"`
	Channel    Channel    `yaml:"channel"`

	FilterSafetyFactor float64 `yaml:"filter_safety_factor"`
	PitCostPerM3       float64 `yaml:"pit_cost_per_m3"`
	WetMonths          int     `yaml:"wet_months"`
	FilterStrategy     string  `yaml:"filter_strategy"`
}

// Default returns the built-in catalog, mirroring the vendor tables the
// service ships with.
func Default() Catalog {
	return Catalog{
		Pipes: []PipeStandard{
			{ID: "PVC_3m", Name: "PVC pipe (3 m)", LengthM: 3, UnitCostPerMeter: 80},
			{ID: "PVC_6m", Name: "PVC pipe (6 m)", LengthM: 6, UnitCostPerMeter: 85},
			{ID: "HDPE_6m", Name: "HDPE pipe (6 m)", LengthM: 6, UnitCostPerMeter: 65},
			{ID: "HDPE_12m", Name: "HDPE pipe (12 m)", LengthM: 12, UnitCostPerMeter: 65},
		},
		Filters: []FilterProduct{
			{ID: "NEERAIN_BASIC", Name: "NeeRain Basic", CapacityM2: 150, UnitCost: 6500},
			{ID: "RAINY_FL80", Name: "Rainy FL-80", CapacityM2: 75, UnitCost: 8500},
			{ID: "RAINY_FL250", Name: "Rainy FL-250", CapacityM2: 250, UnitCost: 13750},
		},
		RoofRunoff: map[string]float64{
			"concrete": 0.6,
			"metal":    0.9,
		},
		DefaultRoofCoeff: 0.75,
		GroundImpermeability: map[string]float64{
			"water_tight":     0.825,
			"asphalt":         0.875,
			"stone_brick":     0.8,
			"open_joints":     0.6,
			"inferior_blocks": 0.45,
			"macadam":         0.425,
			"gravel":          0.225,
			"unpaved":         0.2,
			"parks":           0.15,
			"dense_built":     0.8,
		},
		DefaultGroundCoeff: 0.3,
		SoilInfiltration: map[string]float64{
			"sandy":  0.8,
			"loamy":  0.475,
			"clayey": 0.175,
		},
		DefaultSoil: "loamy",
		AquiferBands: []AquiferBand{
			{Label: "Dug Well / Small Pit", MinLitersYear: 0, MaxLitersYear: 50000},
			{Label: "Percolation Pit / Tank", MinLitersYear: 50000, MaxLitersYear: 200000},
			{Label: "Recharge Shaft / Large Pit", MinLitersYear: 200000, MaxLitersYear: 500000},
			{Label: "Injection Well / Large-scale recharge", MinLitersYear: 500000, MaxLitersYear: 0},
		},
		Hydraulics: Hydraulics{
			ManningN:          0.013,
			Slope:             0.01,
			DefaultVelocityMS: 2.5,
			MinVelocityMS:     0.1,
			MaxVelocityMS:     10,
		},
		Channel: Channel{
			UnitCostPerMeter:  2500,
			EndBlockCost:      1500,
			GrillCostPerMeter: 350,
		},
		FilterSafetyFactor: 1.5,
		PitCostPerM3:       800,
		WetMonths:          4,
		FilterStrategy:     "cheapest",
	}
}

// Validate checks table invariants. In particular the aquifer bands must
// partition [0, inf) with no gaps or overlaps.
func (c Catalog) Validate() error {
	if len(c.Pipes) == 0 {
		return errors.New("catalog: no pipe standards")
	}
	for _, p := range c.Pipes {
		if p.LengthM <= 0 || p.UnitCostPerMeter <= 0 {
			return fmt.Errorf("catalog: pipe %q has non-positive length or cost", p.ID)
		}
	}
	if len(c.Filters) == 0 {
		return errors.New("catalog: no filter products")
	}
	for _, f := range c.Filters {
		if f.CapacityM2 <= 0 || f.UnitCost <= 0 {
			return fmt.Errorf("catalog: filter %q has non-positive capacity or cost", f.ID)
		}
	}
	if len(c.AquiferBands) == 0 {
		return errors.New("catalog: no aquifer bands")
	}
	if c.AquiferBands[0].MinLitersYear != 0 {
		return errors.New("catalog: aquifer bands must start at 0")
	}
	for i, b := range c.AquiferBands {
		last := i == len(c.AquiferBands)-1
		if last {
			if b.MaxLitersYear != 0 {
				return errors.New("catalog: last aquifer band must be open-ended")
			}
			continue
		}
		if b.MaxLitersYear <= b.MinLitersYear {
			return fmt.Errorf("catalog: aquifer band %q is empty", b.Label)
		}
		if c.AquiferBands[i+1].MinLitersYear != b.MaxLitersYear {
			return fmt.Errorf("catalog: gap or overlap after aquifer band %q", b.Label)
		}
	}
	if _, ok := c.SoilInfiltration[c.DefaultSoil]; !ok {
		return fmt.Errorf("catalog: default soil %q not in infiltration table", c.DefaultSoil)
	}
	if c.Hydraulics.ManningN <= 0 || c.Hydraulics.Slope <= 0 {
		return errors.New("catalog: manning constants must be positive")
	}
	if c.Hydraulics.DefaultVelocityMS <= 0 {
		return errors.New("catalog: default velocity must be positive")
	}
	if c.WetMonths < 1 {
		return errors.New("catalog: wet months must be >= 1")
	}
	switch c.FilterStrategy {
	case "cheapest", "least-surplus":
	default:
		return fmt.Errorf("catalog: unknown filter strategy %q", c.FilterStrategy)
	}
	return nil
}

// Band resolves the aquifer band for a yearly yield. Validate guarantees
// exactly one band matches any non-negative value.
func (c Catalog) Band(litersPerYear float64) AquiferBand {
	for _, b := range c.AquiferBands {
		if b.Contains(litersPerYear) {
			return b
		}
	}
	return AquiferBand{}
}
