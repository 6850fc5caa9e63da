package domain

// CostSummary itemizes the installation estimate.
type CostSummary struct {
	PipeCost    float64 `json:"chosen_pipe_cost"`
	FilterCost  float64 `json:"chosen_filter_cost"`
	PitCost     float64 `json:"pit_cost"`
	ChannelCost float64 `json:"channel_cost"`
	TotalCost   float64 `json:"total_estimated_installation_cost"`
}

// DesignResult is the complete outcome of one feasibility assessment. It is
// created fresh per request and never persisted by the engine.
type DesignResult struct {
	Inputs     SiteInput `json:"inputs"`
	RainfallMM float64   `json:"rainfall_mm"`

	RoofRunoffLitersYear   float64 `json:"runoff_roof_liters_per_year"`
	GroundRunoffLitersYear float64 `json:"runoff_ground_liters_per_year"`
	TotalRunoffLitersYear  float64 `json:"runoff_liters_per_year"`

	AnnualNeedLiters float64 `json:"annual_need_liters"`
	CoverageRatio    float64 `json:"coverage_ratio"`

	Flow    FlowDesign      `json:"flow"`
	Pipe    PipeDesign      `json:"pipe"`
	Filter  FilterSelection `json:"filters"`
	Pit     PitDesign       `json:"pit"`
	Channel *ChannelDesign  `json:"channel,omitempty"`

	AquiferType string      `json:"aquifer_type"`
	Costs       CostSummary `json:"costs"`
	Feasible    bool        `json:"feasibility"`
}
