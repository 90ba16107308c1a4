package domain

// SimulationParams are the economic assumptions behind the nuclear
// counterfactual: what share of demand is re-priced at the imported
// nuclear wholesale price instead of the PUN baseline.
type SimulationParams struct {
	PUNPriceEURMWh     float64 // current wholesale baseline price
	NuclearPriceEURMWh float64 // fixed imported-nuclear wholesale price
	NuclearShare       float64 // share of demand served by nuclear, in [0,1]
	HouseholdCount     float64 // national household count for per-family figures
}

// DefaultItalianParams are the assumptions used for the Italian run.
var DefaultItalianParams = SimulationParams{
	PUNPriceEURMWh:     110.0,
	NuclearPriceEURMWh: 70.0,
	NuclearShare:       0.65,
	HouseholdCount:     25_000_000,
}

// SimulationResult is the daily cost comparison between the current market
// price and the nuclear counterfactual. Persisted as the "latest" document
// per country, overwritten on each run.
type SimulationResult struct {
	AnalysisDate                 string  `json:"analysis_date"`
	PUNPriceEURMWh               float64 `json:"pun_price_eur_mwh"`
	DemandMWh                    float64 `json:"demand_mwh"`
	CurrentCostEUR               float64 `json:"current_cost_eur"`
	SimulatedCostEUR             float64 `json:"simulated_cost_eur"`
	DailySavingsEUR              float64 `json:"daily_savings_eur"`
	SavingsPct                   float64 `json:"savings_pct"`
	AnnualSavingsCountryEUR      float64 `json:"annual_savings_country_eur"`
	AnnualSavingsPerHouseholdEUR float64 `json:"annual_savings_per_household_eur"`
}

// IsZero reports whether the result is the empty degraded result produced
// when the mandatory demand series was missing.
func (r SimulationResult) IsZero() bool {
	return r == SimulationResult{}
}
