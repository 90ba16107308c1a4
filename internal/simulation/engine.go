// Package simulation prices a day's demand under the nuclear counterfactual.
package simulation

import (
	"errors"

	"nuclear-grid-lab/internal/domain"
)

// ErrEmptySeries is returned when the demand series carries no observations.
// The caller receives a zero result alongside it so a multi-country run is
// not aborted by one country's missing data.
var ErrEmptySeries = errors.New("demand series is empty")

// daysPerYear extrapolates the daily saving to an annual figure.
const daysPerYear = 365

// Simulate maps a normalized demand series to a cost comparison between the
// PUN baseline and a mix where a fixed share of demand is served by imported
// nuclear power at a fixed wholesale price. Pure function, no side effects.
func Simulate(series *domain.Series, params domain.SimulationParams) (domain.SimulationResult, error) {
	if series.IsEmpty() {
		return domain.SimulationResult{}, ErrEmptySeries
	}

	demandMWh := series.TotalMWh()
	currentCost := demandMWh * params.PUNPriceEURMWh
	simulatedCost := demandMWh*params.NuclearShare*params.NuclearPriceEURMWh +
		demandMWh*(1-params.NuclearShare)*params.PUNPriceEURMWh
	dailySavings := currentCost - simulatedCost

	// Never divide by zero: a zero current cost means a zero percentage.
	savingsPct := 0.0
	if currentCost > 0 {
		savingsPct = 100 * dailySavings / currentCost
	}

	annualSavings := dailySavings * daysPerYear
	perHousehold := 0.0
	if params.HouseholdCount > 0 {
		perHousehold = annualSavings / params.HouseholdCount
	}

	return domain.SimulationResult{
		AnalysisDate:                 series.Day.Format("2006-01-02"),
		PUNPriceEURMWh:               params.PUNPriceEURMWh,
		DemandMWh:                    demandMWh,
		CurrentCostEUR:               currentCost,
		SimulatedCostEUR:             simulatedCost,
		DailySavingsEUR:              dailySavings,
		SavingsPct:                   savingsPct,
		AnnualSavingsCountryEUR:      annualSavings,
		AnnualSavingsPerHouseholdEUR: perHousehold,
	}, nil
}
