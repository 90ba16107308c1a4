package pipeline

import (
	"strings"
	"testing"

	"nuclear-grid-lab/internal/domain"
)

func TestRenderReport(t *testing.T) {
	result := domain.SimulationResult{
		AnalysisDate:                 "2025-03-10",
		PUNPriceEURMWh:               110,
		DemandMWh:                    480000,
		CurrentCostEUR:               52_800_000,
		SimulatedCostEUR:             40_320_000,
		DailySavingsEUR:              12_480_000,
		SavingsPct:                   23.64,
		AnnualSavingsCountryEUR:      4_555_200_000,
		AnnualSavingsPerHouseholdEUR: 182.21,
	}

	report := RenderReport(result)
	if report == "" {
		t.Fatal("expected a rendered report")
	}

	for _, want := range []string{"2025-03-10", "480000 MWh", "23.64", "182.21"} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
}

func TestRenderReport_ZeroResult(t *testing.T) {
	if report := RenderReport(domain.SimulationResult{}); report != "" {
		t.Errorf("expected empty report for zero result, got %q", report)
	}
}
