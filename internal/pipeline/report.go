package pipeline

import (
	"fmt"
	"strings"

	"nuclear-grid-lab/internal/domain"
)

// RenderReport renders the human-readable end-of-run summary.
// Returns an empty string for a zero result: a degraded run exits quietly
// after logging which sources failed.
func RenderReport(result domain.SimulationResult) string {
	if result.IsZero() {
		return ""
	}

	var sb strings.Builder

	sb.WriteString("+--------------------------------------------------------+\n")
	sb.WriteString("|        NUCLEAR COUNTERFACTUAL - DAILY REPORT           |\n")
	sb.WriteString(fmt.Sprintf("|        analysis date: %-10s                       |\n", result.AnalysisDate))
	sb.WriteString("+--------------------------------+-----------------------+\n")
	sb.WriteString("| PARAMETER                      | ESTIMATED VALUE       |\n")
	sb.WriteString("+--------------------------------+-----------------------+\n")
	sb.WriteString(fmt.Sprintf("| Daily demand                   | %12.0f MWh      |\n", result.DemandMWh))
	sb.WriteString(fmt.Sprintf("| Current daily cost             | EUR %10.2f M     |\n", result.CurrentCostEUR/1e6))
	sb.WriteString(fmt.Sprintf("| Simulated daily cost           | EUR %10.2f M     |\n", result.SimulatedCostEUR/1e6))
	sb.WriteString(fmt.Sprintf("| Savings vs current             | %14.2f %%      |\n", result.SavingsPct))
	sb.WriteString(fmt.Sprintf("| Annual savings (country)       | EUR %10.2f B     |\n", result.AnnualSavingsCountryEUR/1e9))
	sb.WriteString(fmt.Sprintf("| Annual savings (household)     | EUR %10.2f       |\n", result.AnnualSavingsPerHouseholdEUR))
	sb.WriteString("+--------------------------------+-----------------------+\n")

	return sb.String()
}
