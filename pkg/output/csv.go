package output

import (
	"fmt"
	"strings"

	"github.com/hoff1997/budgetmate/internal/planner"
)

// CsvHealth outputs the health records in comma-separated value format.
func CsvHealth(report *planner.HealthReport) {
	fmt.Printf(`"envelope","tier","paysElapsed","paysTotal","shouldHaveSaved","balance","target","gap","status","daysUntilDue","priorityReason"`)
	fmt.Printf("\n")
	for _, record := range report.Records {
		fmt.Printf(`"%s","%s","%d","%d","%.2f","%.2f","%.2f","%.2f","%s","%d","%s"`,
			record.Name, record.Tier, record.PaysElapsed, record.PaysTotal,
			record.ShouldHaveSaved, record.CurrentBalance, record.TargetAmount,
			record.Gap, record.GapStatus, record.DaysUntilDue, record.PriorityReason)
		fmt.Printf("\n")
	}
}

// CsvScenario outputs the per-envelope scenario savings in comma-separated
// value format.
func CsvScenario(report *planner.ScenarioReport) {
	fmt.Printf(`"envelope","tier","perPayBefore","perPayDuring","savedPerPay"`)
	fmt.Printf("\n")
	for _, saving := range report.Result.AffectedEnvelopes {
		fmt.Printf(`"%s","%s","%.2f","%.2f","%.2f"`,
			saving.Name, saving.Tier, saving.OldPerPay, saving.NewPerPay, saving.SavedPerPay)
		fmt.Printf("\n")
	}
}

// CsvPayday outputs the payday allocation in comma-separated value format.
// Regular allocations and surplus suggestions share one table, distinguished
// by the type column.
func CsvPayday(report *planner.PaydayReport) {
	fmt.Printf(`"type","envelope","tier","amount","detail"`)
	fmt.Printf("\n")
	for _, regular := range report.Allocation.Regular {
		fmt.Printf(`"regular","%s","%s","%.2f",""`, regular.Name, regular.Tier, regular.Amount)
		fmt.Printf("\n")
	}
	for _, suggestion := range report.Allocation.Suggestions {
		fmt.Printf(`"%s","%s","","%.2f","%s"`,
			suggestion.Kind, suggestion.EnvelopeName, suggestion.SuggestedAmount, suggestion.Reason)
		fmt.Printf("\n")
	}
}

// CsvPayoff outputs the month-by-month payoff history in comma-separated
// value format. Debts settled in a month are listed in its paidOff column.
func CsvPayoff(report *planner.PayoffReport) {
	fmt.Printf(`"month","balance","paidOff"`)
	fmt.Printf("\n")
	result := report.WithBudget
	if result == nil {
		return
	}

	settled := make(map[int][]string)
	for _, event := range result.PayoffOrder {
		settled[event.Month] = append(settled[event.Month], event.Name)
	}
	for _, point := range result.History {
		fmt.Printf(`"%d","%.2f","%s"`, point.Month, point.Balance, strings.Join(settled[point.Month], ","))
		fmt.Printf("\n")
	}
}
