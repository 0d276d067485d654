// Package output provides utilities for formatting and displaying budget reports.
package output

import (
	"encoding/json"
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/hoff1997/budgetmate/internal/planner"
	"github.com/hoff1997/budgetmate/pkg/format"
	"github.com/hoff1997/budgetmate/pkg/payday"
)

// PrettyHealth outputs a human-readable health table, most urgent first.
func PrettyHealth(report *planner.HealthReport) {
	p := message.NewPrinter(language.English)
	fmt.Printf("--- Envelope health as of %s (%s pay cycle) ---\n", report.GeneratedAt, report.PayCycle)
	fmt.Printf("Envelope | Tier | Pace | Balance | Gap | Status | Priority\n")
	fmt.Printf("________ | ____ | ____ | _______ | ___ | ______ | ________\n")
	for _, record := range report.Records {
		_, _ = p.Printf("%s | %s | $%.2f | $%.2f | %s | %s | %s\n",
			record.Name, record.Tier, record.ShouldHaveSaved, record.CurrentBalance,
			format.SignedCurrency(record.Gap), record.GapStatus, record.PriorityReason)
	}
	fmt.Printf("%d of %d envelopes behind, %s needed to catch up\n",
		report.BehindCount, len(report.Records), format.Currency(report.TotalGap))
	fmt.Printf("Gap by tier: essential %s, important %s, discretionary %s\n",
		format.Currency(report.TierGaps.Essential), format.Currency(report.TierGaps.Important), format.Currency(report.TierGaps.Discretionary))
}

// PrettyScenario outputs a human-readable scenario projection.
func PrettyScenario(report *planner.ScenarioReport) {
	p := message.NewPrinter(language.English)
	result := report.Result
	fmt.Printf("--- Results for scenario %s ---\n", result.ScenarioName)
	if report.Scenario.Description != "" {
		fmt.Printf("%s\n", report.Scenario.Description)
	}
	_, _ = p.Printf("Frees $%.2f per pay ($%.2f per month) for %d pays\n",
		result.SavingsPerPay, result.SavingsPerMonth, result.DurationPays)
	fmt.Printf("Envelope | Tier | Per pay | During scenario | Saved\n")
	fmt.Printf("________ | ____ | _______ | _______________ | _____\n")
	for _, saving := range result.AffectedEnvelopes {
		_, _ = p.Printf("%s | %s | $%.2f | $%.2f | $%.2f\n",
			saving.Name, saving.Tier, saving.OldPerPay, saving.NewPerPay, saving.SavedPerPay)
	}
	_, _ = p.Printf("Total savings: $%.2f against a current gap of $%.2f\n", result.TotalSavings, result.CurrentGap)
	_, _ = p.Printf("Gap closed: $%.2f, leaving $%.2f\n", result.GapClosed, result.GapAfterScenario)
	if result.LeftoverBuffer > 0 {
		_, _ = p.Printf("Leftover buffer: $%.2f\n", result.LeftoverBuffer)
	}
	if result.PaysToCloseGap > 0 {
		fmt.Printf("Pays to close the gap at this rate: %d\n", result.PaysToCloseGap)
	}
}

// PrettyPayday outputs a human-readable payday allocation with suggestions.
func PrettyPayday(report *planner.PaydayReport) {
	p := message.NewPrinter(language.English)
	allocation := report.Allocation
	_, _ = p.Printf("--- Payday allocation for $%.2f (%s pay) ---\n", allocation.PayAmount, allocation.PayCycle)
	fmt.Printf("Envelope | Tier | Amount\n")
	fmt.Printf("________ | ____ | ______\n")
	for _, regular := range allocation.Regular {
		_, _ = p.Printf("%s | %s | $%.2f\n", regular.Name, regular.Tier, regular.Amount)
	}
	_, _ = p.Printf("Committed $%.2f of $%.2f", allocation.TotalRegular, allocation.PayAmount)
	switch allocation.SurplusStatus {
	case payday.SurplusShortfall:
		_, _ = p.Printf(", short by $%.2f\n", -allocation.Surplus)
	case payday.SurplusExact:
		fmt.Printf(", nothing left over\n")
	default:
		_, _ = p.Printf(", $%.2f left over\n", allocation.Surplus)
	}
	if allocation.BehindCount > 0 {
		_, _ = p.Printf("Envelopes behind: %d ($%.2f total)\n", allocation.BehindCount, allocation.BehindGap)
	}
	if len(allocation.Suggestions) > 0 {
		fmt.Printf("Suggestions:\n")
		for _, suggestion := range allocation.Suggestions {
			if suggestion.EnvelopeName != "" {
				_, _ = p.Printf("  %s %s with $%.2f (%s)\n",
					suggestion.Kind, suggestion.EnvelopeName, suggestion.SuggestedAmount, suggestion.Reason)
			} else {
				_, _ = p.Printf("  %s $%.2f (%s)\n", suggestion.Kind, suggestion.SuggestedAmount, suggestion.Reason)
			}
		}
	}
}

// PrettyPayoff outputs a human-readable payoff projection with the
// minimum-only comparison.
func PrettyPayoff(report *planner.PayoffReport) {
	p := message.NewPrinter(language.English)
	fmt.Printf("--- Debt payoff (%s) ---\n", report.Strategy)
	result := report.WithBudget
	if result == nil {
		fmt.Printf("No open debts to pay down\n")
		return
	}
	_, _ = p.Printf("Monthly commitment $%.2f (requested $%.2f)\n", result.MonthlyCommitment, result.RequestedBudget)
	if result.Stalled {
		fmt.Printf("Payoff does not complete at this commitment\n")
	} else {
		_, _ = p.Printf("Debt free in %d months (%s) paying $%.2f interest\n",
			result.Months, result.PayoffDate, result.TotalInterest)
	}
	if len(result.PayoffOrder) > 0 {
		fmt.Printf("Payoff order:\n")
		for i, event := range result.PayoffOrder {
			fmt.Printf("  %d. %s (month %d)\n", i+1, event.Name, event.Month)
		}
	}
	if report.MonthsSaved > 0 || report.InterestSaved > 0 {
		_, _ = p.Printf("Versus minimum payments alone: %d months sooner, $%.2f less interest\n",
			report.MonthsSaved, report.InterestSaved)
	}
	for _, warning := range result.Warnings {
		fmt.Printf("Warning: %s\n", warning)
	}
}

// JSONFormat outputs any report as indented JSON.
func JSONFormat(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
