package debt

import (
	"fmt"
	"math"
	"time"

	"github.com/hoff1997/budgetmate/pkg/constants"
	"github.com/hoff1997/budgetmate/pkg/mathutil"
)

// PayoffEvent records a debt reaching zero, with the simulation month it
// happened in.
type PayoffEvent struct {
	DebtID string `json:"debtId"`
	Name   string `json:"name"`
	Month  int    `json:"month"`
}

// HistoryPoint is the aggregate remaining balance at the end of one
// simulated month.
type HistoryPoint struct {
	Month   int     `json:"month"`
	Balance float64 `json:"balance"`
}

// PayoffResult is the outcome of one payoff simulation. Stalled is set when
// the simulation aborted (stagnation or the month ceiling) with balance
// still owing.
type PayoffResult struct {
	Strategy          Strategy       `json:"strategy"`
	RequestedBudget   float64        `json:"requestedBudget"`
	MonthlyCommitment float64        `json:"monthlyCommitment"`
	Months            int            `json:"months"`
	TotalInterest     float64        `json:"totalInterest"`
	PayoffDate        string         `json:"payoffDate,omitempty"`
	PayoffOrder       []PayoffEvent  `json:"payoffOrder"`
	History           []HistoryPoint `json:"history"`
	Warnings          []string       `json:"warnings,omitempty"`
	Stalled           bool           `json:"stalled"`
}

// Simulate runs the month-by-month payoff of the given debts under the
// strategy, spending monthlyBudget each month (or the combined minimum
// payments, whichever is higher). It returns nil when there is nothing to
// simulate: a non-positive budget, no debts, or no debt with a positive
// balance.
//
// Each month interest accrues first, then every open debt receives its
// minimum payment from a shared pool, and whatever remains rolls onto the
// first open debt in strategy order. The loop stops at payoff, after three
// consecutive months without visible progress, or at the month ceiling.
func Simulate(debts []Liability, strategy Strategy, monthlyBudget float64, now time.Time) *PayoffResult {
	if monthlyBudget <= 0 {
		return nil
	}
	working := newWorkingSet(debts, strategy)
	if len(working) == 0 {
		return nil
	}

	totalMinimums := 0.0
	startingBalance := 0.0
	for _, w := range working {
		totalMinimums += w.minimum
		startingBalance += w.balance
	}
	commitment := math.Max(monthlyBudget, totalMinimums)

	result := &PayoffResult{
		Strategy:          strategy,
		RequestedBudget:   mathutil.Round(monthlyBudget),
		MonthlyCommitment: mathutil.Round(commitment),
		PayoffOrder:       []PayoffEvent{},
		History:           make([]HistoryPoint, 0, 64),
	}

	previous := mathutil.Round(startingBalance)
	totalInterest := 0.0
	stagnantMonths := 0

	for month := 1; month <= constants.PayoffMonthsCeiling; month++ {
		for i := range working {
			if working[i].paidOff {
				continue
			}
			interest := working[i].balance * working[i].monthlyRate
			working[i].balance += interest
			totalInterest += interest
		}

		pool := commitment
		for i := range working {
			if working[i].paidOff || !mathutil.IsPositive(pool) {
				continue
			}
			payment := math.Min(pool, math.Min(working[i].minimum, working[i].balance))
			working[i].balance -= payment
			pool -= payment
		}
		for i := range working {
			if !mathutil.IsPositive(pool) {
				break
			}
			if working[i].paidOff || working[i].balance <= 0 {
				continue
			}
			payment := math.Min(pool, working[i].balance)
			working[i].balance -= payment
			pool -= payment
		}

		aggregate := 0.0
		for _, w := range working {
			if !w.paidOff {
				aggregate += w.balance
			}
		}
		aggregate = mathutil.Round(aggregate)
		result.History = append(result.History, HistoryPoint{Month: month, Balance: aggregate})

		for i := range working {
			if working[i].paidOff || working[i].balance > constants.PaidOffThreshold {
				continue
			}
			working[i].paidOff = true
			working[i].balance = 0
			result.PayoffOrder = append(result.PayoffOrder, PayoffEvent{
				DebtID: working[i].id,
				Name:   working[i].name,
				Month:  month,
			})
		}

		result.Months = month
		if aggregate <= constants.PaidOffThreshold {
			result.PayoffDate = now.AddDate(0, month, 0).Format(constants.DateLayout)
			break
		}

		if previous-aggregate < constants.StagnationMinimumProgress {
			stagnantMonths++
		} else {
			stagnantMonths = 0
		}
		previous = aggregate
		if stagnantMonths >= constants.StagnationWindowMonths {
			result.Warnings = append(result.Warnings, "payments are barely covering interest, balances are not reducing")
			result.Stalled = true
			break
		}
		if month == constants.PayoffMonthsCeiling {
			result.Warnings = append(result.Warnings, fmt.Sprintf("payoff did not complete within %d months", constants.PayoffMonthsCeiling))
			result.Stalled = true
		}
	}

	if !result.Stalled && result.Months > constants.MultiDecadeWarningMonths {
		result.Warnings = append(result.Warnings, fmt.Sprintf("payoff takes more than %d years", constants.MultiDecadeWarningMonths/constants.MonthsPerYear))
	}
	result.TotalInterest = mathutil.Round(totalInterest)
	return result
}
