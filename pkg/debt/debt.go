// Package debt simulates month-by-month payoff of a basket of
// interest-bearing balances under snowball, avalanche, or hybrid repayment
// ordering.
package debt

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/hoff1997/budgetmate/pkg/constants"
)

// Strategy selects the repayment ordering.
type Strategy string

// Repayment strategies. Snowball clears small balances first, avalanche
// attacks the highest rate first, and hybrid follows the rate order but
// breaks near-equal rates (within 1.5 percentage points) by ascending
// balance.
const (
	Snowball  Strategy = "snowball"
	Avalanche Strategy = "avalanche"
	Hybrid    Strategy = "hybrid"
)

// ParseStrategy normalizes a strategy string.
func ParseStrategy(value string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(value))) {
	case Snowball:
		return Snowball, nil
	case Avalanche:
		return Avalanche, nil
	case Hybrid:
		return Hybrid, nil
	}
	return "", fmt.Errorf("unsupported payoff strategy %q", value)
}

// Liability is one interest-bearing balance as supplied by the boundary
// layer. MinimumPayment is externally estimated; the simulator caps it at
// the balance but otherwise trusts it.
type Liability struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Balance        float64 `json:"balance"`
	AnnualRate     float64 `json:"annualRate"`
	MinimumPayment float64 `json:"minimumPayment"`
}

// workingDebt is the mutable per-debt state local to one simulation call.
// Copies never escape the simulation.
type workingDebt struct {
	id          string
	name        string
	balance     float64
	annualRate  float64
	monthlyRate float64
	minimum     float64
	paidOff     bool
}

// newWorkingSet copies the open liabilities into simulation state, ordered
// by the strategy.
func newWorkingSet(debts []Liability, strategy Strategy) []workingDebt {
	working := make([]workingDebt, 0, len(debts))
	for _, d := range debts {
		if d.Balance <= 0 {
			continue
		}
		working = append(working, workingDebt{
			id:          d.ID,
			name:        d.Name,
			balance:     d.Balance,
			annualRate:  d.AnnualRate,
			monthlyRate: d.AnnualRate / constants.PercentageMultiplier / float64(constants.MonthsPerYear),
			minimum:     math.Min(d.MinimumPayment, d.Balance),
		})
	}

	switch strategy {
	case Snowball:
		sort.SliceStable(working, func(i, j int) bool {
			return working[i].balance < working[j].balance
		})
	case Avalanche:
		sort.SliceStable(working, func(i, j int) bool {
			return working[i].annualRate > working[j].annualRate
		})
	case Hybrid:
		sort.SliceStable(working, func(i, j int) bool {
			if math.Abs(working[i].annualRate-working[j].annualRate) <= constants.HybridRateTieBand {
				return working[i].balance < working[j].balance
			}
			return working[i].annualRate > working[j].annualRate
		})
	}
	return working
}
