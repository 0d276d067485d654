package debt

import (
	"math"
	"strings"

	"github.com/hoff1997/budgetmate/pkg/mathutil"
)

// EstimateMinimumPayment derives a plausible minimum payment from the
// balance and liability kind when the profile does not supply one. The
// heuristic is percent-of-balance with a per-kind floor, capped at the
// balance itself. Unknown kinds fall back to the credit card rule.
func EstimateMinimumPayment(kind string, balance float64) float64 {
	if balance <= 0 {
		return 0
	}

	var percent, floor float64
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "store-card", "store card":
		percent, floor = 3.0, 15.00
	case "personal-loan", "personal loan":
		percent, floor = 2.5, 50.00
	case "car-loan", "car loan":
		percent, floor = 2.5, 100.00
	case "overdraft":
		percent, floor = 5.0, 10.00
	default:
		percent, floor = 2.0, 25.00
	}

	estimate := math.Max(mathutil.ApplyPercent(balance, percent), floor)
	return mathutil.Round(math.Min(estimate, balance))
}
