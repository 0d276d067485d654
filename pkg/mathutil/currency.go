// Package mathutil provides common mathematical utility functions for
// currency arithmetic.
package mathutil

import (
	"math"

	"github.com/hoff1997/budgetmate/pkg/constants"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Used for making logical comparisons.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// IsZero checks if a value is effectively zero (within tolerance)
func IsZero(val float64) bool {
	return math.Abs(val) <= constants.CurrencyTolerance
}

// IsPositive checks if a value is positive (greater than tolerance)
func IsPositive(val float64) bool {
	return val > constants.CurrencyTolerance
}

// IsNegative checks if a value is negative (less than negative tolerance)
func IsNegative(val float64) bool {
	return val < -constants.CurrencyTolerance
}

// Min returns the minimum of two float64 values
func Min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// Max returns the maximum of two float64 values
func Max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// Floor0 clamps a value to zero when negative.
func Floor0(val float64) float64 {
	if val < 0 {
		return 0
	}
	return val
}

// CeilQuotient divides value by divisor and rounds the quotient up to the
// next whole number. A non-positive divisor yields 0.
func CeilQuotient(value, divisor float64) int {
	if divisor <= 0 {
		return 0
	}
	return int(math.Ceil(value / divisor))
}

// PercentOf calculates what percentage value is of total
func PercentOf(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return (value / total) * constants.PercentageMultiplier
}

// ApplyPercent applies a percentage to a value
func ApplyPercent(value, percentage float64) float64 {
	return value * (percentage / constants.PercentageMultiplier)
}
