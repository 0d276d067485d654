// Package validation provides boundary-layer validation utilities. The core
// calculators assume validated numeric and date inputs; everything here runs
// before records reach them.
package validation

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a human-entered currency string into a float64
// rounded to cents. It tolerates a leading dollar sign, thousands separators,
// and surrounding whitespace ("$4,200.00" parses to 4200).
func ParseAmount(value string) (float64, error) {
	cleaned := strings.TrimSpace(value)
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return 0, fmt.Errorf("empty amount")
	}

	parsed, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, fmt.Errorf("unparseable amount %q: %w", value, err)
	}
	return parsed.Round(2).InexactFloat64(), nil
}

// ParseOptionalAmount behaves like ParseAmount but treats an empty string as
// zero rather than an error.
func ParseOptionalAmount(value string) (float64, error) {
	if strings.TrimSpace(value) == "" {
		return 0, nil
	}
	return ParseAmount(value)
}
