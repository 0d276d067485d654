// Package paycycle provides the pay cycle and recurrence frequency types and
// the conversions between calendar time and pay counts.
package paycycle

import (
	"fmt"
	"strings"
	"time"

	"github.com/hoff1997/budgetmate/pkg/constants"
	"github.com/hoff1997/budgetmate/pkg/mathutil"
)

// PayCycle is the cadence at which the owning user is paid. It drives every
// conversion from calendar days into "number of pays".
type PayCycle string

// Supported pay cycles.
const (
	Weekly      PayCycle = "weekly"
	Fortnightly PayCycle = "fortnightly"
	Monthly     PayCycle = "monthly"
)

// Parse normalizes a pay cycle string, rejecting anything unsupported.
func Parse(value string) (PayCycle, error) {
	switch PayCycle(strings.ToLower(strings.TrimSpace(value))) {
	case Weekly:
		return Weekly, nil
	case Fortnightly:
		return Fortnightly, nil
	case Monthly:
		return Monthly, nil
	}
	return "", fmt.Errorf("unsupported pay cycle %q", value)
}

// Valid reports whether the pay cycle is one of the supported cadences.
func (pc PayCycle) Valid() bool {
	switch pc {
	case Weekly, Fortnightly, Monthly:
		return true
	}
	return false
}

// Days returns the length of one pay cycle in calendar days. Monthly uses
// the mean Gregorian month so that ceiling conversions stay stable across
// month lengths.
func (pc PayCycle) Days() float64 {
	switch pc {
	case Weekly:
		return constants.WeeklyCycleDays
	case Fortnightly:
		return constants.FortnightlyCycleDays
	case Monthly:
		return constants.MonthlyCycleDays
	}
	return 0
}

// PaysPerMonth returns the average number of pays that land in one month.
func (pc PayCycle) PaysPerMonth() float64 {
	switch pc {
	case Weekly:
		return constants.WeeklyPaysPerMonth
	case Fortnightly:
		return constants.FortnightlyPaysPerMonth
	case Monthly:
		return constants.MonthlyPaysPerMonth
	}
	return 0
}

// PaysBetween converts the span from one instant to another into a whole
// number of pays using ceiling division on elapsed days. Spans that end
// before they start count as zero pays.
func (pc PayCycle) PaysBetween(from, to time.Time) int {
	days := DaysBetween(from, to)
	if days <= 0 {
		return 0
	}
	return mathutil.CeilQuotient(days, pc.Days())
}

// PaysInMonths converts a duration expressed in months into the number of
// pays it spans for this cycle, rounding partial pays up.
func (pc PayCycle) PaysInMonths(months int) int {
	if months <= 0 {
		return 0
	}
	return mathutil.CeilQuotient(float64(months)*pc.PaysPerMonth(), 1)
}

// DaysBetween returns the fractional number of days from one instant to
// another; negative when to precedes from.
func DaysBetween(from, to time.Time) float64 {
	return to.Sub(from).Hours() / 24
}

// Frequency is the recurrence cadence of an envelope's due date.
type Frequency string

// Supported envelope frequencies.
const (
	FrequencyWeekly      Frequency = "weekly"
	FrequencyFortnightly Frequency = "fortnightly"
	FrequencyMonthly     Frequency = "monthly"
	FrequencyQuarterly   Frequency = "quarterly"
	FrequencyAnnual      Frequency = "annual"
	FrequencyOnce        Frequency = "once"
)

// ParseFrequency normalizes a frequency string, rejecting anything
// unsupported.
func ParseFrequency(value string) (Frequency, error) {
	switch Frequency(strings.ToLower(strings.TrimSpace(value))) {
	case FrequencyWeekly:
		return FrequencyWeekly, nil
	case FrequencyFortnightly:
		return FrequencyFortnightly, nil
	case FrequencyMonthly:
		return FrequencyMonthly, nil
	case FrequencyQuarterly:
		return FrequencyQuarterly, nil
	case FrequencyAnnual:
		return FrequencyAnnual, nil
	case FrequencyOnce:
		return FrequencyOnce, nil
	}
	return "", fmt.Errorf("unsupported frequency %q", value)
}

// Valid reports whether the frequency is one of the supported cadences.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyWeekly, FrequencyFortnightly, FrequencyMonthly,
		FrequencyQuarterly, FrequencyAnnual, FrequencyOnce:
		return true
	}
	return false
}

// StepBack returns the instant one recurrence period before t. This is how a
// due date is converted into the start of its saving period. One-off
// envelopes save over a single month-long window.
func (f Frequency) StepBack(t time.Time) time.Time {
	switch f {
	case FrequencyWeekly:
		return t.AddDate(0, 0, -7)
	case FrequencyFortnightly:
		return t.AddDate(0, 0, -14)
	case FrequencyQuarterly:
		return t.AddDate(0, -3, 0)
	case FrequencyAnnual:
		return t.AddDate(-1, 0, 0)
	case FrequencyMonthly, FrequencyOnce:
		return t.AddDate(0, -1, 0)
	}
	return t
}
