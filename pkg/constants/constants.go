// Package constants provides shared constants for the budgetmate engine.
package constants

// DateLayout is the format expected for dates in profile files and is also
// the output date format.
const DateLayout = "2006-01-02"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Pay cycle lengths in calendar days, used for ceiling conversions between
// elapsed days and pay counts. The monthly figure is the mean Gregorian
// month (365.25 / 12).
const (
	// WeeklyCycleDays is the length of a weekly pay cycle
	WeeklyCycleDays = 7.0

	// FortnightlyCycleDays is the length of a fortnightly pay cycle
	FortnightlyCycleDays = 14.0

	// MonthlyCycleDays is the mean length of a monthly pay cycle
	MonthlyCycleDays = 30.44
)

// Pays-per-month factors for converting per-pay figures to monthly figures.
const (
	// WeeklyPaysPerMonth is the average number of weekly pays in a month
	WeeklyPaysPerMonth = 4.33

	// FortnightlyPaysPerMonth is the average number of fortnightly pays in a month
	FortnightlyPaysPerMonth = 2.17

	// MonthlyPaysPerMonth is the number of monthly pays in a month
	MonthlyPaysPerMonth = 1.0
)

// Envelope health constants
const (
	// GapStatusBand is the fixed currency band around a zero gap; gaps beyond
	// +band are behind and gaps beyond -band are ahead, independent of
	// envelope size.
	GapStatusBand = 50.0

	// NeutralPriorityScore is the score assigned to envelopes with no due
	// date; large enough to sort after any dated envelope.
	NeutralPriorityScore = 1000000.0
)

// Payday allocation constants
const (
	// NewGoalMinimum is the smallest leftover surplus worth seeding a new
	// goal with; smaller remainders are suggested as buffer instead.
	NewGoalMinimum = 50.0
)

// Debt payoff simulation constants
const (
	// PayoffMonthsCeiling is the hard iteration limit for the payoff
	// simulation (50 years).
	PayoffMonthsCeiling = 600

	// PaidOffThreshold is the balance at or below which a debt counts as
	// paid off, absorbing float rounding noise.
	PaidOffThreshold = 0.5

	// StagnationWindowMonths is how many consecutive no-progress months
	// abort the simulation.
	StagnationWindowMonths = 3

	// StagnationMinimumProgress is the smallest monthly decrease in the
	// aggregate balance that counts as progress.
	StagnationMinimumProgress = 0.5

	// MultiDecadeWarningMonths is the projection length beyond which a
	// long-payoff warning is attached.
	MultiDecadeWarningMonths = 240

	// HybridRateTieBand is the interest-rate spread (percentage points)
	// within which the hybrid strategy treats rates as tied.
	HybridRateTieBand = 1.5
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default profile file name
	DefaultConfigFile = "budget.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxBodyBytes is the default maximum request body size (256 KB)
	DefaultMaxBodyBytes int64 = 256 * 1024
)
