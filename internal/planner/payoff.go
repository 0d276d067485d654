package planner

import (
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/hoff1997/budgetmate/internal/config"
	"github.com/hoff1997/budgetmate/pkg/debt"
	"github.com/hoff1997/budgetmate/pkg/mathutil"
)

// PayoffReport holds the twice-run payoff comparison: once at the minimum
// payments alone and once at the requested monthly budget. MonthsSaved and
// InterestSaved are reported only when both runs complete.
type PayoffReport struct {
	GeneratedAt   string             `json:"generatedAt"`
	Strategy      debt.Strategy      `json:"strategy"`
	MinimumOnly   *debt.PayoffResult `json:"minimumOnly,omitempty"`
	WithBudget    *debt.PayoffResult `json:"withBudget,omitempty"`
	MonthsSaved   int                `json:"monthsSaved"`
	InterestSaved float64            `json:"interestSaved"`
}

// GetPayoffReport simulates debt payoff as of now. An empty strategy or
// non-positive budget falls back to the profile's payoff settings.
func GetPayoffReport(logger *zap.Logger, profile *config.Profile, strategy string, monthlyBudget float64) (*PayoffReport, error) {
	return GetPayoffReportWithFixedTime(logger, profile, strategy, monthlyBudget, time.Now())
}

// GetPayoffReportWithFixedTime simulates debt payoff at a fixed time.
func GetPayoffReportWithFixedTime(logger *zap.Logger, profile *config.Profile, strategy string, monthlyBudget float64, fixedTime time.Time) (*PayoffReport, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if strategy == "" {
		strategy = profile.Payoff.Strategy
	}
	if monthlyBudget <= 0 {
		monthlyBudget = profile.Payoff.MonthlyBudget
	}

	parsed, err := debt.ParseStrategy(strategy)
	if err != nil {
		return nil, err
	}
	liabilities := profile.Liabilities()

	totalMinimums := 0.0
	for _, liability := range liabilities {
		if liability.Balance <= 0 {
			continue
		}
		totalMinimums += math.Min(liability.MinimumPayment, liability.Balance)
	}

	report := &PayoffReport{
		GeneratedAt: fixedTime.Format(config.DateLayout),
		Strategy:    parsed,
		MinimumOnly: debt.Simulate(liabilities, parsed, totalMinimums, fixedTime),
		WithBudget:  debt.Simulate(liabilities, parsed, monthlyBudget, fixedTime),
	}

	if report.MinimumOnly != nil && report.WithBudget != nil && !report.MinimumOnly.Stalled && !report.WithBudget.Stalled {
		report.MonthsSaved = report.MinimumOnly.Months - report.WithBudget.Months
		report.InterestSaved = mathutil.Round(report.MinimumOnly.TotalInterest - report.WithBudget.TotalInterest)
	}

	if report.WithBudget != nil {
		logger.Debug(fmt.Sprintf("%s payoff takes %d months, saving %d months over minimums", parsed, report.WithBudget.Months, report.MonthsSaved),
			zap.String("op", "planner.GetPayoffReport"),
		)
	}

	return report, nil
}
