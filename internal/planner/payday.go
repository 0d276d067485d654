package planner

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/hoff1997/budgetmate/internal/config"
	"github.com/hoff1997/budgetmate/pkg/payday"
)

// PaydayReport wraps a payday allocation with the time it was computed.
type PaydayReport struct {
	GeneratedAt string            `json:"generatedAt"`
	Allocation  payday.Allocation `json:"allocation"`
}

// GetPaydayReport allocates a pay as of now. A non-positive payAmount falls
// back to the profile's configured payday amount.
func GetPaydayReport(logger *zap.Logger, profile *config.Profile, payAmount float64) (*PaydayReport, error) {
	return GetPaydayReportWithFixedTime(logger, profile, payAmount, time.Now())
}

// GetPaydayReportWithFixedTime allocates a pay at a fixed time.
func GetPaydayReportWithFixedTime(logger *zap.Logger, profile *config.Profile, payAmount float64, fixedTime time.Time) (*PaydayReport, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if payAmount <= 0 {
		payAmount = profile.Payday.PayAmount
	}

	cycle, err := profile.Cycle()
	if err != nil {
		return nil, err
	}
	envelopes, err := profile.EnvelopeSet()
	if err != nil {
		return nil, err
	}

	allocation := payday.Allocate(payAmount, envelopes, cycle, fixedTime)

	logger.Debug(fmt.Sprintf("allocated %.2f with surplus %.2f (%s)", allocation.PayAmount, allocation.Surplus, allocation.SurplusStatus),
		zap.String("op", "planner.GetPaydayReport"),
	)

	return &PaydayReport{
		GeneratedAt: fixedTime.Format(config.DateLayout),
		Allocation:  allocation,
	}, nil
}

// ApplyPaydaySuggestion replays one suggestion against the current profile
// as of now. Amounts are recomputed at apply time, so a suggestion produced
// from stale balances is capped rather than overdrawn.
func ApplyPaydaySuggestion(logger *zap.Logger, profile *config.Profile, payAmount float64, suggestion payday.Suggestion) (*payday.Application, error) {
	return ApplyPaydaySuggestionWithFixedTime(logger, profile, payAmount, suggestion, time.Now())
}

// ApplyPaydaySuggestionWithFixedTime replays one suggestion at a fixed time.
func ApplyPaydaySuggestionWithFixedTime(logger *zap.Logger, profile *config.Profile, payAmount float64, suggestion payday.Suggestion, fixedTime time.Time) (*payday.Application, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if payAmount <= 0 {
		payAmount = profile.Payday.PayAmount
	}

	cycle, err := profile.Cycle()
	if err != nil {
		return nil, err
	}
	envelopes, err := profile.EnvelopeSet()
	if err != nil {
		return nil, err
	}

	application := payday.ApplySuggestion(payAmount, envelopes, cycle, suggestion, fixedTime)

	logger.Debug(fmt.Sprintf("applied %s suggestion for %.2f, %.2f left unallocated", application.Kind, application.TotalApplied, application.Unallocated),
		zap.String("op", "planner.ApplyPaydaySuggestion"),
	)

	return &application, nil
}
