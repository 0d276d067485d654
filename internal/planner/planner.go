// Package planner ties the profile to the pure budgeting cores and includes
// functions for computing the reports the CLI and server render. Wall-clock
// defaulting lives here; every report has a fixed-time variant so the cores
// stay deterministic under test.
package planner

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/hoff1997/budgetmate/internal/config"
	"github.com/hoff1997/budgetmate/pkg/envelope"
	"github.com/hoff1997/budgetmate/pkg/paycycle"
	"github.com/hoff1997/budgetmate/pkg/scenario"
)

// TierGaps holds the summed positive savings gaps per priority tier.
type TierGaps struct {
	Essential     float64 `json:"essential"`
	Important     float64 `json:"important"`
	Discretionary float64 `json:"discretionary"`
}

// HealthReport summarizes savings pacing for every expense envelope in the
// profile. Records are sorted most urgent first; the tier map shares the
// same ordering within each tier.
type HealthReport struct {
	GeneratedAt string                              `json:"generatedAt"`
	PayCycle    paycycle.PayCycle                   `json:"payCycle"`
	Records     []envelope.Health                   `json:"records"`
	Tiers       map[envelope.Tier][]envelope.Health `json:"tiers"`
	BehindCount int                                 `json:"behindCount"`
	TotalGap    float64                             `json:"totalGap"`
	TierGaps    TierGaps                            `json:"tierGaps"`
}

// GetHealthReport computes the health report as of now.
func GetHealthReport(logger *zap.Logger, profile *config.Profile) (*HealthReport, error) {
	return GetHealthReportWithFixedTime(logger, profile, time.Now())
}

// GetHealthReportWithFixedTime computes the health report at a fixed time.
func GetHealthReportWithFixedTime(logger *zap.Logger, profile *config.Profile, fixedTime time.Time) (*HealthReport, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	cycle, err := profile.Cycle()
	if err != nil {
		return nil, err
	}
	envelopes, err := profile.EnvelopeSet()
	if err != nil {
		return nil, err
	}

	records := envelope.HealthSet(envelopes, cycle, fixedTime)
	envelope.SortByPriority(records)

	report := &HealthReport{
		GeneratedAt: fixedTime.Format(config.DateLayout),
		PayCycle:    cycle,
		Records:     records,
		Tiers:       envelope.GroupByTier(records),
		BehindCount: len(envelope.Behind(records)),
		TotalGap:    envelope.TotalGap(records),
	}
	for _, record := range records {
		if record.Gap <= 0 {
			continue
		}
		switch record.Tier {
		case envelope.Essential:
			report.TierGaps.Essential += record.Gap
		case envelope.Important:
			report.TierGaps.Important += record.Gap
		case envelope.Discretionary:
			report.TierGaps.Discretionary += record.Gap
		}
	}

	logger.Debug(fmt.Sprintf("computed health for %d envelopes, %d behind", len(records), report.BehindCount),
		zap.String("op", "planner.GetHealthReport"),
	)

	return report, nil
}

// ScenarioReport pairs the scenario definition that ran with its outcome.
type ScenarioReport struct {
	GeneratedAt string            `json:"generatedAt"`
	PayCycle    paycycle.PayCycle `json:"payCycle"`
	Scenario    scenario.Scenario `json:"scenario"`
	Result      scenario.Result   `json:"result"`
}

// GetScenarioReport simulates the named scenario as of now. The profile's
// custom scenarios are searched before the built-in library.
func GetScenarioReport(logger *zap.Logger, profile *config.Profile, scenarioID string) (*ScenarioReport, error) {
	return GetScenarioReportWithFixedTime(logger, profile, scenarioID, time.Now())
}

// GetScenarioReportWithFixedTime simulates the named scenario at a fixed time.
func GetScenarioReportWithFixedTime(logger *zap.Logger, profile *config.Profile, scenarioID string, fixedTime time.Time) (*ScenarioReport, error) {
	cycle, err := profile.Cycle()
	if err != nil {
		return nil, err
	}
	sc, ok := profile.FindScenario(cycle, scenarioID)
	if !ok {
		return nil, fmt.Errorf("unknown scenario %q", scenarioID)
	}
	return RunScenarioDefinitionWithFixedTime(logger, profile, sc, fixedTime)
}

// RunScenarioDefinition simulates an ad-hoc scenario definition as of now.
func RunScenarioDefinition(logger *zap.Logger, profile *config.Profile, sc scenario.Scenario) (*ScenarioReport, error) {
	return RunScenarioDefinitionWithFixedTime(logger, profile, sc, time.Now())
}

// RunScenarioDefinitionWithFixedTime simulates an ad-hoc scenario definition
// at a fixed time.
func RunScenarioDefinitionWithFixedTime(logger *zap.Logger, profile *config.Profile, sc scenario.Scenario, fixedTime time.Time) (*ScenarioReport, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	cycle, err := profile.Cycle()
	if err != nil {
		return nil, err
	}
	envelopes, err := profile.EnvelopeSet()
	if err != nil {
		return nil, err
	}

	for _, problem := range sc.Validate() {
		logger.Warn(problem,
			zap.String("op", "planner.RunScenarioDefinition"),
		)
	}

	result := scenario.Simulate(envelopes, cycle, sc, fixedTime)

	logger.Debug(fmt.Sprintf("scenario %s frees %.2f per pay across %d envelopes", sc.Name, result.SavingsPerPay, len(result.AffectedEnvelopes)),
		zap.String("op", "planner.RunScenarioDefinition"),
	)

	return &ScenarioReport{
		GeneratedAt: fixedTime.Format(config.DateLayout),
		PayCycle:    cycle,
		Scenario:    sc,
		Result:      result,
	}, nil
}
