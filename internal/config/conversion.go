// Package config defines conversion utilities for profile objects.
package config

import (
	"fmt"
	"time"

	"github.com/hoff1997/budgetmate/pkg/debt"
	"github.com/hoff1997/budgetmate/pkg/envelope"
	"github.com/hoff1997/budgetmate/pkg/paycycle"
	"github.com/hoff1997/budgetmate/pkg/scenario"
)

// Cycle parses the profile's pay cycle into its typed form.
func (p *Profile) Cycle() (paycycle.PayCycle, error) {
	return paycycle.Parse(p.PayCycle)
}

// EnvelopeSet converts the profile's envelope records into typed envelopes.
// This eliminates duplication in conversion logic between the CLI and the
// server. Dates must use the profile date layout; an unparseable due date is
// an error rather than a warning because the savings pacing math depends on
// it.
func (p *Profile) EnvelopeSet() ([]envelope.Envelope, error) {
	envelopes := make([]envelope.Envelope, 0, len(p.Envelopes))
	for _, env := range p.Envelopes {
		kind, err := envelope.ParseKind(env.Kind)
		if err != nil {
			return nil, fmt.Errorf("envelope %s: %w", env.Name, err)
		}
		tier, err := envelope.ParseTier(env.Tier)
		if err != nil {
			return nil, fmt.Errorf("envelope %s: %w", env.Name, err)
		}
		frequency, err := paycycle.ParseFrequency(env.Frequency)
		if err != nil {
			return nil, fmt.Errorf("envelope %s: %w", env.Name, err)
		}

		var dueDate *time.Time
		if env.DueDate != "" {
			parsed, err := time.Parse(DateLayout, env.DueDate)
			if err != nil {
				return nil, fmt.Errorf("envelope %s due date %q is invalid: %w", env.Name, env.DueDate, err)
			}
			dueDate = &parsed
		}

		envelopes = append(envelopes, envelope.Envelope{
			ID:             env.ID,
			Name:           env.Name,
			Kind:           kind,
			Tier:           tier,
			TargetAmount:   env.TargetAmount,
			CurrentBalance: env.CurrentBalance,
			PerPayAmount:   env.PerPayAmount,
			Frequency:      frequency,
			DueDate:        dueDate,
		})
	}
	return envelopes, nil
}

// Liabilities converts the profile's debt records into typed liabilities.
func (p *Profile) Liabilities() []debt.Liability {
	liabilities := make([]debt.Liability, 0, len(p.Debts))
	for _, d := range p.Debts {
		liabilities = append(liabilities, debt.Liability{
			ID:             d.ID,
			Name:           d.Name,
			Balance:        d.Balance,
			AnnualRate:     d.AnnualRate,
			MinimumPayment: d.MinimumPayment,
		})
	}
	return liabilities
}

// Strategy parses the profile's payoff strategy into its typed form.
func (p *Profile) Strategy() (debt.Strategy, error) {
	return debt.ParseStrategy(p.Payoff.Strategy)
}

// CustomScenarios converts the profile's custom scenarios into typed
// scenarios. A duration given in months is converted to pays using the pay
// cycle; an explicit pays duration wins when both are set.
func (p *Profile) CustomScenarios(cycle paycycle.PayCycle) []scenario.Scenario {
	scenarios := make([]scenario.Scenario, 0, len(p.Scenarios))
	for _, sc := range p.Scenarios {
		duration := sc.DurationPays
		if duration <= 0 {
			duration = cycle.PaysInMonths(sc.DurationMonths)
		}

		tiers := make([]envelope.Tier, 0, len(sc.Tiers))
		for _, tier := range sc.Tiers {
			parsed, err := envelope.ParseTier(tier)
			if err != nil {
				continue
			}
			tiers = append(tiers, parsed)
		}

		scenarios = append(scenarios, scenario.Scenario{
			ID:                sc.ID,
			Name:              sc.Name,
			Description:       sc.Description,
			DurationPays:      duration,
			AffectedTiers:     tiers,
			SpecificEnvelopes: sc.Match,
			ReductionPercent:  sc.ReductionPercent,
		})
	}
	return scenarios
}

// AllScenarios returns the profile's custom scenarios followed by the
// built-in library, so custom definitions list first and shadow library
// entries with the same ID in FindScenario.
func (p *Profile) AllScenarios(cycle paycycle.PayCycle) []scenario.Scenario {
	return append(p.CustomScenarios(cycle), scenario.Library(cycle)...)
}

// FindScenario locates a scenario by ID, searching the profile's custom
// scenarios before the built-in library.
func (p *Profile) FindScenario(cycle paycycle.PayCycle, id string) (scenario.Scenario, bool) {
	for _, sc := range p.AllScenarios(cycle) {
		if sc.ID == id {
			return sc, true
		}
	}
	return scenario.Scenario{}, false
}
