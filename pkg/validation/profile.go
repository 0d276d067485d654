package validation

import (
	"fmt"
	"time"

	"github.com/hoff1997/budgetmate/pkg/constants"
	"github.com/hoff1997/budgetmate/pkg/debt"
	"github.com/hoff1997/budgetmate/pkg/envelope"
	"github.com/hoff1997/budgetmate/pkg/paycycle"
)

// ValidateEnvelopeRecord checks one envelope's raw profile fields and
// returns human-readable warnings. Warnings never block a run; the config
// layer decides which ones to repair with defaults.
func ValidateEnvelopeRecord(name, kind, tier, frequency, dueDate string, target, balance, perPay float64) []string {
	var warnings []string

	if name == "" {
		warnings = append(warnings, "envelope has no name")
		name = "(unnamed)"
	}
	if kind != "" {
		if _, err := envelope.ParseKind(kind); err != nil {
			warnings = append(warnings, fmt.Sprintf("envelope '%s': %v", name, err))
		}
	}
	if tier != "" {
		if _, err := envelope.ParseTier(tier); err != nil {
			warnings = append(warnings, fmt.Sprintf("envelope '%s': %v", name, err))
		}
	}
	if frequency != "" {
		if _, err := paycycle.ParseFrequency(frequency); err != nil {
			warnings = append(warnings, fmt.Sprintf("envelope '%s': %v", name, err))
		}
	}
	if dueDate != "" {
		if _, err := time.Parse(constants.DateLayout, dueDate); err != nil {
			warnings = append(warnings, fmt.Sprintf("envelope '%s' has unparseable due date %q, expected %s", name, dueDate, constants.DateLayout))
		}
	}
	if target < 0 {
		warnings = append(warnings, fmt.Sprintf("envelope '%s' has a negative target amount %.2f", name, target))
	}
	if balance < 0 {
		warnings = append(warnings, fmt.Sprintf("envelope '%s' has a negative balance %.2f", name, balance))
	}
	if perPay < 0 {
		warnings = append(warnings, fmt.Sprintf("envelope '%s' has a negative per-pay amount %.2f", name, perPay))
	}
	if target > 0 && dueDate == "" {
		warnings = append(warnings, fmt.Sprintf("envelope '%s' has a target but no due date, savings pacing will not apply", name))
	}

	return warnings
}

// ValidateDebtRecord checks one debt's raw profile fields.
func ValidateDebtRecord(name, strategyHint string, balance, rate, minimum float64) []string {
	var warnings []string

	if name == "" {
		warnings = append(warnings, "debt has no name")
		name = "(unnamed)"
	}
	if balance < 0 {
		warnings = append(warnings, fmt.Sprintf("debt '%s' has a negative balance %.2f", name, balance))
	}
	if rate < 0 || rate > 100 {
		warnings = append(warnings, fmt.Sprintf("debt '%s' has annual rate %.2f%%, expected 0-100", name, rate))
	}
	if minimum < 0 {
		warnings = append(warnings, fmt.Sprintf("debt '%s' has a negative minimum payment %.2f", name, minimum))
	}
	if minimum > balance && balance > 0 {
		warnings = append(warnings, fmt.Sprintf("debt '%s' minimum payment %.2f exceeds its balance %.2f and will be capped", name, minimum, balance))
	}
	if strategyHint != "" {
		if _, err := debt.ParseStrategy(strategyHint); err != nil {
			warnings = append(warnings, fmt.Sprintf("debt '%s': %v", name, err))
		}
	}

	return warnings
}

// EnvelopeRecord mirrors the raw envelope fields a profile supplies.
type EnvelopeRecord struct {
	Name      string
	Kind      string
	Tier      string
	Frequency string
	DueDate   string
	Target    float64
	Balance   float64
	PerPay    float64
}

// DebtRecord mirrors the raw debt fields a profile supplies.
type DebtRecord struct {
	Name    string
	Balance float64
	Rate    float64
	Minimum float64
}

// ProfileValidator performs comprehensive validation over a whole profile.
type ProfileValidator struct {
	PayCycle  string
	Strategy  string
	Envelopes []EnvelopeRecord
	Debts     []DebtRecord
}

// ValidateAll validates the entire profile and returns warnings.
func (pv *ProfileValidator) ValidateAll() []string {
	var warnings []string

	if pv.PayCycle != "" {
		if _, err := paycycle.Parse(pv.PayCycle); err != nil {
			warnings = append(warnings, fmt.Sprintf("profile: %v", err))
		}
	}
	if pv.Strategy != "" {
		if _, err := debt.ParseStrategy(pv.Strategy); err != nil {
			warnings = append(warnings, fmt.Sprintf("profile: %v", err))
		}
	}

	for _, env := range pv.Envelopes {
		warnings = append(warnings, ValidateEnvelopeRecord(env.Name, env.Kind, env.Tier, env.Frequency, env.DueDate, env.Target, env.Balance, env.PerPay)...)
	}
	for _, d := range pv.Debts {
		warnings = append(warnings, ValidateDebtRecord(d.Name, "", d.Balance, d.Rate, d.Minimum)...)
	}

	return warnings
}
