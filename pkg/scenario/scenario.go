// Package scenario projects the effect of temporary spending reductions on
// the envelope set, including how quickly the freed money could close the
// current savings gaps.
package scenario

import (
	"fmt"
	"strings"
	"time"

	"github.com/hoff1997/budgetmate/pkg/envelope"
	"github.com/hoff1997/budgetmate/pkg/mathutil"
	"github.com/hoff1997/budgetmate/pkg/paycycle"
)

// Scenario is a named hypothetical spending reduction. It touches every
// expense envelope whose tier is in AffectedTiers; when SpecificEnvelopes is
// non-empty the set is narrowed to envelopes whose name contains one of the
// given substrings (case-insensitive). ReductionPercent applies to the
// committed per-pay amount of each affected envelope for DurationPays pays.
type Scenario struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Description       string          `json:"description,omitempty"`
	DurationPays      int             `json:"durationPays"`
	AffectedTiers     []envelope.Tier `json:"affectedTiers"`
	SpecificEnvelopes []string        `json:"specificEnvelopes,omitempty"`
	ReductionPercent  float64         `json:"reductionPercent"`
}

// Validate reports problems with the scenario definition as human-readable
// warnings. The simulator itself assumes a validated scenario.
func (s Scenario) Validate() []string {
	var warnings []string
	if strings.TrimSpace(s.Name) == "" {
		warnings = append(warnings, "scenario has no name")
	}
	if s.DurationPays <= 0 {
		warnings = append(warnings, fmt.Sprintf("scenario %s has a non-positive duration of %d pays", s.Name, s.DurationPays))
	}
	if s.ReductionPercent < 0 || s.ReductionPercent > 100 {
		warnings = append(warnings, fmt.Sprintf("scenario %s has reduction %.1f%%, expected 0-100", s.Name, s.ReductionPercent))
	}
	if len(s.AffectedTiers) == 0 {
		warnings = append(warnings, fmt.Sprintf("scenario %s affects no priority tiers", s.Name))
	}
	for _, tier := range s.AffectedTiers {
		if _, err := envelope.ParseTier(string(tier)); err != nil {
			warnings = append(warnings, fmt.Sprintf("scenario %s: %v", s.Name, err))
		}
	}
	return warnings
}

// Affects reports whether the scenario touches the given envelope. Income
// envelopes are never affected.
func (s Scenario) Affects(env envelope.Envelope) bool {
	if !env.IsExpense() {
		return false
	}
	inTier := false
	for _, tier := range s.AffectedTiers {
		if env.Tier == tier {
			inTier = true
			break
		}
	}
	if !inTier {
		return false
	}
	if len(s.SpecificEnvelopes) == 0 {
		return true
	}
	name := strings.ToLower(env.Name)
	for _, substring := range s.SpecificEnvelopes {
		if strings.Contains(name, strings.ToLower(substring)) {
			return true
		}
	}
	return false
}

// EnvelopeSaving is the per-envelope effect of a scenario on the committed
// per-pay budget.
type EnvelopeSaving struct {
	EnvelopeID  string        `json:"envelopeId"`
	Name        string        `json:"name"`
	Tier        envelope.Tier `json:"tier"`
	OldPerPay   float64       `json:"oldPerPay"`
	NewPerPay   float64       `json:"newPerPay"`
	SavedPerPay float64       `json:"savedPerPay"`
}

// TierHealth partitions a projected health set by priority tier for display.
type TierHealth struct {
	Essential     []envelope.Health `json:"essential"`
	Important     []envelope.Health `json:"important"`
	Discretionary []envelope.Health `json:"discretionary"`
}

// Result is the full projection for one scenario run.
type Result struct {
	ScenarioID        string           `json:"scenarioId"`
	ScenarioName      string           `json:"scenarioName"`
	DurationPays      int              `json:"durationPays"`
	ReductionPercent  float64          `json:"reductionPercent"`
	AffectedEnvelopes []EnvelopeSaving `json:"affectedEnvelopes"`
	SavingsPerPay     float64          `json:"savingsPerPay"`
	SavingsPerMonth   float64          `json:"savingsPerMonth"`
	TotalSavings      float64          `json:"totalSavings"`
	CurrentGap        float64          `json:"currentGap"`
	GapClosed         float64          `json:"gapClosed"`
	GapAfterScenario  float64          `json:"gapAfterScenario"`
	PaysToCloseGap    int              `json:"paysToCloseGap"`
	LeftoverBuffer    float64          `json:"leftoverBuffer"`
	ProjectedHealth   TierHealth       `json:"projectedHealth"`
}

// Simulate projects the scenario against the envelope set as of now.
//
// The freed money is distributed greedily across the current positive gaps,
// most urgent priority score first, each envelope capped at its own gap.
// Whatever remains after every gap is closed is reported as leftover buffer.
// The projected health set is recomputed from the topped-up balances so its
// gaps and statuses stay internally consistent.
func Simulate(envelopes []envelope.Envelope, cycle paycycle.PayCycle, sc Scenario, now time.Time) Result {
	result := Result{
		ScenarioID:       sc.ID,
		ScenarioName:     sc.Name,
		DurationPays:     sc.DurationPays,
		ReductionPercent: sc.ReductionPercent,
	}

	savingsPerPay := 0.0
	for _, env := range envelopes {
		if !sc.Affects(env) {
			continue
		}
		saved := mathutil.ApplyPercent(env.PerPayAmount, sc.ReductionPercent)
		result.AffectedEnvelopes = append(result.AffectedEnvelopes, EnvelopeSaving{
			EnvelopeID:  env.ID,
			Name:        env.Name,
			Tier:        env.Tier,
			OldPerPay:   mathutil.Round(env.PerPayAmount),
			NewPerPay:   mathutil.Round(env.PerPayAmount - saved),
			SavedPerPay: saved,
		})
		savingsPerPay += saved
	}
	result.SavingsPerPay = mathutil.Round(savingsPerPay)
	result.SavingsPerMonth = mathutil.Round(savingsPerPay * cycle.PaysPerMonth())
	result.TotalSavings = mathutil.Round(savingsPerPay * float64(sc.DurationPays))

	health := envelope.HealthSet(envelopes, cycle, now)
	result.CurrentGap = envelope.TotalGap(health)

	ranked := make([]envelope.Health, len(health))
	copy(ranked, health)
	envelope.SortByPriority(ranked)

	pool := result.TotalSavings
	allocations := make(map[string]float64, len(ranked))
	for _, h := range ranked {
		if h.Gap <= 0 || !mathutil.IsPositive(pool) {
			continue
		}
		allocation := mathutil.Round(mathutil.Min(pool, h.Gap))
		allocations[h.EnvelopeID] = allocation
		pool -= allocation
	}
	result.GapClosed = mathutil.Round(result.TotalSavings - mathutil.Floor0(pool))
	result.GapAfterScenario = mathutil.Round(mathutil.Floor0(result.CurrentGap - result.GapClosed))
	result.LeftoverBuffer = mathutil.Round(mathutil.Floor0(pool))
	if result.CurrentGap > 0 && mathutil.IsPositive(result.SavingsPerPay) {
		result.PaysToCloseGap = mathutil.CeilQuotient(result.CurrentGap, result.SavingsPerPay)
	}

	projected := make([]envelope.Envelope, len(envelopes))
	copy(projected, envelopes)
	for i := range projected {
		if allocation, ok := allocations[projected[i].ID]; ok {
			projected[i].CurrentBalance += allocation
		}
	}
	result.ProjectedHealth = partitionByTier(envelope.HealthSet(projected, cycle, now))

	return result
}

func partitionByTier(set []envelope.Health) TierHealth {
	groups := envelope.GroupByTier(set)
	return TierHealth{
		Essential:     groups[envelope.Essential],
		Important:     groups[envelope.Important],
		Discretionary: groups[envelope.Discretionary],
	}
}
