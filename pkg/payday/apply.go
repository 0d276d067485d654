package payday

import (
	"time"

	"github.com/hoff1997/budgetmate/pkg/envelope"
	"github.com/hoff1997/budgetmate/pkg/mathutil"
	"github.com/hoff1997/budgetmate/pkg/paycycle"
)

// AppliedAllocation is one concrete envelope top-up produced by applying a
// suggestion.
type AppliedAllocation struct {
	EnvelopeID string  `json:"envelopeId"`
	Name       string  `json:"name"`
	Amount     float64 `json:"amount"`
}

// Application is the outcome of applying one suggestion. TotalApplied never
// exceeds the surplus available at application time; Unallocated is the
// surplus that remains afterwards. For new-goal and buffer suggestions the
// allocation list is empty and TotalApplied is the amount to set aside.
type Application struct {
	Kind         SuggestionKind      `json:"kind"`
	Allocations  []AppliedAllocation `json:"allocations"`
	TotalApplied float64             `json:"totalApplied"`
	Unallocated  float64             `json:"unallocated"`
}

// ApplySuggestion turns a previously generated suggestion into concrete
// amounts against the current envelope state.
//
// Everything is recomputed from scratch: the surplus, the behind set, and
// the per-envelope gaps. The suggestion's stored amount only caps the spend;
// it is never trusted as-is, because balances may have moved since the
// suggestion was generated.
func ApplySuggestion(payAmount float64, envelopes []envelope.Envelope, cycle paycycle.PayCycle, suggestion Suggestion, now time.Time) Application {
	application := Application{Kind: suggestion.Kind}

	totalRegular := 0.0
	for _, env := range envelope.Expenses(envelopes) {
		totalRegular += mathutil.Round(env.PerPayAmount)
	}
	surplus := mathutil.Round(payAmount - totalRegular)
	if !mathutil.IsPositive(surplus) {
		return application
	}

	available := surplus
	if suggestion.SuggestedAmount > 0 && suggestion.SuggestedAmount < available {
		available = suggestion.SuggestedAmount
	}

	health := envelope.HealthSet(envelopes, cycle, now)

	switch suggestion.Kind {
	case SuggestTopUp:
		for _, h := range health {
			if h.EnvelopeID != suggestion.EnvelopeID {
				continue
			}
			amount := mathutil.Round(mathutil.Min(available, mathutil.Floor0(h.Gap)))
			if mathutil.IsPositive(amount) {
				application.Allocations = append(application.Allocations, AppliedAllocation{
					EnvelopeID: h.EnvelopeID,
					Name:       h.Name,
					Amount:     amount,
				})
				application.TotalApplied = amount
			}
			break
		}

	case SuggestSplit:
		behind := envelope.Behind(health)
		totalGap := envelope.TotalGap(behind)
		pool := available
		for _, h := range behind {
			if !mathutil.IsPositive(pool) || totalGap <= 0 {
				break
			}
			share := mathutil.Round(mathutil.Min(pool, available*h.Gap/totalGap))
			if share <= 0 {
				continue
			}
			application.Allocations = append(application.Allocations, AppliedAllocation{
				EnvelopeID: h.EnvelopeID,
				Name:       h.Name,
				Amount:     share,
			})
			pool = mathutil.Floor0(pool - share)
		}
		application.TotalApplied = mathutil.Round(available - pool)

	case SuggestNewGoal, SuggestBuffer:
		application.TotalApplied = mathutil.Round(available)
	}

	application.TotalApplied = mathutil.Round(application.TotalApplied)
	application.Unallocated = mathutil.Round(surplus - application.TotalApplied)
	return application
}
