// Package payday splits an incoming paycheck into the committed envelope
// allocations and proposes what to do with any surplus.
package payday

import (
	"fmt"
	"time"

	"github.com/hoff1997/budgetmate/pkg/constants"
	"github.com/hoff1997/budgetmate/pkg/envelope"
	"github.com/hoff1997/budgetmate/pkg/mathutil"
	"github.com/hoff1997/budgetmate/pkg/paycycle"
)

// SurplusStatus describes whether the paycheck covers the committed
// allocations.
type SurplusStatus string

// Surplus states.
const (
	SurplusAvailable SurplusStatus = "available"
	SurplusExact     SurplusStatus = "exact"
	SurplusShortfall SurplusStatus = "shortfall"
)

// SuggestionKind identifies what a surplus suggestion proposes.
type SuggestionKind string

// Suggestion kinds. A top-up names a specific envelope; a split leaves the
// per-envelope amounts to be recomputed at application time; new-goal and
// buffer carry no envelope at all.
const (
	SuggestTopUp   SuggestionKind = "top-up"
	SuggestSplit   SuggestionKind = "top-up-split"
	SuggestNewGoal SuggestionKind = "new-goal"
	SuggestBuffer  SuggestionKind = "buffer"
)

// RegularAllocation is one envelope's committed share of the paycheck.
type RegularAllocation struct {
	EnvelopeID string        `json:"envelopeId"`
	Name       string        `json:"name"`
	Tier       envelope.Tier `json:"tier"`
	Amount     float64       `json:"amount"`
}

// Suggestion is one proposed use of the surplus. SuggestedAmount is advisory;
// ApplySuggestion recomputes the actual allocation because the behind set can
// change between generation and application.
type Suggestion struct {
	Kind            SuggestionKind `json:"kind"`
	EnvelopeID      string         `json:"envelopeId,omitempty"`
	EnvelopeName    string         `json:"envelopeName,omitempty"`
	SuggestedAmount float64        `json:"suggestedAmount"`
	Reason          string         `json:"reason"`
}

// TierTotals sums the regular allocations by priority tier.
type TierTotals struct {
	Essential     float64 `json:"essential"`
	Important     float64 `json:"important"`
	Discretionary float64 `json:"discretionary"`
}

// Allocation is the full payday picture: the committed allocations, the
// surplus, the health context, and the ordered surplus suggestions.
type Allocation struct {
	PayAmount     float64             `json:"payAmount"`
	PayCycle      paycycle.PayCycle   `json:"payCycle"`
	Regular       []RegularAllocation `json:"regular"`
	TotalRegular  float64             `json:"totalRegular"`
	Surplus       float64             `json:"surplus"`
	SurplusStatus SurplusStatus       `json:"surplusStatus"`
	Health        []envelope.Health   `json:"health"`
	Suggestions   []Suggestion        `json:"suggestions"`
	TierTotals    TierTotals          `json:"tierTotals"`
	BehindCount   int                 `json:"behindCount"`
	BehindGap     float64             `json:"behindGap"`
}

// Allocate splits payAmount across the expense envelopes' committed per-pay
// amounts as of now.
//
// The committed PerPayAmount is deliberately used as-is rather than the
// health model's theoretical per-pay; the two answer different questions and
// must stay distinct. Surplus suggestions are generated only when there is
// surplus to spend, and their amounts always sum to at most the surplus.
func Allocate(payAmount float64, envelopes []envelope.Envelope, cycle paycycle.PayCycle, now time.Time) Allocation {
	alloc := Allocation{
		PayAmount: mathutil.Round(payAmount),
		PayCycle:  cycle,
	}

	total := 0.0
	for _, env := range envelope.Expenses(envelopes) {
		amount := mathutil.Round(env.PerPayAmount)
		alloc.Regular = append(alloc.Regular, RegularAllocation{
			EnvelopeID: env.ID,
			Name:       env.Name,
			Tier:       env.Tier,
			Amount:     amount,
		})
		total += amount
		switch env.Tier {
		case envelope.Essential:
			alloc.TierTotals.Essential += amount
		case envelope.Important:
			alloc.TierTotals.Important += amount
		case envelope.Discretionary:
			alloc.TierTotals.Discretionary += amount
		}
	}
	alloc.TotalRegular = mathutil.Round(total)
	alloc.TierTotals.Essential = mathutil.Round(alloc.TierTotals.Essential)
	alloc.TierTotals.Important = mathutil.Round(alloc.TierTotals.Important)
	alloc.TierTotals.Discretionary = mathutil.Round(alloc.TierTotals.Discretionary)

	alloc.Surplus = mathutil.Round(payAmount - alloc.TotalRegular)
	switch {
	case mathutil.IsZero(alloc.Surplus):
		alloc.Surplus = 0
		alloc.SurplusStatus = SurplusExact
	case alloc.Surplus > 0:
		alloc.SurplusStatus = SurplusAvailable
	default:
		alloc.SurplusStatus = SurplusShortfall
	}

	alloc.Health = envelope.HealthSet(envelopes, cycle, now)
	behind := envelope.Behind(alloc.Health)
	alloc.BehindCount = len(behind)
	alloc.BehindGap = envelope.TotalGap(behind)

	if alloc.SurplusStatus == SurplusAvailable {
		alloc.Suggestions = suggest(alloc.Surplus, behind)
	}
	return alloc
}

// suggest builds the ordered suggestion list from one running pool so the
// amounts can never sum past the surplus.
func suggest(surplus float64, behind []envelope.Health) []Suggestion {
	var suggestions []Suggestion
	pool := surplus
	totalGap := envelope.TotalGap(behind)

	if len(behind) > 0 {
		urgent := behind[0]
		amount := mathutil.Round(mathutil.Min(pool, urgent.Gap))
		suggestions = append(suggestions, Suggestion{
			Kind:            SuggestTopUp,
			EnvelopeID:      urgent.EnvelopeID,
			EnvelopeName:    urgent.Name,
			SuggestedAmount: amount,
			Reason:          fmt.Sprintf("%s has the most urgent gap at %.2f (%s)", urgent.Name, urgent.Gap, urgent.PriorityReason),
		})
		pool = mathutil.Floor0(pool - amount)
	}

	if len(behind) >= 2 && surplus < totalGap && mathutil.IsPositive(pool) {
		amount := mathutil.Round(pool)
		suggestions = append(suggestions, Suggestion{
			Kind:            SuggestSplit,
			SuggestedAmount: amount,
			Reason:          fmt.Sprintf("split across %d behind envelopes in proportion to their gaps (combined gap %.2f)", len(behind), totalGap),
		})
		return suggestions
	}

	// Every gap is coverable; whatever would remain after closing all of
	// them can seed something new.
	remainder := mathutil.Round(mathutil.Floor0(surplus - totalGap))
	if !mathutil.IsPositive(remainder) {
		return suggestions
	}
	if remainder >= constants.NewGoalMinimum {
		suggestions = append(suggestions, Suggestion{
			Kind:            SuggestNewGoal,
			SuggestedAmount: remainder,
			Reason:          fmt.Sprintf("all gaps covered, %.2f is enough to seed a new savings goal", remainder),
		})
	} else {
		suggestions = append(suggestions, Suggestion{
			Kind:            SuggestBuffer,
			SuggestedAmount: remainder,
			Reason:          fmt.Sprintf("%.2f left over, park it as buffer", remainder),
		})
	}
	return suggestions
}
