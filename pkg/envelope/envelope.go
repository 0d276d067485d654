// Package envelope defines the budget envelope record and the health model
// that measures how far ahead or behind each envelope is against its due
// date.
package envelope

import (
	"fmt"
	"strings"
	"time"

	"github.com/hoff1997/budgetmate/pkg/paycycle"
)

// Kind distinguishes income envelopes from expense envelopes. Only expense
// envelopes participate in health and allocation math.
type Kind string

// Supported envelope kinds.
const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

// ParseKind normalizes an envelope kind string.
func ParseKind(value string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(value))) {
	case Income:
		return Income, nil
	case Expense:
		return Expense, nil
	}
	return "", fmt.Errorf("unsupported envelope kind %q", value)
}

// Tier is the priority tier of an envelope.
type Tier string

// Priority tiers, from most to least critical.
const (
	Essential     Tier = "essential"
	Important     Tier = "important"
	Discretionary Tier = "discretionary"
)

// ParseTier normalizes a priority tier string.
func ParseTier(value string) (Tier, error) {
	switch Tier(strings.ToLower(strings.TrimSpace(value))) {
	case Essential:
		return Essential, nil
	case Important:
		return Important, nil
	case Discretionary:
		return Discretionary, nil
	}
	return "", fmt.Errorf("unsupported priority tier %q", value)
}

// Envelope is one budget bucket as supplied by the boundary layer. The
// record is externally owned; the engine never mutates it.
//
// PerPayAmount is the committed per-pay budget the user has chosen for this
// envelope. It is deliberately distinct from the health model's theoretical
// RegularPerPay: the former answers "what is budgeted", the latter "what
// would be needed to hit the target on time".
type Envelope struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	Kind           Kind               `json:"kind"`
	Tier           Tier               `json:"tier"`
	TargetAmount   float64            `json:"targetAmount"`
	CurrentBalance float64            `json:"currentBalance"`
	PerPayAmount   float64            `json:"perPayAmount"`
	Frequency      paycycle.Frequency `json:"frequency"`
	DueDate        *time.Time         `json:"dueDate,omitempty"`
}

// IsExpense reports whether the envelope participates in health and
// allocation math.
func (e Envelope) IsExpense() bool {
	return e.Kind == Expense
}

// Expenses filters an envelope set down to the expense envelopes, preserving
// order.
func Expenses(envelopes []Envelope) []Envelope {
	out := make([]Envelope, 0, len(envelopes))
	for _, env := range envelopes {
		if env.IsExpense() {
			out = append(out, env)
		}
	}
	return out
}
