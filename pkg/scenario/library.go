package scenario

import (
	"github.com/hoff1997/budgetmate/pkg/envelope"
	"github.com/hoff1997/budgetmate/pkg/paycycle"
)

// Library returns the built-in scenarios with their durations converted into
// whole pays for the given cycle. The calendar lengths are fixed; only the
// pay counts depend on the cycle.
func Library(cycle paycycle.PayCycle) []Scenario {
	return []Scenario{
		{
			ID:               "pause-discretionary",
			Name:             "Pause discretionary spending",
			Description:      "Stop all discretionary envelope contributions for three months.",
			DurationPays:     cycle.PaysInMonths(3),
			AffectedTiers:    []envelope.Tier{envelope.Discretionary},
			ReductionPercent: 100,
		},
		{
			ID:               "halve-discretionary",
			Name:             "Halve discretionary spending",
			Description:      "Cut discretionary envelope contributions in half for three months.",
			DurationPays:     cycle.PaysInMonths(3),
			AffectedTiers:    []envelope.Tier{envelope.Discretionary},
			ReductionPercent: 50,
		},
		{
			ID:                "pause-subscriptions",
			Name:              "Pause subscriptions",
			Description:       "Suspend subscription envelopes for six months.",
			DurationPays:      cycle.PaysInMonths(6),
			AffectedTiers:     []envelope.Tier{envelope.Important, envelope.Discretionary},
			SpecificEnvelopes: []string{"subscription"},
			ReductionPercent:  100,
		},
		{
			ID:                "cut-dining-out",
			Name:              "Cut dining out",
			Description:       "Stop dining out and takeaway spending for three months.",
			DurationPays:      cycle.PaysInMonths(3),
			AffectedTiers:     []envelope.Tier{envelope.Discretionary},
			SpecificEnvelopes: []string{"dining", "takeaway", "restaurant"},
			ReductionPercent:  100,
		},
		{
			ID:               "essentials-only",
			Name:             "Essentials-only sprint",
			Description:      "Spend on essentials only for one month.",
			DurationPays:     cycle.PaysInMonths(1),
			AffectedTiers:    []envelope.Tier{envelope.Important, envelope.Discretionary},
			ReductionPercent: 100,
		},
	}
}

// Find returns the library scenario with the given ID for the cycle, or
// false when no such scenario exists.
func Find(cycle paycycle.PayCycle, id string) (Scenario, bool) {
	for _, sc := range Library(cycle) {
		if sc.ID == id {
			return sc, true
		}
	}
	return Scenario{}, false
}
