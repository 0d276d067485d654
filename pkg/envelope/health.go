package envelope

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/hoff1997/budgetmate/pkg/constants"
	"github.com/hoff1997/budgetmate/pkg/mathutil"
	"github.com/hoff1997/budgetmate/pkg/paycycle"
)

// GapStatus buckets the savings gap into a coarse traffic light.
type GapStatus string

// Gap status buckets. An envelope is behind only when the gap exceeds the
// status band, and ahead only when it is more than the band below zero;
// everything in between is on track.
const (
	StatusAhead   GapStatus = "ahead"
	StatusOnTrack GapStatus = "on-track"
	StatusBehind  GapStatus = "behind"
)

// Health is the point-in-time health record for a single envelope. Gap is
// positive when the envelope is behind schedule and negative when it is
// ahead. PriorityScore orders envelopes by urgency, lower meaning more
// urgent; envelopes without a due date carry the neutral score and sort
// last.
type Health struct {
	EnvelopeID      string    `json:"envelopeId"`
	Name            string    `json:"name"`
	Tier            Tier      `json:"tier"`
	PeriodStart     string    `json:"periodStart,omitempty"`
	PaysElapsed     int       `json:"paysElapsed"`
	PaysTotal       int       `json:"paysTotal"`
	RegularPerPay   float64   `json:"regularPerPay"`
	ShouldHaveSaved float64   `json:"shouldHaveSaved"`
	CurrentBalance  float64   `json:"currentBalance"`
	TargetAmount    float64   `json:"targetAmount"`
	Gap             float64   `json:"gap"`
	GapStatus       GapStatus `json:"gapStatus"`
	PercentComplete float64   `json:"percentComplete"`
	DaysUntilDue    int       `json:"daysUntilDue"`
	PaysUntilDue    int       `json:"paysUntilDue"`
	PriorityScore   float64   `json:"priorityScore"`
	PriorityReason  string    `json:"priorityReason"`
}

// IsBehind reports whether the envelope needs topping up.
func (h Health) IsBehind() bool {
	return h.GapStatus == StatusBehind
}

// CalculateHealth computes the health record for one envelope as of now.
// The calculation is pure; identical inputs always produce an identical
// record.
//
// The saving period is reconstructed by stepping the due date back one
// frequency interval. Within that period the envelope should have saved its
// theoretical per-pay share once per elapsed pay, capped at the target. The
// gap is that pace minus the actual balance.
func CalculateHealth(env Envelope, cycle paycycle.PayCycle, now time.Time) Health {
	health := Health{
		EnvelopeID:      env.ID,
		Name:            env.Name,
		Tier:            env.Tier,
		CurrentBalance:  mathutil.Round(env.CurrentBalance),
		TargetAmount:    mathutil.Round(env.TargetAmount),
		GapStatus:       StatusOnTrack,
		PercentComplete: mathutil.PercentOf(env.CurrentBalance, env.TargetAmount),
		PriorityScore:   constants.NeutralPriorityScore,
	}

	if !env.IsExpense() {
		health.PriorityReason = "income envelope, excluded from savings pacing"
		return health
	}
	if env.DueDate == nil {
		health.PriorityReason = "no due date, savings pacing not applicable"
		return health
	}

	due := *env.DueDate
	start := env.Frequency.StepBack(due)
	health.PeriodStart = start.Format(constants.DateLayout)
	health.PaysTotal = cycle.PaysBetween(start, due)
	health.PaysElapsed = cycle.PaysBetween(start, now)

	if health.PaysTotal > 0 {
		health.RegularPerPay = mathutil.Round(env.TargetAmount / float64(health.PaysTotal))
	}
	should := health.RegularPerPay * float64(health.PaysElapsed)
	health.ShouldHaveSaved = mathutil.Round(mathutil.Min(should, env.TargetAmount))
	health.Gap = mathutil.Round(health.ShouldHaveSaved - env.CurrentBalance)

	switch {
	case health.Gap > constants.GapStatusBand:
		health.GapStatus = StatusBehind
	case health.Gap < -constants.GapStatusBand:
		health.GapStatus = StatusAhead
	}

	days := paycycle.DaysBetween(now, due)
	health.DaysUntilDue = int(math.Ceil(days))
	health.PaysUntilDue = cycle.PaysBetween(now, due)

	severity := 0.0
	if health.Gap > 0 && env.TargetAmount > 0 {
		severity = mathutil.PercentOf(health.Gap, env.TargetAmount)
	}
	health.PriorityScore = days - severity
	health.PriorityReason = priorityReason(health.DaysUntilDue, severity)

	return health
}

func priorityReason(daysUntilDue int, severity float64) string {
	var due string
	switch {
	case daysUntilDue < 0:
		due = fmt.Sprintf("overdue by %d days", -daysUntilDue)
	case daysUntilDue == 0:
		due = "due today"
	case daysUntilDue == 1:
		due = "due in 1 day"
	default:
		due = fmt.Sprintf("due in %d days", daysUntilDue)
	}
	if severity > 0 {
		return fmt.Sprintf("%s, %.0f%% of target behind pace", due, severity)
	}
	return fmt.Sprintf("%s, on pace", due)
}

// HealthSet computes health records for every expense envelope, preserving
// input order.
func HealthSet(envelopes []Envelope, cycle paycycle.PayCycle, now time.Time) []Health {
	set := make([]Health, 0, len(envelopes))
	for _, env := range envelopes {
		if !env.IsExpense() {
			continue
		}
		set = append(set, CalculateHealth(env, cycle, now))
	}
	return set
}

// SortByPriority orders health records most urgent first (ascending
// priority score). The sort is stable so equal scores keep input order.
func SortByPriority(set []Health) {
	sort.SliceStable(set, func(i, j int) bool {
		return set[i].PriorityScore < set[j].PriorityScore
	})
}

// Behind returns the records that are behind schedule, most urgent first.
func Behind(set []Health) []Health {
	behind := make([]Health, 0, len(set))
	for _, h := range set {
		if h.IsBehind() {
			behind = append(behind, h)
		}
	}
	SortByPriority(behind)
	return behind
}

// TotalGap sums the positive gaps across a health set; envelopes that are
// ahead do not offset envelopes that are behind.
func TotalGap(set []Health) float64 {
	total := 0.0
	for _, h := range set {
		if h.Gap > 0 {
			total += h.Gap
		}
	}
	return mathutil.Round(total)
}

// GroupByTier partitions a health set by priority tier, preserving order
// within each tier.
func GroupByTier(set []Health) map[Tier][]Health {
	groups := make(map[Tier][]Health)
	for _, h := range set {
		groups[h.Tier] = append(groups[h.Tier], h)
	}
	return groups
}
