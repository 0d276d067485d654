package envelope

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/hoff1997/budgetmate/pkg/constants"
	"github.com/hoff1997/budgetmate/pkg/paycycle"
)

const tolerance = 0.01

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(constants.DateLayout, value)
	if err != nil {
		t.Fatalf("failed to parse date %s: %v", value, err)
	}
	return parsed
}

func datePtr(t *testing.T, value string) *time.Time {
	t.Helper()
	parsed := mustDate(t, value)
	return &parsed
}

func TestCalculateHealth(t *testing.T) {
	now := mustDate(t, "2025-06-08")

	testCases := []struct {
		name                string
		envelope            Envelope
		cycle               paycycle.PayCycle
		expectedPaysTotal   int
		expectedPaysElapsed int
		expectedRegular     float64
		expectedShould      float64
		expectedGap         float64
		expectedStatus      GapStatus
		expectedDays        int
		expectedScore       float64
		reasonContains      string
	}{
		{
			name: "behind on a monthly bill mid-period",
			envelope: Envelope{
				ID:             "env-power",
				Name:           "Power",
				Kind:           Expense,
				Tier:           Essential,
				TargetAmount:   280.00,
				CurrentBalance: 140.00,
				Frequency:      paycycle.FrequencyMonthly,
				DueDate:        datePtr(t, "2025-06-15"),
			},
			cycle:               paycycle.Weekly,
			expectedPaysTotal:   5,
			expectedPaysElapsed: 4,
			expectedRegular:     56.00,
			expectedShould:      224.00,
			expectedGap:         84.00,
			expectedStatus:      StatusBehind,
			expectedDays:        7,
			expectedScore:       -23.00,
			reasonContains:      "30% of target behind pace",
		},
		{
			name: "small gap stays on track",
			envelope: Envelope{
				ID:             "env-power",
				Name:           "Power",
				Kind:           Expense,
				Tier:           Essential,
				TargetAmount:   280.00,
				CurrentBalance: 200.00,
				Frequency:      paycycle.FrequencyMonthly,
				DueDate:        datePtr(t, "2025-06-15"),
			},
			cycle:               paycycle.Weekly,
			expectedPaysTotal:   5,
			expectedPaysElapsed: 4,
			expectedRegular:     56.00,
			expectedShould:      224.00,
			expectedGap:         24.00,
			expectedStatus:      StatusOnTrack,
			expectedDays:        7,
			expectedScore:       7.0 - 24.0/280.0*100.0,
			reasonContains:      "due in 7 days",
		},
		{
			name: "comfortably ahead of pace",
			envelope: Envelope{
				ID:             "env-power",
				Name:           "Power",
				Kind:           Expense,
				Tier:           Essential,
				TargetAmount:   280.00,
				CurrentBalance: 300.00,
				Frequency:      paycycle.FrequencyMonthly,
				DueDate:        datePtr(t, "2025-06-15"),
			},
			cycle:               paycycle.Weekly,
			expectedPaysTotal:   5,
			expectedPaysElapsed: 4,
			expectedRegular:     56.00,
			expectedShould:      224.00,
			expectedGap:         -76.00,
			expectedStatus:      StatusAhead,
			expectedDays:        7,
			expectedScore:       7.00,
			reasonContains:      "on pace",
		},
		{
			name: "elapsed pays cap at the period total",
			envelope: Envelope{
				ID:             "env-rates",
				Name:           "Rates",
				Kind:           Expense,
				Tier:           Essential,
				TargetAmount:   350.00,
				CurrentBalance: 0.00,
				Frequency:      paycycle.FrequencyMonthly,
				DueDate:        datePtr(t, "2025-06-05"),
			},
			cycle:               paycycle.Weekly,
			expectedPaysTotal:   5,
			expectedPaysElapsed: 5,
			expectedRegular:     70.00,
			expectedShould:      350.00,
			expectedGap:         350.00,
			expectedStatus:      StatusBehind,
			expectedDays:        -3,
			expectedScore:       -103.00,
			reasonContains:      "overdue by 3 days",
		},
		{
			name: "fortnightly cycle over an annual envelope",
			envelope: Envelope{
				ID:             "env-insurance",
				Name:           "Car insurance",
				Kind:           Expense,
				Tier:           Important,
				TargetAmount:   1200.00,
				CurrentBalance: 100.00,
				Frequency:      paycycle.FrequencyAnnual,
				DueDate:        datePtr(t, "2026-03-01"),
			},
			cycle:               paycycle.Fortnightly,
			expectedPaysTotal:   27,
			expectedPaysElapsed: 8,
			expectedRegular:     44.44,
			expectedShould:      355.52,
			expectedGap:         255.52,
			expectedStatus:      StatusBehind,
			expectedDays:        266,
			expectedScore:       266.0 - 255.52/1200.0*100.0,
			reasonContains:      "21% of target behind pace",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			health := CalculateHealth(tc.envelope, tc.cycle, now)

			if health.PaysTotal != tc.expectedPaysTotal {
				t.Errorf("PaysTotal = %d, want %d", health.PaysTotal, tc.expectedPaysTotal)
			}
			if health.PaysElapsed != tc.expectedPaysElapsed {
				t.Errorf("PaysElapsed = %d, want %d", health.PaysElapsed, tc.expectedPaysElapsed)
			}
			if math.Abs(health.RegularPerPay-tc.expectedRegular) > tolerance {
				t.Errorf("RegularPerPay = %.2f, want %.2f", health.RegularPerPay, tc.expectedRegular)
			}
			if math.Abs(health.ShouldHaveSaved-tc.expectedShould) > tolerance {
				t.Errorf("ShouldHaveSaved = %.2f, want %.2f", health.ShouldHaveSaved, tc.expectedShould)
			}
			if math.Abs(health.Gap-tc.expectedGap) > tolerance {
				t.Errorf("Gap = %.2f, want %.2f", health.Gap, tc.expectedGap)
			}
			if health.GapStatus != tc.expectedStatus {
				t.Errorf("GapStatus = %s, want %s", health.GapStatus, tc.expectedStatus)
			}
			if health.DaysUntilDue != tc.expectedDays {
				t.Errorf("DaysUntilDue = %d, want %d", health.DaysUntilDue, tc.expectedDays)
			}
			if math.Abs(health.PriorityScore-tc.expectedScore) > tolerance {
				t.Errorf("PriorityScore = %.2f, want %.2f", health.PriorityScore, tc.expectedScore)
			}
			if !strings.Contains(health.PriorityReason, tc.reasonContains) {
				t.Errorf("PriorityReason = %q, want it to contain %q", health.PriorityReason, tc.reasonContains)
			}
		})
	}
}

func TestCalculateHealthNeutralRecords(t *testing.T) {
	now := mustDate(t, "2025-06-08")

	testCases := []struct {
		name           string
		envelope       Envelope
		reasonContains string
	}{
		{
			name: "no due date",
			envelope: Envelope{
				ID:             "env-groceries",
				Name:           "Groceries",
				Kind:           Expense,
				Tier:           Essential,
				TargetAmount:   400.00,
				CurrentBalance: 180.00,
			},
			reasonContains: "no due date",
		},
		{
			name: "income envelope",
			envelope: Envelope{
				ID:             "env-salary",
				Name:           "Salary",
				Kind:           Income,
				TargetAmount:   4200.00,
				CurrentBalance: 0.00,
				DueDate:        datePtr(t, "2025-06-20"),
			},
			reasonContains: "income envelope",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			health := CalculateHealth(tc.envelope, paycycle.Fortnightly, now)

			if health.Gap != 0 {
				t.Errorf("Gap = %.2f, want 0", health.Gap)
			}
			if health.GapStatus != StatusOnTrack {
				t.Errorf("GapStatus = %s, want %s", health.GapStatus, StatusOnTrack)
			}
			if health.PriorityScore != constants.NeutralPriorityScore {
				t.Errorf("PriorityScore = %.2f, want neutral %.2f", health.PriorityScore, constants.NeutralPriorityScore)
			}
			if !strings.Contains(health.PriorityReason, tc.reasonContains) {
				t.Errorf("PriorityReason = %q, want it to contain %q", health.PriorityReason, tc.reasonContains)
			}
		})
	}
}

func TestCalculateHealthStatusBand(t *testing.T) {
	now := mustDate(t, "2025-07-01")

	// The saving period has fully elapsed, so shouldHaveSaved equals the
	// target and the gap is target minus balance.
	build := func(balance float64) Envelope {
		return Envelope{
			ID:             "env-band",
			Name:           "Band check",
			Kind:           Expense,
			Tier:           Important,
			TargetAmount:   1000.00,
			CurrentBalance: balance,
			Frequency:      paycycle.FrequencyMonthly,
			DueDate:        datePtr(t, "2025-07-01"),
		}
	}

	testCases := []struct {
		name           string
		balance        float64
		expectedGap    float64
		expectedStatus GapStatus
	}{
		{name: "gap exactly at the band is on track", balance: 950.00, expectedGap: 50.00, expectedStatus: StatusOnTrack},
		{name: "gap just over the band is behind", balance: 949.99, expectedGap: 50.01, expectedStatus: StatusBehind},
		{name: "surplus exactly at the band is on track", balance: 1050.00, expectedGap: -50.00, expectedStatus: StatusOnTrack},
		{name: "surplus just over the band is ahead", balance: 1050.01, expectedGap: -50.01, expectedStatus: StatusAhead},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			health := CalculateHealth(build(tc.balance), paycycle.Weekly, now)

			if math.Abs(health.Gap-tc.expectedGap) > 0.001 {
				t.Errorf("Gap = %.2f, want %.2f", health.Gap, tc.expectedGap)
			}
			if health.GapStatus != tc.expectedStatus {
				t.Errorf("GapStatus = %s, want %s", health.GapStatus, tc.expectedStatus)
			}
		})
	}
}

func TestCalculateHealthDeterminism(t *testing.T) {
	now := mustDate(t, "2025-06-08")
	env := Envelope{
		ID:             "env-insurance",
		Name:           "Car insurance",
		Kind:           Expense,
		Tier:           Important,
		TargetAmount:   1200.00,
		CurrentBalance: 321.45,
		Frequency:      paycycle.FrequencyAnnual,
		DueDate:        datePtr(t, "2026-03-01"),
	}

	first := CalculateHealth(env, paycycle.Fortnightly, now)
	for i := 0; i < 10; i++ {
		if repeat := CalculateHealth(env, paycycle.Fortnightly, now); repeat != first {
			t.Fatalf("health calculation is not deterministic: %+v != %+v", repeat, first)
		}
	}
}

func TestHealthSetFiltersIncome(t *testing.T) {
	now := mustDate(t, "2025-06-08")
	envelopes := []Envelope{
		{ID: "env-salary", Name: "Salary", Kind: Income},
		{ID: "env-power", Name: "Power", Kind: Expense, Tier: Essential, TargetAmount: 280, CurrentBalance: 140, Frequency: paycycle.FrequencyMonthly, DueDate: datePtr(t, "2025-06-15")},
		{ID: "env-groceries", Name: "Groceries", Kind: Expense, Tier: Essential, TargetAmount: 400, CurrentBalance: 180},
	}

	set := HealthSet(envelopes, paycycle.Weekly, now)
	if len(set) != 2 {
		t.Fatalf("expected 2 health records, got %d", len(set))
	}
	if set[0].EnvelopeID != "env-power" || set[1].EnvelopeID != "env-groceries" {
		t.Errorf("unexpected order: %s, %s", set[0].EnvelopeID, set[1].EnvelopeID)
	}
}

func TestSortByPriority(t *testing.T) {
	set := []Health{
		{EnvelopeID: "no-due", PriorityScore: constants.NeutralPriorityScore},
		{EnvelopeID: "later", PriorityScore: 120.5},
		{EnvelopeID: "urgent", PriorityScore: -23.0},
		{EnvelopeID: "soon", PriorityScore: 4.0},
	}

	SortByPriority(set)

	expected := []string{"urgent", "soon", "later", "no-due"}
	for i, id := range expected {
		if set[i].EnvelopeID != id {
			t.Errorf("position %d = %s, want %s", i, set[i].EnvelopeID, id)
		}
	}
}

func TestBehindAndTotalGap(t *testing.T) {
	set := []Health{
		{EnvelopeID: "ahead", Gap: -120.00, GapStatus: StatusAhead, PriorityScore: 40},
		{EnvelopeID: "behind-late", Gap: 84.00, GapStatus: StatusBehind, PriorityScore: -23},
		{EnvelopeID: "on-track", Gap: 24.00, GapStatus: StatusOnTrack, PriorityScore: 5},
		{EnvelopeID: "behind-far", Gap: 211.08, GapStatus: StatusBehind, PriorityScore: 248.41},
	}

	behind := Behind(set)
	if len(behind) != 2 {
		t.Fatalf("expected 2 behind records, got %d", len(behind))
	}
	if behind[0].EnvelopeID != "behind-late" || behind[1].EnvelopeID != "behind-far" {
		t.Errorf("unexpected behind order: %s, %s", behind[0].EnvelopeID, behind[1].EnvelopeID)
	}

	// Positive gaps only; the ahead envelope must not offset them.
	total := TotalGap(set)
	expected := 84.00 + 24.00 + 211.08
	if math.Abs(total-expected) > tolerance {
		t.Errorf("TotalGap = %.2f, want %.2f", total, expected)
	}
}

func TestGroupByTier(t *testing.T) {
	set := []Health{
		{EnvelopeID: "a", Tier: Essential},
		{EnvelopeID: "b", Tier: Discretionary},
		{EnvelopeID: "c", Tier: Essential},
		{EnvelopeID: "d", Tier: Important},
	}

	groups := GroupByTier(set)
	if len(groups[Essential]) != 2 {
		t.Errorf("essential group size = %d, want 2", len(groups[Essential]))
	}
	if groups[Essential][0].EnvelopeID != "a" || groups[Essential][1].EnvelopeID != "c" {
		t.Errorf("essential order not preserved: %+v", groups[Essential])
	}
	if len(groups[Important]) != 1 || len(groups[Discretionary]) != 1 {
		t.Errorf("unexpected group sizes: important=%d discretionary=%d", len(groups[Important]), len(groups[Discretionary]))
	}
}

func TestExpenses(t *testing.T) {
	envelopes := []Envelope{
		{ID: "env-salary", Name: "Salary", Kind: Income},
		{ID: "env-power", Name: "Power", Kind: Expense},
		{ID: "env-dining", Name: "Dining out", Kind: Expense},
	}

	expenses := Expenses(envelopes)
	if len(expenses) != 2 {
		t.Fatalf("expected 2 expense envelopes, got %d", len(expenses))
	}
	if expenses[0].ID != "env-power" || expenses[1].ID != "env-dining" {
		t.Errorf("expense order not preserved: %+v", expenses)
	}
}
