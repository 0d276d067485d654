package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadProfile(t *testing.T) {
	tests := []struct {
		name       string
		configPath string
		wantError  bool
	}{
		{
			name:       "Non-existent profile file",
			configPath: "nonexistent.yaml",
			wantError:  true,
		},
		{
			name:       "Example profile",
			configPath: "../../test/test_profile.yaml",
			wantError:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile, err := LoadProfile(tt.configPath)
			if tt.wantError {
				if err == nil {
					t.Errorf("LoadProfile() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("LoadProfile() error = %v", err)
				return
			}
			if profile == nil {
				t.Errorf("LoadProfile() returned nil profile")
			}
		})
	}
}

func TestLoadProfileFromReader(t *testing.T) {
	data, err := os.ReadFile("../../test/test_profile.yaml")
	if err != nil {
		t.Fatalf("failed to read test profile: %v", err)
	}

	profile, err := LoadProfileFromReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("LoadProfileFromReader() error = %v", err)
	}

	if profile.PayCycle != "fortnightly" {
		t.Errorf("Expected PayCycle = fortnightly, got %v", profile.PayCycle)
	}
	if len(profile.Envelopes) != 6 {
		t.Errorf("Expected 6 envelopes, got %d", len(profile.Envelopes))
	}
	if len(profile.Debts) != 3 {
		t.Errorf("Expected 3 debts, got %d", len(profile.Debts))
	}
}

func TestLoadProfileFromReaderRejectsBadYAML(t *testing.T) {
	_, err := LoadProfileFromReader(strings.NewReader("envelopes: ["))
	if err == nil {
		t.Fatal("LoadProfileFromReader() expected error for malformed YAML")
	}
	if !strings.Contains(err.Error(), "error reading profile data") {
		t.Errorf("Expected read error, got %v", err)
	}
}

func TestLoadProfileStructure(t *testing.T) {
	profile, err := LoadProfile("../../test/test_profile.yaml")
	if err != nil {
		t.Fatalf("LoadProfile() error = %v", err)
	}

	if profile.PayCycle != "fortnightly" {
		t.Errorf("Expected PayCycle = fortnightly, got %v", profile.PayCycle)
	}

	if len(profile.Envelopes) != 6 {
		t.Fatalf("Expected 6 envelopes, got %d", len(profile.Envelopes))
	}
	mortgage := profile.Envelopes[1]
	if mortgage.Name != "Mortgage" {
		t.Errorf("Expected second envelope Mortgage, got %v", mortgage.Name)
	}
	if mortgage.Tier != "essential" {
		t.Errorf("Expected Mortgage tier essential, got %v", mortgage.Tier)
	}
	if mortgage.TargetAmount != 1500.00 {
		t.Errorf("Expected Mortgage target 1500.00, got %v", mortgage.TargetAmount)
	}
	if mortgage.DueDate != "2025-06-12" {
		t.Errorf("Expected Mortgage due date 2025-06-12, got %v", mortgage.DueDate)
	}
	salary := profile.Envelopes[0]
	if salary.Kind != "income" {
		t.Errorf("Expected Salary kind income, got %v", salary.Kind)
	}
	if salary.PerPayAmount != 4200.00 {
		t.Errorf("Expected Salary per-pay 4200.00, got %v", salary.PerPayAmount)
	}

	if len(profile.Debts) != 3 {
		t.Fatalf("Expected 3 debts, got %d", len(profile.Debts))
	}
	visa := profile.Debts[0]
	if visa.Balance != 4500.00 {
		t.Errorf("Expected Visa balance 4500.00, got %v", visa.Balance)
	}
	if visa.AnnualRate != 19.95 {
		t.Errorf("Expected Visa rate 19.95, got %v", visa.AnnualRate)
	}
	storeCard := profile.Debts[2]
	if storeCard.MinimumPayment != 0 {
		t.Errorf("Expected Store card minimum unset before normalization, got %v", storeCard.MinimumPayment)
	}

	if len(profile.Scenarios) != 1 {
		t.Fatalf("Expected 1 custom scenario, got %d", len(profile.Scenarios))
	}
	if profile.Scenarios[0].ID != "tight-month" {
		t.Errorf("Expected scenario ID tight-month, got %v", profile.Scenarios[0].ID)
	}
	if profile.Scenarios[0].DurationMonths != 1 {
		t.Errorf("Expected scenario duration 1 month, got %v", profile.Scenarios[0].DurationMonths)
	}

	if profile.Payday.PayAmount != 4200.00 {
		t.Errorf("Expected payday amount 4200.00, got %v", profile.Payday.PayAmount)
	}
	if profile.Payoff.Strategy != "snowball" {
		t.Errorf("Expected payoff strategy snowball, got %v", profile.Payoff.Strategy)
	}
	if profile.Payoff.MonthlyBudget != 650.00 {
		t.Errorf("Expected payoff budget 650.00, got %v", profile.Payoff.MonthlyBudget)
	}

	if profile.Logging.Level != "info" {
		t.Errorf("Expected logging level info, got %v", profile.Logging.Level)
	}
	if profile.Output.Format != "pretty" {
		t.Errorf("Expected output format pretty, got %v", profile.Output.Format)
	}
	if profile.Server.Address != ":8080" {
		t.Errorf("Expected server address :8080, got %v", profile.Server.Address)
	}
	if profile.Server.MaxBodySize != "256K" {
		t.Errorf("Expected server max body size 256K, got %v", profile.Server.MaxBodySize)
	}
}

func TestLoadProfileParsesAmountStrings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	contents := []byte(`---
payCycle: fortnightly
envelopes:
  - name: Mortgage
    kind: expense
    tier: essential
    targetAmount: "$1,500.00"
    perPayAmount: "1500"
    frequency: fortnightly
payday:
  payAmount: "$4,200.00"
`)
	if err := os.WriteFile(path, contents, 0600); err != nil {
		t.Fatalf("writing profile: %v", err)
	}

	profile, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("LoadProfile() error = %v", err)
	}
	if profile.Envelopes[0].TargetAmount != 1500.00 {
		t.Errorf("Expected target 1500.00 from formatted string, got %v", profile.Envelopes[0].TargetAmount)
	}
	if profile.Envelopes[0].PerPayAmount != 1500.00 {
		t.Errorf("Expected per-pay 1500.00 from plain string, got %v", profile.Envelopes[0].PerPayAmount)
	}
	if profile.Payday.PayAmount != 4200.00 {
		t.Errorf("Expected pay amount 4200.00 from formatted string, got %v", profile.Payday.PayAmount)
	}
}

func TestLoadProfileRejectsBadAmount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	contents := []byte(`---
payCycle: fortnightly
envelopes:
  - name: Mortgage
    kind: expense
    targetAmount: "about fifty"
`)
	if err := os.WriteFile(path, contents, 0600); err != nil {
		t.Fatalf("writing profile: %v", err)
	}

	if _, err := LoadProfile(path); err == nil {
		t.Fatalf("Expected error for unparseable amount string")
	}
}

func TestNormalizeDefaults(t *testing.T) {
	profile := &Profile{
		Envelopes: []EnvelopeConfig{
			{Name: "Groceries", TargetAmount: 800, PerPayAmount: 400},
			{Name: "Gym", Tier: "luxury", Frequency: "biweekly"},
		},
		Debts: []DebtConfig{
			{Name: "Visa card", Kind: "credit-card", Balance: 2000, AnnualRate: 19.95},
		},
		Scenarios: []ScenarioConfig{
			{Name: "Belt tightening", Tiers: []string{"discretionary"}, ReductionPercent: 100},
		},
		Payoff: PayoffConfig{Strategy: "aggressive"},
	}

	warnings := profile.Normalize()

	if profile.PayCycle != "fortnightly" {
		t.Errorf("Expected pay cycle default fortnightly, got %v", profile.PayCycle)
	}

	groceries := profile.Envelopes[0]
	if groceries.ID == "" {
		t.Errorf("Expected generated envelope ID, got empty string")
	}
	if groceries.Kind != "expense" {
		t.Errorf("Expected kind default expense, got %v", groceries.Kind)
	}
	if groceries.Tier != "important" {
		t.Errorf("Expected tier default important, got %v", groceries.Tier)
	}
	if groceries.Frequency != "monthly" {
		t.Errorf("Expected frequency default monthly, got %v", groceries.Frequency)
	}

	gym := profile.Envelopes[1]
	if gym.Tier != "important" {
		t.Errorf("Expected invalid tier repaired to important, got %v", gym.Tier)
	}
	if gym.Frequency != "monthly" {
		t.Errorf("Expected invalid frequency repaired to monthly, got %v", gym.Frequency)
	}

	visa := profile.Debts[0]
	if visa.MinimumPayment != 40.00 {
		t.Errorf("Expected estimated Visa minimum 40.00, got %v", visa.MinimumPayment)
	}

	if profile.Scenarios[0].DurationMonths != 3 {
		t.Errorf("Expected scenario duration default 3 months, got %v", profile.Scenarios[0].DurationMonths)
	}

	if profile.Payoff.Strategy != "avalanche" {
		t.Errorf("Expected invalid strategy repaired to avalanche, got %v", profile.Payoff.Strategy)
	}

	expectedWarnings := []string{
		"no payCycle",
		"unsupported priority tier",
		"unsupported frequency",
		"no minimum payment",
		"no duration",
		"unsupported payoff strategy",
	}
	if len(warnings) != len(expectedWarnings) {
		t.Fatalf("Expected %d warnings, got %d: %v", len(expectedWarnings), len(warnings), warnings)
	}
	for i, substr := range expectedWarnings {
		if !strings.Contains(warnings[i], substr) {
			t.Errorf("Expected warning %d to mention %q, got %q", i, substr, warnings[i])
		}
	}
}

func TestNormalizeCompleteProfile(t *testing.T) {
	profile, err := LoadProfile("../../test/test_profile.yaml")
	if err != nil {
		t.Fatalf("LoadProfile() error = %v", err)
	}

	warnings := profile.Normalize()

	if len(warnings) != 1 {
		t.Fatalf("Expected 1 warning, got %d: %v", len(warnings), warnings)
	}
	if !strings.Contains(warnings[0], "Store card") {
		t.Errorf("Expected warning about Store card minimum, got %q", warnings[0])
	}
	if profile.Debts[2].MinimumPayment != 24.00 {
		t.Errorf("Expected estimated Store card minimum 24.00, got %v", profile.Debts[2].MinimumPayment)
	}
}

func TestValidateAfterNormalize(t *testing.T) {
	profile, err := LoadProfile("../../test/test_profile.yaml")
	if err != nil {
		t.Fatalf("LoadProfile() error = %v", err)
	}
	profile.Normalize()

	// Dining out and Streaming subscriptions carry targets without due
	// dates, so pacing advisories are the only expected output.
	warnings := profile.Validate()
	if len(warnings) != 2 {
		t.Fatalf("Expected 2 validation warnings, got %d: %v", len(warnings), warnings)
	}
	for _, warning := range warnings {
		if !strings.Contains(warning, "savings pacing") {
			t.Errorf("Expected a pacing advisory, got %q", warning)
		}
	}
}

func TestValidateReportsProblems(t *testing.T) {
	profile := &Profile{
		PayCycle: "fortnightly",
		Envelopes: []EnvelopeConfig{
			{Name: "Power", Kind: "expense", Tier: "essential", Frequency: "monthly", TargetAmount: -280, PerPayAmount: 90},
		},
		Debts: []DebtConfig{
			{Name: "Visa card", Balance: 2000, AnnualRate: -5, MinimumPayment: 40},
		},
		Scenarios: []ScenarioConfig{
			{Name: "Overdrive", Tiers: []string{"discretionary"}, ReductionPercent: 150, DurationMonths: 3},
		},
		Payoff: PayoffConfig{Strategy: "avalanche"},
	}

	warnings := profile.Validate()
	if len(warnings) != 3 {
		t.Errorf("Expected 3 validation warnings, got %d: %v", len(warnings), warnings)
	}
}
