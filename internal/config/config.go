// Package config defines the data structures related to the budget profile
// and includes functions for loading, normalizing, and validating it.
package config

import (
	"fmt"
	"io"
	"reflect"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/hoff1997/budgetmate/pkg/constants"
	"github.com/hoff1997/budgetmate/pkg/debt"
	"github.com/hoff1997/budgetmate/pkg/envelope"
	"github.com/hoff1997/budgetmate/pkg/paycycle"
	"github.com/hoff1997/budgetmate/pkg/validation"
)

// DateLayout is the format expected for dates in profile files and is also
// the output date format.
const DateLayout = constants.DateLayout

// Profile holds the whole budget profile for one household.
type Profile struct {
	PayCycle  string
	Envelopes []EnvelopeConfig
	Debts     []DebtConfig
	Scenarios []ScenarioConfig
	Payday    PaydayConfig  `yaml:"payday,omitempty"`
	Payoff    PayoffConfig  `yaml:"payoff,omitempty"`
	Logging   LoggingConfig `yaml:"logging,omitempty"`
	Output    OutputConfig  `yaml:"output,omitempty"`
	Server    ServerConfig  `yaml:"server,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, json
}

// ServerConfig holds the embedded API server options. MaxBodySize accepts
// human-friendly values like "256K" or "10M".
type ServerConfig struct {
	Address     string `yaml:"address,omitempty"`
	MaxBodySize string `yaml:"maxBodySize,omitempty"`
}

// EnvelopeConfig is one envelope as written in the profile. Dates stay as
// strings here; conversion to typed records happens in EnvelopeSet.
type EnvelopeConfig struct {
	ID             string
	Name           string
	Kind           string
	Tier           string
	TargetAmount   float64
	CurrentBalance float64
	PerPayAmount   float64
	Frequency      string
	DueDate        string
}

// DebtConfig is one interest-bearing balance as written in the profile.
// Kind feeds the minimum-payment heuristic when no minimum is supplied.
type DebtConfig struct {
	ID             string
	Name           string
	Kind           string
	Balance        float64
	AnnualRate     float64
	MinimumPayment float64
}

// ScenarioConfig is a custom what-if scenario defined in the profile,
// alongside the built-in library. Duration can be given in months (converted
// using the pay cycle) or directly in pays.
type ScenarioConfig struct {
	ID               string
	Name             string
	Description      string
	Tiers            []string
	Match            []string
	ReductionPercent float64
	DurationMonths   int
	DurationPays     int
}

// PaydayConfig holds the payday allocator defaults.
type PaydayConfig struct {
	PayAmount float64
}

// PayoffConfig holds the debt payoff defaults.
type PayoffConfig struct {
	Strategy      string
	MonthlyBudget float64
}

// LoadProfile takes a file path as input and loads the YAML-formatted
// profile there.
func LoadProfile(configPath string) (*Profile, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading profile file, %s", err)
	}

	var profile Profile
	err := viper.Unmarshal(&profile, profileDecodeHook())
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &profile, nil
}

// LoadProfileFromReader loads a YAML-formatted profile from an in-memory
// source. Unlike LoadProfile it uses a private viper instance, so concurrent
// callers do not share state.
func LoadProfileFromReader(in io.Reader) (*Profile, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(in); err != nil {
		return nil, fmt.Errorf("error reading profile data, %s", err)
	}

	var profile Profile
	err := v.Unmarshal(&profile, profileDecodeHook())
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &profile, nil
}

func profileDecodeHook() viper.DecoderConfigOption {
	return viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		amountHook(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
}

// amountHook lets amount fields be written as strings with currency
// formatting ("$1,234.56"). The parse is exact; a string that is not an
// amount fails the whole load.
func amountHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if from.Kind() != reflect.String || to.Kind() != reflect.Float64 {
			return data, nil
		}
		return validation.ParseAmount(data.(string))
	}
}

// Normalize fills structural gaps in the profile with defaults and returns a
// warning for every repair a user should know about. Blank per-envelope
// fields fall back silently; anything affecting money or invalid values
// warns.
func (p *Profile) Normalize() []string {
	var warnings []string

	if p.PayCycle == "" {
		p.PayCycle = string(paycycle.Fortnightly)
		warnings = append(warnings, "profile has no payCycle, defaulting to fortnightly")
	} else if _, err := paycycle.Parse(p.PayCycle); err != nil {
		warnings = append(warnings, fmt.Sprintf("%v, defaulting to fortnightly", err))
		p.PayCycle = string(paycycle.Fortnightly)
	}

	for i := range p.Envelopes {
		env := &p.Envelopes[i]
		if env.ID == "" {
			env.ID = uuid.NewString()
		}
		if env.Kind == "" {
			env.Kind = string(envelope.Expense)
		}
		if env.Tier == "" {
			env.Tier = string(envelope.Important)
		} else if _, err := envelope.ParseTier(env.Tier); err != nil {
			warnings = append(warnings, fmt.Sprintf("envelope '%s': %v, defaulting to important", env.Name, err))
			env.Tier = string(envelope.Important)
		}
		if env.Frequency == "" {
			env.Frequency = string(paycycle.FrequencyMonthly)
		} else if _, err := paycycle.ParseFrequency(env.Frequency); err != nil {
			warnings = append(warnings, fmt.Sprintf("envelope '%s': %v, defaulting to monthly", env.Name, err))
			env.Frequency = string(paycycle.FrequencyMonthly)
		}
	}

	for i := range p.Debts {
		d := &p.Debts[i]
		if d.ID == "" {
			d.ID = uuid.NewString()
		}
		if d.MinimumPayment <= 0 && d.Balance > 0 {
			d.MinimumPayment = debt.EstimateMinimumPayment(d.Kind, d.Balance)
			warnings = append(warnings, fmt.Sprintf("debt '%s' has no minimum payment, estimated %.2f from its balance", d.Name, d.MinimumPayment))
		}
	}

	for i := range p.Scenarios {
		sc := &p.Scenarios[i]
		if sc.ID == "" {
			sc.ID = uuid.NewString()
		}
		if sc.DurationMonths <= 0 && sc.DurationPays <= 0 {
			sc.DurationMonths = 3
			warnings = append(warnings, fmt.Sprintf("scenario '%s' has no duration, defaulting to 3 months", sc.Name))
		}
	}

	if p.Payoff.Strategy == "" {
		p.Payoff.Strategy = string(debt.Avalanche)
	} else if _, err := debt.ParseStrategy(p.Payoff.Strategy); err != nil {
		warnings = append(warnings, fmt.Sprintf("%v, defaulting to avalanche", err))
		p.Payoff.Strategy = string(debt.Avalanche)
	}

	return warnings
}

// Validate performs comprehensive validation over the profile and returns
// warnings. Run it after Normalize so repaired fields do not double-report.
func (p *Profile) Validate() []string {
	pv := validation.ProfileValidator{
		PayCycle: p.PayCycle,
		Strategy: p.Payoff.Strategy,
	}
	for _, env := range p.Envelopes {
		pv.Envelopes = append(pv.Envelopes, validation.EnvelopeRecord{
			Name:      env.Name,
			Kind:      env.Kind,
			Tier:      env.Tier,
			Frequency: env.Frequency,
			DueDate:   env.DueDate,
			Target:    env.TargetAmount,
			Balance:   env.CurrentBalance,
			PerPay:    env.PerPayAmount,
		})
	}
	for _, d := range p.Debts {
		pv.Debts = append(pv.Debts, validation.DebtRecord{
			Name:    d.Name,
			Balance: d.Balance,
			Rate:    d.AnnualRate,
			Minimum: d.MinimumPayment,
		})
	}

	warnings := pv.ValidateAll()
	for _, sc := range p.Scenarios {
		warnings = append(warnings, scenarioWarnings(sc)...)
	}
	return warnings
}

func scenarioWarnings(sc ScenarioConfig) []string {
	var warnings []string
	if sc.Name == "" {
		warnings = append(warnings, "scenario has no name")
	}
	if sc.ReductionPercent < 0 || sc.ReductionPercent > 100 {
		warnings = append(warnings, fmt.Sprintf("scenario '%s' has reduction %.1f%%, expected 0-100", sc.Name, sc.ReductionPercent))
	}
	if len(sc.Tiers) == 0 {
		warnings = append(warnings, fmt.Sprintf("scenario '%s' affects no priority tiers", sc.Name))
	}
	for _, tier := range sc.Tiers {
		if _, err := envelope.ParseTier(tier); err != nil {
			warnings = append(warnings, fmt.Sprintf("scenario '%s': %v", sc.Name, err))
		}
	}
	return warnings
}
