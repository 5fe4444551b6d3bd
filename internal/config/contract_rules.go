package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/charleschow/tda-trading/internal/core/options"
)

// ContractRule holds optional overrides; unset fields inherit from the
// defaults section, then from options.DefaultContractSpec.
type ContractRule struct {
	StrikeDelta       *decimal.Decimal `yaml:"strike_delta"`
	StrikeSteps       *int             `yaml:"strike_steps"`
	Expiration        string           `yaml:"expiration"` // MMDDYY
	ExpirationDaysOut int              `yaml:"expiration_days_out"`
}

type ContractRules struct {
	Defaults ContractRule            `yaml:"defaults"`
	Tickers  map[string]ContractRule `yaml:"tickers"`
}

var _ options.SpecSource = ContractRules{}

// LoadContractRules reads the YAML rules file. An empty path yields the
// built-in defaults.
func LoadContractRules(path string) (ContractRules, error) {
	if path == "" {
		return ContractRules{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return ContractRules{}, fmt.Errorf("read contract rules: %w", err)
	}

	var rules ContractRules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return ContractRules{}, fmt.Errorf("parse contract rules: %w", err)
	}
	if err := rules.validate(); err != nil {
		return ContractRules{}, fmt.Errorf("contract rules %s: %w", path, err)
	}

	return rules, nil
}

func (cr ContractRules) validate() error {
	check := func(name string, r ContractRule) error {
		if r.StrikeDelta != nil && r.StrikeDelta.Sign() <= 0 {
			return fmt.Errorf("%s: strike_delta must be positive", name)
		}
		if r.StrikeSteps != nil && *r.StrikeSteps < 0 {
			return fmt.Errorf("%s: strike_steps must not be negative", name)
		}
		if r.Expiration != "" && len(r.Expiration) != len(options.ExpirationLayout) {
			return fmt.Errorf("%s: expiration %q is not MMDDYY", name, r.Expiration)
		}
		return nil
	}

	if err := check("defaults", cr.Defaults); err != nil {
		return err
	}
	for ticker, r := range cr.Tickers {
		if err := check(ticker, r); err != nil {
			return err
		}
	}
	return nil
}

// SpecFor resolves the contract spec for ticker.
func (cr ContractRules) SpecFor(ticker string) options.ContractSpec {
	spec := options.DefaultContractSpec()
	apply(&spec, cr.Defaults)
	if r, ok := cr.Tickers[ticker]; ok {
		apply(&spec, r)
	}
	return spec
}

func apply(spec *options.ContractSpec, r ContractRule) {
	if r.StrikeDelta != nil {
		spec.Strike.Delta = *r.StrikeDelta
	}
	if r.StrikeSteps != nil {
		spec.Strike.Steps = *r.StrikeSteps
	}
	if r.Expiration != "" {
		spec.Expiration = options.ExpirationRule{Date: r.Expiration}
	}
	if r.ExpirationDaysOut > 0 {
		spec.Expiration.DaysOut = r.ExpirationDaysOut
	}
}
