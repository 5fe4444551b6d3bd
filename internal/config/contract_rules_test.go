package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charleschow/tda-trading/internal/core/options"
)

func writeRules(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "contract_rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadContractRules(t *testing.T) {
	path := writeRules(t, `
defaults:
  strike_steps: 2
tickers:
  SPY:
    strike_delta: 1
    expiration_days_out: 7
  AAPL:
    expiration: "101522"
`)

	rules, err := LoadContractRules(path)
	require.NoError(t, err)

	t.Run("defaults inherit built-in delta", func(t *testing.T) {
		spec := rules.SpecFor("QQQ")
		assert.True(t, options.DefaultStrikeDelta.Equal(spec.Strike.Delta))
		assert.Equal(t, 2, spec.Strike.Steps)
		assert.Equal(t, options.DefaultExpiration, spec.Expiration.Date)
	})

	t.Run("ticker override", func(t *testing.T) {
		spec := rules.SpecFor("SPY")
		assert.True(t, decimal.NewFromInt(1).Equal(spec.Strike.Delta))
		assert.Equal(t, 2, spec.Strike.Steps)
		assert.Equal(t, 7, spec.Expiration.DaysOut)
	})

	t.Run("drives the builder", func(t *testing.T) {
		clock := func() time.Time { return time.Date(2022, time.August, 25, 0, 0, 0, 0, time.UTC) }
		b := options.NewBuilder(rules, clock)

		id := b.ContractID(options.OrderStrategy{
			Ticker:   "AAPL",
			Price:    decimal.RequireFromString("150.4"),
			Contract: options.Put,
		})
		assert.Equal(t, "AAPL_101522P145", id)

		id = b.ContractID(options.OrderStrategy{
			Ticker:   "SPY",
			Price:    decimal.RequireFromString("401.7"),
			Contract: options.Call,
		})
		assert.Equal(t, "SPY_090122C399", id)
	})
}

func TestLoadContractRulesEmptyPath(t *testing.T) {
	rules, err := LoadContractRules("")
	require.NoError(t, err)
	assert.Equal(t, options.DefaultContractSpec(), rules.SpecFor("AAPL"))
}

func TestLoadContractRulesErrors(t *testing.T) {
	_, err := LoadContractRules(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read contract rules")

	_, err = LoadContractRules(writeRules(t, "tickers: [oops"))
	assert.ErrorContains(t, err, "parse contract rules")

	_, err = LoadContractRules(writeRules(t, "tickers:\n  SPY:\n    strike_delta: 0\n"))
	assert.ErrorContains(t, err, "strike_delta must be positive")

	_, err = LoadContractRules(writeRules(t, "defaults:\n  expiration: \"2022-09-01\"\n"))
	assert.ErrorContains(t, err, "not MMDDYY")
}
