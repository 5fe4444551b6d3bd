package options

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// DefaultExpiration is the MMDDYY expiration used when no rule is configured.
	DefaultExpiration = "090122"
	// ExpirationLayout formats a date as MMDDYY.
	ExpirationLayout = "010206"

	DefaultStrikeSteps = 1
)

// DefaultStrikeDelta is the strike grid spacing used when no rule is configured.
var DefaultStrikeDelta = decimal.RequireFromString("2.5")

// StrikeRule picks a strike from the order price: the price is floored onto
// a grid of Delta, then moved Steps grid points lower.
type StrikeRule struct {
	Delta decimal.Decimal
	Steps int
}

// Strike returns price - (price mod Delta) - Steps*Delta. A non-positive
// Delta leaves the price unchanged.
func (r StrikeRule) Strike(price decimal.Decimal) decimal.Decimal {
	if r.Delta.Sign() <= 0 {
		return price
	}
	floored := price.Sub(price.Mod(r.Delta))
	return floored.Sub(r.Delta.Mul(decimal.NewFromInt(int64(r.Steps))))
}

// FormatStrike prints whole strikes without decimals and everything else
// rounded to one decimal place ("5", "7.5").
func FormatStrike(strike decimal.Decimal) string {
	return strike.Round(1).String()
}

// ExpirationRule resolves the MMDDYY expiration segment of a contract id.
// DaysOut, when positive, wins over the literal Date.
type ExpirationRule struct {
	Date    string
	DaysOut int
}

func (r ExpirationRule) Resolve(now time.Time) string {
	if r.DaysOut > 0 {
		return now.AddDate(0, 0, r.DaysOut).Format(ExpirationLayout)
	}
	if r.Date != "" {
		return r.Date
	}
	return DefaultExpiration
}

// ContractSpec bundles the per-ticker rules used to derive a contract id.
type ContractSpec struct {
	Strike     StrikeRule
	Expiration ExpirationRule
}

func DefaultContractSpec() ContractSpec {
	return ContractSpec{
		Strike:     StrikeRule{Delta: DefaultStrikeDelta, Steps: DefaultStrikeSteps},
		Expiration: ExpirationRule{Date: DefaultExpiration},
	}
}

// SpecSource resolves the contract rules for a ticker.
// Satisfied by config.ContractRules.
type SpecSource interface {
	SpecFor(ticker string) ContractSpec
}

// StaticSpec applies the same rules to every ticker.
type StaticSpec ContractSpec

func (s StaticSpec) SpecFor(string) ContractSpec { return ContractSpec(s) }
