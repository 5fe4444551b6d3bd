package options

import (
	"fmt"
	"time"
)

// Builder turns an OrderStrategy into a single-leg PlaceOrderBody.
// It holds no mutable state; the same strategy and clock reading always
// produce the same payload.
type Builder struct {
	specs SpecSource
	now   func() time.Time
}

// NewBuilder returns a Builder. A nil specs falls back to DefaultContractSpec
// and a nil clock to time.Now.
func NewBuilder(specs SpecSource, now func() time.Time) *Builder {
	if specs == nil {
		specs = StaticSpec(DefaultContractSpec())
	}
	if now == nil {
		now = time.Now
	}
	return &Builder{specs: specs, now: now}
}

var defaultBuilder = NewBuilder(nil, nil)

// BuildOrder builds the payload with the default contract rules.
func BuildOrder(s OrderStrategy) PlaceOrderBody {
	return defaultBuilder.Build(s)
}

func (b *Builder) Build(s OrderStrategy) PlaceOrderBody {
	return PlaceOrderBody{
		ComplexOrderStrategyType: "NONE",
		OrderType:                "LIMIT",
		Session:                  "NORMAL",
		Price:                    s.Price,
		Duration:                 "DAY",
		OrderStrategyType:        "SINGLE",
		OrderLegCollection: []OrderLeg{{
			Instruction: s.Direction.Instruction(),
			Quantity:    s.Quantity,
			Instrument: OptionInstrument{
				Symbol:    b.ContractID(s),
				AssetType: AssetTypeOption,
			},
		}},
	}
}

// ContractID produces {ticker}_{MMDDYY}{C|P}{strike}, e.g. AAPL_090122C5.
func (b *Builder) ContractID(s OrderStrategy) string {
	spec := b.specs.SpecFor(s.Ticker)
	strike := spec.Strike.Strike(s.Price)
	return fmt.Sprintf("%s_%s%s%s",
		s.Ticker,
		spec.Expiration.Resolve(b.now()),
		s.Contract.Initial(),
		FormatStrike(strike),
	)
}
