package options

import "github.com/shopspring/decimal"

const (
	InstructionBuyToOpen   = "BUY_TO_OPEN"
	InstructionSellToClose = "SELL_TO_CLOSE"

	AssetTypeOption = "OPTION"
)

// OrderStrategy is the trade request a single order is built from.
type OrderStrategy struct {
	Ticker    string
	Price     decimal.Decimal
	Quantity  int
	Contract  ContractType
	Direction TradeDirection
}

// PlaceOrderBody is the payload for POST /v1/accounts/{accountId}/orders.
// Price is encoded as a JSON string.
type PlaceOrderBody struct {
	ComplexOrderStrategyType string          `json:"complexOrderStrategyType"` // always NONE
	OrderType                string          `json:"orderType"`                // always LIMIT
	Session                  string          `json:"session"`
	Price                    decimal.Decimal `json:"price"`
	Duration                 string          `json:"duration"`
	OrderStrategyType        string          `json:"orderStrategyType"`
	OrderLegCollection       []OrderLeg      `json:"orderLegCollection"`
}

type OrderLeg struct {
	Instruction string           `json:"instruction"`
	Quantity    int              `json:"quantity"`
	Instrument  OptionInstrument `json:"instrument"`
}

type OptionInstrument struct {
	Symbol    string `json:"symbol"`
	AssetType string `json:"assetType"`
}

// Symbol returns the instrument symbol of the first leg, or "" when empty.
func (b PlaceOrderBody) Symbol() string {
	if len(b.OrderLegCollection) == 0 {
		return ""
	}
	return b.OrderLegCollection[0].Instrument.Symbol
}
