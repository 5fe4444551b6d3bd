package options

import (
	"fmt"
	"strings"
)

// ContractType is the option right: call or put.
type ContractType string

const (
	Call ContractType = "call"
	Put  ContractType = "put"
)

// Initial is the single letter used inside a contract identifier.
func (c ContractType) Initial() string {
	if c == Put {
		return "P"
	}
	return "C"
}

func ParseContractType(s string) (ContractType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "call", "c":
		return Call, nil
	case "put", "p":
		return Put, nil
	}
	return "", fmt.Errorf("invalid contract type %q (want call or put)", s)
}

// TradeDirection decides the leg instruction.
type TradeDirection string

const (
	Buy  TradeDirection = "buy"
	Sell TradeDirection = "sell"
)

// Instruction maps a direction to the broker's leg instruction.
// Buys open a position, sells close one.
func (d TradeDirection) Instruction() string {
	if d == Sell {
		return InstructionSellToClose
	}
	return InstructionBuyToOpen
}

func ParseTradeDirection(s string) (TradeDirection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "buy", "b":
		return Buy, nil
	case "sell", "s":
		return Sell, nil
	}
	return "", fmt.Errorf("invalid trade direction %q (want buy or sell)", s)
}
