package exchange

import (
	"errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rdj5415/a2e-quant-pipeline/fill"
)

var (
	errCommissionNegative = errors.New("commission rate cannot be negative")
	errSlippageNegative   = errors.New("slippage cannot be negative")
)

// Simulator applies market and limit fill rules to queued orders one
// bar at a time. It owns no portfolio state of its own, it mutates the
// ledger and capital handed to it
type Simulator struct {
	commissionRate decimal.Decimal
	slippage       decimal.Decimal
	log            *zap.Logger
}

// Result is the outcome of processing one bar
type Result struct {
	// Capital after every fill triggered by the bar
	Capital decimal.Decimal
	// Trades produced by the bar in fill order
	Trades []fill.Trade
}
