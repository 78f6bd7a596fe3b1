package engine

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rdj5415/a2e-quant-pipeline/equity"
	"github.com/rdj5415/a2e-quant-pipeline/exchange"
	"github.com/rdj5415/a2e-quant-pipeline/fill"
	"github.com/rdj5415/a2e-quant-pipeline/order"
	"github.com/rdj5415/a2e-quant-pipeline/position"
	"github.com/rdj5415/a2e-quant-pipeline/statistics"
)

var (
	errNilStream        = errors.New("nil bar stream")
	errBarOutOfSequence = errors.New("bar timestamp not after previous bar")
)

// Engine drives one backtest run. It exclusively owns all mutable run
// state, concurrent runs need separate instances
type Engine struct {
	initialCapital decimal.Decimal
	capital        decimal.Decimal

	queue   *order.Queue
	ledger  *position.Ledger
	sim     *exchange.Simulator
	tracker *equity.Tracker

	trades      []fill.Trade
	lastBarTime time.Time
	barsSkipped int64

	log *zap.Logger
}

// Summary is the read-only output of a completed run handed to risk and
// reporting collaborators
type Summary struct {
	Metrics      statistics.Results  `json:"metrics"`
	Trades       []fill.Trade        `json:"trades"`
	EquityCurve  []equity.Sample     `json:"equity_curve"`
	Positions    []position.Position `json:"positions"`
	FinalCapital decimal.Decimal     `json:"final_capital"`
	BarsSkipped  int64               `json:"bars_skipped"`
}
