package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rdj5415/a2e-quant-pipeline/common"
	"github.com/rdj5415/a2e-quant-pipeline/config"
	"github.com/rdj5415/a2e-quant-pipeline/data"
	"github.com/rdj5415/a2e-quant-pipeline/equity"
	"github.com/rdj5415/a2e-quant-pipeline/exchange"
	"github.com/rdj5415/a2e-quant-pipeline/fill"
	"github.com/rdj5415/a2e-quant-pipeline/order"
	"github.com/rdj5415/a2e-quant-pipeline/position"
	"github.com/rdj5415/a2e-quant-pipeline/statistics"
)

// New validates the settings and returns an engine ready to accept
// orders and bars. Settings failures surface before any bar is
// processed
func New(s config.Settings, logger *zap.Logger) (*Engine, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	sim, err := exchange.New(s.CommissionRate, s.Slippage, logger)
	if err != nil {
		return nil, err
	}
	return &Engine{
		initialCapital: s.InitialCapital,
		capital:        s.InitialCapital,
		queue:          order.NewQueue(),
		ledger:         position.NewLedger(),
		sim:            sim,
		tracker:        equity.NewTracker(),
		log:            logger,
	}, nil
}

// SubmitOrder validates and enqueues an order for matching on future
// bars of its symbol
func (e *Engine) SubmitOrder(o *order.Order) error {
	if err := e.queue.Submit(o); err != nil {
		return err
	}
	e.log.Debug("order placed",
		zap.String("id", o.ID),
		zap.String("symbol", o.Symbol),
		zap.String("kind", string(o.Kind)),
		zap.String("side", string(o.Side)),
		zap.String("quantity", o.Quantity.String()),
	)
	return nil
}

// ProcessBar runs one cycle: mark to market, order matching, equity
// snapshot. A malformed bar is rejected with a data error and leaves
// all state untouched, including the equity curve
func (e *Engine) ProcessBar(bar data.Bar) error {
	if err := bar.Validate(); err != nil {
		return err
	}
	if !e.lastBarTime.IsZero() && !bar.Timestamp.After(e.lastBarTime) {
		return fmt.Errorf("%w: %w %v then %v", common.ErrData, errBarOutOfSequence, e.lastBarTime, bar.Timestamp)
	}

	res, err := e.sim.ProcessBar(&bar, e.queue, e.ledger, e.capital)
	e.capital = res.Capital
	e.trades = append(e.trades, res.Trades...)
	e.lastBarTime = bar.Timestamp
	e.tracker.Snapshot(bar.Timestamp, e.capital, e.ledger.HoldingsValue())
	if err != nil {
		return err
	}
	return nil
}

// Run consumes the stream until exhaustion. Malformed bars are skipped
// and logged, any other failure stops the run and is returned. Orders
// left unfilled at stream end stay queued and are simply not reported
func (e *Engine) Run(stream data.Stream) error {
	if stream == nil {
		return fmt.Errorf("%w: %w", common.ErrNilArguments, errNilStream)
	}
	for {
		bar, ok := stream.Next()
		if !ok {
			break
		}
		err := e.ProcessBar(bar)
		switch {
		case err == nil:
		case errors.Is(err, common.ErrData):
			e.barsSkipped++
			e.log.Warn("skipping bar", zap.Error(err))
		default:
			return err
		}
	}
	e.log.Info("run complete",
		zap.Int("bars", e.tracker.Len()),
		zap.Int64("bars_skipped", e.barsSkipped),
		zap.Int("trades", len(e.trades)),
		zap.String("capital", e.capital.String()),
	)
	return nil
}

// Results derives performance metrics from the equity curve and trade
// log. It never fails, degenerate runs produce zero-valued metrics
func (e *Engine) Results() statistics.Results {
	return statistics.CalculateResults(e.tracker.Curve(), e.Trades(), e.initialCapital)
}

// Summary packages the read-only outputs of the run
func (e *Engine) Summary() Summary {
	return Summary{
		Metrics:      e.Results(),
		Trades:       e.Trades(),
		EquityCurve:  e.EquityCurve(),
		Positions:    e.ledger.Positions(),
		FinalCapital: e.capital,
		BarsSkipped:  e.barsSkipped,
	}
}

// Trades returns a copy of the trade log in fill order
func (e *Engine) Trades() []fill.Trade {
	trades := make([]fill.Trade, len(e.trades))
	copy(trades, e.trades)
	return trades
}

// EquityCurve returns a copy of the recorded equity curve
func (e *Engine) EquityCurve() []equity.Sample {
	return e.tracker.Curve()
}

// Capital returns the current cash balance
func (e *Engine) Capital() decimal.Decimal {
	return e.capital
}

// InitialCapital returns the starting cash balance
func (e *Engine) InitialCapital() decimal.Decimal {
	return e.initialCapital
}

// LastBarTime returns the timestamp of the last processed bar, zero
// before the first bar. Only bars after it will be accepted
func (e *Engine) LastBarTime() time.Time {
	return e.lastBarTime
}

// Position returns a copy of the open position for the symbol
func (e *Engine) Position(symbol string) (position.Position, bool) {
	return e.ledger.Position(symbol)
}

// Positions returns copies of all open positions sorted by symbol
func (e *Engine) Positions() []position.Position {
	return e.ledger.Positions()
}

// RealizedPNL returns realized profit and loss accrued over the run
func (e *Engine) RealizedPNL() decimal.Decimal {
	return e.ledger.TotalRealizedPNL()
}

// PendingOrders returns a copy of the orders still queued
func (e *Engine) PendingOrders() []order.Order {
	return e.queue.Pending()
}

// Reset returns the engine to its pre-run state
func (e *Engine) Reset() {
	e.capital = e.initialCapital
	e.queue.Reset()
	e.ledger.Reset()
	e.tracker.Reset()
	e.trades = nil
	e.lastBarTime = time.Time{}
	e.barsSkipped = 0
}
