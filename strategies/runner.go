package strategies

import (
	"errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rdj5415/a2e-quant-pipeline/common"
	"github.com/rdj5415/a2e-quant-pipeline/data"
	"github.com/rdj5415/a2e-quant-pipeline/engine"
	"github.com/rdj5415/a2e-quant-pipeline/order"
)

// Runner feeds a bar stream to a strategy and the engine in lockstep:
// each bar extends the strategy's close window, any resulting intent is
// submitted as a market order, then the bar is processed so the order
// fills at that bar's close. The runner stays long-only, it buys when
// flat and sells the whole held quantity on a sell signal
type Runner struct {
	eng       *engine.Engine
	strat     Handler
	orderSize decimal.Decimal
	log       *zap.Logger

	closes map[string][]float64
}

// NewRunner wires a strategy to an engine with a fixed buy order size
func NewRunner(eng *engine.Engine, strat Handler, orderSize decimal.Decimal, logger *zap.Logger) (*Runner, error) {
	if eng == nil || strat == nil {
		return nil, common.ErrNilArguments
	}
	if !orderSize.IsPositive() {
		return nil, common.ErrConfiguration
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		eng:       eng,
		strat:     strat,
		orderSize: orderSize,
		log:       logger,
		closes:    make(map[string][]float64),
	}, nil
}

// Run drives the whole stream. Malformed bars are skipped the same way
// the bare engine run loop skips them, without reaching the strategy
func (r *Runner) Run(stream data.Stream) error {
	if stream == nil {
		return common.ErrNilArguments
	}
	for {
		bar, ok := stream.Next()
		if !ok {
			break
		}
		if err := bar.Validate(); err != nil {
			r.log.Warn("skipping bar", zap.Error(err))
			continue
		}
		// a stale bar must not reach the strategy window either
		if last := r.eng.LastBarTime(); !last.IsZero() && !bar.Timestamp.After(last) {
			r.log.Warn("skipping out of sequence bar",
				zap.Time("bar", bar.Timestamp),
				zap.Time("last", last),
			)
			continue
		}
		r.closes[bar.Symbol] = append(r.closes[bar.Symbol], bar.Close.InexactFloat64())

		if side, act := r.strat.OnBar(r.closes[bar.Symbol]); act {
			if err := r.submitIntent(bar, side); err != nil {
				return err
			}
		}
		err := r.eng.ProcessBar(bar)
		switch {
		case err == nil:
		case errors.Is(err, common.ErrData):
			r.log.Warn("skipping bar", zap.Error(err))
		default:
			return err
		}
	}
	return nil
}

func (r *Runner) submitIntent(bar data.Bar, side order.Side) error {
	held, hasPosition := r.eng.Position(bar.Symbol)
	o := &order.Order{
		Symbol:      bar.Symbol,
		Kind:        order.Market,
		Side:        side,
		SubmittedAt: bar.Timestamp,
	}
	switch side {
	case order.Buy:
		if hasPosition {
			return nil
		}
		o.Quantity = r.orderSize
	case order.Sell:
		if !hasPosition {
			return nil
		}
		o.Quantity = held.Quantity
	}
	r.log.Debug("strategy signal",
		zap.String("strategy", r.strat.Name()),
		zap.String("symbol", bar.Symbol),
		zap.String("side", string(side)),
		zap.String("quantity", o.Quantity.String()),
	)
	return r.eng.SubmitOrder(o)
}
