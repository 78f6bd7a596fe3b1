package exchange

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rdj5415/a2e-quant-pipeline/common"
	"github.com/rdj5415/a2e-quant-pipeline/data"
	"github.com/rdj5415/a2e-quant-pipeline/fill"
	"github.com/rdj5415/a2e-quant-pipeline/order"
	"github.com/rdj5415/a2e-quant-pipeline/position"
)

// New returns a fill simulator using the given commission rate and
// slippage, both expressed as fractions
func New(commissionRate, slippage decimal.Decimal, logger *zap.Logger) (*Simulator, error) {
	if commissionRate.IsNegative() {
		return nil, fmt.Errorf("%w: %w, received %v", common.ErrConfiguration, errCommissionNegative, commissionRate)
	}
	if slippage.IsNegative() {
		return nil, fmt.Errorf("%w: %w, received %v", common.ErrConfiguration, errSlippageNegative, slippage)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Simulator{
		commissionRate: commissionRate,
		slippage:       slippage,
		log:            logger,
	}, nil
}

// ProcessBar marks the ledger to market and then matches the bar
// against the queued orders for its symbol, in submission order. Every
// fill updates the ledger, adjusts capital and produces a trade, and
// the filled order leaves the queue. Limit orders that do not trigger
// stay queued for a future bar. An oversell removes the offending
// order and stops the bar with the ledger error
func (s *Simulator) ProcessBar(bar *data.Bar, q *order.Queue, ledger *position.Ledger, capital decimal.Decimal) (Result, error) {
	res := Result{Capital: capital}
	if bar == nil || q == nil || ledger == nil {
		return res, common.ErrNilArguments
	}
	ledger.MarkToMarket(bar)

	for _, o := range q.Scan(bar.Symbol) {
		price, filled, err := s.fillPrice(o, bar)
		if err != nil {
			return res, err
		}
		if !filled {
			continue
		}
		t := fill.Trade{
			Timestamp:  bar.Timestamp,
			Symbol:     o.Symbol,
			Side:       o.Side,
			Quantity:   o.Quantity,
			Price:      price,
			Commission: o.Quantity.Mul(price).Mul(s.commissionRate),
			OrderID:    o.ID,
		}
		if err := ledger.ApplyFill(&t); err != nil {
			q.Remove(o.ID)
			return res, err
		}
		res.Capital = res.Capital.Add(t.Cost())
		res.Trades = append(res.Trades, t)
		q.Remove(o.ID)
		s.log.Debug("order filled",
			zap.String("symbol", t.Symbol),
			zap.String("side", string(t.Side)),
			zap.String("quantity", t.Quantity.String()),
			zap.String("price", t.Price.String()),
			zap.String("commission", t.Commission.String()),
		)
	}
	return res, nil
}

// fillPrice decides whether the order fills on the bar and at what
// price. The order kind switch is exhaustive, an unknown kind is an
// error rather than a silent skip
func (s *Simulator) fillPrice(o *order.Order, bar *data.Bar) (decimal.Decimal, bool, error) {
	switch o.Kind {
	case order.Market:
		return s.applySlippageToPrice(o.Side, bar.Close), true, nil
	case order.Limit:
		// no price improvement, a triggered limit fills at exactly its limit
		switch o.Side {
		case order.Buy:
			if bar.Low.LessThanOrEqual(o.LimitPrice) {
				return o.LimitPrice, true, nil
			}
		case order.Sell:
			if bar.High.GreaterThanOrEqual(o.LimitPrice) {
				return o.LimitPrice, true, nil
			}
		}
		return decimal.Zero, false, nil
	default:
		return decimal.Zero, false, fmt.Errorf("%w: unhandled order kind %q", common.ErrValidation, o.Kind)
	}
}

func (s *Simulator) applySlippageToPrice(side order.Side, closePrice decimal.Decimal) decimal.Decimal {
	one := decimal.NewFromInt(1)
	if side == order.Buy {
		return closePrice.Mul(one.Add(s.slippage))
	}
	return closePrice.Mul(one.Sub(s.slippage))
}
