package position

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/rdj5415/a2e-quant-pipeline/common"
	"github.com/rdj5415/a2e-quant-pipeline/data"
	"github.com/rdj5415/a2e-quant-pipeline/fill"
	"github.com/rdj5415/a2e-quant-pipeline/order"
)

// NewLedger returns an empty position ledger
func NewLedger() *Ledger {
	return &Ledger{
		positions: make(map[string]*Position),
	}
}

// ApplyFill mutates the ledger for one trade. A buy creates the position
// or folds the fill into the weighted average cost. A sell reduces the
// quantity and accrues realized PnL against the average cost, deleting
// the position once quantity reaches zero. Selling more than held is
// rejected with an error wrapping common.ErrInsufficientPosition and
// leaves the ledger untouched
func (l *Ledger) ApplyFill(t *fill.Trade) error {
	if t == nil {
		return common.ErrNilArguments
	}
	switch t.Side {
	case order.Buy:
		l.applyBuy(t)
		return nil
	case order.Sell:
		return l.applySell(t)
	default:
		return fmt.Errorf("%w: unhandled side %q", common.ErrValidation, t.Side)
	}
}

func (l *Ledger) applyBuy(t *fill.Trade) {
	p, ok := l.positions[t.Symbol]
	if !ok {
		l.positions[t.Symbol] = &Position{
			Symbol:      t.Symbol,
			Quantity:    t.Quantity,
			AverageCost: t.Price,
			LastUpdated: t.Timestamp,
		}
		return
	}
	totalCost := p.Quantity.Mul(p.AverageCost).Add(t.Quantity.Mul(t.Price))
	p.Quantity = p.Quantity.Add(t.Quantity)
	p.AverageCost = totalCost.Div(p.Quantity)
	p.LastUpdated = t.Timestamp
}

func (l *Ledger) applySell(t *fill.Trade) error {
	p, ok := l.positions[t.Symbol]
	if !ok {
		return fmt.Errorf("%w: no open position in %v", common.ErrInsufficientPosition, t.Symbol)
	}
	if t.Quantity.GreaterThan(p.Quantity) {
		return fmt.Errorf("%w: sell %v exceeds held %v %v",
			common.ErrInsufficientPosition, t.Quantity, p.Quantity, t.Symbol)
	}
	pnl := t.Price.Sub(p.AverageCost).Mul(t.Quantity)
	p.RealizedPNL = p.RealizedPNL.Add(pnl)
	l.realized = l.realized.Add(pnl)
	p.Quantity = p.Quantity.Sub(t.Quantity)
	p.LastUpdated = t.Timestamp
	if p.Quantity.IsZero() {
		delete(l.positions, t.Symbol)
	}
	return nil
}

// MarkToMarket refreshes the unrealized PnL of the bar's symbol against
// its close. Reporting only, capital and average cost are unaffected
func (l *Ledger) MarkToMarket(bar *data.Bar) {
	p, ok := l.positions[bar.Symbol]
	if !ok {
		return
	}
	p.UnrealizedPNL = p.Quantity.Mul(bar.Close.Sub(p.AverageCost))
	p.LastUpdated = bar.Timestamp
}

// Position returns a copy of the open position for the symbol
func (l *Ledger) Position(symbol string) (Position, bool) {
	p, ok := l.positions[symbol]
	if !ok {
		return Position{}, false
	}
	return *p, true
}

// Positions returns copies of all open positions sorted by symbol
func (l *Ledger) Positions() []Position {
	snapshot := make([]Position, 0, len(l.positions))
	for _, p := range l.positions {
		snapshot = append(snapshot, *p)
	}
	sort.Slice(snapshot, func(i, j int) bool {
		return snapshot[i].Symbol < snapshot[j].Symbol
	})
	return snapshot
}

// HoldingsValue returns the cost basis value of all open positions,
// the sum of quantity multiplied by average cost
func (l *Ledger) HoldingsValue() decimal.Decimal {
	var total decimal.Decimal
	for _, p := range l.positions {
		total = total.Add(p.Quantity.Mul(p.AverageCost))
	}
	return total
}

// TotalRealizedPNL returns realized PnL accrued across all sells for
// the lifetime of the ledger, including positions since closed out
func (l *Ledger) TotalRealizedPNL() decimal.Decimal {
	return l.realized
}

// Reset returns the ledger to its initial state
func (l *Ledger) Reset() {
	l.positions = make(map[string]*Position)
	l.realized = decimal.Zero
}
