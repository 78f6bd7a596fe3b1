package fill

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rdj5415/a2e-quant-pipeline/order"
)

// Trade records one fill. The trade log is append only, ordered by fill
// time and never mutated after the fact
type Trade struct {
	Timestamp  time.Time       `json:"timestamp"`
	Symbol     string          `json:"symbol"`
	Side       order.Side      `json:"side"`
	Quantity   decimal.Decimal `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	Commission decimal.Decimal `json:"commission"`
	OrderID    string          `json:"order_id,omitempty"`
}

// Cost returns the capital delta of the trade, negative for buys
// (price paid plus commission) and positive for sells (proceeds net of
// commission)
func (t *Trade) Cost() decimal.Decimal {
	gross := t.Quantity.Mul(t.Price)
	if t.Side == order.Buy {
		return gross.Add(t.Commission).Neg()
	}
	return gross.Sub(t.Commission)
}
