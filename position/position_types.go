package position

import (
	"time"

	"github.com/shopspring/decimal"
)

// Position is the open holding for a single symbol. AverageCost is the
// volume weighted cost basis and only moves on buys. A position leaves
// the ledger the instant its quantity reaches exactly zero, history
// survives in the trade log
type Position struct {
	Symbol        string          `json:"symbol"`
	Quantity      decimal.Decimal `json:"quantity"`
	AverageCost   decimal.Decimal `json:"average_cost"`
	RealizedPNL   decimal.Decimal `json:"realized_pnl"`
	UnrealizedPNL decimal.Decimal `json:"unrealized_pnl"`
	LastUpdated   time.Time       `json:"last_updated"`
}

// Ledger tracks open positions by symbol for one engine instance
type Ledger struct {
	positions map[string]*Position
	realized  decimal.Decimal
}
