package order

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Kind differentiates how an order is priced at fill time
type Kind string

// Side is the direction of an order
type Side string

const (
	// Market orders fill unconditionally at the bar close adjusted for slippage
	Market Kind = "MARKET"
	// Limit orders fill at exactly their limit price once the bar range reaches it
	Limit Kind = "LIMIT"

	// Buy increases a holding
	Buy Side = "BUY"
	// Sell reduces a holding
	Sell Side = "SELL"
)

var (
	// ErrSubmissionIsNil is returned when a nil order is submitted
	ErrSubmissionIsNil = errors.New("order submission is nil")

	errSymbolEmpty         = errors.New("symbol is empty")
	errInvalidKind         = errors.New("unrecognised order kind")
	errInvalidSide         = errors.New("unrecognised order side")
	errQuantityInvalid     = errors.New("quantity must be positive")
	errLimitPriceRequired  = errors.New("limit orders require a positive limit price")
	errLimitPriceForbidden = errors.New("market orders cannot carry a limit price")
)

// Order is a request to trade a quantity of one symbol. It is immutable
// once accepted by the queue, it only ever leaves on a fill
type Order struct {
	ID          string          `json:"id"`
	Symbol      string          `json:"symbol"`
	Kind        Kind            `json:"kind"`
	Side        Side            `json:"side"`
	Quantity    decimal.Decimal `json:"quantity"`
	LimitPrice  decimal.Decimal `json:"limit_price,omitempty"`
	SubmittedAt time.Time       `json:"submitted_at"`
}

// Queue holds accepted orders awaiting a fill, in submission order
type Queue struct {
	orders []*Order
}
