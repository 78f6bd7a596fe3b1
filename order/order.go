package order

import (
	"fmt"

	"github.com/gofrs/uuid"

	"github.com/rdj5415/a2e-quant-pipeline/common"
)

// Validate checks the order can be matched at all. Failures wrap
// common.ErrValidation
func (o *Order) Validate() error {
	if o.Symbol == "" {
		return fmt.Errorf("%w: %w", common.ErrValidation, errSymbolEmpty)
	}
	switch o.Side {
	case Buy, Sell:
	default:
		return fmt.Errorf("%w: %w %q", common.ErrValidation, errInvalidSide, o.Side)
	}
	if !o.Quantity.IsPositive() {
		return fmt.Errorf("%w: %w, received %v", common.ErrValidation, errQuantityInvalid, o.Quantity)
	}
	switch o.Kind {
	case Market:
		if !o.LimitPrice.IsZero() {
			return fmt.Errorf("%w: %w", common.ErrValidation, errLimitPriceForbidden)
		}
	case Limit:
		if !o.LimitPrice.IsPositive() {
			return fmt.Errorf("%w: %w, received %v", common.ErrValidation, errLimitPriceRequired, o.LimitPrice)
		}
	default:
		return fmt.Errorf("%w: %w %q", common.ErrValidation, errInvalidKind, o.Kind)
	}
	return nil
}

// NewQueue returns an empty order queue
func NewQueue() *Queue {
	return &Queue{}
}

// Submit validates the order, assigns it an ID when it has none and
// enqueues it at the tail. There is no deduplication and no ceiling on
// outstanding orders per symbol
func (q *Queue) Submit(o *Order) error {
	if o == nil {
		return fmt.Errorf("%w: %w", common.ErrValidation, ErrSubmissionIsNil)
	}
	if err := o.Validate(); err != nil {
		return err
	}
	if o.ID == "" {
		id, err := uuid.NewV4()
		if err != nil {
			return err
		}
		o.ID = id.String()
	}
	q.orders = append(q.orders, o)
	return nil
}

// Scan returns the queued orders for the symbol in original submission
// order. Orders for other symbols remain queued untouched
func (q *Queue) Scan(symbol string) []*Order {
	var matches []*Order
	for i := range q.orders {
		if q.orders[i].Symbol == symbol {
			matches = append(matches, q.orders[i])
		}
	}
	return matches
}

// Remove drops the order with the given ID from the queue
func (q *Queue) Remove(id string) {
	for i := range q.orders {
		if q.orders[i].ID == id {
			q.orders = append(q.orders[:i], q.orders[i+1:]...)
			return
		}
	}
}

// Len returns the number of orders still queued
func (q *Queue) Len() int {
	return len(q.orders)
}

// Pending returns a copy of all queued orders in submission order
func (q *Queue) Pending() []Order {
	pending := make([]Order, len(q.orders))
	for i := range q.orders {
		pending[i] = *q.orders[i]
	}
	return pending
}

// Reset returns the queue to its initial state
func (q *Queue) Reset() {
	q.orders = nil
}
