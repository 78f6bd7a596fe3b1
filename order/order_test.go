package order

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rdj5415/a2e-quant-pipeline/common"
)

func marketBuy(symbol string, qty int64) *Order {
	return &Order{
		Symbol:      symbol,
		Kind:        Market,
		Side:        Buy,
		Quantity:    decimal.NewFromInt(qty),
		SubmittedAt: time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC),
	}
}

func TestOrderValidate(t *testing.T) {
	t.Parallel()
	assert.NoError(t, marketBuy("AAPL", 100).Validate())

	o := marketBuy("", 100)
	assert.ErrorIs(t, o.Validate(), common.ErrValidation)

	o = marketBuy("AAPL", 0)
	assert.ErrorIs(t, o.Validate(), common.ErrValidation)

	o = marketBuy("AAPL", -5)
	assert.ErrorIs(t, o.Validate(), common.ErrValidation)

	o = marketBuy("AAPL", 100)
	o.Side = Side("HOLD")
	assert.ErrorIs(t, o.Validate(), common.ErrValidation)

	o = marketBuy("AAPL", 100)
	o.Kind = Kind("STOP")
	assert.ErrorIs(t, o.Validate(), common.ErrValidation)

	// limit orders require a positive limit price
	o = marketBuy("AAPL", 100)
	o.Kind = Limit
	assert.ErrorIs(t, o.Validate(), common.ErrValidation)
	o.LimitPrice = decimal.NewFromInt(50)
	assert.NoError(t, o.Validate())

	// market orders cannot carry one
	o = marketBuy("AAPL", 100)
	o.LimitPrice = decimal.NewFromInt(50)
	assert.ErrorIs(t, o.Validate(), common.ErrValidation)
}

func TestQueueSubmit(t *testing.T) {
	t.Parallel()
	q := NewQueue()
	assert.ErrorIs(t, q.Submit(nil), common.ErrValidation)

	o := marketBuy("AAPL", 100)
	require.NoError(t, q.Submit(o))
	assert.NotEmpty(t, o.ID)
	assert.Equal(t, 1, q.Len())

	assert.ErrorIs(t, q.Submit(marketBuy("AAPL", 0)), common.ErrValidation)
	assert.Equal(t, 1, q.Len())

	// no deduplication and no per-symbol ceiling
	for i := 0; i < 5; i++ {
		require.NoError(t, q.Submit(marketBuy("AAPL", 100)))
	}
	assert.Equal(t, 6, q.Len())
}

func TestQueueScan(t *testing.T) {
	t.Parallel()
	q := NewQueue()
	first := marketBuy("AAPL", 1)
	other := marketBuy("MSFT", 2)
	second := marketBuy("AAPL", 3)
	require.NoError(t, q.Submit(first))
	require.NoError(t, q.Submit(other))
	require.NoError(t, q.Submit(second))

	matches := q.Scan("AAPL")
	require.Len(t, matches, 2)
	assert.Equal(t, first.ID, matches[0].ID)
	assert.Equal(t, second.ID, matches[1].ID)

	assert.Empty(t, q.Scan("GOOGL"))
	// scanning does not dequeue
	assert.Equal(t, 3, q.Len())
}

func TestQueueRemove(t *testing.T) {
	t.Parallel()
	q := NewQueue()
	o := marketBuy("AAPL", 1)
	require.NoError(t, q.Submit(o))
	require.NoError(t, q.Submit(marketBuy("MSFT", 2)))

	q.Remove(o.ID)
	assert.Equal(t, 1, q.Len())
	assert.Empty(t, q.Scan("AAPL"))

	q.Remove("unknown-id")
	assert.Equal(t, 1, q.Len())
}

func TestQueuePendingCopies(t *testing.T) {
	t.Parallel()
	q := NewQueue()
	require.NoError(t, q.Submit(marketBuy("AAPL", 1)))
	pending := q.Pending()
	require.Len(t, pending, 1)
	pending[0].Symbol = "MUTATED"
	assert.Equal(t, "AAPL", q.Scan("AAPL")[0].Symbol)
}
