package exchange

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rdj5415/a2e-quant-pipeline/common"
	"github.com/rdj5415/a2e-quant-pipeline/data"
	"github.com/rdj5415/a2e-quant-pipeline/order"
	"github.com/rdj5415/a2e-quant-pipeline/position"
)

func testBar(close int64) *data.Bar {
	c := decimal.NewFromInt(close)
	return &data.Bar{
		Timestamp: time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC),
		Symbol:    "AAPL",
		Open:      c,
		High:      c.Add(decimal.NewFromInt(2)),
		Low:       c.Sub(decimal.NewFromInt(2)),
		Close:     c,
		Volume:    decimal.NewFromInt(10000),
	}
}

func TestNew(t *testing.T) {
	t.Parallel()
	_, err := New(decimal.NewFromInt(-1), decimal.Zero, nil)
	assert.ErrorIs(t, err, common.ErrConfiguration)

	_, err = New(decimal.Zero, decimal.NewFromInt(-1), nil)
	assert.ErrorIs(t, err, common.ErrConfiguration)

	s, err := New(decimal.Zero, decimal.Zero, nil)
	require.NoError(t, err)
	assert.NotNil(t, s)
}

func TestProcessBarMarketBuy(t *testing.T) {
	t.Parallel()
	commission := decimal.NewFromFloat(0.001)
	slippage := decimal.NewFromFloat(0.0001)
	s, err := New(commission, slippage, nil)
	require.NoError(t, err)

	q := order.NewQueue()
	ledger := position.NewLedger()
	require.NoError(t, q.Submit(&order.Order{
		Symbol:   "AAPL",
		Kind:     order.Market,
		Side:     order.Buy,
		Quantity: decimal.NewFromInt(100),
	}))

	capital := decimal.NewFromInt(1000000)
	res, err := s.ProcessBar(testBar(50), q, ledger, capital)
	require.NoError(t, err)
	require.Len(t, res.Trades, 1)

	// fill price = close * (1 + slippage)
	wantPrice := decimal.NewFromInt(50).Mul(decimal.NewFromFloat(1.0001))
	assert.True(t, res.Trades[0].Price.Equal(wantPrice), res.Trades[0].Price.String())

	// commission = qty * price * rate
	wantCommission := decimal.NewFromInt(100).Mul(wantPrice).Mul(commission)
	assert.True(t, res.Trades[0].Commission.Equal(wantCommission))

	// capital decreases by exactly cost plus commission
	wantCapital := capital.Sub(decimal.NewFromInt(100).Mul(wantPrice)).Sub(wantCommission)
	assert.True(t, res.Capital.Equal(wantCapital), res.Capital.String())

	assert.Zero(t, q.Len())
	p, ok := ledger.Position("AAPL")
	require.True(t, ok)
	assert.True(t, p.AverageCost.Equal(wantPrice))
}

func TestProcessBarMarketSellSlippage(t *testing.T) {
	t.Parallel()
	s, err := New(decimal.Zero, decimal.NewFromFloat(0.01), nil)
	require.NoError(t, err)

	q := order.NewQueue()
	ledger := position.NewLedger()
	require.NoError(t, q.Submit(&order.Order{
		Symbol:   "AAPL",
		Kind:     order.Market,
		Side:     order.Buy,
		Quantity: decimal.NewFromInt(10),
	}))
	res, err := s.ProcessBar(testBar(100), q, ledger, decimal.NewFromInt(10000))
	require.NoError(t, err)
	// buys pay up: 100 * 1.01
	assert.Equal(t, "101", res.Trades[0].Price.String())

	require.NoError(t, q.Submit(&order.Order{
		Symbol:   "AAPL",
		Kind:     order.Market,
		Side:     order.Sell,
		Quantity: decimal.NewFromInt(10),
	}))
	res, err = s.ProcessBar(testBar(100), q, ledger, res.Capital)
	require.NoError(t, err)
	// sells give up: 100 * 0.99
	assert.Equal(t, "99", res.Trades[0].Price.String())
}

func TestProcessBarLimitOrders(t *testing.T) {
	t.Parallel()
	s, err := New(decimal.Zero, decimal.Zero, nil)
	require.NoError(t, err)

	q := order.NewQueue()
	ledger := position.NewLedger()
	require.NoError(t, q.Submit(&order.Order{
		Symbol:     "AAPL",
		Kind:       order.Limit,
		Side:       order.Buy,
		Quantity:   decimal.NewFromInt(10),
		LimitPrice: decimal.NewFromInt(45),
	}))

	// bar low is 48, limit 45 not reached, order stays queued
	capital := decimal.NewFromInt(100000)
	res, err := s.ProcessBar(testBar(50), q, ledger, capital)
	require.NoError(t, err)
	assert.Empty(t, res.Trades)
	assert.Equal(t, 1, q.Len())

	// bar low 42 crosses the limit, fills at exactly the limit price
	res, err = s.ProcessBar(testBar(44), q, ledger, capital)
	require.NoError(t, err)
	require.Len(t, res.Trades, 1)
	assert.Equal(t, "45", res.Trades[0].Price.String())
	assert.Zero(t, q.Len())

	// sell side triggers on the high
	require.NoError(t, q.Submit(&order.Order{
		Symbol:     "AAPL",
		Kind:       order.Limit,
		Side:       order.Sell,
		Quantity:   decimal.NewFromInt(10),
		LimitPrice: decimal.NewFromInt(60),
	}))
	res, err = s.ProcessBar(testBar(50), q, ledger, res.Capital)
	require.NoError(t, err)
	assert.Empty(t, res.Trades)

	res, err = s.ProcessBar(testBar(59), q, ledger, res.Capital)
	require.NoError(t, err)
	require.Len(t, res.Trades, 1)
	assert.Equal(t, "60", res.Trades[0].Price.String())
}

func TestProcessBarSkipsOtherSymbols(t *testing.T) {
	t.Parallel()
	s, err := New(decimal.Zero, decimal.Zero, nil)
	require.NoError(t, err)

	q := order.NewQueue()
	require.NoError(t, q.Submit(&order.Order{
		Symbol:   "MSFT",
		Kind:     order.Market,
		Side:     order.Buy,
		Quantity: decimal.NewFromInt(10),
	}))

	res, err := s.ProcessBar(testBar(50), q, position.NewLedger(), decimal.NewFromInt(1000))
	require.NoError(t, err)
	assert.Empty(t, res.Trades)
	assert.Equal(t, 1, q.Len())
}

func TestProcessBarOversell(t *testing.T) {
	t.Parallel()
	s, err := New(decimal.Zero, decimal.Zero, nil)
	require.NoError(t, err)

	q := order.NewQueue()
	ledger := position.NewLedger()
	require.NoError(t, q.Submit(&order.Order{
		Symbol:   "AAPL",
		Kind:     order.Market,
		Side:     order.Sell,
		Quantity: decimal.NewFromInt(10),
	}))

	capital := decimal.NewFromInt(1000)
	res, err := s.ProcessBar(testBar(50), q, ledger, capital)
	assert.ErrorIs(t, err, common.ErrInsufficientPosition)
	// capital untouched and the offending order dequeued
	assert.True(t, res.Capital.Equal(capital))
	assert.Zero(t, q.Len())
}

func TestProcessBarNilArguments(t *testing.T) {
	t.Parallel()
	s, err := New(decimal.Zero, decimal.Zero, nil)
	require.NoError(t, err)
	_, err = s.ProcessBar(nil, order.NewQueue(), position.NewLedger(), decimal.Zero)
	assert.ErrorIs(t, err, common.ErrNilArguments)
}
