package store

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rdj5415/a2e-quant-pipeline/equity"
	"github.com/rdj5415/a2e-quant-pipeline/fill"
	"github.com/rdj5415/a2e-quant-pipeline/order"
	"github.com/rdj5415/a2e-quant-pipeline/statistics"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, s.Close()) })
	return s
}

func TestOpenEmptyPath(t *testing.T) {
	t.Parallel()
	_, err := Open("")
	assert.ErrorIs(t, err, errPathEmpty)
}

func TestSaveAndLoadRun(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)
	ctx := context.Background()

	metrics := statistics.Results{
		TotalReturn: 0.0005,
		SharpeRatio: 1.25,
		MaxDrawdown: 0.1,
		WinRate:     0.5,
		TotalTrades: 2,
	}
	trades := []fill.Trade{
		{
			Timestamp:  time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC),
			Symbol:     "AAPL",
			Side:       order.Buy,
			Quantity:   decimal.NewFromInt(100),
			Price:      decimal.NewFromInt(50),
			Commission: decimal.NewFromInt(5),
			OrderID:    "o-1",
		},
		{
			Timestamp:  time.Date(2023, 1, 3, 0, 0, 0, 0, time.UTC),
			Symbol:     "AAPL",
			Side:       order.Sell,
			Quantity:   decimal.NewFromInt(100),
			Price:      decimal.NewFromInt(55),
			Commission: decimal.NewFromFloat(5.5),
			OrderID:    "o-2",
		},
	}
	curve := []equity.Sample{
		{Timestamp: trades[0].Timestamp, Equity: decimal.NewFromInt(1000000)},
		{Timestamp: trades[1].Timestamp, Equity: decimal.NewFromFloat(1000489.5)},
	}

	runID, err := s.SaveRun(ctx, "aapl-sma", "smacross", metrics, trades, curve)
	require.NoError(t, err)
	require.Positive(t, runID)

	run, err := s.GetRun(ctx, runID)
	require.NoError(t, err)
	assert.Equal(t, "aapl-sma", run.Name)
	assert.Equal(t, "smacross", run.Strategy)
	assert.Equal(t, metrics.TotalReturn, run.TotalReturn)
	assert.Equal(t, metrics.TotalTrades, run.TotalTrades)
	assert.False(t, run.CreatedAt.IsZero())

	gotTrades, err := s.LoadTrades(ctx, runID)
	require.NoError(t, err)
	require.Len(t, gotTrades, 2)
	assert.Equal(t, "AAPL", gotTrades[0].Symbol)
	assert.Equal(t, order.Buy, gotTrades[0].Side)
	assert.True(t, gotTrades[0].Quantity.Equal(trades[0].Quantity))
	assert.True(t, gotTrades[1].Commission.Equal(trades[1].Commission))
	assert.Equal(t, "o-2", gotTrades[1].OrderID)

	gotCurve, err := s.LoadEquityCurve(ctx, runID)
	require.NoError(t, err)
	require.Len(t, gotCurve, 2)
	assert.True(t, gotCurve[1].Equity.Equal(curve[1].Equity))
}

func TestListRunsOrder(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)
	ctx := context.Background()

	first, err := s.SaveRun(ctx, "first", "smacross", statistics.Results{}, nil, nil)
	require.NoError(t, err)
	second, err := s.SaveRun(ctx, "second", "rsi", statistics.Results{}, nil, nil)
	require.NoError(t, err)

	runs, err := s.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second, runs[0].ID)
	assert.Equal(t, first, runs[1].ID)
}

func TestGetRunNotFound(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)
	_, err := s.GetRun(context.Background(), 4242)
	assert.ErrorIs(t, err, ErrRunNotFound)
}
