package statistics

import (
	"github.com/shopspring/decimal"

	a2emath "github.com/rdj5415/a2e-quant-pipeline/common/math"
	"github.com/rdj5415/a2e-quant-pipeline/equity"
	"github.com/rdj5415/a2e-quant-pipeline/fill"
)

// CalculateResults derives performance metrics from a completed equity
// curve and trade log. Degenerate inputs never fail: an empty curve
// yields zero-valued metrics and a zero return deviation yields a zero
// sharpe ratio
func CalculateResults(curve []equity.Sample, trades []fill.Trade, initialCapital decimal.Decimal) Results {
	r := Results{
		TotalTrades: int64(len(trades)),
	}
	if len(curve) == 0 {
		return r
	}

	equities := make([]float64, len(curve))
	for i := range curve {
		equities[i] = curve[i].Equity.InexactFloat64()
	}

	if initialCapital.IsPositive() {
		final := curve[len(curve)-1].Equity
		r.TotalReturn = final.Div(initialCapital).InexactFloat64() - 1
	}

	periodReturns := PeriodReturns(curve)
	r.SharpeRatio = a2emath.CalculateSharpeRatio(periodReturns, PeriodsPerYear)
	r.MaxDrawdown = a2emath.CalculateMaxDrawdown(equities)
	r.WinRate = winRate(periodReturns)
	return r
}

// PeriodReturns converts the equity curve to bar-over-bar fractional
// returns. A curve of fewer than two samples has no returns
func PeriodReturns(curve []equity.Sample) []float64 {
	if len(curve) < 2 {
		return nil
	}
	returns := make([]float64, 0, len(curve)-1)
	for i := 1; i < len(curve); i++ {
		returns = append(returns, a2emath.PercentageChange(
			curve[i].Equity.InexactFloat64(),
			curve[i-1].Equity.InexactFloat64(),
		))
	}
	return returns
}

func winRate(periodReturns []float64) float64 {
	if len(periodReturns) == 0 {
		return 0
	}
	var wins int
	for i := range periodReturns {
		if periodReturns[i] > 0 {
			wins++
		}
	}
	return float64(wins) / float64(len(periodReturns))
}
