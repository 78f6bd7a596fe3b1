package statistics

// PeriodsPerYear annualises per-bar returns assuming daily bars over a
// trading year
const PeriodsPerYear float64 = 252

// Results holds the performance metrics of one completed run. Win rate
// is period level, the fraction of bar-to-bar equity returns that were
// positive, not the fraction of winning trades
type Results struct {
	TotalReturn float64 `json:"total_return"`
	SharpeRatio float64 `json:"sharpe_ratio"`
	MaxDrawdown float64 `json:"max_drawdown"`
	WinRate     float64 `json:"win_rate"`
	TotalTrades int64   `json:"total_trades"`
}
