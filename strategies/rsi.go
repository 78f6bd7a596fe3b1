package strategies

import (
	"fmt"

	"github.com/thrasher-corp/gct-ta/indicators"

	"github.com/rdj5415/a2e-quant-pipeline/order"
)

// RSIName is the registered name of the relative strength index strategy
const RSIName = "rsi"

// RSI signals a buy when the index drops to or below the low threshold
// and a sell when it climbs to or above the high threshold
type RSI struct {
	period int
	low    float64
	high   float64
}

// NewRSI returns an RSI strategy with the given period and thresholds
func NewRSI(period int, low, high float64) (*RSI, error) {
	if period <= 0 {
		return nil, fmt.Errorf("%w: %v", errPeriodInvalid, period)
	}
	if low >= high {
		return nil, fmt.Errorf("%w: low %v high %v", errThresholdsInvalid, low, high)
	}
	return &RSI{period: period, low: low, high: high}, nil
}

// Name returns the name of the strategy
func (s *RSI) Name() string {
	return RSIName
}

// OnBar emits a direction once enough closes exist for the RSI window
func (s *RSI) OnBar(closes []float64) (order.Side, bool) {
	if len(closes) <= s.period {
		return "", false
	}
	rsi := indicators.RSI(closes, s.period)
	if len(rsi) == 0 {
		return "", false
	}
	latest := rsi[len(rsi)-1]
	switch {
	case latest <= s.low:
		return order.Buy, true
	case latest >= s.high:
		return order.Sell, true
	default:
		return "", false
	}
}
