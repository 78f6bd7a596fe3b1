package strategies

import (
	"fmt"

	"github.com/thrasher-corp/gct-ta/indicators"

	"github.com/rdj5415/a2e-quant-pipeline/order"
)

// SMACrossName is the registered name of the moving average crossover strategy
const SMACrossName = "smacross"

// SMACross signals a buy while the fast simple moving average sits
// above the slow one and a sell while it sits below
type SMACross struct {
	fastPeriod int
	slowPeriod int
}

// NewSMACross returns a crossover strategy over the two periods
func NewSMACross(fastPeriod, slowPeriod int) (*SMACross, error) {
	if fastPeriod <= 0 || slowPeriod <= 0 {
		return nil, fmt.Errorf("%w: fast %v slow %v", errPeriodInvalid, fastPeriod, slowPeriod)
	}
	if fastPeriod >= slowPeriod {
		return nil, fmt.Errorf("%w: fast %v slow %v", errFastNotBelowSlow, fastPeriod, slowPeriod)
	}
	return &SMACross{fastPeriod: fastPeriod, slowPeriod: slowPeriod}, nil
}

// Name returns the name of the strategy
func (s *SMACross) Name() string {
	return SMACrossName
}

// OnBar emits a direction once enough closes exist to fill the slow window
func (s *SMACross) OnBar(closes []float64) (order.Side, bool) {
	if len(closes) <= s.slowPeriod {
		return "", false
	}
	fast := indicators.MA(closes, s.fastPeriod, indicators.Sma)
	slow := indicators.MA(closes, s.slowPeriod, indicators.Sma)
	if len(fast) == 0 || len(slow) == 0 {
		return "", false
	}
	latestFast := fast[len(fast)-1]
	latestSlow := slow[len(slow)-1]
	switch {
	case latestFast > latestSlow:
		return order.Buy, true
	case latestFast < latestSlow:
		return order.Sell, true
	default:
		return "", false
	}
}
