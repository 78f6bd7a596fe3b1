package strategies

import (
	"fmt"
	"strings"
)

// Params carries optional per-strategy tuning values keyed by name
type Params map[string]float64

func (p Params) value(key string, fallback float64) float64 {
	if v, ok := p[key]; ok {
		return v
	}
	return fallback
}

// LoadStrategyByName returns the named strategy configured with params
func LoadStrategyByName(name string, params Params) (Handler, error) {
	switch strings.ToLower(name) {
	case SMACrossName:
		return NewSMACross(
			int(params.value("fast-period", 10)),
			int(params.value("slow-period", 30)),
		)
	case RSIName:
		return NewRSI(
			int(params.value("rsi-period", 14)),
			params.value("rsi-low", 30),
			params.value("rsi-high", 70),
		)
	default:
		return nil, fmt.Errorf("%w: %q", ErrStrategyNotFound, name)
	}
}
