package strategies

import (
	"errors"

	"github.com/rdj5415/a2e-quant-pipeline/order"
)

var (
	// ErrStrategyNotFound is returned when an unknown strategy name is requested
	ErrStrategyNotFound = errors.New("strategy not found")

	errPeriodInvalid     = errors.New("indicator period must be positive")
	errFastNotBelowSlow  = errors.New("fast period must be below slow period")
	errThresholdsInvalid = errors.New("rsi low threshold must be below high threshold")
)

// Handler turns a window of closing prices into a trade intent. The
// window always ends at the bar under consideration and grows by one
// close per bar
type Handler interface {
	Name() string
	OnBar(closes []float64) (order.Side, bool)
}
