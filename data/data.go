package data

import (
	"fmt"

	"github.com/rdj5415/a2e-quant-pipeline/common"
)

// Validate checks the bar for missing or contradictory fields. Failures
// wrap common.ErrData and are recoverable, the caller skips the bar and
// continues the stream
func (b *Bar) Validate() error {
	if b.Symbol == "" {
		return fmt.Errorf("%w: %w", common.ErrData, errSymbolEmpty)
	}
	if b.Timestamp.IsZero() {
		return fmt.Errorf("%w: %w %v", common.ErrData, errTimestampUnset, b.Symbol)
	}
	if !b.Open.IsPositive() ||
		!b.High.IsPositive() ||
		!b.Low.IsPositive() ||
		!b.Close.IsPositive() {
		return fmt.Errorf("%w: %w %v %s", common.ErrData, errPriceNotSet, b.Timestamp, b.Symbol)
	}
	if b.High.LessThan(b.Low) {
		return fmt.Errorf("%w: %w %v %s", common.ErrData, errHighLowInverted, b.Timestamp, b.Symbol)
	}
	if b.Volume.IsNegative() {
		return fmt.Errorf("%w: %w %v %s", common.ErrData, errVolumeNegative, b.Timestamp, b.Symbol)
	}
	return nil
}

// NewBarStream returns a stream over bars in slice order
func NewBarStream(bars []Bar) *BarStream {
	return &BarStream{bars: bars}
}

// Next returns the next bar in the stream if there is one
func (s *BarStream) Next() (Bar, bool) {
	if s.offset >= len(s.bars) {
		return Bar{}, false
	}
	b := s.bars[s.offset]
	s.offset++
	return b, true
}

// Offset returns the number of bars already streamed
func (s *BarStream) Offset() int {
	return s.offset
}

// Reset winds the stream back to the first bar
func (s *BarStream) Reset() {
	s.offset = 0
}
