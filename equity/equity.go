package equity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sample is one mark of total equity, exactly one per processed bar
type Sample struct {
	Timestamp time.Time       `json:"timestamp"`
	Equity    decimal.Decimal `json:"equity"`
}

// Tracker records the equity curve of a run. Equity is valued at cost
// basis, capital plus the sum of quantity multiplied by average cost of
// every open position
type Tracker struct {
	curve []Sample
}

// NewTracker returns an empty equity tracker
func NewTracker() *Tracker {
	return &Tracker{}
}

// Snapshot appends one equity sample. Timestamps arrive strictly
// increasing by the bar stream contract, the tracker does not reorder
func (t *Tracker) Snapshot(timestamp time.Time, capital, holdingsValue decimal.Decimal) {
	t.curve = append(t.curve, Sample{
		Timestamp: timestamp,
		Equity:    capital.Add(holdingsValue),
	})
}

// Curve returns a copy of the recorded equity curve in bar order
func (t *Tracker) Curve() []Sample {
	curve := make([]Sample, len(t.curve))
	copy(curve, t.curve)
	return curve
}

// Latest returns the most recent sample if one exists
func (t *Tracker) Latest() (Sample, bool) {
	if len(t.curve) == 0 {
		return Sample{}, false
	}
	return t.curve[len(t.curve)-1], true
}

// Len returns the number of recorded samples
func (t *Tracker) Len() int {
	return len(t.curve)
}

// Reset returns the tracker to its initial state
func (t *Tracker) Reset() {
	t.curve = nil
}
