package data

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	errSymbolEmpty     = errors.New("bar symbol is empty")
	errTimestampUnset  = errors.New("bar timestamp is unset")
	errPriceNotSet     = errors.New("bar contains a non-positive price")
	errHighLowInverted = errors.New("bar high is below its low")
	errVolumeNegative  = errors.New("bar volume is negative")
)

// Bar is one OHLCV observation for one symbol at one timestamp
type Bar struct {
	Timestamp time.Time       `json:"timestamp"`
	Symbol    string          `json:"symbol"`
	Open      decimal.Decimal `json:"open"`
	High      decimal.Decimal `json:"high"`
	Low       decimal.Decimal `json:"low"`
	Close     decimal.Decimal `json:"close"`
	Volume    decimal.Decimal `json:"volume"`
}

// Stream is an ordered sequence of bars consumed one at a time.
// Implementations must return bars with strictly increasing timestamps
type Stream interface {
	Next() (Bar, bool)
	Offset() int
	Reset()
}

// BarStream streams an in-memory slice of bars
type BarStream struct {
	bars   []Bar
	offset int
}
