package data

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var errBadRecordLength = errors.New("csv record does not hold timestamp,symbol,open,high,low,close,volume")

// supported timestamp layouts, first match wins
var csvTimeFormats = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// LoadCSV reads bars from a CSV file laid out as
// timestamp,symbol,open,high,low,close,volume with an optional header row.
// Rows keep file order; ordering and per-bar validity are checked by the
// consumer, not here
func LoadCSV(path string) ([]Bar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV reads bars from CSV data
func ReadCSV(r io.Reader) ([]Bar, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	var bars []Bar
	for line := 1; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if line == 1 && looksLikeHeader(record) {
			continue
		}
		b, err := parseRecord(record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		bars = append(bars, b)
	}
	return bars, nil
}

func looksLikeHeader(record []string) bool {
	return len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), "timestamp")
}

func parseRecord(record []string) (Bar, error) {
	if len(record) != 7 {
		return Bar{}, errBadRecordLength
	}
	ts, err := parseTimestamp(record[0])
	if err != nil {
		return Bar{}, err
	}
	b := Bar{
		Timestamp: ts,
		Symbol:    strings.TrimSpace(record[1]),
	}
	fields := []*decimal.Decimal{&b.Open, &b.High, &b.Low, &b.Close, &b.Volume}
	for i := range fields {
		*fields[i], err = decimal.NewFromString(strings.TrimSpace(record[i+2]))
		if err != nil {
			return Bar{}, err
		}
	}
	return b, nil
}

func parseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	var err error
	for i := range csvTimeFormats {
		var ts time.Time
		ts, err = time.Parse(csvTimeFormats[i], raw)
		if err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, err
}
