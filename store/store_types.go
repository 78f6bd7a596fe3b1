package store

import (
	"database/sql"
	"errors"
	"time"
)

var (
	// ErrRunNotFound is returned when the requested run does not exist
	ErrRunNotFound = errors.New("run not found")

	errPathEmpty = errors.New("database path is empty")
)

// Store persists completed runs in a SQLite database
type Store struct {
	db *sql.DB
}

// RunSummary is one row of the runs listing
type RunSummary struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Strategy    string    `json:"strategy"`
	CreatedAt   time.Time `json:"created_at"`
	TotalReturn float64   `json:"total_return"`
	SharpeRatio float64   `json:"sharpe_ratio"`
	MaxDrawdown float64   `json:"max_drawdown"`
	WinRate     float64   `json:"win_rate"`
	TotalTrades int64     `json:"total_trades"`
}
