package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	// sqlite3 driver registration
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/rdj5415/a2e-quant-pipeline/equity"
	"github.com/rdj5415/a2e-quant-pipeline/fill"
	"github.com/rdj5415/a2e-quant-pipeline/order"
	"github.com/rdj5415/a2e-quant-pipeline/statistics"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	strategy TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL,
	total_return REAL NOT NULL,
	sharpe_ratio REAL NOT NULL,
	max_drawdown REAL NOT NULL,
	win_rate REAL NOT NULL,
	total_trades INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS trades (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id INTEGER NOT NULL REFERENCES runs(id),
	seq INTEGER NOT NULL,
	timestamp TIMESTAMP NOT NULL,
	symbol TEXT NOT NULL,
	side TEXT NOT NULL,
	quantity TEXT NOT NULL,
	price TEXT NOT NULL,
	commission TEXT NOT NULL,
	order_id TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS equity_samples (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id INTEGER NOT NULL REFERENCES runs(id),
	seq INTEGER NOT NULL,
	timestamp TIMESTAMP NOT NULL,
	equity TEXT NOT NULL
);`

// Open opens or creates the run database at path. ":memory:" is
// accepted for tests
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errPathEmpty
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err = db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun writes one completed run with its trade log and equity curve
// in a single transaction and returns the new run ID. Decimal columns
// are stored as text to keep values exact
func (s *Store) SaveRun(ctx context.Context, name, strategy string, metrics statistics.Results, trades []fill.Trade, curve []equity.Sample) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (name, strategy, created_at, total_return, sharpe_ratio, max_drawdown, win_rate, total_trades)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		name, strategy, time.Now().UTC(),
		metrics.TotalReturn, metrics.SharpeRatio, metrics.MaxDrawdown, metrics.WinRate, metrics.TotalTrades)
	if err != nil {
		return 0, err
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for i := range trades {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO trades (run_id, seq, timestamp, symbol, side, quantity, price, commission, order_id)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, i, trades[i].Timestamp.UTC(), trades[i].Symbol, string(trades[i].Side),
			trades[i].Quantity.String(), trades[i].Price.String(), trades[i].Commission.String(), trades[i].OrderID)
		if err != nil {
			return 0, err
		}
	}
	for i := range curve {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO equity_samples (run_id, seq, timestamp, equity) VALUES (?, ?, ?, ?)`,
			runID, i, curve[i].Timestamp.UTC(), curve[i].Equity.String())
		if err != nil {
			return 0, err
		}
	}
	return runID, tx.Commit()
}

// ListRuns returns stored runs, most recent first
func (s *Store) ListRuns(ctx context.Context) ([]RunSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, strategy, created_at, total_return, sharpe_ratio, max_drawdown, win_rate, total_trades
		 FROM runs ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		if err = rows.Scan(&r.ID, &r.Name, &r.Strategy, &r.CreatedAt,
			&r.TotalReturn, &r.SharpeRatio, &r.MaxDrawdown, &r.WinRate, &r.TotalTrades); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRun returns the summary row for one run
func (s *Store) GetRun(ctx context.Context, runID int64) (RunSummary, error) {
	var r RunSummary
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, strategy, created_at, total_return, sharpe_ratio, max_drawdown, win_rate, total_trades
		 FROM runs WHERE id = ?`, runID).
		Scan(&r.ID, &r.Name, &r.Strategy, &r.CreatedAt,
			&r.TotalReturn, &r.SharpeRatio, &r.MaxDrawdown, &r.WinRate, &r.TotalTrades)
	if errors.Is(err, sql.ErrNoRows) {
		return RunSummary{}, fmt.Errorf("%w: id %d", ErrRunNotFound, runID)
	}
	return r, err
}

// LoadTrades returns the stored trade log of a run in fill order
func (s *Store) LoadTrades(ctx context.Context, runID int64) ([]fill.Trade, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT timestamp, symbol, side, quantity, price, commission, order_id
		 FROM trades WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trades []fill.Trade
	for rows.Next() {
		var (
			t                      fill.Trade
			side                   string
			qty, price, commission string
		)
		if err = rows.Scan(&t.Timestamp, &t.Symbol, &side, &qty, &price, &commission, &t.OrderID); err != nil {
			return nil, err
		}
		t.Side = order.Side(side)
		if t.Quantity, err = decimal.NewFromString(qty); err != nil {
			return nil, err
		}
		if t.Price, err = decimal.NewFromString(price); err != nil {
			return nil, err
		}
		if t.Commission, err = decimal.NewFromString(commission); err != nil {
			return nil, err
		}
		trades = append(trades, t)
	}
	return trades, rows.Err()
}

// LoadEquityCurve returns the stored equity curve of a run in bar order
func (s *Store) LoadEquityCurve(ctx context.Context, runID int64) ([]equity.Sample, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT timestamp, equity FROM equity_samples WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var curve []equity.Sample
	for rows.Next() {
		var (
			sample equity.Sample
			value  string
		)
		if err = rows.Scan(&sample.Timestamp, &value); err != nil {
			return nil, err
		}
		if sample.Equity, err = decimal.NewFromString(value); err != nil {
			return nil, err
		}
		curve = append(curve, sample)
	}
	return curve, rows.Err()
}
