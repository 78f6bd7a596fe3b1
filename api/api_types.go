package api

import (
	"time"

	"go.uber.org/zap"

	"github.com/rdj5415/a2e-quant-pipeline/engine"
)

// Server exposes backtest runs over HTTP
type Server struct {
	addr string
	log  *zap.Logger
}

// BacktestRequest is the JSON payload of POST /api/v1/backtest. Bars
// and orders are supplied inline, market data acquisition stays outside
// this service
type BacktestRequest struct {
	RunName  string          `json:"run_name"`
	Settings SettingsRequest `json:"settings"`
	Orders   []OrderRequest  `json:"orders"`
	Bars     []BarRequest    `json:"bars" binding:"required"`
}

// SettingsRequest configures the engine for one request
type SettingsRequest struct {
	InitialCapital float64 `json:"initial_capital"`
	CommissionRate float64 `json:"commission_rate"`
	Slippage       float64 `json:"slippage"`
}

// OrderRequest is one order submission
type OrderRequest struct {
	Symbol     string  `json:"symbol" binding:"required"`
	Kind       string  `json:"kind" binding:"required"`
	Side       string  `json:"side" binding:"required"`
	Quantity   float64 `json:"quantity" binding:"required"`
	LimitPrice float64 `json:"limit_price"`
}

// BarRequest is one OHLCV observation
type BarRequest struct {
	Timestamp time.Time `json:"timestamp" binding:"required"`
	Symbol    string    `json:"symbol" binding:"required"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    float64   `json:"volume"`
}

// BacktestResponse returns the run outputs
type BacktestResponse struct {
	RunName string         `json:"run_name"`
	Summary engine.Summary `json:"summary"`
}

// ErrorResponse carries a machine readable error code and message
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
