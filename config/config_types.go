package config

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Defaults mirror the parameter set the pipeline has always shipped with
const (
	DefaultInitialCapital = 1000000
	DefaultCommissionRate = 0.001
	DefaultSlippage       = 0.0001
)

var (
	errInitialCapitalInvalid = errors.New("initial capital must be positive")
	errCommissionNegative    = errors.New("commission rate cannot be negative")
	errSlippageNegative      = errors.New("slippage cannot be negative")
	errStrategyUnset         = errors.New("strategy name is unset")
)

// Config is the on-disk run configuration
type Config struct {
	RunName      string         `mapstructure:"run_name"`
	DataFile     string         `mapstructure:"data_file"`
	ReportDir    string         `mapstructure:"report_dir"`
	DatabasePath string         `mapstructure:"database_path"`
	Backtest     BacktestConfig `mapstructure:"backtest"`
	Strategy     StrategyConfig `mapstructure:"strategy"`
}

// BacktestConfig holds the engine parameters
type BacktestConfig struct {
	InitialCapital float64 `mapstructure:"initial_capital"`
	CommissionRate float64 `mapstructure:"commission_rate"`
	Slippage       float64 `mapstructure:"slippage"`
}

// StrategyConfig selects and parameterises the signal generator
type StrategyConfig struct {
	Name      string             `mapstructure:"name"`
	OrderSize float64            `mapstructure:"order_size"`
	Params    map[string]float64 `mapstructure:"params"`
}

// Settings are the validated, decimal engine parameters derived from a
// Config or constructed directly by a caller
type Settings struct {
	InitialCapital decimal.Decimal
	CommissionRate decimal.Decimal
	Slippage       decimal.Decimal
}
