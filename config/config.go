package config

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/rdj5415/a2e-quant-pipeline/common"
)

// ReadConfigFromFile loads, defaults and validates a run configuration.
// Values may be overridden through A2E_-prefixed environment variables
func ReadConfigFromFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("A2E")
	// nested keys map to A2E_BACKTEST_INITIAL_CAPITAL and friends
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrConfiguration, err)
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrConfiguration, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("run_name", "backtest")
	v.SetDefault("report_dir", "reports")
	v.SetDefault("backtest.initial_capital", DefaultInitialCapital)
	v.SetDefault("backtest.commission_rate", DefaultCommissionRate)
	v.SetDefault("backtest.slippage", DefaultSlippage)
	v.SetDefault("strategy.order_size", 100)
}

// Validate checks the whole configuration before a run starts. All
// failures are collected so a broken file is reported in one pass
func (c *Config) Validate() error {
	var errs common.Errors
	settings := c.EngineSettings()
	if err := settings.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Strategy.Name == "" {
		errs = append(errs, fmt.Errorf("%w: %w", common.ErrConfiguration, errStrategyUnset))
	}
	if c.Strategy.OrderSize <= 0 {
		errs = append(errs, fmt.Errorf("%w: strategy order_size must be positive, received %v", common.ErrConfiguration, c.Strategy.OrderSize))
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// EngineSettings converts the float configuration into the decimal
// settings the engine consumes
func (c *Config) EngineSettings() Settings {
	return Settings{
		InitialCapital: decimal.NewFromFloat(c.Backtest.InitialCapital),
		CommissionRate: decimal.NewFromFloat(c.Backtest.CommissionRate),
		Slippage:       decimal.NewFromFloat(c.Backtest.Slippage),
	}
}

// Validate fails fast with configuration errors before any bar is
// processed
func (s *Settings) Validate() error {
	if !s.InitialCapital.IsPositive() {
		return fmt.Errorf("%w: %w, received %v", common.ErrConfiguration, errInitialCapitalInvalid, s.InitialCapital)
	}
	if s.CommissionRate.IsNegative() {
		return fmt.Errorf("%w: %w, received %v", common.ErrConfiguration, errCommissionNegative, s.CommissionRate)
	}
	if s.Slippage.IsNegative() {
		return fmt.Errorf("%w: %w, received %v", common.ErrConfiguration, errSlippageNegative, s.Slippage)
	}
	return nil
}
