package config

import (
	"fmt"
	"time"
)

const (
	defaultBalancePollingInterval = time.Minute
	minBalancePollingInterval     = 100 * time.Millisecond
)

// PollerConfig controls how often protocol balances are exported.
// An unset interval falls back to the default.
type PollerConfig struct {
	BalancePollingInterval time.Duration `mapstructure:"balance-polling-interval"`
}

func (cfg *PollerConfig) Validate() error {
	switch {
	case cfg.BalancePollingInterval == 0:
		cfg.BalancePollingInterval = defaultBalancePollingInterval
	case cfg.BalancePollingInterval < minBalancePollingInterval:
		return fmt.Errorf("balance-polling-interval must be at least %s, got %s",
			minBalancePollingInterval, cfg.BalancePollingInterval)
	}

	return nil
}
