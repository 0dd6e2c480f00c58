package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPollerConfig_Validate(t *testing.T) {
	t.Run("interval kept", func(t *testing.T) {
		cfg := &PollerConfig{BalancePollingInterval: 3 * time.Minute}
		require.NoError(t, cfg.Validate())
		assert.Equal(t, 3*time.Minute, cfg.BalancePollingInterval)
	})

	t.Run("unset interval uses default", func(t *testing.T) {
		cfg := &PollerConfig{}
		require.NoError(t, cfg.Validate())
		assert.Equal(t, defaultBalancePollingInterval, cfg.BalancePollingInterval)
	})

	t.Run("negative interval", func(t *testing.T) {
		cfg := &PollerConfig{BalancePollingInterval: -time.Minute}
		assert.Error(t, cfg.Validate())
	})

	t.Run("too frequent", func(t *testing.T) {
		cfg := &PollerConfig{BalancePollingInterval: time.Millisecond}
		assert.ErrorContains(t, cfg.Validate(), "at least 100ms")
	})
}
