package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testOperator  = "8FXRKgS2nDJ1axRRTvdgkQudUsBZZ5gKnp4zF1kK6vMw"
	testProgramID = "EcDwM6SLq81xpKS1ykf7UGjjyE84KJvjmAzWmLwy9tJx"
)

func validConfig() *Config {
	return &Config{
		Db: DbConfig{
			Username: "test",
			Password: "test",
			Address:  "mongodb://localhost:27017",
			DbName:   "test",
		},
		Operator: OperatorConfig{
			Address:   testOperator,
			ProgramID: testProgramID,
		},
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
		},
		Poller: PollerConfig{
			BalancePollingInterval: 30 * time.Second,
		},
		Metrics: MetricsConfig{
			Host: "0.0.0.0",
			Port: 2112,
		},
	}
}

func TestConfig_OptionalQueue(t *testing.T) {
	cfg := validConfig()
	cfg.Queue = &QueueConfig{
		QueueUser:     "test",
		QueuePassword: "test",
		Url:           "localhost:5672",
		QueueType:     "quorum",
	}

	err := cfg.Validate()
	require.NoError(t, err)
	assert.Equal(t, defaultQueueName, cfg.Queue.QueueName)
	assert.Equal(t, uint(defaultQueueMaxRetryTimes), cfg.Queue.MaxRetryTimes)

	cfg.Queue = nil
	err = cfg.Validate()
	require.NoError(t, err)
	assert.Nil(t, cfg.Queue)
}

func TestConfig_Operator(t *testing.T) {
	t.Run("parsed once on validate", func(t *testing.T) {
		cfg := validConfig()
		require.NoError(t, cfg.Validate())
		assert.Equal(t, testOperator, cfg.Operator.OperatorAddress().String())
		assert.Equal(t, testProgramID, cfg.Operator.ProgramAddress().String())
	})
	t.Run("invalid operator", func(t *testing.T) {
		cfg := validConfig()
		cfg.Operator.Address = "not-base58-0OIl"
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid operator address")
	})
	t.Run("missing program id", func(t *testing.T) {
		cfg := validConfig()
		cfg.Operator.ProgramID = ""
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid program id")
	})
}

func TestDbConfig_Validate(t *testing.T) {
	t.Run("defaults timeout", func(t *testing.T) {
		cfg := validConfig().Db
		require.NoError(t, cfg.Validate())
		assert.Equal(t, defaultDbTimeout, cfg.Timeout)
	})
	t.Run("credentials are optional but paired", func(t *testing.T) {
		cfg := validConfig().Db
		cfg.Username, cfg.Password = "", ""
		require.NoError(t, cfg.Validate())

		cfg.Username = "user"
		require.Error(t, cfg.Validate())
	})
	t.Run("scheme", func(t *testing.T) {
		cfg := validConfig().Db
		cfg.Address = "postgres://localhost:5432"
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported db address scheme")
	})
}

func TestNew(t *testing.T) {
	const content = `
db:
  username: user
  password: pass
  db-name: shekel
  address: mongodb://localhost:27017/?replicaSet=rs0
operator:
  address: 8FXRKgS2nDJ1axRRTvdgkQudUsBZZ5gKnp4zF1kK6vMw
  program-id: EcDwM6SLq81xpKS1ykf7UGjjyE84KJvjmAzWmLwy9tJx
server:
  host: 127.0.0.1
  port: 8090
  read-timeout: 5s
  write-timeout: 10s
poller:
  balance-polling-interval: 15s
metrics:
  host: 0.0.0.0
  port: 2112
`
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := New(path)
	require.NoError(t, err)

	assert.Equal(t, "shekel", cfg.Db.DbName)
	assert.Equal(t, 8090, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, defaultRateLimitPerSecond, cfg.Server.RateLimitPerSecond)
	assert.Equal(t, 15*time.Second, cfg.Poller.BalancePollingInterval)
	assert.Equal(t, testOperator, cfg.Operator.OperatorAddress().String())
	assert.Nil(t, cfg.Queue)

	_, err = New(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
}
