package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Db       DbConfig       `mapstructure:"db"`
	Operator OperatorConfig `mapstructure:"operator"`
	Server   ServerConfig   `mapstructure:"server"`
	Poller   PollerConfig   `mapstructure:"poller"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	// Queue is optional, settlement events are not published without it
	Queue *QueueConfig `mapstructure:"queue"`
}

func (cfg *Config) Validate() error {
	if err := cfg.Db.Validate(); err != nil {
		return fmt.Errorf("db config: %w", err)
	}

	if err := cfg.Operator.Validate(); err != nil {
		return fmt.Errorf("operator config: %w", err)
	}

	if err := cfg.Server.Validate(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	if err := cfg.Poller.Validate(); err != nil {
		return fmt.Errorf("poller config: %w", err)
	}

	if err := cfg.Metrics.Validate(); err != nil {
		return fmt.Errorf("metrics config: %w", err)
	}

	if cfg.Queue != nil {
		if err := cfg.Queue.Validate(); err != nil {
			return fmt.Errorf("queue config: %w", err)
		}
	}

	return nil
}

// New returns a fully parsed Config object from a given file path.
// Values in the file can be overridden with environment variables, e.g.
// OPERATOR__ADDRESS overrides operator.address.
func New(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(cfgFile)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "__", "-", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
