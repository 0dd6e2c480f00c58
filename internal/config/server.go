package config

import (
	"errors"
	"time"
)

const (
	defaultRateLimitPerSecond = 20
	defaultRateLimitBurst     = 40
)

type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read-timeout"`
	WriteTimeout time.Duration `mapstructure:"write-timeout"`
	// per signer
	RateLimitPerSecond int `mapstructure:"rate-limit-per-second"`
	RateLimitBurst     int `mapstructure:"rate-limit-burst"`
}

func (cfg *ServerConfig) Validate() error {
	if cfg.Host == "" {
		return errors.New("server host is required")
	}

	if cfg.Port < 0 || cfg.Port > 65535 {
		return errors.New("server port must be between 0 and 65535")
	}

	if cfg.ReadTimeout <= 0 {
		return errors.New("read-timeout must be positive")
	}

	if cfg.WriteTimeout <= 0 {
		return errors.New("write-timeout must be positive")
	}

	if cfg.RateLimitPerSecond <= 0 {
		cfg.RateLimitPerSecond = defaultRateLimitPerSecond
	}
	if cfg.RateLimitBurst <= 0 {
		cfg.RateLimitBurst = defaultRateLimitBurst
	}

	return nil
}
