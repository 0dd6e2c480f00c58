package config

import (
	"errors"
	"time"
)

const (
	defaultQueueName          = "settlement_events"
	defaultQueueMaxRetryTimes = 3
	defaultQueueRetryInterval = 500 * time.Millisecond
)

type QueueConfig struct {
	QueueUser     string        `mapstructure:"queue-user"`
	QueuePassword string        `mapstructure:"queue-password"`
	Url           string        `mapstructure:"url"`
	QueueName     string        `mapstructure:"queue-name"`
	QueueType     string        `mapstructure:"queue-type"`
	MaxRetryTimes uint          `mapstructure:"max-retry-times"`
	RetryInterval time.Duration `mapstructure:"retry-interval"`
}

func (cfg *QueueConfig) Validate() error {
	if cfg.Url == "" {
		return errors.New("queue url is required")
	}

	if cfg.QueueUser == "" || cfg.QueuePassword == "" {
		return errors.New("queue user and password are required")
	}

	if cfg.QueueType != "" && cfg.QueueType != "classic" && cfg.QueueType != "quorum" {
		return errors.New("queue type must be classic or quorum")
	}

	if cfg.QueueName == "" {
		cfg.QueueName = defaultQueueName
	}
	if cfg.MaxRetryTimes == 0 {
		cfg.MaxRetryTimes = defaultQueueMaxRetryTimes
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = defaultQueueRetryInterval
	}

	return nil
}
