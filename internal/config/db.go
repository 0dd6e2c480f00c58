package config

import (
	"fmt"
	"net/url"
	"time"

	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultDbTimeout = 10 * time.Second

type DbConfig struct {
	Username string        `mapstructure:"username"`
	Password string        `mapstructure:"password"`
	DbName   string        `mapstructure:"db-name"`
	Address  string        `mapstructure:"address"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

func (cfg *DbConfig) Validate() error {
	if cfg.DbName == "" {
		return fmt.Errorf("missing db name")
	}

	if cfg.Address == "" {
		return fmt.Errorf("missing db address")
	}

	u, err := url.Parse(cfg.Address)
	if err != nil {
		return fmt.Errorf("invalid db address: %w", err)
	}

	if u.Scheme != "mongodb" && u.Scheme != "mongodb+srv" {
		return fmt.Errorf("unsupported db address scheme: %s", u.Scheme)
	}

	// username and password come as a pair
	if (cfg.Username == "") != (cfg.Password == "") {
		return fmt.Errorf("db username and password must be set together")
	}

	if cfg.Timeout < 0 {
		return fmt.Errorf("db timeout can't be negative")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultDbTimeout
	}

	return nil
}

// ClientOptions builds the mongo client options for this config.
func (cfg *DbConfig) ClientOptions() *options.ClientOptions {
	opts := options.Client().ApplyURI(cfg.Address)
	if cfg.Username != "" {
		opts.SetAuth(options.Credential{
			Username: cfg.Username,
			Password: cfg.Password,
		})
	}
	if cfg.Timeout > 0 {
		opts.SetTimeout(cfg.Timeout)
	}
	return opts
}
