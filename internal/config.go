package internal

import (
	"errors"
	"fmt"
	"strings"
)

type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Ledger   LedgerConfig   `mapstructure:"ledger"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type DatabaseConfig struct {
	Path         string `mapstructure:"path"`
	LogMode      bool   `mapstructure:"log_mode"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

type LedgerConfig struct {
	// DefaultBaseCurrency seeds the base-currency setting on first run.
	DefaultBaseCurrency string `mapstructure:"default_base_currency"`
	// HoursPerDay is the working-day length used by life-cost
	// formatting when the setting is absent.
	HoursPerDay int `mapstructure:"hours_per_day"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func (c *Config) Validate() error {
	var errs []string

	if err := c.Database.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("database config: %v", err))
	}
	if err := c.Ledger.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("ledger config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func (c *DatabaseConfig) Validate() error {
	if c.Path == "" {
		return errors.New("path is required")
	}
	if c.MaxOpenConns < 1 {
		return errors.New("max_open_conns must be at least 1")
	}
	return nil
}

func (c *LedgerConfig) Validate() error {
	code := strings.ToUpper(strings.TrimSpace(c.DefaultBaseCurrency))
	if len(code) != 3 {
		return errors.New("default_base_currency must be a 3-letter code")
	}
	if c.HoursPerDay < 1 || c.HoursPerDay > 24 {
		return errors.New("hours_per_day must be between 1 and 24")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path:         "data/celengan.db",
			MaxOpenConns: 1,
			MaxIdleConns: 1,
		},
		Ledger: LedgerConfig{
			DefaultBaseCurrency: "USD",
			HoursPerDay:         8,
		},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}
