package config

import "time"

// Config represents the complete client configuration structure.
type Config struct {
	Iconik     IconikConfig     `mapstructure:"iconik"`
	Retry      RetryConfig      `mapstructure:"retry"`
	Pagination PaginationConfig `mapstructure:"pagination"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// IconikConfig holds iconik API connection details.
type IconikConfig struct {
	AppID     string        `mapstructure:"app_id"`
	AuthToken string        `mapstructure:"auth_token"`
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// RetryConfig controls the transport retry policy.
type RetryConfig struct {
	MaxRetries int           `mapstructure:"max_retries"`
	Delay      time.Duration `mapstructure:"delay"`
	Backoff    float64       `mapstructure:"backoff"`
}

// PaginationConfig controls multi-page traversal.
type PaginationConfig struct {
	PerPage      int           `mapstructure:"per_page"`
	MaxRetries   int           `mapstructure:"max_retries"`
	RetryDelay   time.Duration `mapstructure:"retry_delay"`
	RetryBackoff float64       `mapstructure:"retry_backoff"`
	Verbose      bool          `mapstructure:"verbose"`
	DateFallback bool          `mapstructure:"date_fallback"`
	WindowLimit  int           `mapstructure:"window_limit"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}
