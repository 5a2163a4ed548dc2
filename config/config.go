// Package config loads iconik client configuration from a YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Load loads the configuration from file. An empty path searches the
// current directory, ~/.iconik and /etc/iconik.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".iconik"))
		}
		v.AddConfigPath("/etc/iconik/")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil, fmt.Errorf("config file not found: %w", err)
		}
		return nil, fmt.Errorf("error reading config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("iconik.base_url", "https://app.iconik.io")
	v.SetDefault("iconik.timeout", 30*time.Second)

	v.SetDefault("retry.max_retries", 3)
	v.SetDefault("retry.delay", time.Second)
	v.SetDefault("retry.backoff", 2.0)

	v.SetDefault("pagination.per_page", 1000)
	v.SetDefault("pagination.max_retries", 3)
	v.SetDefault("pagination.retry_delay", time.Second)
	v.SetDefault("pagination.retry_backoff", 2.0)
	v.SetDefault("pagination.date_fallback", true)
	v.SetDefault("pagination.window_limit", 10000)

	v.SetDefault("logging.level", "info")
}

// validate checks if the configuration is valid.
func validate(cfg *Config) error {
	if cfg.Iconik.AppID == "" {
		return fmt.Errorf("iconik.app_id is required")
	}

	if cfg.Iconik.AuthToken == "" || cfg.Iconik.AuthToken == "your-auth-token-here" {
		return fmt.Errorf("iconik.auth_token must be set to a valid token")
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	return nil
}
