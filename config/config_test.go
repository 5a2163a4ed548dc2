package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid config",
			cfg: Config{
				Iconik:  IconikConfig{AppID: "a0a0a0a0-0000-0000-0000-000000000000", AuthToken: "token"},
				Logging: LoggingConfig{Level: "info"},
			},
		},
		{
			name: "missing app id",
			cfg: Config{
				Iconik:  IconikConfig{AuthToken: "token"},
				Logging: LoggingConfig{Level: "info"},
			},
			wantErr: true,
			errMsg:  "app_id is required",
		},
		{
			name: "placeholder auth token",
			cfg: Config{
				Iconik:  IconikConfig{AppID: "a0a0a0a0-0000-0000-0000-000000000000", AuthToken: "your-auth-token-here"},
				Logging: LoggingConfig{Level: "info"},
			},
			wantErr: true,
			errMsg:  "auth_token",
		},
		{
			name: "invalid log level",
			cfg: Config{
				Iconik:  IconikConfig{AppID: "a0a0a0a0-0000-0000-0000-000000000000", AuthToken: "token"},
				Logging: LoggingConfig{Level: "loud"},
			},
			wantErr: true,
			errMsg:  "invalid logging level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate(&tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
iconik:
  app_id: a0a0a0a0-0000-0000-0000-000000000000
  auth_token: secret-token
  base_url: https://staging.iconik.example
retry:
  max_retries: 5
pagination:
  per_page: 500
  verbose: true
logging:
  level: debug
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "a0a0a0a0-0000-0000-0000-000000000000", cfg.Iconik.AppID)
	assert.Equal(t, "secret-token", cfg.Iconik.AuthToken)
	assert.Equal(t, "https://staging.iconik.example", cfg.Iconik.BaseURL)
	assert.Equal(t, 5, cfg.Retry.MaxRetries)
	assert.Equal(t, 500, cfg.Pagination.PerPage)
	assert.True(t, cfg.Pagination.Verbose)
	assert.True(t, cfg.Pagination.DateFallback)
	assert.Equal(t, 10000, cfg.Pagination.WindowLimit)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
