package iconik

import (
	"github.com/soup/iconik-go/config"
)

// NewFromConfig builds a client from a loaded configuration file. Options
// given here override the file.
func NewFromConfig(cfg *config.Config, opts ...Option) (*Client, error) {
	base := []Option{
		WithBaseURL(cfg.Iconik.BaseURL),
		WithTimeout(cfg.Iconik.Timeout),
		WithMaxRetries(cfg.Retry.MaxRetries),
		WithRetryDelay(cfg.Retry.Delay),
		WithRetryBackoff(cfg.Retry.Backoff),
		WithLogger(NewConsoleLogger(cfg.Logging.Level)),
		WithPageConfig(PageConfig{
			PerPage:      cfg.Pagination.PerPage,
			MaxRetries:   cfg.Pagination.MaxRetries,
			RetryDelay:   cfg.Pagination.RetryDelay,
			RetryBackoff: cfg.Pagination.RetryBackoff,
			Verbose:      cfg.Pagination.Verbose,
			DateFallback: cfg.Pagination.DateFallback,
			WindowLimit:  cfg.Pagination.WindowLimit,
		}),
	}
	return New(cfg.Iconik.AppID, cfg.Iconik.AuthToken, append(base, opts...)...)
}
