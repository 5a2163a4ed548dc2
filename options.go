package iconik

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	baseURL      string
	timeout      time.Duration
	maxRetries   int
	retryDelay   time.Duration
	retryBackoff float64
	httpClient   *http.Client
	logger       *zerolog.Logger
	pageConfig   *PageConfig
}

// WithBaseURL points the client at a different iconik host, e.g. a staging
// environment.
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) {
		o.baseURL = baseURL
	}
}

// WithTimeout sets the per-request timeout. Each retry attempt consumes a
// fresh budget.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		o.timeout = timeout
	}
}

// WithMaxRetries sets the maximum number of retry attempts per request.
func WithMaxRetries(retries int) Option {
	return func(o *clientOptions) {
		if retries >= 0 {
			o.maxRetries = retries
		}
	}
}

// WithRetryDelay sets the base delay between retry attempts.
func WithRetryDelay(delay time.Duration) Option {
	return func(o *clientOptions) {
		o.retryDelay = delay
	}
}

// WithRetryBackoff sets the multiplier applied to the delay per attempt.
func WithRetryBackoff(factor float64) Option {
	return func(o *clientOptions) {
		if factor > 0 {
			o.retryBackoff = factor
		}
	}
}

// WithHTTPClient supplies a custom HTTP client, e.g. with an instrumented
// transport. The client's connection pool is shared by all resource groups.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}

// WithLogger attaches a logger to the client. Defaults to a no-op logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *clientOptions) {
		o.logger = &logger
	}
}

// WithPageConfig overrides the pagination defaults used by the *All list
// methods.
func WithPageConfig(cfg PageConfig) Option {
	return func(o *clientOptions) {
		o.pageConfig = &cfg
	}
}
