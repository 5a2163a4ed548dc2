package iconik

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// Default pagination limits. MaxPerPage is the hard API ceiling on page
// size; WindowLimit is the search backend's result window, beyond which
// paging by number is refused and traversal continues by date_created.
const (
	DefaultMaxPerPage  = 1000
	DefaultWindowLimit = 10000
)

// PageConfig controls multi-page traversal. The zero value is usable;
// unset fields fall back to the defaults below.
type PageConfig struct {
	// MaxPerPage is the hard API ceiling on per_page.
	MaxPerPage int

	// PerPage is the requested page size, capped at MaxPerPage.
	PerPage int

	// MaxRetries is the number of attempts allowed for a single page
	// before the traversal fails.
	MaxRetries int

	// RetryDelay is the base delay between attempts.
	RetryDelay time.Duration

	// RetryBackoff multiplies the delay per attempt.
	RetryBackoff float64

	// Verbose logs every fetched page.
	Verbose bool

	// DateFallback allows switching to date_created continuation when the
	// traversal crosses WindowLimit.
	DateFallback bool

	// WindowLimit is the search backend's result window.
	WindowLimit int
}

// DefaultPageConfig returns the standard traversal configuration.
func DefaultPageConfig() PageConfig {
	return PageConfig{
		MaxPerPage:   DefaultMaxPerPage,
		PerPage:      DefaultMaxPerPage,
		MaxRetries:   3,
		RetryDelay:   time.Second,
		RetryBackoff: 2,
		DateFallback: true,
		WindowLimit:  DefaultWindowLimit,
	}
}

func (c PageConfig) withDefaults() PageConfig {
	d := DefaultPageConfig()
	if c.MaxPerPage <= 0 {
		c.MaxPerPage = d.MaxPerPage
	}
	if c.PerPage <= 0 || c.PerPage > c.MaxPerPage {
		c.PerPage = c.MaxPerPage
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = d.MaxRetries
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = d.RetryDelay
	}
	if c.RetryBackoff <= 0 {
		c.RetryBackoff = d.RetryBackoff
	}
	if c.WindowLimit <= 0 {
		c.WindowLimit = d.WindowLimit
	}
	return c
}

// Page is the pagination contract every iconik list response follows.
type Page[T any] struct {
	Objects  []T    `json:"objects"`
	Page     int    `json:"page"`
	Pages    int    `json:"pages"`
	PerPage  int    `json:"per_page"`
	Total    int    `json:"total"`
	FirstURL string `json:"first_url,omitempty"`
	LastURL  string `json:"last_url,omitempty"`
	NextURL  string `json:"next_url,omitempty"`
	PrevURL  string `json:"prev_url,omitempty"`
}

// HasMorePages reports whether pages remain after this one.
func (p *Page[T]) HasMorePages() bool {
	return p.Page < p.Pages
}

// PageFunc fetches a single page. The engine owns the page, per_page and
// date_created_gt parameters; implementations merge in their own filters.
type PageFunc[T any] func(ctx context.Context, params url.Values) (*Page[T], error)

// CollectAll drives fetch until every object has been retrieved and
// returns the merged set as one virtual page. Object order follows server
// page order. Failed fetches are retried with exponential backoff; once a
// single page has failed cfg.MaxRetries times the whole traversal fails
// with ErrPaginationExhausted and no partial result.
//
// When the traversal crosses cfg.WindowLimit with results remaining, the
// engine switches to date continuation: it filters subsequent requests by
// date_created_gt set to the newest date_created seen plus one second,
// restarting at page 1. dateOf extracts that date from an object; when it
// is nil, or no usable date can be extracted, the traversal stops with the
// objects collected so far and logs a warning.
func CollectAll[T any](ctx context.Context, cfg PageConfig, logger zerolog.Logger, dateOf func(T) time.Time, fetch PageFunc[T]) (*Page[T], error) {
	cfg = cfg.withDefaults()

	params := url.Values{}
	params.Set("page", "1")
	params.Set("per_page", strconv.Itoa(cfg.PerPage))

	var (
		accumulated  []T
		last         *Page[T]
		attempt      int
		continuation bool
	)

	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPaginationExhausted, err)
		}

		page, err := fetch(ctx, params)
		if err != nil {
			attempt++
			if attempt >= cfg.MaxRetries {
				return nil, fmt.Errorf("%w: %w", ErrPaginationExhausted, err)
			}
			delay := backoffDelay(cfg.RetryDelay, cfg.RetryBackoff, attempt-1)
			logger.Warn().
				Err(err).
				Int("attempt", attempt).
				Dur("delay", delay).
				Msg("Page fetch failed, retrying")
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %v", ErrPaginationExhausted, ctx.Err())
			case <-time.After(delay):
			}
			continue
		}
		attempt = 0

		if continuation && len(page.Objects) == 0 {
			break
		}

		accumulated = append(accumulated, page.Objects...)
		last = page

		if cfg.Verbose {
			logger.Info().
				Int("page", page.Page).
				Int("pages", page.Pages).
				Int("count", len(page.Objects)).
				Int("fetched", len(accumulated)).
				Msg("Fetched page")
		}

		more := page.Page < page.Pages || len(accumulated) < page.Total
		if len(accumulated) >= cfg.WindowLimit && more && cfg.DateFallback {
			next, ok := continuationDate(accumulated, dateOf)
			if !ok {
				logger.Warn().
					Int("fetched", len(accumulated)).
					Msg("Result window reached but no date_created available, returning partial set")
				break
			}
			params.Set("date_created_gt", next.Format(time.RFC3339))
			params.Set("page", "1")
			continuation = true
			continue
		}

		if page.Page < page.Pages {
			params.Set("page", strconv.Itoa(page.Page+1))
			continue
		}
		break
	}

	merged := &Page[T]{
		Objects: accumulated,
		Page:    1,
		Pages:   1,
		PerPage: len(accumulated),
		Total:   len(accumulated),
	}
	if last != nil {
		merged.FirstURL = last.FirstURL
		merged.LastURL = last.LastURL
	}
	return merged, nil
}

// continuationDate returns max(date_created) across the accumulated
// objects plus one second, so the boundary object is not revisited.
func continuationDate[T any](objects []T, dateOf func(T) time.Time) (time.Time, bool) {
	if dateOf == nil {
		return time.Time{}, false
	}
	var max time.Time
	for _, obj := range objects {
		if d := dateOf(obj); d.After(max) {
			max = d
		}
	}
	if max.IsZero() {
		return time.Time{}, false
	}
	return max.Add(time.Second), true
}
