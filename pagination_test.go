package iconik

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pageItem struct {
	ID      int
	Created time.Time
}

func itemDate(i pageItem) time.Time { return i.Created }

func fastPageConfig() PageConfig {
	cfg := DefaultPageConfig()
	cfg.RetryDelay = time.Millisecond
	return cfg
}

func TestCollectAllMergesPages(t *testing.T) {
	pages := map[string]*Page[pageItem]{
		"1": {Objects: []pageItem{{ID: 1}, {ID: 2}}, Page: 1, Pages: 2, PerPage: 2, Total: 4},
		"2": {Objects: []pageItem{{ID: 3}, {ID: 4}}, Page: 2, Pages: 2, PerPage: 2, Total: 4},
	}

	var calls int
	fetch := func(ctx context.Context, params url.Values) (*Page[pageItem], error) {
		calls++
		page, ok := pages[params.Get("page")]
		require.True(t, ok, "unexpected page %q", params.Get("page"))
		return page, nil
	}

	merged, err := CollectAll(context.Background(), fastPageConfig(), zerolog.Nop(), itemDate, fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)

	// Server page order is preserved and the meta is rewritten to describe
	// one virtual page.
	require.Len(t, merged.Objects, 4)
	for i, obj := range merged.Objects {
		assert.Equal(t, i+1, obj.ID)
	}
	assert.Equal(t, 1, merged.Page)
	assert.Equal(t, 1, merged.Pages)
	assert.Equal(t, 4, merged.PerPage)
	assert.Equal(t, 4, merged.Total)
}

func TestCollectAllSinglePage(t *testing.T) {
	var calls int
	fetch := func(ctx context.Context, params url.Values) (*Page[pageItem], error) {
		calls++
		return &Page[pageItem]{Objects: []pageItem{{ID: 1}}, Page: 1, Pages: 1, PerPage: 50, Total: 1}, nil
	}

	merged, err := CollectAll(context.Background(), fastPageConfig(), zerolog.Nop(), itemDate, fetch)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Len(t, merged.Objects, 1)
}

func TestCollectAllDateContinuation(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	makeItems := func(start, n int) []pageItem {
		items := make([]pageItem, n)
		for i := range items {
			items[i] = pageItem{ID: start + i, Created: base.Add(time.Duration(start+i) * time.Minute)}
		}
		return items
	}
	maxDate := base.Add(99 * time.Minute) // newest item on page two

	cfg := fastPageConfig()
	cfg.PerPage = 50
	cfg.WindowLimit = 100

	var requests []url.Values
	fetch := func(ctx context.Context, params url.Values) (*Page[pageItem], error) {
		copied := url.Values{}
		for k, v := range params {
			copied[k] = append([]string(nil), v...)
		}
		requests = append(requests, copied)

		switch len(requests) {
		case 1:
			return &Page[pageItem]{Objects: makeItems(0, 50), Page: 1, Pages: 2, PerPage: 50, Total: 200}, nil
		case 2:
			return &Page[pageItem]{Objects: makeItems(50, 50), Page: 2, Pages: 2, PerPage: 50, Total: 200}, nil
		case 3:
			return &Page[pageItem]{Objects: makeItems(100, 1), Page: 1, Pages: 1, PerPage: 50, Total: 1}, nil
		default:
			t.Fatalf("unexpected fetch %d", len(requests))
			return nil, nil
		}
	}

	merged, err := CollectAll(context.Background(), cfg, zerolog.Nop(), itemDate, fetch)
	require.NoError(t, err)

	require.Len(t, requests, 3)
	// The first two requests page by number with no date filter.
	assert.Equal(t, "1", requests[0].Get("page"))
	assert.Empty(t, requests[0].Get("date_created_gt"))
	assert.Equal(t, "2", requests[1].Get("page"))
	// Crossing the window switches to a date filter one second past the
	// newest object seen, restarting at page one.
	assert.Equal(t, "1", requests[2].Get("page"))
	assert.Equal(t, maxDate.Add(time.Second).Format(time.RFC3339), requests[2].Get("date_created_gt"))

	assert.Len(t, merged.Objects, 101)
	assert.Equal(t, 101, merged.Total)
	assert.Equal(t, 1, merged.Pages)
}

func TestCollectAllContinuationEndsOnEmptyPage(t *testing.T) {
	cfg := fastPageConfig()
	cfg.PerPage = 2
	cfg.WindowLimit = 2

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	var calls int
	fetch := func(ctx context.Context, params url.Values) (*Page[pageItem], error) {
		calls++
		switch calls {
		case 1:
			return &Page[pageItem]{
				Objects: []pageItem{{ID: 1, Created: base}, {ID: 2, Created: base.Add(time.Minute)}},
				Page:    1, Pages: 5, PerPage: 2, Total: 10,
			}, nil
		default:
			// The continuation finds nothing newer.
			return &Page[pageItem]{Page: 1, Pages: 1, PerPage: 2, Total: 0}, nil
		}
	}

	merged, err := CollectAll(context.Background(), cfg, zerolog.Nop(), itemDate, fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Len(t, merged.Objects, 2)
}

func TestCollectAllWindowReachedButComplete(t *testing.T) {
	cfg := fastPageConfig()
	cfg.WindowLimit = 3

	var calls int
	fetch := func(ctx context.Context, params url.Values) (*Page[pageItem], error) {
		calls++
		return &Page[pageItem]{
			Objects: []pageItem{{ID: 1}, {ID: 2}, {ID: 3}},
			Page:    1, Pages: 1, PerPage: 3, Total: 3,
		}, nil
	}

	// Everything fit in one page, so hitting the window exactly must not
	// trigger a continuation fetch.
	merged, err := CollectAll(context.Background(), cfg, zerolog.Nop(), itemDate, fetch)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Len(t, merged.Objects, 3)
}

func TestCollectAllNoDatesReturnsPartial(t *testing.T) {
	cfg := fastPageConfig()
	cfg.PerPage = 2
	cfg.WindowLimit = 2

	var calls int
	fetch := func(ctx context.Context, params url.Values) (*Page[pageItem], error) {
		calls++
		// Objects without date_created cannot continue past the window.
		return &Page[pageItem]{
			Objects: []pageItem{{ID: 1}, {ID: 2}},
			Page:    1, Pages: 5, PerPage: 2, Total: 10,
		}, nil
	}

	merged, err := CollectAll(context.Background(), cfg, zerolog.Nop(), itemDate, fetch)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Len(t, merged.Objects, 2)
}

func TestCollectAllDateFallbackDisabled(t *testing.T) {
	cfg := fastPageConfig()
	cfg.PerPage = 2
	cfg.WindowLimit = 2
	cfg.DateFallback = false

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var pages []string
	fetch := func(ctx context.Context, params url.Values) (*Page[pageItem], error) {
		pages = append(pages, params.Get("page"))
		if len(pages) == 2 {
			cancel()
		}
		return &Page[pageItem]{
			Objects: []pageItem{{ID: 1, Created: base}, {ID: 2, Created: base.Add(time.Minute)}},
			Page:    1, Pages: 5, PerPage: 2, Total: 10,
		}, nil
	}

	// Without the fallback, paging past the window keeps going by number;
	// the test cancels after the second fetch to stop the traversal.
	_, err := CollectAll(ctx, cfg, zerolog.Nop(), itemDate, fetch)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPaginationExhausted)
	require.Len(t, pages, 2)
	assert.Equal(t, "2", pages[1], "traversal should have advanced to page 2 by number")
}

func TestCollectAllRetries(t *testing.T) {
	t.Run("recovers within budget", func(t *testing.T) {
		cfg := fastPageConfig()
		cfg.MaxRetries = 3

		var calls int
		fetch := func(ctx context.Context, params url.Values) (*Page[pageItem], error) {
			calls++
			if calls < 3 {
				return nil, errors.New("boom")
			}
			return &Page[pageItem]{Objects: []pageItem{{ID: 1}}, Page: 1, Pages: 1, PerPage: 50, Total: 1}, nil
		}

		merged, err := CollectAll(context.Background(), cfg, zerolog.Nop(), itemDate, fetch)
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
		assert.Len(t, merged.Objects, 1)
	})

	t.Run("exhausts budget", func(t *testing.T) {
		cfg := fastPageConfig()
		cfg.MaxRetries = 2

		var calls int
		fetch := func(ctx context.Context, params url.Values) (*Page[pageItem], error) {
			calls++
			return nil, errors.New("boom")
		}

		_, err := CollectAll(context.Background(), cfg, zerolog.Nop(), itemDate, fetch)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrPaginationExhausted)
		assert.Contains(t, err.Error(), "boom")
		assert.Equal(t, 2, calls)
	})
}

func TestPageConfigDefaults(t *testing.T) {
	cfg := PageConfig{}.withDefaults()
	assert.Equal(t, DefaultMaxPerPage, cfg.PerPage)
	assert.Equal(t, DefaultWindowLimit, cfg.WindowLimit)
	assert.Equal(t, 3, cfg.MaxRetries)

	capped := PageConfig{PerPage: 5000}.withDefaults()
	assert.Equal(t, DefaultMaxPerPage, capped.PerPage)
}

func TestHasMorePages(t *testing.T) {
	assert.True(t, (&Page[pageItem]{Page: 1, Pages: 2}).HasMorePages())
	assert.False(t, (&Page[pageItem]{Page: 2, Pages: 2}).HasMorePages())
}
