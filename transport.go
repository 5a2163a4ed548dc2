package iconik

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// RawResponse is the undecoded HTTP response surfaced through every result
// envelope. A synthesised RawResponse with StatusCode 0 stands in for the
// response when the server could not be reached at all.
type RawResponse struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte
}

// OK reports whether the status code is in the 2xx range.
func (r *RawResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Text returns the response body as a string.
func (r *RawResponse) Text() string {
	return string(r.Body)
}

// JSON unmarshals the response body into v.
func (r *RawResponse) JSON(v any) error {
	return json.Unmarshal(r.Body, v)
}

// Err returns nil for 2xx responses and an *APIError otherwise.
func (r *RawResponse) Err() error {
	if r.OK() {
		return nil
	}
	return &APIError{StatusCode: r.StatusCode, Body: r.Text()}
}

// Transport owns the HTTP session shared by every resource group. Headers,
// timeout and retry policy are fixed at construction; changing credentials
// requires a new client.
type Transport struct {
	baseURL      *url.URL
	appID        string
	authToken    string
	httpClient   *http.Client
	timeout      time.Duration
	maxRetries   int
	retryDelay   time.Duration
	retryBackoff float64
	logger       zerolog.Logger
}

type requestOptions struct {
	query       url.Values
	body        []byte
	contentType string
	headers     http.Header
	timeout     time.Duration
}

// RequestOption customises a single transport request.
type RequestOption func(*requestOptions) error

// WithQuery sets the URL query parameters.
func WithQuery(params url.Values) RequestOption {
	return func(o *requestOptions) error {
		o.query = params
		return nil
	}
}

// WithJSONBody marshals v as the JSON request body.
func WithJSONBody(v any) RequestOption {
	return func(o *requestOptions) error {
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		o.body = b
		o.contentType = "application/json"
		return nil
	}
}

// WithRawBody sends b unchanged with an explicit content type. Used by the
// binary upload endpoints that bypass JSON encoding.
func WithRawBody(b []byte, contentType string) RequestOption {
	return func(o *requestOptions) error {
		o.body = b
		o.contentType = contentType
		return nil
	}
}

// WithMultipart encodes fields and a single file as multipart/form-data.
func WithMultipart(fields map[string]string, fileField, fileName string, file []byte) RequestOption {
	return func(o *requestOptions) error {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		for k, v := range fields {
			if err := w.WriteField(k, v); err != nil {
				return fmt.Errorf("failed to encode form field %s: %w", k, err)
			}
		}
		if fileField != "" {
			part, err := w.CreateFormFile(fileField, fileName)
			if err != nil {
				return fmt.Errorf("failed to create form file: %w", err)
			}
			if _, err := part.Write(file); err != nil {
				return fmt.Errorf("failed to write form file: %w", err)
			}
		}
		if err := w.Close(); err != nil {
			return fmt.Errorf("failed to finalise multipart body: %w", err)
		}
		o.body = buf.Bytes()
		o.contentType = w.FormDataContentType()
		return nil
	}
}

// WithHeader sets a header on this request only.
func WithHeader(key, value string) RequestOption {
	return func(o *requestOptions) error {
		if o.headers == nil {
			o.headers = http.Header{}
		}
		o.headers.Set(key, value)
		return nil
	}
}

// WithRequestTimeout overrides the client timeout for this request. Each
// retry attempt gets a fresh budget.
func WithRequestTimeout(d time.Duration) RequestOption {
	return func(o *requestOptions) error {
		o.timeout = d
		return nil
	}
}

// Send executes one logical request: it builds the URL from the base URL
// and path, applies auth headers, and retries transient failures (network
// errors and 5xx responses) with exponential backoff for every verb. It
// never returns an error for a non-2xx response; after exhausting retries
// on a network failure it returns a synthesised RawResponse together with
// the wrapped error.
func (t *Transport) Send(ctx context.Context, method, path string, opts ...RequestOption) (*RawResponse, error) {
	var ro requestOptions
	for _, opt := range opts {
		if err := opt(&ro); err != nil {
			return nil, err
		}
	}

	u := *t.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(path, "/")
	if len(ro.query) > 0 {
		u.RawQuery = ro.query.Encode()
	}
	requestURL := u.String()

	timeout := t.timeout
	if ro.timeout > 0 {
		timeout = ro.timeout
	}

	var (
		lastResp *RawResponse
		lastErr  error
	)
	for attempt := 0; attempt <= t.maxRetries; attempt++ {
		if attempt > 0 {
			delay := backoffDelay(t.retryDelay, t.retryBackoff, attempt-1)
			t.logger.Warn().
				Str("method", method).
				Str("url", requestURL).
				Int("attempt", attempt).
				Dur("delay", delay).
				Msg("Retrying request")
			select {
			case <-ctx.Done():
				return synthesised(ctx.Err()), fmt.Errorf("%w: %v", ErrRequestFailed, ctx.Err())
			case <-time.After(delay):
			}
		}

		resp, err := t.attempt(ctx, method, requestURL, &ro, timeout)
		if err != nil {
			lastErr = err
			lastResp = nil
			continue
		}
		lastErr = nil
		lastResp = resp
		if resp.StatusCode < 500 {
			return resp, nil
		}
		t.logger.Debug().
			Int("status", resp.StatusCode).
			Str("url", requestURL).
			Msg("Server error response")
	}

	if lastErr != nil {
		return synthesised(lastErr), fmt.Errorf("%w: %v", ErrRequestFailed, lastErr)
	}
	// Retries exhausted on 5xx: surface the last raw response and let the
	// caller branch on status.
	return lastResp, nil
}

func (t *Transport) attempt(ctx context.Context, method, requestURL string, ro *requestOptions, timeout time.Duration) (*RawResponse, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var bodyReader io.Reader
	if ro.body != nil {
		bodyReader = bytes.NewReader(ro.body)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("App-ID", t.appID)
	req.Header.Set("Auth-Token", t.authToken)
	req.Header.Set("Accept", "application/json")
	if ro.contentType != "" {
		req.Header.Set("Content-Type", ro.contentType)
	}
	for key, values := range ro.headers {
		req.Header.Del(key)
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	t.logger.Debug().
		Str("method", method).
		Str("url", requestURL).
		Msg("Making iconik API request")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &RawResponse{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

func backoffDelay(base time.Duration, factor float64, exp int) time.Duration {
	d := float64(base)
	for i := 0; i < exp; i++ {
		d *= factor
	}
	return time.Duration(d)
}

func synthesised(err error) *RawResponse {
	return &RawResponse{
		StatusCode: 0,
		Status:     "network error",
		Body:       []byte(err.Error()),
	}
}
