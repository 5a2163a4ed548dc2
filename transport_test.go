package iconik

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAppID = "c5f8a1de-1234-4f6a-9b3c-2d7e8f9a0b1c"

func testClient(t *testing.T, baseURL string, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{
		WithBaseURL(baseURL),
		WithRetryDelay(time.Millisecond),
	}, opts...)
	client, err := New(testAppID, "test-token", opts...)
	require.NoError(t, err)
	return client
}

func TestSendHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, testAppID, r.Header.Get("App-ID"))
		assert.Equal(t, "test-token", r.Header.Get("Auth-Token"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := testClient(t, server.URL)
	raw, err := client.tr.Send(context.Background(), http.MethodGet, "API/assets/v1/assets/")
	require.NoError(t, err)
	assert.True(t, raw.OK())
}

func TestSendBuildsURLFromPrefix(t *testing.T) {
	var gotPath, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := testClient(t, server.URL)
	_, err := client.Assets().List(context.Background(), map[string][]string{"per_page": {"50"}})
	require.NoError(t, err)
	assert.Equal(t, "/API/assets/v1/assets/", gotPath)
	assert.Equal(t, "per_page=50", gotQuery)
}

func TestSendRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := testClient(t, server.URL, WithMaxRetries(3))
	raw, err := client.tr.Send(context.Background(), http.MethodGet, "API/jobs/v1/jobs/")
	require.NoError(t, err)
	assert.True(t, raw.OK())
	assert.Equal(t, int32(3), calls.Load())
}

func TestSendRetriesExhaustedSurfacesLastResponse(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"down"}`))
	}))
	defer server.Close()

	client := testClient(t, server.URL, WithMaxRetries(2))
	raw, err := client.tr.Send(context.Background(), http.MethodGet, "API/jobs/v1/jobs/")
	// Non-2xx is not an error, even after retries ran out.
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, raw.StatusCode)
	assert.False(t, raw.OK())
	// Initial attempt plus two retries, never more.
	assert.Equal(t, int32(3), calls.Load())
}

func TestSendDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := testClient(t, server.URL, WithMaxRetries(3))
	raw, err := client.tr.Send(context.Background(), http.MethodGet, "API/assets/v1/assets/x/")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, raw.StatusCode)
	assert.Equal(t, int32(1), calls.Load())
}

func TestSendNetworkFailureSynthesisesResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	serverURL := server.URL
	server.Close()

	client := testClient(t, serverURL, WithMaxRetries(1))
	raw, err := client.tr.Send(context.Background(), http.MethodGet, "API/assets/v1/assets/")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRequestFailed)
	require.NotNil(t, raw)
	assert.Equal(t, 0, raw.StatusCode)
	assert.False(t, raw.OK())
	assert.NotEmpty(t, raw.Text())
}

func TestSendRawBodyContentType(t *testing.T) {
	var gotContentType string
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := testClient(t, server.URL)
	image := []byte{0xff, 0xd8, 0xff}
	_, err := client.Files().UploadKeyframe(context.Background(), "ast-1", image, "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", gotContentType)
	assert.Equal(t, image, gotBody)
}

func TestSendMultipart(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("photo")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "me.png", header.Filename)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := testClient(t, server.URL)
	raw, err := client.Users().SetPhoto(context.Background(), "usr-1", "me.png", []byte("png-bytes"))
	require.NoError(t, err)
	assert.True(t, raw.OK())
}

func TestRawResponseErr(t *testing.T) {
	ok := &RawResponse{StatusCode: 200}
	assert.NoError(t, ok.Err())

	notFound := &RawResponse{StatusCode: 404, Body: []byte("missing")}
	err := notFound.Err()
	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsNotFound())
	assert.False(t, apiErr.IsServerError())
}
