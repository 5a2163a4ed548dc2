package iconik

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBulkGetPreservesOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/API/assets/v1/assets/"), "/")
		json.NewEncoder(w).Encode(map[string]any{"id": id, "title": "asset " + id})
	}))
	defer server.Close()

	ids := make([]string, 25)
	for i := range ids {
		ids[i] = "ast-" + strconv.Itoa(i)
	}

	client := testClient(t, server.URL)
	assets, err := client.Assets().BulkGet(context.Background(), ids)
	require.NoError(t, err)
	require.Len(t, assets, len(ids))
	for i, asset := range assets {
		require.NotNil(t, asset)
		assert.Equal(t, ids[i], asset.ID)
	}
}

func TestBulkGetPropagatesFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "ast-bad") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/API/assets/v1/assets/"), "/")
		json.NewEncoder(w).Encode(map[string]any{"id": id})
	}))
	defer server.Close()

	client := testClient(t, server.URL)
	_, err := client.Assets().BulkGet(context.Background(), []string{"ast-1", "ast-bad", "ast-2"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ast-bad")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsNotFound())
}

func TestListAllMergesFilters(t *testing.T) {
	var gotQueries []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQueries = append(gotQueries, r.URL.RawQuery)
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		json.NewEncoder(w).Encode(map[string]any{
			"objects":  []any{map[string]any{"id": "ast-" + strconv.Itoa(page)}},
			"page":     page,
			"pages":    2,
			"per_page": 1,
			"total":    2,
		})
	}))
	defer server.Close()

	client := testClient(t, server.URL)
	merged, err := client.Assets().ListAll(context.Background(), map[string][]string{"status": {"ACTIVE"}})
	require.NoError(t, err)
	require.Len(t, merged.Objects, 2)
	assert.Equal(t, "ast-1", merged.Objects[0].ID)
	assert.Equal(t, "ast-2", merged.Objects[1].ID)

	// The caller's filter rides along on every page request, while the
	// engine owns the pagination parameters.
	require.Len(t, gotQueries, 2)
	for _, q := range gotQueries {
		assert.Contains(t, q, "status=ACTIVE")
		assert.Contains(t, q, "per_page=")
	}
}

func TestCreateAssetAppliesDefaults(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]any{"id": "ast-1", "title": "clip"})
	}))
	defer server.Close()

	client := testClient(t, server.URL)
	res, err := client.Assets().Create(context.Background(), AssetCreate{Title: "clip", Type: "ASSET"})
	require.NoError(t, err)
	require.NotNil(t, res.Data)

	// POST bodies drop declared defaults but keep assigned fields.
	assert.Equal(t, map[string]any{"title": "clip"}, gotBody)
}
