package iconik

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectionContents(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/API/assets/v1/collections/col-1/contents/", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"objects": []any{
				map[string]any{"id": "c-1", "object_id": "ast-1", "object_type": "assets"},
				map[string]any{"id": "c-2", "object_id": "col-2", "object_type": "collections"},
			},
			"page": 1, "pages": 1, "per_page": 100, "total": 2,
		})
	}))
	defer server.Close()

	client := testClient(t, server.URL)
	res, err := client.Collections().Contents(context.Background(), "col-1", nil)
	require.NoError(t, err)
	require.NotNil(t, res.Data)
	require.Len(t, res.Data.Objects, 2)
	assert.Equal(t, "ast-1", res.Data.Objects[0].ObjectID)
	assert.Equal(t, "collections", res.Data.Objects[1].ObjectType)
}

func TestAddContent(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/API/assets/v1/collections/col-1/contents/", r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &gotBody))
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"id": "c-9", "object_id": "ast-9", "object_type": "assets",
		})
	}))
	defer server.Close()

	client := testClient(t, server.URL)
	res, err := client.Collections().AddContent(context.Background(), "col-1", ContentAdd{
		ObjectID:   "ast-9",
		ObjectType: "assets",
	})
	require.NoError(t, err)
	require.NotNil(t, res.Data)
	assert.Equal(t, "ast-9", res.Data.ObjectID)
	// The declared default object_type is dropped from the POST body.
	assert.Equal(t, map[string]any{"object_id": "ast-9"}, gotBody)
}
