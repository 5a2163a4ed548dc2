package iconik

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"
)

// bulkConcurrency bounds the number of in-flight requests for the bulk
// helpers.
const bulkConcurrency = 10

// AssetsService exposes the asset endpoints under API/assets/v1/.
type AssetsService struct {
	service
}

// AssetStatus enumerates asset lifecycle states.
type AssetStatus string

const (
	AssetStatusActive   AssetStatus = "ACTIVE"
	AssetStatusInactive AssetStatus = "INACTIVE"
	AssetStatusDeleted  AssetStatus = "DELETED"
)

// Asset is the asset payload returned by the asset endpoints.
type Asset struct {
	ID            string         `json:"id" validate:"required"`
	Title         string         `json:"title"`
	Status        AssetStatus    `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE DELETED"`
	Type          string         `json:"type"`
	ExternalID    string         `json:"external_id"`
	CreatedByUser string         `json:"created_by_user"`
	DateCreated   time.Time      `json:"date_created"`
	DateModified  time.Time      `json:"date_modified"`
	Versions      []AssetVersion `json:"versions"`
	InCollections []string       `json:"in_collections"`
	IsOnline      bool           `json:"is_online"`
}

// AssetVersion is one entry in an asset's version history.
type AssetVersion struct {
	ID            string    `json:"id" validate:"required"`
	Status        string    `json:"status"`
	CreatedByUser string    `json:"created_by_user"`
	DateCreated   time.Time `json:"date_created"`
}

// AssetCreate is the request payload for creating an asset.
type AssetCreate struct {
	Title        string           `json:"title"`
	Type         string           `json:"type" default:"ASSET"`
	ExternalID   Optional[string] `json:"external_id"`
	CollectionID Optional[string] `json:"collection_id"`
}

// AssetUpdate is the request payload for partial asset updates. Every
// field tracks presence so a PATCH only touches what the caller assigned.
type AssetUpdate struct {
	Title      Optional[string]      `json:"title"`
	Status     Optional[AssetStatus] `json:"status"`
	ExternalID Optional[string]      `json:"external_id"`
	IsOnline   Optional[bool]        `json:"is_online"`
}

// Get retrieves an asset by id.
func (s *AssetsService) Get(ctx context.Context, assetID string) (*Result[Asset], error) {
	return doRequest[Asset](ctx, s.tr, http.MethodGet, s.path("assets/%s/", assetID), nil, nil)
}

// List retrieves a single page of assets. Pagination parameters go in
// params ("page", "per_page") alongside any filters.
func (s *AssetsService) List(ctx context.Context, params url.Values) (*Result[Page[Asset]], error) {
	return doRequest[Page[Asset]](ctx, s.tr, http.MethodGet, s.path("assets/"), nil, params)
}

// ListAll retrieves every asset matching the filters as one virtual page.
func (s *AssetsService) ListAll(ctx context.Context, filters url.Values) (*Page[Asset], error) {
	return CollectAll(ctx, s.pages, s.logger, assetCreated,
		func(ctx context.Context, params url.Values) (*Page[Asset], error) {
			res, err := s.List(ctx, mergeValues(filters, params))
			if err != nil {
				return nil, err
			}
			if err := res.Raw.Err(); err != nil {
				return nil, err
			}
			return res.Data, nil
		})
}

// Create creates an asset. body may be an AssetCreate, any other typed
// payload, or a raw map.
func (s *AssetsService) Create(ctx context.Context, body any) (*Result[Asset], error) {
	return doRequest[Asset](ctx, s.tr, http.MethodPost, s.path("assets/"), body, nil)
}

// Update partially updates an asset. Typed bodies are serialised with
// unset fields omitted, so server state the caller did not touch survives.
func (s *AssetsService) Update(ctx context.Context, assetID string, body any) (*Result[Asset], error) {
	return doRequest[Asset](ctx, s.tr, http.MethodPatch, s.path("assets/%s/", assetID), body, nil)
}

// Replace fully replaces an asset.
func (s *AssetsService) Replace(ctx context.Context, assetID string, body any) (*Result[Asset], error) {
	return doRequest[Asset](ctx, s.tr, http.MethodPut, s.path("assets/%s/", assetID), body, nil)
}

// Delete removes an asset.
func (s *AssetsService) Delete(ctx context.Context, assetID string) (*RawResponse, error) {
	return doNoContent(ctx, s.tr, http.MethodDelete, s.path("assets/%s/", assetID), nil, nil)
}

// CreateVersion adds a new version to an asset.
func (s *AssetsService) CreateVersion(ctx context.Context, assetID string, body any) (*Result[AssetVersion], error) {
	return doRequest[AssetVersion](ctx, s.tr, http.MethodPost, s.path("assets/%s/versions/", assetID), body, nil)
}

// BulkGet fetches multiple assets concurrently, preserving input order.
// The first failing fetch cancels the rest.
func (s *AssetsService) BulkGet(ctx context.Context, assetIDs []string) ([]*Asset, error) {
	results := make([]*Asset, len(assetIDs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bulkConcurrency)
	for i, id := range assetIDs {
		g.Go(func() error {
			res, err := s.Get(ctx, id)
			if err != nil {
				return fmt.Errorf("asset %s: %w", id, err)
			}
			if err := res.Raw.Err(); err != nil {
				return fmt.Errorf("asset %s: %w", id, err)
			}
			results[i] = res.Data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func assetCreated(a Asset) time.Time {
	return a.DateCreated
}
