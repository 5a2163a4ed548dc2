package iconik

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// CollectionsService exposes the collection endpoints. Collections live
// under the assets group prefix in the iconik API.
type CollectionsService struct {
	service
}

// Collection is the collection payload.
type Collection struct {
	ID                string           `json:"id" validate:"required"`
	Title             string           `json:"title"`
	Status            CollectionStatus `json:"status" validate:"omitempty,oneof=ACTIVE DELETED"`
	ParentID          string           `json:"parent_id"`
	CreatedByUser     string           `json:"created_by_user"`
	DateCreated       time.Time        `json:"date_created"`
	DateModified      time.Time        `json:"date_modified"`
	CustomOrderStatus OrderStatus      `json:"custom_order_status" validate:"omitempty,oneof=ENABLED DISABLED"`
	IsRoot            bool             `json:"is_root"`
}

// CollectionStatus enumerates collection lifecycle states.
type CollectionStatus string

const (
	CollectionStatusActive  CollectionStatus = "ACTIVE"
	CollectionStatusDeleted CollectionStatus = "DELETED"
)

// OrderStatus enumerates custom ordering states. The upstream API leaves
// the field empty when ordering was never configured, so both enums here
// are optional rather than defaulting to an empty pseudo-value.
type OrderStatus string

const (
	OrderStatusEnabled  OrderStatus = "ENABLED"
	OrderStatusDisabled OrderStatus = "DISABLED"
)

// CollectionCreate is the request payload for creating a collection.
type CollectionCreate struct {
	Title    string           `json:"title"`
	ParentID Optional[string] `json:"parent_id"`
}

// CollectionUpdate is the request payload for partial collection updates.
type CollectionUpdate struct {
	Title             Optional[string]           `json:"title"`
	ParentID          Optional[string]           `json:"parent_id"`
	Status            Optional[CollectionStatus] `json:"status"`
	CustomOrderStatus Optional[OrderStatus]      `json:"custom_order_status"`
}

// CollectionContent is one entry in a collection's contents listing.
type CollectionContent struct {
	ID          string    `json:"id" validate:"required"`
	ObjectID    string    `json:"object_id"`
	ObjectType  string    `json:"object_type"`
	DateCreated time.Time `json:"date_created"`
}

// ContentAdd is the request payload for adding an object to a collection.
type ContentAdd struct {
	ObjectID   string `json:"object_id"`
	ObjectType string `json:"object_type" default:"assets"`
}

// Get retrieves a collection by id.
func (s *CollectionsService) Get(ctx context.Context, collectionID string) (*Result[Collection], error) {
	return doRequest[Collection](ctx, s.tr, http.MethodGet, s.path("collections/%s/", collectionID), nil, nil)
}

// Create creates a collection.
func (s *CollectionsService) Create(ctx context.Context, body any) (*Result[Collection], error) {
	return doRequest[Collection](ctx, s.tr, http.MethodPost, s.path("collections/"), body, nil)
}

// Update partially updates a collection.
func (s *CollectionsService) Update(ctx context.Context, collectionID string, body any) (*Result[Collection], error) {
	return doRequest[Collection](ctx, s.tr, http.MethodPatch, s.path("collections/%s/", collectionID), body, nil)
}

// Delete removes a collection.
func (s *CollectionsService) Delete(ctx context.Context, collectionID string) (*RawResponse, error) {
	return doNoContent(ctx, s.tr, http.MethodDelete, s.path("collections/%s/", collectionID), nil, nil)
}

// Contents retrieves a single page of a collection's contents.
func (s *CollectionsService) Contents(ctx context.Context, collectionID string, params url.Values) (*Result[Page[CollectionContent]], error) {
	return doRequest[Page[CollectionContent]](ctx, s.tr, http.MethodGet, s.path("collections/%s/contents/", collectionID), nil, params)
}

// ContentsAll retrieves every object in a collection as one virtual page.
func (s *CollectionsService) ContentsAll(ctx context.Context, collectionID string, filters url.Values) (*Page[CollectionContent], error) {
	return CollectAll(ctx, s.pages, s.logger,
		func(c CollectionContent) time.Time { return c.DateCreated },
		func(ctx context.Context, params url.Values) (*Page[CollectionContent], error) {
			res, err := s.Contents(ctx, collectionID, mergeValues(filters, params))
			if err != nil {
				return nil, err
			}
			if err := res.Raw.Err(); err != nil {
				return nil, err
			}
			return res.Data, nil
		})
}

// AddContent adds an object to a collection.
func (s *CollectionsService) AddContent(ctx context.Context, collectionID string, body any) (*Result[CollectionContent], error) {
	return doRequest[CollectionContent](ctx, s.tr, http.MethodPost, s.path("collections/%s/contents/", collectionID), body, nil)
}

// RemoveContent removes an object from a collection.
func (s *CollectionsService) RemoveContent(ctx context.Context, collectionID, objectID string) (*RawResponse, error) {
	return doNoContent(ctx, s.tr, http.MethodDelete, s.path("collections/%s/contents/%s/", collectionID, objectID), nil, nil)
}
