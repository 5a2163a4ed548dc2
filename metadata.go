package iconik

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// MetadataService exposes the metadata view and field endpoints under
// API/metadata/v1/.
type MetadataService struct {
	service
}

// MetadataValues holds the field values of one object in one view.
type MetadataValues struct {
	ObjectID     string                 `json:"object_id"`
	ObjectType   string                 `json:"object_type"`
	Values       map[string]FieldValues `json:"metadata_values"`
	DateCreated  time.Time              `json:"date_created"`
	DateModified time.Time              `json:"date_modified"`
}

// FieldValues wraps the value list of a single field.
type FieldValues struct {
	FieldValues []FieldValue `json:"field_values"`
}

// FieldValue is a single stored metadata value.
type FieldValue struct {
	Value any `json:"value"`
}

// MetadataView describes which fields an interface shows.
type MetadataView struct {
	ID          string      `json:"id" validate:"required"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	ViewFields  []ViewField `json:"view_fields"`
	DateCreated time.Time   `json:"date_created"`
}

// ViewField is one field reference inside a view.
type ViewField struct {
	Name      string `json:"name" validate:"required"`
	Label     string `json:"label"`
	Required  bool   `json:"required"`
	ReadOnly  bool   `json:"read_only"`
	FieldType string `json:"field_type"`
}

// MetadataField is a declared metadata field.
type MetadataField struct {
	Name        string    `json:"name" validate:"required"`
	Label       string    `json:"label"`
	FieldType   string    `json:"field_type" validate:"omitempty,oneof=string integer boolean date date_time drop_down tag_cloud"`
	MinValue    int       `json:"min_value"`
	MaxValue    int       `json:"max_value"`
	Options     []string  `json:"options"`
	Required    bool      `json:"required"`
	MultiValue  bool      `json:"multi"`
	DateCreated time.Time `json:"date_created"`
}

// ViewCreate is the request payload for creating a metadata view.
type ViewCreate struct {
	Name        string           `json:"name"`
	Description Optional[string] `json:"description"`
	ViewFields  []ViewField      `json:"view_fields"`
}

// ViewUpdate is the request payload for partial view updates.
type ViewUpdate struct {
	Name        Optional[string] `json:"name"`
	Description Optional[string] `json:"description"`
}

// AssetMetadata retrieves an asset's metadata values in a given view.
func (s *MetadataService) AssetMetadata(ctx context.Context, assetID, viewID string) (*Result[MetadataValues], error) {
	return doRequest[MetadataValues](ctx, s.tr, http.MethodGet, s.path("assets/%s/views/%s/", assetID, viewID), nil, nil)
}

// PutAssetMetadata replaces an asset's metadata values in a given view.
func (s *MetadataService) PutAssetMetadata(ctx context.Context, assetID, viewID string, body any) (*Result[MetadataValues], error) {
	return doRequest[MetadataValues](ctx, s.tr, http.MethodPut, s.path("assets/%s/views/%s/", assetID, viewID), body, nil)
}

// Views retrieves a single page of metadata views.
func (s *MetadataService) Views(ctx context.Context, params url.Values) (*Result[Page[MetadataView]], error) {
	return doRequest[Page[MetadataView]](ctx, s.tr, http.MethodGet, s.path("views/"), nil, params)
}

// GetView retrieves a metadata view by id.
func (s *MetadataService) GetView(ctx context.Context, viewID string) (*Result[MetadataView], error) {
	return doRequest[MetadataView](ctx, s.tr, http.MethodGet, s.path("views/%s/", viewID), nil, nil)
}

// CreateView creates a metadata view.
func (s *MetadataService) CreateView(ctx context.Context, body any) (*Result[MetadataView], error) {
	return doRequest[MetadataView](ctx, s.tr, http.MethodPost, s.path("views/"), body, nil)
}

// UpdateView partially updates a metadata view.
func (s *MetadataService) UpdateView(ctx context.Context, viewID string, body any) (*Result[MetadataView], error) {
	return doRequest[MetadataView](ctx, s.tr, http.MethodPatch, s.path("views/%s/", viewID), body, nil)
}

// DeleteView removes a metadata view.
func (s *MetadataService) DeleteView(ctx context.Context, viewID string) (*RawResponse, error) {
	return doNoContent(ctx, s.tr, http.MethodDelete, s.path("views/%s/", viewID), nil, nil)
}

// Fields retrieves a single page of metadata fields.
func (s *MetadataService) Fields(ctx context.Context, params url.Values) (*Result[Page[MetadataField]], error) {
	return doRequest[Page[MetadataField]](ctx, s.tr, http.MethodGet, s.path("fields/"), nil, params)
}

// FieldsAll retrieves every metadata field as one virtual page.
func (s *MetadataService) FieldsAll(ctx context.Context, filters url.Values) (*Page[MetadataField], error) {
	return CollectAll(ctx, s.pages, s.logger,
		func(f MetadataField) time.Time { return f.DateCreated },
		func(ctx context.Context, params url.Values) (*Page[MetadataField], error) {
			res, err := s.Fields(ctx, mergeValues(filters, params))
			if err != nil {
				return nil, err
			}
			if err := res.Raw.Err(); err != nil {
				return nil, err
			}
			return res.Data, nil
		})
}
