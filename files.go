package iconik

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// FilesService exposes the file and file-set endpoints under API/files/v1/.
type FilesService struct {
	service
}

// File is the file payload.
type File struct {
	ID            string    `json:"id" validate:"required"`
	AssetID       string    `json:"asset_id"`
	FileSetID     string    `json:"file_set_id"`
	StorageID     string    `json:"storage_id"`
	Name          string    `json:"name"`
	OriginalName  string    `json:"original_name"`
	DirectoryPath string    `json:"directory_path"`
	Size          int64     `json:"size" validate:"min=0"`
	Status        string    `json:"status"`
	DateCreated   time.Time `json:"date_created"`
}

// FileSet groups the files that make up one format of an asset.
type FileSet struct {
	ID          string    `json:"id" validate:"required"`
	AssetID     string    `json:"asset_id"`
	FormatID    string    `json:"format_id"`
	StorageID   string    `json:"storage_id"`
	Name        string    `json:"name"`
	BasePath    string    `json:"base_path"`
	DateCreated time.Time `json:"date_created"`
}

// FileCreate is the request payload for registering a file on a storage.
type FileCreate struct {
	StorageID     string           `json:"storage_id"`
	FileSetID     string           `json:"file_set_id"`
	Name          string           `json:"name"`
	DirectoryPath Optional[string] `json:"directory_path"`
	Size          Optional[int64]  `json:"size"`
	Type          string           `json:"type" default:"FILE"`
}

// FileUpdate is the request payload for partial file updates.
type FileUpdate struct {
	Name          Optional[string] `json:"name"`
	DirectoryPath Optional[string] `json:"directory_path"`
	Status        Optional[string] `json:"status"`
}

// AssetFiles retrieves a single page of an asset's files.
func (s *FilesService) AssetFiles(ctx context.Context, assetID string, params url.Values) (*Result[Page[File]], error) {
	return doRequest[Page[File]](ctx, s.tr, http.MethodGet, s.path("assets/%s/files/", assetID), nil, params)
}

// AssetFilesAll retrieves every file of an asset as one virtual page.
func (s *FilesService) AssetFilesAll(ctx context.Context, assetID string, filters url.Values) (*Page[File], error) {
	return CollectAll(ctx, s.pages, s.logger,
		func(f File) time.Time { return f.DateCreated },
		func(ctx context.Context, params url.Values) (*Page[File], error) {
			res, err := s.AssetFiles(ctx, assetID, mergeValues(filters, params))
			if err != nil {
				return nil, err
			}
			if err := res.Raw.Err(); err != nil {
				return nil, err
			}
			return res.Data, nil
		})
}

// AssetFileSets retrieves a single page of an asset's file sets.
func (s *FilesService) AssetFileSets(ctx context.Context, assetID string, params url.Values) (*Result[Page[FileSet]], error) {
	return doRequest[Page[FileSet]](ctx, s.tr, http.MethodGet, s.path("assets/%s/file_sets/", assetID), nil, params)
}

// CreateFile registers a file for an asset.
func (s *FilesService) CreateFile(ctx context.Context, assetID string, body any) (*Result[File], error) {
	return doRequest[File](ctx, s.tr, http.MethodPost, s.path("assets/%s/files/", assetID), body, nil)
}

// UpdateFile partially updates a file record.
func (s *FilesService) UpdateFile(ctx context.Context, assetID, fileID string, body any) (*Result[File], error) {
	return doRequest[File](ctx, s.tr, http.MethodPatch, s.path("assets/%s/files/%s/", assetID, fileID), body, nil)
}

// DeleteFileSet removes a file set and its files.
func (s *FilesService) DeleteFileSet(ctx context.Context, assetID, fileSetID string) (*RawResponse, error) {
	return doNoContent(ctx, s.tr, http.MethodDelete, s.path("assets/%s/file_sets/%s/", assetID, fileSetID), nil, nil)
}

// UploadKeyframe uploads raw image bytes as an asset keyframe. The bytes
// bypass JSON encoding entirely; contentType must name the image format,
// e.g. "image/jpeg".
func (s *FilesService) UploadKeyframe(ctx context.Context, assetID string, data []byte, contentType string) (*RawResponse, error) {
	return s.tr.Send(ctx, http.MethodPost, s.path("assets/%s/keyframes/", assetID),
		WithRawBody(data, contentType))
}
