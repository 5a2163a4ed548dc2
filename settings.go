package iconik

import (
	"context"
	"net/http"
)

// SettingsService exposes the settings endpoints under API/settings/v1/.
type SettingsService struct {
	service
}

// UserSettings is the merged settings payload for the current user.
type UserSettings struct {
	UserID           string         `json:"user_id"`
	DateFormat       string         `json:"date_format"`
	TimeFormat       string         `json:"time_format"`
	FirstDayOfWeek   int            `json:"first_day_of_week" validate:"min=0,max=6"`
	DefaultUploadID  string         `json:"default_upload_storage_id"`
	SearchViewID     string         `json:"search_default_view_id"`
	HideEmailDomains []string       `json:"hide_email_domains"`
	Extra            map[string]any `json:"extra"`
}

// GroupSettings is the settings payload for one group.
type GroupSettings struct {
	GroupID         string         `json:"group_id"`
	DateFormat      string         `json:"date_format"`
	TimeFormat      string         `json:"time_format"`
	DefaultUploadID string         `json:"default_upload_storage_id"`
	Extra           map[string]any `json:"extra"`
}

// GroupSettingsUpdate is the request payload for replacing group settings.
type GroupSettingsUpdate struct {
	DateFormat      Optional[string] `json:"date_format"`
	TimeFormat      Optional[string] `json:"time_format"`
	DefaultUploadID Optional[string] `json:"default_upload_storage_id"`
}

// User retrieves the merged settings for the current user.
func (s *SettingsService) User(ctx context.Context) (*Result[UserSettings], error) {
	return doRequest[UserSettings](ctx, s.tr, http.MethodGet, s.path("user/"), nil, nil)
}

// Group retrieves the settings of a group.
func (s *SettingsService) Group(ctx context.Context, groupID string) (*Result[GroupSettings], error) {
	return doRequest[GroupSettings](ctx, s.tr, http.MethodGet, s.path("group/%s/", groupID), nil, nil)
}

// UpdateGroup replaces the settings of a group.
func (s *SettingsService) UpdateGroup(ctx context.Context, groupID string, body any) (*Result[GroupSettings], error) {
	return doRequest[GroupSettings](ctx, s.tr, http.MethodPut, s.path("group/%s/", groupID), body, nil)
}

// SetLogo uploads a workspace logo as multipart form data.
func (s *SettingsService) SetLogo(ctx context.Context, fileName string, image []byte) (*RawResponse, error) {
	return s.tr.Send(ctx, http.MethodPost, s.path("logo/"),
		WithMultipart(nil, "logo", fileName, image))
}
