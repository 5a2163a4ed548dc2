package iconik

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// UsersNotificationsService exposes the per-user notification endpoints
// under API/users-notifications/v1/.
type UsersNotificationsService struct {
	service
}

// NotificationSettings controls how the current user receives events.
type NotificationSettings struct {
	UserID        string          `json:"user_id"`
	EmailEnabled  bool            `json:"email_enabled"`
	PushEnabled   bool            `json:"push_enabled"`
	DigestEnabled bool            `json:"digest_enabled"`
	EventTypes    map[string]bool `json:"event_types"`
}

// NotificationSettingsUpdate is the request payload for replacing the
// current user's notification settings.
type NotificationSettingsUpdate struct {
	EmailEnabled  Optional[bool] `json:"email_enabled"`
	PushEnabled   Optional[bool] `json:"push_enabled"`
	DigestEnabled Optional[bool] `json:"digest_enabled"`
}

// UserNotification is one notification addressed to the current user.
type UserNotification struct {
	ID          string    `json:"id" validate:"required"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	Read        bool      `json:"read"`
	DateCreated time.Time `json:"date_created"`
}

// Settings retrieves the current user's notification settings.
func (s *UsersNotificationsService) Settings(ctx context.Context) (*Result[NotificationSettings], error) {
	return doRequest[NotificationSettings](ctx, s.tr, http.MethodGet, s.path("notification_settings/"), nil, nil)
}

// UpdateSettings replaces the current user's notification settings.
func (s *UsersNotificationsService) UpdateSettings(ctx context.Context, body any) (*Result[NotificationSettings], error) {
	return doRequest[NotificationSettings](ctx, s.tr, http.MethodPut, s.path("notification_settings/"), body, nil)
}

// List retrieves a single page of the current user's notifications.
func (s *UsersNotificationsService) List(ctx context.Context, params url.Values) (*Result[Page[UserNotification]], error) {
	return doRequest[Page[UserNotification]](ctx, s.tr, http.MethodGet, s.path("notifications/"), nil, params)
}

// ListAll retrieves every notification for the current user as one
// virtual page.
func (s *UsersNotificationsService) ListAll(ctx context.Context, filters url.Values) (*Page[UserNotification], error) {
	return CollectAll(ctx, s.pages, s.logger,
		func(n UserNotification) time.Time { return n.DateCreated },
		func(ctx context.Context, params url.Values) (*Page[UserNotification], error) {
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

// MarkRead marks a notification as read.
func (s *UsersNotificationsService) MarkRead(ctx context.Context, notificationID string) (*Result[UserNotification], error) {
	body := map[string]any{"read": true}
	return doRequest[UserNotification](ctx, s.tr, http.MethodPatch, s.path("notifications/%s/", notificationID), body, nil)
}
