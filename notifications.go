package iconik

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// NotificationsService exposes the notification subscription endpoints
// under API/notifications/v1/.
type NotificationsService struct {
	service
}

// Notification is one delivered notification.
type Notification struct {
	ID          string         `json:"id" validate:"required"`
	Title       string         `json:"title"`
	Message     string         `json:"message"`
	ObjectID    string         `json:"object_id"`
	ObjectType  string         `json:"object_type"`
	EventType   string         `json:"event_type"`
	Context     map[string]any `json:"context"`
	DateCreated time.Time      `json:"date_created"`
}

// Subscription routes matching events to a protocol endpoint.
type Subscription struct {
	ID          string    `json:"id" validate:"required"`
	EventType   string    `json:"event_type"`
	ObjectType  string    `json:"object_type"`
	Protocol    string    `json:"protocol" validate:"omitempty,oneof=EMAIL WEBHOOK PUSH"`
	Address     string    `json:"address"`
	DateCreated time.Time `json:"date_created"`
}

// SubscriptionCreate is the request payload for creating a subscription.
type SubscriptionCreate struct {
	EventType  string           `json:"event_type"`
	ObjectType Optional[string] `json:"object_type"`
	Protocol   string           `json:"protocol" default:"EMAIL"`
	Address    Optional[string] `json:"address"`
}

// List retrieves a single page of notifications.
func (s *NotificationsService) List(ctx context.Context, params url.Values) (*Result[Page[Notification]], error) {
	return doRequest[Page[Notification]](ctx, s.tr, http.MethodGet, s.path("notifications/"), nil, params)
}

// ListAll retrieves every notification as one virtual page.
func (s *NotificationsService) ListAll(ctx context.Context, filters url.Values) (*Page[Notification], error) {
	return CollectAll(ctx, s.pages, s.logger,
		func(n Notification) time.Time { return n.DateCreated },
		func(ctx context.Context, params url.Values) (*Page[Notification], error) {
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

// GetSubscription retrieves a subscription by id.
func (s *NotificationsService) GetSubscription(ctx context.Context, subscriptionID string) (*Result[Subscription], error) {
	return doRequest[Subscription](ctx, s.tr, http.MethodGet, s.path("subscriptions/%s/", subscriptionID), nil, nil)
}

// CreateSubscription creates a subscription.
func (s *NotificationsService) CreateSubscription(ctx context.Context, body any) (*Result[Subscription], error) {
	return doRequest[Subscription](ctx, s.tr, http.MethodPost, s.path("subscriptions/"), body, nil)
}

// DeleteSubscription removes a subscription.
func (s *NotificationsService) DeleteSubscription(ctx context.Context, subscriptionID string) (*RawResponse, error) {
	return doNoContent(ctx, s.tr, http.MethodDelete, s.path("subscriptions/%s/", subscriptionID), nil, nil)
}
