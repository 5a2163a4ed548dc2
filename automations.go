package iconik

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// AutomationsService exposes the automation endpoints under
// API/automations/v1/.
type AutomationsService struct {
	service
}

// Automation is the automation payload.
type Automation struct {
	ID           string         `json:"id" validate:"required"`
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	Enabled      bool           `json:"enabled"`
	TriggerType  string         `json:"trigger_type"`
	Conditions   map[string]any `json:"conditions"`
	Actions      []map[string]any `json:"actions"`
	DateCreated  time.Time      `json:"date_created"`
	DateModified time.Time      `json:"date_modified"`
}

// AutomationCreate is the request payload for creating an automation.
type AutomationCreate struct {
	Name        string           `json:"name"`
	Description Optional[string] `json:"description"`
	Enabled     bool             `json:"enabled" default:"true"`
	TriggerType string           `json:"trigger_type"`
}

// AutomationUpdate is the request payload for partial automation updates.
type AutomationUpdate struct {
	Name        Optional[string] `json:"name"`
	Description Optional[string] `json:"description"`
	Enabled     Optional[bool]   `json:"enabled"`
}

// Get retrieves an automation by id.
func (s *AutomationsService) Get(ctx context.Context, automationID string) (*Result[Automation], error) {
	return doRequest[Automation](ctx, s.tr, http.MethodGet, s.path("automations/%s/", automationID), nil, nil)
}

// List retrieves a single page of automations.
func (s *AutomationsService) List(ctx context.Context, params url.Values) (*Result[Page[Automation]], error) {
	return doRequest[Page[Automation]](ctx, s.tr, http.MethodGet, s.path("automations/"), nil, params)
}

// ListAll retrieves every automation as one virtual page.
func (s *AutomationsService) ListAll(ctx context.Context, filters url.Values) (*Page[Automation], error) {
	return CollectAll(ctx, s.pages, s.logger,
		func(a Automation) time.Time { return a.DateCreated },
		func(ctx context.Context, params url.Values) (*Page[Automation], error) {
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

// Create creates an automation.
func (s *AutomationsService) Create(ctx context.Context, body any) (*Result[Automation], error) {
	return doRequest[Automation](ctx, s.tr, http.MethodPost, s.path("automations/"), body, nil)
}

// Update partially updates an automation.
func (s *AutomationsService) Update(ctx context.Context, automationID string, body any) (*Result[Automation], error) {
	return doRequest[Automation](ctx, s.tr, http.MethodPatch, s.path("automations/%s/", automationID), body, nil)
}

// Delete removes an automation.
func (s *AutomationsService) Delete(ctx context.Context, automationID string) (*RawResponse, error) {
	return doNoContent(ctx, s.tr, http.MethodDelete, s.path("automations/%s/", automationID), nil, nil)
}

// Trigger runs an automation immediately.
func (s *AutomationsService) Trigger(ctx context.Context, automationID string) (*Result[Job], error) {
	return doRequest[Job](ctx, s.tr, http.MethodPost, s.path("automations/%s/run/", automationID), nil, nil)
}
