package iconik

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// StatsService exposes the statistics endpoints under API/stats/v1/.
type StatsService struct {
	service
}

// AssetUsage is one asset-usage record.
type AssetUsage struct {
	AssetID     string    `json:"asset_id" validate:"required"`
	UserID      string    `json:"user_id"`
	Operation   string    `json:"operation"`
	SystemName  string    `json:"system_name"`
	DateCreated time.Time `json:"date_created"`
}

// AuditEntry is one user-audit record.
type AuditEntry struct {
	ID          string         `json:"id" validate:"required"`
	UserID      string         `json:"user_id"`
	Operation   string         `json:"operation"`
	ObjectID    string         `json:"object_id"`
	ObjectType  string         `json:"object_type"`
	Payload     map[string]any `json:"payload"`
	DateCreated time.Time      `json:"date_created"`
}

// BillingStats summarises workspace consumption.
type BillingStats struct {
	AssetCount   int64 `json:"asset_count" validate:"min=0"`
	StorageBytes int64 `json:"storage_bytes" validate:"min=0"`
	UserCount    int64 `json:"user_count" validate:"min=0"`
}

// AssetUsage retrieves a single page of asset-usage records.
func (s *StatsService) AssetUsage(ctx context.Context, params url.Values) (*Result[Page[AssetUsage]], error) {
	return doRequest[Page[AssetUsage]](ctx, s.tr, http.MethodGet, s.path("asset_usage/"), nil, params)
}

// AssetUsageAll retrieves every asset-usage record as one virtual page.
// Usage history commonly exceeds the search window, so this traversal
// leans on date continuation more than any other.
func (s *StatsService) AssetUsageAll(ctx context.Context, filters url.Values) (*Page[AssetUsage], error) {
	return CollectAll(ctx, s.pages, s.logger,
		func(u AssetUsage) time.Time { return u.DateCreated },
		func(ctx context.Context, params url.Values) (*Page[AssetUsage], error) {
			res, err := s.AssetUsage(ctx, mergeValues(filters, params))
			if err != nil {
				return nil, err
			}
			if err := res.Raw.Err(); err != nil {
				return nil, err
			}
			return res.Data, nil
		})
}

// UserAudit retrieves a single page of user-audit records.
func (s *StatsService) UserAudit(ctx context.Context, params url.Values) (*Result[Page[AuditEntry]], error) {
	return doRequest[Page[AuditEntry]](ctx, s.tr, http.MethodGet, s.path("user_audit/"), nil, params)
}

// Billing retrieves the workspace billing statistics.
func (s *StatsService) Billing(ctx context.Context) (*Result[BillingStats], error) {
	return doRequest[BillingStats](ctx, s.tr, http.MethodGet, s.path("billing/"), nil, nil)
}
