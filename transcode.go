package iconik

import (
	"context"
	"net/http"
)

// TranscodeService exposes the transcode endpoints under API/transcode/v1/.
type TranscodeService struct {
	service
}

// TranscodeRequest is the request payload for queueing a transcode.
type TranscodeRequest struct {
	AssetID      string           `json:"asset_id"`
	Priority     int              `json:"priority" default:"5"`
	ProfileID    Optional[string] `json:"profile_id"`
	SetAsProxy   Optional[bool]   `json:"set_as_proxy"`
	UseStorageID Optional[string] `json:"use_storage_id"`
}

// TranscodeJob is the payload returned when a transcode is queued.
type TranscodeJob struct {
	JobID   string `json:"job_id" validate:"required"`
	AssetID string `json:"asset_id"`
	Status  string `json:"status"`
}

// Queue queues a transcode for an asset.
func (s *TranscodeService) Queue(ctx context.Context, body any) (*Result[TranscodeJob], error) {
	return doRequest[TranscodeJob](ctx, s.tr, http.MethodPost, s.path("transcode/"), body, nil)
}

// CancelJob cancels a queued or running transcode job.
func (s *TranscodeService) CancelJob(ctx context.Context, jobID string) (*RawResponse, error) {
	return doNoContent(ctx, s.tr, http.MethodDelete, s.path("transcode/%s/", jobID), nil, nil)
}
