package iconik

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// JobsService exposes the job endpoints under API/jobs/v1/.
type JobsService struct {
	service
}

// JobStatus enumerates job lifecycle states.
type JobStatus string

const (
	JobStatusReady      JobStatus = "READY"
	JobStatusStarted    JobStatus = "STARTED"
	JobStatusFinished   JobStatus = "FINISHED"
	JobStatusFailed     JobStatus = "FAILED"
	JobStatusAborted    JobStatus = "ABORTED"
	JobStatusInProgress JobStatus = "IN_PROGRESS"
)

// Job is the job payload.
type Job struct {
	ID               string    `json:"id" validate:"required"`
	Title            string    `json:"title"`
	Type             string    `json:"type"`
	Status           JobStatus `json:"status" validate:"omitempty,oneof=READY STARTED FINISHED FAILED ABORTED IN_PROGRESS"`
	Progress         int       `json:"progress_processed" validate:"min=0,max=100"`
	ObjectID         string    `json:"object_id"`
	ObjectType       string    `json:"object_type"`
	ErrorMessage     string    `json:"error_message"`
	StartedByUser    string    `json:"started_by_user"`
	DateCreated      time.Time `json:"date_created"`
	DateModified     time.Time `json:"date_modified"`
}

// JobCreate is the request payload for creating a job.
type JobCreate struct {
	Title      string           `json:"title"`
	Type       string           `json:"type"`
	ObjectID   Optional[string] `json:"object_id"`
	ObjectType Optional[string] `json:"object_type"`
	Status     JobStatus        `json:"status" default:"READY"`
}

// JobUpdate is the request payload for partial job updates, typically to
// report progress or a terminal status.
type JobUpdate struct {
	Status       Optional[JobStatus] `json:"status"`
	Progress     Optional[int]       `json:"progress_processed"`
	ErrorMessage Optional[string]    `json:"error_message"`
}

// Get retrieves a job by id.
func (s *JobsService) Get(ctx context.Context, jobID string) (*Result[Job], error) {
	return doRequest[Job](ctx, s.tr, http.MethodGet, s.path("jobs/%s/", jobID), nil, nil)
}

// List retrieves a single page of jobs.
func (s *JobsService) List(ctx context.Context, params url.Values) (*Result[Page[Job]], error) {
	return doRequest[Page[Job]](ctx, s.tr, http.MethodGet, s.path("jobs/"), nil, params)
}

// ListAll retrieves every job matching the filters as one virtual page.
func (s *JobsService) ListAll(ctx context.Context, filters url.Values) (*Page[Job], error) {
	return CollectAll(ctx, s.pages, s.logger,
		func(j Job) time.Time { return j.DateCreated },
		func(ctx context.Context, params url.Values) (*Page[Job], error) {
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

// Create creates a job.
func (s *JobsService) Create(ctx context.Context, body any) (*Result[Job], error) {
	return doRequest[Job](ctx, s.tr, http.MethodPost, s.path("jobs/"), body, nil)
}

// Update partially updates a job.
func (s *JobsService) Update(ctx context.Context, jobID string, body any) (*Result[Job], error) {
	return doRequest[Job](ctx, s.tr, http.MethodPatch, s.path("jobs/%s/", jobID), body, nil)
}

// Delete removes a job.
func (s *JobsService) Delete(ctx context.Context, jobID string) (*RawResponse, error) {
	return doNoContent(ctx, s.tr, http.MethodDelete, s.path("jobs/%s/", jobID), nil, nil)
}
