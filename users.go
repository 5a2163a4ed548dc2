package iconik

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// UsersService exposes the user and group endpoints under API/users/v1/.
type UsersService struct {
	service
}

// User is the user payload.
type User struct {
	ID          string    `json:"id" validate:"required"`
	Email       string    `json:"email" validate:"omitempty,email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Status      string    `json:"status"`
	Type        string    `json:"type"`
	IsAdmin     bool      `json:"is_admin"`
	PhotoURL    string    `json:"photo"`
	DateCreated time.Time `json:"date_created"`
}

// DisplayName returns the best available human-readable name.
func (u *User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Email
	}
}

// UserCreate is the request payload for creating a user.
type UserCreate struct {
	Email     string           `json:"email"`
	FirstName Optional[string] `json:"first_name"`
	LastName  Optional[string] `json:"last_name"`
	Password  Optional[string] `json:"password"`
	Type      string           `json:"type" default:"STANDARD"`
}

// UserUpdate is the request payload for partial user updates.
type UserUpdate struct {
	Email     Optional[string] `json:"email"`
	FirstName Optional[string] `json:"first_name"`
	LastName  Optional[string] `json:"last_name"`
	Status    Optional[string] `json:"status"`
	IsAdmin   Optional[bool]   `json:"is_admin"`
}

// Group is the user-group payload.
type Group struct {
	ID          string    `json:"id" validate:"required"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	DateCreated time.Time `json:"date_created"`
}

// GroupCreate is the request payload for creating a group.
type GroupCreate struct {
	Name        string           `json:"name"`
	Description Optional[string] `json:"description"`
}

// Current retrieves the user the auth token belongs to.
func (s *UsersService) Current(ctx context.Context) (*Result[User], error) {
	return doRequest[User](ctx, s.tr, http.MethodGet, s.path("users/current/"), nil, nil)
}

// Get retrieves a user by id.
func (s *UsersService) Get(ctx context.Context, userID string) (*Result[User], error) {
	return doRequest[User](ctx, s.tr, http.MethodGet, s.path("users/%s/", userID), nil, nil)
}

// List retrieves a single page of users.
func (s *UsersService) List(ctx context.Context, params url.Values) (*Result[Page[User]], error) {
	return doRequest[Page[User]](ctx, s.tr, http.MethodGet, s.path("users/"), nil, params)
}

// ListAll retrieves every user as one virtual page.
func (s *UsersService) ListAll(ctx context.Context, filters url.Values) (*Page[User], error) {
	return CollectAll(ctx, s.pages, s.logger,
		func(u User) time.Time { return u.DateCreated },
		func(ctx context.Context, params url.Values) (*Page[User], error) {
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

// Create creates a user.
func (s *UsersService) Create(ctx context.Context, body any) (*Result[User], error) {
	return doRequest[User](ctx, s.tr, http.MethodPost, s.path("users/"), body, nil)
}

// Update partially updates a user.
func (s *UsersService) Update(ctx context.Context, userID string, body any) (*Result[User], error) {
	return doRequest[User](ctx, s.tr, http.MethodPatch, s.path("users/%s/", userID), body, nil)
}

// Delete removes a user.
func (s *UsersService) Delete(ctx context.Context, userID string) (*RawResponse, error) {
	return doNoContent(ctx, s.tr, http.MethodDelete, s.path("users/%s/", userID), nil, nil)
}

// SetPhoto uploads a user photo as multipart form data.
func (s *UsersService) SetPhoto(ctx context.Context, userID, fileName string, image []byte) (*RawResponse, error) {
	return s.tr.Send(ctx, http.MethodPost, s.path("users/%s/photo/", userID),
		WithMultipart(nil, "photo", fileName, image))
}

// GetGroup retrieves a group by id.
func (s *UsersService) GetGroup(ctx context.Context, groupID string) (*Result[Group], error) {
	return doRequest[Group](ctx, s.tr, http.MethodGet, s.path("groups/%s/", groupID), nil, nil)
}

// CreateGroup creates a group.
func (s *UsersService) CreateGroup(ctx context.Context, body any) (*Result[Group], error) {
	return doRequest[Group](ctx, s.tr, http.MethodPost, s.path("groups/"), body, nil)
}

// AddUserToGroup adds a user to a group.
func (s *UsersService) AddUserToGroup(ctx context.Context, groupID, userID string) (*RawResponse, error) {
	return doNoContent(ctx, s.tr, http.MethodPost, s.path("groups/%s/users/%s/", groupID, userID), nil, nil)
}
