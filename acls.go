package iconik

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// ACLsService exposes the access-control endpoints under API/acls/v1/.
type ACLsService struct {
	service
}

// AllowedPermissions is the set of ACL permissions iconik accepts.
// Anything else is rejected locally before a request is made.
var AllowedPermissions = []string{"read", "write", "delete", "change-acl"}

// ACL is the access-control payload for one object and one grantee.
type ACL struct {
	ObjectID     string    `json:"object_id"`
	ObjectType   string    `json:"object_type"`
	GroupID      string    `json:"group_id,omitempty"`
	UserID       string    `json:"user_id,omitempty"`
	Permissions  []string  `json:"permissions"`
	DateCreated  time.Time `json:"date_created"`
	DateModified time.Time `json:"date_modified"`
}

// ACLBulkDelete is the request payload for removing ACLs from many
// objects at once.
type ACLBulkDelete struct {
	ObjectKeys []string `json:"object_keys"`
	GroupIDs   []string `json:"group_ids,omitempty"`
	UserIDs    []string `json:"user_ids,omitempty"`
}

func validatePermissions(permissions []string) error {
	for _, p := range permissions {
		valid := false
		for _, allowed := range AllowedPermissions {
			if p == allowed {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("%w: permission %q not in allowed set %v", ErrInvalidArgument, p, AllowedPermissions)
		}
	}
	return nil
}

// ApplyGroupACL grants permissions on an object to a group. Permissions
// are validated locally against AllowedPermissions before any request.
func (s *ACLsService) ApplyGroupACL(ctx context.Context, objectType, objectID, groupID string, permissions []string) (*Result[ACL], error) {
	if err := validatePermissions(permissions); err != nil {
		return nil, err
	}
	body := map[string]any{"permissions": permissions}
	return doRequest[ACL](ctx, s.tr, http.MethodPut, s.path("acl/%s/%s/groups/%s/", objectType, objectID, groupID), body, nil)
}

// ApplyUserACL grants permissions on an object to a user.
func (s *ACLsService) ApplyUserACL(ctx context.Context, objectType, objectID, userID string, permissions []string) (*Result[ACL], error) {
	if err := validatePermissions(permissions); err != nil {
		return nil, err
	}
	body := map[string]any{"permissions": permissions}
	return doRequest[ACL](ctx, s.tr, http.MethodPut, s.path("acl/%s/%s/users/%s/", objectType, objectID, userID), body, nil)
}

// CheckAccess reports the caller's effective permission on an object. A
// 2xx means access is granted; the caller branches on the raw status.
func (s *ACLsService) CheckAccess(ctx context.Context, objectType, objectID, permission string) (*RawResponse, error) {
	if err := validatePermissions([]string{permission}); err != nil {
		return nil, err
	}
	return doNoContent(ctx, s.tr, http.MethodGet, s.path("acl/%s/%s/permissions/%s/", objectType, objectID, permission), nil, nil)
}

// BulkDelete removes ACLs from many objects in one call. This is one of
// the rare DELETE endpoints that carries a body; typed bodies are dumped
// with the same policy as POST.
func (s *ACLsService) BulkDelete(ctx context.Context, objectType string, body any) (*RawResponse, error) {
	return doNoContent(ctx, s.tr, http.MethodDelete, s.path("acl/%s/", objectType), body, nil)
}
