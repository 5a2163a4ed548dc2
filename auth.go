package iconik

import (
	"context"
	"net/http"
	"time"
)

// AuthService exposes the token endpoints under API/auth/v1/.
type AuthService struct {
	service
}

// Token describes an auth token.
type Token struct {
	Token       string    `json:"token" validate:"required"`
	TokenID     string    `json:"id"`
	UserID      string    `json:"user_id"`
	AppID       string    `json:"app_id"`
	ExpiresAt   time.Time `json:"expires_at"`
	DateCreated time.Time `json:"date_created"`
}

// TokenCreate is the request payload for issuing a token.
type TokenCreate struct {
	Email    string          `json:"email"`
	Password string          `json:"password"`
	TTL      Optional[int64] `json:"ttl_seconds"`
}

// Token returns details about the token the client authenticates with.
func (s *AuthService) Token(ctx context.Context) (*Result[Token], error) {
	return doRequest[Token](ctx, s.tr, http.MethodGet, s.path("auth/token/"), nil, nil)
}

// CreateToken issues a new token from credentials.
func (s *AuthService) CreateToken(ctx context.Context, body any) (*Result[Token], error) {
	return doRequest[Token](ctx, s.tr, http.MethodPost, s.path("auth/simple/login/"), body, nil)
}

// DeleteToken revokes a token by id.
func (s *AuthService) DeleteToken(ctx context.Context, tokenID string) (*RawResponse, error) {
	return doNoContent(ctx, s.tr, http.MethodDelete, s.path("auth/token/%s/", tokenID), nil, nil)
}
