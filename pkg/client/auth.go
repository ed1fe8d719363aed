package client

import (
	"context"
	"net/http"
)

// AuthService calls /api/auth
type AuthService struct {
	client *Client
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

// Login exchanges credentials for a session cookie, which the client keeps
func (s *AuthService) Login(ctx context.Context, email, password string) error {
	_, err := do[okResponse](ctx, s.client, http.MethodPost, "/api/auth/login", loginRequest{
		Email:    email,
		Password: password,
	})
	return err
}

// Logout clears the session cookie on the server and locally
func (s *AuthService) Logout(ctx context.Context) error {
	_, err := do[okResponse](ctx, s.client, http.MethodPost, "/api/auth/logout", struct{}{})
	return err
}

// Me returns the identity carried by the current session
func (s *AuthService) Me(ctx context.Context) (*Identity, error) {
	return do[*Identity](ctx, s.client, http.MethodGet, "/api/auth/me", nil)
}
