package api

import (
	"context"
	"fmt"
)

// TokenPair is the JWT pair the token endpoint issues.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// RegisteredUser acknowledges a created account.
type RegisteredUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// AuthClient talks to the token and registration endpoints. These are the
// only routes that work without a session.
type AuthClient struct {
	t *Transport
}

// NewAuthClient wraps the transport for the auth endpoints.
func NewAuthClient(t *Transport) *AuthClient {
	return &AuthClient{t: t}
}

// Obtain exchanges credentials for a token pair. Invalid credentials come
// back as ErrUnauthorized.
func (c *AuthClient) Obtain(ctx context.Context, username, password string) (TokenPair, error) {
	var pair TokenPair
	body := map[string]string{"username": username, "password": password}
	if err := c.t.Post(ctx, "/auth/token/", body, &pair); err != nil {
		return TokenPair{}, fmt.Errorf("obtaining token: %w", err)
	}
	return pair, nil
}

// Refresh exchanges a refresh token for a fresh access token.
func (c *AuthClient) Refresh(ctx context.Context, refresh string) (TokenPair, error) {
	var pair TokenPair
	body := map[string]string{"refresh": refresh}
	if err := c.t.Post(ctx, "/auth/refresh/", body, &pair); err != nil {
		return TokenPair{}, fmt.Errorf("refreshing token: %w", err)
	}
	if pair.Refresh == "" {
		pair.Refresh = refresh
	}
	return pair, nil
}

// Register creates an account. Server-side validation failures surface as a
// field-level *Error so callers can show them next to the offending input.
func (c *AuthClient) Register(ctx context.Context, username, password string) (RegisteredUser, error) {
	var user RegisteredUser
	body := map[string]string{"username": username, "password": password}
	if err := c.t.Post(ctx, "/register/", body, &user); err != nil {
		return RegisteredUser{}, fmt.Errorf("registering user: %w", err)
	}
	return user, nil
}
