package backend

import (
	"context"
	"net/http"
)

// Login exchanges credentials for a bearer token and user identity. Invalid
// credentials surface the backend's own message verbatim.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.doJSON(ctx, "auth", http.MethodPost, "/auth/login", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout records the logout event server-side. Callers treat failures as
// advisory; logging out locally never depends on this call.
func (c *Client) Logout(ctx context.Context) error {
	return c.doJSON(ctx, "auth", http.MethodPost, "/auth/logout", nil, struct{}{}, nil)
}
