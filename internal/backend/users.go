package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

const usersGroup = "users"

// ListUsers returns every account.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var out []User
	if err := c.doJSON(ctx, usersGroup, http.MethodGet, "/admin/users", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ChangeUserPassword sets a new password for an account.
func (c *Client) ChangeUserPassword(ctx context.Context, id int64, req ChangePasswordRequest) error {
	path := fmt.Sprintf("/admin/users/%d/password", id)
	return c.doJSON(ctx, usersGroup, http.MethodPut, path, nil, req, nil)
}

// SetUserActive enables or disables an account.
func (c *Client) SetUserActive(ctx context.Context, id int64, active bool) (*User, error) {
	var out User
	path := fmt.Sprintf("/admin/users/%d/status", id)
	query := url.Values{"active": {strconv.FormatBool(active)}}
	if err := c.doJSON(ctx, usersGroup, http.MethodPut, path, query, struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
