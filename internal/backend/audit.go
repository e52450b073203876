package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

const auditGroup = "audit"

// ListAuditLogs returns the full audit trail, newest first.
func (c *Client) ListAuditLogs(ctx context.Context) ([]AuditLog, error) {
	var out []AuditLog
	if err := c.doJSON(ctx, auditGroup, http.MethodGet, "/admin/audit-logs", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// LoginLogoutLogs returns session-related audit entries only.
func (c *Client) LoginLogoutLogs(ctx context.Context) ([]AuditLog, error) {
	var out []AuditLog
	if err := c.doJSON(ctx, auditGroup, http.MethodGet, "/admin/audit-logs/login-logout", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AuditLogsByUser returns the audit trail of one account.
func (c *Client) AuditLogsByUser(ctx context.Context, userID int64) ([]AuditLog, error) {
	var out []AuditLog
	path := fmt.Sprintf("/admin/audit-logs/user/%d", userID)
	if err := c.doJSON(ctx, auditGroup, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AuditLogsByDateRange returns audit entries between two instants (ISO-8601).
func (c *Client) AuditLogsByDateRange(ctx context.Context, start, end string) ([]AuditLog, error) {
	query := url.Values{"start": {start}, "end": {end}}
	var out []AuditLog
	if err := c.doJSON(ctx, auditGroup, http.MethodGet, "/admin/audit-logs/date-range", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
