package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/arjunkrish/pharmapos-terminal/api/responses"
	"github.com/arjunkrish/pharmapos-terminal/api/validators"
	"github.com/arjunkrish/pharmapos-terminal/internal/backend"
	pkgerrors "github.com/arjunkrish/pharmapos-terminal/pkg/errors"
	"github.com/arjunkrish/pharmapos-terminal/pkg/logger"
)

// AdminService is the account and audit slice of the backend.
type AdminService interface {
	ListUsers(ctx context.Context) ([]backend.User, error)
	ChangeUserPassword(ctx context.Context, id int64, req backend.ChangePasswordRequest) error
	SetUserActive(ctx context.Context, id int64, active bool) (*backend.User, error)
	ListAuditLogs(ctx context.Context) ([]backend.AuditLog, error)
	LoginLogoutLogs(ctx context.Context) ([]backend.AuditLog, error)
	AuditLogsByUser(ctx context.Context, userID int64) ([]backend.AuditLog, error)
	AuditLogsByDateRange(ctx context.Context, start, end string) ([]backend.AuditLog, error)
}

// AdminUsers lists every account.
func AdminUsers(svc AdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := svc.ListUsers(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, out)
	}
}

type changePasswordRequest struct {
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

// AdminChangePassword sets a new password for an account.
func AdminChangePassword(svc AdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "userId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req changePasswordRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.ChangeUserPassword(r.Context(), id, backend.ChangePasswordRequest{NewPassword: req.NewPassword}); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "password_changed"})
	}
}

// AdminSetUserStatus enables or disables an account.
func AdminSetUserStatus(svc AdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "userId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		raw, err := validators.QueryString(r, "active", true)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		active, err := strconv.ParseBool(raw)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "active must be true or false"))
			return
		}
		out, err := svc.SetUserActive(r.Context(), id, active)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, out)
	}
}

// AdminAuditLogs returns the audit trail, filterable by user or date range.
func AdminAuditLogs(svc AdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, _ := validators.QueryString(r, "start", false)
		end, _ := validators.QueryString(r, "end", false)
		userID, err := validators.QueryInt(r, "userId", 0)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var out []backend.AuditLog
		switch {
		case userID > 0:
			out, err = svc.AuditLogsByUser(r.Context(), int64(userID))
		case start != "" && end != "":
			out, err = svc.AuditLogsByDateRange(r.Context(), start, end)
		default:
			out, err = svc.ListAuditLogs(r.Context())
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, out)
	}
}

// AdminSessionAudit returns login and logout events only.
func AdminSessionAudit(svc AdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := svc.LoginLogoutLogs(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, out)
	}
}
