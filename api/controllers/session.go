package controllers

import (
	"net/http"

	"github.com/arjunkrish/pharmapos-terminal/api/middleware"
	"github.com/arjunkrish/pharmapos-terminal/api/responses"
	"github.com/arjunkrish/pharmapos-terminal/api/validators"
	"github.com/arjunkrish/pharmapos-terminal/internal/session"
	"github.com/arjunkrish/pharmapos-terminal/pkg/enums"
	pkgerrors "github.com/arjunkrish/pharmapos-terminal/pkg/errors"
	"github.com/arjunkrish/pharmapos-terminal/pkg/logger"
)

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func toSessionResponse(user *session.User) sessionResponse {
	return sessionResponse{
		UserID:   user.ID,
		Username: user.Username,
		FullName: user.FullName,
		Email:    user.Email,
		Role:     user.Role.String(),
	}
}

// SessionLogin signs the operator in against the pharmacy backend.
func SessionLogin(sessions *session.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := sessions.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toSessionResponse(user))
	}
}

// SessionLogout signs the operator out. The response is always a success;
// backend trouble during logout never traps the operator in a session.
func SessionLogout(sessions *session.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessions.Logout(r.Context())
		responses.WriteSuccess(w, map[string]string{"status": "logged_out"})
	}
}

// SessionMe returns the signed-in operator.
func SessionMe(sessions *session.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := sessions.Current()
		if user == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in required"))
			return
		}
		responses.WriteSuccess(w, toSessionResponse(user))
	}
}

type navSection struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Path  string `json:"path"`
}

// navTable maps each screen to the roles allowed in. An empty role list means
// any signed-in operator.
var navTable = []struct {
	section navSection
	roles   []enums.Role
}{
	{navSection{ID: "billing", Label: "Billing", Path: "/billing"}, []enums.Role{enums.RoleCashier}},
	{navSection{ID: "history", Label: "Bill History", Path: "/history"}, []enums.Role{enums.RoleCashier}},
	{navSection{ID: "returns", Label: "Returns", Path: "/returns"}, []enums.Role{enums.RoleCashier}},
	{navSection{ID: "inventory", Label: "Inventory", Path: "/inventory"}, []enums.Role{enums.RoleStockKeeper, enums.RoleStockMonitor}},
	{navSection{ID: "reports", Label: "Reports", Path: "/reports"}, []enums.Role{enums.RoleAnalyst, enums.RoleManager}},
	{navSection{ID: "users", Label: "Users", Path: "/users"}, []enums.Role{enums.RoleAdmin}},
	{navSection{ID: "audit", Label: "Audit Trail", Path: "/audit"}, []enums.Role{enums.RoleAdmin}},
}

// SessionNav returns the screens the signed-in operator may open.
func SessionNav(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role := middleware.RoleFromContext(r.Context())
		sections := make([]navSection, 0, len(navTable))
		for _, entry := range navTable {
			if enums.RoleSatisfies(role, entry.roles) {
				sections = append(sections, entry.section)
			}
		}
		responses.WriteSuccess(w, sections)
	}
}
