package middleware

import (
	"net/http"

	"github.com/arjunkrish/pharmapos-terminal/api/responses"
	"github.com/arjunkrish/pharmapos-terminal/pkg/enums"
	pkgerrors "github.com/arjunkrish/pharmapos-terminal/pkg/errors"
	"github.com/arjunkrish/pharmapos-terminal/pkg/logger"
)

// RequireAnyRole admits the request when the actor holds any of the given
// roles. ADMIN always passes; an empty list admits any signed-in operator.
func RequireAnyRole(logg *logger.Logger, roles ...enums.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := RoleFromContext(r.Context())
			if !enums.RoleSatisfies(actor, roles) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "this screen is not available to your role"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
