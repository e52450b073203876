package middleware

import (
	"net/http"

	"github.com/arjunkrish/pharmapos-terminal/api/responses"
	"github.com/arjunkrish/pharmapos-terminal/internal/session"
	pkgerrors "github.com/arjunkrish/pharmapos-terminal/pkg/errors"
	"github.com/arjunkrish/pharmapos-terminal/pkg/logger"
)

// Auth rejects requests while no operator is signed in and stamps the actor
// identity onto the context for the handlers behind it.
func Auth(sessions *session.Store, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := sessions.Current()
			if user == nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in required"))
				return
			}

			ctx := WithActor(r.Context(), user.ID, user.Username, user.Role)
			if logg != nil {
				ctx = logg.WithUserID(ctx, user.Username)
				ctx = logg.WithActorRole(ctx, user.Role.String())
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
