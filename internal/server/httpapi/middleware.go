package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/authkeep/authkeep/internal/common"
)

type ctxKey string

const subjectKey ctxKey = "subject"

// Subject returns the authenticated username stored by RequireAuth, or an
// empty string outside a protected route.
func Subject(ctx context.Context) string {
	s, _ := ctx.Value(subjectKey).(string)
	return s
}

// RequireAuth admits only requests carrying a valid bearer token and records
// the token's subject in the request context for downstream handlers.
//
// A missing or malformed Authorization header is 401; a header that carries a
// token failing verification, whatever the reason, is 403.
func (a *API) RequireAuth(sensitive http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject, err := a.users.Authorize(r.Context(), r.Header.Get("Authorization"))
		if err != nil {
			if errors.Is(err, common.ErrUnauthenticated) {
				writeError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}
			writeError(w, http.StatusForbidden, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), subjectKey, subject)
		sensitive.ServeHTTP(w, r.WithContext(ctx))
	})
}
