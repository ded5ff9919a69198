package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/StaffDesk-io/staffdesk/internal/models"
)

type contextKey string

const tokenContextKey contextKey = "token"

// TokenAuthMiddleware rejects requests that do not present a valid,
// non-revoked bearer token, and stores the resolved token record in the
// request context.
func (api *Api) TokenAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			respondMessage(w, http.StatusUnauthorized, "Unauthenticated.")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			respondMessage(w, http.StatusUnauthorized, "Unauthenticated.")
			return
		}

		token, err := api.Auth.ValidateToken(parts[1])
		if err != nil {
			respondMessage(w, http.StatusUnauthorized, "Unauthenticated.")
			return
		}

		ctx := context.WithValue(r.Context(), tokenContextKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// tokenFromContext retrieves the authenticated token record from the context
func tokenFromContext(ctx context.Context) (*models.Token, bool) {
	t, ok := ctx.Value(tokenContextKey).(*models.Token)
	return t, ok
}
