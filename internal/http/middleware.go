package http

import (
	"context"
	"net/http"
)

type contextKey int

const (
	userIDKey contextKey = iota + 1
	userRoleKey
)

// SessionAuth lifts the authenticated identity forwarded by the fronting
// session layer out of the request headers and into the context. Requests
// without an identity pass through untouched; individual routes decide
// whether anonymous access is acceptable.
func SessionAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if userID := r.Header.Get("X-User-ID"); userID != "" {
			ctx = context.WithValue(ctx, userIDKey, userID)
		}
		if role := r.Header.Get("X-User-Role"); role != "" {
			ctx = context.WithValue(ctx, userRoleKey, role)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireUser rejects requests that carry no authenticated identity.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userIDFrom(r.Context()) == "" {
			respondFailure(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects authenticated users without the admin role.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userIDFrom(r.Context()) == "" {
			respondFailure(w, http.StatusUnauthorized, "authentication required")
			return
		}
		if roleFrom(r.Context()) != "admin" {
			respondFailure(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func userIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

func roleFrom(ctx context.Context) string {
	role, _ := ctx.Value(userRoleKey).(string)
	return role
}
