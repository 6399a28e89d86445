package handlers

import (
	"context"
	"net/http"

	"github.com/members-only/clubhouse/internal/logging"
	"github.com/members-only/clubhouse/types"
)

type contextKey string

const contextPrincipalKey contextKey = "principal"

// PrincipalResolver resolves a session identifier to a fresh user record.
// Defined as a subset of services.AuthService.
type PrincipalResolver interface {
	PrincipalFromSession(ctx context.Context, sid string) (*types.User, error)
}

// ResolvePrincipal reads the session cookie, resolves it to a principal, and
// attaches the principal to the request context. Requests without a valid
// session pass through anonymous; only store failures stop the request.
func ResolvePrincipal(resolver PrincipalResolver, cookieName string, log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			principal, err := resolver.PrincipalFromSession(r.Context(), cookie.Value)
			if err != nil {
				log.Error(r.Context(), "failed to resolve session", "error", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
			if principal == nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := ContextWithPrincipal(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuthenticated redirects anonymous requests to the home page.
func RequireAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if PrincipalFromContext(r.Context()) == nil {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// PrincipalFromContext returns the authenticated principal attached to the
// request, or nil for anonymous requests.
func PrincipalFromContext(ctx context.Context) *types.User {
	principal, _ := ctx.Value(contextPrincipalKey).(*types.User)
	return principal
}

// ContextWithPrincipal attaches a principal to a context. Used by the
// middleware and by tests.
func ContextWithPrincipal(ctx context.Context, principal *types.User) context.Context {
	return context.WithValue(ctx, contextPrincipalKey, principal)
}
