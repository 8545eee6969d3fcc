package auth

import (
	"net/http"
	"strings"

	"github.com/jfscargo/backoffice/internal/platform/httpx"
	"github.com/jfscargo/backoffice/internal/shared"
)

// Gate authenticates bearer tokens and attaches the caller identity to the
// request context.
type Gate struct {
	secret string
}

// NewGate builds a Gate verifying tokens against the given secret.
func NewGate(secret string) *Gate {
	return &Gate{secret: secret}
}

// RequireAuth rejects requests without a valid bearer token.
func (g *Gate) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || raw == "" {
			httpx.Error(w, http.StatusUnauthorized, "authentication required")
			return
		}
		claims, err := ParseToken(g.secret, raw)
		if err != nil {
			httpx.Error(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		id := shared.Identity{UserID: claims.UserID, Role: claims.Role, Roles: claims.Roles}
		if len(id.Roles) == 0 && id.Role != "" {
			id.Roles = []string{id.Role}
		}
		next.ServeHTTP(w, r.WithContext(shared.ContextWithIdentity(r.Context(), id)))
	})
}

// RequireRoles rejects authenticated callers that hold none of the allowed
// roles. Mount after RequireAuth.
func RequireRoles(allowed ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := shared.IdentityFromContext(r.Context())
			if !ok {
				httpx.Error(w, http.StatusUnauthorized, "authentication required")
				return
			}
			if !id.HasAny(allowed...) {
				httpx.Error(w, http.StatusForbidden, "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
