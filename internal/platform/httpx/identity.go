package httpx

import (
	"net/http"

	"github.com/jfscargo/backoffice/internal/shared"
)

// Caller returns the authenticated identity attached by the access gate, or
// writes a 401 and reports false when the request carries none.
func Caller(w http.ResponseWriter, r *http.Request) (shared.Identity, bool) {
	id, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		Error(w, http.StatusUnauthorized, "authentication required")
	}
	return id, ok
}
