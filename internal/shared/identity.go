// Package shared carries the request identity and role helpers used across modules.
package shared

import (
	"context"
	"strings"
)

// Role names as stored on user accounts and embedded in access tokens.
const (
	RoleSuperAdmin = "Super Admin"
	RoleAdmin      = "Admin"
)

// Identity is the resolved caller attached to a request by the access gate.
type Identity struct {
	UserID int64
	Role   string
	Roles  []string
}

// NormalizeRole strips all whitespace and lower-cases a role name so that
// "Super Admin", "superadmin" and "SUPER ADMIN " compare equal.
func NormalizeRole(role string) string {
	return strings.ToLower(strings.Join(strings.Fields(role), ""))
}

// HasAny reports whether the identity holds at least one of the allowed roles.
func (id Identity) HasAny(allowed ...string) bool {
	for _, a := range allowed {
		want := NormalizeRole(a)
		for _, r := range id.Roles {
			if NormalizeRole(r) == want {
				return true
			}
		}
	}
	return false
}

// IsSuperAdmin reports whether any held role is the super admin role.
func (id Identity) IsSuperAdmin() bool {
	return id.HasAny(RoleSuperAdmin)
}

type contextKey struct{ name string }

var identityKey = contextKey{"identity"}

// ContextWithIdentity stores the identity on the request context.
func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext returns the identity attached by the access gate, if any.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}
