package auth

import (
	"context"
	"slices"

	"github.com/BulkSecurityGeneratorProject/parking-api/internal/domain"
)

type contextKey string

const principalKey contextKey = "principal"

// Principal is the authenticated actor behind a request. The HTTP boundary
// resolves it once per request and threads it through the context; nothing in
// the core reads a global.
type Principal struct {
	Login       string
	Authorities []string
}

// HasAuthority reports whether the principal carries the given authority.
func (p Principal) HasAuthority(authority string) bool {
	return slices.Contains(p.Authorities, authority)
}

// ContextWithPrincipal returns a new context carrying the authenticated
// principal.
func ContextWithPrincipal(ctx context.Context, p Principal) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFromContext retrieves the authenticated principal from the
// context, if any.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	if ctx == nil {
		return Principal{}, false
	}
	value := ctx.Value(principalKey)
	if value == nil {
		return Principal{}, false
	}
	p, ok := value.(Principal)
	if !ok || p.Login == "" {
		return Principal{}, false
	}
	return p, true
}

// Auditor resolves the identity stamped on audit columns: the authenticated
// principal's login, or the fixed system account when the request carries no
// principal.
func Auditor(ctx context.Context) string {
	if p, ok := PrincipalFromContext(ctx); ok {
		return p.Login
	}
	return domain.SystemAccount
}
