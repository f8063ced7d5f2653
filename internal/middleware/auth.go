package middleware

import (
	"net/http"
	"strings"

	"github.com/BulkSecurityGeneratorProject/parking-api/internal/auth"
	"github.com/BulkSecurityGeneratorProject/parking-api/internal/rest"
)

const bearerPrefix = "Bearer "

// Authenticator resolves the bearer token of each request into the ambient
// principal. Requests without a token pass through anonymously; role checks
// happen per route via RequireAuthority.
type Authenticator struct {
	tokens *auth.TokenProvider
}

// NewAuthenticator creates the authentication middleware.
func NewAuthenticator(tokens *auth.TokenProvider) *Authenticator {
	return &Authenticator{tokens: tokens}
}

// Middleware validates the Authorization header when present and stores the
// resulting principal in the request context.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}
		if !strings.HasPrefix(header, bearerPrefix) {
			rest.WriteJSON(w, http.StatusUnauthorized, rest.ErrorResponse{Message: "invalid authorization header"})
			return
		}
		principal, err := a.tokens.ParseToken(strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			rest.WriteJSON(w, http.StatusUnauthorized, rest.ErrorResponse{Message: "invalid or expired token"})
			return
		}
		next.ServeHTTP(w, r.WithContext(auth.ContextWithPrincipal(r.Context(), principal)))
	})
}

// RequireAuthority guards a route: the principal must be authenticated and
// carry at least one of the given authorities.
func RequireAuthority(authorities ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := auth.PrincipalFromContext(r.Context())
			if !ok {
				rest.WriteJSON(w, http.StatusUnauthorized, rest.ErrorResponse{Message: "authentication required"})
				return
			}
			for _, authority := range authorities {
				if principal.HasAuthority(authority) {
					next.ServeHTTP(w, r)
					return
				}
			}
			rest.WriteJSON(w, http.StatusForbidden, rest.ErrorResponse{Message: "access denied"})
		})
	}
}
