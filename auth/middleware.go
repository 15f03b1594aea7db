package auth

import (
	"net/http"
	"strings"

	"github.com/user/grantflow-go/apperror"
)

// Middleware returns the authentication guard for protected route groups.
// It extracts the bearer token from the Authorization header, verifies it,
// and stores the asserted identity in the request context. Any verification
// failure ends the request with a 401; handlers behind the guard can assume
// IdentityFromContext succeeds.
func Middleware(tokens *TokenService) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				WriteError(w, r, apperror.NewAuthError("authorization header is missing", nil))
				return
			}

			// Expected format: "Bearer {token}".
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				WriteError(w, r, apperror.NewAuthError("authorization header format must be Bearer {token}", nil))
				return
			}

			identity, err := tokens.VerifyAccessToken(parts[1])
			if err != nil {
				WriteError(w, r, err)
				return
			}

			ctx := NewContextWithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
