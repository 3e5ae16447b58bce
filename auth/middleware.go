package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/user/blogapi-go/apperror"
)

// Authenticator resolves a presented bearer token to its owning user. The
// auth Service satisfies this; tests substitute a fake.
type Authenticator interface {
	ResolveToken(ctx context.Context, plaintext string) (*User, *Token, error)
}

// BearerMiddleware authenticates each request independently from the
// Authorization header. There is no server-side session: the token row in
// the database is the only state, so revoking it takes effect on the very
// next request.
func BearerMiddleware(authn Authenticator) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				WriteError(w, r, apperror.NewAuthError("Authorization header is missing", nil))
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				WriteError(w, r, apperror.NewAuthError("Authorization header format must be Bearer {token}", nil))
				return
			}

			user, token, err := authn.ResolveToken(r.Context(), parts[1])
			if err != nil {
				WriteError(w, r, err)
				return
			}

			ctx := NewContextWithUser(r.Context(), user, token.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
