package auth

import "context"

// contextKey is a private type so this package's context values cannot
// collide with keys from other packages.
type contextKey string

const (
	userContextKey  contextKey = "auth_user"
	tokenContextKey contextKey = "auth_token_id"
)

// NewContextWithUser returns a context carrying the authenticated user and
// the id of the token that authenticated this request. The token id is what
// lets logout revoke exactly the credential that was presented.
func NewContextWithUser(ctx context.Context, user *User, tokenID int64) context.Context {
	ctx = context.WithValue(ctx, userContextKey, user)
	return context.WithValue(ctx, tokenContextKey, tokenID)
}

// UserFromContext extracts the authenticated user, if any.
func UserFromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(userContextKey).(*User)
	return user, ok
}

// TokenIDFromContext extracts the id of the presenting token, if any.
func TokenIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(tokenContextKey).(int64)
	return id, ok
}
