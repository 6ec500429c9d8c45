package authkit

import "context"

type contextKey int

const userContextKey contextKey = iota

// LocalsUserKey is the fiber locals key the guard stores the authenticated
// user under.
const LocalsUserKey = "auth_user"

// WithUser returns a copy of ctx carrying the authenticated user.
func WithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext retrieves the authenticated user, if any.
func UserFromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(userContextKey).(*User)
	return user, ok && user != nil
}
