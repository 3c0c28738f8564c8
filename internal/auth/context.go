// Package auth identifies the user behind a request from a bearer token.
package auth

import (
	"context"
	"errors"
)

var ErrNoUser = errors.New("no user in context")

// User is the authenticated caller.
type User struct {
	ID    string
	Staff bool
}

type ctxKey int

const userCtxKey ctxKey = iota + 1

// ContextWithUser returns a new context containing the authenticated user.
//
//nolint:ireturn // returning context.Context is intentional: it's the standard context type
func ContextWithUser(baseCtx context.Context, u User) context.Context {
	return context.WithValue(baseCtx, userCtxKey, u)
}

// UserFromContext returns the authenticated user, or ErrNoUser for anonymous requests.
func UserFromContext(ctx context.Context) (User, error) {
	u, ok := ctx.Value(userCtxKey).(User)
	if !ok || u.ID == "" {
		return User{}, ErrNoUser
	}
	return u, nil
}
