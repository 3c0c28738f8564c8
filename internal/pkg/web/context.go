package web

import (
	"context"
	"errors"
	"fmt"
)

type ctxKey int

const (
	payloadCtxKey ctxKey = iota
	csrfTokenCtxKey
)

var ErrNoPayload = errors.New("no decoded payload in context")

// NewContextWithPayload stores a decoded request body for the handlers down the chain.
//
//nolint:ireturn //This function needs to return a context.
func NewContextWithPayload(baseCtx context.Context, payload any) context.Context {
	return context.WithValue(baseCtx, payloadCtxKey, payload)
}

// PayloadFromContext returns the payload stored by NewContextWithPayload.
func PayloadFromContext[T any](ctx context.Context) (T, error) {
	var zero T

	val := ctx.Value(payloadCtxKey)
	if val == nil {
		return zero, ErrNoPayload
	}

	payload, ok := val.(T)
	if !ok {
		return zero, fmt.Errorf("payload: %v is not a %T", val, zero)
	}
	return payload, nil
}

// NewContextWithCSRFToken stores the token that HTML forms must echo back.
//
//nolint:ireturn //This function needs to return a context.
func NewContextWithCSRFToken(baseCtx context.Context, token string) context.Context {
	return context.WithValue(baseCtx, csrfTokenCtxKey, token)
}

// CSRFTokenFromContext returns the CSRF token of the request, or "".
func CSRFTokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(csrfTokenCtxKey).(string)
	return token
}
