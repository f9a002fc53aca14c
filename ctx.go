package auth

import (
	"context"
)

var identityCtxKey = &contextKey{"identity"}

type contextKey struct {
	name string
}

// WithIdentity sets the Identity in the given context. The filter calls
// this per request; the value never outlives the request it was set for.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey, identity)
}

// IdentityFromContext finds the identity from the context.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityCtxKey).(Identity)
	return identity, ok
}
