// Package identity carries the request's authentication state from the auth
// gate to resolvers and handlers. Absence of an Identity in the context means
// the request is unauthenticated; the gate itself never rejects.
package identity

import "context"

type ctxKey struct{}

// Identity is the authenticated principal attached to a request.
type Identity struct {
	UserID string
}

// WithIdentity returns a context carrying the given identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext extracts the identity, if any.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}
