package auth

import "context"

type identityContextKey struct{}

// WithIdentity returns a context carrying the verified identity. Only the
// access-boundary middleware should call this, after a successful Verify.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, identity)
}

// IdentityFromContext extracts the verified identity attached by the
// access-boundary middleware, if any.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityContextKey{}).(Identity)
	return identity, ok
}
