package auth

import "context"

// Identity is the authenticated caller of a request.
type Identity struct {
	Username string
}

type ctxKey string

const identityKey ctxKey = "identity"

// WithIdentity returns ctx carrying id. A nil id leaves the request anonymous.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	if id == nil {
		return ctx
	}
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext returns the caller stored by WithIdentity, or nil.
func IdentityFromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityKey).(*Identity)
	return id
}
