// Package identity carries the resolved acting identity through context.
// Authentication itself is performed by an upstream collaborator; this
// package only transports its result.
package identity

import (
	"context"
	"strings"
)

// Identity is the resolved acting identity for a request.
type Identity struct {
	AccountID string
	Guest     bool
}

type contextKey struct{}

// WithIdentity stores the identity in the context.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the identity from context, if set.
func FromContext(ctx context.Context) (Identity, bool) {
	if ctx == nil {
		return Identity{}, false
	}

	value := ctx.Value(contextKey{})
	id, ok := value.(Identity)
	if !ok || strings.TrimSpace(id.AccountID) == "" {
		return Identity{}, false
	}
	return id, true
}
