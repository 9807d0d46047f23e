// Package auth provides password hashing and identity context utilities.
package auth

import (
	"context"

	"github.com/cartshop/cartshop/internal/model"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// identityKey is the context key for storing the resolved Identity.
const identityKey contextKey = "identity"

// ContextWithIdentity adds the resolved Identity to the context.
func ContextWithIdentity(ctx context.Context, identity *model.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromContext retrieves the Identity from the context.
// Returns nil if the request is not authenticated.
func IdentityFromContext(ctx context.Context) *model.Identity {
	identity, ok := ctx.Value(identityKey).(*model.Identity)
	if !ok {
		return nil
	}
	return identity
}

// MustIdentityFromContext retrieves the Identity from the context.
// Panics if not present (use only behind the session middleware).
func MustIdentityFromContext(ctx context.Context) *model.Identity {
	identity := IdentityFromContext(ctx)
	if identity == nil {
		panic("identity not found - ensure session middleware is applied")
	}
	return identity
}

// UserIDFromContext is a convenience function to get the user ID from context.
// Returns 0 if not authenticated.
func UserIDFromContext(ctx context.Context) int64 {
	identity := IdentityFromContext(ctx)
	if identity == nil {
		return 0
	}
	return identity.UserID
}
