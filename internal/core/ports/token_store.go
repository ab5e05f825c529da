package ports

import "context"

// TokenStore persists the bearer token across process restarts. It is the only
// durable client-side state.
//
// Remove and Clear are idempotent: removing an absent token is not an error.
// Get returns domain.ErrTokenNotFound when no token is stored.
type TokenStore interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string) error
	Remove(ctx context.Context) error
	// Clear wipes all local persisted state, not just the token.
	Clear(ctx context.Context) error
}
