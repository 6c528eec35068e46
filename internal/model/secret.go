package model

import "context"

// SecretStore persists small secrets (the session token) outside the core.
// Get returns an empty string for a missing key, not an error.
type SecretStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
