package repositories

import (
	"context"
	"encoding/json"

	"github.com/atlas-lingua/portal-service/internal/models"
)

// KVStore is the single data-access contract for domain records: a flat map of
// string keys to JSON values backed by one relational table. The store is the
// single source of truth; there is no caching layer in front of it.
type KVStore interface {
	// Get unmarshals the value at key into dest. Returns ErrKeyNotFound when
	// the key is absent; any other error is a storage failure.
	Get(ctx context.Context, key string, dest any) error

	// Set marshals value and upserts it at key.
	Set(ctx context.Context, key string, value any) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// GetByPrefix returns the raw values of every record whose key starts with
	// prefix. Order is unspecified.
	GetByPrefix(ctx context.Context, prefix string) ([]json.RawMessage, error)
}

// IdentityProvider wraps the external auth service. Token validation and
// identity provisioning happen upstream; this client only translates errors
// into typed failures.
type IdentityProvider interface {
	// ValidateToken verifies a bearer token and returns the identity it was
	// issued for. Returns ErrInvalidToken for any unusable token.
	ValidateToken(ctx context.Context, token string) (*models.Identity, error)

	// CreateIdentity provisions a new identity at the provider.
	// Returns ErrIdentityConflict when the email is already registered.
	CreateIdentity(ctx context.Context, req CreateIdentityRequest) (*models.Identity, error)

	// DeleteIdentity removes a provisioned identity. Used as the compensating
	// action when the profile write after signup fails.
	DeleteIdentity(ctx context.Context, id string) error

	// ExistsByEmail reports whether the provider already knows this email.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// GetByID resolves an identity by its provider id.
	GetByID(ctx context.Context, id string) (*models.Identity, error)
}

type CreateIdentityRequest struct {
	Email       string
	Password    string
	DisplayName string
	Phone       string
}

// Repository aggregates the data-access surfaces handed to services.
type Repository interface {
	KV() KVStore
	Identity() IdentityProvider

	Ping(ctx context.Context) error
	Close() error
}

// DecodeAll unmarshals a prefix-scan result into typed records. Records that
// fail to decode are skipped rather than failing the whole scan; the flat map
// has no schema enforcement, so a single malformed value must not take down a
// listing.
func DecodeAll[T any](raw []json.RawMessage) []T {
	out := make([]T, 0, len(raw))
	for _, r := range raw {
		var v T
		if err := json.Unmarshal(r, &v); err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}
