package repositories

import "errors"

var (
	// ErrKeyNotFound means the key is absent from the store. Callers must not
	// conflate this with storage failures.
	ErrKeyNotFound = errors.New("key not found")

	// ErrInvalidToken covers every unusable bearer token: malformed, expired,
	// bad signature, or unknown subject.
	ErrInvalidToken = errors.New("invalid token")

	// ErrIdentityConflict means the email is already registered upstream.
	ErrIdentityConflict = errors.New("identity already exists")

	// ErrIdentityRejected means the provider refused the signup payload.
	ErrIdentityRejected = errors.New("identity rejected by provider")

	// ErrProviderUnavailable means the auth provider could not be reached.
	ErrProviderUnavailable = errors.New("identity provider unavailable")
)

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrKeyNotFound)
}
