package auth

import "errors"

var (
	// ErrRegistryUnavailable is returned when a protected route is reached
	// with no usable key registry and no session fallback.
	ErrRegistryUnavailable = errors.New("key registry unavailable")

	// ErrMalformedRegistry is returned when a registry document is not an
	// ordered mapping of label to key.
	ErrMalformedRegistry = errors.New("malformed key registry")
)
