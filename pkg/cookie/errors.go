package cookie

import "errors"

var (
	// ErrNoSecret is returned when a Manager is constructed without signing secrets.
	ErrNoSecret = errors.New("cookie: no signing secret provided")

	// ErrSecretTooShort is returned when a signing secret is below the minimum length.
	ErrSecretTooShort = errors.New("cookie: signing secret too short")

	// ErrCookieNotFound is returned when the named cookie is absent from the request.
	ErrCookieNotFound = errors.New("cookie: not found")

	// ErrInvalidFormat is returned when a signed cookie value is structurally malformed.
	ErrInvalidFormat = errors.New("cookie: invalid format")

	// ErrInvalidSignature is returned when no configured secret verifies the signature.
	ErrInvalidSignature = errors.New("cookie: invalid signature")
)
