package authn

import "errors"

var (
	// ErrInvalidCredentials is the single rejection every failed
	// authentication returns, whether the identifier is unknown or the
	// secret is wrong. Collapsing the two is deliberate anti-enumeration.
	ErrInvalidCredentials = errors.New("authn: invalid credentials")

	// ErrEmailAlreadyExists rejects a registration for a taken identifier.
	ErrEmailAlreadyExists = errors.New("authn: email already registered")

	// ErrWeakPassword rejects secrets below the configured length floor.
	ErrWeakPassword = errors.New("authn: password does not meet requirements")

	// ErrPrincipalGone indicates a session identifier that no longer
	// resolves to a stored identity.
	ErrPrincipalGone = errors.New("authn: principal no longer exists")
)
