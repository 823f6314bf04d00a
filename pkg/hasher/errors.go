package hasher

import "errors"

var (
	// ErrInvalidConfig is returned when hasher construction parameters are out of range.
	ErrInvalidConfig = errors.New("hasher: invalid configuration")

	// ErrHashCorrupt is returned when a stored hash record cannot be parsed.
	// Treated as data corruption by callers, never as a verification mismatch.
	ErrHashCorrupt = errors.New("hasher: stored hash record is corrupt")

	// ErrSecretTooLong is returned when the secret exceeds bcrypt's input limit.
	ErrSecretTooLong = errors.New("hasher: secret exceeds 72 bytes")
)
