package session

import "time"

// Config holds session lifecycle configuration. Cookie signing secrets
// are required with no default: a deployment that forgets to set them
// fails at startup instead of shipping a known key.
type Config struct {
	// CookieName is the name of the session cookie.
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"sid"`

	// Secrets sign the session cookie; the first signs, all verify.
	Secrets []string `env:"SESSION_SECRETS,required" envSeparator:","`

	// TTL is how long a session lives past creation or its last Touch.
	TTL time.Duration `env:"SESSION_TTL" envDefault:"2h"`

	// TouchThreshold is the minimum interval between persisted activity
	// updates, keeping the hot path off the store.
	TouchThreshold time.Duration `env:"SESSION_TOUCH_THRESHOLD" envDefault:"5m"`

	// CleanupInterval for the expired-session sweep (0 disables it).
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"5m"`

	// SecureCookies enables the Secure cookie flag; production should
	// always run with it on.
	SecureCookies bool `env:"SESSION_SECURE_COOKIES" envDefault:"false"`
}

// DefaultConfig returns the lifecycle defaults without secrets; callers
// must still supply signing secrets through options or Config.
func DefaultConfig() Config {
	return Config{
		CookieName:      "sid",
		TTL:             2 * time.Hour,
		TouchThreshold:  5 * time.Minute,
		CleanupInterval: 5 * time.Minute,
	}
}
