package session

import (
	"net/http"
	"time"

	"github.com/chirpweb/authkit/pkg/cookie"
)

// CookieTransport carries the token in an HMAC-signed cookie. The
// cookie manager's defaults already pin HttpOnly and SameSite=Lax; the
// Secure flag follows deployment configuration.
type CookieTransport struct {
	cookies *cookie.Manager
	name    string
	secure  bool
}

// NewCookieTransport creates the default cookie-based transport.
func NewCookieTransport(cookies *cookie.Manager, name string, secure bool) *CookieTransport {
	return &CookieTransport{cookies: cookies, name: name, secure: secure}
}

func (t *CookieTransport) GetToken(r *http.Request) (string, error) {
	token, err := t.cookies.GetSigned(r, t.name)
	if err != nil {
		// Missing, tampered, or signed with a retired key all read the
		// same to callers: no usable token.
		return "", ErrNoToken
	}
	return token, nil
}

func (t *CookieTransport) SetToken(w http.ResponseWriter, token string, ttl time.Duration) error {
	opts := []cookie.Option{
		cookie.WithMaxAge(int(ttl.Seconds())),
	}
	if t.secure {
		opts = append(opts, cookie.WithSecure(true))
	}
	return t.cookies.SetSigned(w, t.name, token, opts...)
}

func (t *CookieTransport) ClearToken(w http.ResponseWriter) error {
	t.cookies.Delete(w, t.name)
	return nil
}
