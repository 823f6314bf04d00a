package session

import (
	"net/http"
	"time"
)

// Transport carries the opaque token between server and client. The
// token has no structure the client is expected to parse.
type Transport interface {
	// GetToken extracts the session token from the request, or ErrNoToken.
	GetToken(r *http.Request) (string, error)

	// SetToken instructs the client to remember the token for ttl.
	SetToken(w http.ResponseWriter, token string, ttl time.Duration) error

	// ClearToken instructs the client to forget the token.
	ClearToken(w http.ResponseWriter) error
}
