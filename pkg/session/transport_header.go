package session

import (
	"net/http"
	"strings"
	"time"
)

// HeaderTransport carries the token in an HTTP header, for API clients
// that don't speak cookies.
type HeaderTransport struct {
	header string
	prefix string
}

// HeaderOption configures a HeaderTransport.
type HeaderOption func(*HeaderTransport)

// WithHeaderPrefix overrides the default "Bearer " value prefix.
func WithHeaderPrefix(prefix string) HeaderOption {
	return func(t *HeaderTransport) { t.prefix = prefix }
}

// NewHeaderTransport creates a header-based transport.
func NewHeaderTransport(header string, opts ...HeaderOption) *HeaderTransport {
	t := &HeaderTransport{header: header, prefix: "Bearer "}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *HeaderTransport) GetToken(r *http.Request) (string, error) {
	value := r.Header.Get(t.header)
	if value == "" {
		return "", ErrNoToken
	}
	return strings.TrimPrefix(value, t.prefix), nil
}

func (t *HeaderTransport) SetToken(w http.ResponseWriter, token string, ttl time.Duration) error {
	w.Header().Set(t.header, t.prefix+token)
	return nil
}

func (t *HeaderTransport) ClearToken(w http.ResponseWriter) error {
	w.Header().Del(t.header)
	return nil
}
