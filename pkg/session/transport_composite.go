package session

import (
	"net/http"
	"time"
)

// CompositeTransport reads from the first transport that yields a token
// and writes through all of them, so browser and API clients share one
// manager.
type CompositeTransport struct {
	transports []Transport
}

// NewCompositeTransport composes transports in priority order.
func NewCompositeTransport(transports ...Transport) *CompositeTransport {
	return &CompositeTransport{transports: transports}
}

func (t *CompositeTransport) GetToken(r *http.Request) (string, error) {
	for _, transport := range t.transports {
		if token, err := transport.GetToken(r); err == nil && token != "" {
			return token, nil
		}
	}
	return "", ErrNoToken
}

func (t *CompositeTransport) SetToken(w http.ResponseWriter, token string, ttl time.Duration) error {
	var lastErr error
	for _, transport := range t.transports {
		if err := transport.SetToken(w, token, ttl); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

func (t *CompositeTransport) ClearToken(w http.ResponseWriter) error {
	var lastErr error
	for _, transport := range t.transports {
		if err := transport.ClearToken(w); err != nil {
			lastErr = err
		}
	}
	return lastErr
}
