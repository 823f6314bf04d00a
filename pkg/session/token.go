package session

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
)

// tokenBytes gives 256 bits of entropy; collision over any realistic
// session population is negligible, and the store's atomic
// check-and-insert backstops even that.
const tokenBytes = 32

func generateToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
