package credstore

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Identity is the persisted pairing of a login identifier and a
// self-describing one-way hash of the secret. Identities are created at
// registration and only the hash ever changes afterwards.
type Identity struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
}

// NewIdentity builds an Identity with a normalized email and generated ID.
func NewIdentity(email, passwordHash, name string) *Identity {
	return &Identity{
		ID:           uuid.New(),
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
		Name:         name,
		CreatedAt:    time.Now(),
	}
}

// NormalizeEmail canonicalizes an email identifier so lookups are exact:
// surrounding whitespace stripped, the whole address lowercased. Invalid
// shapes pass through untouched; they simply never match a stored record.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
