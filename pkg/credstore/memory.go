package credstore

import (
	"context"
	"sync"
)

// Memory implements Store with a mutex-guarded map, for tests and
// development. Keys are normalized emails.
type Memory struct {
	mu         sync.RWMutex
	identities map[string]*Identity
}

// NewMemory creates an empty in-memory credential store.
func NewMemory() *Memory {
	return &Memory{identities: make(map[string]*Identity)}
}

func (m *Memory) FindByEmail(ctx context.Context, email string) (*Identity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	identity, ok := m.identities[NormalizeEmail(email)]
	if !ok {
		return nil, ErrIdentityNotFound
	}

	cp := *identity
	return &cp, nil
}

func (m *Memory) Insert(ctx context.Context, identity *Identity) error {
	if identity == nil || identity.Email == "" || identity.PasswordHash == "" {
		return ErrInvalidIdentity
	}

	key := NormalizeEmail(identity.Email)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.identities[key]; exists {
		return ErrDuplicateIdentity
	}

	cp := *identity
	cp.Email = key
	m.identities[key] = &cp
	return nil
}

func (m *Memory) UpdatePasswordHash(ctx context.Context, email, passwordHash string) error {
	if passwordHash == "" {
		return ErrInvalidIdentity
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	identity, ok := m.identities[NormalizeEmail(email)]
	if !ok {
		return ErrIdentityNotFound
	}

	identity.PasswordHash = passwordHash
	return nil
}
