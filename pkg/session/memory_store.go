package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore implements Store with a mutex-guarded map plus a cleanup
// ticker. Suitable for tests and single-process deployments.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ticker   *time.Ticker
	done     chan struct{}
	closed   sync.Once
}

// NewMemoryStore creates an in-memory session store. A positive
// cleanupInterval starts a background sweep goroutine; stop it with Close.
func NewMemoryStore(cleanupInterval time.Duration) *MemoryStore {
	store := &MemoryStore{
		sessions: make(map[string]*Session),
		done:     make(chan struct{}),
	}

	if cleanupInterval > 0 {
		store.ticker = time.NewTicker(cleanupInterval)
		go store.sweepLoop()
	}

	return store
}

func (m *MemoryStore) Create(ctx context.Context, session *Session) error {
	if session == nil || session.Token == "" {
		return ErrInvalidSession
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.sessions[session.Token]; ok && !existing.IsExpired() {
		return ErrTokenTaken
	}

	m.sessions[session.Token] = session.clone()
	return nil
}

func (m *MemoryStore) Get(ctx context.Context, token string) (*Session, error) {
	// Expiry check and clone both read fields Touch mutates in place,
	// so they must not outlive the read lock.
	m.mu.RLock()
	session, ok := m.sessions[token]
	if ok && !session.IsExpired() {
		cloned := session.clone()
		m.mu.RUnlock()
		return cloned, nil
	}
	m.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}

	// Reclaim eagerly; re-check under the write lock in case the slot
	// was reused since the read lock dropped.
	m.mu.Lock()
	if current, ok := m.sessions[token]; ok && current.IsExpired() {
		delete(m.sessions, token)
	}
	m.mu.Unlock()
	return nil, ErrSessionExpired
}

func (m *MemoryStore) Update(ctx context.Context, session *Session) error {
	if session == nil || session.Token == "" {
		return ErrInvalidSession
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.sessions[session.Token]
	if !ok || existing.IsExpired() {
		return ErrSessionNotFound
	}

	m.sessions[session.Token] = session.clone()
	return nil
}

func (m *MemoryStore) Touch(ctx context.Context, token string, extendTo time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[token]
	if !ok || session.IsExpired() {
		return nil
	}

	session.ExpiresAt = extendTo
	session.LastActivityAt = time.Now()
	return nil
}

func (m *MemoryStore) UpdateActivity(ctx context.Context, token string, lastActivity time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[token]
	if !ok {
		return ErrSessionNotFound
	}

	session.LastActivityAt = lastActivity
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, token)
	return nil
}

func (m *MemoryStore) DeleteExpired(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for token, session := range m.sessions {
		if !now.Before(session.ExpiresAt) {
			delete(m.sessions, token)
		}
	}
	return nil
}

func (m *MemoryStore) DeleteByIdentifier(ctx context.Context, identifier string) error {
	if identifier == "" {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for token, session := range m.sessions {
		if session.Identifier == identifier {
			delete(m.sessions, token)
		}
	}
	return nil
}

// Len reports the number of stored records, expired included.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Close stops the sweep goroutine. Safe to call more than once.
func (m *MemoryStore) Close() error {
	m.closed.Do(func() {
		if m.ticker != nil {
			m.ticker.Stop()
		}
		close(m.done)
	})
	return nil
}

func (m *MemoryStore) sweepLoop() {
	for {
		select {
		case <-m.ticker.C:
			_ = m.DeleteExpired(context.Background())
		case <-m.done:
			return
		}
	}
}
