package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chirpweb/authkit/pkg/pg"
)

// PostgresStore implements Store on a pgx pool. The sessions table is
// keyed by token with a jsonb data bag; schema lives in migrations/.
// Single-row UPDATEs give the per-token atomicity the contract requires.
type PostgresStore struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

// NewPostgresStore wraps an already-connected pool. Store calls are
// bounded by timeout.
func NewPostgresStore(pool *pgxpool.Pool, timeout time.Duration) *PostgresStore {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &PostgresStore{pool: pool, timeout: timeout}
}

func (p *PostgresStore) Create(ctx context.Context, session *Session) error {
	if session == nil || session.Token == "" {
		return ErrInvalidSession
	}

	data, err := json.Marshal(session.Data)
	if err != nil {
		return errors.Join(ErrInvalidSession, err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	_, err = p.pool.Exec(ctx,
		`INSERT INTO sessions (id, token, identifier, data, created_at, last_activity_at, expires_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		session.ID, session.Token, session.Identifier, data,
		session.CreatedAt, session.LastActivityAt, session.ExpiresAt,
	)
	if err != nil {
		if pg.IsUniqueViolation(err) {
			return ErrTokenTaken
		}
		return storeErr(err)
	}

	return nil
}

func (p *PostgresStore) Get(ctx context.Context, token string) (*Session, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var (
		session Session
		data    []byte
	)
	err := p.pool.QueryRow(ctx,
		`SELECT id, token, identifier, data, created_at, last_activity_at, expires_at
		 FROM sessions WHERE token = $1`,
		token,
	).Scan(&session.ID, &session.Token, &session.Identifier, &data,
		&session.CreatedAt, &session.LastActivityAt, &session.ExpiresAt)
	if err != nil {
		if pg.IsNotFound(err) {
			return nil, ErrSessionNotFound
		}
		return nil, storeErr(err)
	}

	if session.IsExpired() {
		return nil, ErrSessionExpired
	}

	if len(data) > 0 {
		if err := json.Unmarshal(data, &session.Data); err != nil {
			return nil, errors.Join(ErrInvalidSession, err)
		}
	}

	return &session, nil
}

func (p *PostgresStore) Update(ctx context.Context, session *Session) error {
	if session == nil || session.Token == "" {
		return ErrInvalidSession
	}

	data, err := json.Marshal(session.Data)
	if err != nil {
		return errors.Join(ErrInvalidSession, err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	tag, err := p.pool.Exec(ctx,
		`UPDATE sessions SET data = $2, last_activity_at = $3, expires_at = $4
		 WHERE token = $1 AND expires_at > now()`,
		session.Token, data, session.LastActivityAt, session.ExpiresAt,
	)
	if err != nil {
		return storeErr(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSessionNotFound
	}

	return nil
}

func (p *PostgresStore) Touch(ctx context.Context, token string, extendTo time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	// Guarded by expires_at so a dead session is never resurrected;
	// touching one is a silent no-op per the contract.
	_, err := p.pool.Exec(ctx,
		`UPDATE sessions SET expires_at = $2, last_activity_at = now()
		 WHERE token = $1 AND expires_at > now()`,
		token, extendTo,
	)
	if err != nil {
		return storeErr(err)
	}
	return nil
}

func (p *PostgresStore) UpdateActivity(ctx context.Context, token string, lastActivity time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	tag, err := p.pool.Exec(ctx,
		`UPDATE sessions SET last_activity_at = $2 WHERE token = $1`,
		token, lastActivity,
	)
	if err != nil {
		return storeErr(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (p *PostgresStore) Delete(ctx context.Context, token string) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if _, err := p.pool.Exec(ctx, `DELETE FROM sessions WHERE token = $1`, token); err != nil {
		return storeErr(err)
	}
	return nil
}

func (p *PostgresStore) DeleteExpired(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if _, err := p.pool.Exec(ctx, `DELETE FROM sessions WHERE expires_at <= now()`); err != nil {
		return storeErr(err)
	}
	return nil
}

func (p *PostgresStore) DeleteByIdentifier(ctx context.Context, identifier string) error {
	if identifier == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if _, err := p.pool.Exec(ctx, `DELETE FROM sessions WHERE identifier = $1`, identifier); err != nil {
		return storeErr(err)
	}
	return nil
}
