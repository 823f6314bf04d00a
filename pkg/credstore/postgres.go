package credstore

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chirpweb/authkit/pkg/pg"
)

// Postgres implements Store on a pgx connection pool. The schema lives
// in migrations/ and is applied through pg.Migrate.
type Postgres struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

// NewPostgres wraps an already-connected pool. Every store call is
// bounded by timeout so callers never hang on a dead database.
func NewPostgres(pool *pgxpool.Pool, timeout time.Duration) *Postgres {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Postgres{pool: pool, timeout: timeout}
}

func (p *Postgres) FindByEmail(ctx context.Context, email string) (*Identity, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var identity Identity
	err := p.pool.QueryRow(ctx,
		`SELECT id, email, password_hash, name, created_at FROM identities WHERE email = $1`,
		NormalizeEmail(email),
	).Scan(&identity.ID, &identity.Email, &identity.PasswordHash, &identity.Name, &identity.CreatedAt)
	if err != nil {
		if pg.IsNotFound(err) {
			return nil, ErrIdentityNotFound
		}
		return nil, classify(err)
	}

	return &identity, nil
}

func (p *Postgres) Insert(ctx context.Context, identity *Identity) error {
	if identity == nil || identity.Email == "" || identity.PasswordHash == "" {
		return ErrInvalidIdentity
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	_, err := p.pool.Exec(ctx,
		`INSERT INTO identities (id, email, password_hash, name, created_at) VALUES ($1, $2, $3, $4, $5)`,
		identity.ID, NormalizeEmail(identity.Email), identity.PasswordHash, identity.Name, identity.CreatedAt,
	)
	if err != nil {
		// The unique index arbitrates concurrent duplicate registrations.
		if pg.IsUniqueViolation(err) {
			return ErrDuplicateIdentity
		}
		return classify(err)
	}

	return nil
}

func (p *Postgres) UpdatePasswordHash(ctx context.Context, email, passwordHash string) error {
	if passwordHash == "" {
		return ErrInvalidIdentity
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	tag, err := p.pool.Exec(ctx,
		`UPDATE identities SET password_hash = $2 WHERE email = $1`,
		NormalizeEmail(email), passwordHash,
	)
	if err != nil {
		return classify(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrIdentityNotFound
	}

	return nil
}

// classify maps transport-level failures (timeouts, dead connections)
// onto ErrStoreUnavailable so the middleware can distinguish outages
// from bad credentials.
func classify(err error) error {
	return errors.Join(ErrStoreUnavailable, err)
}
