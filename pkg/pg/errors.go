package pg

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrInvalidConnectionURL    = errors.New("pg: failed to parse connection url")
	ErrConnectionFailed        = errors.New("pg: failed to open connection")
	ErrHealthcheckFailed       = errors.New("pg: healthcheck failed")
	ErrFailedToApplyMigrations = errors.New("pg: failed to apply migrations")
	ErrMigrationsPathNotSet    = errors.New("pg: migrations path not provided")
)

// IsNotFound reports whether err is pgx's no-rows result, keeping
// "absent record" handling uniform across stores.
func IsNotFound(err error) bool {
	return err != nil && errors.Is(err, pgx.ErrNoRows)
}

// IsUniqueViolation reports a PostgreSQL unique constraint violation
// (SQLSTATE 23505). Credential stores map this to a duplicate-identity
// rejection.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
