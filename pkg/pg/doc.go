// Package pg owns the PostgreSQL connection lifecycle: pool creation
// with retry, health probing, goose schema migrations, and error
// classification helpers shared by the Postgres-backed stores.
//
// The pool is acquired once at startup, injected into stores, and
// closed on shutdown; no package-level connection state exists.
package pg
