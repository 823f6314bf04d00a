// Package credstore persists identity records: the unique pairing of a
// normalized email identifier with a one-way password hash.
//
// Two implementations ship: Postgres on a pgx pool for production and a
// mutex-guarded Memory store for tests. Both enforce identifier
// uniqueness and both report an absent identifier with the same error
// shape an existing-but-unmatched one would produce elsewhere, keeping
// identifier enumeration out of the storage contract.
package credstore
