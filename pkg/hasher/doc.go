// Package hasher provides the one-way adaptive password hashing
// primitive. The bcrypt implementation emits self-describing records
// (algorithm tag, cost, per-record salt all embedded), gates concurrent
// computations behind a bounded semaphore, and offers DummyVerify for
// timing-equalized rejection of unknown identifiers.
//
// Plaintext secrets are never logged, stored, or echoed by this package.
package hasher
