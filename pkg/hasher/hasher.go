package hasher

import "context"

// Hasher is the one-way credential hashing primitive. Implementations
// must emit self-describing hash records: everything needed to verify
// (algorithm, cost, salt) is embedded in the encoded output.
type Hasher interface {
	// Hash produces an encoded hash record for the secret. Two calls
	// with the same secret return different records (fresh salt per call).
	Hash(ctx context.Context, secret string) (string, error)

	// Verify recomputes the hash using the parameters embedded in
	// encoded and reports whether secret matches. A mismatch is
	// (false, nil); an error means the stored record is unusable.
	Verify(ctx context.Context, secret, encoded string) (bool, error)

	// DummyVerify burns one verification of representative cost against
	// a throwaway record. Callers use it to keep the unknown-identifier
	// rejection path close in timing to the wrong-secret path.
	DummyVerify(ctx context.Context)
}
