package authn_test

import (
	"context"
	"sync/atomic"

	"github.com/chirpweb/authkit/pkg/hasher"
)

// countingHasher wraps a real hasher and records how often each
// operation runs, so tests can assert the dummy-verification contract
// without measuring wall-clock time.
type countingHasher struct {
	inner        hasher.Hasher
	verifyCalls  atomic.Int64
	dummyCalls   atomic.Int64
	hashCalls    atomic.Int64
	verifyResult *bool
	verifyErr    error
}

func (c *countingHasher) Hash(ctx context.Context, secret string) (string, error) {
	c.hashCalls.Add(1)
	return c.inner.Hash(ctx, secret)
}

func (c *countingHasher) Verify(ctx context.Context, secret, encoded string) (bool, error) {
	c.verifyCalls.Add(1)
	if c.verifyErr != nil {
		return false, c.verifyErr
	}
	if c.verifyResult != nil {
		return *c.verifyResult, nil
	}
	return c.inner.Verify(ctx, secret, encoded)
}

func (c *countingHasher) DummyVerify(ctx context.Context) {
	c.dummyCalls.Add(1)
	c.inner.DummyVerify(ctx)
}
