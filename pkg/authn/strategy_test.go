package authn_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/chirpweb/authkit/pkg/authn"
	"github.com/chirpweb/authkit/pkg/credstore"
	"github.com/chirpweb/authkit/pkg/hasher"
)

func newBcrypt(t *testing.T) *hasher.Bcrypt {
	t.Helper()
	h, err := hasher.NewBcrypt(hasher.Config{Cost: bcrypt.MinCost, MaxConcurrency: 4})
	require.NoError(t, err)
	return h
}

func seedIdentity(t *testing.T, store credstore.Store, h hasher.Hasher, email, secret string) {
	t.Helper()
	encoded, err := h.Hash(context.Background(), secret)
	require.NoError(t, err)
	require.NoError(t, store.Insert(context.Background(), credstore.NewIdentity(email, encoded, "")))
}

func TestStrategy_Authenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials", func(t *testing.T) {
		store := credstore.NewMemory()
		h := newBcrypt(t)
		seedIdentity(t, store, h, "alice@example.com", "s3cr3t!pass")

		strategy := authn.NewStrategy(store, h)

		principal, err := strategy.Authenticate(ctx, "Alice@Example.COM", "s3cr3t!pass")
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", principal.Email)
	})

	t.Run("wrong secret", func(t *testing.T) {
		store := credstore.NewMemory()
		h := newBcrypt(t)
		seedIdentity(t, store, h, "alice@example.com", "s3cr3t!pass")

		strategy := authn.NewStrategy(store, h)

		_, err := strategy.Authenticate(ctx, "alice@example.com", "wrong-pass")
		assert.ErrorIs(t, err, authn.ErrInvalidCredentials)
	})

	t.Run("unknown identifier yields the same rejection", func(t *testing.T) {
		store := credstore.NewMemory()
		h := newBcrypt(t)
		seedIdentity(t, store, h, "alice@example.com", "s3cr3t!pass")

		strategy := authn.NewStrategy(store, h)

		_, wrongSecretErr := strategy.Authenticate(ctx, "alice@example.com", "wrong-pass")
		_, unknownErr := strategy.Authenticate(ctx, "bob@example.com", "anything-at-all")

		assert.ErrorIs(t, wrongSecretErr, authn.ErrInvalidCredentials)
		assert.ErrorIs(t, unknownErr, authn.ErrInvalidCredentials)
		// Identical error values: nothing distinguishes the two rejections.
		assert.Equal(t, wrongSecretErr, unknownErr)
	})

	t.Run("unknown identifier burns a dummy verification", func(t *testing.T) {
		store := credstore.NewMemory()
		counting := &countingHasher{inner: newBcrypt(t)}
		strategy := authn.NewStrategy(store, counting)

		_, err := strategy.Authenticate(ctx, "ghost@example.com", "whatever!")
		assert.ErrorIs(t, err, authn.ErrInvalidCredentials)

		// The rejection path must cost one verification, same as the
		// wrong-secret path.
		assert.EqualValues(t, 1, counting.dummyCalls.Load())
		assert.EqualValues(t, 0, counting.verifyCalls.Load())
	})

	t.Run("corrupt stored hash fails closed", func(t *testing.T) {
		store := credstore.NewMemory()
		require.NoError(t, store.Insert(ctx, credstore.NewIdentity("alice@example.com", "not-a-bcrypt-record", "")))

		strategy := authn.NewStrategy(store, newBcrypt(t))

		_, err := strategy.Authenticate(ctx, "alice@example.com", "s3cr3t!pass")
		assert.ErrorIs(t, err, hasher.ErrHashCorrupt)
		assert.NotErrorIs(t, err, authn.ErrInvalidCredentials)
	})

	t.Run("store outage propagates untouched", func(t *testing.T) {
		h := newBcrypt(t)
		strategy := authn.NewStrategy(unavailableStore{}, h)

		_, err := strategy.Authenticate(ctx, "alice@example.com", "s3cr3t!pass")
		assert.ErrorIs(t, err, credstore.ErrStoreUnavailable)
		assert.NotErrorIs(t, err, authn.ErrInvalidCredentials)
	})
}

// unavailableStore simulates a dead backing store.
type unavailableStore struct{}

func (unavailableStore) FindByEmail(context.Context, string) (*credstore.Identity, error) {
	return nil, errors.Join(credstore.ErrStoreUnavailable, context.DeadlineExceeded)
}

func (unavailableStore) Insert(context.Context, *credstore.Identity) error {
	return credstore.ErrStoreUnavailable
}

func (unavailableStore) UpdatePasswordHash(context.Context, string, string) error {
	return credstore.ErrStoreUnavailable
}

func TestStoreResolver(t *testing.T) {
	ctx := context.Background()
	store := credstore.NewMemory()
	require.NoError(t, store.Insert(ctx, credstore.NewIdentity("alice@example.com", "hash", "Alice")))

	resolver := authn.StoreResolver{Credentials: store}

	t.Run("resolves existing identity", func(t *testing.T) {
		principal, err := resolver.ResolvePrincipal(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", principal.Email)
		assert.Equal(t, "Alice", principal.Name)
	})

	t.Run("deleted identity", func(t *testing.T) {
		_, err := resolver.ResolvePrincipal(ctx, "gone@example.com")
		assert.ErrorIs(t, err, authn.ErrPrincipalGone)
	})
}

func TestTrustingResolver(t *testing.T) {
	resolver := authn.TrustingResolver{}

	principal, err := resolver.ResolvePrincipal(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", principal.Email)

	_, err = resolver.ResolvePrincipal(context.Background(), "")
	assert.ErrorIs(t, err, authn.ErrPrincipalGone)
}
