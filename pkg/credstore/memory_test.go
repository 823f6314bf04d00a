package credstore_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chirpweb/authkit/pkg/credstore"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "alice@example.com", credstore.NormalizeEmail("  Alice@Example.COM "))
	assert.Equal(t, "not-an-email", credstore.NormalizeEmail("Not-An-Email"))
}

func TestMemory_Insert(t *testing.T) {
	ctx := context.Background()

	t.Run("insert and find", func(t *testing.T) {
		store := credstore.NewMemory()
		identity := credstore.NewIdentity("alice@example.com", "$2a$10$hash", "Alice")

		require.NoError(t, store.Insert(ctx, identity))

		found, err := store.FindByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, identity.ID, found.ID)
		assert.Equal(t, "$2a$10$hash", found.PasswordHash)
	})

	t.Run("duplicate rejected", func(t *testing.T) {
		store := credstore.NewMemory()
		require.NoError(t, store.Insert(ctx, credstore.NewIdentity("alice@example.com", "h1", "")))

		err := store.Insert(ctx, credstore.NewIdentity("ALICE@example.com", "h2", ""))
		assert.ErrorIs(t, err, credstore.ErrDuplicateIdentity)
	})

	t.Run("invalid record", func(t *testing.T) {
		store := credstore.NewMemory()
		assert.ErrorIs(t, store.Insert(ctx, nil), credstore.ErrInvalidIdentity)
		assert.ErrorIs(t, store.Insert(ctx, credstore.NewIdentity("a@b.c", "", "")), credstore.ErrInvalidIdentity)
	})

	t.Run("concurrent duplicates admit exactly one", func(t *testing.T) {
		store := credstore.NewMemory()

		const n = 16
		var wg sync.WaitGroup
		errs := make([]error, n)
		for i := range n {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs[i] = store.Insert(ctx, credstore.NewIdentity("race@example.com", "h", ""))
			}(i)
		}
		wg.Wait()

		var accepted int
		for _, err := range errs {
			if err == nil {
				accepted++
			} else {
				assert.ErrorIs(t, err, credstore.ErrDuplicateIdentity)
			}
		}
		assert.Equal(t, 1, accepted)
	})
}

func TestMemory_FindByEmail(t *testing.T) {
	ctx := context.Background()
	store := credstore.NewMemory()
	require.NoError(t, store.Insert(ctx, credstore.NewIdentity("Alice@Example.com", "hash", "Alice")))

	t.Run("case-normalized lookup", func(t *testing.T) {
		found, err := store.FindByEmail(ctx, "  ALICE@EXAMPLE.COM ")
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", found.Email)
	})

	t.Run("absent identifier", func(t *testing.T) {
		_, err := store.FindByEmail(ctx, "bob@example.com")
		assert.ErrorIs(t, err, credstore.ErrIdentityNotFound)
	})

	t.Run("returned record is a copy", func(t *testing.T) {
		found, err := store.FindByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		found.PasswordHash = "mutated"

		again, err := store.FindByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, "hash", again.PasswordHash)
	})
}

func TestMemory_UpdatePasswordHash(t *testing.T) {
	ctx := context.Background()
	store := credstore.NewMemory()
	require.NoError(t, store.Insert(ctx, credstore.NewIdentity("alice@example.com", "old", "")))

	t.Run("updates existing", func(t *testing.T) {
		require.NoError(t, store.UpdatePasswordHash(ctx, "Alice@example.com", "new"))

		found, err := store.FindByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, "new", found.PasswordHash)
	})

	t.Run("unknown identity", func(t *testing.T) {
		err := store.UpdatePasswordHash(ctx, "bob@example.com", "new")
		assert.ErrorIs(t, err, credstore.ErrIdentityNotFound)
	})

	t.Run("empty hash rejected", func(t *testing.T) {
		err := store.UpdatePasswordHash(ctx, "alice@example.com", "")
		assert.ErrorIs(t, err, credstore.ErrInvalidIdentity)
	})
}
