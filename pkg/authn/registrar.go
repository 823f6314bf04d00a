package authn

import (
	"context"
	"errors"
	"fmt"

	"github.com/chirpweb/authkit/pkg/credstore"
	"github.com/chirpweb/authkit/pkg/hasher"
)

// minPasswordLength is a floor, not a policy engine; deployments wanting
// richer strength rules wrap Register with their own validation.
const minPasswordLength = 8

// Registrar implements the registration write contract: hash the secret,
// insert the identity, and let the store's uniqueness constraint
// arbitrate concurrent duplicate submissions.
type Registrar struct {
	credentials credstore.Store
	hasher      hasher.Hasher
}

// NewRegistrar creates a Registrar over the given collaborators.
func NewRegistrar(credentials credstore.Store, h hasher.Hasher) *Registrar {
	return &Registrar{credentials: credentials, hasher: h}
}

// Register creates a new identity for the email/secret pair.
//
// The duplicate check runs before hashing to avoid burning bcrypt cost
// on a doomed submission, but the insert still races through the store
// constraint, so uniqueness holds even when two submissions pass the
// pre-check together.
func (r *Registrar) Register(ctx context.Context, email, secret, name string) (*credstore.Identity, error) {
	email = credstore.NormalizeEmail(email)

	if len(secret) < minPasswordLength {
		return nil, fmt.Errorf("%w: at least %d characters required", ErrWeakPassword, minPasswordLength)
	}

	if _, err := r.credentials.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailAlreadyExists
	} else if !errors.Is(err, credstore.ErrIdentityNotFound) {
		return nil, err
	}

	passwordHash, err := r.hasher.Hash(ctx, secret)
	if err != nil {
		return nil, err
	}

	identity := credstore.NewIdentity(email, passwordHash, name)
	if err := r.credentials.Insert(ctx, identity); err != nil {
		if errors.Is(err, credstore.ErrDuplicateIdentity) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	return identity, nil
}

// ChangePassword verifies the current secret and replaces the stored
// hash. The caller is responsible for revoking live sessions afterwards.
func (r *Registrar) ChangePassword(ctx context.Context, email, current, next string) error {
	email = credstore.NormalizeEmail(email)

	if len(next) < minPasswordLength {
		return fmt.Errorf("%w: at least %d characters required", ErrWeakPassword, minPasswordLength)
	}

	identity, err := r.credentials.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, credstore.ErrIdentityNotFound) {
			r.hasher.DummyVerify(ctx)
			return ErrInvalidCredentials
		}
		return err
	}

	ok, err := r.hasher.Verify(ctx, current, identity.PasswordHash)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidCredentials
	}

	passwordHash, err := r.hasher.Hash(ctx, next)
	if err != nil {
		return err
	}

	return r.credentials.UpdatePasswordHash(ctx, email, passwordHash)
}
