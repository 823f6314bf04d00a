package authn

import (
	"context"
	"errors"

	"github.com/chirpweb/authkit/pkg/credstore"
)

// Principal is the authenticated identity attached to a request. It is
// a derived view: always reconstructible from an Identity record, never
// persisted on its own.
type Principal struct {
	Email string
	Name  string
}

func principalFrom(identity *credstore.Identity) Principal {
	return Principal{Email: identity.Email, Name: identity.Name}
}

// PrincipalResolver re-derives a Principal from the identifier a session
// carries. The typed error path replaces loose deserialize callbacks: a
// failure is either ErrPrincipalGone (identity deleted since login) or a
// store failure, never a dangling reference.
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, identifier string) (Principal, error)
}

// StoreResolver resolves principals against the credential store,
// rejecting sessions whose identity was removed after login.
type StoreResolver struct {
	Credentials credstore.Store
}

func (r StoreResolver) ResolvePrincipal(ctx context.Context, identifier string) (Principal, error) {
	identity, err := r.Credentials.FindByEmail(ctx, identifier)
	if err != nil {
		if errors.Is(err, credstore.ErrIdentityNotFound) {
			return Principal{}, ErrPrincipalGone
		}
		return Principal{}, err
	}
	return principalFrom(identity), nil
}

// TrustingResolver trusts the identifier cached in the session without
// revalidating it, the default trade-off for deployments that tolerate
// briefly stale sessions after identity deletion.
type TrustingResolver struct{}

func (TrustingResolver) ResolvePrincipal(_ context.Context, identifier string) (Principal, error) {
	if identifier == "" {
		return Principal{}, ErrPrincipalGone
	}
	return Principal{Email: identifier}, nil
}
