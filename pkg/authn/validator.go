package authn

import (
	"context"
	"errors"

	"github.com/chirpweb/authkit/pkg/session"
)

// SessionValidator adapts a PrincipalResolver into the session manager's
// revalidation hook. A deleted identity (ErrPrincipalGone) revokes the
// session; any other resolver failure, a credential-store outage
// included, surfaces as a resolution error and leaves the session alone.
//
//	manager, err := session.New(
//	    session.WithIdentifierValidator(authn.SessionValidator(authn.StoreResolver{Credentials: store})),
//	    ...
//	)
func SessionValidator(resolver PrincipalResolver) session.IdentifierValidator {
	return func(ctx context.Context, identifier string) error {
		if _, err := resolver.ResolvePrincipal(ctx, identifier); err != nil {
			if errors.Is(err, ErrPrincipalGone) {
				return errors.Join(session.ErrIdentifierRevoked, err)
			}
			return err
		}
		return nil
	}
}
