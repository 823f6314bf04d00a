// Package authn validates submitted credentials against stored identity
// records and produces principals.
//
// The Strategy's rejection surface is deliberately flat: unknown
// identifier and wrong secret both come back as ErrInvalidCredentials,
// and the unknown-identifier path burns a dummy hash verification so the
// two rejections stay close in timing. Server-side failures such as a
// store outage or a corrupt hash record propagate as distinct errors
// and are never folded into the credentials rejection.
//
// Rate limiting of repeated failures is a required collaborator in any
// real deployment but lives outside this package; callers hook it in
// front of Authenticate.
package authn
