// Package cookie provides an HMAC-signing cookie manager used as the
// session token carrier. Values written through SetSigned cannot be
// forged or tampered with client-side; GetSigned rejects anything whose
// signature no configured secret verifies.
//
// Defaults are deliberately conservative: Path=/, HttpOnly, SameSite=Lax.
// The Secure flag is left to the caller because local development runs
// over plain HTTP; production deployments should always enable it.
//
// Multiple secrets support key rotation: the first secret signs, all of
// them verify.
package cookie
