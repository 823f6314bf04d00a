// Package session maintains server-tracked sessions presented by
// clients as opaque tokens.
//
// A Manager orchestrates the lifecycle: Login always mints a fresh
// 256-bit random token (never reusing one the client presented, which
// closes the fixation window), Resolve maps an incoming token to its
// live session, Logout destroys it. Tokens reach the client through a
// Transport: a signed cookie by default, with a header or composite
// variant for API traffic.
//
// Stores are pluggable behind the Store interface: in-memory for tests
// and single-process use, Redis with native TTL expiry, or Postgres
// with a goose-managed schema. All of them treat an expired record as
// absent from the moment it expires; the background sweep only bounds
// storage growth.
//
//	store := session.NewRedisStore(client)
//	manager, err := session.New(
//	    session.WithStore(store),
//	    session.WithCookieManager(cookieMgr),
//	)
//
//	mux.Handle("/app", manager.Middleware(appHandler))
package session
