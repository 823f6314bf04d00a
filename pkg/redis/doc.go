// Package redis owns the Redis connection lifecycle for the session
// store: client creation with retry and health probing. The client is
// acquired at startup and injected where needed.
package redis
