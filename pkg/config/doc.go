// Package config loads environment-tagged configuration structs.
//
// It wraps caarlos0/env parsing with one-shot .env loading and per-type
// caching, so the same struct type loaded from several packages resolves
// to one consistent value.
//
// Secret-bearing fields (cookie signing keys, store URLs) are declared
// `required` by their owning packages; there are no baked-in development
// secrets.
package config
