package hasher

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/crypto/bcrypt"
)

// Config controls bcrypt cost and how many hash computations may run at
// once. Hashing is deliberately expensive; the concurrency cap keeps a
// burst of login attempts from starving request dispatch.
type Config struct {
	Cost           int `env:"HASHER_BCRYPT_COST" envDefault:"12"`
	MaxConcurrency int `env:"HASHER_MAX_CONCURRENCY" envDefault:"0"`
}

// Bcrypt implements Hasher on golang.org/x/crypto/bcrypt. Safe for
// concurrent use.
type Bcrypt struct {
	cost  int
	slots chan struct{}
	dummy []byte
}

// NewBcrypt validates the configuration and precomputes the dummy
// record used by DummyVerify. A MaxConcurrency of zero defaults to the
// number of CPUs.
func NewBcrypt(cfg Config) (*Bcrypt, error) {
	if cfg.Cost < bcrypt.MinCost || cfg.Cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("%w: cost %d outside [%d, %d]", ErrInvalidConfig, cfg.Cost, bcrypt.MinCost, bcrypt.MaxCost)
	}

	concurrency := cfg.MaxConcurrency
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}

	// The dummy record carries the same cost as real records so a burned
	// verification is indistinguishable in CPU time.
	dummy, err := bcrypt.GenerateFromPassword([]byte("authkit-dummy-verification-subject"), cfg.Cost)
	if err != nil {
		return nil, err
	}

	return &Bcrypt{
		cost:  cfg.Cost,
		slots: make(chan struct{}, concurrency),
		dummy: dummy,
	}, nil
}

// Hash produces a bcrypt record with a fresh random salt.
func (b *Bcrypt) Hash(ctx context.Context, secret string) (string, error) {
	if len(secret) > maxSecretBytes {
		return "", ErrSecretTooLong
	}

	if err := b.acquire(ctx); err != nil {
		return "", err
	}
	defer b.release()

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), b.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify checks secret against a stored bcrypt record. bcrypt compares
// the full derived key with subtle.ConstantTimeCompare, so mismatch
// position does not leak through timing.
func (b *Bcrypt) Verify(ctx context.Context, secret, encoded string) (bool, error) {
	if err := b.acquire(ctx); err != nil {
		return false, err
	}
	defer b.release()

	err := bcrypt.CompareHashAndPassword([]byte(encoded), []byte(secret))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		// Anything else means the stored record is malformed: unknown
		// prefix, truncated salt, unparsable cost. Fail closed.
		return false, errors.Join(ErrHashCorrupt, err)
	}
}

// DummyVerify runs one full-cost comparison against the precomputed
// throwaway record and discards the result.
func (b *Bcrypt) DummyVerify(ctx context.Context) {
	if err := b.acquire(ctx); err != nil {
		return
	}
	defer b.release()

	_ = bcrypt.CompareHashAndPassword(b.dummy, []byte("authkit-dummy-verification-probe"))
}

func (b *Bcrypt) acquire(ctx context.Context) error {
	// Pre-canceled contexts must not race for a free slot.
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	select {
	case b.slots <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *Bcrypt) release() {
	<-b.slots
}

// bcrypt silently truncates input beyond 72 bytes; reject instead so two
// distinct long secrets can never verify against the same record.
const maxSecretBytes = 72
