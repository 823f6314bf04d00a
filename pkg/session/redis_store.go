package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix   = "session:"
	redisIdentPrefix = "session:ident:"
)

// RedisStore implements Store on go-redis. Records are JSON values with
// a native TTL, so expiry sweeping is handled by Redis itself and
// per-token mutations run as optimistic WATCH transactions.
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedisStore wraps an already-connected client.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func (r *RedisStore) Create(ctx context.Context, session *Session) error {
	if session == nil || session.Token == "" {
		return ErrInvalidSession
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return ErrInvalidSession
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return errors.Join(ErrInvalidSession, err)
	}

	// SET NX is the atomic check-and-insert: a live token never gets
	// silently overwritten.
	ok, err := r.client.SetNX(ctx, redisKeyPrefix+session.Token, payload, ttl).Result()
	if err != nil {
		return storeErr(err)
	}
	if !ok {
		return ErrTokenTaken
	}

	if session.Identifier != "" {
		if err := r.client.SAdd(ctx, redisIdentPrefix+session.Identifier, session.Token).Err(); err != nil {
			return storeErr(err)
		}
		if err := r.extendIndex(ctx, session.Identifier, ttl); err != nil {
			return storeErr(err)
		}
	}

	return nil
}

// extendIndex keeps the identifier index alive at least as long as its
// longest-lived member, so tokens reclaimed by native TTL cannot strand
// set entries forever.
func (r *RedisStore) extendIndex(ctx context.Context, identifier string, ttl time.Duration) error {
	key := redisIdentPrefix + identifier

	current, err := r.client.TTL(ctx, key).Result()
	if err != nil {
		return err
	}
	// Negative TTL is a missing key or one with no expiry; both fall
	// through so the key ends up bounded.
	if current >= ttl {
		return nil
	}
	return r.client.Expire(ctx, key, ttl).Err()
}

func (r *RedisStore) Get(ctx context.Context, token string) (*Session, error) {
	payload, err := r.client.Get(ctx, redisKeyPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, storeErr(err)
	}

	var session Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, errors.Join(ErrInvalidSession, err)
	}

	// The TTL usually reclaims expired records before we see them, but
	// the stored expiry stays authoritative.
	if session.IsExpired() {
		_ = r.client.Del(ctx, redisKeyPrefix+token).Err()
		return nil, ErrSessionExpired
	}

	return &session, nil
}

func (r *RedisStore) Update(ctx context.Context, session *Session) error {
	if session == nil || session.Token == "" {
		return ErrInvalidSession
	}

	return r.mutate(ctx, session.Token, func(*Session) (*Session, error) {
		return session, nil
	})
}

func (r *RedisStore) Touch(ctx context.Context, token string, extendTo time.Time) error {
	err := r.mutate(ctx, token, func(stored *Session) (*Session, error) {
		stored.ExpiresAt = extendTo
		stored.LastActivityAt = time.Now()
		return stored, nil
	})
	if errors.Is(err, ErrSessionNotFound) || errors.Is(err, ErrSessionExpired) {
		return nil
	}
	return err
}

func (r *RedisStore) UpdateActivity(ctx context.Context, token string, lastActivity time.Time) error {
	return r.mutate(ctx, token, func(stored *Session) (*Session, error) {
		stored.LastActivityAt = lastActivity
		return stored, nil
	})
}

// mutate applies fn to the stored record inside a WATCH transaction, the
// per-record compare-and-set that keeps concurrent updates from tearing
// the data bag or the expiry.
func (r *RedisStore) mutate(ctx context.Context, token string, fn func(*Session) (*Session, error)) error {
	key := redisKeyPrefix + token

	txn := func(tx *redis.Tx) error {
		payload, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return ErrSessionNotFound
			}
			return err
		}

		var stored Session
		if err := json.Unmarshal(payload, &stored); err != nil {
			return errors.Join(ErrInvalidSession, err)
		}
		if stored.IsExpired() {
			return ErrSessionExpired
		}

		next, err := fn(&stored)
		if err != nil {
			return err
		}

		ttl := time.Until(next.ExpiresAt)
		if ttl <= 0 {
			return ErrSessionExpired
		}

		updated, err := json.Marshal(next)
		if err != nil {
			return errors.Join(ErrInvalidSession, err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, updated, ttl)
			return nil
		})
		if err != nil {
			return err
		}

		// An extended session must not outlive its identifier index.
		if next.Identifier != "" {
			if err := r.extendIndex(ctx, next.Identifier, ttl); err != nil {
				return err
			}
		}
		return nil
	}

	for range 3 {
		err := r.client.Watch(ctx, txn, key)
		if !errors.Is(err, redis.TxFailedErr) {
			if err != nil && !isSessionErr(err) {
				return storeErr(err)
			}
			return err
		}
		// Lost the race; retry against the fresh record.
	}

	return storeErr(redis.TxFailedErr)
}

func (r *RedisStore) Delete(ctx context.Context, token string) error {
	key := redisKeyPrefix + token

	// Look up the identifier first so the secondary index stays tidy;
	// a record already gone still deletes cleanly.
	payload, err := r.client.Get(ctx, key).Bytes()
	if err == nil {
		var stored Session
		if json.Unmarshal(payload, &stored) == nil && stored.Identifier != "" {
			_ = r.client.SRem(ctx, redisIdentPrefix+stored.Identifier, token).Err()
		}
	} else if !errors.Is(err, redis.Nil) {
		return storeErr(err)
	}

	if err := r.client.Del(ctx, key).Err(); err != nil {
		return storeErr(err)
	}
	return nil
}

// DeleteExpired is a no-op: Redis TTLs reclaim expired records natively.
func (r *RedisStore) DeleteExpired(ctx context.Context) error {
	return nil
}

func (r *RedisStore) DeleteByIdentifier(ctx context.Context, identifier string) error {
	if identifier == "" {
		return nil
	}

	indexKey := redisIdentPrefix + identifier
	tokens, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return storeErr(err)
	}

	keys := make([]string, 0, len(tokens)+1)
	for _, token := range tokens {
		keys = append(keys, redisKeyPrefix+token)
	}
	keys = append(keys, indexKey)

	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return storeErr(err)
	}
	return nil
}

func storeErr(err error) error {
	return errors.Join(ErrStoreUnavailable, err)
}

func isSessionErr(err error) bool {
	return errors.Is(err, ErrSessionNotFound) ||
		errors.Is(err, ErrSessionExpired) ||
		errors.Is(err, ErrInvalidSession)
}
