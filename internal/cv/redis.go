package cv

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient is the subset of go-redis commands the store uses.
// *redis.Client and *redis.ClusterClient satisfy it.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisStore keeps each session's CV under <prefix><session>:cvGeneratorData.
type RedisStore struct {
	client RedisClient
	prefix string
	ttl    time.Duration
}

// RedisStoreOption configures RedisStore behavior.
type RedisStoreOption func(*RedisStore)

// WithRedisPrefix sets the key prefix.
// Default: "admindash:cv:".
func WithRedisPrefix(prefix string) RedisStoreOption {
	return func(r *RedisStore) {
		r.prefix = prefix
	}
}

// WithRedisTTL expires saved CVs after d. Zero keeps them.
func WithRedisTTL(d time.Duration) RedisStoreOption {
	return func(r *RedisStore) {
		r.ttl = d
	}
}

// NewRedisStore creates a store over client.
func NewRedisStore(client RedisClient, opts ...RedisStoreOption) *RedisStore {
	r := &RedisStore{client: client, prefix: "admindash:cv:"}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *RedisStore) key(session string) string {
	return r.prefix + session + ":" + StorageKey
}

// Load implements Store.
func (r *RedisStore) Load(ctx context.Context, session string) (CV, error) {
	data, err := r.client.Get(ctx, r.key(session)).Bytes()
	if stderrors.Is(err, redis.Nil) {
		return CV{}, notFound()
	}
	if err != nil {
		return CV{}, unavailable("redis", err)
	}
	return Unmarshal(data)
}

// Save implements Store.
func (r *RedisStore) Save(ctx context.Context, session string, c CV) error {
	data, err := Marshal(c)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key(session), data, r.ttl).Err(); err != nil {
		return unavailable("redis", err)
	}
	return nil
}

// Delete implements Store.
func (r *RedisStore) Delete(ctx context.Context, session string) error {
	if err := r.client.Del(ctx, r.key(session)).Err(); err != nil {
		return unavailable("redis", err)
	}
	return nil
}

// Backend implements Store.
func (r *RedisStore) Backend() string { return "redis" }

// Prefix returns the key prefix.
func (r *RedisStore) Prefix() string { return r.prefix }
