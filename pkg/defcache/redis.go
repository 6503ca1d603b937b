package defcache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/contentkit/customfields/pkg/field"
)

// Redis caches definition snapshots in Redis as JSON, so every node in a
// multi-node deployment sees an invalidation immediately.
type Redis struct {
	client redis.UniversalClient
	opts   *redisOptions
}

// NewRedis wraps an existing Redis client. The client lifecycle stays with
// the caller; Close on the cache does not close the client.
func NewRedis(client redis.UniversalClient, opts ...RedisOption) *Redis {
	o := defaultRedisOptions()
	for _, opt := range opts {
		opt(o)
	}

	return &Redis{client: client, opts: o}
}

// OpenRedis connects to Redis at the given URL (redis:// or rediss://)
// with retry, and returns a cache owning the client.
//
// Example:
//
//	c, err := defcache.OpenRedis(ctx, os.Getenv("CUSTOMFIELDS_REDIS_URL"),
//	    defcache.WithRedisDefaultTTL(30*time.Minute),
//	)
func OpenRedis(ctx context.Context, url string, opts ...RedisOption) (Cache, error) {
	if url == "" {
		return nil, ErrEmptyRedisURL
	}
	if !strings.HasPrefix(url, "redis://") && !strings.HasPrefix(url, "rediss://") {
		return nil, ErrParseRedisURL
	}

	o := defaultRedisOptions()
	for _, opt := range opts {
		opt(o)
	}

	redisOpts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Join(ErrParseRedisURL, err)
	}
	redisOpts.PoolSize = o.poolSize

	client, err := connect(ctx, redisOpts, o.retryAttempts, o.retryInterval)
	if err != nil {
		return nil, err
	}

	return &ownedRedis{Redis: Redis{client: client, opts: o}}, nil
}

// ownedRedis closes its client on Close, unlike NewRedis wrappers.
type ownedRedis struct {
	Redis
}

func (r *ownedRedis) Close() error {
	return r.client.Close()
}

func connect(ctx context.Context, opts *redis.Options, attempts int, interval time.Duration) (redis.UniversalClient, error) {
	attempts = max(attempts, 1)

	for i := range attempts {
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err == nil {
			return client, nil
		}
		_ = client.Close()

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrRedisConnect, ctx.Err())
		case <-time.After(time.Duration(i+1) * interval):
		}
	}

	return nil, ErrRedisConnect
}

// Get returns the snapshot for a scope.
func (r *Redis) Get(ctx context.Context, scope field.Scope) ([]*field.Category, error) {
	data, err := r.client.Get(ctx, r.key(scope)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var defs []*field.Category
	if err := json.Unmarshal(data, &defs); err != nil {
		return nil, errors.Join(ErrUnmarshal, err)
	}

	return defs, nil
}

// Set stores a snapshot for a scope.
func (r *Redis) Set(ctx context.Context, scope field.Scope, defs []*field.Category, ttl time.Duration) error {
	data, err := json.Marshal(defs)
	if err != nil {
		return errors.Join(ErrMarshal, err)
	}

	if ttl == 0 {
		ttl = r.opts.defaultTTL
	}
	// Redis treats 0 as no expiration, which matches our negative-TTL
	// "never expires" semantic.
	redisTTL := max(ttl, 0)

	return r.client.Set(ctx, r.key(scope), data, redisTTL).Err()
}

// Invalidate drops the snapshot for a scope.
func (r *Redis) Invalidate(ctx context.Context, scope field.Scope) error {
	return r.client.Del(ctx, r.key(scope)).Err()
}

// Close is a no-op; the wrapped client's lifecycle belongs to the caller.
func (r *Redis) Close() error {
	return nil
}

func (r *Redis) key(scope field.Scope) string {
	return r.opts.prefix + ":" + scope.String()
}

var _ Cache = (*Redis)(nil)
