package defcache

import "time"

// MemoryOption configures the in-memory cache.
type MemoryOption func(*memoryOptions)

type memoryOptions struct {
	defaultTTL      time.Duration
	cleanupInterval time.Duration
	maxScopes       int
}

func defaultMemoryOptions() *memoryOptions {
	return &memoryOptions{
		defaultTTL:      10 * time.Minute,
		cleanupInterval: time.Minute,
		maxScopes:       0, // unbounded
	}
}

// WithDefaultTTL sets the TTL applied when Set is called with a zero TTL.
// Default: 10 minutes.
func WithDefaultTTL(d time.Duration) MemoryOption {
	return func(o *memoryOptions) {
		o.defaultTTL = d
	}
}

// WithCleanupInterval sets how often expired snapshots are swept.
// Zero disables the background sweep. Default: 1 minute.
func WithCleanupInterval(d time.Duration) MemoryOption {
	return func(o *memoryOptions) {
		o.cleanupInterval = d
	}
}

// WithMaxScopes caps the number of cached scopes; the least recently
// used scope is evicted at capacity. Default: unbounded.
func WithMaxScopes(n int) MemoryOption {
	return func(o *memoryOptions) {
		o.maxScopes = n
	}
}

// RedisOption configures the Redis-backed cache.
type RedisOption func(*redisOptions)

type redisOptions struct {
	prefix        string
	defaultTTL    time.Duration
	poolSize      int
	retryAttempts int
	retryInterval time.Duration
}

func defaultRedisOptions() *redisOptions {
	return &redisOptions{
		prefix:        "customfields:defs",
		defaultTTL:    10 * time.Minute,
		poolSize:      10,
		retryAttempts: 3,
		retryInterval: time.Second,
	}
}

// WithPrefix sets the Redis key prefix. Default: "customfields:defs".
func WithPrefix(prefix string) RedisOption {
	return func(o *redisOptions) {
		o.prefix = prefix
	}
}

// WithRedisDefaultTTL sets the TTL applied when Set is called with a
// zero TTL. Default: 10 minutes.
func WithRedisDefaultTTL(d time.Duration) RedisOption {
	return func(o *redisOptions) {
		o.defaultTTL = d
	}
}

// WithPoolSize sets the connection pool size. Default: 10.
func WithPoolSize(n int) RedisOption {
	return func(o *redisOptions) {
		o.poolSize = n
	}
}

// WithConnectRetry configures connection retry behavior.
// Default: 3 attempts, 1 second linear backoff.
func WithConnectRetry(attempts int, interval time.Duration) RedisOption {
	return func(o *redisOptions) {
		o.retryAttempts = attempts
		o.retryInterval = interval
	}
}
