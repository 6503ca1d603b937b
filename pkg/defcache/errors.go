package defcache

import "errors"

var (
	// ErrNotFound is returned when a scope has no cached snapshot.
	ErrNotFound = errors.New("defcache: snapshot not found")

	// ErrClosed is returned when operating on a closed cache.
	ErrClosed = errors.New("defcache: cache is closed")

	// ErrMarshal is returned when a snapshot cannot be serialized.
	ErrMarshal = errors.New("defcache: failed to marshal snapshot")

	// ErrUnmarshal is returned when a stored snapshot cannot be decoded.
	ErrUnmarshal = errors.New("defcache: failed to unmarshal snapshot")

	// ErrEmptyRedisURL is returned when the Redis connection URL is empty.
	ErrEmptyRedisURL = errors.New("defcache: empty redis connection url")

	// ErrParseRedisURL is returned when the Redis URL cannot be parsed.
	ErrParseRedisURL = errors.New("defcache: failed to parse redis url")

	// ErrRedisConnect is returned when the Redis connection cannot be
	// established after all retry attempts.
	ErrRedisConnect = errors.New("defcache: failed to connect to redis")
)
