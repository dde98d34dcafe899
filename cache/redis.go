package cache

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache is a CacheProvider backed by Redis.
// Expiry is handled by Redis key TTLs.
type RedisCache struct {
	rclient   *redis.Client
	namespace string
	timeout   time.Duration
}

type RedisConfig struct {
	// Address of the Redis server, e.g. localhost:6379.
	Addr     string
	Password string
	DB       int
	// Namespace is prepended to all keys.
	Namespace string
	// Timeout for single operations. Defaults to 5 seconds.
	Timeout time.Duration
}

// NewRedisCache connects to Redis and checks the connection.
func NewRedisCache(config RedisConfig) (*RedisCache, error) {
	rclient := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})
	rc := &RedisCache{
		rclient:   rclient,
		namespace: config.Namespace,
		timeout:   config.Timeout,
	}
	if rc.timeout == 0 {
		rc.timeout = 5 * time.Second
	}
	ctx, cancel := rc.context()
	defer cancel()
	if err := rclient.Ping(ctx).Err(); err != nil {
		rclient.Close()
		return nil, err
	}
	return rc, nil
}

func (rc *RedisCache) Close() error {
	return rc.rclient.Close()
}

func (rc *RedisCache) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), rc.timeout)
}

func (rc *RedisCache) Get(key string) ([]byte, bool, error) {
	ctx, cancel := rc.context()
	defer cancel()
	bytes, err := rc.rclient.Get(ctx, rc.namespace+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	} else if err != nil {
		return nil, false, err
	}
	return bytes, true, nil
}

// Put stores the entry with a TTL. Entries that have already expired are not stored.
func (rc *RedisCache) Put(key string, expires time.Time, bytes []byte) error {
	ttl := time.Until(expires)
	if ttl <= 0 {
		return rc.Purge(key)
	}
	ctx, cancel := rc.context()
	defer cancel()
	return rc.rclient.Set(ctx, rc.namespace+key, bytes, ttl).Err()
}

func (rc *RedisCache) Purge(key string) error {
	ctx, cancel := rc.context()
	defer cancel()
	return rc.rclient.Del(ctx, rc.namespace+key).Err()
}

func (rc *RedisCache) Has(key string) (bool, error) {
	ctx, cancel := rc.context()
	defer cancel()
	n, err := rc.rclient.Exists(ctx, rc.namespace+key).Result()
	return n > 0, err
}

// Keys scans the keyspace page by page. The timeout applies to each page.
func (rc *RedisCache) Keys(prefix string, cb func(string)) error {
	pattern := escapeGlob(rc.namespace+prefix) + "*"
	var cursor uint64
	for {
		ctx, cancel := rc.context()
		keys, nextCursor, err := rc.rclient.Scan(ctx, cursor, pattern, 100).Result()
		cancel()
		if err != nil {
			return err
		}
		for _, key := range keys {
			cb(strings.TrimPrefix(key, rc.namespace))
		}
		cursor = nextCursor
		if cursor == 0 {
			return nil
		}
	}
}

// PurgeExpired is a no-op, Redis expires keys itself.
func (rc *RedisCache) PurgeExpired(now time.Time) (int, error) {
	return 0, nil
}

// escapeGlob escapes the characters that have a meaning in Redis match patterns.
func escapeGlob(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\', '^', '-':
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
