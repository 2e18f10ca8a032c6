package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/turtacn/BiasLens-Intelligence/internal/infrastructure/monitoring/logging"
	pkgerrors "github.com/turtacn/BiasLens-Intelligence/pkg/errors"
)

var (
	// ErrCacheMiss reports an absent key.
	ErrCacheMiss = pkgerrors.New(pkgerrors.ErrCodeNotFound, "cache miss")
)

// Serializer converts cached values to and from bytes.
type Serializer interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

type jsonSerializer struct{}

func (jsonSerializer) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonSerializer) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Observer receives hit/miss measurements, labelled with the cache name.
type Observer interface {
	CacheHit(cache string)
	CacheMiss(cache string)
}

type nopObserver struct{}

func (nopObserver) CacheHit(string)  {}
func (nopObserver) CacheMiss(string) {}

// Cache is a typed get/set view over one redis client with key prefixing,
// TTL jitter and stampede control.
type Cache struct {
	client     *Client
	logger     logging.Logger
	name       string
	prefix     string
	defaultTTL time.Duration
	serializer Serializer
	observer   Observer
	group      singleflight.Group
}

// CacheOption customizes a Cache.
type CacheOption func(*Cache)

// WithPrefix overrides the key prefix.
func WithPrefix(prefix string) CacheOption {
	return func(c *Cache) { c.prefix = prefix }
}

// WithDefaultTTL overrides the TTL used when Set receives zero.
func WithDefaultTTL(ttl time.Duration) CacheOption {
	return func(c *Cache) { c.defaultTTL = ttl }
}

// WithSerializer overrides the JSON serializer.
func WithSerializer(s Serializer) CacheOption {
	return func(c *Cache) { c.serializer = s }
}

// WithName overrides the name the observer sees.
func WithName(name string) CacheOption {
	return func(c *Cache) { c.name = name }
}

// WithObserver installs a hit/miss observer.
func WithObserver(o Observer) CacheOption {
	return func(c *Cache) {
		if o != nil {
			c.observer = o
		}
	}
}

// NewCache constructs a Cache over client.
func NewCache(client *Client, logger logging.Logger, opts ...CacheOption) *Cache {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	c := &Cache{
		client:     client,
		logger:     logger.Named("cache"),
		name:       "response",
		prefix:     "biaslens:",
		defaultTTL: 5 * time.Minute,
		serializer: jsonSerializer{},
		observer:   nopObserver{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache) fullKey(key string) string { return c.prefix + key }

// jitterTTL spreads expiry by +/-10% so cache entries written together do
// not expire together.
func (c *Cache) jitterTTL(ttl time.Duration) time.Duration {
	if ttl == 0 {
		return 0
	}
	jitter := float64(ttl) * 0.1 * (rand.Float64()*2 - 1)
	return ttl + time.Duration(jitter)
}

// Get loads key into dest, returning ErrCacheMiss when absent.
func (c *Cache) Get(ctx context.Context, key string, dest any) error {
	data, err := c.client.rdb.Get(ctx, c.fullKey(key)).Bytes()
	if err == redis.Nil {
		c.observer.CacheMiss(c.name)
		return ErrCacheMiss
	}
	if err != nil {
		return pkgerrors.Wrap(err, pkgerrors.ErrCodeCacheError, "cache get")
	}
	c.observer.CacheHit(c.name)
	return c.serializer.Unmarshal(data, dest)
}

// Set stores value under key.  A zero ttl uses the default.
func (c *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.defaultTTL
	}
	data, err := c.serializer.Marshal(value)
	if err != nil {
		return pkgerrors.Wrap(err, pkgerrors.ErrCodeSerialization, "cache set")
	}
	return c.client.rdb.Set(ctx, c.fullKey(key), data, c.jitterTTL(ttl)).Err()
}

// Delete removes keys.
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.fullKey(k)
	}
	return c.client.rdb.Del(ctx, full...).Err()
}

// GetOrSet loads key into dest; on a miss it invokes loader, stores the
// result and fills dest from it.  Concurrent misses on the same key are
// collapsed to one loader call.
func (c *Cache) GetOrSet(ctx context.Context, key string, dest any, ttl time.Duration,
	loader func(ctx context.Context) (any, error)) error {

	if err := c.Get(ctx, key, dest); err == nil {
		return nil
	} else if !pkgerrors.IsCode(err, pkgerrors.ErrCodeNotFound) {
		c.logger.Warn("cache read failed, falling through to loader",
			logging.String("key", key), logging.Err(err))
	}

	value, err, _ := c.group.Do(key, func() (any, error) {
		loaded, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		if err := c.Set(ctx, key, loaded, ttl); err != nil {
			c.logger.Warn("cache write failed",
				logging.String("key", key), logging.Err(err))
		}
		return loaded, nil
	})
	if err != nil {
		return err
	}

	// Round-trip through the serializer so every caller observes the same
	// representation regardless of whether it hit the cache.
	data, err := c.serializer.Marshal(value)
	if err != nil {
		return pkgerrors.Wrap(err, pkgerrors.ErrCodeSerialization, "cache fill")
	}
	return c.serializer.Unmarshal(data, dest)
}
