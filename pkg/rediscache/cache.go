package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aneilbaboo/accesscontrol-plus/pkg/policy"
)

// Defaults applied by NewCache when no option overrides them.
const (
	DefaultCacheKey = "acp:policy:v1"
	DefaultCacheTTL = 5 * time.Minute
)

// client is the slice of redis.UniversalClient the cache needs. Narrow so
// tests can substitute a fake without a running server.
type client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Cache wraps a policy.DocumentSource with a Redis-backed snapshot so that
// every service instance does not hit the backing store on each policy load.
// It implements policy.DocumentSource itself, so it can stand in front of
// the postgres, mongodb or s3 sources and still compile into an engine
// source via policy.NewSource.
//
// The cache fails open: when Redis is unreachable or holds a corrupt
// snapshot, the wrapped source is consulted directly. An unavailable cache
// must never make authorization unavailable.
type Cache struct {
	client client
	source policy.DocumentSource
	key    string
	ttl    time.Duration
	log    *slog.Logger
}

type CacheOption func(*Cache)

// WithKey overrides the snapshot key.
func WithKey(key string) CacheOption {
	return func(c *Cache) { c.key = key }
}

// WithTTL overrides the snapshot lifetime. Zero disables expiration.
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *Cache) { c.ttl = ttl }
}

// WithLogger routes cache traces to the given logger.
func WithLogger(log *slog.Logger) CacheOption {
	return func(c *Cache) { c.log = log }
}

// NewCache wraps source with a snapshot stored in Redis.
func NewCache(rdb redis.UniversalClient, source policy.DocumentSource, opts ...CacheOption) *Cache {
	if rdb == nil {
		panic("rediscache: redis client cannot be nil")
	}
	return newCache(rdb, source, opts...)
}

func newCache(cl client, source policy.DocumentSource, opts ...CacheOption) *Cache {
	if source == nil {
		panic("rediscache: document source cannot be nil")
	}
	c := &Cache{
		client: cl,
		source: source,
		key:    DefaultCacheKey,
		ttl:    DefaultCacheTTL,
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LoadDocument returns the cached snapshot when present, otherwise loads
// from the wrapped source and stores the result with the configured TTL.
func (c *Cache) LoadDocument(ctx context.Context) (*policy.Document, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	switch {
	case err == nil:
		var doc policy.Document
		if jsonErr := json.Unmarshal(data, &doc); jsonErr == nil {
			c.logFingerprint(ctx, &doc, "policy cache hit")
			return &doc, nil
		}
		// A corrupt snapshot is replaced on the next fill, never served.
		c.log.WarnContext(ctx, "discarding corrupt policy snapshot", "key", c.key)
	case errors.Is(err, redis.Nil):
		// cache miss
	default:
		c.log.WarnContext(ctx, "policy cache unavailable", "key", c.key, "error", err)
	}

	doc, err := c.source.LoadDocument(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(doc); err == nil {
		if err := c.client.Set(ctx, c.key, data, c.ttl).Err(); err != nil {
			c.log.WarnContext(ctx, "failed to store policy snapshot", "key", c.key, "error", err)
		}
	}
	c.logFingerprint(ctx, doc, "policy cache filled")

	return doc, nil
}

// Invalidate drops the snapshot so the next load reads from the backing
// store. Call it after writing new rules.
func (c *Cache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, c.key).Err(); err != nil {
		return errors.Join(ErrFailedToInvalidate, err)
	}
	return nil
}

func (c *Cache) logFingerprint(ctx context.Context, doc *policy.Document, msg string) {
	fp, err := doc.Fingerprint()
	if err != nil {
		return
	}
	c.log.DebugContext(ctx, msg, "key", c.key, "fingerprint", fp)
}
