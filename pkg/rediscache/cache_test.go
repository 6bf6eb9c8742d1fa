package rediscache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aneilbaboo/accesscontrol-plus/pkg/policy"
)

// fakeRedis implements the client interface in memory. Command results are
// built with the go-redis result constructors, the same values a real server
// round-trip would produce.
type fakeRedis struct {
	mu      sync.Mutex
	data    map[string]string
	getErr  error
	setErr  error
	delErr  error
	lastTTL time.Duration
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	val, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(val, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return redis.NewStatusResult("", f.setErr)
	}
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	f.lastTTL = ttl
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.delErr != nil {
		return redis.NewIntResult(0, f.delErr)
	}
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

// countingSource counts loads so tests can tell cache hits from fills.
type countingSource struct {
	doc   *policy.Document
	err   error
	loads int
}

func (s *countingSource) LoadDocument(context.Context) (*policy.Document, error) {
	s.loads++
	if s.err != nil {
		return nil, s.err
	}
	return s.doc, nil
}

func testDocument() *policy.Document {
	return &policy.Document{
		Version: policy.Version,
		Roles: map[string]policy.RoleDoc{
			"editor": {
				Resources: map[string]map[string][]policy.RuleDoc{
					"article": {
						"update": {{Effect: "grant", Fields: []string{"*", "!history"}}},
					},
				},
			},
		},
	}
}

func fingerprint(t *testing.T, doc *policy.Document) string {
	t.Helper()
	fp, err := doc.Fingerprint()
	require.NoError(t, err)
	return fp
}

func TestCacheLoadDocument(t *testing.T) {
	t.Parallel()

	t.Run("fills on miss and serves from cache afterwards", func(t *testing.T) {
		t.Parallel()

		rdb := newFakeRedis()
		src := &countingSource{doc: testDocument()}
		cache := newCache(rdb, src)

		first, err := cache.LoadDocument(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, src.loads)
		assert.Contains(t, rdb.data, DefaultCacheKey)
		assert.Equal(t, DefaultCacheTTL, rdb.lastTTL)

		second, err := cache.LoadDocument(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, src.loads, "second load must not hit the source")
		assert.Equal(t, fingerprint(t, first), fingerprint(t, second))
	})

	t.Run("respects key and ttl options", func(t *testing.T) {
		t.Parallel()

		rdb := newFakeRedis()
		src := &countingSource{doc: testDocument()}
		cache := newCache(rdb, src, WithKey("tenant-a:policy"), WithTTL(time.Hour))

		_, err := cache.LoadDocument(context.Background())
		require.NoError(t, err)
		assert.Contains(t, rdb.data, "tenant-a:policy")
		assert.Equal(t, time.Hour, rdb.lastTTL)
	})

	t.Run("corrupt snapshot falls back to source", func(t *testing.T) {
		t.Parallel()

		rdb := newFakeRedis()
		rdb.data[DefaultCacheKey] = `{not json`
		src := &countingSource{doc: testDocument()}
		cache := newCache(rdb, src)

		doc, err := cache.LoadDocument(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, src.loads)
		assert.Equal(t, fingerprint(t, src.doc), fingerprint(t, doc))

		// The fill replaced the corrupt payload.
		assert.NotEqual(t, `{not json`, rdb.data[DefaultCacheKey])
	})

	t.Run("redis outage degrades to direct load", func(t *testing.T) {
		t.Parallel()

		rdb := newFakeRedis()
		rdb.getErr = assert.AnError
		src := &countingSource{doc: testDocument()}
		cache := newCache(rdb, src)

		doc, err := cache.LoadDocument(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, src.loads)
		assert.Equal(t, fingerprint(t, src.doc), fingerprint(t, doc))
	})

	t.Run("store failure does not fail the load", func(t *testing.T) {
		t.Parallel()

		rdb := newFakeRedis()
		rdb.setErr = assert.AnError
		src := &countingSource{doc: testDocument()}
		cache := newCache(rdb, src)

		_, err := cache.LoadDocument(context.Background())
		require.NoError(t, err)
	})

	t.Run("source error propagates on miss", func(t *testing.T) {
		t.Parallel()

		rdb := newFakeRedis()
		src := &countingSource{err: assert.AnError}
		cache := newCache(rdb, src)

		_, err := cache.LoadDocument(context.Background())
		require.ErrorIs(t, err, assert.AnError)
	})
}

func TestCacheInvalidate(t *testing.T) {
	t.Parallel()

	t.Run("next load hits the source again", func(t *testing.T) {
		t.Parallel()

		rdb := newFakeRedis()
		src := &countingSource{doc: testDocument()}
		cache := newCache(rdb, src)

		_, err := cache.LoadDocument(context.Background())
		require.NoError(t, err)
		require.Equal(t, 1, src.loads)

		require.NoError(t, cache.Invalidate(context.Background()))

		_, err = cache.LoadDocument(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, src.loads)
	})

	t.Run("delete failure is reported", func(t *testing.T) {
		t.Parallel()

		rdb := newFakeRedis()
		rdb.delErr = assert.AnError
		cache := newCache(rdb, &countingSource{doc: testDocument()})

		err := cache.Invalidate(context.Background())
		require.ErrorIs(t, err, ErrFailedToInvalidate)
	})
}

func TestNewCachePanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		NewCache(nil, &countingSource{})
	})
	assert.Panics(t, func() {
		newCache(newFakeRedis(), nil)
	})
}
