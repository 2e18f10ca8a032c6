package redis

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/BiasLens-Intelligence/internal/infrastructure/monitoring/logging"
)

type cachedResponse struct {
	Indicators int    `json:"indicators"`
	Language   string `json:"language"`
}

// newMockCache builds a Cache over a mocked client.  Default TTL is zero so
// Set expectations do not depend on the jitter.
func newMockCache(t *testing.T) (*Cache, redismock.ClientMock) {
	t.Helper()
	db, mock := redismock.NewClientMock()
	client := &Client{rdb: db, logger: logging.NewNopLogger()}
	return NewCache(client, nil, WithPrefix("test:"), WithDefaultTTL(0)), mock
}

func TestCache_Get_Hit(t *testing.T) {
	cache, mock := newMockCache(t)
	want := cachedResponse{Indicators: 3, Language: "en"}
	data, _ := json.Marshal(want)
	mock.ExpectGet("test:k1").SetVal(string(data))

	var got cachedResponse
	require.NoError(t, cache.Get(context.Background(), "k1", &got))
	assert.Equal(t, want, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCache_Get_Miss(t *testing.T) {
	cache, mock := newMockCache(t)
	mock.ExpectGet("test:absent").RedisNil()

	var got cachedResponse
	err := cache.Get(context.Background(), "absent", &got)
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCache_Set(t *testing.T) {
	cache, mock := newMockCache(t)
	value := cachedResponse{Indicators: 1, Language: "cs"}
	data, _ := json.Marshal(value)
	mock.ExpectSet("test:k2", data, 0).SetVal("OK")

	require.NoError(t, cache.Set(context.Background(), "k2", value, 0))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCache_Delete(t *testing.T) {
	cache, mock := newMockCache(t)
	mock.ExpectDel("test:a", "test:b").SetVal(2)

	require.NoError(t, cache.Delete(context.Background(), "a", "b"))
	assert.NoError(t, cache.Delete(context.Background())) // no keys is a no-op
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCache_GetOrSet_HitSkipsLoader(t *testing.T) {
	cache, mock := newMockCache(t)
	want := cachedResponse{Indicators: 9, Language: "en"}
	data, _ := json.Marshal(want)
	mock.ExpectGet("test:k3").SetVal(string(data))

	var got cachedResponse
	err := cache.GetOrSet(context.Background(), "k3", &got, 0,
		func(context.Context) (any, error) {
			t.Fatal("loader must not run on a hit")
			return nil, nil
		})
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCache_GetOrSet_MissRunsLoaderAndStores(t *testing.T) {
	cache, mock := newMockCache(t)
	loaded := cachedResponse{Indicators: 2, Language: "fi"}
	data, _ := json.Marshal(loaded)
	mock.ExpectGet("test:k4").RedisNil()
	mock.ExpectSet("test:k4", data, 0).SetVal("OK")

	var got cachedResponse
	err := cache.GetOrSet(context.Background(), "k4", &got, 0,
		func(context.Context) (any, error) { return loaded, nil })
	require.NoError(t, err)
	assert.Equal(t, loaded, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

type countingObserver struct {
	hits, misses int
}

func (o *countingObserver) CacheHit(string)  { o.hits++ }
func (o *countingObserver) CacheMiss(string) { o.misses++ }

func TestCache_ObserverSeesHitsAndMisses(t *testing.T) {
	db, mock := redismock.NewClientMock()
	client := &Client{rdb: db, logger: logging.NewNopLogger()}
	obs := &countingObserver{}
	cache := NewCache(client, nil, WithPrefix("test:"), WithObserver(obs))

	data, _ := json.Marshal(cachedResponse{Indicators: 1, Language: "en"})
	mock.ExpectGet("test:h").SetVal(string(data))
	mock.ExpectGet("test:m").RedisNil()

	var got cachedResponse
	require.NoError(t, cache.Get(context.Background(), "h", &got))
	assert.ErrorIs(t, cache.Get(context.Background(), "m", &got), ErrCacheMiss)
	assert.Equal(t, 1, obs.hits)
	assert.Equal(t, 1, obs.misses)
}

func TestCache_GetOrSet_LoaderErrorPropagates(t *testing.T) {
	cache, mock := newMockCache(t)
	mock.ExpectGet("test:k5").RedisNil()

	var got cachedResponse
	err := cache.GetOrSet(context.Background(), "k5", &got, 0,
		func(context.Context) (any, error) { return nil, errors.New("engine failed") })
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
