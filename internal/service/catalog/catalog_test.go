package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/zhouzirui/pawmatch/backend/internal/model/breed"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *Cache) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewCache(client, time.Minute)
}

func remoteCatalog(t *testing.T) []byte {
	t.Helper()
	seed := breed.Seed()
	data, err := json.Marshal(seed[:2])
	require.NoError(t, err)
	return data
}

func fastFetcher(t *testing.T, url string, retries int) *Fetcher {
	return NewFetcher(FetcherConfig{
		BaseURL:    url,
		Timeout:    time.Second,
		MaxRetries: retries,
		BaseDelay:  time.Millisecond,
		MaxDelay:   5 * time.Millisecond,
	}, nil, zaptest.NewLogger(t))
}

func TestFetcherRetriesTransientFailures(t *testing.T) {
	body := remoteCatalog(t)
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/breeds", r.URL.Path)
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	got, err := fastFetcher(t, srv.URL+"/", 3).Fetch(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, string(body), string(got))
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetcherStopsOnClientError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := fastFetcher(t, srv.URL, 5).Fetch(context.Background())
	assert.ErrorIs(t, err, ErrPermanent)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetcherGivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := fastFetcher(t, srv.URL, 2).Fetch(context.Background())
	assert.Error(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetcherHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	f := NewFetcher(FetcherConfig{BaseURL: srv.URL, MaxRetries: 10, BaseDelay: time.Hour}, nil, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := f.Fetch(ctx)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestFetcherBackoffIsCappedForLargeAttempts(t *testing.T) {
	f := NewFetcher(FetcherConfig{
		BaseURL:   "http://catalog.invalid",
		BaseDelay: 200 * time.Millisecond,
		MaxDelay:  5 * time.Second,
	}, nil, nil)

	assert.Equal(t, 200*time.Millisecond, f.backoff(0))
	assert.Equal(t, 400*time.Millisecond, f.backoff(1))
	assert.Equal(t, 3200*time.Millisecond, f.backoff(4))
	assert.Equal(t, 5*time.Second, f.backoff(5))
	for _, attempt := range []int{36, 40, 63, 64, 200} {
		assert.Equal(t, 5*time.Second, f.backoff(attempt), "attempt %d", attempt)
	}
}

func TestCacheGetSet(t *testing.T) {
	mr, cache := setupRedis(t)
	ctx := context.Background()

	_, ok, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, []byte(`[]`)))
	data, ok, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, string(data))
	assert.Equal(t, time.Minute, mr.TTL(CacheKey))

	require.NoError(t, cache.Invalidate(ctx))
	assert.False(t, mr.Exists(CacheKey))
}

func TestProviderPrefersCache(t *testing.T) {
	mr, cache := setupRedis(t)
	seed := breed.Seed()
	cached, err := json.Marshal(seed[5:6])
	require.NoError(t, err)
	require.NoError(t, mr.Set(CacheKey, string(cached)))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("remote must not be called on a cache hit")
	}))
	defer srv.Close()

	p := NewProvider(Config{UseSeed: true}, fastFetcher(t, srv.URL, 0), cache, zaptest.NewLogger(t))
	source, err := p.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SourceCache, source)

	store, ok := p.Catalog()
	require.True(t, ok)
	assert.Len(t, store.List(), 1)
	assert.Equal(t, seed[5].Key, store.List()[0].Key)
}

func TestProviderFetchesRemoteAndFillsCache(t *testing.T) {
	mr, cache := setupRedis(t)
	body := remoteCatalog(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	p := NewProvider(Config{UseSeed: true}, fastFetcher(t, srv.URL, 0), cache, zaptest.NewLogger(t))
	source, err := p.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SourceRemote, source)

	stored, err := mr.Get(CacheKey)
	require.NoError(t, err)
	assert.JSONEq(t, string(body), stored)

	store, _ := p.Catalog()
	assert.Len(t, store.List(), 2)
}

func TestProviderInvalidatesCorruptCache(t *testing.T) {
	mr, cache := setupRedis(t)
	require.NoError(t, mr.Set(CacheKey, `{"breeds": "nope"}`))

	p := NewProvider(Config{UseSeed: true}, nil, cache, zaptest.NewLogger(t))
	source, err := p.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SourceSeed, source)
	assert.False(t, mr.Exists(CacheKey))
}

func TestProviderRejectsInvalidRemoteAndFallsBackToFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"key":"broken","name":"Broken","species":"dog","weights":{}}]`))
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "breeds.json")
	data, err := json.Marshal(breed.Seed()[:3])
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	p := NewProvider(Config{File: path, UseSeed: true}, fastFetcher(t, srv.URL, 0), nil, zaptest.NewLogger(t))
	source, err := p.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SourceFile, source)

	store, _ := p.Catalog()
	assert.Len(t, store.List(), 3)
}

func TestProviderUnavailableWithoutSources(t *testing.T) {
	p := NewProvider(Config{File: filepath.Join(t.TempDir(), "missing.yaml")}, nil, nil, zaptest.NewLogger(t))

	_, err := p.Load(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
	_, ok := p.Catalog()
	assert.False(t, ok)
	_, ok = p.Source()
	assert.False(t, ok)
}

func TestProviderStartRetriesUntilLoaded(t *testing.T) {
	var calls atomic.Int32
	body := remoteCatalog(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	p := NewProvider(Config{RetryInterval: 5 * time.Millisecond}, fastFetcher(t, srv.URL, 0), nil, zaptest.NewLogger(t))
	ready := make(chan struct{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx, func() { close(ready) })

	select {
	case <-ready:
	case <-time.After(2 * time.Second):
		t.Fatal("catalog never became ready")
	}
	source, ok := p.Source()
	assert.True(t, ok)
	assert.Equal(t, SourceRemote, source)
}

func TestStatic(t *testing.T) {
	store, ok := NewStatic(breed.NewMemoryStore(breed.Seed())).Catalog()
	assert.True(t, ok)
	assert.NotEmpty(t, store.List())
}
