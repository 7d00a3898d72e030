// Package catalog loads the breed catalog from its configured sources and
// reports when it is available for scoring.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/zhouzirui/pawmatch/backend/internal/metrics"
	"github.com/zhouzirui/pawmatch/backend/internal/model/breed"
)

// ErrUnavailable is returned when no source produced a usable catalog.
var ErrUnavailable = errors.New("breed catalog unavailable")

// Source names where a catalog came from.
type Source string

const (
	SourceCache  Source = "cache"
	SourceRemote Source = "remote"
	SourceFile   Source = "file"
	SourceSeed   Source = "seed"
)

// Config selects the local fallbacks. Remote and cache are enabled by
// passing a Fetcher and a Cache to NewProvider.
type Config struct {
	File          string
	UseSeed       bool
	RetryInterval time.Duration
}

type loaded struct {
	store  breed.Store
	source Source
}

// Provider resolves the catalog in the order cache, remote, file, seed and
// publishes the first valid one.
type Provider struct {
	cfg     Config
	fetcher *Fetcher
	cache   *Cache
	logger  *zap.Logger
	current atomic.Pointer[loaded]
}

// NewProvider wires the sources. fetcher and cache may be nil.
func NewProvider(cfg Config, fetcher *Fetcher, cache *Cache, logger *zap.Logger) *Provider {
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provider{cfg: cfg, fetcher: fetcher, cache: cache, logger: logger}
}

// Catalog returns the published store, or false while none has loaded.
func (p *Provider) Catalog() (breed.Store, bool) {
	cur := p.current.Load()
	if cur == nil {
		return nil, false
	}
	return cur.store, true
}

// Source reports where the published catalog came from.
func (p *Provider) Source() (Source, bool) {
	cur := p.current.Load()
	if cur == nil {
		return "", false
	}
	return cur.source, true
}

// Load resolves and publishes a catalog synchronously.
func (p *Provider) Load(ctx context.Context) (Source, error) {
	profiles, source, err := p.resolve(ctx)
	if err != nil {
		return "", err
	}
	p.current.Store(&loaded{store: breed.NewMemoryStore(profiles), source: source})
	p.logger.Info("breed catalog loaded", zap.String("source", string(source)), zap.Int("profiles", len(profiles)))
	return source, nil
}

// Start loads the catalog in the background, retrying until it succeeds or
// ctx ends. onReady runs once after the first successful load.
func (p *Provider) Start(ctx context.Context, onReady func()) {
	go func() {
		for {
			_, err := p.Load(ctx)
			if err == nil {
				if onReady != nil {
					onReady()
				}
				return
			}
			p.logger.Warn("breed catalog load failed", zap.Error(err), zap.Duration("retryIn", p.cfg.RetryInterval))

			select {
			case <-ctx.Done():
				return
			case <-time.After(p.cfg.RetryInterval):
			}
		}
	}()
}

func (p *Provider) resolve(ctx context.Context) ([]breed.Profile, Source, error) {
	if p.cache != nil {
		if profiles, ok := p.fromCache(ctx); ok {
			return profiles, SourceCache, nil
		}
	}

	if p.fetcher != nil {
		if profiles, ok := p.fromRemote(ctx); ok {
			return profiles, SourceRemote, nil
		}
	}

	if p.cfg.File != "" {
		profiles, err := breed.LoadFile(p.cfg.File)
		if err == nil {
			metrics.CatalogLoads.WithLabelValues(string(SourceFile), "success").Inc()
			return profiles, SourceFile, nil
		}
		metrics.CatalogLoads.WithLabelValues(string(SourceFile), "error").Inc()
		p.logger.Warn("catalog file rejected", zap.String("path", p.cfg.File), zap.Error(err))
	}

	if p.cfg.UseSeed {
		profiles := breed.Seed()
		if err := breed.Validate(profiles); err != nil {
			return nil, "", fmt.Errorf("built-in catalog: %w", err)
		}
		metrics.CatalogLoads.WithLabelValues(string(SourceSeed), "success").Inc()
		return profiles, SourceSeed, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	return nil, "", ErrUnavailable
}

func (p *Provider) fromCache(ctx context.Context) ([]breed.Profile, bool) {
	data, ok, err := p.cache.Get(ctx)
	switch {
	case err != nil:
		metrics.CatalogLoads.WithLabelValues(string(SourceCache), "error").Inc()
		p.logger.Warn("catalog cache read failed", zap.Error(err))
		return nil, false
	case !ok:
		metrics.CatalogLoads.WithLabelValues(string(SourceCache), "miss").Inc()
		return nil, false
	}

	profiles, err := breed.Decode(data, breed.FormatJSON)
	if err != nil {
		metrics.CatalogLoads.WithLabelValues(string(SourceCache), "error").Inc()
		p.logger.Warn("cached catalog rejected, invalidating", zap.Error(err))
		if err := p.cache.Invalidate(ctx); err != nil {
			p.logger.Warn("catalog cache invalidate failed", zap.Error(err))
		}
		return nil, false
	}
	metrics.CatalogLoads.WithLabelValues(string(SourceCache), "success").Inc()
	return profiles, true
}

func (p *Provider) fromRemote(ctx context.Context) ([]breed.Profile, bool) {
	data, err := p.fetcher.Fetch(ctx)
	if err != nil {
		metrics.CatalogLoads.WithLabelValues(string(SourceRemote), "error").Inc()
		p.logger.Warn("remote catalog unavailable", zap.Error(err))
		return nil, false
	}

	profiles, err := breed.Decode(data, breed.FormatJSON)
	if err != nil {
		metrics.CatalogLoads.WithLabelValues(string(SourceRemote), "error").Inc()
		p.logger.Warn("remote catalog rejected", zap.Error(err))
		return nil, false
	}
	metrics.CatalogLoads.WithLabelValues(string(SourceRemote), "success").Inc()

	if p.cache != nil {
		if err := p.cache.Set(ctx, data); err != nil {
			p.logger.Warn("catalog cache write failed", zap.Error(err))
		}
	}
	return profiles, true
}

// Static is a catalog source that is always available.
type Static struct {
	store breed.Store
}

// NewStatic wraps store.
func NewStatic(store breed.Store) *Static {
	return &Static{store: store}
}

// Catalog implements the quiz catalog source.
func (s *Static) Catalog() (breed.Store, bool) {
	return s.store, s.store != nil
}
