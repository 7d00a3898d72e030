package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrPermanent marks a remote failure that retrying will not fix.
var ErrPermanent = errors.New("permanent catalog fetch failure")

// FetcherConfig controls the remote catalog client.
type FetcherConfig struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

func (c FetcherConfig) withDefaults() FetcherConfig {
	if c.Timeout <= 0 {
		c.Timeout = 5 * time.Second
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	if c.BaseDelay <= 0 {
		c.BaseDelay = 200 * time.Millisecond
	}
	if c.MaxDelay <= 0 {
		c.MaxDelay = 5 * time.Second
	}
	return c
}

// Fetcher downloads the raw catalog JSON from {BaseURL}/breeds.
type Fetcher struct {
	cfg    FetcherConfig
	client *http.Client
	logger *zap.Logger
}

// NewFetcher builds a Fetcher. A nil client gets one with cfg.Timeout.
func NewFetcher(cfg FetcherConfig, client *http.Client, logger *zap.Logger) *Fetcher {
	cfg = cfg.withDefaults()
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{cfg: cfg, client: client, logger: logger}
}

// Fetch retries transient failures with exponential backoff and returns the
// response body of the first successful attempt.
func (f *Fetcher) Fetch(ctx context.Context) ([]byte, error) {
	url := strings.TrimRight(f.cfg.BaseURL, "/") + "/breeds"
	var lastErr error

	for attempt := 0; attempt <= f.cfg.MaxRetries; attempt++ {
		body, err := f.fetchOnce(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if errors.Is(err, ErrPermanent) || attempt == f.cfg.MaxRetries {
			break
		}

		delay := f.backoff(attempt)
		f.logger.Warn("catalog fetch failed, retrying",
			zap.Int("attempt", attempt+1), zap.Duration("backoff", delay), zap.Error(err))

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, fmt.Errorf("catalog fetch cancelled after %d attempts: %w", attempt+1, ctx.Err())
		}
	}

	return nil, fmt.Errorf("fetch catalog from %s: %w", url, lastErr)
}

// backoff doubles BaseDelay per attempt and stops at MaxDelay. Doubling stops
// as soon as the cap is reached, so large attempt counts cannot overflow.
func (f *Fetcher) backoff(attempt int) time.Duration {
	delay := f.cfg.BaseDelay
	for i := 0; i < attempt && delay < f.cfg.MaxDelay; i++ {
		delay *= 2
	}
	if delay > f.cfg.MaxDelay {
		delay = f.cfg.MaxDelay
	}
	return delay
}

func (f *Fetcher) fetchOnce(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPermanent, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, fmt.Errorf("catalog service returned %d", resp.StatusCode)
	default:
		return nil, fmt.Errorf("%w: catalog service returned %d", ErrPermanent, resp.StatusCode)
	}
}
