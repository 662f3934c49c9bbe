package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/speich/dGraph/pkg/cache"
	"github.com/speich/dGraph/pkg/observability"
)

const (
	httpTimeout = 10 * time.Second

	// MaxBodySize caps downloaded graph documents.
	MaxBodySize = 16 << 20
)

// Client fetches documents over HTTP through a cache.
type Client struct {
	http    *http.Client
	cache   cache.Cache
	keyer   cache.Keyer
	backend string
	headers map[string]string
}

// NewClient creates a client. A nil cache disables caching; headers are sent
// with every request.
func NewClient(c cache.Cache, headers map[string]string) *Client {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Client{
		http:    &http.Client{Timeout: httpTimeout},
		cache:   c,
		keyer:   cache.NewDefaultKeyer(),
		backend: cache.BackendName(c),
		headers: headers,
	}
}

// Fetch returns the body at url. Unless refresh is set, a cached copy is
// returned when present.
func (c *Client) Fetch(ctx context.Context, url string, refresh bool) ([]byte, error) {
	key := c.keyer.SourceKey(url)
	hooks := observability.Cache()

	if !refresh {
		if data, hit, err := c.cache.Get(ctx, key); err == nil && hit {
			hooks.OnCacheHit(ctx, c.backend)
			return data, nil
		}
		hooks.OnCacheMiss(ctx, c.backend)
	}

	var body []byte
	err := cache.RetryWithBackoff(ctx, func() error {
		var err error
		body, err = c.get(ctx, url)
		return err
	})
	if err != nil {
		return nil, err
	}

	if err := c.cache.Set(ctx, key, body, cache.TTLSource); err == nil {
		hooks.OnCacheSet(ctx, c.backend, len(body))
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, cache.Retryable(fmt.Errorf("%w: %v", cache.ErrBackend, err))
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode); err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize+1))
	if err != nil {
		return nil, cache.Retryable(fmt.Errorf("%w: read body: %v", cache.ErrBackend, err))
	}
	if len(data) > MaxBodySize {
		return nil, fmt.Errorf("GET %s: body exceeds %d bytes", url, MaxBodySize)
	}
	return data, nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return cache.ErrNotFound
	case code >= 500:
		return cache.Retryable(fmt.Errorf("%w: status %d", cache.ErrBackend, code))
	default:
		return fmt.Errorf("%w: status %d", cache.ErrBackend, code)
	}
}
