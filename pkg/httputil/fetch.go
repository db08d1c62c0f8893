package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/matzehuels/deckdraw/pkg/observability"
)

// maxDeckSize caps remote deck downloads at 4 MiB.
const maxDeckSize = 4 << 20

// IsURL reports whether path names an HTTP or HTTPS deck source.
func IsURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// Client fetches deck sources over HTTP with response caching and
// automatic retry for transient failures.
type Client struct {
	http  *http.Client
	cache *Cache
}

// NewClient creates a Client backed by cache. A nil cache disables
// response caching; every fetch goes to the network.
func NewClient(cache *Cache) *Client {
	return &Client{
		http:  &http.Client{Timeout: 30 * time.Second},
		cache: cache,
	}
}

// FetchDeck retrieves the deck source at url.
//
// Fresh cached responses are returned without a network round trip.
// Network errors, 5xx responses, and 429 responses are retried with
// exponential backoff; other non-2xx statuses fail immediately.
func (c *Client) FetchDeck(ctx context.Context, url string) ([]byte, error) {
	key := "deck:" + url
	if c.cache != nil {
		var data []byte
		if ok, err := c.cache.Get(key, &data); ok && err == nil {
			observability.Cache().OnCacheHit(ctx, "deck-source")
			return data, nil
		}
		observability.Cache().OnCacheMiss(ctx, "deck-source")
	}

	var data []byte
	err := RetryWithBackoff(ctx, func() error {
		var ferr error
		data, ferr = c.fetch(ctx, url)
		return ferr
	})
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Set(key, data); err == nil {
			observability.Cache().OnCacheSet(ctx, "deck-source", len(data))
		}
	}
	return data, nil
}

func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	observability.HTTP().OnRequest(ctx, req.Method, req.URL.Host, req.URL.Path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, req.Method, req.URL.Host, req.URL.Path, err)
		return nil, &RetryableError{Err: err}
	}
	defer resp.Body.Close()

	observability.HTTP().OnResponse(ctx, req.Method, req.URL.Host, req.URL.Path,
		resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return nil, &RetryableError{Err: fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)}
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDeckSize))
	if err != nil {
		return nil, &RetryableError{Err: err}
	}
	return data, nil
}
