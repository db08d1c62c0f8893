// Package httputil provides HTTP utilities for remote deck sources.
//
// # Overview
//
// Decks can be rendered straight from a URL. This package provides the
// infrastructure that makes repeated fetches cheap and transient
// failures invisible:
//
//   - [Client]: deck source fetching with caching and retry
//   - [Cache]: file-based HTTP response caching
//   - [Retry]: automatic retry with exponential backoff
//
// # Caching
//
// [Cache] stores fetched responses in the filesystem (~/.cache/deckdraw/)
// with configurable TTL. This speeds up repeated renders of the same
// remote deck and avoids hammering the source host.
//
// Usage:
//
//	cache, err := httputil.NewCache("", 24*time.Hour)
//	client := httputil.NewClient(cache)
//	data, err := client.FetchDeck(ctx, "https://example.com/decks/arch.yaml")
//
// # Retry
//
// [Retry] wraps operations with automatic retry for transient failures:
//
//   - Network errors
//   - 5xx server errors
//   - 429 rate limit responses
//
// It uses exponential backoff, doubling the delay after each attempt.
//
// # Configuration
//
// Default settings are suitable for most use cases:
//
//   - Cache directory: ~/.cache/deckdraw/
//   - Max retries: 3
//   - Base backoff: 1 second
package httputil
