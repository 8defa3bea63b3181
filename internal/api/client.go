package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/gregjones/httpcache"
	"github.com/gregjones/httpcache/diskcache"
	"github.com/rs/zerolog/log"

	"github.com/rentkit/rentkit/internal/session"
)

// Config holds client configuration for the remote storefront API.
type Config struct {
	BaseURL  string
	Timeout  time.Duration
	CacheDir string
	Debug    bool
}

// DefaultConfig returns a default client configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL: "http://localhost:4030",
		Timeout: 30 * time.Second,
	}
}

// Client talks JSON-over-HTTP to the remote storefront API. Catalog GETs
// go through an HTTP cache and are retried on transient failures;
// authentication and account mutations are sent exactly once.
type Client struct {
	base       *url.URL
	httpClient *http.Client
}

// New creates a client over the given session store. The store supplies
// the bearer token for every request; the client never writes to it.
func New(cfg Config, store session.Store) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", cfg.BaseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: missing scheme or host", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	// Cache catalog responses on disk when a cache dir is configured so
	// they survive restarts, otherwise in memory
	var cacheTransport *httpcache.Transport
	if cfg.CacheDir != "" {
		cacheTransport = httpcache.NewTransport(diskcache.New(cfg.CacheDir))
	} else {
		cacheTransport = httpcache.NewTransport(httpcache.NewMemoryCache())
	}

	log.Debug().
		Str("baseURL", base.String()).
		Str("cacheDir", cfg.CacheDir).
		Msg("api client initialized")

	return &Client{
		base: base,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: &bearerTransport{store: store, next: cacheTransport},
		},
	}, nil
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// url resolves an API path against the base URL.
func (c *Client) url(path string) string {
	u := *c.base
	u.Path = strings.TrimSuffix(u.Path, "/") + path
	return u.String()
}

// get fetches a catalog-style resource, retrying transient failures with
// exponential backoff. Only safe, idempotent GETs go through here.
func (c *Client) get(ctx context.Context, path string, out any) error {
	operation := func() (struct{}, error) {
		err := c.do(ctx, http.MethodGet, path, nil, out)
		if err == nil {
			return struct{}{}, nil
		}

		if apiErr, ok := AsError(err); ok {
			// Retry network failures and server-side errors only
			if apiErr.Kind == KindTransport || apiErr.StatusCode >= 500 {
				return struct{}{}, err
			}
		}

		return struct{}{}, backoff.Permanent(err)
	}

	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = 100 * time.Millisecond

	_, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(expo),
		backoff.WithMaxTries(3),
	)
	return err
}

// doOnce sends a request exactly once. Auth and mutating calls use this:
// the client never retries them automatically.
func (c *Client) doOnce(ctx context.Context, method, path string, body, out any) error {
	return c.do(ctx, method, path, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.send(req, out)
}

// send executes a prepared request and decodes the JSON response into
// out. All error normalization happens here.
func (c *Client) send(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")

	started := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Debug().Err(err).Str("method", req.Method).Str("path", req.URL.Path).Msg("request failed")
		return transportError(err)
	}
	defer resp.Body.Close()

	log.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(started)).
		Msg("api call")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return responseError(resp)
	}

	if out == nil {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{
			Kind:    KindTransport,
			Message: "malformed response body",
			cause:   err,
		}
	}

	return nil
}
