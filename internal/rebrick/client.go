// Package rebrick is a client for the Rebrickable v3 REST API.
// It covers the two entity families Brixie mirrors locally: sets and themes.
//
// The client does not retry. Fallback-to-cache policy on failure belongs to
// the repository layer, which needs to distinguish transport failures (see
// NetworkError) from everything else.
package rebrick

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the Rebrickable v3 API root.
	DefaultBaseURL = "https://rebrickable.com/api/v3/lego"

	// DefaultCacheTTL is the TTL for in-session response caching.
	DefaultCacheTTL = 15 * time.Minute

	// DefaultRateLimit is requests per second. Rebrickable throttles
	// API-key clients at roughly one request per second.
	DefaultRateLimit = 1

	// DefaultTimeout bounds a single HTTP round trip. There is no timeout
	// above this layer.
	DefaultTimeout = 30 * time.Second
)

// Client talks to the Rebrickable API with rate limiting and caching.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	limiter *rate.Limiter
	cache   *responseCache
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API root. Used by tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithRateLimit overrides the requests-per-second limit.
func WithRateLimit(rps int) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), rps)
	}
}

// NewClient creates a new Rebrickable client. The API key may be empty;
// every call will then fail with ErrMissingAPIKey.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: DefaultTimeout},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		cache:   newResponseCache(DefaultCacheTTL),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ClearCache clears the in-session response cache.
func (c *Client) ClearCache() {
	c.cache.clear()
}

// ListSets fetches one page of the set catalog, newest first.
func (c *Client) ListSets(ctx context.Context, pageNum, pageSize int) ([]SetResult, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(pageNum))
	q.Set("page_size", strconv.Itoa(pageSize))
	q.Set("ordering", "-year")
	return listSets(ctx, c, "/sets/", q)
}

// SearchSets fetches one page of sets matching the query.
func (c *Client) SearchSets(ctx context.Context, query string, pageNum, pageSize int) ([]SetResult, error) {
	q := url.Values{}
	q.Set("search", query)
	q.Set("page", strconv.Itoa(pageNum))
	q.Set("page_size", strconv.Itoa(pageSize))
	return listSets(ctx, c, "/sets/", q)
}

// GetSet fetches a single set by set number. Returns (nil, nil) when the
// set does not exist.
func (c *Client) GetSet(ctx context.Context, setNum string) (*SetResult, error) {
	var result SetResult
	found, err := c.getJSON(ctx, "/sets/"+url.PathEscape(setNum)+"/", nil, &result)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &result, nil
}

// ListThemes fetches one page of the theme catalog.
func (c *Client) ListThemes(ctx context.Context, pageNum, pageSize int) ([]ThemeResult, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(pageNum))
	q.Set("page_size", strconv.Itoa(pageSize))
	return listThemes(ctx, c, q)
}

// SearchThemes fetches one page of themes matching the query.
func (c *Client) SearchThemes(ctx context.Context, query string, pageNum, pageSize int) ([]ThemeResult, error) {
	q := url.Values{}
	q.Set("search", query)
	q.Set("page", strconv.Itoa(pageNum))
	q.Set("page_size", strconv.Itoa(pageSize))
	return listThemes(ctx, c, q)
}

// GetTheme fetches a single theme by identifier. Returns (nil, nil) when the
// theme does not exist.
func (c *Client) GetTheme(ctx context.Context, id int) (*ThemeResult, error) {
	var result ThemeResult
	found, err := c.getJSON(ctx, fmt.Sprintf("/themes/%d/", id), nil, &result)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &result, nil
}

func listSets(ctx context.Context, c *Client, path string, q url.Values) ([]SetResult, error) {
	cacheKey := path + "?" + q.Encode()
	if cached, ok := c.cache.get(cacheKey); ok {
		return cached.([]SetResult), nil
	}

	var envelope page[SetResult]
	if _, err := c.getJSON(ctx, path, q, &envelope); err != nil {
		return nil, err
	}

	c.cache.set(cacheKey, envelope.Results)
	return envelope.Results, nil
}

func listThemes(ctx context.Context, c *Client, q url.Values) ([]ThemeResult, error) {
	cacheKey := "/themes/?" + q.Encode()
	if cached, ok := c.cache.get(cacheKey); ok {
		return cached.([]ThemeResult), nil
	}

	var envelope page[ThemeResult]
	if _, err := c.getJSON(ctx, "/themes/", q, &envelope); err != nil {
		return nil, err
	}

	c.cache.set(cacheKey, envelope.Results)
	return envelope.Results, nil
}

// getJSON performs a rate-limited GET and decodes the response into out.
// Returns found=false (and no error) for HTTP 404 so by-id lookups can map
// absence to nil instead of an error.
func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out interface{}) (found bool, err error) {
	if c.apiKey == "" {
		return false, ErrMissingAPIKey
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return false, fmt.Errorf("rate limit wait: %w", err)
	}

	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return false, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "key "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return false, &NetworkError{Op: "GET " + path, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		_, _ = io.Copy(io.Discard, resp.Body)
		return false, nil
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		// Rebrickable answers 401/403 for bad or revoked keys.
		return false, ErrMissingAPIKey
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		_, _ = io.Copy(io.Discard, resp.Body)
		return false, &APIError{StatusCode: resp.StatusCode, URL: u}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, fmt.Errorf("decode response: %w", err)
	}

	return true, nil
}
