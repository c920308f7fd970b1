package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pders01/crossover/internal/catalog"
	"github.com/pders01/crossover/internal/config"
	"github.com/pders01/crossover/internal/debuglog"
	"github.com/pders01/crossover/internal/validation"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"
)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 4 << 20

// SearchQuery is one autocomplete lookup. Type is the media type being
// searched for, i.e. the complement of the active mode.
type SearchQuery struct {
	Query   string
	Type    catalog.Mode
	Filters catalog.Filters
}

// RecommendQuery asks for recommendations of Mode's type seeded by the
// complementary item ID.
type RecommendQuery struct {
	Mode    catalog.Mode
	ID      string
	Filters catalog.Filters
}

// Cache stores raw response bodies keyed by request URL.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, data []byte) error
}

type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
	limiter   *rate.Limiter
	breaker   *gobreaker.CircuitBreaker[[]byte]
	cache     Cache
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithCache serves repeated GETs from cache.
func WithCache(cache Cache) Option {
	return func(c *Client) {
		c.cache = cache
	}
}

// WithBreaker overrides the circuit breaker settings.
func WithBreaker(s BreakerSettings) Option {
	return func(c *Client) {
		c.breaker = newBreaker("backend", s)
	}
}

// NewClient validates cfg.BaseURL and builds a client for it.
func NewClient(cfg config.APIConfig, opts ...Option) (*Client, error) {
	base, err := validation.NewBaseURLValidator().ValidateAndNormalize(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("api base URL: %w", err)
	}

	limit := rate.Limit(cfg.RateLimit)
	if cfg.RateLimit <= 0 {
		limit = rate.Inf
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 1
	}

	c := &Client{
		baseURL:   base,
		userAgent: cfg.UserAgent,
		http:      &http.Client{Timeout: cfg.HTTPTimeout},
		limiter:   rate.NewLimiter(limit, burst),
		breaker:   newBreaker("backend", DefaultBreakerSettings()),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalized backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SearchURL builds the search endpoint URL for q.
func (c *Client) SearchURL(q SearchQuery) string {
	v := url.Values{}
	v.Set("query", q.Query)
	v.Set("type", q.Type.String())
	setFilters(v, q.Filters)
	return c.baseURL + "/search?" + v.Encode()
}

// RecommendURL builds the mode-routed recommendation URL for q.
func (c *Client) RecommendURL(q RecommendQuery) string {
	v := url.Values{}
	v.Set("id", q.ID)
	setFilters(v, q.Filters)
	return c.baseURL + q.Mode.RecommendPath() + "?" + v.Encode()
}

func setFilters(v url.Values, f catalog.Filters) {
	v.Set("include_adult", strconv.FormatBool(f.IncludeAdult))
	v.Set("include_adaptations", strconv.FormatBool(f.IncludeAdaptations))
}

// Search returns the backend's ordered matches for q. All failures wrap
// ErrSearchRequestFailed.
func (c *Client) Search(ctx context.Context, q SearchQuery) ([]catalog.Item, error) {
	items, err := c.fetchItems(ctx, c.SearchURL(q))
	if err != nil {
		return nil, wrap(ErrSearchRequestFailed, fmt.Sprintf("search %q", q.Query), err)
	}
	return items, nil
}

// Recommend returns recommendations for q. All failures wrap
// ErrRecommendationRequestFailed.
func (c *Client) Recommend(ctx context.Context, q RecommendQuery) ([]catalog.Item, error) {
	items, err := c.fetchItems(ctx, c.RecommendURL(q))
	if err != nil {
		return nil, wrap(ErrRecommendationRequestFailed, fmt.Sprintf("recommend %s %s", q.Mode, q.ID), err)
	}
	return items, nil
}

func (c *Client) fetchItems(ctx context.Context, u string) ([]catalog.Item, error) {
	log := debuglog.WithFields(map[string]interface{}{"component": "api", "url": u})

	if c.cache != nil {
		if body, ok := c.cache.Get(u); ok {
			if items, err := catalog.DecodeItems(body); err == nil {
				log.Debugf("cache hit (%d items)", len(items))
				return items, nil
			}
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.get(ctx, u)
	})
	if err != nil {
		log.Warnf("request failed: %v", err)
		return nil, err
	}

	items, err := catalog.DecodeItems(body)
	if err != nil {
		log.Warnf("undecodable body: %v", err)
		return nil, err
	}
	log.Debugf("fetched %d items", len(items))

	if c.cache != nil {
		if err := c.cache.Set(u, body); err != nil {
			log.Warnf("caching response: %v", err)
		}
	}
	return items, nil
}

func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Code: resp.StatusCode, URL: u}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}
	return body, nil
}
