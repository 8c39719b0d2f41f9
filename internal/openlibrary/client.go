// Package openlibrary aggregates the Open Library search, work, and author
// endpoints into the canonical Book and BookDetail shapes. No single
// endpoint is sufficient: search alone carries aggregate rating data, the
// work endpoint alone carries the long-form description, so detail fetches
// reconcile both.
package openlibrary

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"golang.org/x/time/rate"
)

// Default hosts and tuning. Overridable through Options for tests and for
// self-hosted mirrors.
const (
	DefaultAPIBase          = "https://openlibrary.org"
	DefaultCoversBase       = "https://covers.openlibrary.org/b"
	DefaultPlaceholderCover = "https://via.placeholder.com/150x200?text=No+Cover"

	// DefaultFeaturedQuery is the fixed editorial query behind the
	// dashboard.
	DefaultFeaturedQuery = "popular fiction classics"

	defaultPageSize = 20
	defaultTimeout  = 15 * time.Second
	defaultCacheTTL = 10 * time.Minute
	defaultRPS      = 5
	defaultBurst    = 5
)

// Field lists requested from the search endpoint. Asking for exactly what
// we consume keeps the payloads small.
const (
	searchFields   = "key,title,author_name,first_publish_year,cover_i,ratings_average,ratings_count,subject,edition_count"
	featuredFields = "key,title,author_name,first_publish_year,cover_i,ratings_average,ratings_count"
	detailFields   = "key,title,author_name,first_publish_year,cover_i,ratings_average,ratings_count,subject"
)

const userAgent = "openshelf (github.com/blackwell-systems/openshelf)"

// Options configure a Client. Zero values fall back to the defaults above.
type Options struct {
	APIBase          string
	CoversBase       string
	PlaceholderCover string
	FeaturedQuery    string
	PageSize         int
	Timeout          time.Duration
	CacheTTL         time.Duration
	RPS              float64 // outbound request rate toward the API
	Burst            int
}

// Client talks to the Open Library API. Responses are cached in-process
// with a TTL, and outbound requests are rate limited — Open Library is a
// shared public service.
type Client struct {
	apiBase       string
	coversBase    string
	placeholder   string
	featuredQuery string
	pageSize      int

	http    *http.Client
	limiter *rate.Limiter
	cache   *ttlcache.Cache[string, []byte]
}

// New creates a Client. Safe for use from multiple goroutines.
func New(opts Options) *Client {
	if opts.APIBase == "" {
		opts.APIBase = DefaultAPIBase
	}
	if opts.CoversBase == "" {
		opts.CoversBase = DefaultCoversBase
	}
	if opts.PlaceholderCover == "" {
		opts.PlaceholderCover = DefaultPlaceholderCover
	}
	if opts.FeaturedQuery == "" {
		opts.FeaturedQuery = DefaultFeaturedQuery
	}
	if opts.PageSize <= 0 {
		opts.PageSize = defaultPageSize
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = defaultCacheTTL
	}
	if opts.RPS <= 0 {
		opts.RPS = defaultRPS
	}
	if opts.Burst <= 0 {
		opts.Burst = defaultBurst
	}

	cache := ttlcache.New(ttlcache.WithTTL[string, []byte](opts.CacheTTL))
	go cache.Start()

	return &Client{
		apiBase:       opts.APIBase,
		coversBase:    opts.CoversBase,
		placeholder:   opts.PlaceholderCover,
		featuredQuery: opts.FeaturedQuery,
		pageSize:      opts.PageSize,
		http:          &http.Client{Timeout: opts.Timeout},
		limiter:       rate.NewLimiter(rate.Limit(opts.RPS), opts.Burst),
		cache:         cache,
	}
}

// Close stops the cache's expiration goroutine. The client must not be
// used after Close.
func (c *Client) Close() {
	c.cache.Stop()
}

// getJSON fetches url and decodes the body into out, going through the
// response cache and the rate limiter. Any failure — transport, status,
// or decode — comes back as a plain error for the caller to classify.
func (c *Client) getJSON(ctx context.Context, rawURL string, out interface{}) error {
	if item := c.cache.Get(rawURL); item != nil {
		return json.Unmarshal(item.Value(), out)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: status %d", rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	c.cache.Set(rawURL, body, ttlcache.DefaultTTL)
	return nil
}

// searchURL builds a /search.json URL for the given parameters.
func (c *Client) searchURL(params url.Values) string {
	return c.apiBase + "/search.json?" + params.Encode()
}

// workURL builds the work-detail URL for a bare work id ("OL45883W").
func (c *Client) workURL(id string) string {
	return c.apiBase + "/works/" + url.PathEscape(id) + ".json"
}

// normalize runs the record normalizer with this client's cover hosts.
func (c *Client) normalize(doc Doc) Book {
	return normalize(doc, c.coversBase, c.placeholder)
}

func (c *Client) pageSizeParam() string {
	return strconv.Itoa(c.pageSize)
}
