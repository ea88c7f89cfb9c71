package bitly

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	apihttp "github.com/wesleyorama2/bitly/internal/http"
)

// API method names.
const (
	MethodShorten        = "shorten"
	MethodExpand         = "expand"
	MethodClicks         = "clicks"
	MethodClicksByMinute = "clicks_by_minute"
	MethodClicksByDay    = "clicks_by_day"
	MethodLookup         = "lookup"
	MethodInfo           = "info"
	MethodReferrers      = "referrers"
	MethodCountries      = "countries"
)

// Client calls the bitly API on behalf of a single access token.
type Client struct {
	accessToken string
	config      Config
	transport   *apihttp.Client
	logger      zerolog.Logger
	metrics     *metrics

	// construction-only settings
	httpClient *http.Client
	timeout    *time.Duration
	userAgent  string
	registerer prometheus.Registerer
}

// New creates a Client signing every request with accessToken.
func New(accessToken string, opts ...Option) (*Client, error) {
	if accessToken == "" {
		return nil, ErrMissingAccessToken
	}

	c := &Client{
		accessToken: accessToken,
		config:      DefaultConfig(),
		logger:      zerolog.Nop(),
		userAgent:   DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(c)
	}
	c.config = c.config.withDefaults()

	if c.registerer != nil {
		m, err := newMetrics(c.registerer)
		if err != nil {
			return nil, fmt.Errorf("bitly: register metrics: %w", err)
		}
		c.metrics = m
	}

	transportOpts := []apihttp.ClientOption{
		apihttp.WithBaseURL(c.config.BaseURL()),
		apihttp.WithHeader("Accept", "application/json"),
		apihttp.WithHeader("User-Agent", c.userAgent),
	}
	if c.httpClient != nil {
		httpClient := c.httpClient
		if c.timeout != nil {
			clone := *httpClient
			clone.Timeout = *c.timeout
			httpClient = &clone
		}
		transportOpts = append(transportOpts, apihttp.WithHTTPClient(httpClient))
	} else {
		// Without WithTimeout only the caller's context bounds a request.
		var timeout time.Duration
		if c.timeout != nil {
			timeout = *c.timeout
		}
		transportOpts = append(transportOpts, apihttp.WithTimeout(timeout))
	}
	c.transport = apihttp.NewClient(transportOpts...)

	return c, nil
}

// Config returns the effective configuration, defaults applied.
func (c *Client) Config() Config {
	return c.config
}

// Shorten creates a bitlink for longURL.
func (c *Client) Shorten(ctx context.Context, longURL string) (*Response, error) {
	return c.Request(ctx, MethodShorten, url.Values{"longUrl": {longURL}})
}

// Expand returns the long URLs behind short URLs and hashes.
func (c *Client) Expand(ctx context.Context, items ...string) (*Response, error) {
	return c.Request(ctx, MethodExpand, NormalizeItems(items...))
}

// Clicks returns click totals for short URLs and hashes.
func (c *Client) Clicks(ctx context.Context, items ...string) (*Response, error) {
	return c.Request(ctx, MethodClicks, NormalizeItems(items...))
}

// ClicksByMinute returns per-minute clicks for short URLs and hashes.
func (c *Client) ClicksByMinute(ctx context.Context, items ...string) (*Response, error) {
	return c.Request(ctx, MethodClicksByMinute, NormalizeItems(items...))
}

// ClicksByDay returns per-day clicks for short URLs and hashes.
func (c *Client) ClicksByDay(ctx context.Context, items ...string) (*Response, error) {
	return c.Request(ctx, MethodClicksByDay, NormalizeItems(items...))
}

// Lookup finds the bitlink for a long URL.
func (c *Client) Lookup(ctx context.Context, longURL string) (*Response, error) {
	return c.Request(ctx, MethodLookup, url.Values{"url": {longURL}})
}

// Info returns page title and creation details for short URLs and hashes.
func (c *Client) Info(ctx context.Context, items ...string) (*Response, error) {
	return c.Request(ctx, MethodInfo, NormalizeItems(items...))
}

// Referrers returns referring sites for a single short URL or hash.
func (c *Client) Referrers(ctx context.Context, item string) (*Response, error) {
	return c.Request(ctx, MethodReferrers, NormalizeItems(item))
}

// Countries returns click countries for a single short URL or hash.
func (c *Client) Countries(ctx context.Context, item string) (*Response, error) {
	return c.Request(ctx, MethodCountries, NormalizeItems(item))
}
