package bitly

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

const (
	// DefaultAPIURL is the host of the bitly API.
	DefaultAPIURL = "api-ssl.bitly.com"
	// DefaultAPIVersion is the version path segment prefixed to every method.
	DefaultAPIVersion = "v3"
	// DefaultDomain is the domain bitlinks are created on.
	DefaultDomain = "bit.ly"
	// DefaultScheme is the URL scheme used to reach the API.
	DefaultScheme = "https"
	// DefaultUserAgent is sent with every request unless overridden.
	DefaultUserAgent = "bitly-go/1.0"
)

// Config holds the recognized client settings. Empty fields fall back to
// the Default* constants.
type Config struct {
	// APIURL is the API host, optionally with a port.
	APIURL string `json:"apiUrl" yaml:"apiUrl"`

	// APIVersion is the path segment placed before the method name.
	APIVersion string `json:"apiVersion" yaml:"apiVersion"`

	// Domain is the shortened-link domain. It is informational only and
	// never used when building request URLs.
	Domain string `json:"domain" yaml:"domain"`

	// Scheme is "https" or "http".
	Scheme string `json:"scheme" yaml:"scheme"`
}

// DefaultConfig returns the configuration used when no overrides are given.
func DefaultConfig() Config {
	return Config{
		APIURL:     DefaultAPIURL,
		APIVersion: DefaultAPIVersion,
		Domain:     DefaultDomain,
		Scheme:     DefaultScheme,
	}
}

func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.APIURL == "" {
		c.APIURL = defaults.APIURL
	}
	if c.APIVersion == "" {
		c.APIVersion = defaults.APIVersion
	}
	if c.Domain == "" {
		c.Domain = defaults.Domain
	}
	if c.Scheme == "" {
		c.Scheme = defaults.Scheme
	}
	return c
}

// BaseURL returns "{scheme}://{apiUrl}".
func (c Config) BaseURL() string {
	return c.Scheme + "://" + c.APIURL
}

// Option configures a Client.
type Option func(*Client)

// WithConfig overrides every non-empty field of cfg.
func WithConfig(cfg Config) Option {
	return func(c *Client) {
		if cfg.APIURL != "" {
			c.config.APIURL = cfg.APIURL
		}
		if cfg.APIVersion != "" {
			c.config.APIVersion = cfg.APIVersion
		}
		if cfg.Domain != "" {
			c.config.Domain = cfg.Domain
		}
		if cfg.Scheme != "" {
			c.config.Scheme = cfg.Scheme
		}
	}
}

// WithAPIURL sets the API host.
func WithAPIURL(apiURL string) Option {
	return func(c *Client) {
		c.config.APIURL = apiURL
	}
}

// WithAPIVersion sets the version path segment.
func WithAPIVersion(version string) Option {
	return func(c *Client) {
		c.config.APIVersion = version
	}
}

// WithDomain sets the informational shortened-link domain.
func WithDomain(domain string) Option {
	return func(c *Client) {
		c.config.Domain = domain
	}
}

// WithScheme sets the URL scheme used to reach the API.
func WithScheme(scheme string) Option {
	return func(c *Client) {
		c.config.Scheme = scheme
	}
}

// WithHTTPClient sets the *http.Client requests are sent through.
// The client is never modified; combined with WithTimeout a copy is used.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout bounds every request, connection and body read included.
// Zero disables the timeout; context deadlines apply regardless.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = &timeout
	}
}

// WithUserAgent overrides DefaultUserAgent.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithLogger sets the logger requests are reported to. The default discards
// everything. The access token is never logged.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithMetrics registers request counters and latency histograms with reg.
// Collectors already registered by another Client on the same registry are
// shared.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *Client) {
		c.registerer = reg
	}
}
