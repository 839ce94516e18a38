package price

import (
	"context"
	"net/url"
	"strings"

	"github.com/shelbytessier/nativepath-promotions-sub001/internal/logger"
	"github.com/shelbytessier/nativepath-promotions-sub001/pkg/fetcher"
)

// DefaultPlatformHosts are hostname fragments that mark a storefront whose
// markup the platform strategies understand.
var DefaultPlatformHosts = []string{"shopify", "nativepath"}

// Client fetches a page and extracts its price.
type Client struct {
	fetcher       fetcher.Fetcher
	extractor     *Extractor
	platformHosts []string
	fetchOpts     fetcher.Options
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithPlatformHosts replaces the platform hostname fragments.
func WithPlatformHosts(hosts []string) ClientOption {
	return func(c *Client) {
		if len(hosts) > 0 {
			c.platformHosts = hosts
		}
	}
}

// WithFetchOptions sets per-request fetch options.
func WithFetchOptions(opts fetcher.Options) ClientOption {
	return func(c *Client) {
		c.fetchOpts = opts
	}
}

// NewClient creates a price client backed by f.
func NewClient(f fetcher.Fetcher, opts ...ClientOption) *Client {
	c := &Client{
		fetcher:       f,
		extractor:     NewExtractor(),
		platformHosts: DefaultPlatformHosts,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsPlatform reports whether rawURL's host contains a platform fragment.
func (c *Client) IsPlatform(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	for _, h := range c.platformHosts {
		if h != "" && strings.Contains(host, strings.ToLower(h)) {
			return true
		}
	}
	return false
}

// FetchPrice fetches rawURL and extracts its price. Transport failures are
// returned as errors; a page without a recognizable price is a Result with
// Error set and a nil error.
func (c *Client) FetchPrice(ctx context.Context, rawURL string) (Result, error) {
	content, err := c.fetcher.Fetch(ctx, rawURL, c.fetchOpts)
	if err != nil {
		return Result{}, err
	}

	platform := c.IsPlatform(rawURL)
	res := c.extractor.Extract(content.HTML, platform)
	logger.DebugContext(ctx, "price lookup complete",
		"url", rawURL,
		"platform", platform,
		"price", res.Price,
		"strategy", res.Strategy)
	return res, nil
}
