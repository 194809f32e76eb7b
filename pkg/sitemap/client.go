package sitemap

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/fedwiki/wikikit/pkg/errors"
	"github.com/fedwiki/wikikit/pkg/logging"
)

// DefaultTimeout bounds one request when no client is supplied
const DefaultTimeout = 30 * time.Second

// SitemapPath is where a site publishes its sitemap
const SitemapPath = "/system/sitemap.json"

// Client fetches sitemaps and pages
type Client struct {
	http   *http.Client
	logger zerolog.Logger
}

// NewClient creates a Client. A nil httpClient gets DefaultTimeout.
func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{http: httpClient, logger: logging.GetLogger("sitemap")}
}

// SiteURL normalises a site given as a bare host or a URL
func SiteURL(site string) (*url.URL, error) {
	site = strings.TrimSpace(site)
	if site == "" {
		return nil, errors.New(errors.ErrInvalidInput, "site is empty")
	}
	if !strings.Contains(site, "://") {
		site = "http://" + site
	}
	u, err := url.Parse(site)
	if err != nil || u.Host == "" {
		return nil, errors.Newf(errors.ErrInvalidInput, "invalid site %q", site).WithDetail("site", site)
	}
	return u, nil
}

// FetchSitemap reads the sitemap of site and sorts it newest first
func (c *Client) FetchSitemap(ctx context.Context, site string) (*Sitemap, error) {
	u, err := SiteURL(site)
	if err != nil {
		return nil, err
	}
	target := u.ResolveReference(&url.URL{Path: SitemapPath})

	var entries []Entry
	if err := c.getJSON(ctx, target.String(), &entries); err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date.Time)
	})

	return &Sitemap{
		Name:    target.Hostname(),
		URL:     u.String(),
		Entries: entries,
	}, nil
}

// FetchPage reads the page document for slug on site
func (c *Client) FetchPage(ctx context.Context, site, slug string) (*Page, error) {
	u, err := SiteURL(site)
	if err != nil {
		return nil, err
	}
	target := fmt.Sprintf("%s/%s.json", strings.TrimRight(u.String(), "/"), url.PathEscape(slug))

	page := &Page{}
	if err := c.getJSON(ctx, target, page); err != nil {
		return nil, err
	}
	return page, nil
}

func (c *Client) getJSON(ctx context.Context, target string, v interface{}) error {
	c.logger.Info().Str("url", target).Msg("Loading")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return errors.Wrapf(err, errors.ErrInvalidInput, "invalid url %s", target)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, errors.ErrDownload, "failed to fetch %s", target).
			WithDetail("url", target)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.Newf(errors.ErrDownload, "failed to fetch %s: %s", target, resp.Status).
			WithDetail("url", target).
			WithDetail("status", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return errors.Wrapf(err, errors.ErrDecode, "failed to decode %s", target).
			WithDetail("url", target)
	}
	return nil
}
