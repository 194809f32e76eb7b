package sitemap

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"
)

// RosterItemType is the story item type listing neighbor sites
const RosterItemType = "roster"

// maxConcurrentSites caps parallel sitemap requests
const maxConcurrentSites = 4

// Roster extracts site hosts from the roster items of page. Blank lines and
// the roster title line are skipped. A non-empty filter keeps only lines
// containing it.
func Roster(page *Page, filter string) []string {
	var sites []string
	for _, item := range page.Story {
		if item.Type != RosterItemType {
			continue
		}
		for _, line := range strings.Split(item.Text, "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.Contains(line, "Our Learning Pod") {
				continue
			}
			if filter != "" && !strings.Contains(line, filter) {
				continue
			}
			sites = append(sites, line)
		}
	}
	return sites
}

// Neighborhood collects the sitemaps of several sites
type Neighborhood struct {
	client *Client
	Sites  []*Sitemap
}

// NewNeighborhood creates an empty neighborhood fetching through client
func NewNeighborhood(client *Client) *Neighborhood {
	return &Neighborhood{client: client}
}

// Add fetches the sitemap of site and appends it
func (n *Neighborhood) Add(ctx context.Context, site string) error {
	sm, err := n.client.FetchSitemap(ctx, site)
	if err != nil {
		return err
	}
	n.Sites = append(n.Sites, sm)
	return nil
}

// AddAll fetches every site concurrently and appends them in the given
// order. Nothing is appended if any fetch fails.
func (n *Neighborhood) AddAll(ctx context.Context, sites []string) error {
	fetched := make([]*Sitemap, len(sites))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentSites)
	for i, site := range sites {
		g.Go(func() error {
			sm, err := n.client.FetchSitemap(gctx, site)
			if err != nil {
				return err
			}
			fetched[i] = sm
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	n.Sites = append(n.Sites, fetched...)
	return nil
}
