// Package seed implements the optional seed-expansion strategies from
// SPEC_FULL.md §4.10: sitemap parsing, certificate-transparency log
// queries, and Common Crawl index lookups. Every URL a strategy
// surfaces is run through urlfilter.Admit before being returned, so
// seed discovery can never bypass the whitelist or trap heuristics.
package seed

import (
	"context"
	"fmt"
	"strings"

	"github.com/arjunsahni/spacetime-crawler-go/internal/extract"
	"github.com/arjunsahni/spacetime-crawler-go/internal/fetch"
	"github.com/arjunsahni/spacetime-crawler-go/internal/urlfilter"
)

// FromSitemap fetches https://domain/sitemap.xml, sitemap_index.xml and
// sitemap-index.xml (all three, every time), recursively
// expanding any nested sitemap indexes, and returns every admissible
// <loc> URL. Adapted from the teacher's internal/seeding/sitemap.go.
func FromSitemap(ctx context.Context, domain string, fetcher fetch.Fetcher, filter *urlfilter.Filter) ([]string, error) {
	candidates := []string{
		"https://" + domain + "/sitemap.xml",
		"https://" + domain + "/sitemap_index.xml",
		"https://" + domain + "/sitemap-index.xml",
	}

	visited := make(map[string]bool)
	var admitted []string

	var walk func(sitemapURL string) error
	walk = func(sitemapURL string) error {
		if visited[sitemapURL] {
			return nil
		}
		visited[sitemapURL] = true

		resp, err := fetcher.Fetch(ctx, sitemapURL)
		if err != nil {
			return fmt.Errorf("seed: fetching sitemap %q: %w", sitemapURL, err)
		}
		if resp.StatusCode != 200 || len(resp.Body) == 0 {
			return nil
		}

		for _, u := range extract.SitemapURLs(string(resp.Body)) {
			if strings.HasSuffix(u, ".xml") || strings.Contains(u, "sitemap") {
				if err := walk(u); err != nil {
					continue
				}
				continue
			}
			if filter.Admit(u) {
				admitted = append(admitted, u)
			}
		}
		return nil
	}

	var lastErr error
	for _, c := range candidates {
		if err := walk(c); err != nil {
			lastErr = err
		}
	}

	if len(admitted) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return admitted, nil
}
