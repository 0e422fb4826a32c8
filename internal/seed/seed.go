package seed

import (
	"context"
	"fmt"
	"strings"

	"github.com/arjunsahni/spacetime-crawler-go/internal/fetch"
	"github.com/arjunsahni/spacetime-crawler-go/internal/urlfilter"
)

// Discover runs every strategy named in strategyNames (a comma
// separated subset of "sitemap", "ct", "commoncrawl", or "none") for
// domain and returns the union of admitted URLs. A strategy's failure
// is non-fatal: it logs via the returned per-strategy error slice and
// contributes zero URLs, per SPEC_FULL.md §4.10.
func Discover(ctx context.Context, strategyNames, domain string, fetcher fetch.Fetcher, filter *urlfilter.Filter) ([]string, []error) {
	if strategyNames == "" || strategyNames == "none" {
		return nil, nil
	}

	var urls []string
	var errs []error

	for _, name := range strings.Split(strategyNames, ",") {
		name = strings.TrimSpace(name)
		var found []string
		var err error

		switch name {
		case "sitemap":
			found, err = FromSitemap(ctx, domain, fetcher, filter)
		case "ct":
			found, err = FromCertificateTransparency(ctx, domain, filter)
		case "commoncrawl":
			found, err = FromCommonCrawl(ctx, domain, filter)
		default:
			err = fmt.Errorf("seed: unknown strategy %q", name)
		}

		if err != nil {
			errs = append(errs, err)
			continue
		}
		urls = append(urls, found...)
	}

	return urls, errs
}
