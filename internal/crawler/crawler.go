// Package crawler wires the Frontier, Duplicate Detector, and
// Analytics components into the worker pool & orchestrator from
// spec.md §4.7. Grounded on the teacher's internal/crawler/crawler.go
// (fixed-size worker goroutines, sync.WaitGroup, atomic counters,
// context cancellation), generalized from a single god-object into a
// thin loop over three components it does not own the internals of,
// per spec.md §9's "no hidden singletons" note.
package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/arjunsahni/spacetime-crawler-go/internal/analytics"
	"github.com/arjunsahni/spacetime-crawler-go/internal/dedupe"
	"github.com/arjunsahni/spacetime-crawler-go/internal/extract"
	"github.com/arjunsahni/spacetime-crawler-go/internal/fetch"
	"github.com/arjunsahni/spacetime-crawler-go/internal/frontier"
	"github.com/arjunsahni/spacetime-crawler-go/internal/report"
	"github.com/arjunsahni/spacetime-crawler-go/internal/seed"
	"github.com/arjunsahni/spacetime-crawler-go/internal/tokenize"
	"github.com/arjunsahni/spacetime-crawler-go/internal/types"
	"github.com/arjunsahni/spacetime-crawler-go/internal/urlfilter"
)

// Crawler is the orchestrator: it owns no crawl state of its own
// beyond the three components (Frontier, Duplicate Detector,
// Analytics) and dispatches a fixed-size worker pool over them.
type Crawler struct {
	cfg types.Config

	frontier   *frontier.Frontier
	detector   *dedupe.Detector
	aggregator *analytics.Aggregator
	fetcher    fetch.Fetcher
	filter     *urlfilter.Filter
	audit      *AuditLog
	logger     *slog.Logger

	discovered atomic.Int64
	processed  atomic.Int64
	errors     atomic.Int64

	wg sync.WaitGroup
}

// New builds a Crawler from configuration: opens the durable
// frontier, runs any configured seed-discovery strategies, and opens
// the audit log.
func New(cfg types.Config) (*Crawler, error) {
	return newCrawler(cfg, fetch.NewHTTPFetcher(cfg))
}

// newCrawler builds a Crawler against an explicit Fetcher, letting
// tests substitute a fake without touching the network.
func newCrawler(cfg types.Config, fetcher fetch.Fetcher) (*Crawler, error) {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}

	filter := urlfilter.NewFilter(cfg.AllowedDomains)

	f, err := frontier.New(cfg.SaveFile, cfg.Restart, cfg.SeedURLs, cfg.TimeDelay, filter)
	if err != nil {
		return nil, fmt.Errorf("crawler: opening frontier: %w", err)
	}

	audit, err := OpenAuditLog(cfg.AuditLogFile)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("crawler: opening audit log: %w", err)
	}

	c := &Crawler{
		cfg:        cfg,
		frontier:   f,
		detector:   dedupe.New(),
		aggregator: analytics.New(cfg.RootDomain),
		fetcher:    fetcher,
		filter:     filter,
		audit:      audit,
		logger:     slog.Default(),
	}

	c.runSeedDiscovery()

	return c, nil
}

// runSeedDiscovery executes the configured seed-expansion strategies
// and enqueues every admitted URL, per SPEC_FULL.md §4.10. Failures
// are logged and otherwise ignored.
func (c *Crawler) runSeedDiscovery() {
	if c.cfg.SeedingStrategy == "" || c.cfg.SeedingStrategy == "none" {
		return
	}

	urls, errs := seed.Discover(context.Background(), c.cfg.SeedingStrategy, c.cfg.RootDomain, c.fetcher, c.filter)
	for _, err := range errs {
		c.logger.Warn("seed discovery strategy failed", "error", err)
	}

	added := 0
	for _, u := range urls {
		ok, err := c.frontier.AddURL(u)
		if err != nil {
			c.logger.Warn("seed url rejected", "url", u, "error", err)
			continue
		}
		if ok {
			added++
			c.discovered.Add(1)
		}
	}
	c.logger.Info("seed discovery complete", "found", len(urls), "added", added)
}

// Crawl runs the worker pool to completion: workers dequeue until the
// frontier reports empty, then Crawl joins them and writes the final
// report from the Analytics snapshot.
func (c *Crawler) Crawl(ctx context.Context) (*types.Results, error) {
	defer c.frontier.Close()
	defer c.audit.Close()

	for i := 0; i < c.cfg.Workers; i++ {
		c.wg.Add(1)
		go c.worker(ctx, i)
	}
	c.wg.Wait()

	results := &types.Results{
		Discovered: int(c.discovered.Load()),
		Processed:  int(c.processed.Load()),
		Errors:     int(c.errors.Load()),
	}

	if c.cfg.ReportFile != "" {
		snap := c.aggregator.Snapshot()
		if err := report.Write(snap, c.cfg.RootDomain, c.cfg.ReportFile); err != nil {
			return results, fmt.Errorf("crawler: writing report: %w", err)
		}
	}

	return results, nil
}

// worker implements spec.md §4.7's per-worker loop: dequeue, fetch,
// tokenize, dedupe-admit, record analytics, extract and enqueue
// links, mark complete.
func (c *Crawler) worker(ctx context.Context, id int) {
	defer c.wg.Done()
	log := c.logger.With("worker", id)

	for {
		if ctx.Err() != nil {
			return
		}

		url, ok := c.frontier.NextURL()
		if !ok {
			log.Debug("frontier drained, worker exiting")
			return
		}

		c.processURLSafely(ctx, url)
	}
}

func (c *Crawler) processURL(ctx context.Context, rawURL string) {
	outcome := types.PageOutcome{URL: rawURL, CrawledAt: time.Now()}
	defer func() {
		c.audit.Record(outcome)
		if err := c.frontier.MarkComplete(rawURL); err != nil {
			c.logger.Warn("mark complete failed", "url", rawURL, "error", err)
		}
		c.processed.Add(1)
	}()

	resp, err := c.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		outcome.Error = err.Error()
		c.errors.Add(1)
		c.logger.Warn("fetch failed", "url", rawURL, "error", err)
		return
	}
	outcome.StatusCode = resp.StatusCode
	outcome.ContentLength = int64(len(resp.Body))

	if resp.StatusCode != 200 || len(resp.Body) == 0 {
		return
	}

	decoded := tokenize.DecodeUTF8(resp.Body)
	text := extract.Text(decoded)
	tokens := tokenize.Tokens(text)
	outcome.WordCount = len(tokens)

	host := analytics.HostFromURL(resp.FinalURL)
	isNew := c.detector.Admit(tokens)
	outcome.Duplicate = !isNew

	c.aggregator.Record(rawURL, host, tokens, !isNew)

	if !isNew {
		return
	}

	links := extract.Links(resp.Body, resp.FinalURL)
	outcome.LinkCount = len(links)

	for _, link := range links {
		canonical, err := urlfilter.Canonicalize(link)
		if err != nil || !c.filter.Admit(canonical) {
			continue
		}
		added, err := c.frontier.AddURL(canonical)
		if err != nil {
			c.logger.Warn("add url failed", "url", canonical, "error", err)
			continue
		}
		if added {
			c.discovered.Add(1)
		}
	}
}
