package crawler

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/arjunsahni/spacetime-crawler-go/internal/fetch"
	"github.com/arjunsahni/spacetime-crawler-go/internal/types"
)

// fakeFetcher serves canned bodies from an in-memory map, keyed by the
// exact URL requested, so orchestrator tests never touch the network.
// A URL listed in failures instead returns a network-style error.
type fakeFetcher struct {
	pages    map[string]string
	failures map[string]bool
}

func (f *fakeFetcher) Fetch(_ context.Context, rawURL string) (*fetch.Response, error) {
	if f.failures[rawURL] {
		return nil, errors.New("connection refused")
	}
	body, ok := f.pages[rawURL]
	if !ok {
		return &fetch.Response{StatusCode: http.StatusNotFound, FinalURL: rawURL}, nil
	}
	return &fetch.Response{
		StatusCode: http.StatusOK,
		Body:       []byte(body),
		FinalURL:   rawURL,
		Header:     http.Header{},
	}, nil
}

func page(links ...string) string {
	var sb strings.Builder
	sb.WriteString("<html><body><p>ics uci edu crawler frontier analytics dedupe fetch extract seed report worker</p>")
	for _, l := range links {
		sb.WriteString(`<a href="`)
		sb.WriteString(l)
		sb.WriteString(`">link</a>`)
	}
	sb.WriteString("</body></html>")
	return sb.String()
}

func baseConfig(t *testing.T, seeds []string) types.Config {
	t.Helper()
	return types.Config{
		SeedURLs:       seeds,
		AllowedDomains: []string{"ics.uci.edu"},
		RootDomain:     "ics.uci.edu",
		Workers:        2,
		TimeDelay:      time.Millisecond,
		SaveFile:       filepath.Join(t.TempDir(), "frontier.db"),
		Restart:        true,
	}
}

func runCrawl(t *testing.T, cfg types.Config, fetcher fetch.Fetcher) *types.Results {
	t.Helper()
	c, err := newCrawler(cfg, fetcher)
	if err != nil {
		t.Fatalf("newCrawler: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	results, err := c.Crawl(ctx)
	if err != nil {
		t.Fatalf("Crawl: %v", err)
	}
	return results
}

func TestCrawlSeedAndTwoLinkedPagesSameHost(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{
		"https://ics.uci.edu/":  page("https://ics.uci.edu/a", "https://ics.uci.edu/b"),
		"https://ics.uci.edu/a": page(),
		"https://ics.uci.edu/b": page(),
	}}
	cfg := baseConfig(t, []string{"https://ics.uci.edu/"})

	results := runCrawl(t, cfg, fetcher)

	if results.Processed != 3 {
		t.Fatalf("Processed = %d, want 3", results.Processed)
	}
	if results.Errors != 0 {
		t.Fatalf("Errors = %d, want 0", results.Errors)
	}
}

func TestCrawlExactDuplicateIsNotRecrawledForLinks(t *testing.T) {
	// root and /dup share identical visible text (so they collide on
	// the exact fingerprint, which is computed from extracted text
	// tokens, not markup) but link to different places. Whichever of
	// the two is processed second is the detected duplicate, and its
	// link must not be followed — so the page it alone links to is
	// never fetched.
	fetcher := &fakeFetcher{pages: map[string]string{
		"https://ics.uci.edu/":    page("https://ics.uci.edu/dup"),
		"https://ics.uci.edu/dup": page("https://ics.uci.edu/only-from-dup"),
	}}

	cfg := baseConfig(t, []string{"https://ics.uci.edu/", "https://ics.uci.edu/dup"})
	cfg.Workers = 1 // keep processing order (and thus which page is "the duplicate") deterministic

	results := runCrawl(t, cfg, fetcher)

	if results.Processed != 2 {
		t.Fatalf("Processed = %d, want 2 (root + dup, link from the duplicate skipped)", results.Processed)
	}
}

func TestCrawlTrapLinksAreNeverEnqueued(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{
		"https://ics.uci.edu/": page(
			"https://ics.uci.edu/calendar/2024-01/events?day=1&month=1&year=2024",
			"https://ics.uci.edu/wp-admin/",
			"https://ics.uci.edu/fine.html",
		),
		"https://ics.uci.edu/fine.html": page(),
	}}
	cfg := baseConfig(t, []string{"https://ics.uci.edu/"})

	results := runCrawl(t, cfg, fetcher)

	if results.Processed != 2 {
		t.Fatalf("Processed = %d, want 2 (root + fine.html; traps rejected)", results.Processed)
	}
}

func TestCrawlOffDomainLinksAreRejected(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{
		"https://ics.uci.edu/": page("https://example.com/off-domain", "https://ics.uci.edu/local"),
		"https://ics.uci.edu/local": page(),
	}}
	cfg := baseConfig(t, []string{"https://ics.uci.edu/"})

	results := runCrawl(t, cfg, fetcher)

	if results.Processed != 2 {
		t.Fatalf("Processed = %d, want 2 (root + local; off-domain rejected)", results.Processed)
	}
}

func TestCrawlFetchErrorIsCountedAndDoesNotStopWorkers(t *testing.T) {
	fetcher := &fakeFetcher{
		pages:    map[string]string{"https://ics.uci.edu/ok": page()},
		failures: map[string]bool{"https://ics.uci.edu/broken": true},
	}
	cfg := baseConfig(t, []string{"https://ics.uci.edu/broken", "https://ics.uci.edu/ok"})

	results := runCrawl(t, cfg, fetcher)

	if results.Processed != 2 {
		t.Fatalf("Processed = %d, want 2", results.Processed)
	}
	if results.Errors != 1 {
		t.Fatalf("Errors = %d, want 1", results.Errors)
	}
}
