// Package analytics implements the Analytics Aggregator from spec.md
// §4.5: a single-lock component that tracks unique URLs, global term
// frequency, the longest page seen, and per-host page counts within
// the configured root domain.
package analytics

import (
	"net/url"
	"sort"
	"strings"
	"sync"
)

// LongestPage records the current longest-page-by-word-count.
type LongestPage struct {
	URL       string
	WordCount int
}

// HostCount pairs a host with the number of unique pages recorded for
// it.
type HostCount struct {
	Host  string
	Count int
}

// TermCount pairs a token with its global occurrence count.
type TermCount struct {
	Term  string
	Count int
}

// Snapshot is an immutable view of the aggregator's state at the
// moment Snapshot was called.
type Snapshot struct {
	UniquePages    int
	Longest        LongestPage
	TopTerms       []TermCount
	HostCounts     []HostCount
	NearDuplicates int
}

// Aggregator accumulates crawl analytics under a single lock, per
// spec.md §4.5.
type Aggregator struct {
	mu sync.Mutex

	rootDomain string

	seenURLs  map[string]bool
	termFreq  map[string]int
	termOrder []string // first-seen order, for stable top-50 tie-breaking

	longest LongestPage

	hostCounts map[string]int

	nearDuplicates int
}

// New creates an Aggregator scoped to rootDomain (e.g. "uci.edu") for
// per-host counting.
func New(rootDomain string) *Aggregator {
	return &Aggregator{
		rootDomain: strings.ToLower(rootDomain),
		seenURLs:   make(map[string]bool),
		termFreq:   make(map[string]int),
		hostCounts: make(map[string]int),
	}
}

// Record ingests one fetched page: its canonical URL, host, and
// retained token sequence. duplicate reports the Duplicate Detector's
// verdict; it does not gate URL or host counting, only whether the
// page's near-duplicate counter increments (spec.md §4.5 — that
// counter is in fact owned by the detector and exposed separately,
// but Record still accepts the flag so callers have one call site per
// page).
func (a *Aggregator) Record(canonicalURL, host string, tokens []string, duplicate bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.seenURLs[canonicalURL] {
		a.seenURLs[canonicalURL] = true
		if isWithinRoot(host, a.rootDomain) {
			a.hostCounts[strings.ToLower(host)]++
		}
	}

	for _, tok := range tokens {
		if a.termFreq[tok] == 0 {
			a.termOrder = append(a.termOrder, tok)
		}
		a.termFreq[tok]++
	}

	if len(tokens) > a.longest.WordCount {
		a.longest = LongestPage{URL: canonicalURL, WordCount: len(tokens)}
	}

	if duplicate {
		a.nearDuplicates++
	}
}

// Snapshot returns an immutable view of the aggregator's current
// state: unique page count, longest page, top-50 terms by descending
// count (ties broken by first-seen order), per-host counts sorted
// alphabetically by host, and the near-duplicate count.
func (a *Aggregator) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	terms := make([]TermCount, 0, len(a.termOrder))
	for _, term := range a.termOrder {
		terms = append(terms, TermCount{Term: term, Count: a.termFreq[term]})
	}
	sort.SliceStable(terms, func(i, j int) bool {
		return terms[i].Count > terms[j].Count
	})
	if len(terms) > 50 {
		terms = terms[:50]
	}

	hosts := make([]HostCount, 0, len(a.hostCounts))
	for host, count := range a.hostCounts {
		hosts = append(hosts, HostCount{Host: host, Count: count})
	}
	sort.Slice(hosts, func(i, j int) bool {
		return hosts[i].Host < hosts[j].Host
	})

	return Snapshot{
		UniquePages:    len(a.seenURLs),
		Longest:        a.longest,
		TopTerms:       terms,
		HostCounts:     hosts,
		NearDuplicates: a.nearDuplicates,
	}
}

// isWithinRoot reports whether host equals rootDomain or is a
// sub-domain of it (e.g. "ics.uci.edu" is within "uci.edu").
func isWithinRoot(host, rootDomain string) bool {
	if rootDomain == "" {
		return false
	}
	host = strings.ToLower(host)
	if host == rootDomain {
		return true
	}
	return strings.HasSuffix(host, "."+rootDomain)
}

// HostFromURL extracts the lowercased hostname (port stripped) from a
// canonical URL, for callers that only have the raw URL on hand.
func HostFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
