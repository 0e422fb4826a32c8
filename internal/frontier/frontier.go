// Package frontier implements the crawl frontier from spec.md §4.6:
// a thread-safe FIFO queue of discovered-but-unfetched URLs backed by
// a durable seen-set, with per-host politeness scheduling on dequeue.
package frontier

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/arjunsahni/spacetime-crawler-go/internal/hashing"
	"github.com/arjunsahni/spacetime-crawler-go/internal/urlfilter"
	"github.com/bits-and-blooms/bloom/v3"
)

const (
	// Sized generously for a single crawl's session; false positives
	// only cost an extra authoritative map/store check, never an
	// incorrect admission.
	bloomFilterSize = 1_000_000
	bloomFalsePositiveRate = 0.01

	dequeueTimeout = 1 * time.Second

	defaultDelay = 500 * time.Millisecond
)

// Frontier is the crawl's single FIFO queue plus durable seen-set and
// per-host politeness scheduler. It owns one non-reentrant mutex
// guarding the queue, the in-memory seen-set, and the politeness
// clock; no Frontier method calls another of its own exported methods
// while holding that lock (spec.md §9's non-reentrant substitution).
type Frontier struct {
	mu sync.Mutex

	queue []string
	cond  *sync.Cond

	seen  map[uint64]bool
	bloom *bloom.BloomFilter

	nextAllowed map[string]time.Time
	delay       time.Duration

	store *Store
}

// New opens the durable store at savePath and rehydrates or seeds the
// queue per spec.md §4.6: a restart wipes the store and enqueues
// seedURLs; otherwise every not-done entry that still passes filter
// is requeued, falling back to seedURLs if nothing was requeued.
func New(savePath string, restart bool, seedURLs []string, delay time.Duration, filter *urlfilter.Filter) (*Frontier, error) {
	if delay <= 0 {
		delay = defaultDelay
	}

	store, err := OpenStore(savePath, restart)
	if err != nil {
		return nil, err
	}

	f := &Frontier{
		seen:        make(map[uint64]bool),
		bloom:       bloom.NewWithEstimates(bloomFilterSize, bloomFalsePositiveRate),
		nextAllowed: make(map[string]time.Time),
		delay:       delay,
		store:       store,
	}
	f.cond = sync.NewCond(&f.mu)

	if restart {
		for _, seed := range seedURLs {
			if _, err := f.AddURL(seed); err != nil {
				return nil, fmt.Errorf("frontier: seeding %q: %w", seed, err)
			}
		}
		return f, nil
	}

	pending, err := store.Pending()
	if err != nil {
		return nil, err
	}

	requeued := 0
	for _, entry := range pending {
		if filter != nil && !filter.Admit(entry.URL) {
			continue
		}
		f.mu.Lock()
		if !f.seen[entry.Hash] {
			f.seen[entry.Hash] = true
			f.bloom.Add(hashKey(entry.Hash))
			f.queue = append(f.queue, entry.URL)
			requeued++
		}
		f.mu.Unlock()
	}

	if requeued == 0 {
		for _, seed := range seedURLs {
			if _, err := f.AddURL(seed); err != nil {
				return nil, fmt.Errorf("frontier: seeding %q: %w", seed, err)
			}
		}
	}

	return f, nil
}

// AddURL canonicalizes u, and if its hash is neither in the in-memory
// seen-set nor in the durable store, records it in the store and
// enqueues it. AddURL is
// idempotent: repeated calls with the same canonical URL after the
// first are no-ops that return false.
func (f *Frontier) AddURL(rawURL string) (bool, error) {
	canonical, err := urlfilter.Canonicalize(rawURL)
	if err != nil {
		return false, fmt.Errorf("frontier: canonicalizing %q: %w", rawURL, err)
	}
	hash := hashing.String(canonical)

	f.mu.Lock()
	// The bloom filter gives a cheap definite-no before touching the
	// authoritative map; a positive still falls through to the map
	// check since bloom filters can false-positive.
	if f.bloom.Test(hashKey(hash)) && f.seen[hash] {
		f.mu.Unlock()
		return false, nil
	}
	// A URL recorded by an earlier run (pending or done) is already in
	// the store and is not enqueued again.
	exists, err := f.store.Exists(hash)
	if err != nil {
		f.mu.Unlock()
		return false, err
	}
	if exists {
		f.seen[hash] = true
		f.bloom.Add(hashKey(hash))
		f.mu.Unlock()
		return false, nil
	}
	if err := f.store.Insert(hash, canonical); err != nil {
		f.mu.Unlock()
		return false, err
	}
	f.seen[hash] = true
	f.bloom.Add(hashKey(hash))
	f.queue = append(f.queue, canonical)
	f.mu.Unlock()

	f.cond.Broadcast()

	return true, nil
}

// NextURL dequeues one URL in FIFO order. If the queue is empty it
// blocks up to one second; if still empty, it returns ("", false). On
// a successful dequeue it performs the politeness wait for the URL's
// host (see politenessWait) before returning.
func (f *Frontier) NextURL() (string, bool) {
	deadline := time.Now().Add(dequeueTimeout)

	f.mu.Lock()
	for len(f.queue) == 0 {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			f.mu.Unlock()
			return "", false
		}
		timer := time.AfterFunc(remaining, f.cond.Broadcast)
		f.cond.Wait()
		timer.Stop()
	}
	url := f.queue[0]
	f.queue = f.queue[1:]
	f.mu.Unlock()

	f.politenessWait(url)
	return url, true
}

// MarkComplete records url's hash as done in the durable store. It
// must be called exactly once per URL returned by NextURL.
func (f *Frontier) MarkComplete(rawURL string) error {
	canonical, err := urlfilter.Canonicalize(rawURL)
	if err != nil {
		return fmt.Errorf("frontier: canonicalizing %q: %w", rawURL, err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.store.MarkDone(hashing.String(canonical))
}

// Close releases the frontier's durable store handle.
func (f *Frontier) Close() error {
	return f.store.Close()
}

// politenessWait implements the queueing semantics spec.md §5
// codifies: the per-host next-allowed timestamp is advanced
// unconditionally on every dequeue for that host, before sleeping, so
// concurrent workers claiming the same host serialize at the
// configured delay rather than racing on the same slot.
func (f *Frontier) politenessWait(rawURL string) {
	host := politenessHost(rawURL)
	now := time.Now()

	f.mu.Lock()
	nextAllowed, ok := f.nextAllowed[host]
	wait := time.Duration(0)
	if ok && nextAllowed.After(now) {
		wait = nextAllowed.Sub(now)
		f.nextAllowed[host] = nextAllowed.Add(f.delay)
	} else {
		f.nextAllowed[host] = now.Add(f.delay)
	}
	f.mu.Unlock()

	if wait > 0 {
		time.Sleep(wait)
	}
}

// politenessHost extracts the politeness grouping key for a URL: the
// lowercased hostname with port stripped and a leading "www." removed
// (spec.md §4.6's documented host-normalization choice).
func politenessHost(rawURL string) string {
	host, err := urlfilter.HostWithoutPort(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(host, "www.")
}

func hashKey(hash uint64) []byte {
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(hash >> (8 * i))
	}
	return b
}
