package frontier

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/arjunsahni/spacetime-crawler-go/internal/urlfilter"
)

func newTestFrontier(t *testing.T, seeds []string) *Frontier {
	t.Helper()
	path := filepath.Join(t.TempDir(), "frontier.db")
	f, err := New(path, true, seeds, 10*time.Millisecond, urlfilter.NewDefaultFilter())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func TestNewSeedsQueueOnRestart(t *testing.T) {
	f := newTestFrontier(t, []string{"http://ics.uci.edu/"})

	url, ok := f.NextURL()
	if !ok {
		t.Fatal("expected a seed URL")
	}
	if url != "http://ics.uci.edu/" {
		t.Fatalf("NextURL = %q, want seed", url)
	}
}

func TestAddURLIdempotent(t *testing.T) {
	f := newTestFrontier(t, nil)

	added1, err := f.AddURL("http://ics.uci.edu/a")
	if err != nil {
		t.Fatalf("AddURL: %v", err)
	}
	if !added1 {
		t.Fatal("first AddURL should report added")
	}

	added2, err := f.AddURL("http://ics.uci.edu/a")
	if err != nil {
		t.Fatalf("AddURL: %v", err)
	}
	if added2 {
		t.Fatal("second AddURL for same canonical URL should be a no-op")
	}

	url, ok := f.NextURL()
	if !ok || url != "http://ics.uci.edu/a" {
		t.Fatalf("NextURL = %q, %v", url, ok)
	}
	if _, ok := f.NextURL(); ok {
		t.Fatal("queue should only have had one entry")
	}
}

func TestNextURLFIFOOrder(t *testing.T) {
	f := newTestFrontier(t, nil)
	f.AddURL("http://ics.uci.edu/1")
	f.AddURL("http://ics.uci.edu/2")

	first, _ := f.NextURL()
	second, _ := f.NextURL()
	if first != "http://ics.uci.edu/1" || second != "http://ics.uci.edu/2" {
		t.Fatalf("got order %q, %q, want FIFO", first, second)
	}
}

func TestNextURLTimesOutWhenEmpty(t *testing.T) {
	f := newTestFrontier(t, nil)

	start := time.Now()
	_, ok := f.NextURL()
	elapsed := time.Since(start)

	if ok {
		t.Fatal("expected no URL on empty frontier")
	}
	if elapsed < dequeueTimeout {
		t.Fatalf("returned after %v, want >= %v", elapsed, dequeueTimeout)
	}
}

func TestMarkCompleteThenRestartDoesNotRequeue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frontier.db")

	f1, err := New(path, true, []string{"http://ics.uci.edu/"}, time.Millisecond, urlfilter.NewDefaultFilter())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	url, ok := f1.NextURL()
	if !ok {
		t.Fatal("expected seed")
	}
	if err := f1.MarkComplete(url); err != nil {
		t.Fatalf("MarkComplete: %v", err)
	}
	f1.Close()

	f2, err := New(path, false, []string{"http://ics.uci.edu/"}, time.Millisecond, urlfilter.NewDefaultFilter())
	if err != nil {
		t.Fatalf("New (resume): %v", err)
	}
	defer f2.Close()

	if _, ok := f2.NextURL(); ok {
		t.Fatal("completed URL should not be requeued on resume")
	}
}

func TestResumeRequeuesPendingNotDone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frontier.db")

	f1, err := New(path, true, []string{"http://ics.uci.edu/a", "http://ics.uci.edu/b"}, time.Millisecond, urlfilter.NewDefaultFilter())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	first, _ := f1.NextURL()
	if err := f1.MarkComplete(first); err != nil {
		t.Fatalf("MarkComplete: %v", err)
	}
	// second seed left pending (not dequeued/marked complete)
	f1.Close()

	f2, err := New(path, false, nil, time.Millisecond, urlfilter.NewDefaultFilter())
	if err != nil {
		t.Fatalf("New (resume): %v", err)
	}
	defer f2.Close()

	url, ok := f2.NextURL()
	if !ok {
		t.Fatal("expected the pending seed to be requeued")
	}
	if url == first {
		t.Fatal("the completed seed should not reappear")
	}
}

func TestPolitenessSerializesSameHost(t *testing.T) {
	f := newTestFrontier(t, nil)
	delay := 30 * time.Millisecond
	f.delay = delay

	f.AddURL("http://ics.uci.edu/1")
	f.AddURL("http://ics.uci.edu/2")
	f.AddURL("http://ics.uci.edu/3")

	start := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f.NextURL()
		}()
	}
	wg.Wait()
	elapsed := time.Since(start)

	if elapsed < 2*delay {
		t.Fatalf("elapsed = %v, want >= %v for 3 same-host requests", elapsed, 2*delay)
	}
}

func TestPolitenessHostStripsWWWAndPort(t *testing.T) {
	if got := politenessHost("http://www.ICS.uci.edu:8080/x"); got != "ics.uci.edu" {
		t.Fatalf("politenessHost = %q, want ics.uci.edu", got)
	}
}
