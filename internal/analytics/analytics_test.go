package analytics

import "testing"

func TestRecordUniquePageCount(t *testing.T) {
	a := New("uci.edu")
	a.Record("http://ics.uci.edu/", "ics.uci.edu", []string{"hello", "world"}, false)
	a.Record("http://ics.uci.edu/", "ics.uci.edu", []string{"hello"}, false)
	a.Record("http://cs.uci.edu/x", "cs.uci.edu", []string{"world"}, false)

	snap := a.Snapshot()
	if snap.UniquePages != 2 {
		t.Fatalf("UniquePages = %d, want 2", snap.UniquePages)
	}
}

func TestRecordHostCountsWithinRootOnly(t *testing.T) {
	a := New("uci.edu")
	a.Record("http://ics.uci.edu/", "ics.uci.edu", nil, false)
	a.Record("http://example.com/", "example.com", nil, false)

	snap := a.Snapshot()
	if len(snap.HostCounts) != 1 || snap.HostCounts[0].Host != "ics.uci.edu" || snap.HostCounts[0].Count != 1 {
		t.Fatalf("HostCounts = %+v, want single ics.uci.edu=1", snap.HostCounts)
	}
}

func TestRecordHostCountsAlphabetical(t *testing.T) {
	a := New("uci.edu")
	a.Record("http://stat.uci.edu/", "stat.uci.edu", nil, false)
	a.Record("http://cs.uci.edu/", "cs.uci.edu", nil, false)
	a.Record("http://ics.uci.edu/", "ics.uci.edu", nil, false)

	snap := a.Snapshot()
	want := []string{"cs.uci.edu", "ics.uci.edu", "stat.uci.edu"}
	for i, h := range want {
		if snap.HostCounts[i].Host != h {
			t.Fatalf("HostCounts[%d] = %s, want %s", i, snap.HostCounts[i].Host, h)
		}
	}
}

func TestLongestPageUpdates(t *testing.T) {
	a := New("uci.edu")
	a.Record("http://ics.uci.edu/short", "ics.uci.edu", []string{"a", "b"}, false)
	a.Record("http://ics.uci.edu/long", "ics.uci.edu", []string{"a", "b", "c", "d"}, false)

	snap := a.Snapshot()
	if snap.Longest.URL != "http://ics.uci.edu/long" || snap.Longest.WordCount != 4 {
		t.Fatalf("Longest = %+v, want long page with 4 words", snap.Longest)
	}
}

func TestTopTermsDescendingWithInsertionOrderTiebreak(t *testing.T) {
	a := New("uci.edu")
	a.Record("http://ics.uci.edu/1", "ics.uci.edu", []string{"zeta", "alpha", "alpha"}, false)
	a.Record("http://ics.uci.edu/2", "ics.uci.edu", []string{"beta"}, false)

	snap := a.Snapshot()
	if len(snap.TopTerms) != 3 {
		t.Fatalf("TopTerms = %v, want 3 entries", snap.TopTerms)
	}
	if snap.TopTerms[0].Term != "alpha" || snap.TopTerms[0].Count != 2 {
		t.Fatalf("TopTerms[0] = %+v, want alpha:2", snap.TopTerms[0])
	}
	// zeta was seen before beta, so on a count tie (1 each) zeta sorts first.
	if snap.TopTerms[1].Term != "zeta" || snap.TopTerms[2].Term != "beta" {
		t.Fatalf("tie-break order = %v, want [zeta beta]", snap.TopTerms[1:])
	}
}

func TestTopTermsCapsAtFifty(t *testing.T) {
	a := New("uci.edu")
	terms := make([]string, 60)
	for i := range terms {
		terms[i] = string(rune('a' + i%26))
	}
	for i, term := range terms {
		a.Record("http://ics.uci.edu/p", "ics.uci.edu", []string{term + string(rune('0'+i%10))}, false)
	}

	snap := a.Snapshot()
	if len(snap.TopTerms) > 50 {
		t.Fatalf("TopTerms length = %d, want <= 50", len(snap.TopTerms))
	}
}

func TestNearDuplicateCounterIncrementsOnRecord(t *testing.T) {
	a := New("uci.edu")
	a.Record("http://ics.uci.edu/a", "ics.uci.edu", []string{"x"}, false)
	a.Record("http://ics.uci.edu/b", "ics.uci.edu", []string{"x"}, true)

	snap := a.Snapshot()
	if snap.NearDuplicates != 1 {
		t.Fatalf("NearDuplicates = %d, want 1", snap.NearDuplicates)
	}
}

func TestIsWithinRootExactMatch(t *testing.T) {
	if !isWithinRoot("uci.edu", "uci.edu") {
		t.Fatal("root domain itself should be within root")
	}
}

func TestIsWithinRootRejectsUnrelatedSuffix(t *testing.T) {
	if isWithinRoot("notuci.edu", "uci.edu") {
		t.Fatal("notuci.edu should not match uci.edu by naive suffix")
	}
}

func TestHostFromURLStripsPort(t *testing.T) {
	if got := HostFromURL("http://ICS.UCI.EDU:8080/path"); got != "ics.uci.edu" {
		t.Fatalf("HostFromURL = %q, want ics.uci.edu", got)
	}
}
