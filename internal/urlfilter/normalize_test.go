package urlfilter

import "testing"

func TestCanonicalizeIdempotent(t *testing.T) {
	raw := "HTTPS://ICS.UCI.EDU/Path?q=1#section"
	once, err := Canonicalize(raw)
	if err != nil {
		t.Fatalf("Canonicalize: %v", err)
	}
	twice, err := Canonicalize(once)
	if err != nil {
		t.Fatalf("Canonicalize (second pass): %v", err)
	}
	if once != twice {
		t.Fatalf("not idempotent: %q != %q", once, twice)
	}
}

func TestCanonicalizeLowercasesSchemeAndHost(t *testing.T) {
	got, err := Canonicalize("HTTP://Example.COM/Path")
	if err != nil {
		t.Fatal(err)
	}
	want := "http://example.com/Path"
	if got != want {
		t.Fatalf("Canonicalize = %q, want %q", got, want)
	}
}

func TestCanonicalizeStripsFragment(t *testing.T) {
	got, err := Canonicalize("http://example.com/page#frag")
	if err != nil {
		t.Fatal(err)
	}
	if got != "http://example.com/page" {
		t.Fatalf("Canonicalize = %q, want fragment stripped", got)
	}
}

func TestCanonicalizeKeepsQuery(t *testing.T) {
	got, err := Canonicalize("http://example.com/page?a=1&b=2")
	if err != nil {
		t.Fatal(err)
	}
	if got != "http://example.com/page?a=1&b=2" {
		t.Fatalf("Canonicalize = %q, query should be preserved", got)
	}
}

func TestCanonicalizeTrimsWhitespace(t *testing.T) {
	got, err := Canonicalize("  http://example.com/  ")
	if err != nil {
		t.Fatal(err)
	}
	if got != "http://example.com/" {
		t.Fatalf("Canonicalize = %q, want trimmed", got)
	}
}

func TestHostWithoutPort(t *testing.T) {
	host, err := HostWithoutPort("http://ICS.uci.edu:8080/x")
	if err != nil {
		t.Fatal(err)
	}
	if host != "ics.uci.edu" {
		t.Fatalf("HostWithoutPort = %q, want ics.uci.edu", host)
	}
}
