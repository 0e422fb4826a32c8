package urlfilter

import (
	"net/url"
	"strings"
)

// Canonicalize lowercases scheme and host, strips the fragment, and
// trims surrounding whitespace, per spec.md §4.2. Path and query are
// left intact — no further path collapsing is performed. Canonicalize
// is idempotent: Canonicalize(Canonicalize(u)) == Canonicalize(u).
func Canonicalize(raw string) (string, error) {
	raw = strings.TrimSpace(raw)

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = lowerHost(u.Host)
	u.Fragment = ""
	u.RawFragment = ""

	return u.String(), nil
}

// lowerHost lowercases only the hostname portion of a host[:port]
// string, leaving the port untouched.
func lowerHost(host string) string {
	if i := strings.LastIndex(host, ":"); i != -1 && !strings.Contains(host[i:], "]") {
		return strings.ToLower(host[:i]) + host[i:]
	}
	return strings.ToLower(host)
}

// HostWithoutPort returns the lowercase hostname with any port
// stripped, matching §4.2's admission-filter host comparison and
// §4.6's politeness host key (before the optional "www." strip that
// politeness applies on top of this).
func HostWithoutPort(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	return strings.ToLower(u.Hostname()), nil
}
