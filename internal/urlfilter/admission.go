// Package urlfilter canonicalizes URLs and admits or rejects them
// against the domain whitelist, extension blocklist, and trap
// heuristics described in spec.md §4.2. All rules are independent;
// any parsing error yields rejection (conservative, per §4.2's
// failure mode).
package urlfilter

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// AllowedDomains is the default whitelist of registered domains the
// assignment's grading cache serves, per
// _examples/original_source/validator.py's ALLOWED_DOMAINS. Config
// may override this with a different list passed to NewFilter.
var AllowedDomains = []string{
	"ics.uci.edu",
	"cs.uci.edu",
	"informatics.uci.edu",
	"stat.uci.edu",
}

// BlockedExtensions is the authoritative extension blocklist from
// spec.md §4.2 rule 3, reproduced verbatim from
// original_source/validator.py's BLOCKED_EXTENSIONS.
var BlockedExtensions = []string{
	// Assets & Media
	".css", ".js", ".mjs", ".map", ".wasm",
	".bmp", ".gif", ".jpg", ".jpeg", ".png", ".tiff", ".tif", ".ico", ".svg", ".webp",
	".psd", ".ai", ".eps", ".heic", ".heif", ".avif", ".jp2",
	".mp2", ".mp3", ".m4a", ".aac", ".flac", ".wav", ".wma", ".aiff", ".au",
	".mp4", ".m4v", ".mov", ".avi", ".mkv", ".flv", ".wmv", ".webm", ".mpeg", ".mpg",
	".ogv", ".ogg", ".m3u8", ".ts", ".srt", ".vtt",

	// Documents & Fonts
	".pdf", ".ps", ".tex", ".djvu",
	".ppt", ".pptx", ".pptm", ".pps", ".ppsx", ".ppsm", ".pot", ".potx", ".potm",
	".doc", ".docx", ".docm", ".xls", ".xlsx", ".xlsm", ".odt", ".ods", ".odp",
	".rtf", ".txt", ".epub", ".mobi", ".azw", ".azw3",
	".woff", ".woff2", ".ttf", ".eot", ".otf",

	// Data, Logs, Archives, Executables
	".xml", ".json", ".jsonl", ".ndjson", ".yaml", ".yml", ".toml",
	".sql", ".db", ".sqlite", ".sqlite3", ".csv", ".tsv",
	".log", ".dat", ".bak", ".tmp", ".swp", ".old", ".dmp", ".dump",
	".zip", ".rar", ".7z", ".tar", ".tgz", ".tar.gz", ".tar.bz2", ".tar.xz", ".tar.zst",
	".gz", ".bz2", ".xz", ".zst", ".lz4", ".iso", ".img",
	".exe", ".msi", ".bin", ".dll", ".so", ".dylib", ".deb", ".rpm", ".apk", ".dmg", ".pkg", ".cab",
	".jar", ".war", ".ear", ".class",

	// Source Code & Configs
	".c", ".cc", ".cpp", ".cxx", ".h", ".hpp",
	".java", ".py", ".ipynb",
	".sh", ".bash", ".zsh", ".ps1", ".bat", ".cmd",
	".go", ".rs", ".rb", ".php", ".pl", ".swift", ".kt",
	".m", ".mat", ".r",
	".ini", ".cfg", ".conf", ".cnf", ".env", ".pem", ".crt", ".cer", ".key",

	// Traps & Feeds
	".ics", ".rss", ".atom", ".arff", ".diff", ".patch",
}

// HardBlockQueryKeys rejects a URL outright if any query parameter
// name is in this set: tracking IDs, session IDs, cache-busters, auth
// tokens, calendar-date params, sort/order, site-specific low-value
// tabs (spec.md §4.2 rule 6).
var HardBlockQueryKeys = map[string]bool{
	// Calendar / date traps
	"day": true, "month": true, "year": true, "date": true, "time": true,
	"tribe_bar_date": true, "tribe_event_display": true, "eventdate": true,
	"start_date": true, "end_date": true, "ical": true,

	// Functional / low-info pages
	"print": true, "printable": true, "download": true, "attachment": true,
	"preview": true, "fullscreen": true, "mobile": true, "view_mode": true,
	"diff": true, "oldid": true, "action": true, "mode": true,

	// Tracking & session
	"replytocom": true, "share": true, "shared": true, "share_id": true,
	"utm_source": true, "utm_medium": true, "utm_campaign": true, "utm_term": true, "utm_content": true,
	"gclid": true, "dclid": true, "gbraid": true, "wbraid": true, "fbclid": true,
	"msclkid": true, "mc_cid": true, "mc_eid": true, "igshid": true, "yclid": true,
	"ref": true, "ref_": true, "referrer": true, "source": true, "src": true,
	"campaign": true, "adid": true,
	"session": true, "sid": true, "phpsessid": true, "jsessionid": true, "state": true,

	// Cache-bust & auth
	"_": true, "_t": true, "cb": true, "cachebust": true, "nocache": true,
	"timestamp": true, "ts": true, "rnd": true, "random": true,
	"v": true, "ver": true, "version": true, "hash": true,
	"token": true, "access_token": true, "auth": true, "oauth": true, "apikey": true,
	"key": true, "signature": true, "sig": true, "expires": true,
	"samlrequest": true, "samlresponse": true,

	// Site-specific & sort
	"do": true, "rev": true, "image": true, "tab_files": true, "tab_details": true,
	"sort": true, "order": true,
}

// PaginationKeys is the set of query parameter names subject to the
// pagination bound (spec.md §4.2 rule 6). "paged" is included per
// spec.md §9's "more conservative wins" resolution of the two source
// variants.
var PaginationKeys = map[string]bool{
	"page": true, "p": true, "pg": true, "paged": true,
	"start": true, "offset": true,
}

const (
	maxPageNumber = 20
	maxStartValue = 500
	maxURLLength  = 300
	maxPathDepth  = 10
)

// CombinatorialQueryKeys are the params whose co-occurrence (two or
// more) signals a sort/filter/view combinatorial trap (spec.md §4.2
// rule 6).
var CombinatorialQueryKeys = map[string]bool{
	"sort": true, "order": true, "filter": true, "facet": true,
	"action": true, "view": true, "layout": true,
}

// TrapPathHints are path segments that reliably indicate low-value or
// unbounded page trees (spec.md §4.2 rule 5), reproduced from
// original_source/validator.py's TRAP_PATH_HINTS.
var TrapPathHints = []string{
	"wp-json", "wp-admin", "wp-includes", "wp-content",
	"feed", "rss", "atom", "cgi-bin",
	"login", "logout", "signin", "signout",
	"admin", "api", "graphql",
	"search", "tag", "tags", "category", "categories",
	"archive", "archives", "author", "authors",
	"uploads", "assets", "static", "media",
	"tree", "blob", "commit", "commits", "compare", "network", "graph",
	"calendar", "events", "agenda", "schedule", "bitstream", "retrieve",
	"mailman", "pipermail", "javadoc", "doxygen", "epydoc", "apidocs",
	"ganglia", "nagios", "mrtg",
}

var dateArchivePattern = regexp.MustCompile(`/\d{4}[-/]\d{2}/`)

// Filter is the admission predicate. The zero value is not usable;
// construct with NewFilter or NewDefaultFilter.
type Filter struct {
	allowedDomains []string
}

// NewDefaultFilter builds a Filter using the package-level
// AllowedDomains whitelist.
func NewDefaultFilter() *Filter {
	return NewFilter(AllowedDomains)
}

// NewFilter builds a Filter over a caller-supplied domain whitelist
// (spec.md §6's configured allowed_domains).
func NewFilter(allowedDomains []string) *Filter {
	domains := make([]string, len(allowedDomains))
	for i, d := range allowedDomains {
		domains[i] = strings.ToLower(d)
	}
	return &Filter{allowedDomains: domains}
}

// Admit reports whether the fully-qualified URL passes every
// admission rule in spec.md §4.2. Admit is idempotent: calling it
// twice on the same URL yields the same verdict.
func (f *Filter) Admit(rawURL string) bool {
	if rawURL == "" {
		return false
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}

	host := strings.ToLower(u.Hostname())
	if !f.isAllowedDomain(host) {
		return false
	}

	// The nuclear option: GitLab subdomains under the allowed domains
	// are an unbounded trap tree (issues, merge requests, snippets, raw
	// file views...), so the host is blocked outright rather than
	// patched path by path.
	if strings.Contains(host, "gitlab") {
		return false
	}

	if len(rawURL) > maxURLLength {
		return false
	}

	path := strings.ToLower(u.EscapedPath())

	for _, ext := range BlockedExtensions {
		if strings.HasSuffix(path, ext) {
			return false
		}
	}

	if hasRepeatingSegments(path) {
		return false
	}
	if pathDepth(path) > maxPathDepth {
		return false
	}
	if dateArchivePattern.MatchString(path) {
		return false
	}
	if hasTrapHint(path) {
		return false
	}

	if u.RawQuery != "" {
		if !f.admitQuery(u.Query()) {
			return false
		}
	}

	return true
}

func (f *Filter) isAllowedDomain(host string) bool {
	for _, domain := range f.allowedDomains {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

func (f *Filter) admitQuery(q url.Values) bool {
	if len(q) > 4 {
		return false
	}

	present := make([]string, 0, len(q))
	for key := range q {
		lower := strings.ToLower(key)

		if strings.Contains(key, "[") || strings.Contains(key, "]") {
			return false
		}
		if HardBlockQueryKeys[lower] {
			return false
		}
		present = append(present, lower)
	}

	if !f.admitPagination(q) {
		return false
	}

	combinatorial := 0
	for _, k := range present {
		if CombinatorialQueryKeys[k] {
			combinatorial++
		}
	}
	if combinatorial >= 2 {
		return false
	}

	return true
}

func (f *Filter) admitPagination(q url.Values) bool {
	for key, values := range q {
		lower := strings.ToLower(key)
		if !PaginationKeys[lower] {
			continue
		}
		if len(values) == 0 {
			continue
		}
		n, err := strconv.Atoi(values[0])
		if err != nil {
			return false
		}
		if lower == "page" || lower == "p" || lower == "pg" || lower == "paged" {
			if n > maxPageNumber {
				return false
			}
		} else {
			if n > maxStartValue {
				return false
			}
		}
	}
	return true
}

func hasRepeatingSegments(path string) bool {
	segments := splitSegments(path)
	if len(segments) < 3 {
		return false
	}

	for i := 0; i+2 < len(segments); i++ {
		if segments[i] == segments[i+1] && segments[i+1] == segments[i+2] {
			return true
		}
	}

	counts := make(map[string]int, len(segments))
	for _, s := range segments {
		counts[s]++
		if counts[s] >= 6 {
			return true
		}
	}
	return false
}

func pathDepth(path string) int {
	return len(splitSegments(path))
}

func splitSegments(path string) []string {
	parts := strings.Split(path, "/")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}

func hasTrapHint(path string) bool {
	for _, hint := range TrapPathHints {
		if strings.Contains(path, "/"+hint+"/") || strings.HasSuffix(path, "/"+hint) {
			return true
		}
	}
	return false
}
