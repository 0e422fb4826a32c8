// Package report renders an analytics snapshot into the fixed
// plain-text report format spec.md §6 specifies. Grounded on the
// teacher's internal/export/export.go file-writing shape (create-dir,
// write, wrap errors), repurposed from JSON/CSV/sitemap export to a
// single fixed text grammar.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arjunsahni/spacetime-crawler-go/internal/analytics"
)

// Write renders snap into the exact report format from spec.md §6 and
// writes it to path as UTF-8 text, creating parent directories as
// needed.
func Write(snap analytics.Snapshot, rootDomain, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("report: creating output directory: %w", err)
		}
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "1. Unique pages: %d\n", snap.UniquePages)
	fmt.Fprintf(&sb, "2. Longest page: %s (%d words)\n", snap.Longest.URL, snap.Longest.WordCount)
	fmt.Fprintf(&sb, "3. Near-duplicate pages found: %d\n", snap.NearDuplicates)
	sb.WriteString("4. Top 50 words:\n")
	for _, term := range snap.TopTerms {
		fmt.Fprintf(&sb, "   %s: %d\n", term.Term, term.Count)
	}
	fmt.Fprintf(&sb, "5. Subdomains in %s (alphabetical):\n", rootDomain)
	for _, host := range snap.HostCounts {
		fmt.Fprintf(&sb, "   %s, %d\n", host.Host, host.Count)
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("report: writing report file: %w", err)
	}
	return nil
}
