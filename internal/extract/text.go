// Package extract implements the HTML-to-text and link-extraction
// contracts spec.md §6 consumes. Text walks the parse tree with
// golang.org/x/net/html the way the teacher's internal/parser/parser.go
// does; Links uses goquery the way internal/parser/advanced.go does —
// both of the teacher's HTML libraries get a home here instead of
// collapsing to one.
package extract

import (
	"strings"

	"golang.org/x/net/html"
)

var skipTextTags = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
}

// Text returns the space-separated visible text of an HTML document,
// per spec.md §6's HTML-to-text contract. body must already be
// decoded, valid UTF-8 (spec.md §4.3's "decode as UTF-8 with malformed
// bytes replaced" runs before this, via tokenize.DecodeUTF8). Script
// and style contents are not visible text and are excluded. Malformed
// HTML best-effort parses (x/net/html never errors on malformed
// input); an empty or unparseable document yields an empty string.
func Text(body string) string {
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return ""
	}

	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && skipTextTags[n.Data] {
			return
		}
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				if sb.Len() > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return sb.String()
}
