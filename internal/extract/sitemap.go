package extract

import (
	"strings"

	"golang.org/x/net/html"
)

// SitemapURLs pulls every <loc> entry out of a sitemap or
// sitemap-index XML document, adapted from the teacher's
// internal/parser/parser.go ExtractSitemapURLs (x/net/html parses XML
// leniently enough for sitemap documents, so no separate XML decoder
// is needed).
func SitemapURLs(xmlContent string) []string {
	doc, err := html.Parse(strings.NewReader(xmlContent))
	if err != nil {
		return nil
	}

	var urls []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "loc" {
			if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
				urls = append(urls, strings.TrimSpace(n.FirstChild.Data))
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return urls
}
