package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/arjunsahni/spacetime-crawler-go/internal/urlfilter"
)

// FromCommonCrawl queries the Common Crawl index API for URLs
// previously indexed under domain. Adapted from the teacher's
// internal/seeding/commoncrawl.go.
func FromCommonCrawl(ctx context.Context, domain string, filter *urlfilter.Filter) ([]string, error) {
	ccURL := fmt.Sprintf("https://index.commoncrawl.org/CC-MAIN-2024-10-index?url=%s&output=json&limit=1000", domain)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ccURL, nil)
	if err != nil {
		return nil, fmt.Errorf("seed: building common crawl request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("seed: querying common crawl: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("seed: common crawl returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("seed: reading common crawl response: %w", err)
	}

	seen := make(map[string]bool)
	var admitted []string
	for _, line := range strings.Split(string(body), "\n") {
		if line == "" {
			continue
		}
		var result struct {
			URL string `json:"url"`
		}
		if err := json.Unmarshal([]byte(line), &result); err != nil {
			continue
		}
		if result.URL == "" || seen[result.URL] {
			continue
		}
		seen[result.URL] = true
		if filter.Admit(result.URL) {
			admitted = append(admitted, result.URL)
		}
	}
	return admitted, nil
}
