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

// FromCertificateTransparency queries crt.sh for certificates issued
// to subdomains of domain, surfacing subdomains a static seed list
// would miss. Adapted from the teacher's
// internal/seeding/certransparency.go.
func FromCertificateTransparency(ctx context.Context, domain string, filter *urlfilter.Filter) ([]string, error) {
	ctURL := fmt.Sprintf("https://crt.sh/?q=%%.%s&output=json", domain)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ctURL, nil)
	if err != nil {
		return nil, fmt.Errorf("seed: building crt.sh request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("seed: querying crt.sh: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("seed: crt.sh returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("seed: reading crt.sh response: %w", err)
	}

	var certs []struct {
		NameValue string `json:"name_value"`
	}
	if err := json.Unmarshal(body, &certs); err != nil {
		return nil, fmt.Errorf("seed: parsing crt.sh response: %w", err)
	}

	subdomains := make(map[string]bool)
	for _, cert := range certs {
		for _, name := range strings.Split(cert.NameValue, "\n") {
			name = strings.TrimSpace(strings.TrimPrefix(name, "*."))
			if strings.HasSuffix(name, domain) {
				subdomains[name] = true
			}
		}
	}

	var admitted []string
	for subdomain := range subdomains {
		candidate := "https://" + subdomain + "/"
		if filter.Admit(candidate) {
			admitted = append(admitted, candidate)
		}
	}
	return admitted, nil
}
