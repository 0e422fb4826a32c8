package dedupe

import "github.com/arjunsahni/spacetime-crawler-go/internal/hashing"

// SimHash computes the 64-bit locality-sensitive fingerprint described
// in spec.md §4.4: for each distinct token weighted by its in-page
// frequency, accumulate +weight/-weight into a 64-element vector
// keyed by the token hash's bits, then set bit i of the result iff
// the accumulator for bit i is positive (ties at exactly 0 resolve to
// 0). An empty token stream produces SimHash 0.
func SimHash(tokens []string) uint64 {
	freq := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		freq[tok]++
	}

	var acc [64]int64
	for tok, w := range freq {
		h := hashing.String(tok)
		for i := 0; i < 64; i++ {
			if (h>>uint(i))&1 == 1 {
				acc[i] += int64(w)
			} else {
				acc[i] -= int64(w)
			}
		}
	}

	var fp uint64
	for i := 0; i < 64; i++ {
		if acc[i] > 0 {
			fp |= 1 << uint(i)
		}
	}
	return fp
}

// ExactFingerprint computes the exact content fingerprint spec.md
// §4.4 requires: FNV-1a-64 of the space-joined first 5,000 retained
// tokens. Pages sharing the first 5,000 tokens exactly collide and
// are treated as identical.
func ExactFingerprint(tokens []string) uint64 {
	const maxTokens = 5000
	if len(tokens) > maxTokens {
		tokens = tokens[:maxTokens]
	}

	// Join with single spaces without materializing an intermediate
	// []byte via strings.Join + []byte conversion twice.
	var total int
	for i, t := range tokens {
		total += len(t)
		if i > 0 {
			total++
		}
	}

	buf := make([]byte, 0, total)
	for i, t := range tokens {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = append(buf, t...)
	}

	return hashing.Bytes(buf)
}
