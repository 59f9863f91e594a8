package discovery

// DeduplicateHits collapses hits to one per normalized URL, first
// occurrence wins, preserving input order. Hits whose URL cannot be
// normalized are dropped.
func DeduplicateHits(hits []SearchHit) []SearchHit {
	seen := make(map[string]struct{}, len(hits))
	out := make([]SearchHit, 0, len(hits))
	for _, hit := range hits {
		key, err := NormalizeURL(hit.URL)
		if err != nil {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, hit)
	}
	return out
}
