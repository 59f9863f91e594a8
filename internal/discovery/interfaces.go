package discovery

import "context"

// Provider is a search or data source that answers a query with hits.
// Implementations convert their own failures into errors; the fan-out
// treats any error as an empty result set.
type Provider interface {
	// Name identifies the provider in hit sources, logs and metrics.
	Name() string
	// Search returns normalized hits for the query.
	Search(ctx context.Context, query string) ([]SearchHit, error)
}

// RobotsPolicy decides whether a URL may be crawled.
type RobotsPolicy interface {
	Allowed(ctx context.Context, rawURL string) bool
}

// Fetcher retrieves a single page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (FetchResponse, error)
}

// FetchResponse is the result returned by a Fetcher implementation.
type FetchResponse struct {
	URL        string
	StatusCode int
	Body       []byte
}

// DirectoryClient looks up a representative contact for a domain via a
// commercial contact directory.
type DirectoryClient interface {
	DomainSearch(ctx context.Context, domain string) (DirectoryResult, error)
}

// RegistryClient searches a company registry by business name.
type RegistryClient interface {
	CompanySearch(ctx context.Context, name string) (RegistryMatch, bool, error)
}

// DomainLimiter throttles outbound fetches per target domain.
type DomainLimiter interface {
	Wait(ctx context.Context, url string) error
}
