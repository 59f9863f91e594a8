package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/finsignal/leadscout/internal/discovery"
)

const bingEndpoint = "https://api.bing.microsoft.com/v7.0/search"

// Bing adapts the Bing Web Search v7 API.
type Bing struct {
	apiKey    string
	endpoint  string
	userAgent string
	client    *http.Client
}

// NewBing builds the adapter.
func NewBing(apiKey, userAgent string, timeout time.Duration) *Bing {
	return &Bing{
		apiKey:    apiKey,
		endpoint:  bingEndpoint,
		userAgent: userAgent,
		client:    newClient(timeout),
	}
}

// Name implements discovery.Provider.
func (b *Bing) Name() string { return "bing" }

type bingResponse struct {
	WebPages struct {
		Value []struct {
			Name    string `json:"name"`
			URL     string `json:"url"`
			Snippet string `json:"snippet"`
		} `json:"value"`
	} `json:"webPages"`
}

// Search implements discovery.Provider.
func (b *Bing) Search(ctx context.Context, query string) ([]discovery.SearchHit, error) {
	endpoint := fmt.Sprintf("%s?q=%s&count=10&responseFilter=Webpages",
		b.endpoint, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("new bing request: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", b.apiKey)
	req.Header.Set("User-Agent", b.userAgent)

	var body bingResponse
	if err := doJSON(b.client, req, &body); err != nil {
		return nil, fmt.Errorf("bing search: %w", err)
	}

	hits := make([]discovery.SearchHit, 0, len(body.WebPages.Value))
	for _, item := range body.WebPages.Value {
		if item.URL == "" {
			continue
		}
		hits = append(hits, discovery.SearchHit{
			Title:   item.Name,
			URL:     item.URL,
			Snippet: item.Snippet,
			Source:  b.Name(),
		})
	}
	return hits, nil
}
