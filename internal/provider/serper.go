package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/finsignal/leadscout/internal/discovery"
)

const serperEndpoint = "https://google.serper.dev/search"

// Serper adapts the serper.dev Google search API.
type Serper struct {
	apiKey    string
	endpoint  string
	userAgent string
	client    *http.Client
}

// NewSerper builds the adapter. Callers must not construct it without a
// credential; the pipeline only wires providers whose credential is set.
func NewSerper(apiKey, userAgent string, timeout time.Duration) *Serper {
	return &Serper{
		apiKey:    apiKey,
		endpoint:  serperEndpoint,
		userAgent: userAgent,
		client:    newClient(timeout),
	}
}

// Name implements discovery.Provider.
func (s *Serper) Name() string { return "serper" }

type serperRequest struct {
	Q   string `json:"q"`
	Num int    `json:"num"`
}

type serperResponse struct {
	Organic []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"organic"`
}

// Search implements discovery.Provider.
func (s *Serper) Search(ctx context.Context, query string) ([]discovery.SearchHit, error) {
	payload, err := json.Marshal(serperRequest{Q: query, Num: 10})
	if err != nil {
		return nil, fmt.Errorf("marshal serper request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("new serper request: %w", err)
	}
	req.Header.Set("X-API-KEY", s.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", s.userAgent)

	var body serperResponse
	if err := doJSON(s.client, req, &body); err != nil {
		return nil, fmt.Errorf("serper search: %w", err)
	}

	hits := make([]discovery.SearchHit, 0, len(body.Organic))
	for _, item := range body.Organic {
		if item.Link == "" {
			continue
		}
		hits = append(hits, discovery.SearchHit{
			Title:   item.Title,
			URL:     item.Link,
			Snippet: item.Snippet,
			Source:  s.Name(),
		})
	}
	return hits, nil
}
