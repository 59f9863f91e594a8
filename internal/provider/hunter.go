package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/finsignal/leadscout/internal/discovery"
)

const hunterEndpoint = "https://api.hunter.io/v2/domain-search"

// Hunter adapts the hunter.io domain-search API as the waterfall's
// contact-directory client.
type Hunter struct {
	apiKey    string
	endpoint  string
	userAgent string
	client    *http.Client
}

// NewHunter builds the adapter.
func NewHunter(apiKey, userAgent string, timeout time.Duration) *Hunter {
	return &Hunter{
		apiKey:    apiKey,
		endpoint:  hunterEndpoint,
		userAgent: userAgent,
		client:    newClient(timeout),
	}
}

type hunterResponse struct {
	Data struct {
		Emails []struct {
			Value       string `json:"value"`
			PhoneNumber string `json:"phone_number"`
		} `json:"emails"`
	} `json:"data"`
}

// DomainSearch implements discovery.DirectoryClient, taking the first
// email the directory returns for the domain.
func (h *Hunter) DomainSearch(ctx context.Context, domain string) (discovery.DirectoryResult, error) {
	endpoint := fmt.Sprintf("%s?domain=%s&api_key=%s",
		h.endpoint, url.QueryEscape(domain), url.QueryEscape(h.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return discovery.DirectoryResult{}, fmt.Errorf("new hunter request: %w", err)
	}
	req.Header.Set("User-Agent", h.userAgent)

	var body hunterResponse
	if err := doJSON(h.client, req, &body); err != nil {
		return discovery.DirectoryResult{}, fmt.Errorf("hunter domain search: %w", err)
	}
	if len(body.Data.Emails) == 0 {
		return discovery.DirectoryResult{}, nil
	}
	first := body.Data.Emails[0]
	return discovery.DirectoryResult{
		Email: first.Value,
		Phone: first.PhoneNumber,
	}, nil
}
