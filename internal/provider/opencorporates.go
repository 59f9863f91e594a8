package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/finsignal/leadscout/internal/discovery"
)

const openCorporatesEndpoint = "https://api.opencorporates.com/v0.4/companies/search"

// OpenCorporates adapts the OpenCorporates companies search. It serves
// two roles: a registry-search provider in the fan-out, and the
// enrichment waterfall's registry client for canonical-name resolution.
type OpenCorporates struct {
	apiToken  string
	endpoint  string
	userAgent string
	client    *http.Client
}

// NewOpenCorporates builds the adapter.
func NewOpenCorporates(apiToken, userAgent string, timeout time.Duration) *OpenCorporates {
	return &OpenCorporates{
		apiToken:  apiToken,
		endpoint:  openCorporatesEndpoint,
		userAgent: userAgent,
		client:    newClient(timeout),
	}
}

// Name implements discovery.Provider.
func (o *OpenCorporates) Name() string { return "opencorporates" }

type openCorporatesResponse struct {
	Results struct {
		Companies []struct {
			Company struct {
				Name             string `json:"name"`
				JurisdictionCode string `json:"jurisdiction_code"`
				RegistryURL      string `json:"registry_url"`
				OpenCorpsURL     string `json:"opencorporates_url"`
			} `json:"company"`
		} `json:"companies"`
	} `json:"results"`
}

func (o *OpenCorporates) search(ctx context.Context, term string, limit int) (openCorporatesResponse, error) {
	endpoint := fmt.Sprintf("%s?q=%s&per_page=%d&api_token=%s",
		o.endpoint, url.QueryEscape(term), limit, url.QueryEscape(o.apiToken))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return openCorporatesResponse{}, fmt.Errorf("new opencorporates request: %w", err)
	}
	req.Header.Set("User-Agent", o.userAgent)

	var body openCorporatesResponse
	if err := doJSON(o.client, req, &body); err != nil {
		return openCorporatesResponse{}, fmt.Errorf("opencorporates search: %w", err)
	}
	return body, nil
}

// Search implements discovery.Provider.
func (o *OpenCorporates) Search(ctx context.Context, query string) ([]discovery.SearchHit, error) {
	body, err := o.search(ctx, query, 10)
	if err != nil {
		return nil, err
	}
	hits := make([]discovery.SearchHit, 0, len(body.Results.Companies))
	for _, entry := range body.Results.Companies {
		company := entry.Company
		target := company.RegistryURL
		if target == "" {
			target = company.OpenCorpsURL
		}
		if target == "" {
			continue
		}
		hits = append(hits, discovery.SearchHit{
			Title:        company.Name,
			URL:          target,
			Source:       o.Name(),
			Jurisdiction: company.JurisdictionCode,
		})
	}
	return hits, nil
}

// CompanySearch implements discovery.RegistryClient, returning the best
// match for a business name.
func (o *OpenCorporates) CompanySearch(ctx context.Context, name string) (discovery.RegistryMatch, bool, error) {
	body, err := o.search(ctx, name, 1)
	if err != nil {
		return discovery.RegistryMatch{}, false, err
	}
	if len(body.Results.Companies) == 0 {
		return discovery.RegistryMatch{}, false, nil
	}
	company := body.Results.Companies[0].Company
	target := company.RegistryURL
	if target == "" {
		target = company.OpenCorpsURL
	}
	return discovery.RegistryMatch{
		Name:         company.Name,
		Jurisdiction: company.JurisdictionCode,
		CompanyURL:   target,
	}, true, nil
}
