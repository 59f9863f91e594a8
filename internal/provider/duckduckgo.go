package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/finsignal/leadscout/internal/discovery"
)

const duckDuckGoEndpoint = "https://html.duckduckgo.com/html/"

// DuckDuckGo scrapes the HTML-only DuckDuckGo results page. It needs no
// credential, which makes it the fallback provider when every
// credentialed source comes back empty.
type DuckDuckGo struct {
	endpoint  string
	userAgent string
	client    *http.Client
}

// NewDuckDuckGo builds the adapter.
func NewDuckDuckGo(userAgent string, timeout time.Duration) *DuckDuckGo {
	return &DuckDuckGo{
		endpoint:  duckDuckGoEndpoint,
		userAgent: userAgent,
		client:    newClient(timeout),
	}
}

// Name implements discovery.Provider.
func (d *DuckDuckGo) Name() string { return "duckduckgo" }

// Search implements discovery.Provider.
func (d *DuckDuckGo) Search(ctx context.Context, query string) ([]discovery.SearchHit, error) {
	endpoint := fmt.Sprintf("%s?q=%s", d.endpoint, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("new duckduckgo request: %w", err)
	}
	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("duckduckgo search: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("duckduckgo status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("parse duckduckgo results: %w", err)
	}

	var hits []discovery.SearchHit
	doc.Find(".result").Each(func(_ int, sel *goquery.Selection) {
		anchor := sel.Find("a.result__a").First()
		href, ok := anchor.Attr("href")
		if !ok {
			return
		}
		target := resolveRedirect(href)
		if target == "" {
			return
		}
		hits = append(hits, discovery.SearchHit{
			Title:   strings.TrimSpace(anchor.Text()),
			URL:     target,
			Snippet: strings.TrimSpace(sel.Find(".result__snippet").First().Text()),
			Source:  d.Name(),
		})
	})
	return hits, nil
}

// resolveRedirect unwraps DuckDuckGo's /l/?uddg= redirect links.
func resolveRedirect(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	if u.Host == "" && u.Scheme == "" {
		return ""
	}
	return href
}
