package provider

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/finsignal/leadscout/internal/discovery"
)

// FilingFeed adapts a set of UCC filing RSS/Atom feeds. Items matching
// the query topic become hits carrying jurisdiction and filing ID when
// the feed exposes them. Parsed feeds are cached briefly so successive
// query rounds within one pipeline run reuse a single fetch per feed.
type FilingFeed struct {
	feedURLs  []string
	userAgent string
	client    *http.Client

	mu       sync.Mutex
	cache    map[string]cachedFeed
	cacheTTL time.Duration
}

type cachedFeed struct {
	items     []feedItem
	fetchedAt time.Time
}

type feedItem struct {
	title        string
	link         string
	summary      string
	guid         string
	jurisdiction string
}

// NewFilingFeed builds the adapter over the configured feed URLs.
func NewFilingFeed(feedURLs []string, userAgent string, timeout time.Duration) *FilingFeed {
	return &FilingFeed{
		feedURLs:  feedURLs,
		userAgent: userAgent,
		client:    newClient(timeout),
		cache:     make(map[string]cachedFeed),
		cacheTTL:  time.Minute,
	}
}

// Name implements discovery.Provider.
func (f *FilingFeed) Name() string { return "filing-feed" }

// Search implements discovery.Provider. A feed that cannot be fetched
// or parsed is skipped; the remaining feeds still contribute.
func (f *FilingFeed) Search(ctx context.Context, query string) ([]discovery.SearchHit, error) {
	var hits []discovery.SearchHit
	var lastErr error
	for _, feedURL := range f.feedURLs {
		items, err := f.load(ctx, feedURL)
		if err != nil {
			lastErr = err
			continue
		}
		for _, item := range items {
			if item.link == "" || !matchesTopic(item, query) {
				continue
			}
			hits = append(hits, discovery.SearchHit{
				Title:        item.title,
				URL:          item.link,
				Snippet:      item.summary,
				Source:       f.Name(),
				Jurisdiction: item.jurisdiction,
				FilingID:     filingIDFromGUID(item.guid),
			})
		}
	}
	if hits == nil && lastErr != nil {
		return nil, fmt.Errorf("filing feeds: %w", lastErr)
	}
	return hits, nil
}

func (f *FilingFeed) load(ctx context.Context, feedURL string) ([]feedItem, error) {
	f.mu.Lock()
	cached, ok := f.cache[feedURL]
	f.mu.Unlock()
	if ok && time.Since(cached.fetchedAt) < f.cacheTTL {
		return cached.items, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("new feed request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed %s: %w", feedURL, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed %s status %d", feedURL, resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read feed %s: %w", feedURL, err)
	}
	items, err := parseFeed(raw)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", feedURL, err)
	}

	f.mu.Lock()
	f.cache[feedURL] = cachedFeed{items: items, fetchedAt: time.Now()}
	f.mu.Unlock()
	return items, nil
}

type rssDocument struct {
	Channel struct {
		Title string `xml:"title"`
		Items []struct {
			Title       string `xml:"title"`
			Link        string `xml:"link"`
			Description string `xml:"description"`
			GUID        string `xml:"guid"`
		} `xml:"item"`
	} `xml:"channel"`
}

type atomDocument struct {
	Title   string `xml:"title"`
	Entries []struct {
		Title string `xml:"title"`
		Link  struct {
			Href string `xml:"href,attr"`
		} `xml:"link"`
		Summary string `xml:"summary"`
		ID      string `xml:"id"`
	} `xml:"entry"`
}

// parseFeed handles RSS 2.0 and Atom. The channel title doubles as a
// jurisdiction label for state-level filing feeds.
func parseFeed(raw []byte) ([]feedItem, error) {
	var rss rssDocument
	if err := xml.Unmarshal(raw, &rss); err == nil && len(rss.Channel.Items) > 0 {
		items := make([]feedItem, 0, len(rss.Channel.Items))
		for _, it := range rss.Channel.Items {
			items = append(items, feedItem{
				title:        strings.TrimSpace(it.Title),
				link:         strings.TrimSpace(it.Link),
				summary:      strings.TrimSpace(it.Description),
				guid:         strings.TrimSpace(it.GUID),
				jurisdiction: strings.TrimSpace(rss.Channel.Title),
			})
		}
		return items, nil
	}

	var atom atomDocument
	if err := xml.Unmarshal(raw, &atom); err != nil {
		return nil, fmt.Errorf("unmarshal feed: %w", err)
	}
	if len(atom.Entries) == 0 {
		return nil, fmt.Errorf("feed has no recognizable items")
	}
	items := make([]feedItem, 0, len(atom.Entries))
	for _, entry := range atom.Entries {
		items = append(items, feedItem{
			title:        strings.TrimSpace(entry.Title),
			link:         strings.TrimSpace(entry.Link.Href),
			summary:      strings.TrimSpace(entry.Summary),
			guid:         strings.TrimSpace(entry.ID),
			jurisdiction: strings.TrimSpace(atom.Title),
		})
	}
	return items, nil
}

// templateVocabulary are query-template words every filing item would
// match; they carry no topic signal and are skipped during matching.
var templateVocabulary = map[string]struct{}{
	"ucc": {}, "ucc-1": {}, "financing": {}, "statement": {}, "filing": {},
	"filed": {}, "seeking": {}, "funding": {}, "working": {}, "capital": {},
	"merchant": {}, "cash": {}, "advance": {}, "bridge": {}, "loan": {},
	"site:.gov": {},
}

// matchesTopic keeps items containing any substantive query token.
func matchesTopic(item feedItem, query string) bool {
	haystack := strings.ToLower(item.title + " " + item.summary)
	for _, token := range strings.Fields(strings.ToLower(query)) {
		token = strings.Trim(token, `"()`)
		if len(token) < 4 {
			continue
		}
		if _, skip := templateVocabulary[token]; skip {
			continue
		}
		if strings.Contains(haystack, token) {
			return true
		}
	}
	return false
}

// filingIDFromGUID keeps a GUID only when it looks like a filing
// reference rather than a permalink.
func filingIDFromGUID(guid string) string {
	if guid == "" || strings.Contains(guid, "://") {
		return ""
	}
	return guid
}
