package discovery

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// ExtractorConfig bounds extraction output.
type ExtractorConfig struct {
	// ExcerptLimit caps the body excerpt length in bytes.
	ExcerptLimit int
	// MaxFilingRefs caps distinct filing references per candidate.
	MaxFilingRefs int
}

// Extractor turns fetched page bodies into structured candidates.
type Extractor struct {
	cfg ExtractorConfig
}

// NewExtractor builds an Extractor, applying defaults for zero values.
func NewExtractor(cfg ExtractorConfig) *Extractor {
	if cfg.ExcerptLimit <= 0 {
		cfg.ExcerptLimit = 3000
	}
	if cfg.MaxFilingRefs <= 0 {
		cfg.MaxFilingRefs = 5
	}
	return &Extractor{cfg: cfg}
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Extract parses a fetched page into an ExtractedCandidate. The hit
// supplies fallbacks for the title and carries provenance fields.
func (e *Extractor) Extract(hit SearchHit, body []byte) (ExtractedCandidate, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ExtractedCandidate{}, fmt.Errorf("parse document: %w", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = hit.Title
	}
	if title == "" {
		title = hit.URL
	}

	doc.Find("script, style, noscript").Remove()
	text := whitespaceRun.ReplaceAllString(doc.Find("body").Text(), " ")
	text = strings.TrimSpace(text)
	excerpt := text
	if len(excerpt) > e.cfg.ExcerptLimit {
		cut := e.cfg.ExcerptLimit
		// Back up so a multi-byte rune is never split at the limit.
		for cut > 0 && !utf8.RuneStart(excerpt[cut]) {
			cut--
		}
		excerpt = excerpt[:cut]
	}

	emails, phones := contactLinks(doc)

	return ExtractedCandidate{
		Title:       title,
		URL:         hit.URL,
		Snippet:     hit.Snippet,
		Source:      hit.Source,
		Tags:        ExtractTags(title, hit.Snippet, excerpt),
		FilingRefs:  FilingRefs(text, e.cfg.MaxFilingRefs),
		BodyExcerpt: excerpt,
		Emails:      emails,
		Phones:      phones,
	}, nil
}

// contactLinks collects mailto: and tel: anchors in document order.
func contactLinks(doc *goquery.Document) (emails, phones []string) {
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok {
			return
		}
		href = strings.TrimSpace(href)
		switch {
		case strings.HasPrefix(strings.ToLower(href), "mailto:"):
			if addr := cleanContactTarget(href[len("mailto:"):]); addr != "" {
				emails = append(emails, addr)
			}
		case strings.HasPrefix(strings.ToLower(href), "tel:"):
			if num := cleanContactTarget(href[len("tel:"):]); num != "" {
				phones = append(phones, num)
			}
		}
	})
	return emails, phones
}

func cleanContactTarget(target string) string {
	if i := strings.IndexByte(target, '?'); i >= 0 {
		target = target[:i]
	}
	return strings.TrimSpace(target)
}
