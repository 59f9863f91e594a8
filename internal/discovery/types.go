// Package discovery defines core types shared across the lead pipeline.
package discovery

// Tag classifies a candidate by the vocabulary found in its text.
type Tag string

// Tags assigned by the content extractor.
const (
	TagUCC         Tag = "UCC"
	TagFunding     Tag = "FUNDING"
	TagRevenueHint Tag = "REVENUE_HINT"
)

// SearchHit is the normalized output of a provider adapter. URL is the
// identity key once normalized; hits are not unique across providers
// until deduplicated.
type SearchHit struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
	Source  string `json:"source"`

	// Set only by filing-feed adapters, when the feed exposes them.
	Jurisdiction string `json:"jurisdiction,omitempty"`
	FilingID     string `json:"filing_id,omitempty"`
}

// ExtractedCandidate is produced by the content extractor from a fetched
// page. Immutable once created; tags derive purely from the candidate's
// own text.
type ExtractedCandidate struct {
	Title       string
	URL         string
	Snippet     string
	Source      string
	Tags        []Tag
	FilingRefs  []string
	BodyExcerpt string

	// Contact links found in the document, in document order. Consumed
	// by the enrichment waterfall so the page is not fetched twice.
	Emails []string
	Phones []string
}

// HasTag reports whether the candidate carries the given tag.
func (c ExtractedCandidate) HasTag(tag Tag) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Lead is the enriched response item: an extracted candidate with
// contact fields filled by the enrichment waterfall.
type Lead struct {
	Title        string   `json:"title"`
	URL          string   `json:"url"`
	Snippet      string   `json:"snippet,omitempty"`
	Source       string   `json:"source"`
	Tags         []Tag    `json:"tags"`
	FilingRefs   []string `json:"filing_refs,omitempty"`
	BodyExcerpt  string   `json:"body_excerpt,omitempty"`
	BusinessName string   `json:"business_name"`
	Jurisdiction string   `json:"jurisdiction,omitempty"`
	FilingID     string   `json:"filing_id,omitempty"`
	Email        string   `json:"email,omitempty"`
	Phone        string   `json:"phone,omitempty"`
	Score        int      `json:"score"`
}

// Response is the pipeline output for one topic.
type Response struct {
	Query string `json:"query"`
	Items []Lead `json:"items"`
}

// DirectoryResult is one contact returned by a contact-directory lookup.
type DirectoryResult struct {
	Email string
	Phone string
}

// RegistryMatch is a company-registry search result.
type RegistryMatch struct {
	Name         string
	Jurisdiction string
	CompanyURL   string
}
