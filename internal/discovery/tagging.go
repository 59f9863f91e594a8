package discovery

import (
	"regexp"
	"strings"
)

// Vocabulary families tested against the lower-cased concatenation of
// title, snippet and body excerpt. Families are independent; tags are
// additive.
var (
	uccVocab = regexp.MustCompile(
		`ucc[- ]?1\b|ucc filing|financing statement|secured party|security agreement|lien filing`)
	fundingVocab = regexp.MustCompile(
		`seeking funding|working capital|bridge loan|merchant cash advance|line of credit|` +
			`short[- ]?term financing|cash flow (?:problem|crunch|gap)|loan application|needs? (?:a )?loan`)
	revenueVocab = regexp.MustCompile(
		`(?:annual |monthly |gross )?(?:revenue|sales) of \$[\d,.]+|` +
			`\$[\d,.]+ ?(?:k|m|mm|million|billion)? in (?:annual |monthly )?(?:revenue|sales)`)

	// Filing references are matched against the raw body so the code
	// portion keeps its original case. A token starts with "UCC",
	// optionally "-1"/"1", then a separator and 5-50 chars of
	// alphanumerics, hyphens or slashes.
	filingRefPattern = regexp.MustCompile(`(?i)\bUCC[- ]?1?[-:#\s]{1,3}[A-Z0-9][A-Z0-9/-]{4,49}`)
)

// ExtractTags classifies candidate text into the tag set. Pure: the
// same inputs always produce the same tags.
func ExtractTags(title, snippet, bodyExcerpt string) []Tag {
	text := strings.ToLower(title + " " + snippet + " " + bodyExcerpt)
	var tags []Tag
	if uccVocab.MatchString(text) {
		tags = append(tags, TagUCC)
	}
	if fundingVocab.MatchString(text) {
		tags = append(tags, TagFunding)
	}
	if revenueVocab.MatchString(text) {
		tags = append(tags, TagRevenueHint)
	}
	return tags
}

// FilingRefs scans raw body text for filing-reference tokens, returning
// up to max distinct matches in first-seen order.
func FilingRefs(body string, max int) []string {
	if max <= 0 {
		return nil
	}
	matches := filingRefPattern.FindAllString(body, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(matches))
	refs := make([]string, 0, max)
	for _, m := range matches {
		m = strings.TrimSpace(m)
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		refs = append(refs, m)
		if len(refs) == max {
			break
		}
	}
	return refs
}
