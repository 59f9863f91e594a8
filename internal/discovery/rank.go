package discovery

import "sort"

// Scoring weights. UCC vocabulary dominates because it is the most
// direct distress signal; filing references add incremental confidence.
const (
	uccScore          = 100
	fundingScore      = 50
	perFilingRefScore = 10
)

// ScoreLead computes the rank score for a lead from its tags and
// filing references. Refs beyond maxRefs do not add score.
func ScoreLead(lead Lead, maxRefs int) int {
	score := 0
	for _, tag := range lead.Tags {
		switch tag {
		case TagUCC:
			score += uccScore
		case TagFunding:
			score += fundingScore
		}
	}
	refs := len(lead.FilingRefs)
	if maxRefs > 0 && refs > maxRefs {
		refs = maxRefs
	}
	return score + refs*perFilingRefScore
}

// Rank scores leads, sorts descending and truncates to maxResults.
// The sort is stable: equal scores keep discovery order.
func Rank(leads []Lead, maxRefs, maxResults int) []Lead {
	for i := range leads {
		leads[i].Score = ScoreLead(leads[i], maxRefs)
	}
	sort.SliceStable(leads, func(i, j int) bool {
		return leads[i].Score > leads[j].Score
	})
	if maxResults > 0 && len(leads) > maxResults {
		leads = leads[:maxResults]
	}
	return leads
}
