package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		title   string
		snippet string
		body    string
		want    []Tag
	}{
		{
			name: "ucc vocabulary in body",
			body: "A UCC-1 Financing Statement was filed against the debtor.",
			want: []Tag{TagUCC},
		},
		{
			name:    "funding vocabulary in snippet",
			snippet: "The company is seeking funding to cover payroll.",
			want:    []Tag{TagFunding},
		},
		{
			name:  "revenue vocabulary in title",
			title: "Distributor with revenue of $2,400,000 explores sale",
			want:  []Tag{TagRevenueHint},
		},
		{
			name:    "tags are additive",
			title:   "UCC filing notice",
			snippet: "needs a bridge loan",
			body:    "reported $5M in annual revenue",
			want:    []Tag{TagUCC, TagFunding, TagRevenueHint},
		},
		{
			name: "no vocabulary no tags",
			body: "A bakery opened downtown last week.",
			want: nil,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExtractTags(tt.title, tt.snippet, tt.body))
		})
	}
}

func TestExtractTagsIsPure(t *testing.T) {
	t.Parallel()

	title, snippet, body := "UCC filing", "seeking funding", "revenue of $900,000"
	first := ExtractTags(title, snippet, body)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ExtractTags(title, snippet, body))
	}
}

func TestFilingRefs(t *testing.T) {
	t.Parallel()

	body := "Filings: UCC-1 2024-123456789, ucc 2024-987654321, and again UCC-1 2024-123456789."
	refs := FilingRefs(body, 5)
	require.Len(t, refs, 2)
	// Original case preserved, first-seen order, duplicates collapsed.
	assert.Equal(t, "UCC-1 2024-123456789", refs[0])
	assert.Equal(t, "ucc 2024-987654321", refs[1])
}

func TestFilingRefsCap(t *testing.T) {
	t.Parallel()

	body := ""
	for _, n := range []string{"11111", "22222", "33333", "44444"} {
		body += "UCC-1 #FS-2024-" + n + " filed. "
	}
	refs := FilingRefs(body, 3)
	assert.Len(t, refs, 3)
}

func TestFilingRefsNoMatch(t *testing.T) {
	t.Parallel()

	assert.Empty(t, FilingRefs("nothing to see here", 5))
	assert.Empty(t, FilingRefs("UCC", 5))
}
