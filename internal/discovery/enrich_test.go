package discovery

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestWaterfallDirectoryFillsEmail(t *testing.T) {
	t.Parallel()

	directory := &stubDirectory{byDomain: map[string]DirectoryResult{
		"acme.example": {Email: "hello@acme.example"},
	}}
	w := NewWaterfall(directory, nil, &stubRobots{}, &stubFetcher{}, nil, zap.NewNop())

	lead := w.Enrich(context.Background(), Lead{URL: "https://www.acme.example/about"}, &ExtractedCandidate{})
	assert.Equal(t, "hello@acme.example", lead.Email)
}

func TestWaterfallNeverOverwritesContacts(t *testing.T) {
	t.Parallel()

	directory := &stubDirectory{byDomain: map[string]DirectoryResult{
		"acme.example": {Email: "directory@acme.example", Phone: "+1-555-9999"},
	}}
	cand := &ExtractedCandidate{
		Emails: []string{"page@acme.example"},
		Phones: []string{"+1-555-0000"},
	}
	w := NewWaterfall(directory, nil, &stubRobots{}, &stubFetcher{}, nil, zap.NewNop())

	lead := Lead{
		URL:   "https://acme.example",
		Email: "existing@acme.example",
		Phone: "+1-555-1111",
	}
	got := w.Enrich(context.Background(), lead, cand)
	assert.Equal(t, "existing@acme.example", got.Email)
	assert.Equal(t, "+1-555-1111", got.Phone)
}

func TestWaterfallUsesExtractedContacts(t *testing.T) {
	t.Parallel()

	cand := &ExtractedCandidate{
		Emails: []string{"first@acme.example", "second@acme.example"},
		Phones: []string{"+1-555-0100"},
	}
	fetcher := &stubFetcher{}
	w := NewWaterfall(nil, nil, &stubRobots{}, fetcher, nil, zap.NewNop())

	lead := w.Enrich(context.Background(), Lead{URL: "https://acme.example"}, cand)
	assert.Equal(t, "first@acme.example", lead.Email)
	assert.Equal(t, "+1-555-0100", lead.Phone)
	// The already-extracted page satisfies the scan without a refetch.
	assert.Zero(t, fetcher.calls.Load())
}

func TestWaterfallFetchesWhenNoExtraction(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{pages: map[string]string{
		"https://acme.example": `<html><body><a href="mailto:ops@acme.example">mail</a></body></html>`,
	}}
	w := NewWaterfall(nil, nil, &stubRobots{}, fetcher, nil, zap.NewNop())

	lead := w.Enrich(context.Background(), Lead{URL: "https://acme.example"}, nil)
	assert.Equal(t, "ops@acme.example", lead.Email)
	assert.Equal(t, int32(1), fetcher.calls.Load())
}

func TestWaterfallRespectsRobotsDenial(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{pages: map[string]string{
		"https://acme.example": `<html><body><a href="mailto:ops@acme.example">mail</a></body></html>`,
	}}
	robots := &stubRobots{denied: map[string]bool{"https://acme.example": true}}
	w := NewWaterfall(nil, nil, robots, fetcher, nil, zap.NewNop())

	lead := w.Enrich(context.Background(), Lead{URL: "https://acme.example"}, nil)
	assert.Empty(t, lead.Email)
	assert.Zero(t, fetcher.calls.Load())
}

func TestWaterfallRegistryCanonicalName(t *testing.T) {
	t.Parallel()

	registry := &stubRegistry{
		match: RegistryMatch{
			Name:         "ACME LOGISTICS LLC",
			Jurisdiction: "us_de",
			CompanyURL:   "https://acme-hq.example",
		},
		found: true,
	}
	directory := &stubDirectory{byDomain: map[string]DirectoryResult{
		"acme-hq.example": {Email: "contact@acme-hq.example"},
	}}
	w := NewWaterfall(directory, registry, &stubRobots{}, &stubFetcher{}, nil, zap.NewNop())

	lead := w.Enrich(context.Background(), Lead{
		URL:          "https://unrelated.example/article",
		BusinessName: "Acme Logistics",
	}, &ExtractedCandidate{})

	assert.Equal(t, "ACME LOGISTICS LLC", lead.BusinessName)
	assert.Equal(t, "us_de", lead.Jurisdiction)
	assert.Equal(t, "contact@acme-hq.example", lead.Email)
}

func TestWaterfallRegistrySkippedWhenEmailPresent(t *testing.T) {
	t.Parallel()

	registry := &stubRegistry{
		match: RegistryMatch{Name: "ACME LLC", CompanyURL: "https://acme-hq.example"},
		found: true,
	}
	directory := &stubDirectory{byDomain: map[string]DirectoryResult{
		"acme-hq.example": {Email: "should-not-fill@acme-hq.example"},
	}}
	w := NewWaterfall(directory, registry, &stubRobots{}, &stubFetcher{}, nil, zap.NewNop())

	lead := w.Enrich(context.Background(), Lead{
		URL:          "https://acme.example",
		BusinessName: "Acme",
		Email:        "known@acme.example",
	}, &ExtractedCandidate{})

	// Canonical name still upgrades, contacts stay untouched.
	assert.Equal(t, "ACME LLC", lead.BusinessName)
	assert.Equal(t, "known@acme.example", lead.Email)
}

func TestWaterfallToleratesFailures(t *testing.T) {
	t.Parallel()

	directory := &stubDirectory{err: errors.New("directory down")}
	registry := &stubRegistry{err: errors.New("registry down")}
	fetcher := &stubFetcher{failing: map[string]bool{"https://acme.example": true}}
	w := NewWaterfall(directory, registry, &stubRobots{}, fetcher, nil, zap.NewNop())

	lead := w.Enrich(context.Background(), Lead{
		URL:          "https://acme.example",
		BusinessName: "Acme",
	}, nil)
	assert.Empty(t, lead.Email)
	assert.Empty(t, lead.Phone)
	assert.Equal(t, "Acme", lead.BusinessName)
}
