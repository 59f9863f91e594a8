package discovery

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

// Test doubles shared by the enrichment and pipeline tests.

type stubProvider struct {
	name  string
	hits  []SearchHit
	err   error
	calls atomic.Int32
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Search(_ context.Context, _ string) ([]SearchHit, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return s.hits, nil
}

type stubRobots struct {
	denied map[string]bool
}

func (s *stubRobots) Allowed(_ context.Context, rawURL string) bool {
	return !s.denied[rawURL]
}

type stubFetcher struct {
	pages       map[string]string
	defaultPage string
	failing     map[string]bool
	delay       time.Duration
	calls       atomic.Int32
}

func (s *stubFetcher) Fetch(ctx context.Context, url string) (FetchResponse, error) {
	s.calls.Add(1)
	if s.delay > 0 {
		select {
		case <-ctx.Done():
			return FetchResponse{}, ctx.Err()
		case <-time.After(s.delay):
		}
	}
	if s.failing[url] {
		return FetchResponse{}, errors.New("fetch timeout")
	}
	body, ok := s.pages[url]
	if !ok {
		if s.defaultPage == "" {
			return FetchResponse{URL: url, StatusCode: 404}, nil
		}
		body = s.defaultPage
	}
	return FetchResponse{URL: url, StatusCode: 200, Body: []byte(body)}, nil
}

type stubDirectory struct {
	byDomain map[string]DirectoryResult
	err      error
	calls    atomic.Int32
}

func (s *stubDirectory) DomainSearch(_ context.Context, domain string) (DirectoryResult, error) {
	s.calls.Add(1)
	if s.err != nil {
		return DirectoryResult{}, s.err
	}
	return s.byDomain[domain], nil
}

type stubRegistry struct {
	match RegistryMatch
	found bool
	err   error
}

func (s *stubRegistry) CompanySearch(_ context.Context, _ string) (RegistryMatch, bool, error) {
	if s.err != nil {
		return RegistryMatch{}, false, s.err
	}
	return s.match, s.found, nil
}
