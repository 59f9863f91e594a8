package discovery

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/finsignal/leadscout/internal/metrics"
)

// ErrEmptyTopic is returned when the request topic is blank. It is a
// client error; the pipeline does not run and issues no network calls.
var ErrEmptyTopic = errors.New("topic must not be empty")

// PipelineConfig bounds one pipeline invocation.
type PipelineConfig struct {
	// Concurrency caps in-flight page fetches and enrichment calls.
	Concurrency int
	// MaxRawHits stops further query rounds once reached.
	MaxRawHits int
	// MaxResults truncates the ranked output.
	MaxResults int
	// MaxFilingRefs caps scored filing references per lead.
	MaxFilingRefs int
	// RoundDelay is the politeness pause between query rounds.
	RoundDelay time.Duration
	// Deadline bounds the whole run; zero disables it.
	Deadline time.Duration
}

func (c PipelineConfig) withDefaults() PipelineConfig {
	if c.Concurrency <= 0 {
		c.Concurrency = 5
	}
	if c.MaxRawHits <= 0 {
		c.MaxRawHits = 30
	}
	if c.MaxResults <= 0 {
		c.MaxResults = 50
	}
	if c.MaxFilingRefs <= 0 {
		c.MaxFilingRefs = 5
	}
	return c
}

// Pipeline composes query expansion, provider fan-out, deduplication,
// robots-gated extraction, enrichment and ranking into one stateless
// request/response cycle.
type Pipeline struct {
	providers []Provider
	fallback  Provider // credential-free web search used when every round is empty
	robots    RobotsPolicy
	fetcher   Fetcher
	extractor *Extractor
	waterfall *Waterfall
	limiter   DomainLimiter
	cfg       PipelineConfig
	logger    *zap.Logger
}

// NewPipeline wires the pipeline stages. fallback and limiter may be nil.
func NewPipeline(
	providers []Provider,
	fallback Provider,
	robots RobotsPolicy,
	fetcher Fetcher,
	extractor *Extractor,
	waterfall *Waterfall,
	limiter DomainLimiter,
	cfg PipelineConfig,
	logger *zap.Logger,
) *Pipeline {
	return &Pipeline{
		providers: providers,
		fallback:  fallback,
		robots:    robots,
		fetcher:   fetcher,
		extractor: extractor,
		waterfall: waterfall,
		limiter:   limiter,
		cfg:       cfg.withDefaults(),
		logger:    logger,
	}
}

// Run executes the pipeline for one topic. Per-provider and
// per-candidate failures degrade to partial output; only input
// validation and orchestration faults surface as errors.
func (p *Pipeline) Run(ctx context.Context, topic string) (Response, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return Response{}, ErrEmptyTopic
	}

	if p.cfg.Deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.Deadline)
		defer cancel()
	}

	start := time.Now()
	hits := p.fanOut(ctx, ComposeQueries(topic))
	if len(hits) == 0 && p.fallback != nil {
		hits = p.searchProvider(ctx, p.fallback, topic)
	}

	unique := DeduplicateHits(hits)
	p.logger.Info("provider fan-out complete",
		zap.String("topic", topic),
		zap.Int("raw_hits", len(hits)),
		zap.Int("unique", len(unique)))

	leads := p.processCandidates(ctx, unique)
	leads = Rank(leads, p.cfg.MaxFilingRefs, p.cfg.MaxResults)

	metrics.PipelineRun(time.Since(start).Seconds(), len(leads))
	return Response{Query: topic, Items: leads}, nil
}

// fanOut issues each query to every provider, round by round, stopping
// once the raw-hit threshold is reached. Providers within a round run
// concurrently; their hits are merged in configured provider order.
func (p *Pipeline) fanOut(ctx context.Context, queries []string) []SearchHit {
	var hits []SearchHit
	for round, query := range queries {
		if len(hits) >= p.cfg.MaxRawHits {
			break
		}
		if round > 0 && p.cfg.RoundDelay > 0 {
			select {
			case <-ctx.Done():
				return hits
			case <-time.After(p.cfg.RoundDelay):
			}
		}

		perProvider := make([][]SearchHit, len(p.providers))
		g, groupCtx := errgroup.WithContext(ctx)
		g.SetLimit(p.cfg.Concurrency)
		for i, prov := range p.providers {
			i, prov := i, prov
			g.Go(func() error {
				perProvider[i] = p.searchProvider(groupCtx, prov, query)
				return nil
			})
		}
		_ = g.Wait()

		for _, provHits := range perProvider {
			hits = append(hits, provHits...)
		}
	}
	return hits
}

// searchProvider converts a provider failure into an empty result set.
func (p *Pipeline) searchProvider(ctx context.Context, prov Provider, query string) []SearchHit {
	provHits, err := prov.Search(ctx, query)
	if err != nil {
		metrics.ProviderRequest(prov.Name(), "error")
		p.logger.Warn("provider search failed",
			zap.String("provider", prov.Name()),
			zap.String("query", query),
			zap.Error(err))
		return nil
	}
	metrics.ProviderRequest(prov.Name(), "ok")
	return provHits
}

// processCandidates maps hits through extraction and enrichment under
// the shared concurrency limit. Indexed assignment preserves discovery
// order for the stable rank below.
func (p *Pipeline) processCandidates(ctx context.Context, hits []SearchHit) []Lead {
	slots := make([]Lead, len(hits))
	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Concurrency)
	for i, hit := range hits {
		i, hit := i, hit
		g.Go(func() error {
			slots[i] = p.processCandidate(groupCtx, hit)
			return nil
		})
	}
	_ = g.Wait()

	// Candidates abandoned at the deadline leave empty slots.
	leads := make([]Lead, 0, len(slots))
	for _, lead := range slots {
		if lead.URL != "" {
			leads = append(leads, lead)
		}
	}
	return leads
}

// processCandidate builds a lead for one hit. Extraction failures leave
// the provider-supplied fields intact; they never fail the batch.
func (p *Pipeline) processCandidate(ctx context.Context, hit SearchHit) Lead {
	if ctx.Err() != nil {
		return Lead{}
	}

	lead := Lead{
		Title:        hit.Title,
		URL:          hit.URL,
		Snippet:      hit.Snippet,
		Source:       hit.Source,
		Tags:         []Tag{},
		BusinessName: hit.Title,
		Jurisdiction: hit.Jurisdiction,
		FilingID:     hit.FilingID,
	}

	cand := p.extractCandidate(ctx, hit)
	if cand != nil {
		lead.Title = cand.Title
		lead.Tags = cand.Tags
		if lead.Tags == nil {
			lead.Tags = []Tag{}
		}
		lead.FilingRefs = cand.FilingRefs
		lead.BodyExcerpt = cand.BodyExcerpt
		if lead.BusinessName == "" {
			lead.BusinessName = cand.Title
		}
	}

	return p.waterfall.Enrich(ctx, lead, cand)
}

// extractCandidate runs the robots gate, rate limiter, fetch and
// extraction for one hit. Any failure yields nil.
func (p *Pipeline) extractCandidate(ctx context.Context, hit SearchHit) *ExtractedCandidate {
	if !p.robots.Allowed(ctx, hit.URL) {
		metrics.RobotsDenied()
		p.logger.Debug("crawl denied by robots", zap.String("url", hit.URL))
		return nil
	}
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx, hit.URL); err != nil {
			return nil
		}
	}
	resp, err := p.fetcher.Fetch(ctx, hit.URL)
	if err != nil {
		metrics.PageFetched("error")
		p.logger.Warn("candidate fetch failed", zap.String("url", hit.URL), zap.Error(err))
		return nil
	}
	if resp.StatusCode >= 400 {
		metrics.PageFetched("http_error")
		p.logger.Debug("candidate fetch non-success",
			zap.String("url", hit.URL), zap.Int("status", resp.StatusCode))
		return nil
	}
	metrics.PageFetched("ok")

	cand, err := p.extractor.Extract(hit, resp.Body)
	if err != nil {
		p.logger.Debug("candidate parse failed", zap.String("url", hit.URL), zap.Error(err))
		return nil
	}
	return &cand
}
