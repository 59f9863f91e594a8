// Package app assembles the discovery pipeline from configuration,
// acting as the service's dependency injection point.
package app

import (
	"go.uber.org/zap"

	"github.com/finsignal/leadscout/internal/config"
	"github.com/finsignal/leadscout/internal/discovery"
	collyfetcher "github.com/finsignal/leadscout/internal/fetcher/colly"
	"github.com/finsignal/leadscout/internal/provider"
	"github.com/finsignal/leadscout/internal/ratelimit"
)

// App holds the assembled long-lived services.
type App struct {
	Config   config.Config
	Logger   *zap.Logger
	Pipeline *discovery.Pipeline
}

// New builds every pipeline stage from cfg. Providers without
// credentials are simply not wired; the pipeline degrades to whatever
// sources remain, down to the credential-free fallback search.
func New(cfg config.Config, logger *zap.Logger) *App {
	agent := cfg.Crawler.UserAgent
	timeout := cfg.HTTPTimeout()

	var providers []discovery.Provider
	if cfg.Providers.Serper.APIKey != "" {
		providers = append(providers, provider.NewSerper(cfg.Providers.Serper.APIKey, agent, timeout))
	}
	if cfg.Providers.Bing.APIKey != "" {
		providers = append(providers, provider.NewBing(cfg.Providers.Bing.APIKey, agent, timeout))
	}

	var registry discovery.RegistryClient
	if cfg.Providers.OpenCorporates.APIToken != "" {
		oc := provider.NewOpenCorporates(cfg.Providers.OpenCorporates.APIToken, agent, timeout)
		providers = append(providers, oc)
		registry = oc
	}
	if len(cfg.Providers.FilingFeeds) > 0 {
		providers = append(providers, provider.NewFilingFeed(cfg.Providers.FilingFeeds, agent, timeout))
	}

	var directory discovery.DirectoryClient
	if cfg.Providers.Hunter.APIKey != "" {
		directory = provider.NewHunter(cfg.Providers.Hunter.APIKey, agent, timeout)
	}

	fallback := provider.NewDuckDuckGo(agent, timeout)

	robots := discovery.NewRobotsEnforcer(discovery.RobotsConfig{
		Respect:       cfg.Robots.Respect,
		FallbackAllow: cfg.Robots.FallbackAllow,
		UserAgent:     agent,
		Timeout:       cfg.RobotsTimeout(),
	}, logger)

	fetcher := collyfetcher.New(collyfetcher.Config{
		UserAgent: agent,
		Timeout:   timeout,
	})

	limiter := ratelimit.New(ratelimit.Config{
		DefaultRPS:   cfg.RateLimit.DefaultRPS,
		DefaultBurst: cfg.RateLimit.DefaultBurst,
	})

	extractor := discovery.NewExtractor(discovery.ExtractorConfig{
		MaxFilingRefs: cfg.Pipeline.MaxFilingRefs,
	})

	waterfall := discovery.NewWaterfall(directory, registry, robots, fetcher, limiter, logger)

	pipeline := discovery.NewPipeline(
		providers,
		fallback,
		robots,
		fetcher,
		extractor,
		waterfall,
		limiter,
		discovery.PipelineConfig{
			Concurrency:   cfg.Pipeline.Concurrency,
			MaxRawHits:    cfg.Pipeline.MaxRawHits,
			MaxResults:    cfg.Pipeline.MaxResults,
			MaxFilingRefs: cfg.Pipeline.MaxFilingRefs,
			RoundDelay:    cfg.RoundDelay(),
			Deadline:      cfg.PipelineDeadline(),
		},
		logger,
	)

	return &App{Config: cfg, Logger: logger, Pipeline: pipeline}
}
