package discovery

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
	"go.uber.org/zap"
)

// RobotsConfig controls robots enforcement.
type RobotsConfig struct {
	// Respect disables enforcement entirely when false.
	Respect bool
	// FallbackAllow governs the verdict when the robots resource cannot
	// be fetched or parsed. Allowing is the availability-over-caution
	// default; sites that must never be over-crawled set it false.
	FallbackAllow bool
	UserAgent     string
	Timeout       time.Duration
}

// RobotsEnforcer enforces robots.txt directives per origin. The policy
// cache lives for the lifetime of the enforcer; a race between two
// fetchers populating the same origin is harmless since policy content
// is idempotent per origin.
type RobotsEnforcer struct {
	client        *http.Client
	cache         sync.Map
	fallbackAllow bool
	userAgent     string
	logger        *zap.Logger
}

// NewRobotsEnforcer builds a RobotsPolicy respecting the config toggle.
func NewRobotsEnforcer(cfg RobotsConfig, logger *zap.Logger) RobotsPolicy {
	if !cfg.Respect {
		return &allowAllPolicy{}
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 8 * time.Second
	}
	return &RobotsEnforcer{
		client:        &http.Client{Timeout: timeout},
		fallbackAllow: cfg.FallbackAllow,
		userAgent:     cfg.UserAgent,
		logger:        logger,
	}
}

// Allowed implements RobotsPolicy.
func (r *RobotsEnforcer) Allowed(ctx context.Context, rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return false
	}
	data, err := r.load(ctx, parsed)
	if err != nil {
		r.logger.Warn("robots fetch failed",
			zap.String("host", parsed.Host),
			zap.Bool("fallback_allow", r.fallbackAllow),
			zap.Error(err))
		return r.fallbackAllow
	}
	group := data.FindGroup(r.userAgent)
	if group == nil {
		return true
	}
	return group.Test(parsed.Path)
}

func (r *RobotsEnforcer) load(ctx context.Context, parsed *url.URL) (*robotstxt.RobotsData, error) {
	hostKey := strings.ToLower(parsed.Host)
	if data, ok := r.cache.Load(hostKey); ok {
		cached, assertOK := data.(*robotstxt.RobotsData)
		if !assertOK {
			return nil, fmt.Errorf("robots cache type mismatch: %T", data)
		}
		return cached, nil
	}

	robotsURL := *parsed
	robotsURL.Path = path.Join("/", "robots.txt")
	robotsURL.RawQuery = ""
	robotsURL.Fragment = ""
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("new robots request: %w", err)
	}
	req.Header.Set("User-Agent", r.userAgent)
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch robots: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			r.logger.Debug("close robots response body", zap.Error(cerr))
		}
	}()
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read robots body: %w", err)
	}
	data, err := robotstxt.FromStatusAndBytes(resp.StatusCode, body)
	if err != nil {
		return nil, fmt.Errorf("parse robots: %w", err)
	}
	r.cache.Store(hostKey, data)
	return data, nil
}

type allowAllPolicy struct{}

func (a *allowAllPolicy) Allowed(context.Context, string) bool { return true }
