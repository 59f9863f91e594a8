// Package config loads and validates service configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures all service configuration knobs loaded via Viper.
// Provider credentials live here explicitly; components never consult
// ambient state, so tests can inject mock credentials deterministically.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Pipeline  PipelineConfig  `mapstructure:"pipeline"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Robots    RobotsConfig    `mapstructure:"robots"`
	Crawler   CrawlerConfig   `mapstructure:"crawler"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Providers ProvidersConfig `mapstructure:"providers"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// ServerConfig controls HTTP server behavior.
type ServerConfig struct {
	Port              int `mapstructure:"port"`
	RequestTimeoutSec int `mapstructure:"request_timeout_sec"`
}

// AuthConfig defines API authentication toggles.
type AuthConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	APIKey  string `mapstructure:"api_key"`
}

// PipelineConfig bounds a single discovery run.
type PipelineConfig struct {
	Concurrency     int `mapstructure:"concurrency"`
	MaxRawHits      int `mapstructure:"max_raw_hits"`
	MaxResults      int `mapstructure:"max_results"`
	MaxFilingRefs   int `mapstructure:"max_filing_refs"`
	RoundDelayMs    int `mapstructure:"round_delay_ms"`
	DeadlineSeconds int `mapstructure:"deadline_seconds"`
}

// HTTPConfig configures outbound HTTP client behavior.
type HTTPConfig struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// RobotsConfig governs robots.txt enforcement.
type RobotsConfig struct {
	Respect        bool `mapstructure:"respect"`
	FallbackAllow  bool `mapstructure:"fallback_allow"`
	TimeoutSeconds int  `mapstructure:"timeout_seconds"`
}

// CrawlerConfig covers outbound identification.
type CrawlerConfig struct {
	UserAgent string `mapstructure:"user_agent"`
}

// RateLimitConfig controls per-domain outbound throttling.
type RateLimitConfig struct {
	DefaultRPS   float64 `mapstructure:"default_rps"`
	DefaultBurst int     `mapstructure:"default_burst"`
}

// ProvidersConfig holds per-provider credentials and feed URLs. An
// empty credential disables that provider; the pipeline degrades
// gracefully rather than erroring.
type ProvidersConfig struct {
	Serper         SerperConfig         `mapstructure:"serper"`
	Bing           BingConfig           `mapstructure:"bing"`
	OpenCorporates OpenCorporatesConfig `mapstructure:"opencorporates"`
	Hunter         HunterConfig         `mapstructure:"hunter"`
	FilingFeeds    []string             `mapstructure:"filing_feeds"`
}

// SerperConfig configures the serper.dev search adapter.
type SerperConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// BingConfig configures the Bing Web Search adapter.
type BingConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// OpenCorporatesConfig configures the company-registry adapter.
type OpenCorporatesConfig struct {
	APIToken string `mapstructure:"api_token"`
}

// HunterConfig configures the contact-directory client.
type HunterConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("LEADSCOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.request_timeout_sec", 60)
	v.SetDefault("pipeline.concurrency", 5)
	v.SetDefault("pipeline.max_raw_hits", 30)
	v.SetDefault("pipeline.max_results", 50)
	v.SetDefault("pipeline.max_filing_refs", 5)
	v.SetDefault("pipeline.round_delay_ms", 500)
	v.SetDefault("pipeline.deadline_seconds", 45)
	v.SetDefault("http.timeout_seconds", 12)
	v.SetDefault("robots.respect", true)
	v.SetDefault("robots.fallback_allow", true)
	v.SetDefault("robots.timeout_seconds", 8)
	v.SetDefault("crawler.user_agent", "leadscout-bot/1.0 (+https://finsignal.example/bot)")
	v.SetDefault("ratelimit.default_rps", 1.0)
	v.SetDefault("ratelimit.default_burst", 2)
	v.SetDefault("logging.development", true)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be > 0")
	}
	if c.Pipeline.Concurrency <= 0 {
		return fmt.Errorf("pipeline.concurrency must be > 0")
	}
	if c.Pipeline.MaxRawHits <= 0 {
		return fmt.Errorf("pipeline.max_raw_hits must be > 0")
	}
	if c.Pipeline.MaxResults <= 0 {
		return fmt.Errorf("pipeline.max_results must be > 0")
	}
	if c.HTTP.TimeoutSeconds <= 0 {
		return fmt.Errorf("http.timeout_seconds must be > 0")
	}
	if c.Crawler.UserAgent == "" {
		return fmt.Errorf("crawler.user_agent must be set")
	}
	if c.Auth.Enabled && c.Auth.APIKey == "" {
		return fmt.Errorf("auth.api_key must be set when auth is enabled")
	}
	return nil
}

// HTTPTimeout converts the outbound timeout config into a duration.
func (c Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutSeconds) * time.Second
}

// RobotsTimeout converts the robots fetch timeout into a duration.
func (c Config) RobotsTimeout() time.Duration {
	return time.Duration(c.Robots.TimeoutSeconds) * time.Second
}

// RoundDelay converts the inter-round delay into a duration.
func (c Config) RoundDelay() time.Duration {
	return time.Duration(c.Pipeline.RoundDelayMs) * time.Millisecond
}

// PipelineDeadline converts the overall deadline into a duration.
func (c Config) PipelineDeadline() time.Duration {
	return time.Duration(c.Pipeline.DeadlineSeconds) * time.Second
}
