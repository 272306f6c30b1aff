package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Fetch     FetchConfig
	Render    RenderConfig
	Extract   ExtractConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
	CORS      CORSConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// FetchConfig controls the direct HTTP fetch tier.
type FetchConfig struct {
	// DirectTimeout is the deadline for the direct HTTP attempt.
	DirectTimeout time.Duration // default: 5s

	// MaxTimeout is the maximum allowed per-request timeout from the client.
	MaxTimeout time.Duration // default: 30s

	// MinContentBytes is the minimum body length for a direct response to
	// count as sufficient. Shorter bodies are treated as an anti-bot shell
	// and the orchestrator advances to the rendering tier.
	MinContentBytes int // default: 500

	// MaxBodyBytes caps how much of a response body is read.
	MaxBodyBytes int64 // default: 10 MB
}

// RenderConfig controls the external rendering-service tier.
type RenderConfig struct {
	// Endpoint is the rendering service base URL.
	Endpoint string // default: "https://api.scraperapi.com/"

	// APIKey authenticates against the rendering service.
	// When empty the rendering tier is disabled entirely.
	APIKey string

	// Timeout is the deadline for a rendered fetch.
	Timeout time.Duration // default: 10s
}

// ExtractConfig controls the field extraction heuristics.
type ExtractConfig struct {
	// BestBuyPriceFloor is the minimum value a Best Buy price candidate must
	// reach to be accepted outright. Guards against incidental small numbers
	// such as monthly-plan fees. Heuristic, not documented retailer behavior.
	BestBuyPriceFloor float64 // default: 10

	// MinImageDimension is the smallest declared width/height an <img> may
	// have and still qualify as a generic product-image candidate.
	MinImageDimension int // default: 120

	// ReadabilityFallback enables the readability-excerpt probe that runs
	// only when every description meta tag missed.
	ReadabilityFallback bool // default: true
}

// AuthConfig controls API key authentication.
type AuthConfig struct {
	// Enabled toggles API key authentication.
	Enabled bool // default: false

	// APIKeys is the list of valid API keys.
	APIKeys []string
}

// RateLimitConfig controls per-key rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per API key.
	RequestsPerSecond float64 // default: 5

	// Burst is the maximum burst size per API key.
	Burst int // default: 10
}

// CacheConfig controls the opt-in response cache.
type CacheConfig struct {
	// MaxEntries is the maximum number of cached responses.
	MaxEntries int // default: 1000
}

// CORSConfig controls cross-origin access for the wishlist UI.
type CORSConfig struct {
	// AllowedOrigins lists origins permitted to call the API from a browser.
	// default: ["*"]
	AllowedOrigins []string
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("UNFURL_HOST", "0.0.0.0"),
			Port: envIntOr("UNFURL_PORT", 8080),
			Mode: envOr("UNFURL_MODE", "release"),
		},
		Fetch: FetchConfig{
			DirectTimeout:   envDurationOr("UNFURL_DIRECT_TIMEOUT", 5*time.Second),
			MaxTimeout:      envDurationOr("UNFURL_MAX_TIMEOUT", 30*time.Second),
			MinContentBytes: envIntOr("UNFURL_MIN_CONTENT_BYTES", 500),
			MaxBodyBytes:    int64(envIntOr("UNFURL_MAX_BODY_BYTES", 10<<20)),
		},
		Render: RenderConfig{
			Endpoint: envOr("UNFURL_RENDER_ENDPOINT", "https://api.scraperapi.com/"),
			APIKey:   os.Getenv("UNFURL_RENDER_API_KEY"),
			Timeout:  envDurationOr("UNFURL_RENDER_TIMEOUT", 10*time.Second),
		},
		Extract: ExtractConfig{
			BestBuyPriceFloor:   envFloatOr("UNFURL_BESTBUY_PRICE_FLOOR", 10),
			MinImageDimension:   envIntOr("UNFURL_MIN_IMAGE_DIMENSION", 120),
			ReadabilityFallback: envBoolOr("UNFURL_READABILITY_FALLBACK", true),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("UNFURL_AUTH_ENABLED", false),
			APIKeys: envSliceOr("UNFURL_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("UNFURL_RATE_RPS", 5.0),
			Burst:             envIntOr("UNFURL_RATE_BURST", 10),
		},
		Cache: CacheConfig{
			MaxEntries: envIntOr("UNFURL_CACHE_MAX_ENTRIES", 1000),
		},
		CORS: CORSConfig{
			AllowedOrigins: envSliceOr("UNFURL_CORS_ORIGINS", []string{"*"}),
		},
		Log: LogConfig{
			Level:  envOr("UNFURL_LOG_LEVEL", "info"),
			Format: envOr("UNFURL_LOG_FORMAT", "json"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
