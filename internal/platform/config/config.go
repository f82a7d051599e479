package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool
	LogLevel     string

	// Remote data service
	DemoMode      bool          // Serve from the in-memory demo remote instead of RemoteAPIURL
	RemoteAPIURL  string        `mapstructure:"REMOTE_API_URL"`
	RemoteTimeout time.Duration `mapstructure:"REMOTE_TIMEOUT"`

	// Client core
	CacheSize       int
	PageSize        int
	PendingTokenTTL time.Duration // Zero leaves pending-token expiry to the remote service
	LocalFiltering  bool          // Evaluate transaction filters on loaded pages instead of remotely

	LoginRateLimit     string   // ulule/limiter formatted rate, e.g. "10-M"
	CORSAllowedOrigins []string `mapstructure:"CORS_ALLOWED_ORIGINS"`
	PosthogAPIKey      string   `mapstructure:"POSTHOG_API_KEY"`

	// Demo remote only
	DemoJWTSecret string
	DemoJWTIssuer string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DEMO_MODE", true)
	v.SetDefault("REMOTE_API_URL", "")
	v.SetDefault("REMOTE_TIMEOUT", "15s")
	v.SetDefault("CACHE_SIZE", 512)
	v.SetDefault("PAGE_SIZE", 20)
	v.SetDefault("PENDING_TOKEN_TTL", "0s")
	v.SetDefault("LOCAL_FILTERING", false)
	v.SetDefault("LOGIN_RATE_LIMIT", "10-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("DEMO_JWT_SECRET", "demo-secret-not-for-production")
	v.SetDefault("DEMO_JWT_ISSUER", "spendwise-demo")

	v.AutomaticEnv()

	cfg := &Config{}
	cfg.Port = v.GetString("PORT")
	cfg.IsProduction = v.GetBool("IS_PRODUCTION")
	cfg.LogLevel = strings.ToLower(v.GetString("LOG_LEVEL"))
	cfg.DemoMode = v.GetBool("DEMO_MODE")
	cfg.RemoteAPIURL = v.GetString("REMOTE_API_URL")
	cfg.CacheSize = v.GetInt("CACHE_SIZE")
	cfg.PageSize = v.GetInt("PAGE_SIZE")
	cfg.LocalFiltering = v.GetBool("LOCAL_FILTERING")
	cfg.LoginRateLimit = v.GetString("LOGIN_RATE_LIMIT")
	cfg.PosthogAPIKey = v.GetString("POSTHOG_API_KEY")
	cfg.DemoJWTSecret = v.GetString("DEMO_JWT_SECRET")
	cfg.DemoJWTIssuer = v.GetString("DEMO_JWT_ISSUER")

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	remoteTimeoutStr := v.GetString("REMOTE_TIMEOUT")
	remoteTimeout, err := time.ParseDuration(remoteTimeoutStr)
	if err != nil || remoteTimeout <= 0 {
		remoteTimeout = 15 * time.Second
		log.Printf("Warning: Invalid value for REMOTE_TIMEOUT ('%s'). Defaulting to %s.\n", remoteTimeoutStr, remoteTimeout)
	}
	cfg.RemoteTimeout = remoteTimeout

	ttlStr := v.GetString("PENDING_TOKEN_TTL")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil || ttl < 0 {
		return nil, fmt.Errorf("invalid PENDING_TOKEN_TTL %q", ttlStr)
	}
	cfg.PendingTokenTTL = ttl

	if cfg.PageSize < 1 || cfg.PageSize > 100 {
		return nil, fmt.Errorf("PAGE_SIZE must be between 1 and 100, got %d", cfg.PageSize)
	}
	if cfg.CacheSize < 1 {
		return nil, fmt.Errorf("CACHE_SIZE must be positive, got %d", cfg.CacheSize)
	}

	if !cfg.DemoMode && cfg.RemoteAPIURL == "" {
		return nil, fmt.Errorf("REMOTE_API_URL is required when DEMO_MODE is off")
	}
	if cfg.DemoMode && cfg.IsProduction {
		log.Println("Warning: DEMO_MODE is on in production. Data is in memory and lost on restart.")
	}
	if cfg.PosthogAPIKey == "" {
		log.Println("Warning: POSTHOG_API_KEY not set. Product analytics are disabled.")
	}

	return cfg, nil
}
