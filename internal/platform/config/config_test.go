package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.DemoMode)
	assert.Equal(t, 20, cfg.PageSize)
	assert.Equal(t, 512, cfg.CacheSize)
	assert.Equal(t, time.Duration(0), cfg.PendingTokenTTL)
	assert.Equal(t, 15*time.Second, cfg.RemoteTimeout)
	assert.False(t, cfg.LocalFiltering)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DEMO_MODE", "false")
	t.Setenv("REMOTE_API_URL", "https://api.example.com/graphql")
	t.Setenv("PAGE_SIZE", "50")
	t.Setenv("PENDING_TOKEN_TTL", "5m")
	t.Setenv("LOCAL_FILTERING", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.False(t, cfg.DemoMode)
	assert.Equal(t, "https://api.example.com/graphql", cfg.RemoteAPIURL)
	assert.Equal(t, 50, cfg.PageSize)
	assert.Equal(t, 5*time.Minute, cfg.PendingTokenTTL)
	assert.True(t, cfg.LocalFiltering)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"remote url required outside demo mode", map[string]string{"DEMO_MODE": "false"}},
		{"page size too large", map[string]string{"PAGE_SIZE": "500"}},
		{"page size zero", map[string]string{"PAGE_SIZE": "0"}},
		{"bad pending ttl", map[string]string{"PENDING_TOKEN_TTL": "soon"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_BadRemoteTimeoutFallsBack(t *testing.T) {
	t.Setenv("REMOTE_TIMEOUT", "whenever")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 15*time.Second, cfg.RemoteTimeout)
}
