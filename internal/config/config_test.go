package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, "http://localhost:8080", cfg.Client.BaseURL)
	assert.Equal(t, 15, cfg.Client.TimeoutSeconds)
	assert.Equal(t, 24*time.Hour, cfg.JWT.ExpireTime)
	assert.Equal(t, "dev-only-secret", cfg.JWT.Secret)
	assert.Equal(t, 48*time.Hour, cfg.GuestAccessDuration())
	assert.Equal(t, 1000, cfg.RateLimit.MaxRequests)
	assert.False(t, cfg.FeatureEnabled("chat_simulations"))
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	yaml := `
server:
  port: "9090"
  mode: release
client:
  base_url: https://api.learnhub.test
  timeout_seconds: 30
jwt:
  secret: file-secret
  expire_hours: 12
guest:
  access_hours: 24
features:
  chat_simulations: true
tracing:
  enabled: true
  collector_endpoint: http://jaeger:14268/api/traces
cors:
  allowed_origins:
    - https://app.learnhub.test
rate_limit:
  max_requests: 50
  window_minutes: 5
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, "https://api.learnhub.test", cfg.Client.BaseURL)
	assert.Equal(t, 30, cfg.Client.TimeoutSeconds)
	assert.Equal(t, "file-secret", cfg.JWT.Secret)
	assert.Equal(t, 12*time.Hour, cfg.JWT.ExpireTime)
	assert.Equal(t, 24*time.Hour, cfg.GuestAccessDuration())
	assert.True(t, cfg.FeatureEnabled("chat_simulations"))
	assert.False(t, cfg.FeatureEnabled("unknown_flag"))
	assert.True(t, cfg.Tracing.Enabled)
	assert.Equal(t, []string{"https://app.learnhub.test"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 50, cfg.RateLimit.MaxRequests)
	assert.Equal(t, 5, cfg.RateLimit.WindowMinutes)
}
