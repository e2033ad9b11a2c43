package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	// a developer shell usually has this exported
	t.Setenv("ELEVENLABS_API_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Listen)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 120*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, "https://api.elevenlabs.io/v1", cfg.ElevenLabs.BaseURL)
	assert.Equal(t, 60*time.Second, cfg.ElevenLabs.Timeout)
	assert.Equal(t, "", cfg.ElevenLabs.APIKey)
	assert.Equal(t, "", cfg.Auth.APIKey)
	assert.Equal(t, 4, cfg.Queue.Workers)
	assert.Equal(t, 16, cfg.Queue.MaxQueue)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TTV_LISTEN", "127.0.0.1:9090")
	t.Setenv("TTV_ELEVENLABS_API_KEY", "vendor-key")
	t.Setenv("TTV_ELEVENLABS_BASE_URL", "http://localhost:8081/v1")
	t.Setenv("TTV_ELEVENLABS_TIMEOUT", "90s")
	t.Setenv("TTV_AUTH_API_KEY", "relay-key")
	t.Setenv("TTV_QUEUE_WORKERS", "8")
	t.Setenv("TTV_QUEUE_MAX_QUEUE", "32")
	t.Setenv("TTV_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Listen)
	assert.Equal(t, "vendor-key", cfg.ElevenLabs.APIKey)
	assert.Equal(t, "http://localhost:8081/v1", cfg.ElevenLabs.BaseURL)
	assert.Equal(t, 90*time.Second, cfg.ElevenLabs.Timeout)
	assert.Equal(t, "relay-key", cfg.Auth.APIKey)
	assert.Equal(t, 8, cfg.Queue.Workers)
	assert.Equal(t, 32, cfg.Queue.MaxQueue)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestVendorKeyFallsBackToSharedEnv(t *testing.T) {
	t.Setenv("ELEVENLABS_API_KEY", "shared-key")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "shared-key", cfg.ElevenLabs.APIKey)

	// the TTV_ prefixed variable wins when both are set
	t.Setenv("TTV_ELEVENLABS_API_KEY", "relay-specific")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "relay-specific", cfg.ElevenLabs.APIKey)
}

func TestInvalidEnvValuesIgnored(t *testing.T) {
	t.Setenv("TTV_ELEVENLABS_TIMEOUT", "not-a-duration")
	t.Setenv("TTV_QUEUE_WORKERS", "many")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 60*time.Second, cfg.ElevenLabs.Timeout)
	assert.Equal(t, 4, cfg.Queue.Workers)
}

func TestLoadWithOverrides(t *testing.T) {
	cfg, err := LoadWithDefaults(map[string]interface{}{
		"server": map[string]interface{}{"listen": "0.0.0.0:7070"},
		"queue":  map[string]interface{}{"workers": 2},
	})
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:7070", cfg.Server.Listen)
	assert.Equal(t, 2, cfg.Queue.Workers)
	// untouched sections keep their defaults
	assert.Equal(t, "https://api.elevenlabs.io/v1", cfg.ElevenLabs.BaseURL)
}
