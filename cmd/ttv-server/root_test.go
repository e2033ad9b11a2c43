package main

import (
	"os"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestConfigDefaults(t *testing.T) {
	viper.Reset()
	initConfig()

	cfg, err := loadConfig(rootCmd)
	assert.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Listen)
	assert.Equal(t, "https://api.elevenlabs.io/v1", cfg.ElevenLabs.BaseURL)
	assert.Equal(t, "", cfg.Auth.APIKey)
	assert.Equal(t, 4, cfg.Queue.Workers)
	assert.Equal(t, 16, cfg.Queue.MaxQueue)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestConfigFromEnv(t *testing.T) {
	viper.Reset()
	os.Setenv("TTV_LISTEN", "0.0.0.0:9090")
	os.Setenv("TTV_ELEVENLABS_BASE_URL", "http://relay-upstream:8081/v1")
	os.Setenv("TTV_AUTH_API_KEY", "relay-key")
	os.Setenv("TTV_QUEUE_WORKERS", "8")
	os.Setenv("TTV_LOG_LEVEL", "debug")

	defer func() {
		os.Unsetenv("TTV_LISTEN")
		os.Unsetenv("TTV_ELEVENLABS_BASE_URL")
		os.Unsetenv("TTV_AUTH_API_KEY")
		os.Unsetenv("TTV_QUEUE_WORKERS")
		os.Unsetenv("TTV_LOG_LEVEL")
	}()

	initConfig()

	cfg, err := loadConfig(rootCmd)
	assert.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", cfg.Server.Listen)
	assert.Equal(t, "http://relay-upstream:8081/v1", cfg.ElevenLabs.BaseURL)
	assert.Equal(t, "relay-key", cfg.Auth.APIKey)
	assert.Equal(t, 8, cfg.Queue.Workers)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestConfigVendorKeyFromSharedEnv(t *testing.T) {
	viper.Reset()
	os.Setenv("ELEVENLABS_API_KEY", "sk-shared")
	defer os.Unsetenv("ELEVENLABS_API_KEY")

	initConfig()

	cfg, err := loadConfig(rootCmd)
	assert.NoError(t, err)
	assert.Equal(t, "sk-shared", cfg.ElevenLabs.APIKey)
}
