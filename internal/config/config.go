package config

import (
	"encoding/json"
	"os"
	"strconv"
	"time"

	"github.com/elevenlabs-ttv-go/elevenlabs-ttv-go/pkg/ttv"
)

// Config holds all configuration for the relay.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	ElevenLabs ElevenLabsConfig `mapstructure:"elevenlabs"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Queue      QueueConfig      `mapstructure:"queue"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Listen       string        `mapstructure:"listen"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// ElevenLabsConfig holds upstream vendor settings. APIKey is the vendor
// credential held by the relay; clients never see it.
type ElevenLabsConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// AuthConfig holds inbound authentication settings. This key gates access to
// the relay itself and is distinct from the vendor credential.
type AuthConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// QueueConfig holds upstream concurrency settings.
type QueueConfig struct {
	Workers  int `mapstructure:"workers"`
	MaxQueue int `mapstructure:"max_queue"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Listen:       "0.0.0.0:8080",
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 120 * time.Second,
		},
		ElevenLabs: ElevenLabsConfig{
			APIKey:  "",
			BaseURL: ttv.DefaultBaseURL,
			Timeout: 60 * time.Second,
		},
		Auth: AuthConfig{
			APIKey: "",
		},
		Queue: QueueConfig{
			Workers:  4,
			MaxQueue: 16,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load returns a Config populated with defaults and environment overrides.
func Load() (*Config, error) {
	return LoadWithDefaults(nil)
}

// LoadWithDefaults loads configuration using defaults and an optional
// overrides map (for tests).
func LoadWithDefaults(overrides map[string]interface{}) (*Config, error) {
	cfg := Default()
	applyEnvOverrides(cfg)

	if overrides != nil {
		raw, err := json.Marshal(overrides)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TTV_LISTEN"); v != "" {
		cfg.Server.Listen = v
	}
	if v := os.Getenv("TTV_READ_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Server.ReadTimeout = d
		}
	}
	if v := os.Getenv("TTV_WRITE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Server.WriteTimeout = d
		}
	}
	if v := os.Getenv("TTV_ELEVENLABS_API_KEY"); v != "" {
		cfg.ElevenLabs.APIKey = v
	} else if v := os.Getenv("ELEVENLABS_API_KEY"); v != "" {
		// same variable the CLI and the vendor's own examples use
		cfg.ElevenLabs.APIKey = v
	}
	if v := os.Getenv("TTV_ELEVENLABS_BASE_URL"); v != "" {
		cfg.ElevenLabs.BaseURL = v
	}
	if v := os.Getenv("TTV_ELEVENLABS_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.ElevenLabs.Timeout = d
		}
	}
	if v := os.Getenv("TTV_AUTH_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}
	if v := os.Getenv("TTV_QUEUE_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Queue.Workers = n
		}
	}
	if v := os.Getenv("TTV_QUEUE_MAX_QUEUE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Queue.MaxQueue = n
		}
	}
	if v := os.Getenv("TTV_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("TTV_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}
