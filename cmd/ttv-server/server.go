package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/elevenlabs-ttv-go/elevenlabs-ttv-go/internal/api"
	"github.com/elevenlabs-ttv-go/elevenlabs-ttv-go/internal/config"
	"github.com/elevenlabs-ttv-go/elevenlabs-ttv-go/internal/queue"
	"github.com/elevenlabs-ttv-go/elevenlabs-ttv-go/pkg/ttv"
)

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := setupLogger(cfg.Logging)

	logger.Info().
		Str("listen", cfg.Server.Listen).
		Str("upstream", cfg.ElevenLabs.BaseURL).
		Int("queue_workers", cfg.Queue.Workers).
		Str("log_level", cfg.Logging.Level).
		Msg("Starting ttv-server")

	if cfg.ElevenLabs.APIKey == "" {
		logger.Warn().Msg("No ElevenLabs API key configured - upstream calls will be rejected")
	}

	vendor := ttv.New(cfg.ElevenLabs.APIKey,
		ttv.WithBaseURL(cfg.ElevenLabs.BaseURL),
		ttv.WithHTTPClient(&http.Client{
			Timeout: cfg.ElevenLabs.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
				IdleConnTimeout:     90 * time.Second,
			},
		}),
	)

	pool := queue.New(queue.Config{
		Workers:  cfg.Queue.Workers,
		MaxQueue: cfg.Queue.MaxQueue,
	})

	router := api.NewRouter(cfg, vendor, pool, logger)

	srv := &http.Server{
		Addr:         cfg.Server.Listen,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Server.Listen).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		logger.Info().Str("signal", sig.String()).Msg("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	// drain in-flight upstream calls after the listener stops
	if err := pool.Shutdown(ctx); err != nil {
		return fmt.Errorf("queue shutdown error: %w", err)
	}

	logger.Info().Msg("Server stopped")
	return nil
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	defaults := config.Default()

	cfg := &config.Config{
		Server: config.ServerConfig{
			Listen:       viper.GetString("server.listen"),
			ReadTimeout:  viper.GetDuration("server.read_timeout"),
			WriteTimeout: viper.GetDuration("server.write_timeout"),
		},
		ElevenLabs: config.ElevenLabsConfig{
			APIKey:  viper.GetString("elevenlabs.api_key"),
			BaseURL: viper.GetString("elevenlabs.base_url"),
			Timeout: viper.GetDuration("elevenlabs.timeout"),
		},
		Auth: config.AuthConfig{
			APIKey: viper.GetString("auth.api_key"),
		},
		Queue: config.QueueConfig{
			Workers:  viper.GetInt("queue.workers"),
			MaxQueue: viper.GetInt("queue.max_queue"),
		},
		Logging: config.LoggingConfig{
			Level:  viper.GetString("logging.level"),
			Format: viper.GetString("logging.format"),
		},
	}

	if env := os.Getenv("TTV_LISTEN"); env != "" {
		cfg.Server.Listen = env
	}
	if env := os.Getenv("TTV_READ_TIMEOUT"); env != "" {
		if d, err := time.ParseDuration(env); err == nil {
			cfg.Server.ReadTimeout = d
		}
	}
	if env := os.Getenv("TTV_WRITE_TIMEOUT"); env != "" {
		if d, err := time.ParseDuration(env); err == nil {
			cfg.Server.WriteTimeout = d
		}
	}
	if env := os.Getenv("TTV_ELEVENLABS_API_KEY"); env != "" {
		cfg.ElevenLabs.APIKey = env
	} else if env := os.Getenv("ELEVENLABS_API_KEY"); env != "" {
		cfg.ElevenLabs.APIKey = env
	}
	if env := os.Getenv("TTV_ELEVENLABS_BASE_URL"); env != "" {
		cfg.ElevenLabs.BaseURL = env
	}
	if env := os.Getenv("TTV_ELEVENLABS_TIMEOUT"); env != "" {
		if d, err := time.ParseDuration(env); err == nil {
			cfg.ElevenLabs.Timeout = d
		}
	}
	if env := os.Getenv("TTV_AUTH_API_KEY"); env != "" {
		cfg.Auth.APIKey = env
	}
	if env := os.Getenv("TTV_QUEUE_WORKERS"); env != "" {
		if n, err := strconv.Atoi(env); err == nil {
			cfg.Queue.Workers = n
		}
	}
	if env := os.Getenv("TTV_QUEUE_MAX_QUEUE"); env != "" {
		if n, err := strconv.Atoi(env); err == nil {
			cfg.Queue.MaxQueue = n
		}
	}
	if env := os.Getenv("TTV_LOG_LEVEL"); env != "" {
		cfg.Logging.Level = env
	}
	if env := os.Getenv("TTV_LOG_FORMAT"); env != "" {
		cfg.Logging.Format = env
	}

	if cfg.Server.Listen == "" {
		cfg.Server.Listen = defaults.Server.Listen
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = defaults.Server.ReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = defaults.Server.WriteTimeout
	}
	if cfg.ElevenLabs.BaseURL == "" {
		cfg.ElevenLabs.BaseURL = defaults.ElevenLabs.BaseURL
	}
	if cfg.ElevenLabs.Timeout == 0 {
		cfg.ElevenLabs.Timeout = defaults.ElevenLabs.Timeout
	}
	if cfg.Queue.Workers == 0 {
		cfg.Queue.Workers = defaults.Queue.Workers
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaults.Logging.Level
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = defaults.Logging.Format
	}

	if cmd != nil {
		if flag := cmd.Flags().Lookup("listen"); flag != nil && flag.Changed {
			if v, err := cmd.Flags().GetString("listen"); err == nil && v != "" {
				cfg.Server.Listen = v
			}
		}
		if flag := cmd.Flags().Lookup("read-timeout"); flag != nil && flag.Changed {
			if v, err := cmd.Flags().GetDuration("read-timeout"); err == nil && v != 0 {
				cfg.Server.ReadTimeout = v
			}
		}
		if flag := cmd.Flags().Lookup("write-timeout"); flag != nil && flag.Changed {
			if v, err := cmd.Flags().GetDuration("write-timeout"); err == nil && v != 0 {
				cfg.Server.WriteTimeout = v
			}
		}
		if flag := cmd.Flags().Lookup("elevenlabs-api-key"); flag != nil && flag.Changed {
			if v, err := cmd.Flags().GetString("elevenlabs-api-key"); err == nil && v != "" {
				cfg.ElevenLabs.APIKey = v
			}
		}
		if flag := cmd.Flags().Lookup("elevenlabs-base-url"); flag != nil && flag.Changed {
			if v, err := cmd.Flags().GetString("elevenlabs-base-url"); err == nil && v != "" {
				cfg.ElevenLabs.BaseURL = v
			}
		}
		if flag := cmd.Flags().Lookup("elevenlabs-timeout"); flag != nil && flag.Changed {
			if v, err := cmd.Flags().GetDuration("elevenlabs-timeout"); err == nil && v != 0 {
				cfg.ElevenLabs.Timeout = v
			}
		}
		if flag := cmd.Flags().Lookup("api-key"); flag != nil && flag.Changed {
			if v, err := cmd.Flags().GetString("api-key"); err == nil {
				cfg.Auth.APIKey = v
			}
		}
		if flag := cmd.Flags().Lookup("queue-workers"); flag != nil && flag.Changed {
			if v, err := cmd.Flags().GetInt("queue-workers"); err == nil && v > 0 {
				cfg.Queue.Workers = v
			}
		}
		if flag := cmd.Flags().Lookup("max-queue"); flag != nil && flag.Changed {
			if v, err := cmd.Flags().GetInt("max-queue"); err == nil && v >= 0 {
				cfg.Queue.MaxQueue = v
			}
		}
		if flag := cmd.Flags().Lookup("log-level"); flag != nil && flag.Changed {
			if v, err := cmd.Flags().GetString("log-level"); err == nil && v != "" {
				cfg.Logging.Level = v
			}
		}
		if flag := cmd.Flags().Lookup("log-format"); flag != nil && flag.Changed {
			if v, err := cmd.Flags().GetString("log-format"); err == nil && v != "" {
				cfg.Logging.Format = v
			}
		}
	}

	return cfg, nil
}

func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "text" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}
