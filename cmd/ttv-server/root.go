package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/elevenlabs-ttv-go/elevenlabs-ttv-go/pkg/ttv"
)

var (
	cfgFile string

	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "ttv-server",
	Short: "HTTP relay for the ElevenLabs text-to-voice API",
	Long: `ttv-server exposes the ElevenLabs voice design endpoints behind a
single relay that holds the vendor credential, validates requests at the
edge and bounds upstream concurrency.

Start the server:
  ttv-server

Start with custom settings:
  ttv-server --listen 0.0.0.0:8080 --queue-workers 8

Use environment variables:
  TTV_LISTEN=0.0.0.0:8080 ELEVENLABS_API_KEY=sk-... ttv-server`,
	RunE: runServer,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("ttv-server %s\n", Version)
		fmt.Printf("  Commit:     %s\n", Commit)
		fmt.Printf("  Build Date: %s\n", BuildDate)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")

	rootCmd.Flags().String("listen", "0.0.0.0:8080", "Server listen address")
	rootCmd.Flags().Duration("read-timeout", 30*time.Second, "HTTP read timeout")
	rootCmd.Flags().Duration("write-timeout", 120*time.Second, "HTTP write timeout")

	rootCmd.Flags().String("elevenlabs-api-key", "", "ElevenLabs API key (vendor credential)")
	rootCmd.Flags().String("elevenlabs-base-url", ttv.DefaultBaseURL, "ElevenLabs API base URL")
	rootCmd.Flags().Duration("elevenlabs-timeout", 60*time.Second, "Upstream request timeout")

	rootCmd.Flags().String("api-key", "", "API key for relay authentication (empty = no auth)")

	rootCmd.Flags().Int("queue-workers", 4, "Concurrent upstream calls")
	rootCmd.Flags().Int("max-queue", 16, "Accepted calls allowed to wait for a worker")

	rootCmd.Flags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.Flags().String("log-format", "json", "Log format (json, text)")

	bindFlags()

	rootCmd.AddCommand(versionCmd)
}

func bindFlags() {
	bindings := []struct {
		key  string
		flag string
	}{
		{"server.listen", "listen"},
		{"server.read_timeout", "read-timeout"},
		{"server.write_timeout", "write-timeout"},
		{"elevenlabs.api_key", "elevenlabs-api-key"},
		{"elevenlabs.base_url", "elevenlabs-base-url"},
		{"elevenlabs.timeout", "elevenlabs-timeout"},
		{"auth.api_key", "api-key"},
		{"queue.workers", "queue-workers"},
		{"queue.max_queue", "max-queue"},
		{"logging.level", "log-level"},
		{"logging.format", "log-format"},
	}

	for _, b := range bindings {
		flag := rootCmd.Flags().Lookup(b.flag)
		if flag == nil {
			continue
		}
		_ = viper.BindPFlag(b.key, flag)
	}
}

func initConfig() {
	// .env fills in variables the environment does not already set
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./configs")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("TTV")
	viper.AutomaticEnv()

	viper.BindEnv("server.listen", "TTV_LISTEN")
	viper.BindEnv("elevenlabs.api_key", "TTV_ELEVENLABS_API_KEY", "ELEVENLABS_API_KEY")
	viper.BindEnv("elevenlabs.base_url", "TTV_ELEVENLABS_BASE_URL")
	viper.BindEnv("elevenlabs.timeout", "TTV_ELEVENLABS_TIMEOUT")
	viper.BindEnv("auth.api_key", "TTV_AUTH_API_KEY")
	viper.BindEnv("queue.workers", "TTV_QUEUE_WORKERS")
	viper.BindEnv("queue.max_queue", "TTV_QUEUE_MAX_QUEUE")
	viper.BindEnv("logging.level", "TTV_LOG_LEVEL")
	viper.BindEnv("logging.format", "TTV_LOG_FORMAT")

	viper.SetDefault("server.listen", "0.0.0.0:8080")
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 120*time.Second)
	viper.SetDefault("elevenlabs.api_key", "")
	viper.SetDefault("elevenlabs.base_url", ttv.DefaultBaseURL)
	viper.SetDefault("elevenlabs.timeout", 60*time.Second)
	viper.SetDefault("auth.api_key", "")
	viper.SetDefault("queue.workers", 4)
	viper.SetDefault("queue.max_queue", 16)
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")

	bindFlags()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
