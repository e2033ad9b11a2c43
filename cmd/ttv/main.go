package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/elevenlabs-ttv-go/elevenlabs-ttv-go/pkg/schema"
	"github.com/elevenlabs-ttv-go/elevenlabs-ttv-go/pkg/ttv"
)

var (
	apiKey  string
	baseURL string
	output  string
	strict  bool

	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "ttv",
	Short: "Design and create ElevenLabs voices from the command line",
	Long: `ttv talks to the ElevenLabs text-to-voice API.

Design previews from a voice description, audition them, then persist
the winner into your voice library.

Examples:
  # Generate previews for a described voice
  ttv design "a calm, deep male narrator with a slight southern accent"

  # Save the preview audio to a directory
  ttv design --save-dir ./previews "an upbeat radio host"

  # Persist a preview returned by design
  ttv create "Radio Host" "an upbeat radio host" GENERATED_VOICE_ID

The API key is read from --api-key, ELEVENLABS_API_KEY, or a .env file.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("ttv %s\n", Version)
		fmt.Printf("  Commit:     %s\n", Commit)
		fmt.Printf("  Build Date: %s\n", BuildDate)
	},
}

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List the supported preview output formats",
	RunE:  runFormats,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "ElevenLabs API key (default: ELEVENLABS_API_KEY)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "API base URL (default: production)")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "text", "Output format: text, json")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "Validate requests locally before sending")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(formatsCmd)
	rootCmd.AddCommand(designCmd)
	rootCmd.AddCommand(createCmd)
}

func newClient() (*ttv.Client, error) {
	key := apiKey
	if key == "" {
		key = os.Getenv("ELEVENLABS_API_KEY")
	}
	if key == "" {
		return nil, fmt.Errorf("an API key is required: pass --api-key or set ELEVENLABS_API_KEY")
	}

	opts := []ttv.Option{}
	if baseURL != "" {
		opts = append(opts, ttv.WithBaseURL(baseURL))
	}
	if strict {
		opts = append(opts, ttv.WithStrictValidation())
	}

	return ttv.New(key, opts...), nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runFormats(cmd *cobra.Command, args []string) error {
	formats := schema.OutputFormats()

	if output == "json" {
		return printJSON(formats)
	}

	fmt.Println("Supported output formats:")
	for _, f := range formats {
		fmt.Printf("  %s\n", f)
	}
	return nil
}

func main() {
	// .env fills in variables the environment does not already set
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
