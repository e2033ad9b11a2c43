package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/elevenlabs-ttv-go/elevenlabs-ttv-go/pkg/schema"
)

var (
	designFormat         string
	designText           string
	designModel          string
	designAutoText       bool
	designLoudness       float64
	designSeed           uint32
	designGuidance       int
	designStream         bool
	designRemixSession   string
	designRemixIteration string
	designQuality        float64
	designReferenceFile  string
	designPromptStrength float64
	designSaveDir        string
)

var designCmd = &cobra.Command{
	Use:   "design [description]",
	Short: "Generate voice previews from a description",
	Long: `design asks the API for preview renderings of the described voice.

Each preview carries a generated_voice_id; pass the one you like to
"ttv create" to persist it.

Examples:
  ttv design "a calm, deep male narrator"

  # Control the sample text instead of letting the API write one
  ttv design --text "$(cat sample.txt)" "a calm, deep male narrator"

  # Condition on reference audio (eleven_ttv_v3 only)
  ttv design --model eleven_ttv_v3 --reference-audio voice.mp3 "a warm host"`,
	Args: cobra.ExactArgs(1),
	RunE: runDesign,
}

func init() {
	designCmd.Flags().StringVarP(&designFormat, "format", "f", "", "Preview output format (see: ttv formats)")
	designCmd.Flags().StringVar(&designText, "text", "", "Sample text spoken in the previews (100-1000 characters)")
	designCmd.Flags().StringVar(&designModel, "model", "", "Generation model: eleven_multilingual_ttv_v2, eleven_ttv_v3")
	designCmd.Flags().BoolVar(&designAutoText, "auto-generate-text", false, "Let the API write the sample text")
	designCmd.Flags().Float64Var(&designLoudness, "loudness", 0, "Preview volume, -1 to 1 (0 = unchanged)")
	designCmd.Flags().Uint32Var(&designSeed, "seed", 0, "Sampling seed for best-effort determinism")
	designCmd.Flags().IntVar(&designGuidance, "guidance-scale", 0, "How literally to follow the description, 0-100")
	designCmd.Flags().BoolVar(&designStream, "stream-previews", false, "Request streamable previews instead of inline audio")
	designCmd.Flags().StringVar(&designRemixSession, "remixing-session-id", "", "Remixing session to continue")
	designCmd.Flags().StringVar(&designRemixIteration, "remixing-iteration-id", "", "Remixing session iteration to pin")
	designCmd.Flags().Float64Var(&designQuality, "quality", 0, "Quality/speed trade-off, -1 to 1")
	designCmd.Flags().StringVar(&designReferenceFile, "reference-audio", "", "Audio file to condition generation on (eleven_ttv_v3)")
	designCmd.Flags().Float64Var(&designPromptStrength, "prompt-strength", 0, "Description vs reference audio balance, 0-1")
	designCmd.Flags().StringVar(&designSaveDir, "save-dir", "", "Directory to write decoded preview audio into")
}

func runDesign(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	builder := client.DesignVoice(args[0])

	// only flags the user set reach the request; everything else stays
	// absent so the API's own defaulting applies
	flags := cmd.Flags()
	if flags.Changed("format") {
		builder = builder.OutputFormat(schema.OutputFormat(designFormat))
	}
	if flags.Changed("text") {
		builder = builder.Text(designText)
	}
	if flags.Changed("model") {
		builder = builder.Model(designModel)
	}
	if flags.Changed("auto-generate-text") {
		builder = builder.AutoGenerateText(designAutoText)
	}
	if flags.Changed("loudness") {
		builder = builder.Loudness(designLoudness)
	}
	if flags.Changed("seed") {
		builder = builder.Seed(designSeed)
	}
	if flags.Changed("guidance-scale") {
		builder = builder.GuidanceScale(designGuidance)
	}
	if flags.Changed("stream-previews") {
		builder = builder.StreamPreviews(designStream)
	}
	if flags.Changed("remixing-session-id") {
		builder = builder.RemixingSessionID(designRemixSession)
	}
	if flags.Changed("remixing-iteration-id") {
		builder = builder.RemixingSessionIterationID(designRemixIteration)
	}
	if flags.Changed("quality") {
		builder = builder.Quality(designQuality)
	}
	if flags.Changed("prompt-strength") {
		builder = builder.PromptStrength(designPromptStrength)
	}
	if designReferenceFile != "" {
		audio, err := os.ReadFile(designReferenceFile)
		if err != nil {
			return fmt.Errorf("failed to read reference audio: %w", err)
		}
		builder = builder.ReferenceAudioBase64(base64.StdEncoding.EncodeToString(audio))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	resp, err := builder.Execute(ctx)
	if err != nil {
		return err
	}

	if designSaveDir != "" {
		if err := savePreviews(designSaveDir, resp.Previews); err != nil {
			return err
		}
	}

	if output == "json" {
		return printJSON(resp)
	}

	fmt.Printf("Text: %s\n\n", resp.Text)
	fmt.Printf("Previews (%d):\n", len(resp.Previews))
	for i, p := range resp.Previews {
		fmt.Printf("  %d. %s\n", i+1, p.GeneratedVoiceID)
		fmt.Printf("     media: %s, duration: %.1fs", p.MediaType, p.DurationSecs)
		if p.Language != nil {
			fmt.Printf(", language: %s", *p.Language)
		}
		fmt.Println()
	}

	return nil
}

func savePreviews(dir string, previews []schema.VoicePreview) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create save directory: %w", err)
	}

	for _, p := range previews {
		audio, err := p.DecodeAudio()
		if err != nil {
			return err
		}

		path := filepath.Join(dir, p.GeneratedVoiceID+"."+previewExtension(p.MediaType))
		if err := os.WriteFile(path, audio, 0o644); err != nil {
			return fmt.Errorf("failed to write preview: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Saved %s (%d bytes)\n", path, len(audio))
	}

	return nil
}

func previewExtension(mediaType string) string {
	switch {
	case strings.Contains(mediaType, "mpeg"):
		return "mp3"
	case strings.Contains(mediaType, "wav"):
		return "wav"
	case strings.Contains(mediaType, "ogg"), strings.Contains(mediaType, "opus"):
		return "ogg"
	case strings.Contains(mediaType, "basic"):
		return "ulaw"
	default:
		return "bin"
	}
}
