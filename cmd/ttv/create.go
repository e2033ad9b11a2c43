package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	createLabels    []string
	createNotPicked []string
)

var createCmd = &cobra.Command{
	Use:   "create [name] [description] [generated-voice-id]",
	Short: "Persist a designed preview into the voice library",
	Long: `create saves a preview produced by "ttv design" as a library voice.

Examples:
  ttv create "Radio Host" "an upbeat radio host" GENERATED_VOICE_ID

  # Attach metadata and report auditioned previews
  ttv create "Radio Host" "an upbeat radio host" GENERATED_VOICE_ID \
    --label accent=british --label use=podcast \
    --played-not-selected OTHER_ID_1,OTHER_ID_2`,
	Args: cobra.ExactArgs(3),
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringArrayVar(&createLabels, "label", nil, "Voice label as key=value (repeatable)")
	createCmd.Flags().StringSliceVar(&createNotPicked, "played-not-selected", nil, "Preview ids auditioned but not chosen")
}

func runCreate(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	builder := client.CreateVoice(args[0], args[1], args[2])

	if len(createLabels) > 0 {
		labels := make(map[string]string, len(createLabels))
		for _, l := range createLabels {
			key, value, ok := strings.Cut(l, "=")
			if !ok {
				return fmt.Errorf("invalid label %q: expected key=value", l)
			}
			labels[key] = value
		}
		builder = builder.Labels(labels)
	}

	if len(createNotPicked) > 0 {
		builder = builder.PlayedNotSelectedVoiceIDs(createNotPicked...)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	voice, err := builder.Execute(ctx)
	if err != nil {
		return err
	}

	if output == "json" {
		return printJSON(voice)
	}

	fmt.Printf("Voice created: %s\n", voice.VoiceID)
	if voice.Name != nil {
		fmt.Printf("  Name:     %s\n", *voice.Name)
	}
	if voice.Category != "" {
		fmt.Printf("  Category: %s\n", voice.Category)
	}
	for k, v := range voice.Labels {
		fmt.Printf("  Label:    %s=%s\n", k, v)
	}

	return nil
}
