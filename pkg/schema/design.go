package schema

import (
	"encoding/base64"
	"fmt"
	"unicode/utf8"
)

const (
	defaultOutputFormat     = FormatMP3_44100_128
	defaultModelID          = ModelMultilingualTTVv2
	defaultAutoGenerateText = true
	defaultLoudness         = 0.5
	defaultGuidanceScale    = 5
	defaultStreamPreviews   = false

	minTextLength = 100
	maxTextLength = 1000
)

// DesignVoiceRequest is the body of the design-voice operation. Optional
// fields are pointers so an explicit zero value and an absent field
// serialize differently; absent fields are omitted from the wire payload.
type DesignVoiceRequest struct {
	// VoiceDescription steers generation and is the only required field.
	VoiceDescription string `json:"voice_description" msgpack:"voice_description"`

	// OutputFormat travels as the output_format query parameter, never in
	// the request body.
	OutputFormat OutputFormat `json:"-" msgpack:"-"`

	ModelID string `json:"model_id,omitempty" msgpack:"model_id,omitempty"`

	// Text is the sample text spoken in the previews, 100 to 1000
	// characters when present.
	Text             *string `json:"text,omitempty" msgpack:"text,omitempty"`
	AutoGenerateText *bool   `json:"auto_generate_text,omitempty" msgpack:"auto_generate_text,omitempty"`

	Loudness       *float64 `json:"loudness,omitempty" msgpack:"loudness,omitempty"`
	Seed           *uint32  `json:"seed,omitempty" msgpack:"seed,omitempty"`
	GuidanceScale  *int     `json:"guidance_scale,omitempty" msgpack:"guidance_scale,omitempty"`
	StreamPreviews *bool    `json:"stream_previews,omitempty" msgpack:"stream_previews,omitempty"`

	RemixingSessionID          *string `json:"remixing_session_id,omitempty" msgpack:"remixing_session_id,omitempty"`
	RemixingSessionIterationID *string `json:"remixing_session_iteration_id,omitempty" msgpack:"remixing_session_iteration_id,omitempty"`

	Quality *float64 `json:"quality,omitempty" msgpack:"quality,omitempty"`

	// ReferenceAudioBase64 and PromptStrength only take effect with the
	// eleven_ttv_v3 model. The vendor silently accepts and ignores them on
	// other models, so no client-side check rejects the combination.
	ReferenceAudioBase64 *string  `json:"reference_audio_base64,omitempty" msgpack:"reference_audio_base64,omitempty"`
	PromptStrength       *float64 `json:"prompt_strength,omitempty" msgpack:"prompt_strength,omitempty"`
}

// WithDefaults returns a copy of the request with unset fields resolved to
// their documented defaults. The receiver is never modified and applying
// defaults twice yields the same result. AutoGenerateText defaults to true
// only when no sample text was provided; fields without a documented
// default stay absent.
func (r DesignVoiceRequest) WithDefaults() DesignVoiceRequest {
	if r.OutputFormat == "" {
		r.OutputFormat = defaultOutputFormat
	}
	if r.ModelID == "" {
		r.ModelID = defaultModelID
	}
	if r.Text == nil && r.AutoGenerateText == nil {
		r.AutoGenerateText = Ptr(defaultAutoGenerateText)
	}
	if r.Loudness == nil {
		r.Loudness = Ptr(defaultLoudness)
	}
	if r.GuidanceScale == nil {
		r.GuidanceScale = Ptr(defaultGuidanceScale)
	}
	if r.StreamPreviews == nil {
		r.StreamPreviews = Ptr(defaultStreamPreviews)
	}
	return r
}

// Validate checks requiredness and documented ranges. It never applies
// defaults and never rejects combinations the vendor enforces server-side.
func (r *DesignVoiceRequest) Validate() error {
	if r.VoiceDescription == "" {
		return fmt.Errorf("voice_description is required")
	}
	if r.OutputFormat != "" && !r.OutputFormat.Valid() {
		return fmt.Errorf("unknown output_format %q", r.OutputFormat)
	}
	if r.Text != nil {
		if n := utf8.RuneCountInString(*r.Text); n < minTextLength || n > maxTextLength {
			return fmt.Errorf("text must be between %d and %d characters", minTextLength, maxTextLength)
		}
	}
	if r.Loudness != nil && (*r.Loudness < -1 || *r.Loudness > 1) {
		return fmt.Errorf("loudness must be between -1 and 1")
	}
	if r.GuidanceScale != nil && (*r.GuidanceScale < 0 || *r.GuidanceScale > 100) {
		return fmt.Errorf("guidance_scale must be between 0 and 100")
	}
	if r.Quality != nil && (*r.Quality < -1 || *r.Quality > 1) {
		return fmt.Errorf("quality must be between -1 and 1")
	}
	if r.PromptStrength != nil && (*r.PromptStrength < 0 || *r.PromptStrength > 1) {
		return fmt.Errorf("prompt_strength must be between 0 and 1")
	}
	return nil
}

// DesignVoiceResponse carries the generated previews in vendor order plus
// the text that was spoken (provided or auto-generated).
type DesignVoiceResponse struct {
	Previews []VoicePreview `json:"previews"`
	Text     string         `json:"text"`
}

// VoicePreview is one candidate rendering of the described voice.
type VoicePreview struct {
	AudioBase64      string  `json:"audio_base_64"`
	GeneratedVoiceID string  `json:"generated_voice_id"`
	MediaType        string  `json:"media_type"`
	DurationSecs     float64 `json:"duration_secs"`
	Language         *string `json:"language,omitempty"`
}

// DecodeAudio decodes the preview payload into raw audio bytes. The bytes
// are in the format requested at design time and are not interpreted
// further.
func (p *VoicePreview) DecodeAudio() ([]byte, error) {
	audio, err := base64.StdEncoding.DecodeString(p.AudioBase64)
	if err != nil {
		return nil, fmt.Errorf("decode preview audio: %w", err)
	}
	return audio, nil
}
