package ttv

import (
	"context"

	"github.com/elevenlabs-ttv-go/elevenlabs-ttv-go/pkg/schema"
)

// DesignVoiceBuilder accumulates parameters for a design call. Builders are
// immutable values: every setter returns an updated copy, so a partially
// configured builder can be stored and branched without aliasing surprises.
// Obtain one from Client.DesignVoice.
type DesignVoiceBuilder struct {
	client *Client
	req    schema.DesignVoiceRequest
}

// DesignVoice starts a design request for a voice matching description.
func (c *Client) DesignVoice(description string) DesignVoiceBuilder {
	return DesignVoiceBuilder{
		client: c,
		req:    schema.DesignVoiceRequest{VoiceDescription: description},
	}
}

// OutputFormat selects the preview audio encoding. It is carried in the
// request URL, not the body.
func (b DesignVoiceBuilder) OutputFormat(format schema.OutputFormat) DesignVoiceBuilder {
	b.req.OutputFormat = format
	return b
}

// Text sets the exact sample text spoken in the previews (100 to 1000
// characters).
func (b DesignVoiceBuilder) Text(text string) DesignVoiceBuilder {
	b.req.Text = schema.Ptr(text)
	return b
}

// Model selects the generation model, eleven_multilingual_ttv_v2 or
// eleven_ttv_v3.
func (b DesignVoiceBuilder) Model(modelID string) DesignVoiceBuilder {
	b.req.ModelID = modelID
	return b
}

// AutoGenerateText asks the vendor to write the sample text itself.
func (b DesignVoiceBuilder) AutoGenerateText(enabled bool) DesignVoiceBuilder {
	b.req.AutoGenerateText = schema.Ptr(enabled)
	return b
}

// Loudness sets the preview volume, -1 to 1 where 0 is unchanged.
func (b DesignVoiceBuilder) Loudness(loudness float64) DesignVoiceBuilder {
	b.req.Loudness = schema.Ptr(loudness)
	return b
}

// Seed requests best-effort deterministic sampling.
func (b DesignVoiceBuilder) Seed(seed uint32) DesignVoiceBuilder {
	b.req.Seed = schema.Ptr(seed)
	return b
}

// GuidanceScale controls how literally the description is followed, 0 to
// 100. Lower values give the model more freedom.
func (b DesignVoiceBuilder) GuidanceScale(scale int) DesignVoiceBuilder {
	b.req.GuidanceScale = schema.Ptr(scale)
	return b
}

// StreamPreviews asks for streamable preview delivery instead of inline
// base64 payloads.
func (b DesignVoiceBuilder) StreamPreviews(enabled bool) DesignVoiceBuilder {
	b.req.StreamPreviews = schema.Ptr(enabled)
	return b
}

// RemixingSessionID continues a remixing session.
func (b DesignVoiceBuilder) RemixingSessionID(id string) DesignVoiceBuilder {
	b.req.RemixingSessionID = schema.Ptr(id)
	return b
}

// RemixingSessionIterationID pins a specific iteration of a remixing
// session.
func (b DesignVoiceBuilder) RemixingSessionIterationID(id string) DesignVoiceBuilder {
	b.req.RemixingSessionIterationID = schema.Ptr(id)
	return b
}

// Quality trades generation speed for output quality, -1 to 1.
func (b DesignVoiceBuilder) Quality(quality float64) DesignVoiceBuilder {
	b.req.Quality = schema.Ptr(quality)
	return b
}

// ReferenceAudioBase64 conditions generation on a base64-encoded audio
// sample. Only the eleven_ttv_v3 model honors it; other models silently
// ignore it server-side.
func (b DesignVoiceBuilder) ReferenceAudioBase64(audio string) DesignVoiceBuilder {
	b.req.ReferenceAudioBase64 = schema.Ptr(audio)
	return b
}

// PromptStrength balances the description against the reference audio, 0 to
// 1. Only meaningful together with ReferenceAudioBase64 on eleven_ttv_v3.
func (b DesignVoiceBuilder) PromptStrength(strength float64) DesignVoiceBuilder {
	b.req.PromptStrength = schema.Ptr(strength)
	return b
}

// Build returns the finalized request: documented defaults applied,
// explicit values untouched, everything else absent. It performs no I/O.
func (b DesignVoiceBuilder) Build() schema.DesignVoiceRequest {
	return b.req.WithDefaults()
}

// Execute finalizes the request and sends it. Under strict validation the
// finalized request is checked first and violations return a
// KindValidation error without touching the network.
func (b DesignVoiceBuilder) Execute(ctx context.Context) (*schema.DesignVoiceResponse, error) {
	req := b.Build()
	if b.client.strict {
		if err := req.Validate(); err != nil {
			return nil, &Error{Kind: KindValidation, Message: err.Error()}
		}
	}
	return b.client.Design(ctx, req)
}
