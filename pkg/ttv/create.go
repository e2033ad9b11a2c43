package ttv

import (
	"context"
	"maps"
	"slices"

	"github.com/elevenlabs-ttv-go/elevenlabs-ttv-go/pkg/schema"
)

// CreateVoiceBuilder accumulates parameters for persisting a designed
// preview. Like DesignVoiceBuilder it is an immutable value; setters copy.
type CreateVoiceBuilder struct {
	client *Client
	req    schema.CreateVoiceRequest
}

// CreateVoice starts a create request saving the preview identified by
// generatedVoiceID under the given name and description.
func (c *Client) CreateVoice(name, description, generatedVoiceID string) CreateVoiceBuilder {
	return CreateVoiceBuilder{
		client: c,
		req: schema.CreateVoiceRequest{
			VoiceName:        name,
			VoiceDescription: description,
			GeneratedVoiceID: generatedVoiceID,
		},
	}
}

// Labels attaches opaque metadata to the stored voice. The map is copied;
// later mutation by the caller does not affect the builder.
func (b CreateVoiceBuilder) Labels(labels map[string]string) CreateVoiceBuilder {
	b.req.Labels = maps.Clone(labels)
	return b
}

// PlayedNotSelectedVoiceIDs reports preview ids the caller auditioned and
// rejected.
func (b CreateVoiceBuilder) PlayedNotSelectedVoiceIDs(ids ...string) CreateVoiceBuilder {
	b.req.PlayedNotSelectedVoiceIDs = slices.Clone(ids)
	return b
}

// Build returns the finalized request. The create operation has no
// defaulted fields; unset optional fields stay absent on the wire.
func (b CreateVoiceBuilder) Build() schema.CreateVoiceRequest {
	return b.req
}

// Execute finalizes the request and sends it, returning the stored voice
// record. Under strict validation the required fields are checked first.
func (b CreateVoiceBuilder) Execute(ctx context.Context) (*schema.Voice, error) {
	req := b.Build()
	if b.client.strict {
		if err := req.Validate(); err != nil {
			return nil, &Error{Kind: KindValidation, Message: err.Error()}
		}
	}
	return b.client.Create(ctx, req)
}
