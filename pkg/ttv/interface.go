package ttv

import (
	"context"

	"github.com/elevenlabs-ttv-go/elevenlabs-ttv-go/pkg/schema"
)

// Service is the vendor surface consumed by the relay and substituted in
// tests. Client is the production implementation.
type Service interface {
	Design(ctx context.Context, req schema.DesignVoiceRequest) (*schema.DesignVoiceResponse, error)
	Create(ctx context.Context, req schema.CreateVoiceRequest) (*schema.Voice, error)
}

// Ensure Client implements Service.
var _ Service = (*Client)(nil)
