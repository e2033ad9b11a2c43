package schema

import "fmt"

// CreateVoiceRequest persists a previously designed preview into the voice
// library. GeneratedVoiceID must be a generated_voice_id returned by a
// design call.
type CreateVoiceRequest struct {
	VoiceName        string `json:"voice_name" msgpack:"voice_name"`
	VoiceDescription string `json:"voice_description" msgpack:"voice_description"`
	GeneratedVoiceID string `json:"generated_voice_id" msgpack:"generated_voice_id"`

	// Labels is an opaque metadata blob attached to the stored voice.
	Labels map[string]string `json:"labels,omitempty" msgpack:"labels,omitempty"`

	// PlayedNotSelectedVoiceIDs lists preview ids the caller auditioned and
	// rejected, as feedback to the vendor.
	PlayedNotSelectedVoiceIDs []string `json:"played_not_selected_voice_ids,omitempty" msgpack:"played_not_selected_voice_ids,omitempty"`
}

// Validate checks the three required identity fields.
func (r *CreateVoiceRequest) Validate() error {
	if r.VoiceName == "" {
		return fmt.Errorf("voice_name is required")
	}
	if r.VoiceDescription == "" {
		return fmt.Errorf("voice_description is required")
	}
	if r.GeneratedVoiceID == "" {
		return fmt.Errorf("generated_voice_id is required")
	}
	return nil
}
