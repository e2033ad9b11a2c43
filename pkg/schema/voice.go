package schema

// Voice is the persisted voice record returned by the create-voice
// operation. Beyond the identifying fields it carries the vendor's full
// bookkeeping: uploaded samples, fine-tuning progress, sharing state and
// verification status. Optional fields are pointers (or nil-able slices and
// maps) so absent and zero-valued fields stay distinguishable.
type Voice struct {
	VoiceID                 string             `json:"voice_id"`
	Name                    *string            `json:"name,omitempty"`
	Samples                 []Sample           `json:"samples,omitempty"`
	Category                VoiceCategory      `json:"category,omitempty"`
	FineTuning              *FineTuning        `json:"fine_tuning,omitempty"`
	Labels                  map[string]string  `json:"labels,omitempty"`
	Description             *string            `json:"description,omitempty"`
	PreviewURL              *string            `json:"preview_url,omitempty"`
	AvailableForTiers       []string           `json:"available_for_tiers,omitempty"`
	Settings                *VoiceSettings     `json:"settings,omitempty"`
	Sharing                 *VoiceSharing      `json:"sharing,omitempty"`
	HighQualityBaseModelIDs []string           `json:"high_quality_base_model_ids,omitempty"`
	VerifiedLanguages       []VerifiedLanguage `json:"verified_languages,omitempty"`
	SafetyControl           SafetyControl      `json:"safety_control,omitempty"`
	VoiceVerification       *VoiceVerification `json:"voice_verification,omitempty"`
	PermissionOnResource    *string            `json:"permission_on_resource,omitempty"`
	IsOwner                 *bool              `json:"is_owner,omitempty"`
	IsLegacy                *bool              `json:"is_legacy,omitempty"`
	IsMixed                 *bool              `json:"is_mixed,omitempty"`
	FavoritedAtUnix         *int64             `json:"favorited_at_unix,omitempty"`
	CreatedAtUnix           *int64             `json:"created_at_unix,omitempty"`
}

// IsReady reports whether the voice can be used for synthesis: either no
// verification is required or verification has passed.
func (v *Voice) IsReady() bool {
	if v.VoiceVerification == nil {
		return true
	}
	return !v.VoiceVerification.RequiresVerification || v.VoiceVerification.IsVerified
}

// TotalSampleDuration sums the durations of all uploaded samples, in
// seconds. Samples without a reported duration count as zero.
func (v *Voice) TotalSampleDuration() float64 {
	var total float64
	for _, s := range v.Samples {
		if s.DurationSecs != nil {
			total += *s.DurationSecs
		}
	}
	return total
}

// IsShared reports whether sharing is currently enabled for the voice.
func (v *Voice) IsShared() bool {
	return v.Sharing != nil && v.Sharing.Status == SharingEnabled
}

// VoiceCategory classifies how a voice was produced.
type VoiceCategory string

const (
	CategoryGenerated    VoiceCategory = "generated"
	CategoryCloned       VoiceCategory = "cloned"
	CategoryPremade      VoiceCategory = "premade"
	CategoryProfessional VoiceCategory = "professional"
	CategoryFamous       VoiceCategory = "famous"
	CategoryHighQuality  VoiceCategory = "high_quality"
)

// Sample is one audio file uploaded against a voice.
type Sample struct {
	SampleID                *string            `json:"sample_id,omitempty"`
	FileName                *string            `json:"file_name,omitempty"`
	MimeType                *string            `json:"mime_type,omitempty"`
	SizeBytes               *int64             `json:"size_bytes,omitempty"`
	Hash                    *string            `json:"hash,omitempty"`
	DurationSecs            *float64           `json:"duration_secs,omitempty"`
	RemoveBackgroundNoise   *bool              `json:"remove_background_noise,omitempty"`
	HasIsolatedAudio        *bool              `json:"has_isolated_audio,omitempty"`
	HasIsolatedAudioPreview *bool              `json:"has_isolated_audio_preview,omitempty"`
	SpeakerSeparation       *SpeakerSeparation `json:"speaker_separation,omitempty"`
	TrimStart               *int64             `json:"trim_start,omitempty"`
	TrimEnd                 *int64             `json:"trim_end,omitempty"`
}

// SpeakerSeparation tracks splitting a multi-speaker sample into
// per-speaker segments.
type SpeakerSeparation struct {
	VoiceID            string             `json:"voice_id"`
	SampleID           string             `json:"sample_id"`
	Status             SeparationStatus   `json:"status"`
	Speakers           map[string]Speaker `json:"speakers,omitempty"`
	SelectedSpeakerIDs []string           `json:"selected_speaker_ids,omitempty"`
}

// SeparationStatus is the lifecycle of a speaker separation job.
type SeparationStatus string

const (
	SeparationNotStarted SeparationStatus = "not_started"
	SeparationPending    SeparationStatus = "pending"
	SeparationCompleted  SeparationStatus = "completed"
	SeparationFailed     SeparationStatus = "failed"
)

// Speaker is one detected speaker within a separated sample.
type Speaker struct {
	SpeakerID    string      `json:"speaker_id"`
	DurationSecs float64     `json:"duration_secs"`
	Utterances   []Utterance `json:"utterances,omitempty"`
}

// Utterance is a time span, in seconds, attributed to one speaker.
type Utterance struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// FineTuning reports per-model fine-tuning progress for a voice. State,
// Progress and Message are keyed by model id.
type FineTuning struct {
	IsAllowedToFineTune                    *bool                      `json:"is_allowed_to_fine_tune,omitempty"`
	State                                  map[string]FineTuningState `json:"state,omitempty"`
	VerificationFailures                   []string                   `json:"verification_failures,omitempty"`
	VerificationAttemptsCount              *int64                     `json:"verification_attempts_count,omitempty"`
	ManualVerificationRequested            *bool                      `json:"manual_verification_requested,omitempty"`
	Language                               *string                    `json:"language,omitempty"`
	Progress                               map[string]float64         `json:"progress,omitempty"`
	Message                                map[string]string          `json:"message,omitempty"`
	DatasetDurationSeconds                 *float64                   `json:"dataset_duration_seconds,omitempty"`
	VerificationAttempts                   []VerificationAttempt      `json:"verification_attempts,omitempty"`
	SliceIDs                               []string                   `json:"slice_ids,omitempty"`
	ManualVerification                     *ManualVerification        `json:"manual_verification,omitempty"`
	MaxVerificationAttempts                *int64                     `json:"max_verification_attempts,omitempty"`
	NextMaxVerificationAttemptsResetUnixMS *int64                     `json:"next_max_verification_attempts_reset_unix_ms,omitempty"`
	FinetuningState                        interface{}                `json:"finetuning_state,omitempty"`
}

// FineTuningState is the per-model fine-tuning lifecycle.
type FineTuningState string

const (
	FineTuningNotStarted FineTuningState = "not_started"
	FineTuningQueued     FineTuningState = "queued"
	FineTuningInProgress FineTuningState = "fine_tuning"
	FineTuningComplete   FineTuningState = "fine_tuned"
	FineTuningFailed     FineTuningState = "failed"
	FineTuningDelayed    FineTuningState = "delayed"
)

// VerificationAttempt is one spoken verification recording and its scores.
type VerificationAttempt struct {
	Text                string     `json:"text"`
	DateUnix            int64      `json:"date_unix"`
	Accepted            bool       `json:"accepted"`
	Similarity          float64    `json:"similarity"`
	LevenshteinDistance float64    `json:"levenshtein_distance"`
	Recording           *Recording `json:"recording,omitempty"`
}

// Recording is the stored audio of a verification attempt.
type Recording struct {
	RecordingID    string `json:"recording_id"`
	MimeType       string `json:"mime_type"`
	SizeBytes      int64  `json:"size_bytes"`
	UploadDateUnix int64  `json:"upload_date_unix"`
	Transcription  string `json:"transcription"`
}

// ManualVerification is a pending human review request.
type ManualVerification struct {
	ExtraText       string             `json:"extra_text"`
	RequestTimeUnix int64              `json:"request_time_unix"`
	Files           []VerificationFile `json:"files"`
}

// VerificationFile is a document attached to a manual verification request.
type VerificationFile struct {
	FileID         string `json:"file_id"`
	FileName       string `json:"file_name"`
	MimeType       string `json:"mime_type"`
	SizeBytes      int64  `json:"size_bytes"`
	UploadDateUnix int64  `json:"upload_date_unix"`
}

// VoiceSettings are the synthesis parameters stored with a voice.
type VoiceSettings struct {
	Stability       *float64 `json:"stability,omitempty"`
	UseSpeakerBoost *bool    `json:"use_speaker_boost,omitempty"`
	SimilarityBoost *float64 `json:"similarity_boost,omitempty"`
	Style           *float64 `json:"style,omitempty"`
	Speed           *float64 `json:"speed,omitempty"`
}

// DefaultVoiceSettings returns the vendor defaults applied to a newly
// created voice.
func DefaultVoiceSettings() VoiceSettings {
	return VoiceSettings{
		Stability:       Ptr(0.5),
		UseSpeakerBoost: Ptr(true),
		SimilarityBoost: Ptr(0.5),
		Style:           Ptr(0.0),
		Speed:           Ptr(1.0),
	}
}

// VoiceSharing is the library sharing state of a voice.
type VoiceSharing struct {
	Status                  SharingStatus       `json:"status,omitempty"`
	HistoryItemSampleID     *string             `json:"history_item_sample_id,omitempty"`
	DateUnix                *int64              `json:"date_unix,omitempty"`
	WhitelistedEmails       []string            `json:"whitelisted_emails,omitempty"`
	PublicOwnerID           *string             `json:"public_owner_id,omitempty"`
	OriginalVoiceID         *string             `json:"original_voice_id,omitempty"`
	FinancialRewardsEnabled *bool               `json:"financial_rewards_enabled,omitempty"`
	FreeUsersAllowed        *bool               `json:"free_users_allowed,omitempty"`
	LiveModerationEnabled   *bool               `json:"live_moderation_enabled,omitempty"`
	Rate                    *float64            `json:"rate,omitempty"`
	FiatRate                *float64            `json:"fiat_rate,omitempty"`
	NoticePeriod            *int64              `json:"notice_period,omitempty"`
	DisableAtUnix           *int64              `json:"disable_at_unix,omitempty"`
	VoiceMixingAllowed      *bool               `json:"voice_mixing_allowed,omitempty"`
	Featured                *bool               `json:"featured,omitempty"`
	Category                VoiceCategory       `json:"category,omitempty"`
	ReaderAppEnabled        *bool               `json:"reader_app_enabled,omitempty"`
	ImageURL                *string             `json:"image_url,omitempty"`
	BanReason               *string             `json:"ban_reason,omitempty"`
	LikedByCount            *int64              `json:"liked_by_count,omitempty"`
	ClonedByCount           *int64              `json:"cloned_by_count,omitempty"`
	Name                    *string             `json:"name,omitempty"`
	Description             *string             `json:"description,omitempty"`
	Labels                  map[string]string   `json:"labels,omitempty"`
	ReviewStatus            ReviewStatus        `json:"review_status,omitempty"`
	ReviewMessage           *string             `json:"review_message,omitempty"`
	EnabledInLibrary        *bool               `json:"enabled_in_library,omitempty"`
	InstagramUsername       *string             `json:"instagram_username,omitempty"`
	TwitterUsername         *string             `json:"twitter_username,omitempty"`
	YoutubeUsername         *string             `json:"youtube_username,omitempty"`
	TiktokUsername          *string             `json:"tiktok_username,omitempty"`
	ModerationCheck         *ModerationCheck    `json:"moderation_check,omitempty"`
	ReaderRestrictedOn      []ReaderRestriction `json:"reader_restricted_on,omitempty"`
}

// SharingStatus is the lifecycle of a shared voice.
type SharingStatus string

const (
	SharingEnabled        SharingStatus = "enabled"
	SharingDisabled       SharingStatus = "disabled"
	SharingCopied         SharingStatus = "copied"
	SharingCopiedDisabled SharingStatus = "copied_disabled"
)

// ReviewStatus is the moderation review state of a shared voice.
type ReviewStatus string

const (
	ReviewNotRequested       ReviewStatus = "not_requested"
	ReviewPending            ReviewStatus = "pending"
	ReviewDeclined           ReviewStatus = "declined"
	ReviewAllowed            ReviewStatus = "allowed"
	ReviewAllowedWithChanges ReviewStatus = "allowed_with_changes"
)

// ModerationCheck records automated checks run on a shared voice.
type ModerationCheck struct {
	DateCheckedUnix  *int64    `json:"date_checked_unix,omitempty"`
	NameValue        *string   `json:"name_value,omitempty"`
	NameCheck        *bool     `json:"name_check,omitempty"`
	DescriptionValue *string   `json:"description_value,omitempty"`
	DescriptionCheck *bool     `json:"description_check,omitempty"`
	SampleIDs        []string  `json:"sample_ids,omitempty"`
	SampleChecks     []float64 `json:"sample_checks,omitempty"`
	CaptchaIDs       []string  `json:"captcha_ids,omitempty"`
	CaptchaChecks    []float64 `json:"captcha_checks,omitempty"`
}

// ReaderRestriction limits where a shared voice may be used.
type ReaderRestriction struct {
	ResourceType ResourceType `json:"resource_type"`
	ResourceID   string       `json:"resource_id"`
}

// ResourceType is the kind of resource a reader restriction applies to.
type ResourceType string

const (
	ResourceRead       ResourceType = "read"
	ResourceCollection ResourceType = "collection"
)

// VerifiedLanguage is a language the voice is verified to speak.
type VerifiedLanguage struct {
	Language   string  `json:"language"`
	ModelID    string  `json:"model_id"`
	Accent     *string `json:"accent,omitempty"`
	Locale     *string `json:"locale,omitempty"`
	PreviewURL *string `json:"preview_url,omitempty"`
}

// SafetyControl is the vendor's abuse-prevention posture for a voice.
// Values arrive upper-cased, unlike the other enumerations.
type SafetyControl string

const (
	SafetyControlNone              SafetyControl = "NONE"
	SafetyControlBan               SafetyControl = "BAN"
	SafetyControlCaptcha           SafetyControl = "CAPTCHA"
	SafetyControlEnterpriseBan     SafetyControl = "ENTERPRISE_BAN"
	SafetyControlEnterpriseCaptcha SafetyControl = "ENTERPRISE_CAPTCHA"
)

// VoiceVerification is the identity verification state of a voice.
type VoiceVerification struct {
	RequiresVerification      bool                  `json:"requires_verification"`
	IsVerified                bool                  `json:"is_verified"`
	VerificationFailures      []string              `json:"verification_failures"`
	VerificationAttemptsCount int64                 `json:"verification_attempts_count"`
	Language                  *string               `json:"language,omitempty"`
	VerificationAttempts      []VerificationAttempt `json:"verification_attempts,omitempty"`
}
