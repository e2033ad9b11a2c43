package schema

// OutputFormat identifies the codec, sample rate and bitrate of rendered
// preview audio. Higher MP3 bitrates and PCM rates above 16 kHz require
// paid subscription tiers; opus formats require Pro or above.
type OutputFormat string

const (
	FormatMP3_22050_32  OutputFormat = "mp3_22050_32"
	FormatMP3_44100_32  OutputFormat = "mp3_44100_32"
	FormatMP3_44100_64  OutputFormat = "mp3_44100_64"
	FormatMP3_44100_96  OutputFormat = "mp3_44100_96"
	FormatMP3_44100_128 OutputFormat = "mp3_44100_128"
	FormatMP3_44100_192 OutputFormat = "mp3_44100_192"
	FormatPCM_8000      OutputFormat = "pcm_8000"
	FormatPCM_16000     OutputFormat = "pcm_16000"
	FormatPCM_22050     OutputFormat = "pcm_22050"
	FormatPCM_24000     OutputFormat = "pcm_24000"
	FormatPCM_44100     OutputFormat = "pcm_44100"
	FormatPCM_48000     OutputFormat = "pcm_48000"
	FormatULaw_8000     OutputFormat = "ulaw_8000"
	FormatALaw_8000     OutputFormat = "alaw_8000"
	FormatOpus_48000_32 OutputFormat = "opus_48000_32"
	FormatOpus_48000_64 OutputFormat = "opus_48000_64"
	FormatOpus_48000_96 OutputFormat = "opus_48000_96"
)

// Model identifiers accepted by the design operation.
const (
	ModelMultilingualTTVv2 = "eleven_multilingual_ttv_v2"
	ModelTTVv3             = "eleven_ttv_v3"
)

var outputFormats = []OutputFormat{
	FormatMP3_22050_32,
	FormatMP3_44100_32,
	FormatMP3_44100_64,
	FormatMP3_44100_96,
	FormatMP3_44100_128,
	FormatMP3_44100_192,
	FormatPCM_8000,
	FormatPCM_16000,
	FormatPCM_22050,
	FormatPCM_24000,
	FormatPCM_44100,
	FormatPCM_48000,
	FormatULaw_8000,
	FormatALaw_8000,
	FormatOpus_48000_32,
	FormatOpus_48000_64,
	FormatOpus_48000_96,
}

// OutputFormats returns the documented output formats in catalog order.
func OutputFormats() []OutputFormat {
	formats := make([]OutputFormat, len(outputFormats))
	copy(formats, outputFormats)
	return formats
}

// Valid reports whether f is a documented output format.
func (f OutputFormat) Valid() bool {
	for _, known := range outputFormats {
		if f == known {
			return true
		}
	}
	return false
}
