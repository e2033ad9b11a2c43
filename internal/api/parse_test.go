package api

import (
	"bytes"
	"encoding/base64"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/elevenlabs-ttv-go/elevenlabs-ttv-go/pkg/schema"
)

func TestParseDesignVoiceRequest_JSON(t *testing.T) {
	body := bytes.NewBufferString(`{"voice_description":"a calm narrator"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/text-to-voice/design", body)
	req.Header.Set("Content-Type", "application/json")

	parsed, err := ParseDesignVoiceRequest(req)
	require.NoError(t, err)

	assert.Equal(t, "a calm narrator", parsed.VoiceDescription)
	assert.Equal(t, schema.FormatMP3_44100_128, parsed.OutputFormat)
	assert.Equal(t, schema.ModelMultilingualTTVv2, parsed.ModelID)
	require.NotNil(t, parsed.AutoGenerateText)
	assert.True(t, *parsed.AutoGenerateText)
	require.NotNil(t, parsed.Loudness)
	assert.Equal(t, 0.5, *parsed.Loudness)
	require.NotNil(t, parsed.GuidanceScale)
	assert.Equal(t, 5, *parsed.GuidanceScale)
}

func TestParseDesignVoiceRequest_MessagePack(t *testing.T) {
	payload := map[string]interface{}{
		"voice_description": "a calm narrator",
		"loudness":          0.25,
	}
	encoded, _ := msgpack.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/v1/text-to-voice/design", bytes.NewReader(encoded))
	req.Header.Set("Content-Type", "application/msgpack")

	parsed, err := ParseDesignVoiceRequest(req)
	require.NoError(t, err)

	assert.Equal(t, "a calm narrator", parsed.VoiceDescription)
	require.NotNil(t, parsed.Loudness)
	assert.Equal(t, 0.25, *parsed.Loudness)
}

func TestParseDesignVoiceRequest_QueryFormat(t *testing.T) {
	body := bytes.NewBufferString(`{"voice_description":"a calm narrator"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/text-to-voice/design?output_format=ulaw_8000", body)
	req.Header.Set("Content-Type", "application/json")

	parsed, err := ParseDesignVoiceRequest(req)
	require.NoError(t, err)
	assert.Equal(t, schema.FormatULaw_8000, parsed.OutputFormat)
}

func TestParseDesignVoiceRequest_TextSkipsAutoGenerate(t *testing.T) {
	text := strings.Repeat("a", 120)
	body := bytes.NewBufferString(`{"voice_description":"a calm narrator","text":"` + text + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/text-to-voice/design", body)
	req.Header.Set("Content-Type", "application/json")

	parsed, err := ParseDesignVoiceRequest(req)
	require.NoError(t, err)

	require.NotNil(t, parsed.Text)
	assert.Equal(t, text, *parsed.Text)
	assert.Nil(t, parsed.AutoGenerateText)
}

func TestParseDesignVoiceRequest_TextTooShort(t *testing.T) {
	body := bytes.NewBufferString(`{"voice_description":"a calm narrator","text":"too short"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/text-to-voice/design", body)
	req.Header.Set("Content-Type", "application/json")

	_, err := ParseDesignVoiceRequest(req)
	require.Error(t, err)

	httpErr, ok := IsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "text must be between 100 and 1000 characters", httpErr.Message)
}

func TestParseRequestBody_UnsupportedContentType(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/text-to-voice/design", bytes.NewBufferString("hello"))
	req.Header.Set("Content-Type", "text/plain")

	var target schema.DesignVoiceRequest
	err := ParseRequestBody(req, &target)
	require.Error(t, err)

	httpErr, ok := IsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnsupportedMediaType, httpErr.Status)
}

func TestParseDesignVoiceRequest_Multipart(t *testing.T) {
	audio := []byte("RIFF fake audio sample")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("voice_description", "a calm narrator"))
	require.NoError(t, mw.WriteField("loudness", "0.25"))
	require.NoError(t, mw.WriteField("auto_generate_text", "true"))

	fw, err := mw.CreateFormFile("reference_audio", "reference.wav")
	require.NoError(t, err)
	_, err = fw.Write(audio)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/text-to-voice/design", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	parsed, err := ParseDesignVoiceRequest(req)
	require.NoError(t, err)

	assert.Equal(t, "a calm narrator", parsed.VoiceDescription)
	require.NotNil(t, parsed.Loudness)
	assert.Equal(t, 0.25, *parsed.Loudness)
	require.NotNil(t, parsed.AutoGenerateText)
	assert.True(t, *parsed.AutoGenerateText)
	require.NotNil(t, parsed.ReferenceAudioBase64)
	assert.Equal(t, base64.StdEncoding.EncodeToString(audio), *parsed.ReferenceAudioBase64)
}

func TestParseDesignVoiceRequest_MultipartUnknownFileRejected(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("voice_description", "a calm narrator"))

	fw, err := mw.CreateFormFile("attachment", "notes.txt")
	require.NoError(t, err)
	_, err = fw.Write([]byte("not audio"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/text-to-voice/design", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	_, err = ParseDesignVoiceRequest(req)
	require.Error(t, err)

	httpErr, ok := IsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, `unexpected file field "attachment"`, httpErr.Message)
}

func TestParseRequestBody_MultipartPayloadField(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("payload", `{"voice_description":"a calm narrator","guidance_scale":7}`))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/text-to-voice/design", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	parsed, err := ParseDesignVoiceRequest(req)
	require.NoError(t, err)

	assert.Equal(t, "a calm narrator", parsed.VoiceDescription)
	require.NotNil(t, parsed.GuidanceScale)
	assert.Equal(t, 7, *parsed.GuidanceScale)
}

func TestParseCreateVoiceRequest_MissingName(t *testing.T) {
	body := bytes.NewBufferString(`{"voice_description":"a calm narrator","generated_voice_id":"gen123"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/text-to-voice", body)
	req.Header.Set("Content-Type", "application/json")

	_, err := ParseCreateVoiceRequest(req)
	require.Error(t, err)

	httpErr, ok := IsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "voice_name is required", httpErr.Message)
}
