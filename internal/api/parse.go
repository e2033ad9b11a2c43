package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/elevenlabs-ttv-go/elevenlabs-ttv-go/pkg/schema"
)

const maxMultipartMemory = 32 << 20

// The only binary field in either operation. The upload arrives under the
// natural part name; the wire field carries the _base64 suffix.
const (
	referenceAudioPart  = "reference_audio"
	referenceAudioField = "reference_audio_base64"
)

// HTTPError represents an error with an associated HTTP status code.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// IsHTTPError checks whether an error is an *HTTPError.
func IsHTTPError(err error) (*HTTPError, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}

// ParseDesignVoiceRequest decodes, finalizes and validates a design request.
// The output format is taken from the query string, mirroring the vendor's
// own endpoint shape. Validation is strict at the relay edge so malformed
// requests are rejected before a worker slot or vendor credit is spent.
func ParseDesignVoiceRequest(r *http.Request) (*schema.DesignVoiceRequest, error) {
	var req schema.DesignVoiceRequest

	if err := ParseRequestBody(r, &req); err != nil {
		return nil, err
	}

	if format := r.URL.Query().Get("output_format"); format != "" {
		req.OutputFormat = schema.OutputFormat(format)
	}

	req = req.WithDefaults()
	if err := req.Validate(); err != nil {
		return nil, &HTTPError{Status: http.StatusBadRequest, Message: err.Error()}
	}

	return &req, nil
}

// ParseCreateVoiceRequest decodes and validates a create request.
func ParseCreateVoiceRequest(r *http.Request) (*schema.CreateVoiceRequest, error) {
	var req schema.CreateVoiceRequest

	if err := ParseRequestBody(r, &req); err != nil {
		return nil, err
	}

	if err := req.Validate(); err != nil {
		return nil, &HTTPError{Status: http.StatusBadRequest, Message: err.Error()}
	}

	return &req, nil
}

// ParseRequestBody decodes the request body into the provided value based on
// Content-Type.
func ParseRequestBody(r *http.Request, v interface{}) error {
	contentType := r.Header.Get("Content-Type")
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = contentType
	}

	switch strings.ToLower(mediaType) {
	case "application/json":
		if err := json.NewDecoder(r.Body).Decode(v); err != nil {
			return &HTTPError{Status: http.StatusBadRequest, Message: "Invalid request body"}
		}
	case "application/msgpack":
		if err := msgpack.NewDecoder(r.Body).Decode(v); err != nil {
			return &HTTPError{Status: http.StatusBadRequest, Message: "Invalid request body"}
		}
	case "multipart/form-data":
		if err := parseMultipart(r, v); err != nil {
			return err
		}
	default:
		return &HTTPError{Status: http.StatusUnsupportedMediaType, Message: "Unsupported content type"}
	}

	return nil
}

// parseMultipart decodes a multipart/form-data request into the provided
// value. Scalar form fields go through a JSON round trip for type inference,
// so "loudness=0.5" lands in a float field and "auto_generate_text=true" in
// a bool. File parts are folded in as raw bytes, which the JSON round trip
// renders as base64, so an uploaded reference_audio file lands in the
// reference_audio_base64 field already encoded.
func parseMultipart(r *http.Request, v interface{}) error {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return &HTTPError{Status: http.StatusBadRequest, Message: "Invalid multipart form"}
	}

	if len(r.MultipartForm.Value) == 0 && len(r.MultipartForm.File) == 0 {
		return &HTTPError{Status: http.StatusBadRequest, Message: "Empty multipart form"}
	}

	// Prefer a "payload" field if provided containing JSON.
	if payloads, ok := r.MultipartForm.Value["payload"]; ok && len(payloads) > 0 {
		if err := json.Unmarshal([]byte(payloads[0]), v); err != nil {
			return &HTTPError{Status: http.StatusBadRequest, Message: "Invalid multipart payload"}
		}
		return nil
	}

	data := map[string]interface{}{}
	for key, values := range r.MultipartForm.Value {
		if len(values) == 0 {
			continue
		}
		val := values[0]

		var decoded interface{}
		if err := json.Unmarshal([]byte(val), &decoded); err == nil {
			data[key] = decoded
			continue
		}

		data[key] = val
	}

	for key, files := range r.MultipartForm.File {
		if len(files) == 0 {
			continue
		}
		if key != referenceAudioPart {
			return &HTTPError{Status: http.StatusBadRequest, Message: fmt.Sprintf("unexpected file field %q", key)}
		}
		file, err := files[0].Open()
		if err != nil {
			return &HTTPError{Status: http.StatusBadRequest, Message: "Invalid file upload"}
		}
		defer file.Close()

		buf := make([]byte, files[0].Size)
		n, err := file.Read(buf)
		if err != nil {
			return &HTTPError{Status: http.StatusBadRequest, Message: "Invalid file upload"}
		}

		data[referenceAudioField] = buf[:n]
	}

	marshaled, err := json.Marshal(data)
	if err != nil {
		return &HTTPError{Status: http.StatusBadRequest, Message: "Invalid multipart data"}
	}

	if err := json.Unmarshal(marshaled, v); err != nil {
		return &HTTPError{Status: http.StatusBadRequest, Message: "Invalid multipart data"}
	}

	return nil
}
