package ttv

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/elevenlabs-ttv-go/elevenlabs-ttv-go/pkg/schema"
)

// DefaultBaseURL is the production API root.
const DefaultBaseURL = "https://api.elevenlabs.io/v1"

const apiKeyHeader = "xi-api-key"

// Client talks to the vendor's text-to-voice endpoints. Configuration is
// immutable after New, so a single Client is safe for concurrent use; every
// call is one HTTP round trip with no retries, queuing or caching.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	strict     bool
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API root, such as a relay or
// a test server. A trailing slash is tolerated.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithHTTPClient substitutes the underlying HTTP client, for callers that
// need a global timeout, a proxy or a custom transport.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithStrictValidation makes Execute check finalized requests against the
// documented ranges before any network I/O, surfacing violations as
// KindValidation errors. Off by default: enforcement is normally left to
// the server.
func WithStrictValidation() Option {
	return func(c *Client) {
		c.strict = true
	}
}

// New creates a client for the production API with connection pooling.
func New(apiKey string, opts ...Option) *Client {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 100,
		IdleConnTimeout:     90 * time.Second,
	}

	c := &Client{
		httpClient: &http.Client{Transport: transport},
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Design generates voice previews from a description. The request is sent
// exactly as given; use DesignVoice for the defaulting builder API.
func (c *Client) Design(ctx context.Context, req schema.DesignVoiceRequest) (*schema.DesignVoiceResponse, error) {
	endpoint := c.baseURL + "/text-to-voice/design"
	if req.OutputFormat != "" {
		endpoint += "?output_format=" + url.QueryEscape(string(req.OutputFormat))
	}

	var result schema.DesignVoiceResponse
	if err := c.postJSON(ctx, endpoint, req, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// Create persists a designed preview as a library voice and returns the
// stored voice record.
func (c *Client) Create(ctx context.Context, req schema.CreateVoiceRequest) (*schema.Voice, error) {
	var result schema.Voice
	if err := c.postJSON(ctx, c.baseURL+"/text-to-voice", req, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *Client) postJSON(ctx context.Context, endpoint string, payload, result interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return &Error{Kind: KindRequest, Message: "failed to encode request", Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return &Error{Kind: KindRequest, Message: "failed to create request", Err: err}
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(apiKeyHeader, c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return &Error{Kind: KindRequest, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindRequest, Message: "failed to read response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return classifyStatus(resp.StatusCode, resp.Header, respBody)
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return &Error{Kind: KindParse, Status: resp.StatusCode, Message: "failed to parse response", Err: err}
	}

	return nil
}
