package ttv

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		header    http.Header
		body      string
		wantKind  Kind
		wantMsg   string
		wantRetry *time.Duration
	}{
		{
			name:     "401 becomes authentication",
			status:   401,
			body:     "",
			wantKind: KindAuthentication,
			wantMsg:  "Invalid API key",
		},
		{
			name:     "401 keeps body message",
			status:   401,
			body:     `{"detail":"key disabled"}`,
			wantKind: KindAuthentication,
			wantMsg:  `{"detail":"key disabled"}`,
		},
		{
			name:     "402 becomes quota exceeded",
			status:   402,
			body:     "",
			wantKind: KindQuotaExceeded,
			wantMsg:  "Insufficient credits",
		},
		{
			name:     "429 without retry-after",
			status:   429,
			body:     "Too many requests",
			wantKind: KindRateLimited,
			wantMsg:  "Too many requests",
		},
		{
			name:      "429 with retry-after seconds",
			status:    429,
			header:    http.Header{"Retry-After": []string{"120"}},
			body:      "slow down",
			wantKind:  KindRateLimited,
			wantMsg:   "slow down",
			wantRetry: durationPtr(120 * time.Second),
		},
		{
			name:     "429 with http-date retry-after is ignored",
			status:   429,
			header:   http.Header{"Retry-After": []string{"Wed, 21 Oct 2026 07:28:00 GMT"}},
			body:     "",
			wantKind: KindRateLimited,
			wantMsg:  "Too many requests",
		},
		{
			name:     "500 becomes api error",
			status:   500,
			body:     "internal error",
			wantKind: KindAPI,
			wantMsg:  "internal error",
		},
		{
			name:     "404 becomes api error with empty message",
			status:   404,
			body:     "",
			wantKind: KindAPI,
			wantMsg:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := tt.header
			if header == nil {
				header = http.Header{}
			}

			apiErr := classifyStatus(tt.status, header, []byte(tt.body))

			assert.Equal(t, tt.wantKind, apiErr.Kind)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantMsg, apiErr.Message)
			if tt.wantRetry == nil {
				assert.Nil(t, apiErr.RetryAfter)
			} else {
				require.NotNil(t, apiErr.RetryAfter)
				assert.Equal(t, *tt.wantRetry, *apiErr.RetryAfter)
			}
		})
	}
}

func TestParseRetryAfter(t *testing.T) {
	assert.Nil(t, parseRetryAfter(""))
	assert.Nil(t, parseRetryAfter("soon"))
	assert.Nil(t, parseRetryAfter("-5"))

	d := parseRetryAfter("0")
	require.NotNil(t, d)
	assert.Equal(t, time.Duration(0), *d)

	d = parseRetryAfter("90")
	require.NotNil(t, d)
	assert.Equal(t, 90*time.Second, *d)
}

func TestErrorMessages(t *testing.T) {
	wrapped := errors.New("connection refused")

	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "request",
			err:  &Error{Kind: KindRequest, Message: "request failed", Err: wrapped},
			want: "request failed: connection refused",
		},
		{
			name: "api",
			err:  &Error{Kind: KindAPI, Status: 500, Message: "boom"},
			want: "API error (status 500): boom",
		},
		{
			name: "authentication",
			err:  &Error{Kind: KindAuthentication, Status: 401, Message: "Invalid API key"},
			want: "authentication failed: Invalid API key",
		},
		{
			name: "rate limited without retry-after",
			err:  &Error{Kind: KindRateLimited, Status: 429, Message: "Too many requests"},
			want: "rate limit exceeded: Too many requests",
		},
		{
			name: "rate limited with retry-after",
			err:  &Error{Kind: KindRateLimited, Status: 429, Message: "busy", RetryAfter: durationPtr(30 * time.Second)},
			want: "rate limit exceeded (retry in 30s): busy",
		},
		{
			name: "quota",
			err:  &Error{Kind: KindQuotaExceeded, Status: 402, Message: "Insufficient credits"},
			want: "quota exceeded: Insufficient credits",
		},
		{
			name: "validation",
			err:  &Error{Kind: KindValidation, Message: "loudness must be between -1 and 1"},
			want: "validation error: loudness must be between -1 and 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestAsError(t *testing.T) {
	apiErr := &Error{Kind: KindAPI, Status: 500, Message: "boom"}

	got, ok := AsError(apiErr)
	require.True(t, ok)
	assert.Equal(t, apiErr, got)

	// survives wrapping
	wrapped := fmt.Errorf("design voice: %w", apiErr)
	got, ok = AsError(wrapped)
	require.True(t, ok)
	assert.Equal(t, KindAPI, got.Kind)

	_, ok = AsError(errors.New("plain"))
	assert.False(t, ok)
}

func TestErrorUnwrap(t *testing.T) {
	inner := errors.New("connection reset")
	apiErr := &Error{Kind: KindRequest, Message: "request failed", Err: inner}

	assert.True(t, errors.Is(apiErr, inner))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "rate_limited", KindRateLimited.String())
	assert.Equal(t, "unknown", Kind(0).String())
}

func durationPtr(d time.Duration) *time.Duration {
	return &d
}
