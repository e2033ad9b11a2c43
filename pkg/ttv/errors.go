package ttv

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// Kind classifies a failed call. Callers branch on it instead of matching
// error strings or status codes.
type Kind int

const (
	// KindRequest covers transport-level failures: connection refused, DNS,
	// timeouts, cancelled contexts. No HTTP status was received.
	KindRequest Kind = iota + 1
	// KindAPI is a non-success status with no more specific classification.
	KindAPI
	// KindParse means the vendor returned success but the body did not
	// decode into the expected shape.
	KindParse
	// KindAuthentication is a 401: missing or invalid API key.
	KindAuthentication
	// KindRateLimited is a 429. RetryAfter is set when the vendor said how
	// long to wait.
	KindRateLimited
	// KindQuotaExceeded is a 402: the account is out of credits.
	KindQuotaExceeded
	// KindValidation is produced client-side under strict validation and
	// never leaves the process.
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindRequest:
		return "request"
	case KindAPI:
		return "api"
	case KindParse:
		return "parse"
	case KindAuthentication:
		return "authentication"
	case KindRateLimited:
		return "rate_limited"
	case KindQuotaExceeded:
		return "quota_exceeded"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by the client. Status carries the
// HTTP status when one was received; Err wraps the underlying transport or
// decode error for KindRequest and KindParse.
type Error struct {
	Kind       Kind
	Status     int
	Message    string
	RetryAfter *time.Duration
	Err        error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindRequest, KindParse:
		if e.Err != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Err)
		}
		return e.Message
	case KindAuthentication:
		return fmt.Sprintf("authentication failed: %s", e.Message)
	case KindRateLimited:
		if e.RetryAfter != nil {
			return fmt.Sprintf("rate limit exceeded (retry in %s): %s", e.RetryAfter, e.Message)
		}
		return fmt.Sprintf("rate limit exceeded: %s", e.Message)
	case KindQuotaExceeded:
		return fmt.Sprintf("quota exceeded: %s", e.Message)
	case KindValidation:
		return fmt.Sprintf("validation error: %s", e.Message)
	default:
		return fmt.Sprintf("API error (status %d): %s", e.Status, e.Message)
	}
}

// Unwrap exposes the wrapped transport or decode error to errors.Is.
func (e *Error) Unwrap() error {
	return e.Err
}

// AsError extracts the *Error from an error chain.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// classifyStatus maps a non-success vendor response onto an Error. The
// mapping depends only on the status code and the Retry-After header; the
// response body becomes the message, with a canonical fallback when the
// vendor sent nothing.
func classifyStatus(status int, header http.Header, body []byte) *Error {
	message := string(body)
	switch status {
	case http.StatusUnauthorized:
		if message == "" {
			message = "Invalid API key"
		}
		return &Error{Kind: KindAuthentication, Status: status, Message: message}
	case http.StatusPaymentRequired:
		if message == "" {
			message = "Insufficient credits"
		}
		return &Error{Kind: KindQuotaExceeded, Status: status, Message: message}
	case http.StatusTooManyRequests:
		if message == "" {
			message = "Too many requests"
		}
		return &Error{
			Kind:       KindRateLimited,
			Status:     status,
			Message:    message,
			RetryAfter: parseRetryAfter(header.Get("Retry-After")),
		}
	default:
		return &Error{Kind: KindAPI, Status: status, Message: message}
	}
}

// parseRetryAfter understands the integer-seconds form of the header.
// Anything else (absent, HTTP dates, garbage) yields nil.
func parseRetryAfter(value string) *time.Duration {
	if value == "" {
		return nil
	}
	seconds, err := strconv.Atoi(value)
	if err != nil || seconds < 0 {
		return nil
	}
	d := time.Duration(seconds) * time.Second
	return &d
}
