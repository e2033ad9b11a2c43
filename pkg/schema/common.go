package schema

// ErrorResponse is the standard error payload served by the relay.
type ErrorResponse struct {
	Detail string `json:"detail" msgpack:"detail"`
}

// HealthResponse is the relay health check payload. Stats is only populated
// for detailed checks.
type HealthResponse struct {
	Status string           `json:"status" msgpack:"status"`
	Stats  map[string]int64 `json:"stats,omitempty" msgpack:"stats,omitempty"`
}

// Ptr returns a pointer to v, for filling optional request fields in place.
func Ptr[T any](v T) *T {
	return &v
}
