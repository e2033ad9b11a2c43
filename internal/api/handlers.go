package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/elevenlabs-ttv-go/elevenlabs-ttv-go/internal/queue"
	"github.com/elevenlabs-ttv-go/elevenlabs-ttv-go/pkg/schema"
	"github.com/elevenlabs-ttv-go/elevenlabs-ttv-go/pkg/ttv"
)

// Handler serves the relay routes. Upstream calls go through the worker
// pool so the relay never holds more vendor calls in flight than
// configured.
type Handler struct {
	vendor  ttv.Service
	pool    *queue.Pool
	metrics *Metrics
	logger  zerolog.Logger
}

// NewHandler constructs a Handler backed by the given vendor client.
func NewHandler(vendor ttv.Service, pool *queue.Pool, logger zerolog.Logger) *Handler {
	return &Handler{
		vendor:  vendor,
		pool:    pool,
		metrics: NewMetrics(),
		logger:  logger,
	}
}

// HandleHealthGet reports liveness. With ?detailed=true the payload carries
// the relay counters.
func (h *Handler) HandleHealthGet(w http.ResponseWriter, r *http.Request) {
	resp := schema.HealthResponse{Status: "ok"}
	if r.URL.Query().Get("detailed") == "true" {
		resp.Stats = h.metrics.Snapshot()
	}
	WriteJSON(w, http.StatusOK, resp)
}

// HandleHealthPost mirrors HandleHealthGet for clients that probe with POST.
func (h *Handler) HandleHealthPost(w http.ResponseWriter, r *http.Request) {
	h.HandleHealthGet(w, r)
}

// HandleDesignVoice validates an inbound design request and relays it to the
// vendor. The response previews pass through unchanged.
func (h *Handler) HandleDesignVoice(w http.ResponseWriter, r *http.Request) {
	req, err := ParseDesignVoiceRequest(r)
	if err != nil {
		h.writeParseError(w, err)
		return
	}

	var resp *schema.DesignVoiceResponse
	err = h.pool.Do(r.Context(), func(ctx context.Context) error {
		var callErr error
		resp, callErr = h.vendor.Design(ctx, *req)
		return callErr
	})
	if err != nil {
		h.writeUpstreamError(w, r, "design", err)
		return
	}

	h.metrics.IncDesignsServed()
	WriteJSON(w, http.StatusOK, resp)
}

// HandleCreateVoice validates an inbound create request and relays it to the
// vendor, returning the stored voice record.
func (h *Handler) HandleCreateVoice(w http.ResponseWriter, r *http.Request) {
	req, err := ParseCreateVoiceRequest(r)
	if err != nil {
		h.writeParseError(w, err)
		return
	}

	var voice *schema.Voice
	err = h.pool.Do(r.Context(), func(ctx context.Context) error {
		var callErr error
		voice, callErr = h.vendor.Create(ctx, *req)
		return callErr
	})
	if err != nil {
		h.writeUpstreamError(w, r, "create", err)
		return
	}

	h.metrics.IncVoicesCreated()
	WriteJSON(w, http.StatusOK, voice)
}

func (h *Handler) writeParseError(w http.ResponseWriter, err error) {
	if httpErr, ok := IsHTTPError(err); ok {
		WriteError(w, httpErr.Status, httpErr.Message)
		return
	}
	WriteError(w, http.StatusBadRequest, "Invalid request")
}

// writeUpstreamError maps a failed relay attempt onto an inbound status.
// Vendor rate limits and quota failures pass through so callers can react;
// everything that means "the relay could not complete the exchange" becomes
// a gateway error. An inbound 401 is reserved for the relay's own auth, so
// a vendor 401 (a bad relay credential) surfaces as 502.
func (h *Handler) writeUpstreamError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, queue.ErrQueueFull):
		h.metrics.IncQueueRejections()
		WriteError(w, http.StatusServiceUnavailable, "Relay is at capacity")
		return
	case errors.Is(err, queue.ErrShutdown):
		WriteError(w, http.StatusServiceUnavailable, "Relay is shutting down")
		return
	case errors.Is(err, context.DeadlineExceeded):
		h.metrics.IncUpstreamFailures()
		WriteError(w, http.StatusGatewayTimeout, "Upstream request timed out")
		return
	}

	h.metrics.IncUpstreamFailures()
	requestID := RequestIDFromContext(r.Context())

	apiErr, ok := ttv.AsError(err)
	if !ok {
		h.logger.Error().Err(err).Str("request_id", requestID).Str("op", op).Msg("upstream call failed")
		WriteError(w, http.StatusBadGateway, "Upstream request failed")
		return
	}

	switch apiErr.Kind {
	case ttv.KindRateLimited:
		if apiErr.RetryAfter != nil {
			w.Header().Set("Retry-After", strconv.Itoa(int(apiErr.RetryAfter.Seconds())))
		}
		WriteError(w, http.StatusTooManyRequests, apiErr.Message)
	case ttv.KindQuotaExceeded:
		WriteError(w, http.StatusPaymentRequired, apiErr.Message)
	case ttv.KindAPI:
		WriteError(w, apiErr.Status, apiErr.Message)
	case ttv.KindAuthentication:
		h.logger.Error().Str("request_id", requestID).Str("op", op).Msg("vendor rejected the relay credential")
		WriteError(w, http.StatusBadGateway, "Relay is not authorized with the vendor")
	default:
		h.logger.Error().Err(err).Str("request_id", requestID).Str("op", op).Str("kind", apiErr.Kind.String()).Msg("upstream call failed")
		WriteError(w, http.StatusBadGateway, "Upstream request failed")
	}
}
