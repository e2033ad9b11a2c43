package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/elevenlabs-ttv-go/elevenlabs-ttv-go/internal/config"
	"github.com/elevenlabs-ttv-go/elevenlabs-ttv-go/internal/queue"
	"github.com/elevenlabs-ttv-go/elevenlabs-ttv-go/pkg/ttv"
)

// NewRouter constructs the HTTP router with middleware and routes.
func NewRouter(cfg *config.Config, vendor ttv.Service, pool *queue.Pool, logger zerolog.Logger) chi.Router {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(logger))
	r.Use(CORSMiddleware)
	if cfg.Auth.APIKey != "" {
		r.Use(AuthMiddleware(cfg.Auth.APIKey))
	}

	h := NewHandler(vendor, pool, logger)

	r.Get("/v1/health", h.HandleHealthGet)
	r.Post("/v1/health", h.HandleHealthPost)

	r.Post("/v1/text-to-voice/design", h.HandleDesignVoice)
	r.Post("/v1/text-to-voice", h.HandleCreateVoice)

	return r
}
