// Package http implements the HTTP transport of the sync server. It exposes
// the auth endpoints, the health probe used by agents for connectivity
// checks, and the per-entity Read/Write sync API. Authentication, logging,
// tracing, and compression are handled here before requests reach the
// service layer.
package http

import (
	"github.com/skids-health/skids-sync/internal/logger"
	"github.com/skids-health/skids-sync/internal/service"
)

type Handler struct {
	services *service.Services

	logger *logger.Logger
}

func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		logger:   logger,
	}
}
