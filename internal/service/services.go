package service

import (
	"github.com/skids-health/skids-sync/internal/config"
	"github.com/skids-health/skids-sync/internal/logger"
	"github.com/skids-health/skids-sync/internal/store"
)

// Services groups the server-side services.
type Services struct {
	AuthService   AuthService
	EntityService EntityService
}

func NewServices(storages *store.Storages, cfg config.Auth, log *logger.Logger) *Services {
	return &Services{
		AuthService:   NewAuthService(storages.UserRepository, cfg, log),
		EntityService: NewEntityService(storages.EntityRepository, log),
	}
}
