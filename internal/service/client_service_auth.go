package service

import (
	"context"
	"fmt"

	"github.com/skids-health/skids-sync/internal/adapter"
	"github.com/skids-health/skids-sync/internal/logger"
	"github.com/skids-health/skids-sync/internal/validators"
	"github.com/skids-health/skids-sync/models"
)

// clientAuthService implements [ClientAuthService] over the server adapter.
// The adapter caches the bearer token on successful register/login, which is
// what starts the engine session.
type clientAuthService struct {
	adapter   adapter.ServerAdapter
	cache     CacheService
	validator validators.Validator
	logger    *logger.Logger
}

func NewClientAuthService(serverAdapter adapter.ServerAdapter, cache CacheService, log *logger.Logger) ClientAuthService {
	return &clientAuthService{
		adapter:   serverAdapter,
		cache:     cache,
		validator: validators.NewMutationValidator(),
		logger:    log,
	}
}

func (s *clientAuthService) Register(ctx context.Context, user models.User) (models.Token, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, user); err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	token, err := s.adapter.Register(ctx, user)
	if err != nil {
		log.Err(err).Str("func", "*clientAuthService.Register").Str("login", user.Login).
			Msg("registration failed")
		return models.Token{}, fmt.Errorf("register: %w", err)
	}

	log.Info().Str("func", "*clientAuthService.Register").Int64("user_id", token.UserID).
		Msg("session started")
	return token, nil
}

func (s *clientAuthService) Login(ctx context.Context, user models.User) (models.Token, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, user); err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	token, err := s.adapter.Login(ctx, user)
	if err != nil {
		log.Err(err).Str("func", "*clientAuthService.Login").Str("login", user.Login).
			Msg("login failed")
		return models.Token{}, fmt.Errorf("login: %w", err)
	}

	log.Info().Str("func", "*clientAuthService.Login").Int64("user_id", token.UserID).
		Msg("session started")
	return token, nil
}

// EndSession discards the bearer token and wipes the local cache, queue, and
// metadata. After it returns, freshness queries report no data.
func (s *clientAuthService) EndSession(ctx context.Context) error {
	log := logger.FromContext(ctx)

	s.adapter.SetToken("")

	if err := s.cache.ClearAll(ctx); err != nil {
		return fmt.Errorf("wipe local data: %w", err)
	}

	log.Info().Str("func", "*clientAuthService.EndSession").Msg("session ended")
	return nil
}
