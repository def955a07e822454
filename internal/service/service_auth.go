package service

import (
	"context"
	"fmt"
	"time"

	"github.com/skids-health/skids-sync/internal/config"
	"github.com/skids-health/skids-sync/internal/crypto"
	"github.com/skids-health/skids-sync/internal/logger"
	"github.com/skids-health/skids-sync/internal/store"
	"github.com/skids-health/skids-sync/internal/utils"
	"github.com/skids-health/skids-sync/models"
)

// authService is the concrete implementation of AuthService. It handles user
// registration, credential verification, and JWT token lifecycle using a
// UserRepository for persistence and argon2id for password hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// hasher derives and verifies the stored password hashes.
	hasher crypto.PasswordHasher

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given
// UserRepository and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, cfg config.Auth, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		hasher:         crypto.NewPasswordHasher(),
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		logger:         logger,
	}
}

// RegisterUser creates a new user account.
//
// Returns the persisted user (with a server-assigned UserID) or:
//   - ErrInvalidDataProvided if Login or Password is empty.
//   - A wrapped storage error if the repository call fails (e.g. login
//     already taken — see store.ErrLoginAlreadyExists).
func (a *authService) RegisterUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if user.Login == "" || user.Password == "" {
		log.Error().Str("login", user.Login).Msg("invalid user data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	encoded, err := a.hasher.HashPassword(user.Password)
	if err != nil {
		log.Err(err).Str("func", "*authService.RegisterUser").Msg("error hashing password")
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}
	user.Password = encoded

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("login", user.Login).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login verifies the provided credentials against the stored argon2id hash.
//
// Returns the stored user record or:
//   - ErrInvalidDataProvided if Login or Password is empty.
//   - ErrWrongCredentials if the user is unknown or the password mismatches.
func (a *authService) Login(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if user.Login == "" || user.Password == "" {
		log.Error().Str("login", user.Login).Msg("invalid user data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByLogin(ctx, user.Login)
	if err != nil {
		log.Err(err).Str("login", user.Login).Msg("user lookup ended with error")
		return models.User{}, ErrWrongCredentials
	}

	ok, err := a.hasher.VerifyPassword(user.Password, foundUser.Password)
	if err != nil {
		log.Err(err).Str("func", "*authService.Login").Msg("error verifying password")
		return models.User{}, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return models.User{}, ErrWrongCredentials
	}

	return foundUser, nil
}

// GenerateToken issues a signed HMAC-SHA256 JWT for the user.
func (a *authService) GenerateToken(ctx context.Context, user models.User) (models.Token, error) {
	log := logger.FromContext(ctx)

	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		log.Err(err).Str("func", "*authService.GenerateToken").Int64("user_id", user.UserID).
			Msg("error generating token")
		return models.Token{}, fmt.Errorf("generate token: %w", err)
	}

	return token, nil
}

// ValidateToken verifies the signature, issuer, and expiry of a compact JWT.
func (a *authService) ValidateToken(ctx context.Context, signedToken string) (models.Token, error) {
	log := logger.FromContext(ctx)

	token, err := utils.ValidateAndParseJWTToken(signedToken, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		log.Err(err).Str("func", "*authService.ValidateToken").Msg("token rejected")
		return models.Token{}, fmt.Errorf("validate token: %w", err)
	}

	return token, nil
}
