package services

import (
	"context"
	"errors"

	"github.com/campusdesk/academics/internal/app/models"
	"github.com/campusdesk/academics/internal/app/models/dto"
	"github.com/campusdesk/academics/internal/pkg/apperrors"
	"github.com/campusdesk/academics/internal/pkg/auth"
	"github.com/rs/zerolog"
)

// AccountStore looks up login accounts.
type AccountStore interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

// AuthService handles authentication operations
type AuthService struct {
	users      AccountStore
	hasher     *auth.PasswordHasher
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(users AccountStore, hasher *auth.PasswordHasher, jwtService *auth.JWTService, logger zerolog.Logger) *AuthService {
	return &AuthService{
		users:      users,
		hasher:     hasher,
		jwtService: jwtService,
		logger:     logger.With().Str("component", "auth_service").Logger(),
	}
}

// Login checks the credentials and issues an access token.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Check(user.PasswordHash, req.Password) {
		s.logger.Warn().Str("email", req.Email).Msg("Failed login attempt")
		return nil, apperrors.ErrInvalidCredentials
	}
	if user.Status == models.StatusBlocked {
		return nil, apperrors.ErrAccountDisabled
	}

	token, expiresIn, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Error generating access token")
		return nil, err
	}

	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresIn:   expiresIn,
		},
		User:                user,
		NeedsPasswordChange: user.NeedsPasswordChange,
	}, nil
}

// GetProfile returns the account of the authenticated user.
func (s *AuthService) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	return s.users.GetUserByID(ctx, userID)
}
