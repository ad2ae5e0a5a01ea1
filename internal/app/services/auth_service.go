package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/denizatik/edutrack/internal/app/models"
	"github.com/denizatik/edutrack/internal/app/models/dto"
	"github.com/denizatik/edutrack/internal/app/repositories"
	"github.com/denizatik/edutrack/internal/pkg/apperrors"
	"github.com/denizatik/edutrack/internal/pkg/auth"
)

// AuthService defines the interface for identity operations
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, username, password string) (*dto.TokenResponse, error)
	GetProfile(ctx context.Context, userID int64) (*dto.UserResponse, error)
}

// authServiceImpl implements AuthService
type authServiceImpl struct {
	userRepo   repositories.IUserRepository
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repositories.IUserRepository, jwtService *auth.JWTService, logger zerolog.Logger) AuthService {
	return &authServiceImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Register creates a new user account. The credential is stored only as a
// bcrypt hash; the role is fixed at creation.
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	if !req.RoleType.IsValid() {
		return nil, apperrors.ErrInvalidRole
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Username: req.Username,
		Password: hashed,
		RoleType: req.RoleType,
	}

	if _, err := s.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrUsernameExists) {
			return nil, apperrors.ErrUsernameExists
		}
		s.logger.Error().Err(err).Str("username", req.Username).Msg("Failed to create user")
		return nil, fmt.Errorf("error registering user: %w", err)
	}

	s.logger.Info().Int64("userID", user.ID).Str("roleType", string(user.RoleType)).Msg("User registered")

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// Login authenticates a user and issues a token with the configured login
// TTL. A missing user and a wrong password are indistinguishable to the
// caller.
func (s *authServiceImpl) Login(ctx context.Context, username, password string) (*dto.TokenResponse, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	if !auth.CheckPassword(user.Password, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwtService.GenerateLoginToken(user)
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to generate token")
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	return &dto.TokenResponse{
		Token:     token,
		TokenType: "bearer",
		ExpiresIn: expiresIn,
	}, nil
}

// GetProfile returns the identity of the given user
func (s *authServiceImpl) GetProfile(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := dto.NewUserResponse(user)
	return &resp, nil
}
