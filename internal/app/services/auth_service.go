package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/emre/clubsphere/internal/app/models"
	"github.com/emre/clubsphere/internal/app/models/dto"
	"github.com/emre/clubsphere/internal/pkg/apperrors"
	"github.com/emre/clubsphere/internal/pkg/auth"
	"github.com/emre/clubsphere/internal/pkg/validation"
)

// authUserRepository is the slice of the user repository auth needs
type authUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, userID int64) error
}

// refreshTokenRepository is the slice of the token repository auth needs
type refreshTokenRepository interface {
	CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error
	GetTokenByValue(ctx context.Context, token string) (int64, time.Time, bool, error)
	RevokeToken(ctx context.Context, token string) error
}

// AuthService defines the interface for authentication operations
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
}

// authServiceImpl implements AuthService
type authServiceImpl struct {
	userRepo   authUserRepository
	tokenRepo  refreshTokenRepository
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo authUserRepository,
	tokenRepo refreshTokenRepository,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) AuthService {
	return &authServiceImpl{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Register creates a new student account and returns a token pair
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if !validation.CompiledPatterns.Email.MatchString(req.Email) {
		return nil, apperrors.NewValidationError("email format is invalid")
	}
	if len(req.Password) < validation.PasswordMinLength {
		return nil, apperrors.NewValidationError("password must be at least 8 characters")
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		return nil, err
	}

	user := &models.User{
		Email:      req.Email,
		Password:   hashedPassword,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		RoleType:   models.RoleStudent,
		Department: req.Department,
		Year:       req.Year,
		IsActive:   true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		s.logger.Error().Err(err).Str("email", req.Email).Msg("Failed to create user")
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Msg("User registered")

	return s.issueTokens(ctx, user)
}

// Login authenticates a user and returns a token pair
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, apperrors.NewForbiddenError("account is deactivated")
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to update last login time")
	}

	s.logger.Debug().Int64("userID", user.ID).Msg("User logged in")

	return s.issueTokens(ctx, user)
}

// RefreshToken rotates a refresh token into a new token pair
func (s *authServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	userID, _, _, err := s.tokenRepo.GetTokenByValue(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.NewForbiddenError("account is deactivated")
	}

	// Rotate: revoke the presented token before issuing a replacement
	if err := s.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		return nil, err
	}

	accessToken, newRefreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, err
	}
	if err := s.tokenRepo.CreateToken(ctx, newRefreshToken, user.ID, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:           accessToken,
		TokenType:             "Bearer",
		ExpiresIn:             int64(expiresIn),
		RefreshToken:          newRefreshToken,
		RefreshTokenExpiresIn: int64(refreshExpiresIn),
	}, nil
}

// Logout revokes the presented refresh token
func (s *authServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	err := s.tokenRepo.RevokeToken(ctx, refreshToken)
	if err != nil && !errors.Is(err, apperrors.ErrTokenNotFound) {
		return err
	}
	return nil
}

func (s *authServiceImpl) issueTokens(ctx context.Context, user *models.User) (*dto.AuthResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to generate token pair")
		return nil, err
	}

	if err := s.tokenRepo.CreateToken(ctx, refreshToken, user.ID, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken:           accessToken,
			TokenType:             "Bearer",
			ExpiresIn:             int64(expiresIn),
			RefreshToken:          refreshToken,
			RefreshTokenExpiresIn: int64(refreshExpiresIn),
		},
		User: dto.FromUser(user),
	}, nil
}
