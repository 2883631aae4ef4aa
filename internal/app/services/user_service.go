package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/emre/clubsphere/internal/app/models"
	"github.com/emre/clubsphere/internal/app/models/dto"
	"github.com/emre/clubsphere/internal/pkg/apperrors"
	"github.com/emre/clubsphere/internal/pkg/auth"
	"github.com/emre/clubsphere/internal/pkg/helpers"
)

// userRepository is the slice of the user repository the user service needs
type userRepository interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetAll(ctx context.Context, role, email, name *string, page, pageSize int) ([]*models.User, int64, error)
	UpdateProfile(ctx context.Context, userID int64, firstName, lastName string, department *string, year *int) error
	UpdatePassword(ctx context.Context, userID int64, hashedPassword string) error
}

// tokenRevoker revokes refresh tokens after credential changes
type tokenRevoker interface {
	RevokeAllUserTokens(ctx context.Context, userID int64) error
}

// userClubRepository resolves the clubs a user belongs to
type userClubRepository interface {
	GetClubIDsByUserID(ctx context.Context, userID int64) ([]int64, error)
}

// UserService defines the interface for user operations
type UserService interface {
	GetProfile(ctx context.Context, userID int64) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	ChangePassword(ctx context.Context, userID int64, req *dto.ChangePasswordRequest) error
	GetAllUsers(ctx context.Context, actorID int64, filter *dto.UserFilterRequest) (*dto.UserListResponse, error)
	GetMyClubIDs(ctx context.Context, userID int64) ([]int64, error)
}

// userServiceImpl implements UserService
type userServiceImpl struct {
	userRepo       userRepository
	membershipRepo userClubRepository
	tokenRepo      tokenRevoker
	authz          authorizer
	logger         zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	userRepo userRepository,
	membershipRepo userClubRepository,
	tokenRepo tokenRevoker,
	authz authorizer,
	logger zerolog.Logger,
) UserService {
	return &userServiceImpl{
		userRepo:       userRepo,
		membershipRepo: membershipRepo,
		tokenRepo:      tokenRepo,
		authz:          authz,
		logger:         logger,
	}
}

// GetProfile retrieves the caller's profile, including administered clubs
func (s *userServiceImpl) GetProfile(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.FromUser(user)
	return &resp, nil
}

// UpdateProfile updates the caller's profile fields
func (s *userServiceImpl) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if err := s.userRepo.UpdateProfile(ctx, userID, req.FirstName, req.LastName, req.Department, req.Year); err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, userID)
}

// ChangePassword verifies the current password, stores a new hash, and
// revokes all outstanding refresh tokens.
func (s *userServiceImpl) ChangePassword(ctx context.Context, userID int64, req *dto.ChangePasswordRequest) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(user.Password, req.CurrentPassword) {
		return apperrors.ErrInvalidCredentials
	}

	hashedPassword, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, hashedPassword); err != nil {
		return err
	}

	if err := s.tokenRepo.RevokeAllUserTokens(ctx, userID); err != nil {
		s.logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to revoke refresh tokens after password change")
	}

	s.logger.Info().Int64("userID", userID).Msg("Password changed")
	return nil
}

// GetAllUsers lists users with filtering. Platform admin only.
func (s *userServiceImpl) GetAllUsers(ctx context.Context, actorID int64, filter *dto.UserFilterRequest) (*dto.UserListResponse, error) {
	if err := s.authz.ValidateGlobalAdmin(ctx, actorID); err != nil {
		return nil, err
	}

	users, total, err := s.userRepo.GetAll(ctx, filter.Role, filter.Email, filter.Name, filter.Page, filter.PageSize)
	if err != nil {
		return nil, err
	}

	resp := &dto.UserListResponse{
		Users:          make([]dto.UserResponse, 0, len(users)),
		PaginationInfo: helpers.NewPaginationInfo(total, filter.Page, filter.PageSize),
	}
	for _, user := range users {
		resp.Users = append(resp.Users, dto.FromUser(user))
	}
	return resp, nil
}

// GetMyClubIDs lists the ids of clubs the caller belongs to
func (s *userServiceImpl) GetMyClubIDs(ctx context.Context, userID int64) ([]int64, error) {
	return s.membershipRepo.GetClubIDsByUserID(ctx, userID)
}
