package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/emre/clubsphere/internal/app/models"
	"github.com/emre/clubsphere/internal/config"
	"github.com/emre/clubsphere/internal/pkg/apperrors"
	"github.com/emre/clubsphere/internal/pkg/cache"
)

// userGetter is the slice of the user repository authorization needs
type userGetter interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// clubGetter is the slice of the club repository authorization needs
type clubGetter interface {
	GetByID(ctx context.Context, id int64) (*models.Club, error)
}

const clubAdminCacheTTL = 30 * time.Second

// AuthorizationService answers who may do what. Global admin status combines
// the ADMIN role with the configured super-admin allowlist; club admin status
// is derived from the club's admin_id and never stored on the user.
type AuthorizationService struct {
	userRepo userGetter
	clubRepo clubGetter
	cfg      *config.Config
	cache    *cache.Service
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(userRepo userGetter, clubRepo clubGetter, cfg *config.Config, cacheService *cache.Service) *AuthorizationService {
	return &AuthorizationService{
		userRepo: userRepo,
		clubRepo: clubRepo,
		cfg:      cfg,
		cache:    cacheService,
	}
}

// IsGlobalAdmin checks if the user holds platform-wide admin rights
func (s *AuthorizationService) IsGlobalAdmin(ctx context.Context, userID int64) (bool, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.RoleType == models.RoleAdmin && s.cfg.IsSuperAdmin(user.Email), nil
}

// ValidateGlobalAdmin returns ErrPermissionDenied unless the user is a global admin
func (s *AuthorizationService) ValidateGlobalAdmin(ctx context.Context, userID int64) error {
	isAdmin, err := s.IsGlobalAdmin(ctx, userID)
	if err != nil {
		return err
	}
	if !isAdmin {
		return apperrors.NewForbiddenError("this action requires platform admin rights")
	}
	return nil
}

// IsClubAdmin checks if the user administers the given club
func (s *AuthorizationService) IsClubAdmin(ctx context.Context, userID, clubID int64) (bool, error) {
	adminID, err := s.clubAdminID(ctx, clubID)
	if err != nil {
		return false, err
	}
	return adminID == userID, nil
}

// ValidateClubAdmin returns ErrPermissionDenied unless the user administers
// the club or is a global admin
func (s *AuthorizationService) ValidateClubAdmin(ctx context.Context, userID, clubID int64) error {
	isClubAdmin, err := s.IsClubAdmin(ctx, userID, clubID)
	if err != nil {
		return err
	}
	if isClubAdmin {
		return nil
	}

	isGlobalAdmin, err := s.IsGlobalAdmin(ctx, userID)
	if err != nil {
		return err
	}
	if isGlobalAdmin {
		return nil
	}

	return apperrors.NewForbiddenError("this action requires club admin rights")
}

// clubAdminID resolves a club's admin id through a short-lived cache. The TTL
// keeps the hot permission check off the database without letting a
// transferred club stay stale for long.
func (s *AuthorizationService) clubAdminID(ctx context.Context, clubID int64) (int64, error) {
	key := fmt.Sprintf("club-admin:%d", clubID)
	val, err := s.cache.GetOrSet(key, clubAdminCacheTTL, func() (any, error) {
		club, err := s.clubRepo.GetByID(ctx, clubID)
		if err != nil {
			return nil, err
		}
		return club.AdminID, nil
	})
	if err != nil {
		return 0, err
	}
	adminID, ok := val.(int64)
	if !ok {
		return 0, fmt.Errorf("unexpected cache value for %s", key)
	}
	return adminID, nil
}

// InvalidateClubAdmin drops the cached admin id after a club changes hands
func (s *AuthorizationService) InvalidateClubAdmin(clubID int64) {
	s.cache.Delete(fmt.Sprintf("club-admin:%d", clubID))
}
