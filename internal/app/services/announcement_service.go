package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/emre/clubsphere/internal/app/models"
	"github.com/emre/clubsphere/internal/app/models/dto"
	"github.com/emre/clubsphere/internal/pkg/apperrors"
	"github.com/emre/clubsphere/internal/pkg/helpers"
)

// announcementRepository is the slice of the announcement repository the
// announcement service needs
type announcementRepository interface {
	Create(ctx context.Context, announcement *models.Announcement) error
	GetByID(ctx context.Context, id int64) (*models.Announcement, error)
	GetByClubID(ctx context.Context, clubID int64, page, pageSize int) ([]*models.Announcement, int64, error)
	Delete(ctx context.Context, id int64) error
}

// announcementMembershipRepository answers membership checks for visibility
type announcementMembershipRepository interface {
	IsMember(ctx context.Context, userID, clubID int64) (bool, error)
}

// AnnouncementService defines the interface for announcement operations
type AnnouncementService interface {
	CreateAnnouncement(ctx context.Context, userID, clubID int64, req *dto.CreateAnnouncementRequest) (*dto.AnnouncementResponse, error)
	GetClubAnnouncements(ctx context.Context, userID, clubID int64, page, pageSize int) (*dto.AnnouncementListResponse, error)
	DeleteAnnouncement(ctx context.Context, userID, announcementID int64) error
}

// announcementServiceImpl implements AnnouncementService
type announcementServiceImpl struct {
	announcementRepo announcementRepository
	membershipRepo   announcementMembershipRepository
	authz            authorizer
	logger           zerolog.Logger
}

// NewAnnouncementService creates a new AnnouncementService
func NewAnnouncementService(
	announcementRepo announcementRepository,
	membershipRepo announcementMembershipRepository,
	authz authorizer,
	logger zerolog.Logger,
) AnnouncementService {
	return &announcementServiceImpl{
		announcementRepo: announcementRepo,
		membershipRepo:   membershipRepo,
		authz:            authz,
		logger:           logger,
	}
}

// CreateAnnouncement posts an announcement to a club. Club admin only.
func (s *announcementServiceImpl) CreateAnnouncement(ctx context.Context, userID, clubID int64, req *dto.CreateAnnouncementRequest) (*dto.AnnouncementResponse, error) {
	if err := s.authz.ValidateClubAdmin(ctx, userID, clubID); err != nil {
		return nil, err
	}

	announcement := &models.Announcement{
		ClubID:  clubID,
		Title:   req.Title,
		Content: req.Content,
	}
	if err := s.announcementRepo.Create(ctx, announcement); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("announcementID", announcement.ID).
		Int64("clubID", clubID).
		Msg("Announcement created")

	resp := dto.FromAnnouncement(announcement)
	return &resp, nil
}

// GetClubAnnouncements lists a club's announcements, newest first.
// Visible only to club members and admins.
func (s *announcementServiceImpl) GetClubAnnouncements(ctx context.Context, userID, clubID int64, page, pageSize int) (*dto.AnnouncementListResponse, error) {
	isMember, err := s.membershipRepo.IsMember(ctx, userID, clubID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		if err := s.authz.ValidateClubAdmin(ctx, userID, clubID); err != nil {
			return nil, apperrors.NewForbiddenError("announcements are visible to club members only")
		}
	}

	announcements, total, err := s.announcementRepo.GetByClubID(ctx, clubID, page, pageSize)
	if err != nil {
		return nil, err
	}

	resp := &dto.AnnouncementListResponse{
		Announcements:  make([]dto.AnnouncementResponse, 0, len(announcements)),
		PaginationInfo: helpers.NewPaginationInfo(total, page, pageSize),
	}
	for _, a := range announcements {
		resp.Announcements = append(resp.Announcements, dto.FromAnnouncement(a))
	}
	return resp, nil
}

// DeleteAnnouncement deletes an announcement. Club admin only.
func (s *announcementServiceImpl) DeleteAnnouncement(ctx context.Context, userID, announcementID int64) error {
	announcement, err := s.announcementRepo.GetByID(ctx, announcementID)
	if err != nil {
		return err
	}
	if err := s.authz.ValidateClubAdmin(ctx, userID, announcement.ClubID); err != nil {
		return err
	}

	return s.announcementRepo.Delete(ctx, announcementID)
}
