package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/emre/clubsphere/internal/app/models"
	"github.com/emre/clubsphere/internal/app/models/dto"
	"github.com/emre/clubsphere/internal/metrics"
	"github.com/emre/clubsphere/internal/pkg/apperrors"
	"github.com/emre/clubsphere/internal/pkg/helpers"
)

// clubRepository is the slice of the club repository the club service needs
type clubRepository interface {
	Create(ctx context.Context, club *models.Club) error
	GetByID(ctx context.Context, id int64) (*models.Club, error)
	GetAll(ctx context.Context, status, search *string, page, pageSize int) ([]*models.Club, int64, error)
	Update(ctx context.Context, club *models.Club) error
	Approve(ctx context.Context, clubID int64) error
	Reject(ctx context.Context, clubID int64) error
	Delete(ctx context.Context, id int64) error
}

// membershipRepository is the slice of the membership repository club and
// announcement services need
type membershipRepository interface {
	AddMember(ctx context.Context, userID, clubID int64) (int64, error)
	RemoveMember(ctx context.Context, userID, clubID int64) error
	IsMember(ctx context.Context, userID, clubID int64) (bool, error)
	GetMembersByClubID(ctx context.Context, clubID int64, page, pageSize int) ([]*models.ClubMembership, int64, error)
	CountByClubID(ctx context.Context, clubID int64) (int, error)
}

// clubUserRepository is the slice of the user repository the club service needs
type clubUserRepository interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// authorizer answers permission checks for club-scoped operations
type authorizer interface {
	ValidateGlobalAdmin(ctx context.Context, userID int64) error
	ValidateClubAdmin(ctx context.Context, userID, clubID int64) error
	IsGlobalAdmin(ctx context.Context, userID int64) (bool, error)
	IsClubAdmin(ctx context.Context, userID, clubID int64) (bool, error)
	InvalidateClubAdmin(clubID int64)
}

// ClubService defines the interface for club operations
type ClubService interface {
	ProposeClub(ctx context.Context, userID int64, req *dto.CreateClubRequest) (*dto.ClubResponse, error)
	GetAllClubs(ctx context.Context, filter *dto.ClubFilterRequest) (*dto.ClubListResponse, error)
	GetClubByID(ctx context.Context, id int64) (*dto.ClubDetailResponse, error)
	UpdateClub(ctx context.Context, userID, clubID int64, req *dto.UpdateClubRequest) (*dto.ClubResponse, error)
	ApproveClub(ctx context.Context, userID, clubID int64) error
	RejectClub(ctx context.Context, userID, clubID int64) error
	DeleteClub(ctx context.Context, userID, clubID int64) error
	JoinClub(ctx context.Context, userID, clubID int64) error
	LeaveClub(ctx context.Context, userID, clubID int64) error
	AddMember(ctx context.Context, actorID, clubID int64, email string) error
	RemoveMember(ctx context.Context, actorID, clubID, userID int64) error
	GetClubMembers(ctx context.Context, userID, clubID int64, page, pageSize int) (*dto.ClubMemberListResponse, error)
}

// clubServiceImpl implements ClubService
type clubServiceImpl struct {
	clubRepo       clubRepository
	membershipRepo membershipRepository
	userRepo       clubUserRepository
	authz          authorizer
	metrics        *metrics.Registry
	logger         zerolog.Logger
}

// NewClubService creates a new ClubService
func NewClubService(
	clubRepo clubRepository,
	membershipRepo membershipRepository,
	userRepo clubUserRepository,
	authz authorizer,
	metricsReg *metrics.Registry,
	logger zerolog.Logger,
) ClubService {
	return &clubServiceImpl{
		clubRepo:       clubRepo,
		membershipRepo: membershipRepo,
		userRepo:       userRepo,
		authz:          authz,
		metrics:        metricsReg,
		logger:         logger,
	}
}

// ProposeClub creates a club in PENDING state with the proposer as its admin
func (s *clubServiceImpl) ProposeClub(ctx context.Context, userID int64, req *dto.CreateClubRequest) (*dto.ClubResponse, error) {
	club := &models.Club{
		Name:        req.Name,
		Description: req.Description,
		AdminID:     userID,
		LogoURL:     req.LogoURL,
	}

	if err := s.clubRepo.Create(ctx, club); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("clubID", club.ID).
		Int64("adminID", userID).
		Msg("Club proposed")

	resp := dto.FromClub(club)
	return &resp, nil
}

// GetAllClubs retrieves clubs with filtering and pagination. Non-admin
// callers should filter on APPROVED; the controller decides visibility.
func (s *clubServiceImpl) GetAllClubs(ctx context.Context, filter *dto.ClubFilterRequest) (*dto.ClubListResponse, error) {
	clubs, total, err := s.clubRepo.GetAll(ctx, filter.Status, filter.Search, filter.Page, filter.PageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ClubResponse, 0, len(clubs))
	for _, club := range clubs {
		resp := dto.FromClub(club)
		count, err := s.membershipRepo.CountByClubID(ctx, club.ID)
		if err != nil {
			s.logger.Warn().Err(err).Int64("clubID", club.ID).Msg("Failed to count club members")
		} else {
			resp.MemberCount = count
		}
		responses = append(responses, resp)
	}

	return &dto.ClubListResponse{
		Clubs:          responses,
		PaginationInfo: helpers.NewPaginationInfo(total, filter.Page, filter.PageSize),
	}, nil
}

// GetClubByID retrieves a club with its admin and member list
func (s *clubServiceImpl) GetClubByID(ctx context.Context, id int64) (*dto.ClubDetailResponse, error) {
	club, err := s.clubRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &dto.ClubDetailResponse{ClubResponse: dto.FromClub(club)}

	admin, err := s.userRepo.GetByID(ctx, club.AdminID)
	if err != nil {
		s.logger.Warn().Err(err).Int64("clubID", id).Msg("Failed to load club admin")
	} else {
		adminResp := dto.FromUser(admin)
		detail.Admin = &adminResp
	}

	memberships, total, err := s.membershipRepo.GetMembersByClubID(ctx, id, 1, helpers.MaxPageSize)
	if err != nil {
		return nil, err
	}
	detail.MemberCount = int(total)
	for _, m := range memberships {
		member := dto.ClubMemberResponse{
			UserID:   m.UserID,
			JoinDate: m.JoinDate,
		}
		if m.User != nil {
			member.FirstName = m.User.FirstName
			member.LastName = m.User.LastName
			member.Email = m.User.Email
		}
		detail.Members = append(detail.Members, member)
	}

	return detail, nil
}

// UpdateClub updates a club's editable fields. Club admin only.
func (s *clubServiceImpl) UpdateClub(ctx context.Context, userID, clubID int64, req *dto.UpdateClubRequest) (*dto.ClubResponse, error) {
	if err := s.authz.ValidateClubAdmin(ctx, userID, clubID); err != nil {
		return nil, err
	}

	club, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		return nil, err
	}

	club.Name = req.Name
	club.Description = req.Description
	club.LogoURL = req.LogoURL

	if err := s.clubRepo.Update(ctx, club); err != nil {
		return nil, err
	}

	resp := dto.FromClub(club)
	return &resp, nil
}

// ApproveClub approves a pending club. Platform admin only. Approval and the
// admin's founding membership commit atomically; a club already decided
// returns ErrClubNotPending.
func (s *clubServiceImpl) ApproveClub(ctx context.Context, userID, clubID int64) error {
	if err := s.authz.ValidateGlobalAdmin(ctx, userID); err != nil {
		return err
	}

	if err := s.clubRepo.Approve(ctx, clubID); err != nil {
		return err
	}

	s.metrics.ClubDecisionsTotal.WithLabelValues("approved").Inc()
	s.logger.Info().Int64("clubID", clubID).Int64("decidedBy", userID).Msg("Club approved")
	return nil
}

// RejectClub rejects a pending club. Platform admin only.
func (s *clubServiceImpl) RejectClub(ctx context.Context, userID, clubID int64) error {
	if err := s.authz.ValidateGlobalAdmin(ctx, userID); err != nil {
		return err
	}

	if err := s.clubRepo.Reject(ctx, clubID); err != nil {
		return err
	}

	s.metrics.ClubDecisionsTotal.WithLabelValues("rejected").Inc()
	s.logger.Info().Int64("clubID", clubID).Int64("decidedBy", userID).Msg("Club rejected")
	return nil
}

// DeleteClub deletes a club. Platform admin only.
func (s *clubServiceImpl) DeleteClub(ctx context.Context, userID, clubID int64) error {
	if err := s.authz.ValidateGlobalAdmin(ctx, userID); err != nil {
		return err
	}

	if err := s.clubRepo.Delete(ctx, clubID); err != nil {
		return err
	}

	s.authz.InvalidateClubAdmin(clubID)
	s.logger.Info().Int64("clubID", clubID).Msg("Club deleted")
	return nil
}

// JoinClub adds the user to an approved club. A duplicate join resolves to
// ErrMembershipExists through the unique constraint, never a second row.
func (s *clubServiceImpl) JoinClub(ctx context.Context, userID, clubID int64) error {
	club, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		return err
	}
	if club.Status != models.ClubStatusApproved {
		return apperrors.NewBadRequestError("club is not open for membership")
	}

	if _, err := s.membershipRepo.AddMember(ctx, userID, clubID); err != nil {
		return err
	}

	s.logger.Debug().Int64("userID", userID).Int64("clubID", clubID).Msg("User joined club")
	return nil
}

// LeaveClub removes the user from a club. The club's admin cannot leave
// their own club; the club would be left without an owner.
func (s *clubServiceImpl) LeaveClub(ctx context.Context, userID, clubID int64) error {
	isAdmin, err := s.authz.IsClubAdmin(ctx, userID, clubID)
	if err != nil {
		return err
	}
	if isAdmin {
		return apperrors.NewBadRequestError("club admin cannot leave their own club")
	}

	return s.membershipRepo.RemoveMember(ctx, userID, clubID)
}

// AddMember resolves an email to a user and adds them to the club on
// behalf of its admin.
func (s *clubServiceImpl) AddMember(ctx context.Context, actorID, clubID int64, email string) error {
	if err := s.authz.ValidateClubAdmin(ctx, actorID, clubID); err != nil {
		return err
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	if _, err := s.membershipRepo.AddMember(ctx, user.ID, clubID); err != nil {
		return err
	}

	s.logger.Debug().
		Int64("userID", user.ID).
		Int64("clubID", clubID).
		Int64("addedBy", actorID).
		Msg("Member added to club")
	return nil
}

// RemoveMember removes a user from a club on behalf of its admin
func (s *clubServiceImpl) RemoveMember(ctx context.Context, actorID, clubID, userID int64) error {
	if err := s.authz.ValidateClubAdmin(ctx, actorID, clubID); err != nil {
		return err
	}

	isAdmin, err := s.authz.IsClubAdmin(ctx, userID, clubID)
	if err != nil {
		return err
	}
	if isAdmin {
		return apperrors.NewBadRequestError("club admin cannot be removed from their own club")
	}

	return s.membershipRepo.RemoveMember(ctx, userID, clubID)
}

// GetClubMembers retrieves the member list. Members and admins only.
func (s *clubServiceImpl) GetClubMembers(ctx context.Context, userID, clubID int64, page, pageSize int) (*dto.ClubMemberListResponse, error) {
	if err := s.validateMemberOrAdmin(ctx, userID, clubID); err != nil {
		return nil, err
	}

	memberships, total, err := s.membershipRepo.GetMembersByClubID(ctx, clubID, page, pageSize)
	if err != nil {
		return nil, err
	}

	resp := &dto.ClubMemberListResponse{
		Members:        make([]dto.ClubMemberResponse, 0, len(memberships)),
		PaginationInfo: helpers.NewPaginationInfo(total, page, pageSize),
	}
	for _, m := range memberships {
		member := dto.ClubMemberResponse{
			UserID:   m.UserID,
			JoinDate: m.JoinDate,
		}
		if m.User != nil {
			member.FirstName = m.User.FirstName
			member.LastName = m.User.LastName
			member.Email = m.User.Email
		}
		resp.Members = append(resp.Members, member)
	}

	return resp, nil
}

// validateMemberOrAdmin allows club members, the club admin, and global admins
func (s *clubServiceImpl) validateMemberOrAdmin(ctx context.Context, userID, clubID int64) error {
	isMember, err := s.membershipRepo.IsMember(ctx, userID, clubID)
	if err != nil {
		return err
	}
	if isMember {
		return nil
	}
	return s.authz.ValidateClubAdmin(ctx, userID, clubID)
}
