package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/emre/clubsphere/internal/app/models"
	"github.com/emre/clubsphere/internal/app/models/dto"
	"github.com/emre/clubsphere/internal/app/repositories"
	"github.com/emre/clubsphere/internal/metrics"
	"github.com/emre/clubsphere/internal/pkg/apperrors"
	"github.com/emre/clubsphere/internal/pkg/entrypass"
	"github.com/emre/clubsphere/internal/pkg/helpers"
)

// eventRepository is the slice of the event repository the event service needs
type eventRepository interface {
	Create(ctx context.Context, event *models.ClubEvent) error
	GetByID(ctx context.Context, id int64) (*models.ClubEvent, error)
	GetAll(ctx context.Context, filter repositories.EventFilter, page, pageSize int) ([]*models.ClubEvent, int64, error)
	Update(ctx context.Context, event *models.ClubEvent) error
	Delete(ctx context.Context, id int64) error
}

// registrationRepository is the slice of the registration repository the
// event service needs
type registrationRepository interface {
	Register(ctx context.Context, userID, eventID int64, signPass repositories.PassSignFn) (*models.Registration, error)
	Cancel(ctx context.Context, userID, eventID int64) error
	GetByUserAndEvent(ctx context.Context, userID, eventID int64) (*models.Registration, error)
	GetByEventID(ctx context.Context, eventID int64, page, pageSize int) ([]*models.Registration, int64, error)
	GetEventsByUserID(ctx context.Context, userID int64, page, pageSize int) ([]*models.ClubEvent, int64, error)
}

// eventClubRepository is the slice of the club repository the event service needs
type eventClubRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Club, error)
}

// EventService defines the interface for event and registration operations
type EventService interface {
	CreateEvent(ctx context.Context, userID, clubID int64, req *dto.CreateEventRequest) (*dto.EventResponse, error)
	GetEventByID(ctx context.Context, id int64) (*dto.EventResponse, error)
	GetAllEvents(ctx context.Context, filter *dto.EventFilterRequest) (*dto.EventListResponse, error)
	UpdateEvent(ctx context.Context, userID, eventID int64, req *dto.UpdateEventRequest) (*dto.EventResponse, error)
	DeleteEvent(ctx context.Context, userID, eventID int64) error

	RegisterForEvent(ctx context.Context, userID, eventID int64) (*dto.RegistrationResponse, error)
	CancelRegistration(ctx context.Context, userID, eventID int64) error
	GetMyRegistration(ctx context.Context, userID, eventID int64) (*dto.RegistrationResponse, error)
	GetEntryPassImage(ctx context.Context, userID, eventID int64) ([]byte, error)
	GetEventRegistrations(ctx context.Context, userID, eventID int64, page, pageSize int) (*dto.RegistrationListResponse, error)
	GetMyEvents(ctx context.Context, userID int64, page, pageSize int) (*dto.EventListResponse, error)
	VerifyEntryPass(ctx context.Context, userID, eventID int64, pass string) (*dto.VerifyPassResponse, error)
}

// eventServiceImpl implements EventService
type eventServiceImpl struct {
	eventRepo        eventRepository
	registrationRepo registrationRepository
	clubRepo         eventClubRepository
	authz            authorizer
	passSigner       *entrypass.Signer
	metrics          *metrics.Registry
	logger           zerolog.Logger
	now              func() time.Time
}

// NewEventService creates a new EventService
func NewEventService(
	eventRepo eventRepository,
	registrationRepo registrationRepository,
	clubRepo eventClubRepository,
	authz authorizer,
	passSigner *entrypass.Signer,
	metricsReg *metrics.Registry,
	logger zerolog.Logger,
) EventService {
	return &eventServiceImpl{
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		clubRepo:         clubRepo,
		authz:            authz,
		passSigner:       passSigner,
		metrics:          metricsReg,
		logger:           logger,
		now:              time.Now,
	}
}

// CreateEvent creates an event for a club. Club admin only, club must be
// approved, and the event must be in the future.
func (s *eventServiceImpl) CreateEvent(ctx context.Context, userID, clubID int64, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	if err := s.authz.ValidateClubAdmin(ctx, userID, clubID); err != nil {
		return nil, err
	}

	club, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		return nil, err
	}
	if club.Status != models.ClubStatusApproved {
		return nil, apperrors.NewBadRequestError("only approved clubs can host events")
	}
	if req.DateTime.Before(s.now()) {
		return nil, apperrors.ErrEventInPast
	}

	event := &models.ClubEvent{
		ClubID:      clubID,
		Name:        req.Name,
		Description: req.Description,
		DateTime:    req.DateTime,
		Location:    req.Location,
		BannerURL:   req.BannerURL,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("eventID", event.ID).Int64("clubID", clubID).Msg("Event created")

	resp := dto.FromEvent(event)
	return &resp, nil
}

// GetEventByID retrieves an event by ID
func (s *eventServiceImpl) GetEventByID(ctx context.Context, id int64) (*dto.EventResponse, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.FromEvent(event)
	return &resp, nil
}

// GetAllEvents retrieves events with filtering and pagination
func (s *eventServiceImpl) GetAllEvents(ctx context.Context, filter *dto.EventFilterRequest) (*dto.EventListResponse, error) {
	repoFilter := repositories.EventFilter{
		ClubID: filter.ClubID,
		From:   filter.From,
		To:     filter.To,
	}
	if filter.Upcoming != nil && *filter.Upcoming {
		repoFilter.UpcomingOnly = true
	}

	events, total, err := s.eventRepo.GetAll(ctx, repoFilter, filter.Page, filter.PageSize)
	if err != nil {
		return nil, err
	}

	return &dto.EventListResponse{
		Events:         eventResponses(events),
		PaginationInfo: helpers.NewPaginationInfo(total, filter.Page, filter.PageSize),
	}, nil
}

// UpdateEvent updates an event's editable fields. Club admin only.
func (s *eventServiceImpl) UpdateEvent(ctx context.Context, userID, eventID int64, req *dto.UpdateEventRequest) (*dto.EventResponse, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.ValidateClubAdmin(ctx, userID, event.ClubID); err != nil {
		return nil, err
	}

	event.Name = req.Name
	event.Description = req.Description
	event.DateTime = req.DateTime
	event.Location = req.Location
	event.BannerURL = req.BannerURL

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}

	resp := dto.FromEvent(event)
	return &resp, nil
}

// DeleteEvent deletes an event. Club admin only.
func (s *eventServiceImpl) DeleteEvent(ctx context.Context, userID, eventID int64) error {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if err := s.authz.ValidateClubAdmin(ctx, userID, event.ClubID); err != nil {
		return err
	}

	return s.eventRepo.Delete(ctx, eventID)
}

// RegisterForEvent registers the user for an upcoming event and issues a
// signed entry pass. The registration row, the pass, and the attendance
// counter commit in one transaction; a duplicate registration returns
// ErrRegistrationExists.
func (s *eventServiceImpl) RegisterForEvent(ctx context.Context, userID, eventID int64) (*dto.RegistrationResponse, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.IsPast(s.now()) {
		return nil, apperrors.ErrEventInPast
	}

	reg, err := s.registrationRepo.Register(ctx, userID, eventID, func(registrationID int64) (string, error) {
		return s.passSigner.Sign(userID, eventID, registrationID)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RegistrationsTotal.Inc()
	s.logger.Info().
		Int64("userID", userID).
		Int64("eventID", eventID).
		Int64("registrationID", reg.ID).
		Msg("User registered for event")

	reg.Event = event
	resp := dto.FromRegistration(reg)
	return &resp, nil
}

// CancelRegistration cancels the user's registration for an upcoming event
func (s *eventServiceImpl) CancelRegistration(ctx context.Context, userID, eventID int64) error {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if event.IsPast(s.now()) {
		return apperrors.ErrEventInPast
	}

	return s.registrationRepo.Cancel(ctx, userID, eventID)
}

// GetMyRegistration retrieves the caller's registration for an event
func (s *eventServiceImpl) GetMyRegistration(ctx context.Context, userID, eventID int64) (*dto.RegistrationResponse, error) {
	reg, err := s.registrationRepo.GetByUserAndEvent(ctx, userID, eventID)
	if err != nil {
		return nil, err
	}
	resp := dto.FromRegistration(reg)
	return &resp, nil
}

// GetEntryPassImage renders the caller's entry pass as a PNG QR code
func (s *eventServiceImpl) GetEntryPassImage(ctx context.Context, userID, eventID int64) ([]byte, error) {
	reg, err := s.registrationRepo.GetByUserAndEvent(ctx, userID, eventID)
	if err != nil {
		return nil, err
	}
	return entrypass.QRCodePNG(reg.QRCode)
}

// GetEventRegistrations lists an event's registrations. Club admin only.
func (s *eventServiceImpl) GetEventRegistrations(ctx context.Context, userID, eventID int64, page, pageSize int) (*dto.RegistrationListResponse, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.ValidateClubAdmin(ctx, userID, event.ClubID); err != nil {
		return nil, err
	}

	registrations, total, err := s.registrationRepo.GetByEventID(ctx, eventID, page, pageSize)
	if err != nil {
		return nil, err
	}

	resp := &dto.RegistrationListResponse{
		Registrations:  make([]dto.RegistrationResponse, 0, len(registrations)),
		PaginationInfo: helpers.NewPaginationInfo(total, page, pageSize),
	}
	for _, reg := range registrations {
		resp.Registrations = append(resp.Registrations, dto.FromRegistration(reg))
	}
	return resp, nil
}

// GetMyEvents lists the events the caller is registered for
func (s *eventServiceImpl) GetMyEvents(ctx context.Context, userID int64, page, pageSize int) (*dto.EventListResponse, error) {
	events, total, err := s.registrationRepo.GetEventsByUserID(ctx, userID, page, pageSize)
	if err != nil {
		return nil, err
	}

	return &dto.EventListResponse{
		Events:         eventResponses(events),
		PaginationInfo: helpers.NewPaginationInfo(total, page, pageSize),
	}, nil
}

// VerifyEntryPass checks a scanned pass at the door. Club admin only. A pass
// is accepted only when its signature verifies, it names this event, and the
// registration it references still exists.
func (s *eventServiceImpl) VerifyEntryPass(ctx context.Context, userID, eventID int64, pass string) (*dto.VerifyPassResponse, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.ValidateClubAdmin(ctx, userID, event.ClubID); err != nil {
		return nil, err
	}

	claims, err := s.passSigner.Verify(pass)
	if err != nil {
		return &dto.VerifyPassResponse{Valid: false}, nil
	}
	if claims.EventID != eventID {
		return &dto.VerifyPassResponse{Valid: false}, nil
	}

	reg, err := s.registrationRepo.GetByUserAndEvent(ctx, claims.UserID, eventID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			// Pass was issued but the registration has since been cancelled
			return &dto.VerifyPassResponse{Valid: false}, nil
		}
		return nil, err
	}
	if reg.ID != claims.RegistrationID {
		return &dto.VerifyPassResponse{Valid: false}, nil
	}

	return &dto.VerifyPassResponse{
		Valid:          true,
		UserID:         claims.UserID,
		EventID:        claims.EventID,
		RegistrationID: claims.RegistrationID,
	}, nil
}

func eventResponses(events []*models.ClubEvent) []dto.EventResponse {
	responses := make([]dto.EventResponse, 0, len(events))
	for _, event := range events {
		responses = append(responses, dto.FromEvent(event))
	}
	return responses
}
