package services

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/emre/clubsphere/internal/app/models"
	"github.com/emre/clubsphere/internal/app/models/dto"
	"github.com/emre/clubsphere/internal/metrics"
	"github.com/emre/clubsphere/internal/pkg/apperrors"
	"github.com/emre/clubsphere/internal/pkg/reportgen"
)

// reportEventRepository is the slice of the event repository the report
// service needs
type reportEventRepository interface {
	GetByID(ctx context.Context, id int64) (*models.ClubEvent, error)
	SetReport(ctx context.Context, eventID int64, report string) error
}

// reportGenerator produces a narrative report from an event summary
type reportGenerator interface {
	GenerateReport(ctx context.Context, summary reportgen.EventSummary) (string, error)
}

// ReportService defines the interface for event report operations
type ReportService interface {
	GenerateReport(ctx context.Context, userID, eventID int64) (*dto.EventReportResponse, error)
	GetReport(ctx context.Context, userID, eventID int64) (*dto.EventReportResponse, error)
}

// reportServiceImpl implements ReportService
type reportServiceImpl struct {
	eventRepo reportEventRepository
	clubRepo  eventClubRepository
	authz     authorizer
	generator reportGenerator
	metrics   *metrics.Registry
	logger    zerolog.Logger
	now       func() time.Time

	// inFlight guards against concurrent generation for the same event.
	// The losing caller gets a conflict instead of a second model call.
	inFlight sync.Map
}

// NewReportService creates a new ReportService
func NewReportService(
	eventRepo reportEventRepository,
	clubRepo eventClubRepository,
	authz authorizer,
	generator reportGenerator,
	metricsReg *metrics.Registry,
	logger zerolog.Logger,
) ReportService {
	return &reportServiceImpl{
		eventRepo: eventRepo,
		clubRepo:  clubRepo,
		authz:     authz,
		generator: generator,
		metrics:   metricsReg,
		logger:    logger,
		now:       time.Now,
	}
}

// GenerateReport drafts a report for a completed event and stores it,
// replacing any previous report. The model is called at most once per
// request, never retried; a failed attempt leaves the stored report
// untouched.
func (s *reportServiceImpl) GenerateReport(ctx context.Context, userID, eventID int64) (*dto.EventReportResponse, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.ValidateClubAdmin(ctx, userID, event.ClubID); err != nil {
		return nil, err
	}
	if !event.IsPast(s.now()) {
		return nil, apperrors.NewBadRequestError("cannot generate a report for an upcoming event")
	}

	if _, busy := s.inFlight.LoadOrStore(eventID, struct{}{}); busy {
		return nil, apperrors.NewConflictError("report generation already in progress for this event")
	}
	defer s.inFlight.Delete(eventID)

	club, err := s.clubRepo.GetByID(ctx, event.ClubID)
	if err != nil {
		return nil, err
	}

	start := s.now()
	report, err := s.generator.GenerateReport(ctx, reportgen.EventSummary{
		ClubName:        club.Name,
		EventName:       event.Name,
		Description:     event.Description,
		Location:        event.Location,
		DateTime:        event.DateTime,
		AttendanceCount: event.AttendanceCount,
	})
	s.metrics.ReportGenDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.ReportGenerationTotal.WithLabelValues("failure").Inc()
		s.logger.Error().Err(err).Int64("eventID", eventID).Msg("Report generation failed")
		return nil, apperrors.NewExternalServiceError("report generation failed")
	}

	if err := s.eventRepo.SetReport(ctx, eventID, report); err != nil {
		s.metrics.ReportGenerationTotal.WithLabelValues("failure").Inc()
		return nil, err
	}

	s.metrics.ReportGenerationTotal.WithLabelValues("success").Inc()
	s.logger.Info().Int64("eventID", eventID).Msg("Event report generated")

	return &dto.EventReportResponse{EventID: eventID, Report: report}, nil
}

// GetReport retrieves the stored report for an event. Club admin only.
func (s *reportServiceImpl) GetReport(ctx context.Context, userID, eventID int64) (*dto.EventReportResponse, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.ValidateClubAdmin(ctx, userID, event.ClubID); err != nil {
		return nil, err
	}
	if event.Report == nil || *event.Report == "" {
		return nil, apperrors.NewResourceNotFoundError("no report has been generated for this event")
	}

	return &dto.EventReportResponse{EventID: eventID, Report: *event.Report}, nil
}
