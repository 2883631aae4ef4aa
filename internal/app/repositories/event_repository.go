package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emre/clubsphere/internal/app/models"
	"github.com/emre/clubsphere/internal/pkg/apperrors"
	"github.com/emre/clubsphere/internal/pkg/dberrors"
)

// EventRepository handles database operations for club events
type EventRepository struct {
	db *pgxpool.Pool
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

// Create inserts a new event for a club
func (r *EventRepository) Create(ctx context.Context, event *models.ClubEvent) error {
	query := `
		INSERT INTO events (club_id, name, description, date_time, location, banner_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, attendance_count, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		event.ClubID, event.Name, event.Description, event.DateTime, event.Location, event.BannerURL,
	).Scan(&event.ID, &event.AttendanceCount, &event.CreatedAt, &event.UpdatedAt)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrClubNotFound
		}
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// GetByID retrieves an event by ID. Events live in one global table, so this
// is a single indexed lookup regardless of the owning club.
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*models.ClubEvent, error) {
	query := `
		SELECT id, club_id, name, description, date_time, location, banner_url,
			report, attendance_count, created_at, updated_at
		FROM events
		WHERE id = $1
	`

	var event models.ClubEvent
	err := r.db.QueryRow(ctx, query, id).Scan(
		&event.ID,
		&event.ClubID,
		&event.Name,
		&event.Description,
		&event.DateTime,
		&event.Location,
		&event.BannerURL,
		&event.Report,
		&event.AttendanceCount,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &event, nil
}

// GetAll retrieves events with filtering and pagination
func (r *EventRepository) GetAll(ctx context.Context, filter EventFilter, page, pageSize int) ([]*models.ClubEvent, int64, error) {
	query := `
		SELECT id, club_id, name, description, date_time, location, banner_url,
			report, attendance_count, created_at, updated_at,
			COUNT(*) OVER() AS total_count
		FROM events
		WHERE 1=1
	`

	args := []interface{}{}
	argIndex := 1

	if filter.ClubID != nil {
		query += fmt.Sprintf(" AND club_id = $%d", argIndex)
		args = append(args, *filter.ClubID)
		argIndex++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND date_time >= $%d", argIndex)
		args = append(args, *filter.From)
		argIndex++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND date_time <= $%d", argIndex)
		args = append(args, *filter.To)
		argIndex++
	}
	if filter.UpcomingOnly {
		query += " AND date_time >= NOW()"
	}

	offset := (page - 1) * pageSize
	query += " ORDER BY date_time"
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var events []*models.ClubEvent
	var total int64
	for rows.Next() {
		var event models.ClubEvent
		err := rows.Scan(
			&event.ID,
			&event.ClubID,
			&event.Name,
			&event.Description,
			&event.DateTime,
			&event.Location,
			&event.BannerURL,
			&event.Report,
			&event.AttendanceCount,
			&event.CreatedAt,
			&event.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		events = append(events, &event)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	return events, total, nil
}

// Update updates an event's editable fields
func (r *EventRepository) Update(ctx context.Context, event *models.ClubEvent) error {
	query := `
		UPDATE events
		SET name = $1, description = $2, date_time = $3, location = $4, banner_url = $5, updated_at = NOW()
		WHERE id = $6
	`

	result, err := r.db.Exec(ctx, query,
		event.Name, event.Description, event.DateTime, event.Location, event.BannerURL, event.ID)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}

	return nil
}

// SetReport stores the generated report for an event, replacing any existing
// one. Last write wins.
func (r *EventRepository) SetReport(ctx context.Context, eventID int64, report string) error {
	query := `UPDATE events SET report = $1, updated_at = NOW() WHERE id = $2`

	result, err := r.db.Exec(ctx, query, report, eventID)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}

	return nil
}

// Delete deletes an event. Registrations cascade.
func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	query := squirrel.Delete("events").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}

	return nil
}

// EventFilter holds optional predicates for event listings
type EventFilter struct {
	ClubID       *int64
	From         *time.Time
	To           *time.Time
	UpcomingOnly bool
}
