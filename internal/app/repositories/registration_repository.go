package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emre/clubsphere/internal/app/models"
	"github.com/emre/clubsphere/internal/db"
	"github.com/emre/clubsphere/internal/pkg/apperrors"
	"github.com/emre/clubsphere/internal/pkg/dberrors"
)

// PassSignFn produces the signed entry pass for a freshly inserted
// registration id. It runs inside the registration transaction so a signing
// failure aborts the whole registration.
type PassSignFn func(registrationID int64) (string, error)

// RegistrationRepository handles database operations for event registrations
type RegistrationRepository struct {
	db *pgxpool.Pool
}

// NewRegistrationRepository creates a new RegistrationRepository
func NewRegistrationRepository(db *pgxpool.Pool) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// Register inserts a registration and increments the event's attendance
// counter in a single transaction. The counter is only ever touched on this
// path and on Cancel, so it always equals the number of registration rows.
func (r *RegistrationRepository) Register(ctx context.Context, userID, eventID int64, signPass PassSignFn) (*models.Registration, error) {
	var reg models.Registration

	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO registrations (user_id, event_id)
			VALUES ($1, $2)
			RETURNING id, registration_date
		`, userID, eventID).Scan(&reg.ID, &reg.RegistrationDate)
		if err != nil {
			if dberrors.IsUniqueViolation(err) {
				return apperrors.ErrRegistrationExists
			}
			if dberrors.IsForeignKeyViolation(err) {
				return apperrors.ErrEventNotFound
			}
			return fmt.Errorf("error executing query: %w", err)
		}
		reg.UserID = userID
		reg.EventID = eventID

		pass, err := signPass(reg.ID)
		if err != nil {
			return fmt.Errorf("failed to issue entry pass: %w", err)
		}
		reg.QRCode = pass

		_, err = tx.Exec(ctx, `
			UPDATE registrations SET qr_code = $1 WHERE id = $2
		`, pass, reg.ID)
		if err != nil {
			return fmt.Errorf("error executing query: %w", err)
		}

		_, err = tx.Exec(ctx, `
			UPDATE events SET attendance_count = attendance_count + 1 WHERE id = $1
		`, eventID)
		if err != nil {
			return fmt.Errorf("error executing query: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &reg, nil
}

// Cancel removes a registration and decrements the event's attendance
// counter in a single transaction.
func (r *RegistrationRepository) Cancel(ctx context.Context, userID, eventID int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		result, err := tx.Exec(ctx, `
			DELETE FROM registrations WHERE user_id = $1 AND event_id = $2
		`, userID, eventID)
		if err != nil {
			return fmt.Errorf("error executing query: %w", err)
		}
		if result.RowsAffected() == 0 {
			return apperrors.NewResourceNotFoundError("registration not found")
		}

		_, err = tx.Exec(ctx, `
			UPDATE events SET attendance_count = attendance_count - 1 WHERE id = $1
		`, eventID)
		if err != nil {
			return fmt.Errorf("error executing query: %w", err)
		}

		return nil
	})
}

// GetByUserAndEvent retrieves a registration by user and event
func (r *RegistrationRepository) GetByUserAndEvent(ctx context.Context, userID, eventID int64) (*models.Registration, error) {
	query := `
		SELECT id, user_id, event_id, registration_date, qr_code
		FROM registrations
		WHERE user_id = $1 AND event_id = $2
	`

	var reg models.Registration
	err := r.db.QueryRow(ctx, query, userID, eventID).Scan(
		&reg.ID,
		&reg.UserID,
		&reg.EventID,
		&reg.RegistrationDate,
		&reg.QRCode,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("registration not found")
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &reg, nil
}

// GetByID retrieves a registration by its id
func (r *RegistrationRepository) GetByID(ctx context.Context, id int64) (*models.Registration, error) {
	query := `
		SELECT id, user_id, event_id, registration_date, qr_code
		FROM registrations
		WHERE id = $1
	`

	var reg models.Registration
	err := r.db.QueryRow(ctx, query, id).Scan(
		&reg.ID,
		&reg.UserID,
		&reg.EventID,
		&reg.RegistrationDate,
		&reg.QRCode,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("registration not found")
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &reg, nil
}

// GetByEventID retrieves the registrations for an event with pagination
func (r *RegistrationRepository) GetByEventID(ctx context.Context, eventID int64, page, pageSize int) ([]*models.Registration, int64, error) {
	query := `
		SELECT r.id, r.user_id, r.event_id, r.registration_date, r.qr_code,
			u.email, u.first_name, u.last_name,
			COUNT(*) OVER() AS total_count
		FROM registrations r
		JOIN users u ON u.id = r.user_id
		WHERE r.event_id = $1
		ORDER BY r.registration_date
		LIMIT $2 OFFSET $3
	`

	offset := (page - 1) * pageSize
	rows, err := r.db.Query(ctx, query, eventID, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var registrations []*models.Registration
	var total int64
	for rows.Next() {
		var reg models.Registration
		var u models.User
		err := rows.Scan(
			&reg.ID,
			&reg.UserID,
			&reg.EventID,
			&reg.RegistrationDate,
			&reg.QRCode,
			&u.Email,
			&u.FirstName,
			&u.LastName,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		u.ID = reg.UserID
		reg.User = &u
		registrations = append(registrations, &reg)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	return registrations, total, nil
}

// GetEventsByUserID retrieves the events a user is registered for
func (r *RegistrationRepository) GetEventsByUserID(ctx context.Context, userID int64, page, pageSize int) ([]*models.ClubEvent, int64, error) {
	query := `
		SELECT e.id, e.club_id, e.name, e.description, e.date_time, e.location,
			e.banner_url, e.report, e.attendance_count, e.created_at, e.updated_at,
			COUNT(*) OVER() AS total_count
		FROM events e
		JOIN registrations r ON r.event_id = e.id
		WHERE r.user_id = $1
		ORDER BY e.date_time
		LIMIT $2 OFFSET $3
	`

	offset := (page - 1) * pageSize
	rows, err := r.db.Query(ctx, query, userID, pageSize, offset)
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
