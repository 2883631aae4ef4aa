package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emre/clubsphere/internal/app/models"
	"github.com/emre/clubsphere/internal/db"
	"github.com/emre/clubsphere/internal/pkg/apperrors"
	"github.com/emre/clubsphere/internal/pkg/dberrors"
)

// ClubRepository handles database operations for clubs
type ClubRepository struct {
	db *pgxpool.Pool
}

// NewClubRepository creates a new ClubRepository
func NewClubRepository(db *pgxpool.Pool) *ClubRepository {
	return &ClubRepository{db: db}
}

// Create inserts a new club proposal in PENDING state
func (r *ClubRepository) Create(ctx context.Context, club *models.Club) error {
	query := `
		INSERT INTO clubs (name, description, admin_id, logo_url, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		club.Name, club.Description, club.AdminID, club.LogoURL, models.ClubStatusPending,
	).Scan(&club.ID, &club.CreatedAt, &club.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.NewConflictError("a club with this name already exists")
		}
		return fmt.Errorf("error executing query: %w", err)
	}
	club.Status = models.ClubStatusPending

	return nil
}

// GetByID retrieves a club by ID
func (r *ClubRepository) GetByID(ctx context.Context, id int64) (*models.Club, error) {
	query := `
		SELECT id, name, description, admin_id, logo_url, status, created_at, updated_at
		FROM clubs
		WHERE id = $1
	`

	var club models.Club
	err := r.db.QueryRow(ctx, query, id).Scan(
		&club.ID,
		&club.Name,
		&club.Description,
		&club.AdminID,
		&club.LogoURL,
		&club.Status,
		&club.CreatedAt,
		&club.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrClubNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &club, nil
}

// GetAll retrieves clubs with filtering and pagination
func (r *ClubRepository) GetAll(ctx context.Context, status, search *string, page, pageSize int) ([]*models.Club, int64, error) {
	query := `
		SELECT id, name, description, admin_id, logo_url, status, created_at, updated_at,
			COUNT(*) OVER() AS total_count
		FROM clubs
		WHERE 1=1
	`

	args := []interface{}{}
	argIndex := 1

	if status != nil && *status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIndex)
		args = append(args, *status)
		argIndex++
	}
	if search != nil && *search != "" {
		query += fmt.Sprintf(" AND name ILIKE $%d", argIndex)
		args = append(args, "%"+*search+"%")
		argIndex++
	}

	offset := (page - 1) * pageSize
	query += " ORDER BY id"
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var clubs []*models.Club
	var total int64
	for rows.Next() {
		var club models.Club
		err := rows.Scan(
			&club.ID,
			&club.Name,
			&club.Description,
			&club.AdminID,
			&club.LogoURL,
			&club.Status,
			&club.CreatedAt,
			&club.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		clubs = append(clubs, &club)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	return clubs, total, nil
}

// Update updates a club's editable fields
func (r *ClubRepository) Update(ctx context.Context, club *models.Club) error {
	query := `
		UPDATE clubs
		SET name = $1, description = $2, logo_url = $3, updated_at = NOW()
		WHERE id = $4
	`

	result, err := r.db.Exec(ctx, query, club.Name, club.Description, club.LogoURL, club.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.NewConflictError("a club with this name already exists")
		}
		return fmt.Errorf("error executing query: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrClubNotFound
	}

	return nil
}

// Approve transitions a PENDING club to APPROVED and enrolls its admin as the
// first member, all in one transaction. The status check and the update share
// a single conditional statement so two concurrent decisions can never both
// succeed.
func (r *ClubRepository) Approve(ctx context.Context, clubID int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var adminID int64
		err := tx.QueryRow(ctx, `
			UPDATE clubs
			SET status = $1, updated_at = NOW()
			WHERE id = $2 AND status = $3
			RETURNING admin_id
		`, models.ClubStatusApproved, clubID, models.ClubStatusPending).Scan(&adminID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return r.classifyDecisionFailure(ctx, tx, clubID)
			}
			return fmt.Errorf("error executing query: %w", err)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO club_memberships (user_id, club_id)
			VALUES ($1, $2)
		`, adminID, clubID)
		if err != nil {
			if dberrors.IsUniqueViolation(err) {
				// Admin already holds a membership row; approval still stands.
				return nil
			}
			return fmt.Errorf("error executing query: %w", err)
		}

		return nil
	})
}

// Reject transitions a PENDING club to REJECTED
func (r *ClubRepository) Reject(ctx context.Context, clubID int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		result, err := tx.Exec(ctx, `
			UPDATE clubs
			SET status = $1, updated_at = NOW()
			WHERE id = $2 AND status = $3
		`, models.ClubStatusRejected, clubID, models.ClubStatusPending)
		if err != nil {
			return fmt.Errorf("error executing query: %w", err)
		}
		if result.RowsAffected() == 0 {
			return r.classifyDecisionFailure(ctx, tx, clubID)
		}

		return nil
	})
}

// classifyDecisionFailure distinguishes a missing club from one whose
// decision has already been made.
func (r *ClubRepository) classifyDecisionFailure(ctx context.Context, tx pgx.Tx, clubID int64) error {
	var status models.ClubStatus
	err := tx.QueryRow(ctx, `SELECT status FROM clubs WHERE id = $1`, clubID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrClubNotFound
		}
		return fmt.Errorf("error executing query: %w", err)
	}
	return apperrors.ErrClubNotPending
}

// Delete deletes a club. Memberships, events, and announcements cascade.
func (r *ClubRepository) Delete(ctx context.Context, id int64) error {
	query := squirrel.Delete("clubs").
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
		return apperrors.ErrClubNotFound
	}

	return nil
}
