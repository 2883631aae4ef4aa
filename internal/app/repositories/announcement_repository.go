package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emre/clubsphere/internal/app/models"
	"github.com/emre/clubsphere/internal/pkg/apperrors"
	"github.com/emre/clubsphere/internal/pkg/dberrors"
)

// AnnouncementRepository handles database operations for announcements
type AnnouncementRepository struct {
	db *pgxpool.Pool
}

// NewAnnouncementRepository creates a new AnnouncementRepository
func NewAnnouncementRepository(db *pgxpool.Pool) *AnnouncementRepository {
	return &AnnouncementRepository{db: db}
}

// Create inserts a new announcement
func (r *AnnouncementRepository) Create(ctx context.Context, announcement *models.Announcement) error {
	query := `
		INSERT INTO announcements (club_id, title, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		announcement.ClubID, announcement.Title, announcement.Content,
	).Scan(&announcement.ID, &announcement.CreatedAt)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrClubNotFound
		}
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// GetByID retrieves an announcement by ID
func (r *AnnouncementRepository) GetByID(ctx context.Context, id int64) (*models.Announcement, error) {
	query := `
		SELECT id, club_id, title, content, created_at
		FROM announcements
		WHERE id = $1
	`

	var a models.Announcement
	err := r.db.QueryRow(ctx, query, id).Scan(
		&a.ID,
		&a.ClubID,
		&a.Title,
		&a.Content,
		&a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("announcement not found")
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &a, nil
}

// GetByClubID retrieves the announcements of a club with pagination, newest first
func (r *AnnouncementRepository) GetByClubID(ctx context.Context, clubID int64, page, pageSize int) ([]*models.Announcement, int64, error) {
	query := `
		SELECT id, club_id, title, content, created_at,
			COUNT(*) OVER() AS total_count
		FROM announcements
		WHERE club_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	offset := (page - 1) * pageSize
	rows, err := r.db.Query(ctx, query, clubID, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var announcements []*models.Announcement
	var total int64
	for rows.Next() {
		var a models.Announcement
		err := rows.Scan(
			&a.ID,
			&a.ClubID,
			&a.Title,
			&a.Content,
			&a.CreatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		announcements = append(announcements, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	return announcements, total, nil
}

// Delete deletes an announcement
func (r *AnnouncementRepository) Delete(ctx context.Context, id int64) error {
	query := squirrel.Delete("announcements").
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
		return apperrors.NewResourceNotFoundError("announcement not found")
	}

	return nil
}
