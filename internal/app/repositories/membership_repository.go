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

// MembershipRepository handles database operations for club memberships
type MembershipRepository struct {
	db *pgxpool.Pool
}

// NewMembershipRepository creates a new MembershipRepository
func NewMembershipRepository(db *pgxpool.Pool) *MembershipRepository {
	return &MembershipRepository{db: db}
}

// AddMember adds a user to a club. The unique constraint on (user_id, club_id)
// makes concurrent duplicate joins resolve to exactly one row.
func (r *MembershipRepository) AddMember(ctx context.Context, userID, clubID int64) (int64, error) {
	query := squirrel.Insert("club_memberships").
		Columns("user_id", "club_id").
		Values(userID, clubID).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrMembershipExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrClubNotFound
		}
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return id, nil
}

// RemoveMember removes a user from a club
func (r *MembershipRepository) RemoveMember(ctx context.Context, userID, clubID int64) error {
	query := squirrel.Delete("club_memberships").
		Where("user_id = ? AND club_id = ?", userID, clubID).
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
		return apperrors.ErrMembershipMissing
	}

	return nil
}

// IsMember checks if a user is a member of a club
func (r *MembershipRepository) IsMember(ctx context.Context, userID, clubID int64) (bool, error) {
	query := squirrel.Select("1").
		From("club_memberships").
		Where("user_id = ? AND club_id = ?", userID, clubID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return false, fmt.Errorf("error building SQL: %w", err)
	}

	var exists int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("error executing query: %w", err)
	}

	return true, nil
}

// GetMembersByClubID retrieves the members of a club with pagination
func (r *MembershipRepository) GetMembersByClubID(ctx context.Context, clubID int64, page, pageSize int) ([]*models.ClubMembership, int64, error) {
	query := `
		SELECT m.id, m.user_id, m.club_id, m.join_date,
			u.email, u.first_name, u.last_name, u.role_type,
			COUNT(*) OVER() AS total_count
		FROM club_memberships m
		JOIN users u ON u.id = m.user_id
		WHERE m.club_id = $1
		ORDER BY m.join_date
		LIMIT $2 OFFSET $3
	`

	offset := (page - 1) * pageSize
	rows, err := r.db.Query(ctx, query, clubID, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var memberships []*models.ClubMembership
	var total int64
	for rows.Next() {
		var m models.ClubMembership
		var u models.User
		err := rows.Scan(
			&m.ID,
			&m.UserID,
			&m.ClubID,
			&m.JoinDate,
			&u.Email,
			&u.FirstName,
			&u.LastName,
			&u.RoleType,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		u.ID = m.UserID
		m.User = &u
		memberships = append(memberships, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	return memberships, total, nil
}

// GetClubIDsByUserID retrieves all clubs a user belongs to
func (r *MembershipRepository) GetClubIDsByUserID(ctx context.Context, userID int64) ([]int64, error) {
	query := squirrel.Select("club_id").
		From("club_memberships").
		Where("user_id = ?", userID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var clubIDs []int64
	for rows.Next() {
		var clubID int64
		if err := rows.Scan(&clubID); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		clubIDs = append(clubIDs, clubID)
	}

	return clubIDs, nil
}

// CountByClubID retrieves the number of members of a club
func (r *MembershipRepository) CountByClubID(ctx context.Context, clubID int64) (int, error) {
	query := squirrel.Select("COUNT(*)").
		From("club_memberships").
		Where("club_id = ?", clubID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var count int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return count, nil
}
