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

// UserRepository handles database operations for users
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user and sets its generated id
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, password, first_name, last_name, role_type, department, year, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		user.Email, user.Password, user.FirstName, user.LastName,
		user.RoleType, user.Department, user.Year, user.IsActive,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID, including the ids of clubs they administer
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT id, email, password, first_name, last_name, role_type, department, year,
			is_active, last_login_at, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var user models.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.Password,
		&user.FirstName,
		&user.LastName,
		&user.RoleType,
		&user.Department,
		&user.Year,
		&user.IsActive,
		&user.LastLoginAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	adminOf, err := r.GetAdministeredClubIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	user.AdminOf = adminOf

	return &user, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, email, password, first_name, last_name, role_type, department, year,
			is_active, last_login_at, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	var user models.User
	err := r.db.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.Password,
		&user.FirstName,
		&user.LastName,
		&user.RoleType,
		&user.Department,
		&user.Year,
		&user.IsActive,
		&user.LastLoginAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &user, nil
}

// EmailExists checks if an email already exists
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	query := squirrel.Select("1").
		From("users").
		Where("email = ?", email).
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

// UpdateProfile updates a user's profile fields
func (r *UserRepository) UpdateProfile(ctx context.Context, userID int64, firstName, lastName string, department *string, year *int) error {
	query := `
		UPDATE users
		SET first_name = $1, last_name = $2, department = $3, year = $4, updated_at = NOW()
		WHERE id = $5
	`

	result, err := r.db.Exec(ctx, query, firstName, lastName, department, year, userID)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// UpdatePassword updates a user's password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, userID int64, hashedPassword string) error {
	query := `UPDATE users SET password = $1, updated_at = NOW() WHERE id = $2`

	result, err := r.db.Exec(ctx, query, hashedPassword, userID)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// UpdateLastLogin updates the last login time
func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID int64) error {
	query := `UPDATE users SET last_login_at = NOW() WHERE id = $1`

	_, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// GetAll retrieves users with filtering and pagination
func (r *UserRepository) GetAll(ctx context.Context, role, email, name *string, page, pageSize int) ([]*models.User, int64, error) {
	query := `
		SELECT id, email, first_name, last_name, role_type, department, year,
			is_active, created_at, updated_at,
			COUNT(*) OVER() AS total_count
		FROM users
		WHERE 1=1
	`

	args := []interface{}{}
	argIndex := 1

	if role != nil && *role != "" {
		query += fmt.Sprintf(" AND role_type = $%d", argIndex)
		args = append(args, *role)
		argIndex++
	}
	if email != nil && *email != "" {
		query += fmt.Sprintf(" AND email ILIKE $%d", argIndex)
		args = append(args, "%"+*email+"%")
		argIndex++
	}
	if name != nil && *name != "" {
		pattern := "%" + *name + "%"
		query += fmt.Sprintf(" AND (first_name ILIKE $%d OR last_name ILIKE $%d)", argIndex, argIndex+1)
		args = append(args, pattern, pattern)
		argIndex += 2
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

	var users []*models.User
	var total int64
	for rows.Next() {
		var user models.User
		err := rows.Scan(
			&user.ID,
			&user.Email,
			&user.FirstName,
			&user.LastName,
			&user.RoleType,
			&user.Department,
			&user.Year,
			&user.IsActive,
			&user.CreatedAt,
			&user.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		users = append(users, &user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	return users, total, nil
}

// GetAdministeredClubIDs retrieves the ids of clubs the user administers
func (r *UserRepository) GetAdministeredClubIDs(ctx context.Context, userID int64) ([]int64, error) {
	query := squirrel.Select("id").
		From("clubs").
		Where("admin_id = ?", userID).
		OrderBy("id").
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

// Delete deletes a user
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	query := squirrel.Delete("users").
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
		return apperrors.ErrUserNotFound
	}

	return nil
}
