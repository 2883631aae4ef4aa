// Package seed creates baseline data on startup.
package seed

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	appModels "github.com/emre/clubsphere/internal/app/models"
	appRepos "github.com/emre/clubsphere/internal/app/repositories"
	"github.com/emre/clubsphere/internal/config"
)

const defaultAdminPassword = "ChangeMe123!"

// CreateDefaultData ensures every configured super-admin has a platform
// account. Seeding the accounts up front means the approval workflow is
// usable on a fresh database without manual SQL.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	if len(cfg.Admin.SuperAdmins) == 0 {
		lgr.Warn().Msg("No super-admins configured; club approval will be unavailable until one is added")
		return nil
	}

	var finalErr error
	for _, email := range cfg.Admin.SuperAdmins {
		email = strings.ToLower(strings.TrimSpace(email))
		if email == "" {
			continue
		}

		exists, err := userRepo.EmailExists(ctx, email)
		if err != nil {
			lgr.Error().Err(err).Str("email", email).Msg("Error checking if super-admin exists")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		if exists {
			lgr.Debug().Str("email", email).Msg("Super-admin account already exists, skipping")
			continue
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(defaultAdminPassword), bcrypt.DefaultCost)
		if err != nil {
			lgr.Error().Err(err).Msg("Error hashing default admin password")
			finalErr = errors.Join(finalErr, err)
			continue
		}

		admin := &appModels.User{
			Email:     email,
			Password:  string(hashedPassword),
			FirstName: "Platform",
			LastName:  "Administrator",
			RoleType:  appModels.RoleAdmin,
			IsActive:  true,
		}

		if err := userRepo.Create(ctx, admin); err != nil {
			lgr.Error().Err(err).Str("email", email).Msg("Error creating super-admin account")
			finalErr = errors.Join(finalErr, err)
			continue
		}

		// The seeded password is a placeholder. Operators are expected to
		// log in and change it immediately.
		lgr.Info().Int64("adminID", admin.ID).Str("email", email).Msg("Default super-admin account created")
	}

	return finalErr
}
