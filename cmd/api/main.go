package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/emre/clubsphere/internal/pkg/logger"
	"github.com/emre/clubsphere/internal/server"
)

// @title ClubSphere API
// @version 1.0
// @description Backend for college club management: clubs, memberships, events, entry passes, announcements, and event reports

// @contact.name API Support
// @contact.email support@clubsphere.app

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	// Load .env if present; real deployments set environment variables directly
	if err := godotenv.Load(); err == nil {
		logger.Info().Msg("Loaded environment from .env file")
	}

	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
