// Package bootstrap assembles configuration, storage, and the dependency
// graph at startup.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/time/rate"

	_ "github.com/emre/clubsphere/docs" // Import generated swagger docs
	appAuth "github.com/emre/clubsphere/internal/app/auth"
	appControllers "github.com/emre/clubsphere/internal/app/controllers"
	appMigrations "github.com/emre/clubsphere/internal/app/migrations"
	appRepos "github.com/emre/clubsphere/internal/app/repositories"
	appRoutes "github.com/emre/clubsphere/internal/app/routes"
	appServices "github.com/emre/clubsphere/internal/app/services"
	"github.com/emre/clubsphere/internal/config"
	"github.com/emre/clubsphere/internal/db"
	"github.com/emre/clubsphere/internal/metrics"
	appMiddleware "github.com/emre/clubsphere/internal/middleware"
	pkgAuth "github.com/emre/clubsphere/internal/pkg/auth"
	"github.com/emre/clubsphere/internal/pkg/cache"
	"github.com/emre/clubsphere/internal/pkg/entrypass"
	"github.com/emre/clubsphere/internal/pkg/helpers"
	"github.com/emre/clubsphere/internal/pkg/logger"
	"github.com/emre/clubsphere/internal/pkg/reportgen"
	"github.com/emre/clubsphere/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos          *appRepos.Repositories
	JWTService     *pkgAuth.JWTService
	PassSigner     *entrypass.Signer
	AuthzService   *appAuth.AuthorizationService
	Metrics        *metrics.Registry
	Controllers    *appControllers.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	RateLimiter    *appMiddleware.RateLimiter
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, cfg, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)
	deps.Metrics = metrics.NewRegistry()

	cacheService := cache.NewService(5*time.Minute, 10*time.Minute)
	deps.AuthzService = appAuth.NewAuthorizationService(
		deps.Repos.UserRepository,
		deps.Repos.ClubRepository,
		cfg,
		cacheService,
	)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})
	deps.PassSigner = entrypass.NewSigner(cfg.EntryPass.Secret, cfg.JWT.Issuer)

	reportClient := reportgen.NewClient(reportgen.Config{
		BaseURL: cfg.AI.BaseURL,
		APIKey:  cfg.AI.APIKey,
		Model:   cfg.AI.Model,
		Timeout: helpers.ParseDuration(cfg.AI.Timeout, 60*time.Second),
	})

	authService := appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.JWTService,
		lgr,
	)
	userService := appServices.NewUserService(
		deps.Repos.UserRepository,
		deps.Repos.MembershipRepository,
		deps.Repos.TokenRepository,
		deps.AuthzService,
		lgr,
	)
	clubService := appServices.NewClubService(
		deps.Repos.ClubRepository,
		deps.Repos.MembershipRepository,
		deps.Repos.UserRepository,
		deps.AuthzService,
		deps.Metrics,
		lgr,
	)
	eventService := appServices.NewEventService(
		deps.Repos.EventRepository,
		deps.Repos.RegistrationRepository,
		deps.Repos.ClubRepository,
		deps.AuthzService,
		deps.PassSigner,
		deps.Metrics,
		lgr,
	)
	reportService := appServices.NewReportService(
		deps.Repos.EventRepository,
		deps.Repos.ClubRepository,
		deps.AuthzService,
		reportClient,
		deps.Metrics,
		lgr,
	)
	announcementService := appServices.NewAnnouncementService(
		deps.Repos.AnnouncementRepository,
		deps.Repos.MembershipRepository,
		deps.AuthzService,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)
	deps.RateLimiter = appMiddleware.NewRateLimiter(rate.Limit(10), 20)

	deps.Controllers = &appControllers.Controllers{
		Auth:         appControllers.NewAuthController(authService, lgr),
		User:         appControllers.NewUserController(userService, eventService, lgr),
		Club:         appControllers.NewClubController(clubService, lgr),
		Event:        appControllers.NewEventController(eventService, lgr),
		Announcement: appControllers.NewAnnouncementController(announcementService, lgr),
		Report:       appControllers.NewReportController(reportService, lgr),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()
	router.Use(appMiddleware.Metrics(deps.Metrics))
	router.Use(deps.RateLimiter.Handler())

	// Setup Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	// Setup API routes using the dependencies
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
