// Package routes wires controllers onto the HTTP router.
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/emre/clubsphere/internal/app/controllers"
	"github.com/emre/clubsphere/internal/app/models/dto"
	"github.com/emre/clubsphere/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	ctrl *controllers.Controllers,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", ctrl.Auth.Register)
		auth.POST("/login", ctrl.Auth.Login)
		auth.POST("/refresh", ctrl.Auth.RefreshToken)
		auth.POST("/logout", ctrl.Auth.Logout)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		// User routes
		users := authenticated.Group("/users")
		{
			users.GET("/me", ctrl.User.GetProfile)
			users.PUT("/me", ctrl.User.UpdateProfile)
			users.PUT("/me/password", ctrl.User.ChangePassword)
			users.GET("/me/clubs", ctrl.User.GetMyClubs)
			users.GET("/me/events", ctrl.User.GetMyEvents)
			users.GET("", ctrl.User.GetAllUsers)
		}

		// Club routes. Proposal is open to every authenticated user;
		// approval decisions are gated inside the service on the
		// super-admin allow-list.
		clubs := authenticated.Group("/clubs")
		{
			clubs.POST("", ctrl.Club.ProposeClub)
			clubs.GET("", ctrl.Club.GetAllClubs)
			clubs.GET("/:id", ctrl.Club.GetClubByID)
			clubs.PUT("/:id", ctrl.Club.UpdateClub)
			clubs.DELETE("/:id", ctrl.Club.DeleteClub)
			clubs.POST("/:id/approve", ctrl.Club.ApproveClub)
			clubs.POST("/:id/reject", ctrl.Club.RejectClub)

			// Membership
			clubs.POST("/:id/join", ctrl.Club.JoinClub)
			clubs.DELETE("/:id/leave", ctrl.Club.LeaveClub)
			clubs.GET("/:id/members", ctrl.Club.GetClubMembers)
			clubs.POST("/:id/members", ctrl.Club.AddMember)
			clubs.DELETE("/:id/members/:userId", ctrl.Club.RemoveMember)

			// Club-scoped events and announcements
			clubs.POST("/:id/events", ctrl.Event.CreateEvent)
			clubs.POST("/:id/announcements", ctrl.Announcement.CreateAnnouncement)
			clubs.GET("/:id/announcements", ctrl.Announcement.GetClubAnnouncements)
		}

		// Event routes
		events := authenticated.Group("/events")
		{
			events.GET("", ctrl.Event.GetAllEvents)
			events.GET("/:id", ctrl.Event.GetEventByID)
			events.PUT("/:id", ctrl.Event.UpdateEvent)
			events.DELETE("/:id", ctrl.Event.DeleteEvent)

			// Registrations and entry passes
			events.POST("/:id/register", ctrl.Event.RegisterForEvent)
			events.DELETE("/:id/register", ctrl.Event.CancelRegistration)
			events.GET("/:id/registration", ctrl.Event.GetMyRegistration)
			events.GET("/:id/pass", ctrl.Event.GetEntryPass)
			events.GET("/:id/registrations", ctrl.Event.GetEventRegistrations)
			events.POST("/:id/verify-pass", ctrl.Event.VerifyEntryPass)

			// Reports
			events.POST("/:id/report", ctrl.Report.GenerateReport)
			events.GET("/:id/report", ctrl.Report.GetReport)
		}

		// Announcement routes addressed by announcement id
		announcements := authenticated.Group("/announcements")
		{
			announcements.DELETE("/:id", ctrl.Announcement.DeleteAnnouncement)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})

	// Prometheus scrape endpoint (public)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
