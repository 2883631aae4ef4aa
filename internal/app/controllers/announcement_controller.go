package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/emre/clubsphere/internal/app/models/dto"
	"github.com/emre/clubsphere/internal/app/services"
	"github.com/emre/clubsphere/internal/middleware"
	"github.com/emre/clubsphere/internal/pkg/helpers"
)

// AnnouncementController handles club announcement operations
type AnnouncementController struct {
	announcementService services.AnnouncementService
	logger              zerolog.Logger
}

// NewAnnouncementController creates a new AnnouncementController
func NewAnnouncementController(announcementService services.AnnouncementService, logger zerolog.Logger) *AnnouncementController {
	return &AnnouncementController{
		announcementService: announcementService,
		logger:              logger,
	}
}

// CreateAnnouncement posts an announcement to a club
// @Summary Create an announcement
// @Description Posts an announcement to a club. Club admin only.
// @Tags announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Param request body dto.CreateAnnouncementRequest true "Announcement content"
// @Success 201 {object} dto.APIResponse{data=dto.AnnouncementResponse} "Announcement created"
// @Failure 403 {object} dto.ErrorResponse "Club admin rights required"
// @Failure 404 {object} dto.ErrorResponse "Club not found"
// @Router /clubs/{id}/announcements [post]
func (c *AnnouncementController) CreateAnnouncement(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	clubID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateAnnouncementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.announcementService.CreateAnnouncement(ctx.Request.Context(), userID, clubID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// GetClubAnnouncements lists a club's announcements
// @Summary List club announcements
// @Description Retrieves a club's announcements, newest first. Visible to club members and admins only.
// @Tags announcements
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Param page query int false "Page number (1-based)" default(1) minimum(1)
// @Param pageSize query int false "Page size" default(10) minimum(1) maximum(100)
// @Success 200 {object} dto.APIResponse{data=dto.AnnouncementListResponse} "Announcements retrieved"
// @Failure 403 {object} dto.ErrorResponse "Announcements are visible to club members only"
// @Failure 404 {object} dto.ErrorResponse "Club not found"
// @Router /clubs/{id}/announcements [get]
func (c *AnnouncementController) GetClubAnnouncements(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	clubID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	page, pageSize := helpers.ParsePaginationParams(ctx)
	resp, err := c.announcementService.GetClubAnnouncements(ctx.Request.Context(), userID, clubID, page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// DeleteAnnouncement deletes an announcement
// @Summary Delete an announcement
// @Description Deletes an announcement. Club admin only.
// @Tags announcements
// @Produce json
// @Security BearerAuth
// @Param id path int true "Announcement ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Announcement deleted"
// @Failure 403 {object} dto.ErrorResponse "Club admin rights required"
// @Failure 404 {object} dto.ErrorResponse "Announcement not found"
// @Router /announcements/{id} [delete]
func (c *AnnouncementController) DeleteAnnouncement(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	announcementID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.announcementService.DeleteAnnouncement(ctx.Request.Context(), userID, announcementID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Announcement deleted"}))
}
