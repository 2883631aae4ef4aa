package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/emre/clubsphere/internal/app/models/dto"
	"github.com/emre/clubsphere/internal/app/services"
	"github.com/emre/clubsphere/internal/middleware"
)

// ReportController handles event report operations
type ReportController struct {
	reportService services.ReportService
	logger        zerolog.Logger
}

// NewReportController creates a new ReportController
func NewReportController(reportService services.ReportService, logger zerolog.Logger) *ReportController {
	return &ReportController{
		reportService: reportService,
		logger:        logger,
	}
}

// GenerateReport drafts a report for a completed event
// @Summary Generate an event report
// @Description Drafts a narrative report for a completed event using the configured text-generation service, replacing any previous report. Club admin only.
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.EventReportResponse} "Report generated"
// @Failure 400 {object} dto.ErrorResponse "Event has not happened yet"
// @Failure 403 {object} dto.ErrorResponse "Club admin rights required"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 409 {object} dto.ErrorResponse "Report generation already in progress"
// @Failure 502 {object} dto.ErrorResponse "Report generation failed"
// @Router /events/{id}/report [post]
func (c *ReportController) GenerateReport(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.reportService.GenerateReport(ctx.Request.Context(), userID, eventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// GetReport retrieves the stored report for an event
// @Summary Get an event report
// @Description Retrieves the stored report for an event. Club admin only.
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.EventReportResponse} "Report retrieved"
// @Failure 403 {object} dto.ErrorResponse "Club admin rights required"
// @Failure 404 {object} dto.ErrorResponse "No report generated yet"
// @Router /events/{id}/report [get]
func (c *ReportController) GetReport(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.reportService.GetReport(ctx.Request.Context(), userID, eventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}
