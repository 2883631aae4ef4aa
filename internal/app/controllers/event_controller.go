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

// EventController handles event and registration related operations
type EventController struct {
	eventService services.EventService
	logger       zerolog.Logger
}

// NewEventController creates a new EventController
func NewEventController(eventService services.EventService, logger zerolog.Logger) *EventController {
	return &EventController{
		eventService: eventService,
		logger:       logger,
	}
}

// CreateEvent creates an event for a club
// @Summary Create an event
// @Description Creates a future event for an approved club. Club admin only.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Param request body dto.CreateEventRequest true "Event information"
// @Success 201 {object} dto.APIResponse{data=dto.EventResponse} "Event created"
// @Failure 400 {object} dto.ErrorResponse "Club not approved or invalid request"
// @Failure 403 {object} dto.ErrorResponse "Club admin rights required"
// @Failure 422 {object} dto.ErrorResponse "Event date is in the past"
// @Router /clubs/{id}/events [post]
func (c *EventController) CreateEvent(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	clubID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.eventService.CreateEvent(ctx.Request.Context(), userID, clubID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// GetAllEvents lists events with filtering
// @Summary List events
// @Description Retrieves events with optional club, date-range, and upcoming filtering
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param clubId query int false "Filter by club ID"
// @Param from query string false "Events starting after (RFC 3339)"
// @Param to query string false "Events starting before (RFC 3339)"
// @Param upcoming query bool false "Only future events"
// @Param page query int false "Page number (1-based)" default(1) minimum(1)
// @Param pageSize query int false "Page size" default(10) minimum(1) maximum(100)
// @Success 200 {object} dto.APIResponse{data=dto.EventListResponse} "Events retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /events [get]
func (c *EventController) GetAllEvents(ctx *gin.Context) {
	var filter dto.EventFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.eventService.GetAllEvents(ctx.Request.Context(), &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// GetEventByID retrieves an event
// @Summary Get event by ID
// @Description Retrieves an event by its ID
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.EventResponse} "Event retrieved"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id} [get]
func (c *EventController) GetEventByID(ctx *gin.Context) {
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.eventService.GetEventByID(ctx.Request.Context(), eventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// UpdateEvent updates an event
// @Summary Update an event
// @Description Updates an event's editable fields. Club admin only.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param request body dto.UpdateEventRequest true "Event fields"
// @Success 200 {object} dto.APIResponse{data=dto.EventResponse} "Event updated"
// @Failure 403 {object} dto.ErrorResponse "Club admin rights required"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id} [put]
func (c *EventController) UpdateEvent(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.eventService.UpdateEvent(ctx.Request.Context(), userID, eventID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// DeleteEvent deletes an event
// @Summary Delete an event
// @Description Deletes an event and its registrations. Club admin only.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Event deleted"
// @Failure 403 {object} dto.ErrorResponse "Club admin rights required"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id} [delete]
func (c *EventController) DeleteEvent(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.eventService.DeleteEvent(ctx.Request.Context(), userID, eventID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Event deleted"}))
}

// RegisterForEvent registers the caller for an event
// @Summary Register for an event
// @Description Registers the caller for an upcoming event and issues a signed entry pass
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 201 {object} dto.APIResponse{data=dto.RegistrationResponse} "Registered"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 409 {object} dto.ErrorResponse "Already registered"
// @Failure 422 {object} dto.ErrorResponse "Event date is in the past"
// @Router /events/{id}/register [post]
func (c *EventController) RegisterForEvent(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.eventService.RegisterForEvent(ctx.Request.Context(), userID, eventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// CancelRegistration cancels the caller's registration
// @Summary Cancel my registration
// @Description Cancels the caller's registration for an upcoming event
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Registration cancelled"
// @Failure 404 {object} dto.ErrorResponse "Registration not found"
// @Failure 422 {object} dto.ErrorResponse "Event date is in the past"
// @Router /events/{id}/register [delete]
func (c *EventController) CancelRegistration(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.eventService.CancelRegistration(ctx.Request.Context(), userID, eventID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Registration cancelled"}))
}

// GetMyRegistration retrieves the caller's registration for an event
// @Summary Get my registration
// @Description Retrieves the caller's registration for an event, including the entry pass token
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.RegistrationResponse} "Registration retrieved"
// @Failure 404 {object} dto.ErrorResponse "Registration not found"
// @Router /events/{id}/registration [get]
func (c *EventController) GetMyRegistration(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.eventService.GetMyRegistration(ctx.Request.Context(), userID, eventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// GetEntryPass renders the caller's entry pass as a QR code
// @Summary Get my entry pass
// @Description Renders the caller's entry pass for an event as a PNG QR code
// @Tags registrations
// @Produce png
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {file} byte "QR code PNG"
// @Failure 404 {object} dto.ErrorResponse "Registration not found"
// @Router /events/{id}/pass [get]
func (c *EventController) GetEntryPass(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	png, err := c.eventService.GetEntryPassImage(ctx.Request.Context(), userID, eventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Data(http.StatusOK, "image/png", png)
}

// GetEventRegistrations lists an event's registrations
// @Summary List event registrations
// @Description Retrieves an event's registrations with attendee details. Club admin only.
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param page query int false "Page number (1-based)" default(1) minimum(1)
// @Param pageSize query int false "Page size" default(10) minimum(1) maximum(100)
// @Success 200 {object} dto.APIResponse{data=dto.RegistrationListResponse} "Registrations retrieved"
// @Failure 403 {object} dto.ErrorResponse "Club admin rights required"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id}/registrations [get]
func (c *EventController) GetEventRegistrations(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	page, pageSize := helpers.ParsePaginationParams(ctx)
	resp, err := c.eventService.GetEventRegistrations(ctx.Request.Context(), userID, eventID, page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// VerifyEntryPass checks a scanned pass at the door
// @Summary Verify an entry pass
// @Description Verifies a scanned entry pass against this event. Club admin only. An invalid pass yields valid=false, not an error.
// @Tags registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param request body dto.VerifyPassRequest true "Scanned pass token"
// @Success 200 {object} dto.APIResponse{data=dto.VerifyPassResponse} "Verification result"
// @Failure 403 {object} dto.ErrorResponse "Club admin rights required"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id}/verify-pass [post]
func (c *EventController) VerifyEntryPass(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.VerifyPassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.eventService.VerifyEntryPass(ctx.Request.Context(), userID, eventID, req.Pass)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}
