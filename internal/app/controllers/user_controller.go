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

// UserController handles user profile operations
type UserController struct {
	userService  services.UserService
	eventService services.EventService
	logger       zerolog.Logger
}

// NewUserController creates a new UserController
func NewUserController(userService services.UserService, eventService services.EventService, logger zerolog.Logger) *UserController {
	return &UserController{
		userService:  userService,
		eventService: eventService,
		logger:       logger,
	}
}

// GetProfile retrieves the authenticated user's profile
// @Summary Get my profile
// @Description Retrieves the authenticated user's profile, including the clubs they administer
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "Profile retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/me [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	resp, err := c.userService.GetProfile(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// UpdateProfile updates the authenticated user's profile
// @Summary Update my profile
// @Description Updates the authenticated user's name, department, and year
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateUserRequest true "Profile fields"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "Profile updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /users/me [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.userService.UpdateProfile(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// ChangePassword changes the authenticated user's password
// @Summary Change my password
// @Description Verifies the current password, stores a new one, and revokes all refresh tokens
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChangePasswordRequest true "Current and new password"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Password changed"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Current password incorrect"
// @Router /users/me/password [put]
func (c *UserController) ChangePassword(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	if err := c.userService.ChangePassword(ctx.Request.Context(), userID, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Password changed"}))
}

// GetMyClubs lists the ids of clubs the authenticated user belongs to
// @Summary Get my club memberships
// @Description Lists the ids of clubs the authenticated user is a member of
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]int64} "Club ids retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /users/me/clubs [get]
func (c *UserController) GetMyClubs(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	clubIDs, err := c.userService.GetMyClubIDs(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(clubIDs))
}

// GetMyEvents lists the events the authenticated user is registered for
// @Summary Get my events
// @Description Lists the events the authenticated user is registered for
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (1-based)" default(1) minimum(1)
// @Param pageSize query int false "Page size" default(10) minimum(1) maximum(100)
// @Success 200 {object} dto.APIResponse{data=dto.EventListResponse} "Events retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /users/me/events [get]
func (c *UserController) GetMyEvents(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	page, pageSize := helpers.ParsePaginationParams(ctx)
	resp, err := c.eventService.GetMyEvents(ctx.Request.Context(), userID, page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// GetAllUsers lists all users. Platform admin only.
// @Summary List users
// @Description Retrieves users with filtering and pagination. Platform admin only.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param role query string false "Filter by role" Enums(STUDENT,ADMIN)
// @Param email query string false "Filter by email substring"
// @Param name query string false "Filter by first or last name"
// @Param page query int false "Page number (1-based)" default(1) minimum(1)
// @Param pageSize query int false "Page size" default(10) minimum(1) maximum(100)
// @Success 200 {object} dto.APIResponse{data=dto.UserListResponse} "Users retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Platform admin rights required"
// @Router /users [get]
func (c *UserController) GetAllUsers(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var filter dto.UserFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.userService.GetAllUsers(ctx.Request.Context(), userID, &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}
