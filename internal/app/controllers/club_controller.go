package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/emre/clubsphere/internal/app/models"
	"github.com/emre/clubsphere/internal/app/models/dto"
	"github.com/emre/clubsphere/internal/app/services"
	"github.com/emre/clubsphere/internal/middleware"
	"github.com/emre/clubsphere/internal/pkg/helpers"
)

// ClubController handles club and membership related operations
type ClubController struct {
	clubService services.ClubService
	logger      zerolog.Logger
}

// NewClubController creates a new ClubController
func NewClubController(clubService services.ClubService, logger zerolog.Logger) *ClubController {
	return &ClubController{
		clubService: clubService,
		logger:      logger,
	}
}

// ProposeClub handles club creation proposals
// @Summary Propose a new club
// @Description Creates a club in PENDING state with the caller as its admin. A platform admin must approve it before it opens for membership.
// @Tags clubs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateClubRequest true "Club information"
// @Success 201 {object} dto.APIResponse{data=dto.ClubResponse} "Club proposed"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 409 {object} dto.ErrorResponse "Club name already taken"
// @Router /clubs [post]
func (c *ClubController) ProposeClub(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateClubRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.clubService.ProposeClub(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// GetAllClubs lists clubs with filtering
// @Summary List clubs
// @Description Retrieves clubs with optional status and search filtering. Non-admin callers see only APPROVED clubs.
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status (admins only)" Enums(PENDING,APPROVED,REJECTED)
// @Param search query string false "Search by name"
// @Param page query int false "Page number (1-based)" default(1) minimum(1)
// @Param pageSize query int false "Page size" default(10) minimum(1) maximum(100)
// @Success 200 {object} dto.APIResponse{data=dto.ClubListResponse} "Clubs retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /clubs [get]
func (c *ClubController) GetAllClubs(ctx *gin.Context) {
	var filter dto.ClubFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	// Students browse the approved directory; only platform admins may
	// inspect pending or rejected clubs.
	if role, exists := ctx.Get("roleType"); !exists || role != string(models.RoleAdmin) {
		approved := string(models.ClubStatusApproved)
		filter.Status = &approved
	}

	resp, err := c.clubService.GetAllClubs(ctx.Request.Context(), &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// GetClubByID retrieves a club with its admin and members
// @Summary Get club by ID
// @Description Retrieves a club with its admin profile and member list
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} dto.APIResponse{data=dto.ClubDetailResponse} "Club retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid club ID"
// @Failure 404 {object} dto.ErrorResponse "Club not found"
// @Router /clubs/{id} [get]
func (c *ClubController) GetClubByID(ctx *gin.Context) {
	clubID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.clubService.GetClubByID(ctx.Request.Context(), clubID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// UpdateClub updates a club's editable fields
// @Summary Update a club
// @Description Updates a club's name, description, and logo. Club admin only.
// @Tags clubs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Param request body dto.UpdateClubRequest true "Club fields"
// @Success 200 {object} dto.APIResponse{data=dto.ClubResponse} "Club updated"
// @Failure 403 {object} dto.ErrorResponse "Club admin rights required"
// @Failure 404 {object} dto.ErrorResponse "Club not found"
// @Router /clubs/{id} [put]
func (c *ClubController) UpdateClub(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	clubID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateClubRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.clubService.UpdateClub(ctx.Request.Context(), userID, clubID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// ApproveClub approves a pending club
// @Summary Approve a club
// @Description Approves a pending club and enrolls its admin as the founding member. Platform admin only.
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Club approved"
// @Failure 403 {object} dto.ErrorResponse "Platform admin rights required"
// @Failure 404 {object} dto.ErrorResponse "Club not found"
// @Failure 409 {object} dto.ErrorResponse "Club decision already made"
// @Router /clubs/{id}/approve [post]
func (c *ClubController) ApproveClub(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	clubID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.clubService.ApproveClub(ctx.Request.Context(), userID, clubID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Club approved"}))
}

// RejectClub rejects a pending club
// @Summary Reject a club
// @Description Rejects a pending club. Platform admin only.
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Club rejected"
// @Failure 403 {object} dto.ErrorResponse "Platform admin rights required"
// @Failure 404 {object} dto.ErrorResponse "Club not found"
// @Failure 409 {object} dto.ErrorResponse "Club decision already made"
// @Router /clubs/{id}/reject [post]
func (c *ClubController) RejectClub(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	clubID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.clubService.RejectClub(ctx.Request.Context(), userID, clubID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Club rejected"}))
}

// DeleteClub deletes a club
// @Summary Delete a club
// @Description Deletes a club and everything attached to it. Platform admin only.
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Club deleted"
// @Failure 403 {object} dto.ErrorResponse "Platform admin rights required"
// @Failure 404 {object} dto.ErrorResponse "Club not found"
// @Router /clubs/{id} [delete]
func (c *ClubController) DeleteClub(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	clubID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.clubService.DeleteClub(ctx.Request.Context(), userID, clubID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Club deleted"}))
}

// JoinClub adds the caller to an approved club
// @Summary Join a club
// @Description Adds the caller to an approved club's member list
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Joined club"
// @Failure 400 {object} dto.ErrorResponse "Club is not open for membership"
// @Failure 404 {object} dto.ErrorResponse "Club not found"
// @Failure 409 {object} dto.ErrorResponse "Already a member"
// @Router /clubs/{id}/join [post]
func (c *ClubController) JoinClub(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	clubID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.clubService.JoinClub(ctx.Request.Context(), userID, clubID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Joined club"}))
}

// LeaveClub removes the caller from a club
// @Summary Leave a club
// @Description Removes the caller from a club's member list. The club admin cannot leave their own club.
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Left club"
// @Failure 400 {object} dto.ErrorResponse "Club admin cannot leave their own club"
// @Failure 404 {object} dto.ErrorResponse "Not a member"
// @Router /clubs/{id}/leave [delete]
func (c *ClubController) LeaveClub(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	clubID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.clubService.LeaveClub(ctx.Request.Context(), userID, clubID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Left club"}))
}

// AddMember adds a user to a club on behalf of its admin
// @Summary Add a club member
// @Description Resolves the given email to a user and adds them to the club's member list. Club admin only.
// @Tags clubs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Param request body dto.AddMemberRequest true "User to add"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Member added"
// @Failure 403 {object} dto.ErrorResponse "Club admin rights required"
// @Failure 404 {object} dto.ErrorResponse "Club or user not found"
// @Failure 409 {object} dto.ErrorResponse "Already a member"
// @Router /clubs/{id}/members [post]
func (c *ClubController) AddMember(ctx *gin.Context) {
	actorID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	clubID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.AddMemberRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	if err := c.clubService.AddMember(ctx.Request.Context(), actorID, clubID, req.Email); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Member added"}))
}

// RemoveMember removes a user from a club on behalf of its admin
// @Summary Remove a club member
// @Description Removes a user from the club's member list. Club admin only; the club admin themselves cannot be removed.
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Param userId path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Member removed"
// @Failure 400 {object} dto.ErrorResponse "Club admin cannot be removed"
// @Failure 403 {object} dto.ErrorResponse "Club admin rights required"
// @Failure 404 {object} dto.ErrorResponse "Not a member"
// @Router /clubs/{id}/members/{userId} [delete]
func (c *ClubController) RemoveMember(ctx *gin.Context) {
	actorID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	clubID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	memberID, ok := parseIDParam(ctx, "userId")
	if !ok {
		return
	}

	if err := c.clubService.RemoveMember(ctx.Request.Context(), actorID, clubID, memberID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Member removed"}))
}

// GetClubMembers lists a club's members
// @Summary List club members
// @Description Retrieves the club's member list. Visible to members and admins only.
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Param page query int false "Page number (1-based)" default(1) minimum(1)
// @Param pageSize query int false "Page size" default(10) minimum(1) maximum(100)
// @Success 200 {object} dto.APIResponse{data=dto.ClubMemberListResponse} "Members retrieved"
// @Failure 403 {object} dto.ErrorResponse "Members and admins only"
// @Failure 404 {object} dto.ErrorResponse "Club not found"
// @Router /clubs/{id}/members [get]
func (c *ClubController) GetClubMembers(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	clubID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	page, pageSize := helpers.ParsePaginationParams(ctx)
	resp, err := c.clubService.GetClubMembers(ctx.Request.Context(), userID, clubID, page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}
