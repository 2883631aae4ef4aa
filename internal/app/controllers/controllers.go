package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/emre/clubsphere/internal/app/models/dto"
	"github.com/emre/clubsphere/internal/middleware"
)

// Controllers bundles every HTTP controller for route registration
type Controllers struct {
	Auth         *AuthController
	User         *UserController
	Club         *ClubController
	Event        *EventController
	Announcement *AnnouncementController
	Report       *ReportController
}

// parseIDParam reads a numeric path parameter, writing a 400 response when it
// is not a valid id. The boolean reports whether the caller should continue.
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name)
		errorDetail = errorDetail.WithDetails(name + " must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// requireUserID reads the authenticated user id from the context, writing a
// 401 response when the auth middleware has not set it.
func requireUserID(ctx *gin.Context) (int64, bool) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return 0, false
	}
	return userID, true
}
