package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/emre/clubsphere/internal/app/models/dto"
	"github.com/emre/clubsphere/internal/pkg/apperrors"
)

// HandleAPIError maps application errors onto HTTP responses. Messages from
// CustomError values are surfaced to the client; raw errors get a generic one.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidationFailed):
		respondError(c, 400, dto.ErrorCodeValidationFailed, "Validation failed", err)
	case errors.Is(err, apperrors.ErrBadRequest):
		respondError(c, 400, dto.ErrorCodeInvalidRequest, "Bad request", err)
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respondError(c, 401, dto.ErrorCodeInvalidCredentials, "Invalid credentials", err)
	case errors.Is(err, apperrors.ErrTokenExpired):
		respondError(c, 401, dto.ErrorCodeExpiredToken, "Token expired", err)
	case errors.Is(err, apperrors.ErrTokenInvalid):
		respondError(c, 401, dto.ErrorCodeInvalidToken, "Invalid token", err)
	case errors.Is(err, apperrors.ErrTokenNotFound):
		respondError(c, 401, dto.ErrorCodeTokenNotFound, "Token not found", err)
	case errors.Is(err, apperrors.ErrTokenRevoked):
		respondError(c, 401, dto.ErrorCodeInvalidToken, "Token revoked", err)
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respondError(c, 403, dto.ErrorCodeForbidden, "Permission denied", err)
	case errors.Is(err, apperrors.ErrUserNotFound):
		respondError(c, 404, dto.ErrorCodeResourceNotFound, "User not found", err)
	case errors.Is(err, apperrors.ErrClubNotFound):
		respondError(c, 404, dto.ErrorCodeResourceNotFound, "Club not found", err)
	case errors.Is(err, apperrors.ErrEventNotFound):
		respondError(c, 404, dto.ErrorCodeResourceNotFound, "Event not found", err)
	case errors.Is(err, apperrors.ErrMembershipMissing):
		respondError(c, 404, dto.ErrorCodeResourceNotFound, "User is not a member of this club", err)
	case errors.Is(err, apperrors.ErrResourceNotFound):
		respondError(c, 404, dto.ErrorCodeResourceNotFound, "Resource not found", err)
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		respondError(c, 409, dto.ErrorCodeResourceAlreadyExists, "Email already exists", err)
	case errors.Is(err, apperrors.ErrMembershipExists):
		respondError(c, 409, dto.ErrorCodeResourceAlreadyExists, "User is already a member of this club", err)
	case errors.Is(err, apperrors.ErrRegistrationExists):
		respondError(c, 409, dto.ErrorCodeResourceAlreadyExists, "User is already registered for this event", err)
	case errors.Is(err, apperrors.ErrClubNotPending):
		respondError(c, 409, dto.ErrorCodeInvalidState, "Club decision has already been made", err)
	case errors.Is(err, apperrors.ErrConflict):
		respondError(c, 409, dto.ErrorCodeResourceAlreadyExists, "Conflict", err)
	case errors.Is(err, apperrors.ErrEventInPast):
		respondError(c, 422, dto.ErrorCodeInvalidState, "Event date is in the past", err)
	case errors.Is(err, apperrors.ErrExternalService):
		respondError(c, 502, dto.ErrorCodeExternalServiceError, "External service error", err)
	default:
		respondError(c, 500, dto.ErrorCodeInternalServer, "Internal server error", nil)
	}
}

func respondError(c *gin.Context, status int, code dto.ErrorCode, fallback string, err error) {
	message := fallback
	var customErr *apperrors.CustomError
	if errors.As(err, &customErr) && customErr.Message != "" {
		message = customErr.Message
	}
	c.JSON(status, dto.APIResponse{
		Error: dto.NewErrorDetail(code, message),
	})
}
