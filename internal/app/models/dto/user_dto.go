package dto

import (
	"github.com/emre/clubsphere/internal/app/models"
)

// UserResponse represents basic user information
type UserResponse struct {
	ID         int64   `json:"id"`
	Email      string  `json:"email"`
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	RoleType   string  `json:"roleType" example:"STUDENT" enums:"STUDENT,ADMIN"`
	Department *string `json:"department,omitempty"`
	Year       *int    `json:"year,omitempty"`
	IsActive   bool    `json:"isActive"`
	AdminOf    []int64 `json:"adminOf,omitempty"`
}

// FromUser converts a models.User to a UserResponse
func FromUser(user *models.User) UserResponse {
	return UserResponse{
		ID:         user.ID,
		Email:      user.Email,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		RoleType:   string(user.RoleType),
		Department: user.Department,
		Year:       user.Year,
		IsActive:   user.IsActive,
		AdminOf:    user.AdminOf,
	}
}

// UserFilterRequest represents user filtering parameters
type UserFilterRequest struct {
	Role     *string `form:"role,omitempty"`
	Email    *string `form:"email,omitempty"`
	Name     *string `form:"name,omitempty"` // Searches first and last name
	Page     int     `form:"page,default=1" binding:"min=1"`
	PageSize int     `form:"pageSize,default=10" binding:"min=1,max=100"`
}

// UserListResponse represents a list of users with pagination
type UserListResponse struct {
	Users []UserResponse `json:"users"`
	PaginationInfo
}

// UpdateUserRequest represents user update data
type UpdateUserRequest struct {
	FirstName  string  `json:"firstName" binding:"required"`
	LastName   string  `json:"lastName" binding:"required"`
	Department *string `json:"department,omitempty"`
	Year       *int    `json:"year,omitempty" binding:"omitempty,min=1,max=8"`
}

// ChangePasswordRequest represents a password change request
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// UserEventsResponse represents the events a user is registered for
type UserEventsResponse struct {
	Events []EventResponse `json:"events"`
	PaginationInfo
}
