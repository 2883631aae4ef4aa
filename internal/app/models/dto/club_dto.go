package dto

import (
	"time"

	"github.com/emre/clubsphere/internal/app/models"
)

// --- Request DTOs ---

// CreateClubRequest represents club proposal data
type CreateClubRequest struct {
	Name        string `json:"name" binding:"required,min=3,max=100"`
	Description string `json:"description" binding:"required,min=10"`
	LogoURL     string `json:"logoUrl,omitempty" binding:"omitempty,url"`
}

// UpdateClubRequest represents club update data
type UpdateClubRequest struct {
	Name        string `json:"name" binding:"required,min=3,max=100"`
	Description string `json:"description" binding:"required,min=10"`
	LogoURL     string `json:"logoUrl,omitempty" binding:"omitempty,url"`
}

// AddMemberRequest represents an admin adding a user to a club by email
type AddMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ClubFilterRequest represents club filter parameters
type ClubFilterRequest struct {
	Status   *string `form:"status,omitempty" binding:"omitempty,oneof=PENDING APPROVED REJECTED"`
	Search   *string `form:"search,omitempty"` // Searches by name
	Page     int     `form:"page,default=1" binding:"min=1"`
	PageSize int     `form:"pageSize,default=10" binding:"min=1,max=100"`
}

// --- Response DTOs ---

// ClubResponse represents basic club information
type ClubResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	AdminID     int64     `json:"adminId"`
	LogoURL     string    `json:"logoUrl,omitempty"`
	Status      string    `json:"status" enums:"PENDING,APPROVED,REJECTED"`
	MemberCount int       `json:"memberCount,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// FromClub converts a models.Club to a ClubResponse
func FromClub(club *models.Club) ClubResponse {
	return ClubResponse{
		ID:          club.ID,
		Name:        club.Name,
		Description: club.Description,
		AdminID:     club.AdminID,
		LogoURL:     club.LogoURL,
		Status:      string(club.Status),
		CreatedAt:   club.CreatedAt,
		UpdatedAt:   club.UpdatedAt,
	}
}

// ClubMemberResponse represents a member in a club
type ClubMemberResponse struct {
	UserID    int64     `json:"userId"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	JoinDate  time.Time `json:"joinDate"`
}

// ClubDetailResponse extends ClubResponse with the admin and member list
type ClubDetailResponse struct {
	ClubResponse
	Admin   *UserResponse        `json:"admin,omitempty"`
	Members []ClubMemberResponse `json:"members,omitempty"`
}

// ClubListResponse represents a list of clubs
type ClubListResponse struct {
	Clubs []ClubResponse `json:"clubs"`
	PaginationInfo
}

// ClubMemberListResponse represents a paginated member list
type ClubMemberListResponse struct {
	Members []ClubMemberResponse `json:"members"`
	PaginationInfo
}
