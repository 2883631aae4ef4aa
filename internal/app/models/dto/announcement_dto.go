package dto

import (
	"time"

	"github.com/emre/clubsphere/internal/app/models"
)

// CreateAnnouncementRequest represents announcement creation data
type CreateAnnouncementRequest struct {
	Title   string `json:"title" binding:"required,min=3,max=200"`
	Content string `json:"content" binding:"required"`
}

// AnnouncementResponse represents a club announcement
type AnnouncementResponse struct {
	ID        int64     `json:"id"`
	ClubID    int64     `json:"clubId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// FromAnnouncement converts a models.Announcement to an AnnouncementResponse
func FromAnnouncement(a *models.Announcement) AnnouncementResponse {
	return AnnouncementResponse{
		ID:        a.ID,
		ClubID:    a.ClubID,
		Title:     a.Title,
		Content:   a.Content,
		CreatedAt: a.CreatedAt,
	}
}

// AnnouncementListResponse represents a list of announcements
type AnnouncementListResponse struct {
	Announcements []AnnouncementResponse `json:"announcements"`
	PaginationInfo
}
