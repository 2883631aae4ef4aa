package dto

import (
	"time"

	"github.com/emre/clubsphere/internal/app/models"
)

// --- Request DTOs ---

// CreateEventRequest represents event creation data
type CreateEventRequest struct {
	Name        string    `json:"name" binding:"required,min=3,max=200"`
	Description string    `json:"description" binding:"required"`
	DateTime    time.Time `json:"dateTime" binding:"required"`
	Location    string    `json:"location" binding:"required"`
	BannerURL   string    `json:"bannerUrl,omitempty" binding:"omitempty,url"`
}

// UpdateEventRequest represents event update data
type UpdateEventRequest struct {
	Name        string    `json:"name" binding:"required,min=3,max=200"`
	Description string    `json:"description" binding:"required"`
	DateTime    time.Time `json:"dateTime" binding:"required"`
	Location    string    `json:"location" binding:"required"`
	BannerURL   string    `json:"bannerUrl,omitempty" binding:"omitempty,url"`
}

// EventFilterRequest represents event filter parameters
type EventFilterRequest struct {
	ClubID   *int64     `form:"clubId,omitempty"`
	From     *time.Time `form:"from,omitempty" time_format:"2006-01-02T15:04:05Z07:00"`
	To       *time.Time `form:"to,omitempty" time_format:"2006-01-02T15:04:05Z07:00"`
	Upcoming *bool      `form:"upcoming,omitempty"`
	Page     int        `form:"page,default=1" binding:"min=1"`
	PageSize int        `form:"pageSize,default=10" binding:"min=1,max=100"`
}

// --- Response DTOs ---

// EventResponse represents basic event information
type EventResponse struct {
	ID              int64     `json:"id"`
	ClubID          int64     `json:"clubId"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	DateTime        time.Time `json:"dateTime"`
	Location        string    `json:"location"`
	BannerURL       string    `json:"bannerUrl,omitempty"`
	AttendanceCount int       `json:"attendanceCount"`
	HasReport       bool      `json:"hasReport"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// FromEvent converts a models.ClubEvent to an EventResponse
func FromEvent(event *models.ClubEvent) EventResponse {
	return EventResponse{
		ID:              event.ID,
		ClubID:          event.ClubID,
		Name:            event.Name,
		Description:     event.Description,
		DateTime:        event.DateTime,
		Location:        event.Location,
		BannerURL:       event.BannerURL,
		AttendanceCount: event.AttendanceCount,
		HasReport:       event.Report != nil && *event.Report != "",
		CreatedAt:       event.CreatedAt,
		UpdatedAt:       event.UpdatedAt,
	}
}

// EventListResponse represents a list of events
type EventListResponse struct {
	Events []EventResponse `json:"events"`
	PaginationInfo
}

// EventReportResponse represents a generated event report
type EventReportResponse struct {
	EventID int64  `json:"eventId"`
	Report  string `json:"report"`
}
