package dto

import (
	"time"

	"github.com/emre/clubsphere/internal/app/models"
)

// RegistrationResponse represents a user's registration for an event
type RegistrationResponse struct {
	ID               int64          `json:"id"`
	UserID           int64          `json:"userId"`
	EventID          int64          `json:"eventId"`
	RegistrationDate time.Time      `json:"registrationDate"`
	QRCode           string         `json:"qrCode"`
	Event            *EventResponse `json:"event,omitempty"`
}

// FromRegistration converts a models.Registration to a RegistrationResponse
func FromRegistration(reg *models.Registration) RegistrationResponse {
	resp := RegistrationResponse{
		ID:               reg.ID,
		UserID:           reg.UserID,
		EventID:          reg.EventID,
		RegistrationDate: reg.RegistrationDate,
		QRCode:           reg.QRCode,
	}
	if reg.Event != nil {
		event := FromEvent(reg.Event)
		resp.Event = &event
	}
	return resp
}

// RegistrationListResponse represents a list of registrations
type RegistrationListResponse struct {
	Registrations []RegistrationResponse `json:"registrations"`
	PaginationInfo
}

// VerifyPassRequest carries a scanned entry pass token
type VerifyPassRequest struct {
	Pass string `json:"pass" binding:"required"`
}

// VerifyPassResponse represents the result of verifying an entry pass
type VerifyPassResponse struct {
	Valid          bool  `json:"valid"`
	UserID         int64 `json:"userId,omitempty"`
	EventID        int64 `json:"eventId,omitempty"`
	RegistrationID int64 `json:"registrationId,omitempty"`
}
