package models

import "time"

// ClubEvent represents an event hosted by a club. Events live in a single
// top-level table carrying their club id, so lookups by event id never scan
// per-club partitions.
type ClubEvent struct {
	ID              int64     `json:"id" db:"id"`
	ClubID          int64     `json:"clubId" db:"club_id"`
	Name            string    `json:"name" db:"name"`
	Description     string    `json:"description" db:"description"`
	DateTime        time.Time `json:"dateTime" db:"date_time"`
	Location        string    `json:"location" db:"location"`
	BannerURL       string    `json:"bannerUrl" db:"banner_url"`
	Report          *string   `json:"report,omitempty" db:"report"`
	AttendanceCount int       `json:"attendanceCount" db:"attendance_count"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}

// IsPast reports whether the event's scheduled time is before now.
// Derived, never stored.
func (e *ClubEvent) IsPast(now time.Time) bool {
	return e.DateTime.Before(now)
}

// Registration represents a user attending an event. QRCode carries a signed
// entry pass, not a plain concatenation of ids.
type Registration struct {
	ID               int64     `json:"id" db:"id"`
	UserID           int64     `json:"userId" db:"user_id"`
	EventID          int64     `json:"eventId" db:"event_id"`
	RegistrationDate time.Time `json:"registrationDate" db:"registration_date"`
	QRCode           string    `json:"qrCode" db:"qr_code"`

	// Related entities
	Event *ClubEvent `json:"event,omitempty"`
	User  *User      `json:"user,omitempty"`
}
