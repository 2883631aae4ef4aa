package models

import "time"

// Announcement represents a club announcement, visible only to members
type Announcement struct {
	ID        int64     `json:"id" db:"id"`
	ClubID    int64     `json:"clubId" db:"club_id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
