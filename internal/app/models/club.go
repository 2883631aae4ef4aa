package models

import "time"

// Club represents a student organization with an approval workflow and a
// single owning admin
type Club struct {
	ID          int64      `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Description string     `json:"description" db:"description"`
	AdminID     int64      `json:"adminId" db:"admin_id"`
	LogoURL     string     `json:"logoUrl" db:"logo_url"`
	Status      ClubStatus `json:"status" db:"status"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`

	// Related entities
	Admin   *User `json:"admin,omitempty"`
	Members []*User `json:"members,omitempty"`
}

// ClubMembership represents a user belonging to a club. At most one row may
// exist per (user, club) pair, enforced by a unique constraint.
type ClubMembership struct {
	ID       int64     `json:"id" db:"id"`
	UserID   int64     `json:"userId" db:"user_id"`
	ClubID   int64     `json:"clubId" db:"club_id"`
	JoinDate time.Time `json:"joinDate" db:"join_date"`

	// Related entities
	User *User `json:"user,omitempty"`
}
