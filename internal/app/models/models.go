package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent RoleType = "STUDENT"
	RoleAdmin   RoleType = "ADMIN"
)

// ClubStatus defines the club approval workflow state
type ClubStatus string

const (
	ClubStatusPending  ClubStatus = "PENDING"
	ClubStatusApproved ClubStatus = "APPROVED"
	ClubStatusRejected ClubStatus = "REJECTED"
)

// IsTerminal reports whether the status permits no further transition.
// APPROVED and REJECTED are terminal; there is no path back to PENDING.
func (s ClubStatus) IsTerminal() bool {
	return s == ClubStatusApproved || s == ClubStatusRejected
}
