package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *UserRepository
	ClubRepository         *ClubRepository
	MembershipRepository   *MembershipRepository
	EventRepository        *EventRepository
	RegistrationRepository *RegistrationRepository
	AnnouncementRepository *AnnouncementRepository
	TokenRepository        *TokenRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(db),
		ClubRepository:         NewClubRepository(db),
		MembershipRepository:   NewMembershipRepository(db),
		EventRepository:        NewEventRepository(db),
		RegistrationRepository: NewRegistrationRepository(db),
		AnnouncementRepository: NewAnnouncementRepository(db),
		TokenRepository:        NewTokenRepository(db),
	}
}
