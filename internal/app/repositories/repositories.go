package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository       *UserRepository
	TokenRepository      *TokenRepository
	ReferenceRepository  *ReferenceRepository
	MembershipRepository *MembershipRepository
	SportEventRepository *SportEventRepository
	TimerRepository      *TimerRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(db),
		TokenRepository:      NewTokenRepository(db),
		ReferenceRepository:  NewReferenceRepository(db),
		MembershipRepository: NewMembershipRepository(db),
		SportEventRepository: NewSportEventRepository(db),
		TimerRepository:      NewTimerRepository(db),
	}
}
