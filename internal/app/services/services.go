package services

import (
	"context"
	"time"

	"github.com/lukasw/clubsite/internal/app/models"
	"github.com/lukasw/clubsite/internal/app/repositories"
)

// Services defined in this package:
// - AuthService: registration, activation, login and token lifecycle
// - UserService: profile, email, password and account deletion
// - SportEventService: sport event graph CRUD with visibility checks
// - MembershipService: club membership requests and approvals
// - ReferenceService: cached lookup data for the event editor
// - TimerService: per-user time tracking

// The stores below are what the services need from the repository layer.
// Keeping them as interfaces lets tests substitute mocks.

// UserStore is the persistence surface used for user accounts
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByActivationCode(ctx context.Context, code string) (*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Activate(ctx context.Context, userID int64) error
	UpdateProfile(ctx context.Context, userID int64, firstName, lastName string) error
	RequestEmailChange(ctx context.Context, userID int64, email, activationCode string) error
	ConfirmEmailChange(ctx context.Context, userID int64) error
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
	Delete(ctx context.Context, userID int64) error
}

// TokenStore is the persistence surface for refresh tokens
type TokenStore interface {
	CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error
	GetTokenByValue(ctx context.Context, token string) (int64, time.Time, bool, error)
	RevokeToken(ctx context.Context, token string) error
	RevokeAllUserTokens(ctx context.Context, userID int64) error
}

// EventStore is the persistence surface for sport events
type EventStore interface {
	List(ctx context.Context, filter repositories.EventFilter) ([]models.SportEvent, error)
	GetByID(ctx context.Context, id int64) (*models.SportEvent, error)
	Create(ctx context.Context, ev *models.SportEvent) error
	Update(ctx context.Context, ev *models.SportEvent) error
	Delete(ctx context.Context, id int64) error
}

// MembershipStore is the persistence surface for club memberships
type MembershipStore interface {
	ClubExists(ctx context.Context, clubID int64) (bool, error)
	GetByUserAndClub(ctx context.Context, userID, clubID int64) (*models.SportClubMembership, error)
	AddSport(ctx context.Context, userID, clubID, sportID int64, status models.MemberStatus) error
	ApproveSport(ctx context.Context, userID, clubID, sportID int64) error
	RemoveSport(ctx context.Context, userID, clubID, sportID int64) error
	ListByClub(ctx context.Context, clubID int64) ([]models.SportClubMembership, error)
}

// ReferenceStore is the persistence surface for lookup tables
type ReferenceStore interface {
	GetAllSports(ctx context.Context) ([]models.Sport, error)
	GetAllSportLocations(ctx context.Context) ([]models.SportLocation, error)
	GetAllSportEventTypes(ctx context.Context) ([]models.SportEventType, error)
	GetAllSportClubs(ctx context.Context) ([]models.SportClub, error)
}

// TimerStore is the persistence surface for timers
type TimerStore interface {
	ListByUser(ctx context.Context, userID int64) ([]models.Timer, error)
	GetByID(ctx context.Context, id int64) (*models.Timer, error)
	Create(ctx context.Context, timer *models.Timer) error
	Update(ctx context.Context, timer *models.Timer) error
	Delete(ctx context.Context, id int64) error
}
