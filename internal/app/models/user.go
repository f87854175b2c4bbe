package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID               int64                 `json:"id" db:"id" example:"1"`                          // Unique identifier for the user
	Username         string                `json:"username" db:"username" example:"User42"`         // Unique login name, 4-16 alphanumeric characters
	Password         string                `json:"-" db:"password"`                                 // User's hashed password (excluded from JSON)
	AccessLevel      AccessLevel           `json:"accessLevel" db:"access_level" example:"0"`       // Site-wide permission level
	FirstName        string                `json:"firstName" db:"first_name" example:"John"`        // User's first name
	LastName         string                `json:"lastName" db:"last_name" example:"Doe"`           // User's last name
	Email            string                `json:"email" db:"email" example:"user@example.com"`     // Confirmed email address
	UnconfirmedEmail *string               `json:"unconfirmedEmail,omitempty" db:"unconfirmed_email"` // Pending email change waiting for confirmation (nullable)
	ActivationCode   *string               `json:"-" db:"activation_code"`                          // Code sent out to activate the account or confirm an email change
	Active           bool                  `json:"active" db:"active" example:"true"`               // Whether the account has been activated
	CreatedAt        time.Time             `json:"createdAt" db:"created_at"`                       // Timestamp when the user was created
	UpdatedAt        time.Time             `json:"updatedAt" db:"updated_at"`                       // Timestamp when the user was last updated
	Memberships      []SportClubMembership `json:"memberships,omitempty"`                           // Relation, no db tag
}

// UserRef refers to a user either by id only or with the full record expanded.
// It replaces the duck-typed "number or object" shape of the original data model.
type UserRef struct {
	ID   int64 `json:"id" example:"1"`
	User *User `json:"user,omitempty"` // nil while the reference is not expanded
}

// Ref creates an expanded reference to the given user.
func Ref(u *User) UserRef {
	if u == nil {
		return UserRef{}
	}
	return UserRef{ID: u.ID, User: u}
}
