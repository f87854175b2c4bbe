package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lukasw/clubsite/internal/app/models"
	"github.com/lukasw/clubsite/internal/pkg/apperrors"
	"github.com/lukasw/clubsite/internal/pkg/dberrors"
)

// UserRepository handles user database operations
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, username, password, access_level, first_name, last_name, email,
	unconfirmed_email, activation_code, active, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Password,
		&u.AccessLevel,
		&u.FirstName,
		&u.LastName,
		&u.Email,
		&u.UnconfirmedEmail,
		&u.ActivationCode,
		&u.Active,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user and sets its generated id
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, password, access_level, first_name, last_name, email,
			unconfirmed_email, activation_code, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		RETURNING id`

	err := r.db.QueryRow(ctx, query,
		user.Username,
		user.Password,
		user.AccessLevel,
		user.FirstName,
		user.LastName,
		user.Email,
		user.UnconfirmedEmail,
		user.ActivationCode,
		user.Active,
		time.Now(),
	).Scan(&user.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_username_key") {
			return apperrors.ErrUsernameAlreadyExists
		}
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error creating user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID with memberships expanded
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error getting user by id: %w", err)
	}

	if err := r.loadMemberships(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE username = $1`, userColumns)

	user, err := scanUser(r.db.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error getting user by username: %w", err)
	}

	return user, nil
}

// GetByActivationCode retrieves a user holding the given activation code
func (r *UserRepository) GetByActivationCode(ctx context.Context, code string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE activation_code = $1`, userColumns)

	user, err := scanUser(r.db.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInvalidActivationCode
		}
		return nil, fmt.Errorf("error getting user by activation code: %w", err)
	}

	return user, nil
}

// UsernameExists checks if a username is already taken
func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(username) = LOWER($1))`, username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking username existence: %w", err)
	}
	return exists, nil
}

// EmailExists checks if an email is already in use
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking email existence: %w", err)
	}
	return exists, nil
}

// Activate marks the account active and clears the activation code
func (r *UserRepository) Activate(ctx context.Context, userID int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET active = true, activation_code = NULL, updated_at = $2 WHERE id = $1`,
		userID, time.Now())
	if err != nil {
		return fmt.Errorf("error activating user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// UpdateProfile updates the user's name fields
func (r *UserRepository) UpdateProfile(ctx context.Context, userID int64, firstName, lastName string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET first_name = $2, last_name = $3, updated_at = $4 WHERE id = $1`,
		userID, firstName, lastName, time.Now())
	if err != nil {
		return fmt.Errorf("error updating profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// RequestEmailChange stores the new address as unconfirmed with a fresh activation code
func (r *UserRepository) RequestEmailChange(ctx context.Context, userID int64, email, activationCode string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET unconfirmed_email = $2, activation_code = $3, updated_at = $4 WHERE id = $1`,
		userID, email, activationCode, time.Now())
	if err != nil {
		return fmt.Errorf("error requesting email change: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// ConfirmEmailChange promotes the unconfirmed email to the confirmed one
func (r *UserRepository) ConfirmEmailChange(ctx context.Context, userID int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users
		 SET email = unconfirmed_email, unconfirmed_email = NULL, activation_code = NULL, updated_at = $2
		 WHERE id = $1 AND unconfirmed_email IS NOT NULL`,
		userID, time.Now())
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error confirming email change: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrInvalidActivationCode
	}
	return nil
}

// UpdatePassword replaces the password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET password = $2, updated_at = $3 WHERE id = $1`,
		userID, passwordHash, time.Now())
	if err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// Delete removes the account. Memberships, events and timers go with it via
// ON DELETE CASCADE.
func (r *UserRepository) Delete(ctx context.Context, userID int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// loadMemberships expands the user's club memberships with their sport entries
func (r *UserRepository) loadMemberships(ctx context.Context, user *models.User) error {
	query := `
		SELECT m.id, m.user_id, m.sport_club_id, c.name,
			ms.sport_id, s.name, ms.member_status, ms.approved
		FROM sport_club_memberships m
		JOIN sport_clubs c ON c.id = m.sport_club_id
		LEFT JOIN membership_sports ms ON ms.membership_id = m.id
		LEFT JOIN sports s ON s.id = ms.sport_id
		WHERE m.user_id = $1
		ORDER BY m.id`

	rows, err := r.db.Query(ctx, query, user.ID)
	if err != nil {
		return fmt.Errorf("error loading memberships: %w", err)
	}
	defer rows.Close()

	byID := make(map[int64]*models.SportClubMembership)
	var order []int64
	for rows.Next() {
		var (
			m        models.SportClubMembership
			clubName string
			sportID  *int64
			sportName *string
			status   *models.MemberStatus
			approved *bool
		)
		if err := rows.Scan(&m.ID, &m.UserID, &m.SportClubID, &clubName,
			&sportID, &sportName, &status, &approved); err != nil {
			return fmt.Errorf("error scanning membership row: %w", err)
		}

		existing, ok := byID[m.ID]
		if !ok {
			m.SportClub = &models.SportClub{ID: m.SportClubID, Name: clubName}
			byID[m.ID] = &m
			order = append(order, m.ID)
			existing = &m
		}
		if sportID != nil {
			entry := models.MembershipSport{
				SportID:      *sportID,
				MemberStatus: *status,
				Approved:     *approved,
			}
			if sportName != nil {
				entry.Sport = &models.Sport{ID: *sportID, Name: *sportName}
			}
			existing.Sports = append(existing.Sports, entry)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating membership rows: %w", err)
	}

	user.Memberships = make([]models.SportClubMembership, 0, len(order))
	for _, id := range order {
		user.Memberships = append(user.Memberships, *byID[id])
	}
	return nil
}
