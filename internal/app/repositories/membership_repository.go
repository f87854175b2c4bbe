package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lukasw/clubsite/internal/app/models"
	"github.com/lukasw/clubsite/internal/pkg/apperrors"
	"github.com/lukasw/clubsite/internal/pkg/dberrors"
)

// MembershipRepository handles club membership database operations
type MembershipRepository struct {
	db *pgxpool.Pool
}

// NewMembershipRepository creates a new MembershipRepository
func NewMembershipRepository(db *pgxpool.Pool) *MembershipRepository {
	return &MembershipRepository{db: db}
}

// ClubExists checks that a club id refers to an existing club
func (r *MembershipRepository) ClubExists(ctx context.Context, clubID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM sport_clubs WHERE id = $1)`, clubID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking club existence: %w", err)
	}
	return exists, nil
}

// GetByUserAndClub retrieves the membership of a user in a club
func (r *MembershipRepository) GetByUserAndClub(ctx context.Context, userID, clubID int64) (*models.SportClubMembership, error) {
	var m models.SportClubMembership
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, sport_club_id FROM sport_club_memberships
		 WHERE user_id = $1 AND sport_club_id = $2`,
		userID, clubID).Scan(&m.ID, &m.UserID, &m.SportClubID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMembershipNotFound
		}
		return nil, fmt.Errorf("error getting membership: %w", err)
	}

	if err := r.loadSports(ctx, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// AddSport adds a sport entry to a membership, creating the membership row if
// the user has none for this club yet. New entries start unapproved.
func (r *MembershipRepository) AddSport(ctx context.Context, userID, clubID, sportID int64, status models.MemberStatus) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var membershipID int64
	err = tx.QueryRow(ctx,
		`INSERT INTO sport_club_memberships (user_id, sport_club_id)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id, sport_club_id) DO UPDATE SET user_id = EXCLUDED.user_id
		 RETURNING id`,
		userID, clubID).Scan(&membershipID)
	if err != nil {
		return fmt.Errorf("error upserting membership: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO membership_sports (membership_id, sport_id, member_status, approved)
		 VALUES ($1, $2, $3, false)`,
		membershipID, sportID, status)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "membership_sports_pkey") {
			return apperrors.ErrMembershipAlreadyExists
		}
		return fmt.Errorf("error adding membership sport: %w", err)
	}

	return tx.Commit(ctx)
}

// ApproveSport approves the sport entry of a user's membership in a club
func (r *MembershipRepository) ApproveSport(ctx context.Context, userID, clubID, sportID int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE membership_sports ms
		 SET approved = true
		 FROM sport_club_memberships m
		 WHERE ms.membership_id = m.id AND m.user_id = $1 AND m.sport_club_id = $2 AND ms.sport_id = $3`,
		userID, clubID, sportID)
	if err != nil {
		return fmt.Errorf("error approving membership sport: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrMembershipNotFound
	}
	return nil
}

// RemoveSport drops one sport entry; the membership row itself stays so other
// sports keep their approval state.
func (r *MembershipRepository) RemoveSport(ctx context.Context, userID, clubID, sportID int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM membership_sports ms
		 USING sport_club_memberships m
		 WHERE ms.membership_id = m.id AND m.user_id = $1 AND m.sport_club_id = $2 AND ms.sport_id = $3`,
		userID, clubID, sportID)
	if err != nil {
		return fmt.Errorf("error removing membership sport: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrMembershipNotFound
	}
	return nil
}

// ListByClub retrieves every membership of a club with user and sport entries
func (r *MembershipRepository) ListByClub(ctx context.Context, clubID int64) ([]models.SportClubMembership, error) {
	query := `
		SELECT m.id, m.user_id, m.sport_club_id,
			u.username, u.first_name, u.last_name,
			ms.sport_id, s.name, ms.member_status, ms.approved
		FROM sport_club_memberships m
		JOIN users u ON u.id = m.user_id
		LEFT JOIN membership_sports ms ON ms.membership_id = m.id
		LEFT JOIN sports s ON s.id = ms.sport_id
		WHERE m.sport_club_id = $1
		ORDER BY m.id`

	rows, err := r.db.Query(ctx, query, clubID)
	if err != nil {
		return nil, fmt.Errorf("error querying club memberships: %w", err)
	}
	defer rows.Close()

	byID := make(map[int64]*models.SportClubMembership)
	var order []int64
	for rows.Next() {
		var (
			m         models.SportClubMembership
			username  string
			firstName string
			lastName  string
			sportID   *int64
			sportName *string
			status    *models.MemberStatus
			approved  *bool
		)
		if err := rows.Scan(&m.ID, &m.UserID, &m.SportClubID,
			&username, &firstName, &lastName,
			&sportID, &sportName, &status, &approved); err != nil {
			return nil, fmt.Errorf("error scanning club membership row: %w", err)
		}

		existing, ok := byID[m.ID]
		if !ok {
			m.User = &models.User{ID: m.UserID, Username: username, FirstName: firstName, LastName: lastName}
			byID[m.ID] = &m
			order = append(order, m.ID)
			existing = &m
		}
		if sportID != nil {
			entry := models.MembershipSport{SportID: *sportID, MemberStatus: *status, Approved: *approved}
			if sportName != nil {
				entry.Sport = &models.Sport{ID: *sportID, Name: *sportName}
			}
			existing.Sports = append(existing.Sports, entry)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating club membership rows: %w", err)
	}

	memberships := make([]models.SportClubMembership, 0, len(order))
	for _, id := range order {
		memberships = append(memberships, *byID[id])
	}
	return memberships, nil
}

func (r *MembershipRepository) loadSports(ctx context.Context, m *models.SportClubMembership) error {
	rows, err := r.db.Query(ctx,
		`SELECT ms.sport_id, s.name, ms.member_status, ms.approved
		 FROM membership_sports ms
		 JOIN sports s ON s.id = ms.sport_id
		 WHERE ms.membership_id = $1
		 ORDER BY ms.sport_id`, m.ID)
	if err != nil {
		return fmt.Errorf("error loading membership sports: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var entry models.MembershipSport
		var name string
		if err := rows.Scan(&entry.SportID, &name, &entry.MemberStatus, &entry.Approved); err != nil {
			return fmt.Errorf("error scanning membership sport row: %w", err)
		}
		entry.Sport = &models.Sport{ID: entry.SportID, Name: name}
		m.Sports = append(m.Sports, entry)
	}
	return rows.Err()
}
