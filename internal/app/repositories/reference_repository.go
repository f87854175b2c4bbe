package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lukasw/clubsite/internal/app/models"
)

// ReferenceRepository serves the slow-changing lookup tables used when editing
// events: sports, locations, event types and clubs.
type ReferenceRepository struct {
	db *pgxpool.Pool
}

// NewReferenceRepository creates a new ReferenceRepository
func NewReferenceRepository(db *pgxpool.Pool) *ReferenceRepository {
	return &ReferenceRepository{db: db}
}

// GetAllSports retrieves all sports ordered by name
func (r *ReferenceRepository) GetAllSports(ctx context.Context) ([]models.Sport, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM sports ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("error querying sports: %w", err)
	}
	defer rows.Close()

	sports := []models.Sport{}
	for rows.Next() {
		var s models.Sport
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, fmt.Errorf("error scanning sport row: %w", err)
		}
		sports = append(sports, s)
	}
	return sports, rows.Err()
}

// GetAllSportLocations retrieves all locations ordered by name
func (r *ReferenceRepository) GetAllSportLocations(ctx context.Context) ([]models.SportLocation, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, COALESCE(address, '') FROM sport_locations ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("error querying sport locations: %w", err)
	}
	defer rows.Close()

	locations := []models.SportLocation{}
	for rows.Next() {
		var l models.SportLocation
		if err := rows.Scan(&l.ID, &l.Name, &l.Address); err != nil {
			return nil, fmt.Errorf("error scanning sport location row: %w", err)
		}
		locations = append(locations, l)
	}
	return locations, rows.Err()
}

// GetAllSportEventTypes retrieves all event types ordered by name
func (r *ReferenceRepository) GetAllSportEventTypes(ctx context.Context) ([]models.SportEventType, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM sport_event_types ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("error querying sport event types: %w", err)
	}
	defer rows.Close()

	types := []models.SportEventType{}
	for rows.Next() {
		var t models.SportEventType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("error scanning sport event type row: %w", err)
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

// GetAllSportClubs retrieves all clubs ordered by name
func (r *ReferenceRepository) GetAllSportClubs(ctx context.Context) ([]models.SportClub, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM sport_clubs ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("error querying sport clubs: %w", err)
	}
	defer rows.Close()

	clubs := []models.SportClub{}
	for rows.Next() {
		var c models.SportClub
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("error scanning sport club row: %w", err)
		}
		clubs = append(clubs, c)
	}
	return clubs, rows.Err()
}
