package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lukasw/clubsite/internal/app/models"
	"github.com/lukasw/clubsite/internal/pkg/apperrors"
)

// SportEventRepository handles the nested sport event graph: events with their
// club associations, matches, teams, sets and scores. Updates replace the whole
// graph below the event row in a single transaction.
type SportEventRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSportEventRepository creates a new SportEventRepository
func NewSportEventRepository(db *pgxpool.Pool) *SportEventRepository {
	return &SportEventRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// EventFilter narrows the event listing
type EventFilter struct {
	CreatorID *int64
	SportID   *int64
	ClubID    *int64
}

// List retrieves events matching the filter with their full graph expanded.
// Visibility filtering is the service's concern, not the repository's.
func (r *SportEventRepository) List(ctx context.Context, filter EventFilter) ([]models.SportEvent, error) {
	qb := r.sb.Select(
		"e.id", "e.start_time", "e.end_time", "e.description", "e.visibility",
		"e.creator_id", "u.username", "u.first_name", "u.last_name",
		"e.sport_id", "s.name",
		"e.sport_location_id", "l.name", "COALESCE(l.address, '')",
		"e.sport_event_type_id", "t.name").
		From("sport_events e").
		Join("users u ON u.id = e.creator_id").
		Join("sports s ON s.id = e.sport_id").
		Join("sport_locations l ON l.id = e.sport_location_id").
		Join("sport_event_types t ON t.id = e.sport_event_type_id").
		OrderBy("e.start_time", "e.id")

	if filter.CreatorID != nil {
		qb = qb.Where(squirrel.Eq{"e.creator_id": *filter.CreatorID})
	}
	if filter.SportID != nil {
		qb = qb.Where(squirrel.Eq{"e.sport_id": *filter.SportID})
	}
	if filter.ClubID != nil {
		qb = qb.Where("e.id IN (SELECT sport_event_id FROM sport_event_clubs WHERE sport_club_id = ?)", *filter.ClubID)
	}

	sql, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build event list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying sport events: %w", err)
	}
	defer rows.Close()

	events := []models.SportEvent{}
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sport event rows: %w", err)
	}

	if err := r.loadGraph(ctx, events); err != nil {
		return nil, err
	}
	return events, nil
}

// GetByID retrieves a single event with its full graph
func (r *SportEventRepository) GetByID(ctx context.Context, id int64) (*models.SportEvent, error) {
	query := `
		SELECT e.id, e.start_time, e.end_time, e.description, e.visibility,
			e.creator_id, u.username, u.first_name, u.last_name,
			e.sport_id, s.name,
			e.sport_location_id, l.name, COALESCE(l.address, ''),
			e.sport_event_type_id, t.name
		FROM sport_events e
		JOIN users u ON u.id = e.creator_id
		JOIN sports s ON s.id = e.sport_id
		JOIN sport_locations l ON l.id = e.sport_location_id
		JOIN sport_event_types t ON t.id = e.sport_event_type_id
		WHERE e.id = $1`

	ev, err := scanEvent(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSportEventNotFound
		}
		return nil, err
	}

	events := []models.SportEvent{*ev}
	if err := r.loadGraph(ctx, events); err != nil {
		return nil, err
	}
	return &events[0], nil
}

// Create inserts the event and its whole graph, setting generated ids
func (r *SportEventRepository) Create(ctx context.Context, ev *models.SportEvent) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var id int64
	err = tx.QueryRow(ctx,
		`INSERT INTO sport_events
			(start_time, end_time, description, visibility, creator_id, sport_id, sport_location_id, sport_event_type_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		ev.StartTime, ev.EndTime, ev.Description, ev.Visibility,
		ev.CreatorID, ev.SportID, ev.LocationID, ev.EventTypeID).Scan(&id)
	if err != nil {
		return fmt.Errorf("error inserting sport event: %w", err)
	}
	ev.ID = &id

	if err := r.insertGraph(ctx, tx, ev); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Update replaces the event row and its whole graph
func (r *SportEventRepository) Update(ctx context.Context, ev *models.SportEvent) error {
	if ev.ID == nil {
		return apperrors.ErrSportEventNotFound
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE sport_events
		 SET start_time = $2, end_time = $3, description = $4, visibility = $5,
			sport_id = $6, sport_location_id = $7, sport_event_type_id = $8
		 WHERE id = $1`,
		*ev.ID, ev.StartTime, ev.EndTime, ev.Description, ev.Visibility,
		ev.SportID, ev.LocationID, ev.EventTypeID)
	if err != nil {
		return fmt.Errorf("error updating sport event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSportEventNotFound
	}

	// Matches cascade down to teams, sets and scores
	if _, err := tx.Exec(ctx, `DELETE FROM sport_event_clubs WHERE sport_event_id = $1`, *ev.ID); err != nil {
		return fmt.Errorf("error clearing event clubs: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM sport_matches WHERE sport_event_id = $1`, *ev.ID); err != nil {
		return fmt.Errorf("error clearing event matches: %w", err)
	}

	if err := r.insertGraph(ctx, tx, ev); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Delete removes the event; children go with it via ON DELETE CASCADE
func (r *SportEventRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM sport_events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting sport event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSportEventNotFound
	}
	return nil
}

func scanEvent(row pgx.Row) (*models.SportEvent, error) {
	var (
		ev       models.SportEvent
		id       int64
		creator  models.User
		sport    models.Sport
		location models.SportLocation
		evType   models.SportEventType
	)
	err := row.Scan(
		&id, &ev.StartTime, &ev.EndTime, &ev.Description, &ev.Visibility,
		&ev.CreatorID, &creator.Username, &creator.FirstName, &creator.LastName,
		&ev.SportID, &sport.Name,
		&ev.LocationID, &location.Name, &location.Address,
		&ev.EventTypeID, &evType.Name,
	)
	if err != nil {
		return nil, err
	}

	ev.ID = &id
	creator.ID = ev.CreatorID
	sport.ID = ev.SportID
	location.ID = ev.LocationID
	evType.ID = ev.EventTypeID
	ev.Creator = &creator
	ev.Sport = &sport
	ev.Location = &location
	ev.EventType = &evType
	ev.Clubs = []models.EventClub{}
	ev.Matches = []models.SportMatch{}
	return &ev, nil
}

// loadGraph fills clubs, matches, teams, sets and scores for the given events
func (r *SportEventRepository) loadGraph(ctx context.Context, events []models.SportEvent) error {
	if len(events) == 0 {
		return nil
	}

	ids := make([]int64, len(events))
	byID := make(map[int64]*models.SportEvent, len(events))
	for i := range events {
		ids[i] = *events[i].ID
		byID[ids[i]] = &events[i]
	}

	// Clubs
	rows, err := r.db.Query(ctx,
		`SELECT ec.sport_event_id, ec.sport_club_id, c.name, ec.host
		 FROM sport_event_clubs ec
		 JOIN sport_clubs c ON c.id = ec.sport_club_id
		 WHERE ec.sport_event_id = ANY($1)
		 ORDER BY ec.host DESC, ec.sport_club_id`, ids)
	if err != nil {
		return fmt.Errorf("error querying event clubs: %w", err)
	}
	for rows.Next() {
		var eventID int64
		var ec models.EventClub
		var name string
		if err := rows.Scan(&eventID, &ec.SportClubID, &name, &ec.Host); err != nil {
			rows.Close()
			return fmt.Errorf("error scanning event club row: %w", err)
		}
		ec.SportClub = &models.SportClub{ID: ec.SportClubID, Name: name}
		byID[eventID].Clubs = append(byID[eventID].Clubs, ec)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating event club rows: %w", err)
	}

	// Matches
	matchEvent := make(map[int64]int64) // match id -> event id
	rows, err = r.db.Query(ctx,
		`SELECT id, sport_event_id, description FROM sport_matches
		 WHERE sport_event_id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return fmt.Errorf("error querying matches: %w", err)
	}
	for rows.Next() {
		var m models.SportMatch
		var eventID int64
		if err := rows.Scan(&m.ID, &eventID, &m.Description); err != nil {
			rows.Close()
			return fmt.Errorf("error scanning match row: %w", err)
		}
		m.Teams = []models.SportTeam{}
		m.Sets = []models.SportMatchSet{}
		matchEvent[m.ID] = eventID
		byID[eventID].Matches = append(byID[eventID].Matches, m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating match rows: %w", err)
	}

	matchRef := func(matchID int64) *models.SportMatch {
		eventID, ok := matchEvent[matchID]
		if !ok {
			return nil
		}
		ev := byID[eventID]
		for i := range ev.Matches {
			if ev.Matches[i].ID == matchID {
				return &ev.Matches[i]
			}
		}
		return nil
	}

	if len(matchEvent) == 0 {
		return nil
	}
	matchIDs := make([]int64, 0, len(matchEvent))
	for id := range matchEvent {
		matchIDs = append(matchIDs, id)
	}

	// Teams with their users
	rows, err = r.db.Query(ctx,
		`SELECT t.sport_match_id, t.team_number, tu.user_id, u.username, u.first_name, u.last_name
		 FROM sport_teams t
		 LEFT JOIN sport_team_users tu ON tu.sport_match_id = t.sport_match_id AND tu.team_number = t.team_number
		 LEFT JOIN users u ON u.id = tu.user_id
		 WHERE t.sport_match_id = ANY($1)
		 ORDER BY t.sport_match_id, t.team_number, tu.user_id`, matchIDs)
	if err != nil {
		return fmt.Errorf("error querying teams: %w", err)
	}
	for rows.Next() {
		var (
			matchID    int64
			teamNumber int
			userID     *int64
			username   *string
			firstName  *string
			lastName   *string
		)
		if err := rows.Scan(&matchID, &teamNumber, &userID, &username, &firstName, &lastName); err != nil {
			rows.Close()
			return fmt.Errorf("error scanning team row: %w", err)
		}
		m := matchRef(matchID)
		if m == nil {
			continue
		}
		if len(m.Teams) == 0 || m.Teams[len(m.Teams)-1].TeamNumber != teamNumber {
			m.Teams = append(m.Teams, models.SportTeam{TeamNumber: teamNumber, Users: []models.UserRef{}})
		}
		if userID != nil {
			team := &m.Teams[len(m.Teams)-1]
			ref := models.UserRef{ID: *userID}
			if username != nil {
				ref.User = &models.User{ID: *userID, Username: *username}
				if firstName != nil {
					ref.User.FirstName = *firstName
				}
				if lastName != nil {
					ref.User.LastName = *lastName
				}
			}
			team.Users = append(team.Users, ref)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating team rows: %w", err)
	}

	// Sets with scores
	setMatch := make(map[int64]int64) // set id -> match id
	rows, err = r.db.Query(ctx,
		`SELECT id, sport_match_id, set_number FROM sport_match_sets
		 WHERE sport_match_id = ANY($1) ORDER BY sport_match_id, set_number`, matchIDs)
	if err != nil {
		return fmt.Errorf("error querying match sets: %w", err)
	}
	for rows.Next() {
		var s models.SportMatchSet
		var matchID int64
		if err := rows.Scan(&s.ID, &matchID, &s.SetNumber); err != nil {
			rows.Close()
			return fmt.Errorf("error scanning match set row: %w", err)
		}
		s.Scores = []models.SportScore{}
		m := matchRef(matchID)
		if m == nil {
			continue
		}
		setMatch[s.ID] = matchID
		m.Sets = append(m.Sets, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating match set rows: %w", err)
	}

	if len(setMatch) == 0 {
		return nil
	}
	setIDs := make([]int64, 0, len(setMatch))
	for id := range setMatch {
		setIDs = append(setIDs, id)
	}

	rows, err = r.db.Query(ctx,
		`SELECT sport_match_set_id, team_number, score FROM sport_scores
		 WHERE sport_match_set_id = ANY($1) ORDER BY sport_match_set_id, team_number`, setIDs)
	if err != nil {
		return fmt.Errorf("error querying scores: %w", err)
	}
	for rows.Next() {
		var setID int64
		var sc models.SportScore
		if err := rows.Scan(&setID, &sc.TeamNumber, &sc.Score); err != nil {
			rows.Close()
			return fmt.Errorf("error scanning score row: %w", err)
		}
		m := matchRef(setMatch[setID])
		if m == nil {
			continue
		}
		for i := range m.Sets {
			if m.Sets[i].ID == setID {
				m.Sets[i].Scores = append(m.Sets[i].Scores, sc)
				break
			}
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating score rows: %w", err)
	}

	return nil
}

// insertGraph writes clubs, matches, teams, sets and scores below an event row.
// Client-side synthetic (non-positive) match and set ids are discarded in favor
// of generated ones.
func (r *SportEventRepository) insertGraph(ctx context.Context, tx pgx.Tx, ev *models.SportEvent) error {
	for _, c := range ev.Clubs {
		_, err := tx.Exec(ctx,
			`INSERT INTO sport_event_clubs (sport_event_id, sport_club_id, host) VALUES ($1, $2, $3)`,
			*ev.ID, c.SportClubID, c.Host)
		if err != nil {
			return fmt.Errorf("error inserting event club: %w", err)
		}
	}

	for mi := range ev.Matches {
		m := &ev.Matches[mi]
		err := tx.QueryRow(ctx,
			`INSERT INTO sport_matches (sport_event_id, description) VALUES ($1, $2) RETURNING id`,
			*ev.ID, m.Description).Scan(&m.ID)
		if err != nil {
			return fmt.Errorf("error inserting match: %w", err)
		}

		for _, t := range m.Teams {
			_, err := tx.Exec(ctx,
				`INSERT INTO sport_teams (sport_match_id, team_number) VALUES ($1, $2)`,
				m.ID, t.TeamNumber)
			if err != nil {
				return fmt.Errorf("error inserting team: %w", err)
			}
			for _, u := range t.Users {
				_, err := tx.Exec(ctx,
					`INSERT INTO sport_team_users (sport_match_id, team_number, user_id) VALUES ($1, $2, $3)`,
					m.ID, t.TeamNumber, u.ID)
				if err != nil {
					return fmt.Errorf("error inserting team user: %w", err)
				}
			}
		}

		for si := range m.Sets {
			s := &m.Sets[si]
			err := tx.QueryRow(ctx,
				`INSERT INTO sport_match_sets (sport_match_id, set_number) VALUES ($1, $2) RETURNING id`,
				m.ID, s.SetNumber).Scan(&s.ID)
			if err != nil {
				return fmt.Errorf("error inserting match set: %w", err)
			}
			for _, sc := range s.Scores {
				_, err := tx.Exec(ctx,
					`INSERT INTO sport_scores (sport_match_set_id, team_number, score) VALUES ($1, $2, $3)`,
					s.ID, sc.TeamNumber, sc.Score)
				if err != nil {
					return fmt.Errorf("error inserting score: %w", err)
				}
			}
		}
	}

	return nil
}
