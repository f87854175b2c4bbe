package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lukasw/clubsite/internal/app/models"
	"github.com/lukasw/clubsite/internal/pkg/logger"
)

const referenceCacheTTL = 10 * time.Minute

// ReferenceService serves the lookup tables the event editor needs. Results
// are cached in Redis when a client is configured; a nil client disables
// caching entirely.
type ReferenceService struct {
	referenceRepo ReferenceStore
	cache         *redis.Client
}

// NewReferenceService creates a new ReferenceService
func NewReferenceService(referenceRepo ReferenceStore, cache *redis.Client) *ReferenceService {
	return &ReferenceService{
		referenceRepo: referenceRepo,
		cache:         cache,
	}
}

// GetSports retrieves all sports
func (s *ReferenceService) GetSports(ctx context.Context) ([]models.Sport, error) {
	var sports []models.Sport
	err := s.cached(ctx, "reference:sports", &sports, func(ctx context.Context) (interface{}, error) {
		return s.referenceRepo.GetAllSports(ctx)
	})
	return sports, err
}

// GetSportLocations retrieves all locations
func (s *ReferenceService) GetSportLocations(ctx context.Context) ([]models.SportLocation, error) {
	var locations []models.SportLocation
	err := s.cached(ctx, "reference:locations", &locations, func(ctx context.Context) (interface{}, error) {
		return s.referenceRepo.GetAllSportLocations(ctx)
	})
	return locations, err
}

// GetSportEventTypes retrieves all event types
func (s *ReferenceService) GetSportEventTypes(ctx context.Context) ([]models.SportEventType, error) {
	var types []models.SportEventType
	err := s.cached(ctx, "reference:event-types", &types, func(ctx context.Context) (interface{}, error) {
		return s.referenceRepo.GetAllSportEventTypes(ctx)
	})
	return types, err
}

// GetSportClubs retrieves all clubs
func (s *ReferenceService) GetSportClubs(ctx context.Context) ([]models.SportClub, error) {
	var clubs []models.SportClub
	err := s.cached(ctx, "reference:clubs", &clubs, func(ctx context.Context) (interface{}, error) {
		return s.referenceRepo.GetAllSportClubs(ctx)
	})
	return clubs, err
}

// cached fills dest from the cache when possible, otherwise loads from the
// repository and stores the result. Cache failures are logged and treated as
// misses so Redis being down never takes the endpoint with it.
func (s *ReferenceService) cached(ctx context.Context, key string, dest interface{}, load func(context.Context) (interface{}, error)) error {
	if s.cache != nil {
		data, err := s.cache.Get(ctx, key).Bytes()
		if err == nil {
			if err := json.Unmarshal(data, dest); err == nil {
				return nil
			}
			logger.Warn().Str("key", key).Msg("Dropping undecodable cache entry")
			_ = s.cache.Del(ctx, key).Err()
		} else if err != redis.Nil {
			logger.Warn().Err(err).Str("key", key).Msg("Reference cache read failed")
		}
	}

	value, err := load(ctx)
	if err != nil {
		return err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, data, referenceCacheTTL).Err(); err != nil {
			logger.Warn().Err(err).Str("key", key).Msg("Reference cache write failed")
		}
	}
	return nil
}
