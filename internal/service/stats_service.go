package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/praxis-events/registration-api/internal/models"
	appErrors "github.com/praxis-events/registration-api/pkg/errors"
)

const statsCacheKey = "registrations:stats"

type statsCounter interface {
	CountByStatus(ctx context.Context) ([]models.StatusCount, error)
}

// StatsService reports per-status registration counts with an optional
// cache-aside layer in Redis.
type StatsService struct {
	repo    statsCounter
	cache   *redis.Client
	ttl     time.Duration
	enabled bool
	logger  *zap.Logger
}

// NewStatsService constructs the service. A nil cache client disables
// caching regardless of the enabled flag.
func NewStatsService(repo statsCounter, cache *redis.Client, ttl time.Duration, enabled bool, logger *zap.Logger) *StatsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cache == nil {
		enabled = false
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &StatsService{repo: repo, cache: cache, ttl: ttl, enabled: enabled, logger: logger}
}

// StatusCounts returns a count for every allowed status, zero-filled for
// statuses with no rows.
func (s *StatsService) StatusCounts(ctx context.Context) ([]models.StatusCount, error) {
	if s.enabled {
		if cached, ok := s.fromCache(ctx); ok {
			return cached, nil
		}
	}

	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count registrations")
	}

	byStatus := make(map[models.RegistrationStatus]int64, len(counts))
	for _, c := range counts {
		byStatus[c.Status] = c.Count
	}
	result := make([]models.StatusCount, 0, len(models.AllowedStatuses))
	for _, status := range models.AllowedStatuses {
		result = append(result, models.StatusCount{Status: status, Count: byStatus[status]})
	}

	if s.enabled {
		s.toCache(ctx, result)
	}
	return result, nil
}

func (s *StatsService) fromCache(ctx context.Context) ([]models.StatusCount, bool) {
	raw, err := s.cache.Get(ctx, statsCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("stats cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var counts []models.StatusCount
	if err := json.Unmarshal(raw, &counts); err != nil {
		s.logger.Warn("stats cache decode failed", zap.Error(err))
		return nil, false
	}
	return counts, true
}

func (s *StatsService) toCache(ctx context.Context, counts []models.StatusCount) {
	raw, err := json.Marshal(counts)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, statsCacheKey, raw, s.ttl).Err(); err != nil {
		s.logger.Warn("stats cache write failed", zap.Error(err))
	}
}
