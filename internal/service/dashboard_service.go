package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/govdesk/front-office-api/internal/models"
	"github.com/govdesk/front-office-api/pkg/config"
	appErrors "github.com/govdesk/front-office-api/pkg/errors"
)

const dashboardCacheKey = "dashboard:stats"

type statsRepository interface {
	StatusCounts(ctx context.Context) (*models.StatusCounts, error)
	DailyCounts(ctx context.Context, from, to time.Time) ([]models.DailyCount, error)
	DemographicCounts(ctx context.Context, seniorCutoff time.Time) (*models.DemographicCounts, error)
	TopNatures(ctx context.Context, limit int) ([]models.NatureCount, error)
	FeedbackSummary(ctx context.Context) (*models.FeedbackSummary, error)
}

// DashboardService assembles the aggregate view served to the staff
// dashboard, with a short-lived cache in front of the database.
type DashboardService struct {
	stats  statsRepository
	cache  *CacheService
	engine config.EngineConfig
	cfg    config.DashboardConfig
	logger *zap.Logger
}

// NewDashboardService constructs the dashboard service.
func NewDashboardService(stats statsRepository, cache *CacheService, engine config.EngineConfig, cfg config.DashboardConfig, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{stats: stats, cache: cache, engine: engine, cfg: cfg, logger: logger}
}

// Stats returns the composed dashboard payload. The upcoming window covers
// the next fourteen days.
func (s *DashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	if s.cache.Enabled() {
		var cached models.DashboardStats
		if hit, err := s.cache.Get(ctx, dashboardCacheKey, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	statuses, err := s.stats.StatusCounts(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load status counts")
	}

	upcoming, err := s.stats.DailyCounts(ctx, today, today.AddDate(0, 0, 14))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load daily counts")
	}

	seniorAge := s.engine.SeniorAge
	if seniorAge <= 0 {
		seniorAge = 60
	}
	demographics, err := s.stats.DemographicCounts(ctx, now.AddDate(-seniorAge, 0, 0))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load demographics")
	}

	topNatures, err := s.stats.TopNatures(ctx, 5)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load nature counts")
	}

	feedback, err := s.stats.FeedbackSummary(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load feedback summary")
	}

	stats := &models.DashboardStats{
		Statuses:     *statuses,
		Upcoming:     upcoming,
		Demographics: *demographics,
		TopNatures:   topNatures,
		Feedback:     *feedback,
		GeneratedAt:  now,
	}

	if s.cache.Enabled() {
		if err := s.cache.Set(ctx, dashboardCacheKey, stats, s.cfg.CacheTTL); err != nil {
			s.logger.Sugar().Warnw("failed to cache dashboard stats", "error", err)
		}
	}
	return stats, nil
}

// Invalidate drops the cached dashboard payload after appointment mutations.
func (s *DashboardService) Invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, dashboardCacheKey); err != nil {
		s.logger.Sugar().Warnw("failed to invalidate dashboard cache", "error", err)
	}
}
