package services

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"gearguard/internal/authz"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
)

const (
	reportByTeamKey     = "report:requests_by_team"
	reportByCategoryKey = "report:requests_by_category"
	reportByStageKey    = "report:requests_by_stage"
)

type ReportServiceInterface interface {
	RequestsByTeam(ctx context.Context) ([]entities.StageBreakdown, error)
	RequestsByCategory(ctx context.Context) ([]entities.StageBreakdown, error)
	RequestsByStage(ctx context.Context) ([]entities.StageCount, error)
}

type ReportService struct {
	reportRepo repositories.ReportRepositoryInterface
	cacheRepo  repositories.CacheRepositoryInterface
	cacheTTL   time.Duration
	logger     *zap.Logger
}

func NewReportService(
	reportRepo repositories.ReportRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	cacheTTL time.Duration,
	logger *zap.Logger,
) ReportServiceInterface {
	return &ReportService{
		reportRepo: reportRepo,
		cacheRepo:  cacheRepo,
		cacheTTL:   cacheTTL,
		logger:     logger,
	}
}

// cachedReport serves from redis when possible and repopulates on a
// miss. Cache failures degrade to a direct query, never to an error.
func cachedReport[T any](ctx context.Context, s *ReportService, key string, query func(context.Context) ([]T, error)) ([]T, error) {
	if raw, err := s.cacheRepo.Get(ctx, key); err == nil {
		var cached []T
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			return cached, nil
		}
		s.logger.Warn("discarding malformed cached report", zap.String("key", key))
	}

	result, err := query(ctx)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(result); err == nil {
		if err := s.cacheRepo.Set(ctx, key, string(raw), s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache report", zap.String("key", key), zap.Error(err))
		}
	}

	return result, nil
}

func (s *ReportService) RequestsByTeam(ctx context.Context) ([]entities.StageBreakdown, error) {
	if err := requireCapability(ctx, authz.ReportsView); err != nil {
		return nil, err
	}
	return cachedReport(ctx, s, reportByTeamKey, s.reportRepo.RequestsByTeam)
}

func (s *ReportService) RequestsByCategory(ctx context.Context) ([]entities.StageBreakdown, error) {
	if err := requireCapability(ctx, authz.ReportsView); err != nil {
		return nil, err
	}
	return cachedReport(ctx, s, reportByCategoryKey, s.reportRepo.RequestsByCategory)
}

func (s *ReportService) RequestsByStage(ctx context.Context) ([]entities.StageCount, error) {
	if err := requireCapability(ctx, authz.ReportsView); err != nil {
		return nil, err
	}
	return cachedReport(ctx, s, reportByStageKey, s.reportRepo.RequestsByStage)
}
