package services

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/strategist-backend/internal/catalog"
	"github.com/yungbote/strategist-backend/internal/clients/redis"
	"github.com/yungbote/strategist-backend/internal/logger"
	apperrors "github.com/yungbote/strategist-backend/internal/pkg/errors"
	"github.com/yungbote/strategist-backend/internal/repos"
	"github.com/yungbote/strategist-backend/internal/types"
)

// ArmSnapshot is one arm's learned statistics as exposed to reporting.
type ArmSnapshot struct {
	Arm        string  `json:"arm"`
	Pulls      int     `json:"pulls"`
	AvgReward  float64 `json:"avg_reward"`
	EwmaReward float64 `json:"ewma_reward"`
	MaxReward  float64 `json:"max_reward"`
	Variance   float64 `json:"variance"`
	Confidence float64 `json:"confidence"`
}

// PlatformOverview summarizes one tenant x platform bandit.
type PlatformOverview struct {
	Platform      types.Platform                   `json:"platform"`
	Epsilon       float64                          `json:"epsilon"`
	TotalEpisodes int                              `json:"total_episodes"`
	BestArms      map[types.Dimension]*ArmSnapshot `json:"best_arms"`
}

// LearningOverview is the tenant-wide read model.
type LearningOverview struct {
	TenantID  uuid.UUID           `json:"tenant_id"`
	Platforms []*PlatformOverview `json:"platforms"`
}

// AnalyticsService exposes read-only projections over the learned state. It
// never mutates bandit or cadence state.
type AnalyticsService interface {
	GetLearningOverview(ctx context.Context, tenantID uuid.UUID) (*LearningOverview, error)
	GetArmDistribution(ctx context.Context, tenantID uuid.UUID, platform types.Platform, dimension types.Dimension) ([]*ArmSnapshot, error)
}

type analyticsService struct {
	log     *logger.Logger
	configs repos.BanditConfigRepo
	arms    repos.ArmStateRepo
	cache   redis.Cache
}

const overviewCacheTTL = 30 * time.Second

func NewAnalyticsService(baseLog *logger.Logger, configs repos.BanditConfigRepo, arms repos.ArmStateRepo, cache redis.Cache) AnalyticsService {
	return &analyticsService{
		log:     baseLog.With("service", "AnalyticsService"),
		configs: configs,
		arms:    arms,
		cache:   cache,
	}
}

func (s *analyticsService) GetLearningOverview(ctx context.Context, tenantID uuid.UUID) (*LearningOverview, error) {
	if tenantID == uuid.Nil {
		return nil, fmt.Errorf("learning overview: missing tenant id: %w", apperrors.ErrInvalidArgument)
	}

	cacheKey := "strategist:overview:" + tenantID.String()
	if s.cache != nil {
		var cached LearningOverview
		if hit, err := s.cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	cfgs, err := s.configs.ListByTenant(ctx, nil, tenantID)
	if err != nil {
		return nil, err
	}

	overview := &LearningOverview{
		TenantID:  tenantID,
		Platforms: make([]*PlatformOverview, len(cfgs)),
	}

	for i, cfg := range cfgs {
		po := &PlatformOverview{
			Platform:      cfg.Platform,
			Epsilon:       cfg.Epsilon,
			TotalEpisodes: cfg.TotalEpisodes,
			BestArms:      map[types.Dimension]*ArmSnapshot{},
		}
		overview.Platforms[i] = po

		var mu sync.Mutex
		g, gctx := errgroup.WithContext(ctx)
		for _, dim := range catalog.AllDimensions {
			g.Go(func() error {
				rows, err := s.arms.ListByDimension(gctx, nil, tenantID, cfg.Platform, dim)
				if err != nil {
					return err
				}
				best := bestByEwma(rows)
				if best == nil {
					return nil
				}
				mu.Lock()
				po.BestArms[dim] = snapshot(best)
				mu.Unlock()
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, cacheKey, overview, overviewCacheTTL); err != nil {
			s.log.Warn("Failed to cache learning overview", "tenant_id", tenantID, "error", err)
		}
	}
	return overview, nil
}

func (s *analyticsService) GetArmDistribution(ctx context.Context, tenantID uuid.UUID, platform types.Platform, dimension types.Dimension) ([]*ArmSnapshot, error) {
	if tenantID == uuid.Nil {
		return nil, fmt.Errorf("arm distribution: missing tenant id: %w", apperrors.ErrInvalidArgument)
	}
	rows, err := s.arms.ListByDimension(ctx, nil, tenantID, platform, dimension)
	if err != nil {
		return nil, err
	}
	out := make([]*ArmSnapshot, len(rows))
	for i, row := range rows {
		out[i] = snapshot(row)
	}
	return out, nil
}

func bestByEwma(rows []*types.ArmState) *types.ArmState {
	var best *types.ArmState
	for _, row := range rows {
		if best == nil || row.EwmaReward > best.EwmaReward {
			best = row
		}
	}
	return best
}

func snapshot(row *types.ArmState) *ArmSnapshot {
	confidence := 0.0
	if row.Pulls > 0 {
		confidence = 1 - 1/math.Sqrt(float64(row.Pulls))
	}
	return &ArmSnapshot{
		Arm:        row.Arm,
		Pulls:      row.Pulls,
		AvgReward:  row.AvgReward,
		EwmaReward: row.EwmaReward,
		MaxReward:  row.MaxReward,
		Variance:   row.Variance,
		Confidence: confidence,
	}
}
