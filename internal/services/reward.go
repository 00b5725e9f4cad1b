package services

import (
	"github.com/yungbote/strategist-backend/internal/catalog"
	"github.com/yungbote/strategist-backend/internal/logger"
	"github.com/yungbote/strategist-backend/internal/types"
)

// RewardService turns raw engagement counters into the scalar reward the
// bandit learns from. Pure arithmetic, no persistence.
type RewardService interface {
	Score(metrics types.EngagementMetrics, platform types.Platform) float64
}

type rewardService struct {
	log *logger.Logger
}

func NewRewardService(baseLog *logger.Logger) RewardService {
	return &rewardService{
		log: baseLog.With("service", "RewardService"),
	}
}

// Fixed base weights: a share is worth 5x a like because it drives organic
// reach; a comment signals stronger intent than a save.
const (
	likeWeight    = 1.0
	commentWeight = 3.0
	shareWeight   = 5.0
	saveWeight    = 2.0
)

func (s *rewardService) Score(metrics types.EngagementMetrics, platform types.Platform) float64 {
	score := float64(metrics.Likes)*likeWeight +
		float64(metrics.Comments)*commentWeight +
		float64(metrics.Shares)*shareWeight +
		float64(metrics.Saves)*saveWeight

	bonus, ok := catalog.Bonus(platform)
	if !ok {
		return score
	}
	switch bonus.Metric {
	case catalog.BonusMetricDwellTime:
		score += metrics.DwellTimeMS * bonus.Multiplier
	case catalog.BonusMetricWatchTime:
		score += metrics.WatchTimeS * bonus.Multiplier
	case catalog.BonusMetricSaves:
		score += float64(metrics.Saves) * bonus.Multiplier
	case catalog.BonusMetricShares:
		score += float64(metrics.Shares) * bonus.Multiplier
	}
	return score
}
