package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/strategist-backend/internal/clients/redis"
	"github.com/yungbote/strategist-backend/internal/logger"
	"github.com/yungbote/strategist-backend/internal/services"
)

type Services struct {
	Reward         services.RewardService
	Selector       services.SelectorService
	Recommendation services.RecommendationService
	Cadence        services.CadenceService
	Feedback       services.FeedbackService
	Analytics      services.AnalyticsService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos) Services {
	log.Info("Wiring services...")

	// Redis is an optional cache; run without it when unavailable.
	cache, err := redis.NewCache(log)
	if err != nil {
		log.Warn("Redis cache unavailable, running without it", "error", err)
		cache = nil
	}

	reward := services.NewRewardService(log)
	selector := services.NewSelectorService(log, reposet.ArmState)
	return Services{
		Reward:         reward,
		Selector:       selector,
		Recommendation: services.NewRecommendationService(log, reposet.BanditConfig, reposet.ArmState, selector),
		Cadence:        services.NewCadenceService(log, reposet.PostHistory),
		Feedback:       services.NewFeedbackService(db, log, reward, reposet.Observation, reposet.ArmState, reposet.BanditConfig, reposet.PostHistory, cfg.EwmaAlpha),
		Analytics:      services.NewAnalyticsService(log, reposet.BanditConfig, reposet.ArmState, cache),
	}
}
