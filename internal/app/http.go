package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/strategist-backend/internal/handlers"
	"github.com/yungbote/strategist-backend/internal/logger"
	"github.com/yungbote/strategist-backend/internal/server"
)

type Handlers struct {
	Strategy  *handlers.StrategyHandler
	Feedback  *handlers.FeedbackHandler
	Analytics *handlers.AnalyticsHandler
}

func wireHandlers(log *logger.Logger, services Services, reposet Repos) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Strategy:  handlers.NewStrategyHandler(log, services.Recommendation, services.Cadence),
		Feedback:  handlers.NewFeedbackHandler(log, services.Feedback, reposet.Observation),
		Analytics: handlers.NewAnalyticsHandler(log, services.Analytics),
	}
}

func wireRouter(handlerset Handlers) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		StrategyHandler:  handlerset.Strategy,
		FeedbackHandler:  handlerset.Feedback,
		AnalyticsHandler: handlerset.Analytics,
	})
}
