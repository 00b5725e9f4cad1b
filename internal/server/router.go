package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yungbote/strategist-backend/internal/handlers"
)

type RouterConfig struct {
	StrategyHandler  *handlers.StrategyHandler
	FeedbackHandler  *handlers.FeedbackHandler
	AnalyticsHandler *handlers.AnalyticsHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		api.POST("/strategy/recommend", cfg.StrategyHandler.Recommend)
		api.POST("/strategy/spam-check", cfg.StrategyHandler.SpamCheck)
		api.POST("/observations", cfg.FeedbackHandler.CreateObservation)
		api.POST("/feedback/:observationId", cfg.FeedbackHandler.ProcessFeedback)
		api.GET("/analytics/overview/:tenantId", cfg.AnalyticsHandler.GetOverview)
		api.GET("/analytics/distribution/:tenantId", cfg.AnalyticsHandler.GetDistribution)
	}

	return router
}
