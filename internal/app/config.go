package app

import (
	"github.com/yungbote/strategist-backend/internal/logger"
	"github.com/yungbote/strategist-backend/internal/utils"
)

type Config struct {
	Port      string
	EwmaAlpha float64
}

func LoadConfig(log *logger.Logger) Config {
	port := utils.GetEnv("PORT", "8080", log)
	ewmaAlpha := utils.GetEnvAsFloat("EWMA_ALPHA", 0.3, log)
	return Config{
		Port:      port,
		EwmaAlpha: ewmaAlpha,
	}
}
