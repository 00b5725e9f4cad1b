package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/strategist-backend/internal/logger"
	"github.com/yungbote/strategist-backend/internal/services"
	"github.com/yungbote/strategist-backend/internal/types"
)

type AnalyticsHandler struct {
	log       *logger.Logger
	analytics services.AnalyticsService
}

func NewAnalyticsHandler(log *logger.Logger, analytics services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		log:       log.With("handler", "AnalyticsHandler"),
		analytics: analytics,
	}
}

// GET /api/analytics/overview/:tenantId
func (h *AnalyticsHandler) GetOverview(c *gin.Context) {
	tenantID, err := uuid.Parse(c.Param("tenantId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_tenant_id", err)
		return
	}
	overview, err := h.analytics.GetLearningOverview(c.Request.Context(), tenantID)
	if err != nil {
		h.log.Error("Failed to build learning overview", "tenant_id", tenantID, "error", err)
		RespondError(c, http.StatusInternalServerError, "overview_failed", err)
		return
	}
	RespondOK(c, overview)
}

// GET /api/analytics/distribution/:tenantId?platform=&dimension=
func (h *AnalyticsHandler) GetDistribution(c *gin.Context) {
	tenantID, err := uuid.Parse(c.Param("tenantId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_tenant_id", err)
		return
	}
	platform := types.Platform(c.Query("platform"))
	dimension := types.Dimension(c.Query("dimension"))
	rows, err := h.analytics.GetArmDistribution(c.Request.Context(), tenantID, platform, dimension)
	if err != nil {
		h.log.Error("Failed to build arm distribution", "tenant_id", tenantID, "platform", platform, "dimension", dimension, "error", err)
		RespondError(c, http.StatusInternalServerError, "distribution_failed", err)
		return
	}
	RespondOK(c, rows)
}
