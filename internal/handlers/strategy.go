package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/strategist-backend/internal/logger"
	apperrors "github.com/yungbote/strategist-backend/internal/pkg/errors"
	"github.com/yungbote/strategist-backend/internal/services"
	"github.com/yungbote/strategist-backend/internal/types"
)

type StrategyHandler struct {
	log     *logger.Logger
	recSvc  services.RecommendationService
	cadence services.CadenceService
}

func NewStrategyHandler(log *logger.Logger, recSvc services.RecommendationService, cadence services.CadenceService) *StrategyHandler {
	return &StrategyHandler{
		log:     log.With("handler", "StrategyHandler"),
		recSvc:  recSvc,
		cadence: cadence,
	}
}

type recommendRequest struct {
	TenantID            uuid.UUID `json:"tenant_id" binding:"required"`
	Platform            string    `json:"platform" binding:"required"`
	SafetyLevel         string    `json:"safety_level"`
	AllowedContentTypes []string  `json:"allowed_content_types"`
}

// POST /api/strategy/recommend
func (h *StrategyHandler) Recommend(c *gin.Context) {
	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	rec, err := h.recSvc.Recommend(c.Request.Context(), req.TenantID, types.Platform(req.Platform), types.SafetyLevel(req.SafetyLevel), req.AllowedContentTypes)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidArgument) {
			RespondError(c, http.StatusBadRequest, "invalid_request", err)
			return
		}
		h.log.Error("Recommend failed", "tenant_id", req.TenantID, "platform", req.Platform, "error", err)
		RespondError(c, http.StatusInternalServerError, "recommend_failed", err)
		return
	}
	RespondOK(c, rec)
}

type spamCheckRequest struct {
	TenantID    uuid.UUID `json:"tenant_id" binding:"required"`
	Platform    string    `json:"platform" binding:"required"`
	SafetyLevel string    `json:"safety_level"`
}

// POST /api/strategy/spam-check
func (h *StrategyHandler) SpamCheck(c *gin.Context) {
	var req spamCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	res, err := h.cadence.CheckSpamLimits(c.Request.Context(), req.TenantID, types.Platform(req.Platform), types.SafetyLevel(req.SafetyLevel))
	if err != nil {
		h.log.Error("Spam check failed", "tenant_id", req.TenantID, "platform", req.Platform, "error", err)
		RespondError(c, http.StatusInternalServerError, "spam_check_failed", err)
		return
	}
	RespondOK(c, res)
}
