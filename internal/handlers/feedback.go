package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/strategist-backend/internal/logger"
	apperrors "github.com/yungbote/strategist-backend/internal/pkg/errors"
	"github.com/yungbote/strategist-backend/internal/repos"
	"github.com/yungbote/strategist-backend/internal/services"
	"github.com/yungbote/strategist-backend/internal/types"
)

type FeedbackHandler struct {
	log          *logger.Logger
	feedback     services.FeedbackService
	observations repos.ObservationRepo
}

func NewFeedbackHandler(log *logger.Logger, feedback services.FeedbackService, observations repos.ObservationRepo) *FeedbackHandler {
	return &FeedbackHandler{
		log:          log.With("handler", "FeedbackHandler"),
		feedback:     feedback,
		observations: observations,
	}
}

type createObservationRequest struct {
	TenantID          uuid.UUID  `json:"tenant_id" binding:"required"`
	Platform          string     `json:"platform" binding:"required"`
	Likes             int        `json:"likes"`
	Comments          int        `json:"comments"`
	Shares            int        `json:"shares"`
	Saves             int        `json:"saves"`
	DwellTimeMS       *float64   `json:"dwell_time_ms"`
	WatchTimeS        *float64   `json:"watch_time_s"`
	TimeSlotArm       *string    `json:"time_slot_arm"`
	ContentTypeArm    *string    `json:"content_type_arm"`
	HashtagPatternArm *string    `json:"hashtag_pattern_arm"`
	ToneStyleArm      *string    `json:"tone_style_arm"`
	PostedAt          *time.Time `json:"posted_at"`
}

// POST /api/observations
// Intake for the engagement metrics collector.
func (h *FeedbackHandler) CreateObservation(c *gin.Context) {
	var req createObservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	obs := &types.EngagementObservation{
		TenantID:          req.TenantID,
		Platform:          types.Platform(req.Platform),
		Likes:             req.Likes,
		Comments:          req.Comments,
		Shares:            req.Shares,
		Saves:             req.Saves,
		DwellTimeMS:       req.DwellTimeMS,
		WatchTimeS:        req.WatchTimeS,
		TimeSlotArm:       req.TimeSlotArm,
		ContentTypeArm:    req.ContentTypeArm,
		HashtagPatternArm: req.HashtagPatternArm,
		ToneStyleArm:      req.ToneStyleArm,
	}
	if req.PostedAt != nil {
		obs.PostedAt = *req.PostedAt
	} else {
		obs.PostedAt = time.Now().UTC()
	}
	if err := h.observations.Create(c.Request.Context(), nil, obs); err != nil {
		h.log.Error("Failed to record observation", "tenant_id", req.TenantID, "platform", req.Platform, "error", err)
		RespondError(c, http.StatusInternalServerError, "observation_create_failed", err)
		return
	}
	c.JSON(http.StatusCreated, obs)
}

// POST /api/feedback/:observationId
func (h *FeedbackHandler) ProcessFeedback(c *gin.Context) {
	id, err := uuid.Parse(c.Param("observationId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_observation_id", err)
		return
	}
	result, err := h.feedback.ProcessFeedback(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			RespondError(c, http.StatusNotFound, "observation_not_found", err)
			return
		}
		if errors.Is(err, apperrors.ErrInvalidArgument) {
			RespondError(c, http.StatusConflict, "observation_already_scored", err)
			return
		}
		h.log.Error("Feedback episode failed", "observation_id", id, "error", err)
		RespondError(c, http.StatusInternalServerError, "feedback_failed", err)
		return
	}
	RespondOK(c, result)
}
