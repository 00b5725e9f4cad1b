package services

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/strategist-backend/internal/catalog"
	"github.com/yungbote/strategist-backend/internal/logger"
	apperrors "github.com/yungbote/strategist-backend/internal/pkg/errors"
	"github.com/yungbote/strategist-backend/internal/repos"
	"github.com/yungbote/strategist-backend/internal/types"
)

// StrategyRecommendation is one complete content-strategy decision.
type StrategyRecommendation struct {
	TimeSlot       int     `json:"time_slot"`
	ContentType    string  `json:"content_type"`
	HashtagPattern string  `json:"hashtag_pattern"`
	ToneStyle      string  `json:"tone_style"`
	IsExploration  bool    `json:"is_exploration"`
	Confidence     float64 `json:"confidence"`
}

// RecommendationService orchestrates the per-dimension selector into one
// decision per request.
type RecommendationService interface {
	Recommend(ctx context.Context, tenantID uuid.UUID, platform types.Platform, level types.SafetyLevel, allowedContentTypes []string) (*StrategyRecommendation, error)
}

type recommendationService struct {
	log      *logger.Logger
	configs  repos.BanditConfigRepo
	arms     repos.ArmStateRepo
	selector SelectorService

	mu  sync.Mutex
	rng *rand.Rand
}

func NewRecommendationService(baseLog *logger.Logger, configs repos.BanditConfigRepo, arms repos.ArmStateRepo, selector SelectorService) RecommendationService {
	return NewRecommendationServiceWithRand(baseLog, configs, arms, selector, rand.New(rand.NewSource(time.Now().UnixNano())))
}

func NewRecommendationServiceWithRand(baseLog *logger.Logger, configs repos.BanditConfigRepo, arms repos.ArmStateRepo, selector SelectorService, rng *rand.Rand) RecommendationService {
	return &recommendationService{
		log:      baseLog.With("service", "RecommendationService"),
		configs:  configs,
		arms:     arms,
		selector: selector,
		rng:      rng,
	}
}

func (s *recommendationService) Recommend(ctx context.Context, tenantID uuid.UUID, platform types.Platform, level types.SafetyLevel, allowedContentTypes []string) (*StrategyRecommendation, error) {
	if tenantID == uuid.Nil {
		return nil, fmt.Errorf("recommend: missing tenant id: %w", apperrors.ErrInvalidArgument)
	}

	cfg, err := s.configs.GetOrCreate(ctx, nil, tenantID, platform)
	if err != nil {
		return nil, err
	}

	// One epsilon snapshot for every draw in the episode, so a single
	// decision uses one exploration rate rather than four.
	epsilon := cfg.Epsilon

	limits := catalog.Limits(level)
	var excludeContentTypes []string
	if cfg.LastContentType != nil && cfg.ConsecutiveSameType >= limits.MaxConsecutiveSameType {
		excludeContentTypes = []string{*cfg.LastContentType}
	}

	timeSlotArm, err := s.selector.SelectArm(ctx, tenantID, platform, types.DimensionTimeSlot, epsilon, nil, nil)
	if err != nil {
		return nil, err
	}
	contentType, err := s.selector.SelectArm(ctx, tenantID, platform, types.DimensionContentType, epsilon, excludeContentTypes, allowedContentTypes)
	if err != nil {
		return nil, err
	}
	hashtagPattern, err := s.selector.SelectArm(ctx, tenantID, platform, types.DimensionHashtagPattern, epsilon, nil, nil)
	if err != nil {
		return nil, err
	}
	toneStyle, err := s.selector.SelectArm(ctx, tenantID, platform, types.DimensionToneStyle, epsilon, nil, nil)
	if err != nil {
		return nil, err
	}

	timeSlot, err := strconv.Atoi(timeSlotArm)
	if err != nil {
		timeSlot = 0
	}

	totalPulls, err := s.arms.SumPulls(ctx, nil, tenantID, platform)
	if err != nil {
		return nil, err
	}

	return &StrategyRecommendation{
		TimeSlot:       timeSlot,
		ContentType:    contentType,
		HashtagPattern: hashtagPattern,
		ToneStyle:      toneStyle,
		// Observability only: a separate coin flip at the same epsilon,
		// not the flag that gated the per-dimension draws above. Kept
		// this way on purpose; do not wire it into selection.
		IsExploration: s.randFloat() < epsilon,
		// Heuristic maturity indicator, not a statistical interval.
		Confidence: 1 - math.Exp(-float64(totalPulls)/100),
	}, nil
}

func (s *recommendationService) randFloat() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}
