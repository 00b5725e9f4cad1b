package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/strategist-backend/internal/logger"
	apperrors "github.com/yungbote/strategist-backend/internal/pkg/errors"
	"github.com/yungbote/strategist-backend/internal/repos"
	"github.com/yungbote/strategist-backend/internal/types"
)

// DefaultEwmaAlpha is the smoothing factor for the exponentially weighted
// reward mean. Recent pulls dominate so the exploit choice tracks drift.
const DefaultEwmaAlpha = 0.3

// FeedbackResult reports the outcome of one feedback episode.
type FeedbackResult struct {
	Score   float64 `json:"score"`
	Epsilon float64 `json:"epsilon"`
}

// FeedbackService is the single write path into the arm statistics. One call
// is one episode: score the observation, update every tagged arm, decay
// epsilon once, refresh cadence memory, append the post record. All of it
// commits as one transaction.
type FeedbackService interface {
	ProcessFeedback(ctx context.Context, observationID uuid.UUID) (*FeedbackResult, error)
}

type feedbackService struct {
	db           *gorm.DB
	log          *logger.Logger
	reward       RewardService
	observations repos.ObservationRepo
	arms         repos.ArmStateRepo
	configs      repos.BanditConfigRepo
	posts        repos.PostHistoryRepo
	alpha        float64

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewFeedbackService(db *gorm.DB, baseLog *logger.Logger, reward RewardService, observations repos.ObservationRepo, arms repos.ArmStateRepo, configs repos.BanditConfigRepo, posts repos.PostHistoryRepo, alpha float64) FeedbackService {
	if alpha <= 0 || alpha > 1 {
		alpha = DefaultEwmaAlpha
	}
	return &feedbackService{
		db:           db,
		log:          baseLog.With("service", "FeedbackService"),
		reward:       reward,
		observations: observations,
		arms:         arms,
		configs:      configs,
		posts:        posts,
		alpha:        alpha,
		locks:        map[string]*sync.Mutex{},
	}
}

func (s *feedbackService) ProcessFeedback(ctx context.Context, observationID uuid.UUID) (*FeedbackResult, error) {
	if observationID == uuid.Nil {
		return nil, fmt.Errorf("process feedback: missing observation id: %w", apperrors.ErrInvalidArgument)
	}

	obs, err := s.observations.GetByID(ctx, nil, observationID)
	if err != nil {
		return nil, err
	}
	if obs == nil {
		return nil, fmt.Errorf("process feedback: observation %s: %w", observationID, apperrors.ErrNotFound)
	}

	// Concurrent episodes for the same tenant x platform must serialize so
	// the read-modify-write on arm statistics never lost-updates.
	lock := s.lockFor(obs.TenantID, obs.Platform)
	lock.Lock()
	defer lock.Unlock()

	result := &FeedbackResult{}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Re-read under the row lock; the pre-lock copy only resolved the
		// tenant x platform key.
		obs, err = s.observations.GetByIDForUpdate(ctx, tx, observationID)
		if err != nil {
			return err
		}
		if obs == nil {
			return fmt.Errorf("observation %s: %w", observationID, apperrors.ErrNotFound)
		}
		// An observation is consumed exactly once; a second episode for the
		// same ID would double-count the reward and decay epsilon twice.
		if obs.Score != nil {
			return fmt.Errorf("observation %s already scored: %w", observationID, apperrors.ErrInvalidArgument)
		}

		score := s.reward.Score(obs.Metrics(), obs.Platform)
		result.Score = score

		if err := s.observations.SetScore(ctx, tx, obs.ID, score); err != nil {
			return err
		}

		for _, dim := range []types.Dimension{
			types.DimensionTimeSlot,
			types.DimensionContentType,
			types.DimensionHashtagPattern,
			types.DimensionToneStyle,
		} {
			arm := obs.ArmFor(dim)
			if arm == nil || *arm == "" {
				continue
			}
			if err := s.applyReward(ctx, tx, obs.TenantID, obs.Platform, dim, *arm, score); err != nil {
				return err
			}
		}

		cfg, err := s.configs.GetOrCreateForUpdate(ctx, tx, obs.TenantID, obs.Platform)
		if err != nil {
			return err
		}

		// Epsilon decays exactly once per episode, floored at the minimum.
		cfg.Epsilon = max(cfg.EpsilonMin, cfg.Epsilon*cfg.EpsilonDecay)
		cfg.TotalEpisodes++

		now := time.Now().UTC()
		cfg.LastPostAt = &now
		if obs.ContentTypeArm != nil && *obs.ContentTypeArm != "" {
			if cfg.LastContentType != nil && *cfg.LastContentType == *obs.ContentTypeArm {
				cfg.ConsecutiveSameType++
			} else {
				cfg.ConsecutiveSameType = 1
			}
			ct := *obs.ContentTypeArm
			cfg.LastContentType = &ct
		}

		if err := s.configs.Save(ctx, tx, cfg); err != nil {
			return err
		}

		postedAt := obs.PostedAt
		if postedAt.IsZero() {
			postedAt = now
		}
		if err := s.posts.Create(ctx, tx, &types.PostRecord{
			TenantID:    obs.TenantID,
			Platform:    obs.Platform,
			ContentType: obs.ContentTypeArm,
			PostedAt:    postedAt,
		}); err != nil {
			return err
		}

		result.Epsilon = cfg.Epsilon
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("process feedback: %w", err)
	}

	s.log.Debug("Feedback episode committed",
		"tenant_id", obs.TenantID,
		"platform", obs.Platform,
		"score", result.Score,
		"epsilon", result.Epsilon,
	)
	return result, nil
}

// applyReward folds one reward into an arm's running statistics. First reward
// for an arm short-circuits to a fresh row.
func (s *feedbackService) applyReward(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, platform types.Platform, dimension types.Dimension, arm string, reward float64) error {
	row, err := s.arms.GetForUpdate(ctx, tx, tenantID, platform, dimension, arm)
	if err != nil {
		return err
	}
	if row == nil {
		return s.arms.Save(ctx, tx, &types.ArmState{
			TenantID:    tenantID,
			Platform:    platform,
			Dimension:   dimension,
			Arm:         arm,
			Pulls:       1,
			TotalReward: reward,
			AvgReward:   reward,
			LastReward:  reward,
			MaxReward:   reward,
			EwmaReward:  reward,
			Variance:    0,
		})
	}

	oldPulls := row.Pulls
	oldAvg := row.AvgReward

	row.Pulls = oldPulls + 1
	row.TotalReward += reward
	row.AvgReward = row.TotalReward / float64(row.Pulls)
	row.EwmaReward = s.alpha*reward + (1-s.alpha)*row.EwmaReward

	if oldPulls > 1 {
		delta := reward - oldAvg
		delta2 := reward - row.AvgReward
		row.Variance = (row.Variance*float64(oldPulls-1) + delta*delta2) / float64(row.Pulls-1)
		if row.Variance < 0 {
			// Float underflow can push the recurrence slightly negative.
			row.Variance = 0
		}
	} else {
		row.Variance = 0
	}

	if reward > row.MaxReward {
		row.MaxReward = reward
	}
	row.LastReward = reward

	return s.arms.Save(ctx, tx, row)
}

// lockFor returns the per-key mutex. One entry per tenant x platform lives
// for the life of the process; the key space is small and stable, so entries
// are never evicted. Cross-replica serialization comes from the row locks the
// transaction takes, not from this map.
func (s *feedbackService) lockFor(tenantID uuid.UUID, platform types.Platform) *sync.Mutex {
	key := tenantID.String() + "|" + string(platform)
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[key] = lock
	}
	return lock
}
