package services

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/strategist-backend/internal/catalog"
	"github.com/yungbote/strategist-backend/internal/logger"
	"github.com/yungbote/strategist-backend/internal/repos"
	"github.com/yungbote/strategist-backend/internal/types"
)

// CadenceResult is the go/no-go verdict for one posting attempt. WaitMinutes
// is a hint for the scheduler; zero when no wait estimate applies.
type CadenceResult struct {
	Allowed     bool   `json:"allowed"`
	Reason      string `json:"reason,omitempty"`
	WaitMinutes int    `json:"wait_minutes,omitempty"`
}

// CadenceService is the frequency-based safety rail. It reads the post
// history only, never bandit state, so it stays independently testable
// against a synthetic post-time sequence.
type CadenceService interface {
	CheckSpamLimits(ctx context.Context, tenantID uuid.UUID, platform types.Platform, level types.SafetyLevel) (*CadenceResult, error)
}

type cadenceService struct {
	log   *logger.Logger
	posts repos.PostHistoryRepo
	now   func() time.Time
}

func NewCadenceService(baseLog *logger.Logger, posts repos.PostHistoryRepo) CadenceService {
	return &cadenceService{
		log:   baseLog.With("service", "CadenceService"),
		posts: posts,
		now:   time.Now,
	}
}

// Checks run in order: minimum interval, hourly cap, daily cap. The first
// failure wins.
func (s *cadenceService) CheckSpamLimits(ctx context.Context, tenantID uuid.UUID, platform types.Platform, level types.SafetyLevel) (*CadenceResult, error) {
	limits := catalog.Limits(level)
	now := s.now()

	lastAt, err := s.posts.LastPostAt(ctx, nil, tenantID, platform)
	if err != nil {
		return nil, err
	}
	if lastAt != nil {
		minInterval := time.Duration(limits.MinIntervalMinutes) * time.Minute
		elapsed := now.Sub(*lastAt)
		if elapsed < minInterval {
			wait := int(math.Ceil((minInterval - elapsed).Minutes()))
			return &CadenceResult{
				Allowed:     false,
				Reason:      "minimum interval between posts not reached",
				WaitMinutes: wait,
			}, nil
		}
	}

	hourCount, err := s.posts.CountSince(ctx, nil, tenantID, platform, now.Add(-time.Hour))
	if err != nil {
		return nil, err
	}
	if hourCount >= int64(limits.MaxPostsPerHour) {
		return &CadenceResult{
			Allowed:     false,
			Reason:      "hourly post limit reached",
			WaitMinutes: 60,
		}, nil
	}

	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayCount, err := s.posts.CountSince(ctx, nil, tenantID, platform, midnight)
	if err != nil {
		return nil, err
	}
	if dayCount >= int64(limits.MaxPostsPerDay) {
		// No wait estimate; the caller has to wait for the next day.
		return &CadenceResult{
			Allowed: false,
			Reason:  "daily post limit reached",
		}, nil
	}

	return &CadenceResult{Allowed: true}, nil
}
