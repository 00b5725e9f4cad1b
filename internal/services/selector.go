package services

import (
	"context"
	"math/rand"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/strategist-backend/internal/catalog"
	"github.com/yungbote/strategist-backend/internal/logger"
	"github.com/yungbote/strategist-backend/internal/repos"
	"github.com/yungbote/strategist-backend/internal/types"
)

// SelectorService is the epsilon-greedy policy over one decision dimension.
// A selection must always produce an arm; empty candidate sets and cold
// starts degrade to deterministic or catalogue-informed fallbacks instead of
// failing the caller.
type SelectorService interface {
	SelectArm(ctx context.Context, tenantID uuid.UUID, platform types.Platform, dimension types.Dimension, epsilon float64, excludeArms, allowedArms []string) (string, error)
}

type selectorService struct {
	log  *logger.Logger
	arms repos.ArmStateRepo

	mu  sync.Mutex
	rng *rand.Rand
}

func NewSelectorService(baseLog *logger.Logger, arms repos.ArmStateRepo) SelectorService {
	return NewSelectorServiceWithRand(baseLog, arms, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewSelectorServiceWithRand injects the random source; tests seed it.
func NewSelectorServiceWithRand(baseLog *logger.Logger, arms repos.ArmStateRepo, rng *rand.Rand) SelectorService {
	return &selectorService{
		log:  baseLog.With("service", "SelectorService"),
		arms: arms,
		rng:  rng,
	}
}

func (s *selectorService) SelectArm(ctx context.Context, tenantID uuid.UUID, platform types.Platform, dimension types.Dimension, epsilon float64, excludeArms, allowedArms []string) (string, error) {
	candidates := candidateArms(dimension, excludeArms, allowedArms)
	if len(candidates) == 0 {
		// Nothing left after filtering: return the dimension's first
		// catalogue arm rather than fail the decision.
		full := catalog.Arms(dimension)
		if len(full) == 0 {
			return "", nil
		}
		return full[0], nil
	}

	if s.randFloat() < epsilon {
		return candidates[s.randIntn(len(candidates))], nil
	}

	states, err := s.arms.ListByArms(ctx, nil, tenantID, platform, dimension, candidates)
	if err != nil {
		return "", err
	}
	if len(states) == 0 {
		return s.coldStartArm(platform, dimension, candidates), nil
	}
	sort.Slice(states, func(i, j int) bool {
		return states[i].EwmaReward > states[j].EwmaReward
	})
	return states[0].Arm, nil
}

// coldStartArm picks an arm before any statistics exist. Time slots fall back
// to the platform's optimal posting hours; other dimensions pick uniformly.
func (s *selectorService) coldStartArm(platform types.Platform, dimension types.Dimension, candidates []string) string {
	if dimension == types.DimensionTimeSlot {
		weekday := time.Now().Weekday()
		weekend := weekday == time.Saturday || weekday == time.Sunday
		hours := catalog.OptimalHours(platform, weekend)
		hour := hours[s.randIntn(len(hours))]
		arm := strconv.Itoa(hour)
		for _, c := range candidates {
			if c == arm {
				return arm
			}
		}
	}
	return candidates[s.randIntn(len(candidates))]
}

func (s *selectorService) randFloat() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

func (s *selectorService) randIntn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

func candidateArms(dimension types.Dimension, excludeArms, allowedArms []string) []string {
	base := catalog.Arms(dimension)
	if len(allowedArms) > 0 {
		base = intersect(base, allowedArms)
	}
	if len(excludeArms) == 0 {
		return base
	}
	excluded := make(map[string]struct{}, len(excludeArms))
	for _, a := range excludeArms {
		excluded[a] = struct{}{}
	}
	out := make([]string, 0, len(base))
	for _, a := range base {
		if _, skip := excluded[a]; !skip {
			out = append(out, a)
		}
	}
	return out
}

func intersect(catalogue, allowed []string) []string {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		allowedSet[a] = struct{}{}
	}
	out := make([]string, 0, len(allowed))
	for _, a := range catalogue {
		if _, ok := allowedSet[a]; ok {
			out = append(out, a)
		}
	}
	return out
}
