package catalog

import "github.com/yungbote/strategist-backend/internal/types"

// CadenceLimits are the posting-frequency rails for one safety level.
type CadenceLimits struct {
	MinIntervalMinutes     int
	MaxPostsPerHour        int
	MaxPostsPerDay         int
	MaxConsecutiveSameType int
}

var cadenceLimits = map[types.SafetyLevel]CadenceLimits{
	types.SafetyConservative: {MinIntervalMinutes: 120, MaxPostsPerHour: 1, MaxPostsPerDay: 5, MaxConsecutiveSameType: 2},
	types.SafetyModerate:     {MinIntervalMinutes: 60, MaxPostsPerHour: 2, MaxPostsPerDay: 10, MaxConsecutiveSameType: 3},
	types.SafetyAggressive:   {MinIntervalMinutes: 30, MaxPostsPerHour: 3, MaxPostsPerDay: 20, MaxConsecutiveSameType: 4},
}

// Limits returns the cadence table for a safety level, defaulting unknown
// levels to moderate so a bad input never disables the guard.
func Limits(level types.SafetyLevel) CadenceLimits {
	if l, ok := cadenceLimits[level]; ok {
		return l
	}
	return cadenceLimits[types.SafetyModerate]
}
