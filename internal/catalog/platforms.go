package catalog

import "github.com/yungbote/strategist-backend/internal/types"

// RewardBonus is the one extra additive term a platform contributes on top of
// the base engagement score, keyed to its primary engagement signal.
type RewardBonus struct {
	Metric     string
	Multiplier float64
}

const (
	BonusMetricDwellTime = "dwell_time_ms"
	BonusMetricWatchTime = "watch_time_s"
	BonusMetricSaves     = "saves"
	BonusMetricShares    = "shares"
)

var rewardBonuses = map[types.Platform]RewardBonus{
	types.PlatformLinkedIn:  {Metric: BonusMetricDwellTime, Multiplier: 0.001},
	types.PlatformTikTok:    {Metric: BonusMetricWatchTime, Multiplier: 0.5},
	types.PlatformInstagram: {Metric: BonusMetricSaves, Multiplier: 1},
	types.PlatformTwitter:   {Metric: BonusMetricShares, Multiplier: 2},
	types.PlatformFacebook:  {Metric: BonusMetricShares, Multiplier: 2},
	types.PlatformYouTube:   {Metric: BonusMetricWatchTime, Multiplier: 0.3},
	types.PlatformPinterest: {Metric: BonusMetricSaves, Multiplier: 2},
}

// Bonus returns the platform's bonus term, if it has one configured.
func Bonus(p types.Platform) (RewardBonus, bool) {
	b, ok := rewardBonuses[p]
	return b, ok
}

// Per-platform posting hours that historically perform well, used only as the
// cold-start fallback for the time-slot dimension before any arm statistics
// exist. Split by weekday/weekend because audience activity shifts.
var optimalHoursWeekday = map[types.Platform][]int{
	types.PlatformInstagram: {7, 11, 14, 17, 19},
	types.PlatformTikTok:    {6, 10, 15, 19, 22},
	types.PlatformLinkedIn:  {8, 10, 12, 17},
	types.PlatformTwitter:   {8, 12, 17, 21},
	types.PlatformFacebook:  {9, 13, 15, 19},
	types.PlatformYouTube:   {12, 15, 18, 20},
	types.PlatformPinterest: {8, 12, 20, 21},
}

var optimalHoursWeekend = map[types.Platform][]int{
	types.PlatformInstagram: {9, 11, 13, 18},
	types.PlatformTikTok:    {9, 11, 16, 19, 20},
	types.PlatformLinkedIn:  {10, 12},
	types.PlatformTwitter:   {9, 11, 19},
	types.PlatformFacebook:  {12, 13, 14},
	types.PlatformYouTube:   {10, 14, 17, 20},
	types.PlatformPinterest: {12, 14, 20, 21},
}

var defaultOptimalHours = []int{9, 12, 17, 20}

// OptimalHours returns the fallback posting hours for a platform.
func OptimalHours(p types.Platform, weekend bool) []int {
	table := optimalHoursWeekday
	if weekend {
		table = optimalHoursWeekend
	}
	if hours, ok := table[p]; ok && len(hours) > 0 {
		return hours
	}
	return defaultOptimalHours
}
