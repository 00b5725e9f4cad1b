package services

import (
	"math"
	"testing"

	"github.com/yungbote/strategist-backend/internal/types"
)

func TestScoreBaseAndBonus(t *testing.T) {
	svc := NewRewardService(testLogger(t))

	cases := []struct {
		name     string
		platform types.Platform
		metrics  types.EngagementMetrics
		want     float64
	}{
		{
			name:     "instagram_saves_bonus_stacks_with_base",
			platform: types.PlatformInstagram,
			metrics:  types.EngagementMetrics{Likes: 10, Comments: 2, Shares: 1, Saves: 5},
			// base 10+6+5+10 = 31, saves bonus 5x1 = 5
			want: 36,
		},
		{
			name:     "linkedin_dwell_time_bonus",
			platform: types.PlatformLinkedIn,
			metrics:  types.EngagementMetrics{Likes: 4, DwellTimeMS: 30000},
			want:     4 + 30,
		},
		{
			name:     "tiktok_watch_time_bonus",
			platform: types.PlatformTikTok,
			metrics:  types.EngagementMetrics{Comments: 1, WatchTimeS: 20},
			want:     3 + 10,
		},
		{
			name:     "twitter_shares_double_count",
			platform: types.PlatformTwitter,
			metrics:  types.EngagementMetrics{Shares: 3},
			want:     15 + 6,
		},
		{
			name:     "facebook_shares_double_count",
			platform: types.PlatformFacebook,
			metrics:  types.EngagementMetrics{Shares: 2, Likes: 1},
			want:     1 + 10 + 4,
		},
		{
			name:     "youtube_watch_time_bonus",
			platform: types.PlatformYouTube,
			metrics:  types.EngagementMetrics{Likes: 10, WatchTimeS: 100},
			want:     10 + 30,
		},
		{
			name:     "pinterest_saves_bonus",
			platform: types.PlatformPinterest,
			metrics:  types.EngagementMetrics{Saves: 4},
			want:     8 + 8,
		},
		{
			name:     "unknown_platform_base_only",
			platform: types.Platform("myspace"),
			metrics:  types.EngagementMetrics{Likes: 2, Comments: 2, Shares: 2, Saves: 2},
			want:     2 + 6 + 10 + 4,
		},
		{
			name:     "missing_optional_metrics_contribute_zero",
			platform: types.PlatformLinkedIn,
			metrics:  types.EngagementMetrics{Likes: 7},
			want:     7,
		},
		{
			name:     "all_zero",
			platform: types.PlatformInstagram,
			metrics:  types.EngagementMetrics{},
			want:     0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := svc.Score(tc.metrics, tc.platform)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("Score(%+v, %s)=%v, want %v", tc.metrics, tc.platform, got, tc.want)
			}
		})
	}
}
