package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/strategist-backend/internal/repos"
	"github.com/yungbote/strategist-backend/internal/types"
)

func seedPost(t *testing.T, posts repos.PostHistoryRepo, tenantID uuid.UUID, platform types.Platform, at time.Time) {
	t.Helper()
	err := posts.Create(context.Background(), nil, &types.PostRecord{
		TenantID: tenantID,
		Platform: platform,
		PostedAt: at,
	})
	if err != nil {
		t.Fatalf("seed post record: %v", err)
	}
}

func TestCheckSpamLimitsMinimumInterval(t *testing.T) {
	db := openTestDB(t)
	log := testLogger(t)
	posts := repos.NewPostHistoryRepo(db, log)
	svc := NewCadenceService(log, posts).(*cadenceService)

	now := time.Date(2026, time.June, 10, 12, 0, 0, 0, time.Local)
	svc.now = func() time.Time { return now }
	tenantID := uuid.New()

	// Post 1 minute ago: a MODERATE tenant must wait out the 60-minute gap.
	seedPost(t, posts, tenantID, types.PlatformInstagram, now.Add(-1*time.Minute))
	res, err := svc.CheckSpamLimits(context.Background(), tenantID, types.PlatformInstagram, types.SafetyModerate)
	if err != nil {
		t.Fatalf("check spam limits: %v", err)
	}
	if res.Allowed {
		t.Fatal("post 1 minute after last post allowed, want denied")
	}
	if res.WaitMinutes != 59 {
		t.Fatalf("waitMinutes=%d, want 59", res.WaitMinutes)
	}

	// Same tenant, fresh platform, last post 61 minutes ago: allowed.
	other := uuid.New()
	seedPost(t, posts, other, types.PlatformInstagram, now.Add(-61*time.Minute))
	res, err = svc.CheckSpamLimits(context.Background(), other, types.PlatformInstagram, types.SafetyModerate)
	if err != nil {
		t.Fatalf("check spam limits: %v", err)
	}
	if !res.Allowed {
		t.Fatalf("post 61 minutes after last post denied: %+v", res)
	}
}

func TestCheckSpamLimitsHourlyCap(t *testing.T) {
	db := openTestDB(t)
	log := testLogger(t)
	posts := repos.NewPostHistoryRepo(db, log)
	svc := NewCadenceService(log, posts).(*cadenceService)

	now := time.Date(2026, time.June, 10, 12, 0, 0, 0, time.Local)
	svc.now = func() time.Time { return now }
	tenantID := uuid.New()

	// AGGRESSIVE: 30-minute interval passes, but three posts already sit in
	// the trailing hour.
	seedPost(t, posts, tenantID, types.PlatformTikTok, now.Add(-55*time.Minute))
	seedPost(t, posts, tenantID, types.PlatformTikTok, now.Add(-45*time.Minute))
	seedPost(t, posts, tenantID, types.PlatformTikTok, now.Add(-35*time.Minute))

	res, err := svc.CheckSpamLimits(context.Background(), tenantID, types.PlatformTikTok, types.SafetyAggressive)
	if err != nil {
		t.Fatalf("check spam limits: %v", err)
	}
	if res.Allowed {
		t.Fatal("post over hourly cap allowed, want denied")
	}
	if res.WaitMinutes != 60 {
		t.Fatalf("waitMinutes=%d, want 60", res.WaitMinutes)
	}
}

func TestCheckSpamLimitsDailyCap(t *testing.T) {
	db := openTestDB(t)
	log := testLogger(t)
	posts := repos.NewPostHistoryRepo(db, log)
	svc := NewCadenceService(log, posts).(*cadenceService)

	now := time.Date(2026, time.June, 10, 18, 0, 0, 0, time.Local)
	svc.now = func() time.Time { return now }
	tenantID := uuid.New()

	// Five posts since local midnight, all outside the trailing hour and the
	// CONSERVATIVE 120-minute interval: only the daily cap can fire.
	for i := 0; i < 5; i++ {
		seedPost(t, posts, tenantID, types.PlatformLinkedIn, now.Add(-time.Duration(3+i)*time.Hour))
	}

	res, err := svc.CheckSpamLimits(context.Background(), tenantID, types.PlatformLinkedIn, types.SafetyConservative)
	if err != nil {
		t.Fatalf("check spam limits: %v", err)
	}
	if res.Allowed {
		t.Fatal("post over daily cap allowed, want denied")
	}
	if res.WaitMinutes != 0 {
		t.Fatalf("daily cap should not estimate a wait, got %d", res.WaitMinutes)
	}
}

func TestCheckSpamLimitsNoHistoryAllows(t *testing.T) {
	db := openTestDB(t)
	log := testLogger(t)
	posts := repos.NewPostHistoryRepo(db, log)
	svc := NewCadenceService(log, posts)

	res, err := svc.CheckSpamLimits(context.Background(), uuid.New(), types.PlatformYouTube, types.SafetyConservative)
	if err != nil {
		t.Fatalf("check spam limits: %v", err)
	}
	if !res.Allowed {
		t.Fatalf("fresh tenant denied: %+v", res)
	}
}
