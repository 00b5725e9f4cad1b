package services

import (
	"context"
	"math"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/strategist-backend/internal/catalog"
	"github.com/yungbote/strategist-backend/internal/repos"
	"github.com/yungbote/strategist-backend/internal/types"
)

func TestRecommendFillsEveryDimension(t *testing.T) {
	db := openTestDB(t)
	log := testLogger(t)
	armRepo := repos.NewArmStateRepo(db, log)
	cfgRepo := repos.NewBanditConfigRepo(db, log)
	selector := NewSelectorService(log, armRepo)
	svc := NewRecommendationService(log, cfgRepo, armRepo, selector)

	rec, err := svc.Recommend(context.Background(), uuid.New(), types.PlatformInstagram, types.SafetyModerate, nil)
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if rec.TimeSlot < 0 || rec.TimeSlot > 23 {
		t.Fatalf("timeSlot=%d, want 0..23", rec.TimeSlot)
	}
	if !catalog.ValidArm(types.DimensionContentType, rec.ContentType) {
		t.Fatalf("contentType %q not in catalogue", rec.ContentType)
	}
	if !catalog.ValidArm(types.DimensionHashtagPattern, rec.HashtagPattern) {
		t.Fatalf("hashtagPattern %q not in catalogue", rec.HashtagPattern)
	}
	if !catalog.ValidArm(types.DimensionToneStyle, rec.ToneStyle) {
		t.Fatalf("toneStyle %q not in catalogue", rec.ToneStyle)
	}
	// Fresh tenant: no pulls anywhere yet.
	if rec.Confidence != 0 {
		t.Fatalf("confidence=%v for fresh tenant, want 0", rec.Confidence)
	}
}

func TestRecommendConfidenceGrowsWithPulls(t *testing.T) {
	db := openTestDB(t)
	log := testLogger(t)
	armRepo := repos.NewArmStateRepo(db, log)
	cfgRepo := repos.NewBanditConfigRepo(db, log)
	selector := NewSelectorService(log, armRepo)
	svc := NewRecommendationService(log, cfgRepo, armRepo, selector)
	tenantID := uuid.New()

	seedArmState(t, armRepo, tenantID, types.PlatformTikTok, types.DimensionContentType, "ugc", 4)
	seedArmState(t, armRepo, tenantID, types.PlatformTikTok, types.DimensionToneStyle, "casual", 4)
	seedArmState(t, armRepo, tenantID, types.PlatformTikTok, types.DimensionHashtagPattern, "trending", 4)

	rec, err := svc.Recommend(context.Background(), tenantID, types.PlatformTikTok, types.SafetyModerate, nil)
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	// 3 seeded arms x 5 pulls each.
	want := 1 - math.Exp(-15.0/100)
	if math.Abs(rec.Confidence-want) > 1e-9 {
		t.Fatalf("confidence=%v, want %v", rec.Confidence, want)
	}
}

func TestRecommendHonorsAllowedContentTypes(t *testing.T) {
	db := openTestDB(t)
	log := testLogger(t)
	armRepo := repos.NewArmStateRepo(db, log)
	cfgRepo := repos.NewBanditConfigRepo(db, log)
	selector := NewSelectorService(log, armRepo)
	svc := NewRecommendationService(log, cfgRepo, armRepo, selector)
	tenantID := uuid.New()

	allowed := []string{"educational", "news"}
	for i := 0; i < 15; i++ {
		rec, err := svc.Recommend(context.Background(), tenantID, types.PlatformLinkedIn, types.SafetyModerate, allowed)
		if err != nil {
			t.Fatalf("recommend: %v", err)
		}
		if rec.ContentType != "educational" && rec.ContentType != "news" {
			t.Fatalf("contentType %q outside allowed set %v", rec.ContentType, allowed)
		}
	}
}
