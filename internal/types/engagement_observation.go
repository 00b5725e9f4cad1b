package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EngagementMetrics are the raw counters measured for one published post.
// Optional signals (dwell time, watch time) default to zero when the platform
// does not report them.
type EngagementMetrics struct {
	Likes       int     `json:"likes"`
	Comments    int     `json:"comments"`
	Shares      int     `json:"shares"`
	Saves       int     `json:"saves"`
	DwellTimeMS float64 `json:"dwell_time_ms,omitempty"`
	WatchTimeS  float64 `json:"watch_time_s,omitempty"`
}

// EngagementObservation is one measured outcome for a published post, tagged
// with the arm that produced it on each dimension. Immutable once recorded;
// Score is filled in by the feedback episode that consumes it.
type EngagementObservation struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Platform          Platform       `gorm:"column:platform;not null;index" json:"platform"`
	Likes             int            `gorm:"column:likes;not null;default:0" json:"likes"`
	Comments          int            `gorm:"column:comments;not null;default:0" json:"comments"`
	Shares            int            `gorm:"column:shares;not null;default:0" json:"shares"`
	Saves             int            `gorm:"column:saves;not null;default:0" json:"saves"`
	DwellTimeMS       *float64       `gorm:"column:dwell_time_ms" json:"dwell_time_ms,omitempty"`
	WatchTimeS        *float64       `gorm:"column:watch_time_s" json:"watch_time_s,omitempty"`
	TimeSlotArm       *string        `gorm:"column:time_slot_arm" json:"time_slot_arm,omitempty"`
	ContentTypeArm    *string        `gorm:"column:content_type_arm" json:"content_type_arm,omitempty"`
	HashtagPatternArm *string        `gorm:"column:hashtag_pattern_arm" json:"hashtag_pattern_arm,omitempty"`
	ToneStyleArm      *string        `gorm:"column:tone_style_arm" json:"tone_style_arm,omitempty"`
	Score             *float64       `gorm:"column:score" json:"score,omitempty"`
	// Raw collector payload, kept for diagnostics.
	Metadata  datatypes.JSON `gorm:"type:jsonb;column:metadata" json:"metadata,omitempty"`
	PostedAt  time.Time      `gorm:"column:posted_at;not null;index" json:"posted_at"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (EngagementObservation) TableName() string { return "engagement_observation" }

// Metrics collects the raw counters into the shape the reward model scores.
func (o *EngagementObservation) Metrics() EngagementMetrics {
	m := EngagementMetrics{
		Likes:    o.Likes,
		Comments: o.Comments,
		Shares:   o.Shares,
		Saves:    o.Saves,
	}
	if o.DwellTimeMS != nil {
		m.DwellTimeMS = *o.DwellTimeMS
	}
	if o.WatchTimeS != nil {
		m.WatchTimeS = *o.WatchTimeS
	}
	return m
}

// ArmFor returns the recorded arm for one dimension, or nil when the
// observation was not tagged on that dimension.
func (o *EngagementObservation) ArmFor(d Dimension) *string {
	switch d {
	case DimensionTimeSlot:
		return o.TimeSlotArm
	case DimensionContentType:
		return o.ContentTypeArm
	case DimensionHashtagPattern:
		return o.HashtagPatternArm
	case DimensionToneStyle:
		return o.ToneStyleArm
	}
	return nil
}
