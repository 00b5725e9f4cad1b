package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ArmState carries the online statistics for one arm of one decision dimension,
// keyed by tenant x platform x dimension x arm. Rows are created on the first
// reward for the arm and updated monotonically, never deleted.
type ArmState struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID    uuid.UUID      `gorm:"type:uuid;not null;index:idx_arm_state_key,unique,priority:1" json:"tenant_id"`
	Platform    Platform       `gorm:"column:platform;not null;index:idx_arm_state_key,unique,priority:2" json:"platform"`
	Dimension   Dimension      `gorm:"column:dimension;not null;index:idx_arm_state_key,unique,priority:3" json:"dimension"`
	Arm         string         `gorm:"column:arm;not null;index:idx_arm_state_key,unique,priority:4" json:"arm"`
	Pulls       int            `gorm:"column:pulls;not null;default:0" json:"pulls"`
	TotalReward float64        `gorm:"column:total_reward;not null;default:0" json:"total_reward"`
	AvgReward   float64        `gorm:"column:avg_reward;not null;default:0" json:"avg_reward"`
	LastReward  float64        `gorm:"column:last_reward;not null;default:0" json:"last_reward"`
	MaxReward   float64        `gorm:"column:max_reward;not null;default:0" json:"max_reward"`
	EwmaReward  float64        `gorm:"column:ewma_reward;not null;default:0" json:"ewma_reward"`
	Variance    float64        `gorm:"column:variance;not null;default:0" json:"variance"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (ArmState) TableName() string { return "arm_state" }
