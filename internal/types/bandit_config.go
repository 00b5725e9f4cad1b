package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BanditConfig holds the exploration-rate state and short-horizon cadence memory
// for one tenant on one platform. Created lazily on first access.
type BanditConfig struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID            uuid.UUID      `gorm:"type:uuid;not null;index:idx_bandit_config_tenant_platform,unique,priority:1" json:"tenant_id"`
	Platform            Platform       `gorm:"column:platform;not null;index:idx_bandit_config_tenant_platform,unique,priority:2" json:"platform"`
	Epsilon             float64        `gorm:"column:epsilon;not null" json:"epsilon"`
	EpsilonMin          float64        `gorm:"column:epsilon_min;not null" json:"epsilon_min"`
	EpsilonDecay        float64        `gorm:"column:epsilon_decay;not null" json:"epsilon_decay"`
	TotalEpisodes       int            `gorm:"column:total_episodes;not null;default:0" json:"total_episodes"`
	LastPostAt          *time.Time     `gorm:"column:last_post_at" json:"last_post_at,omitempty"`
	LastContentType     *string        `gorm:"column:last_content_type" json:"last_content_type,omitempty"`
	ConsecutiveSameType int            `gorm:"column:consecutive_same_type;not null;default:0" json:"consecutive_same_type"`
	CreatedAt           time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt           time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (BanditConfig) TableName() string { return "bandit_config" }

// Defaults for a freshly created config.
const (
	DefaultEpsilon      = 0.2
	DefaultEpsilonMin   = 0.05
	DefaultEpsilonDecay = 0.995
)
