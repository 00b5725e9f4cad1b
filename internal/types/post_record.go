package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostRecord is one entry in the per-tenant post history the cadence guard
// reads. Appended by the feedback episode and insertable directly by the
// publishing workflow.
type PostRecord struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID    uuid.UUID      `gorm:"type:uuid;not null;index:idx_post_record_tenant_platform,priority:1" json:"tenant_id"`
	Platform    Platform       `gorm:"column:platform;not null;index:idx_post_record_tenant_platform,priority:2" json:"platform"`
	ContentType *string        `gorm:"column:content_type" json:"content_type,omitempty"`
	PostedAt    time.Time      `gorm:"column:posted_at;not null;index" json:"posted_at"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (PostRecord) TableName() string { return "post_record" }
