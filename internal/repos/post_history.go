package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/strategist-backend/internal/logger"
	"github.com/yungbote/strategist-backend/internal/types"
)

type PostHistoryRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rec *types.PostRecord) error
	LastPostAt(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, platform types.Platform) (*time.Time, error)
	CountSince(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, platform types.Platform, since time.Time) (int64, error)
}

type postHistoryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostHistoryRepo(db *gorm.DB, baseLog *logger.Logger) PostHistoryRepo {
	return &postHistoryRepo{
		db:  db,
		log: baseLog.With("repo", "PostHistoryRepo"),
	}
}

func (r *postHistoryRepo) Create(ctx context.Context, tx *gorm.DB, rec *types.PostRecord) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if rec == nil || rec.TenantID == uuid.Nil {
		return nil
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.PostedAt.IsZero() {
		rec.PostedAt = time.Now().UTC()
	}
	return transaction.WithContext(ctx).Create(rec).Error
}

func (r *postHistoryRepo) LastPostAt(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, platform types.Platform) (*time.Time, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if tenantID == uuid.Nil {
		return nil, nil
	}
	var row types.PostRecord
	err := transaction.WithContext(ctx).
		Where("tenant_id = ? AND platform = ?", tenantID, platform).
		Order("posted_at desc").
		Limit(1).
		Find(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	t := row.PostedAt
	return &t, nil
}

func (r *postHistoryRepo) CountSince(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, platform types.Platform, since time.Time) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if tenantID == uuid.Nil {
		return 0, nil
	}
	var count int64
	err := transaction.WithContext(ctx).
		Model(&types.PostRecord{}).
		Where("tenant_id = ? AND platform = ? AND posted_at >= ?", tenantID, platform, since).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
