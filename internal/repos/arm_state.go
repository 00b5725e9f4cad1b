package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/strategist-backend/internal/logger"
	"github.com/yungbote/strategist-backend/internal/types"
)

type ArmStateRepo interface {
	Get(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, platform types.Platform, dimension types.Dimension, arm string) (*types.ArmState, error)
	GetForUpdate(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, platform types.Platform, dimension types.Dimension, arm string) (*types.ArmState, error)
	ListByDimension(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, platform types.Platform, dimension types.Dimension) ([]*types.ArmState, error)
	ListByArms(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, platform types.Platform, dimension types.Dimension, arms []string) ([]*types.ArmState, error)
	Save(ctx context.Context, tx *gorm.DB, row *types.ArmState) error
	SumPulls(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, platform types.Platform) (int64, error)
}

type armStateRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewArmStateRepo(db *gorm.DB, baseLog *logger.Logger) ArmStateRepo {
	return &armStateRepo{
		db:  db,
		log: baseLog.With("repo", "ArmStateRepo"),
	}
}

func (r *armStateRepo) Get(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, platform types.Platform, dimension types.Dimension, arm string) (*types.ArmState, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if tenantID == uuid.Nil || arm == "" {
		return nil, nil
	}
	var row types.ArmState
	err := transaction.WithContext(ctx).
		Where("tenant_id = ? AND platform = ? AND dimension = ? AND arm = ?", tenantID, platform, dimension, arm).
		Limit(1).
		Find(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

// GetForUpdate row-locks the read; meant for the feedback transaction's
// read-modify-write.
func (r *armStateRepo) GetForUpdate(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, platform types.Platform, dimension types.Dimension, arm string) (*types.ArmState, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return r.Get(ctx, forUpdate(transaction), tenantID, platform, dimension, arm)
}

func (r *armStateRepo) ListByDimension(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, platform types.Platform, dimension types.Dimension) ([]*types.ArmState, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if tenantID == uuid.Nil {
		return nil, nil
	}
	var rows []*types.ArmState
	err := transaction.WithContext(ctx).
		Where("tenant_id = ? AND platform = ? AND dimension = ?", tenantID, platform, dimension).
		Order("ewma_reward desc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *armStateRepo) ListByArms(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, platform types.Platform, dimension types.Dimension, arms []string) ([]*types.ArmState, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if tenantID == uuid.Nil || len(arms) == 0 {
		return nil, nil
	}
	var rows []*types.ArmState
	err := transaction.WithContext(ctx).
		Where("tenant_id = ? AND platform = ? AND dimension = ? AND arm IN ?", tenantID, platform, dimension, arms).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Save creates the row on first reward and overwrites the statistics columns
// afterwards. The read-modify-write is expected to run inside the feedback
// episode's transaction.
func (r *armStateRepo) Save(ctx context.Context, tx *gorm.DB, row *types.ArmState) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if row == nil || row.TenantID == uuid.Nil || row.Arm == "" {
		return nil
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
		return transaction.WithContext(ctx).Create(row).Error
	}
	return transaction.WithContext(ctx).Save(row).Error
}

func (r *armStateRepo) SumPulls(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, platform types.Platform) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if tenantID == uuid.Nil {
		return 0, nil
	}
	var total int64
	err := transaction.WithContext(ctx).
		Model(&types.ArmState{}).
		Where("tenant_id = ? AND platform = ?", tenantID, platform).
		Select("COALESCE(SUM(pulls), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}
