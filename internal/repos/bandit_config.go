package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/strategist-backend/internal/logger"
	"github.com/yungbote/strategist-backend/internal/types"
)

type BanditConfigRepo interface {
	Get(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, platform types.Platform) (*types.BanditConfig, error)
	GetOrCreate(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, platform types.Platform) (*types.BanditConfig, error)
	GetOrCreateForUpdate(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, platform types.Platform) (*types.BanditConfig, error)
	Save(ctx context.Context, tx *gorm.DB, cfg *types.BanditConfig) error
	ListByTenant(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) ([]*types.BanditConfig, error)
}

type banditConfigRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBanditConfigRepo(db *gorm.DB, baseLog *logger.Logger) BanditConfigRepo {
	return &banditConfigRepo{
		db:  db,
		log: baseLog.With("repo", "BanditConfigRepo"),
	}
}

func (r *banditConfigRepo) Get(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, platform types.Platform) (*types.BanditConfig, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if tenantID == uuid.Nil {
		return nil, nil
	}
	var row types.BanditConfig
	err := transaction.WithContext(ctx).
		Where("tenant_id = ? AND platform = ?", tenantID, platform).
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

// GetOrCreate lazily provisions the per-tenant exploration state with the
// default epsilon schedule on first access.
func (r *banditConfigRepo) GetOrCreate(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, platform types.Platform) (*types.BanditConfig, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	existing, err := r.Get(ctx, transaction, tenantID, platform)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	row := &types.BanditConfig{
		ID:           uuid.New(),
		TenantID:     tenantID,
		Platform:     platform,
		Epsilon:      types.DefaultEpsilon,
		EpsilonMin:   types.DefaultEpsilonMin,
		EpsilonDecay: types.DefaultEpsilonDecay,
	}
	if err := transaction.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// GetOrCreateForUpdate row-locks the read so concurrent feedback episodes
// for the same tenant x platform serialize across replicas.
func (r *banditConfigRepo) GetOrCreateForUpdate(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, platform types.Platform) (*types.BanditConfig, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return r.GetOrCreate(ctx, forUpdate(transaction), tenantID, platform)
}

func (r *banditConfigRepo) Save(ctx context.Context, tx *gorm.DB, cfg *types.BanditConfig) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if cfg == nil || cfg.ID == uuid.Nil {
		return nil
	}
	return transaction.WithContext(ctx).Save(cfg).Error
}

func (r *banditConfigRepo) ListByTenant(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) ([]*types.BanditConfig, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if tenantID == uuid.Nil {
		return nil, nil
	}
	var rows []*types.BanditConfig
	err := transaction.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("platform asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
