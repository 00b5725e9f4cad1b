package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/strategist-backend/internal/logger"
	"github.com/yungbote/strategist-backend/internal/types"
)

type ObservationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, obs *types.EngagementObservation) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.EngagementObservation, error)
	GetByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.EngagementObservation, error)
	SetScore(ctx context.Context, tx *gorm.DB, id uuid.UUID, score float64) error
}

type observationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewObservationRepo(db *gorm.DB, baseLog *logger.Logger) ObservationRepo {
	return &observationRepo{
		db:  db,
		log: baseLog.With("repo", "ObservationRepo"),
	}
}

func (r *observationRepo) Create(ctx context.Context, tx *gorm.DB, obs *types.EngagementObservation) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if obs == nil || obs.TenantID == uuid.Nil {
		return nil
	}
	if obs.ID == uuid.Nil {
		obs.ID = uuid.New()
	}
	return transaction.WithContext(ctx).Create(obs).Error
}

func (r *observationRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.EngagementObservation, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var row types.EngagementObservation
	err := transaction.WithContext(ctx).
		Where("id = ?", id).
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

// GetByIDForUpdate row-locks the observation so the same ID cannot be scored
// twice by concurrent feedback episodes.
func (r *observationRepo) GetByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.EngagementObservation, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return r.GetByID(ctx, forUpdate(transaction), id)
}

func (r *observationRepo) SetScore(ctx context.Context, tx *gorm.DB, id uuid.UUID, score float64) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.EngagementObservation{}).
		Where("id = ?", id).
		Update("score", score).Error
}
