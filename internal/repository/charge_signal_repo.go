package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/SwiftWareCo/GolfSync-sub005/internal/model"
)

// ChargeSignalRepository is the billing outbox data access interface.
type ChargeSignalRepository interface {
	Create(ctx context.Context, signal *model.ChargeSignal) error
	ListSince(ctx context.Context, since time.Time, offset, limit int) ([]model.ChargeSignal, int64, error)
}

type chargeSignalRepo struct {
	db *gorm.DB
}

// NewChargeSignalRepo creates a ChargeSignalRepository instance.
func NewChargeSignalRepo(db *gorm.DB) ChargeSignalRepository {
	return &chargeSignalRepo{db: db}
}

func (r *chargeSignalRepo) Create(ctx context.Context, signal *model.ChargeSignal) error {
	return r.db.WithContext(ctx).Create(signal).Error
}

func (r *chargeSignalRepo) ListSince(ctx context.Context, since time.Time, offset, limit int) ([]model.ChargeSignal, int64, error) {
	var signals []model.ChargeSignal
	var total int64

	if err := r.db.WithContext(ctx).
		Model(&model.ChargeSignal{}).
		Where("emitted_at >= ?", since).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("Member").
		Where("emitted_at >= ?", since).
		Order("emitted_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&signals).Error
	return signals, total, err
}
