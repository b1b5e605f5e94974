package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/SwiftWareCo/GolfSync-sub005/internal/model"
)

// RestrictionRepository reads the club rules and per-member exemptions the
// admin screens maintain.
type RestrictionRepository interface {
	ListActive(ctx context.Context) ([]model.LotteryRestriction, error)
	ListOverrides(ctx context.Context) ([]model.RestrictionOverride, error)
}

type restrictionRepo struct {
	db *gorm.DB
}

// NewRestrictionRepo creates a RestrictionRepository instance.
func NewRestrictionRepo(db *gorm.DB) RestrictionRepository {
	return &restrictionRepo{db: db}
}

func (r *restrictionRepo) ListActive(ctx context.Context) ([]model.LotteryRestriction, error) {
	var restrictions []model.LotteryRestriction
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Find(&restrictions).Error
	return restrictions, err
}

func (r *restrictionRepo) ListOverrides(ctx context.Context) ([]model.RestrictionOverride, error) {
	var overrides []model.RestrictionOverride
	err := r.db.WithContext(ctx).Find(&overrides).Error
	return overrides, err
}
