package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/SwiftWareCo/GolfSync-sub005/internal/model"
)

// AlgorithmConfigRepository is the singleton tuning row data access
// interface.
type AlgorithmConfigRepository interface {
	Get(ctx context.Context) (*model.AlgorithmConfig, error)
	Create(ctx context.Context, cfg *model.AlgorithmConfig) error
	Update(ctx context.Context, cfg *model.AlgorithmConfig) error
}

type algorithmConfigRepo struct {
	db *gorm.DB
}

// NewAlgorithmConfigRepo creates an AlgorithmConfigRepository instance.
func NewAlgorithmConfigRepo(db *gorm.DB) AlgorithmConfigRepository {
	return &algorithmConfigRepo{db: db}
}

func (r *algorithmConfigRepo) Get(ctx context.Context) (*model.AlgorithmConfig, error) {
	var cfg model.AlgorithmConfig
	err := r.db.WithContext(ctx).First(&cfg).Error
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *algorithmConfigRepo) Create(ctx context.Context, cfg *model.AlgorithmConfig) error {
	return r.db.WithContext(ctx).Create(cfg).Error
}

func (r *algorithmConfigRepo) Update(ctx context.Context, cfg *model.AlgorithmConfig) error {
	return r.db.WithContext(ctx).Save(cfg).Error
}
