package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SwiftWareCo/GolfSync-sub005/internal/model"
)

// MaintenanceRunRepository tracks completed maintenance passes.
type MaintenanceRunRepository interface {
	GetByTypeAndMonth(ctx context.Context, runType, month string) (*model.MaintenanceRun, error)
	Create(ctx context.Context, run *model.MaintenanceRun) error
	// Upsert writes the marker, replacing an existing one for the same
	// (type, month). Manual re-runs land here.
	Upsert(ctx context.Context, run *model.MaintenanceRun) error
}

type maintenanceRunRepo struct {
	db *gorm.DB
}

// NewMaintenanceRunRepo creates a MaintenanceRunRepository instance.
func NewMaintenanceRunRepo(db *gorm.DB) MaintenanceRunRepository {
	return &maintenanceRunRepo{db: db}
}

func (r *maintenanceRunRepo) GetByTypeAndMonth(ctx context.Context, runType, month string) (*model.MaintenanceRun, error) {
	var run model.MaintenanceRun
	err := r.db.WithContext(ctx).
		Where("run_type = ? AND month = ?", runType, month).
		First(&run).Error
	if err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *maintenanceRunRepo) Create(ctx context.Context, run *model.MaintenanceRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *maintenanceRunRepo) Upsert(ctx context.Context, run *model.MaintenanceRun) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "run_type"}, {Name: "month"}},
			DoUpdates: clause.AssignmentColumns([]string{"records_affected", "triggered_by", "ran_at"}),
		}).
		Create(run).Error
}
