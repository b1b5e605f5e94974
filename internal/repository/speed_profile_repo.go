package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/SwiftWareCo/GolfSync-sub005/internal/model"
	pkgerrors "github.com/SwiftWareCo/GolfSync-sub005/pkg/errors"
)

// SpeedProfileRepository is the pace-of-play profile data access interface.
type SpeedProfileRepository interface {
	Create(ctx context.Context, profile *model.MemberSpeedProfile) error
	GetByMemberID(ctx context.Context, memberID string) (*model.MemberSpeedProfile, error)
	List(ctx context.Context, offset, limit int) ([]model.MemberSpeedProfile, int64, error)
	ListAll(ctx context.Context) ([]model.MemberSpeedProfile, error)
	Update(ctx context.Context, profile *model.MemberSpeedProfile) error
}

type speedProfileRepo struct {
	db *gorm.DB
}

// NewSpeedProfileRepo creates a SpeedProfileRepository instance.
func NewSpeedProfileRepo(db *gorm.DB) SpeedProfileRepository {
	return &speedProfileRepo{db: db}
}

func (r *speedProfileRepo) Create(ctx context.Context, profile *model.MemberSpeedProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *speedProfileRepo) GetByMemberID(ctx context.Context, memberID string) (*model.MemberSpeedProfile, error) {
	var profile model.MemberSpeedProfile
	err := r.db.WithContext(ctx).
		Preload("Member").
		Where("member_id = ?", memberID).
		First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *speedProfileRepo) List(ctx context.Context, offset, limit int) ([]model.MemberSpeedProfile, int64, error) {
	var profiles []model.MemberSpeedProfile
	var total int64

	if err := r.db.WithContext(ctx).
		Model(&model.MemberSpeedProfile{}).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("Member").
		Order("member_id ASC").
		Offset(offset).
		Limit(limit).
		Find(&profiles).Error
	return profiles, total, err
}

func (r *speedProfileRepo) ListAll(ctx context.Context) ([]model.MemberSpeedProfile, error) {
	var profiles []model.MemberSpeedProfile
	err := r.db.WithContext(ctx).Find(&profiles).Error
	return profiles, err
}

// Update rewrites the profile under its optimistic lock; staff edits and
// round ingestion can race on the same row.
func (r *speedProfileRepo) Update(ctx context.Context, profile *model.MemberSpeedProfile) error {
	oldVersion := profile.Version
	result := r.db.WithContext(ctx).
		Model(profile).
		Where("member_id = ? AND version = ?", profile.MemberID, oldVersion).
		Updates(map[string]interface{}{
			"average_minutes":           profile.AverageMinutes,
			"rounds_sampled":            profile.RoundsSampled,
			"speed_tier":                profile.SpeedTier,
			"has_data":                  profile.HasData,
			"manual_override":           profile.ManualOverride,
			"admin_priority_adjustment": profile.AdminPriorityAdjustment,
			"notes":                     profile.Notes,
			"last_calculated":           profile.LastCalculated,
			"updated_by":                profile.UpdatedBy,
			"version":                   oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	profile.Version = oldVersion + 1
	return nil
}
