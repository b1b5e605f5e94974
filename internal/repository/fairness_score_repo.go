package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SwiftWareCo/GolfSync-sub005/internal/model"
)

// FairnessScoreRepository is the monthly fairness ledger data access
// interface.
type FairnessScoreRepository interface {
	GetByMemberAndMonth(ctx context.Context, memberID, month string) (*model.MemberFairnessScore, error)
	ListByMonth(ctx context.Context, month string) ([]model.MemberFairnessScore, error)
	// BulkEnsure inserts the given rows, skipping any (member, month) that
	// already exists. Returns how many rows were actually created.
	BulkEnsure(ctx context.Context, scores []model.MemberFairnessScore) (int64, error)
	Update(ctx context.Context, score *model.MemberFairnessScore) error
	// ResetMonth zeroes every counter for the month and returns the number
	// of rows touched.
	ResetMonth(ctx context.Context, month string) (int64, error)
}

type fairnessScoreRepo struct {
	db *gorm.DB
}

// NewFairnessScoreRepo creates a FairnessScoreRepository instance.
func NewFairnessScoreRepo(db *gorm.DB) FairnessScoreRepository {
	return &fairnessScoreRepo{db: db}
}

func (r *fairnessScoreRepo) GetByMemberAndMonth(ctx context.Context, memberID, month string) (*model.MemberFairnessScore, error) {
	var score model.MemberFairnessScore
	err := r.db.WithContext(ctx).
		Where("member_id = ? AND month = ?", memberID, month).
		First(&score).Error
	if err != nil {
		return nil, err
	}
	return &score, nil
}

func (r *fairnessScoreRepo) ListByMonth(ctx context.Context, month string) ([]model.MemberFairnessScore, error) {
	var scores []model.MemberFairnessScore
	err := r.db.WithContext(ctx).
		Where("month = ?", month).
		Find(&scores).Error
	return scores, err
}

func (r *fairnessScoreRepo) BulkEnsure(ctx context.Context, scores []model.MemberFairnessScore) (int64, error) {
	if len(scores) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&scores)
	return result.RowsAffected, result.Error
}

func (r *fairnessScoreRepo) Update(ctx context.Context, score *model.MemberFairnessScore) error {
	return r.db.WithContext(ctx).
		Model(score).
		Where("member_id = ? AND month = ?", score.MemberID, score.Month).
		Updates(map[string]interface{}{
			"total_entries_month":         score.TotalEntriesMonth,
			"preferences_granted_month":   score.PreferencesGrantedMonth,
			"preference_fulfillment_rate": score.PreferenceFulfillmentRate,
			"days_without_good_time":      score.DaysWithoutGoodTime,
			"fairness_score":              score.FairnessScore,
		}).Error
}

func (r *fairnessScoreRepo) ResetMonth(ctx context.Context, month string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.MemberFairnessScore{}).
		Where("month = ?", month).
		Updates(map[string]interface{}{
			"total_entries_month":         0,
			"preferences_granted_month":   0,
			"preference_fulfillment_rate": 0,
			"days_without_good_time":      0,
			"fairness_score":              0,
		})
	return result.RowsAffected, result.Error
}
