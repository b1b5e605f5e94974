package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/SwiftWareCo/GolfSync-sub005/internal/model"
)

// MemberRepository reads the synced member directory.
type MemberRepository interface {
	GetByID(ctx context.Context, id string) (*model.Member, error)
	ListByIDs(ctx context.Context, ids []string) ([]model.Member, error)
	ListActive(ctx context.Context) ([]model.Member, error)
}

type memberRepo struct {
	db *gorm.DB
}

// NewMemberRepo creates a MemberRepository instance.
func NewMemberRepo(db *gorm.DB) MemberRepository {
	return &memberRepo{db: db}
}

func (r *memberRepo) GetByID(ctx context.Context, id string) (*model.Member, error) {
	var member model.Member
	err := r.db.WithContext(ctx).
		Where("member_id = ?", id).
		First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *memberRepo) ListByIDs(ctx context.Context, ids []string) ([]model.Member, error) {
	var members []model.Member
	err := r.db.WithContext(ctx).
		Where("member_id IN ?", ids).
		Find(&members).Error
	return members, err
}

func (r *memberRepo) ListActive(ctx context.Context) ([]model.Member, error) {
	var members []model.Member
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&members).Error
	return members, err
}
