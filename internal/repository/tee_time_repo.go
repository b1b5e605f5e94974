package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/SwiftWareCo/GolfSync-sub005/internal/model"
)

// TeeTimeBlockRepository reads the tee sheet blocks the configuration screens
// create.
type TeeTimeBlockRepository interface {
	GetByID(ctx context.Context, id string) (*model.TeeTimeBlock, error)
	ListByDate(ctx context.Context, date string) ([]model.TeeTimeBlock, error)
}

// TeeTimeBookingRepository writes and reads the seats lottery assignments
// materialize.
type TeeTimeBookingRepository interface {
	BatchCreate(ctx context.Context, bookings []model.TeeTimeBooking) error
	ListByDate(ctx context.Context, date string) ([]model.TeeTimeBooking, error)
	// CountByMemberAndMonth counts a member's booked rounds in a YYYY-MM
	// month, for frequency restriction checks.
	CountByMemberAndMonth(ctx context.Context, memberID, month string) (int64, error)
	// ListByMemberBetween returns a member's bookings with their blocks for
	// an inclusive date range, for the calendar feed.
	ListByMemberBetween(ctx context.Context, memberID, fromDate, toDate string) ([]model.TeeTimeBooking, error)
}

// ── TeeTimeBlock implementation ──

type teeTimeBlockRepo struct {
	db *gorm.DB
}

// NewTeeTimeBlockRepo creates a TeeTimeBlockRepository instance.
func NewTeeTimeBlockRepo(db *gorm.DB) TeeTimeBlockRepository {
	return &teeTimeBlockRepo{db: db}
}

func (r *teeTimeBlockRepo) GetByID(ctx context.Context, id string) (*model.TeeTimeBlock, error) {
	var block model.TeeTimeBlock
	err := r.db.WithContext(ctx).
		Where("block_id = ?", id).
		First(&block).Error
	if err != nil {
		return nil, err
	}
	return &block, nil
}

func (r *teeTimeBlockRepo) ListByDate(ctx context.Context, date string) ([]model.TeeTimeBlock, error) {
	var blocks []model.TeeTimeBlock
	err := r.db.WithContext(ctx).
		Where("block_date = ?", date).
		Order("start_time ASC").
		Find(&blocks).Error
	return blocks, err
}

// ── TeeTimeBooking implementation ──

type teeTimeBookingRepo struct {
	db *gorm.DB
}

// NewTeeTimeBookingRepo creates a TeeTimeBookingRepository instance.
func NewTeeTimeBookingRepo(db *gorm.DB) TeeTimeBookingRepository {
	return &teeTimeBookingRepo{db: db}
}

func (r *teeTimeBookingRepo) BatchCreate(ctx context.Context, bookings []model.TeeTimeBooking) error {
	if len(bookings) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&bookings).Error
}

func (r *teeTimeBookingRepo) ListByDate(ctx context.Context, date string) ([]model.TeeTimeBooking, error) {
	var bookings []model.TeeTimeBooking
	err := r.db.WithContext(ctx).
		Preload("Member").
		Where("block_date = ?", date).
		Find(&bookings).Error
	return bookings, err
}

func (r *teeTimeBookingRepo) CountByMemberAndMonth(ctx context.Context, memberID, month string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.TeeTimeBooking{}).
		Where("member_id = ? AND block_date LIKE ?", memberID, month+"-%").
		Count(&count).Error
	return count, err
}

func (r *teeTimeBookingRepo) ListByMemberBetween(ctx context.Context, memberID, fromDate, toDate string) ([]model.TeeTimeBooking, error) {
	var bookings []model.TeeTimeBooking
	err := r.db.WithContext(ctx).
		Preload("Block").
		Where("member_id = ? AND block_date >= ? AND block_date <= ?", memberID, fromDate, toDate).
		Order("block_date ASC").
		Find(&bookings).Error
	return bookings, err
}
