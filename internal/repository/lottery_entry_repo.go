package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/SwiftWareCo/GolfSync-sub005/internal/model"
)

// LotteryEntryRepository is the lottery entry data access interface.
type LotteryEntryRepository interface {
	Create(ctx context.Context, entry *model.LotteryEntry) error
	GetByID(ctx context.Context, id string) (*model.LotteryEntry, error)
	ListByDate(ctx context.Context, date string) ([]model.LotteryEntry, error)
	ListPendingByDate(ctx context.Context, date string) ([]model.LotteryEntry, error)
	// ListActiveByMemberAndDate finds non-cancelled entries on date whose
	// member list contains memberID, regardless of who organized them.
	ListActiveByMemberAndDate(ctx context.Context, memberID, date string) ([]model.LotteryEntry, error)
	GetPendingGroupByOrganizer(ctx context.Context, organizerID, date string) (*model.LotteryEntry, error)
	// MarkAssigned flips a PENDING entry to ASSIGNED. Returns the number of
	// rows touched; zero means the entry was no longer pending.
	MarkAssigned(ctx context.Context, entryID, blockID string, processedAt time.Time) (int64, error)
	// MarkCancelled flips a PENDING entry to CANCELLED with the same guard.
	MarkCancelled(ctx context.Context, entryID string, cancelledAt time.Time) (int64, error)
}

type lotteryEntryRepo struct {
	db *gorm.DB
}

// NewLotteryEntryRepo creates a LotteryEntryRepository instance.
func NewLotteryEntryRepo(db *gorm.DB) LotteryEntryRepository {
	return &lotteryEntryRepo{db: db}
}

func (r *lotteryEntryRepo) Create(ctx context.Context, entry *model.LotteryEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *lotteryEntryRepo) GetByID(ctx context.Context, id string) (*model.LotteryEntry, error) {
	var entry model.LotteryEntry
	err := r.db.WithContext(ctx).
		Preload("Organizer").
		Preload("AssignedBlock").
		Where("entry_id = ?", id).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *lotteryEntryRepo) ListByDate(ctx context.Context, date string) ([]model.LotteryEntry, error) {
	var entries []model.LotteryEntry
	err := r.db.WithContext(ctx).
		Preload("Organizer").
		Preload("AssignedBlock").
		Where("lottery_date = ?", date).
		Order("submitted_at ASC").
		Find(&entries).Error
	return entries, err
}

func (r *lotteryEntryRepo) ListPendingByDate(ctx context.Context, date string) ([]model.LotteryEntry, error) {
	var entries []model.LotteryEntry
	err := r.db.WithContext(ctx).
		Where("lottery_date = ? AND status = ?", date, model.EntryStatusPending).
		Order("submitted_at ASC").
		Find(&entries).Error
	return entries, err
}

func (r *lotteryEntryRepo) ListActiveByMemberAndDate(ctx context.Context, memberID, date string) ([]model.LotteryEntry, error) {
	var entries []model.LotteryEntry
	err := r.db.WithContext(ctx).
		Where("lottery_date = ? AND status <> ? AND ? = ANY(member_ids)",
			date, model.EntryStatusCancelled, memberID).
		Find(&entries).Error
	return entries, err
}

func (r *lotteryEntryRepo) GetPendingGroupByOrganizer(ctx context.Context, organizerID, date string) (*model.LotteryEntry, error) {
	var entry model.LotteryEntry
	err := r.db.WithContext(ctx).
		Where("lottery_date = ? AND organizer_id = ? AND entry_type = ? AND status = ?",
			date, organizerID, model.EntryTypeGroup, model.EntryStatusPending).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *lotteryEntryRepo) MarkAssigned(ctx context.Context, entryID, blockID string, processedAt time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.LotteryEntry{}).
		Where("entry_id = ? AND status = ?", entryID, model.EntryStatusPending).
		Updates(map[string]interface{}{
			"status":            model.EntryStatusAssigned,
			"assigned_block_id": blockID,
			"processed_at":      processedAt,
		})
	return result.RowsAffected, result.Error
}

func (r *lotteryEntryRepo) MarkCancelled(ctx context.Context, entryID string, cancelledAt time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.LotteryEntry{}).
		Where("entry_id = ? AND status = ?", entryID, model.EntryStatusPending).
		Updates(map[string]interface{}{
			"status":       model.EntryStatusCancelled,
			"cancelled_at": cancelledAt,
		})
	return result.RowsAffected, result.Error
}
