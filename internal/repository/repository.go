package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository aggregates every data access interface.
type Repository struct {
	db *gorm.DB

	Member          MemberRepository
	LotteryEntry    LotteryEntryRepository
	TeeTimeBlock    TeeTimeBlockRepository
	TeeTimeBooking  TeeTimeBookingRepository
	SpeedProfile    SpeedProfileRepository
	FairnessScore   FairnessScoreRepository
	AlgorithmConfig AlgorithmConfigRepository
	Restriction     RestrictionRepository
	MaintenanceRun  MaintenanceRunRepository
	ChargeSignal    ChargeSignalRepository
}

// NewRepository wires the aggregate against one gorm handle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:              db,
		Member:          NewMemberRepo(db),
		LotteryEntry:    NewLotteryEntryRepo(db),
		TeeTimeBlock:    NewTeeTimeBlockRepo(db),
		TeeTimeBooking:  NewTeeTimeBookingRepo(db),
		SpeedProfile:    NewSpeedProfileRepo(db),
		FairnessScore:   NewFairnessScoreRepo(db),
		AlgorithmConfig: NewAlgorithmConfigRepo(db),
		Restriction:     NewRestrictionRepo(db),
		MaintenanceRun:  NewMaintenanceRunRepo(db),
		ChargeSignal:    NewChargeSignalRepo(db),
	}
}

// WithinTransaction runs fn against a Repository bound to a single database
// transaction. Used where an assignment must write the entry and its bookings
// atomically. A Repository assembled without a database handle runs fn
// directly.
func (r *Repository) WithinTransaction(ctx context.Context, fn func(txRepo *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
