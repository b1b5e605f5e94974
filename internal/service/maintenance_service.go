package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/SwiftWareCo/GolfSync-sub005/internal/dto"
	"github.com/SwiftWareCo/GolfSync-sub005/internal/model"
	"github.com/SwiftWareCo/GolfSync-sub005/internal/repository"
)

// MaintenanceService owns the monthly fairness reset. Speed profiles are
// deliberately untouched here; only reclassification or staff edits change
// them.
type MaintenanceService interface {
	// CheckAndRun performs the current month's reset if it has not run yet.
	CheckAndRun(ctx context.Context) (*dto.MaintenanceResultResponse, error)
	// TriggerManual re-runs the current month's reset even when the marker
	// says it already completed. Recovery path.
	TriggerManual(ctx context.Context) (*dto.MaintenanceResultResponse, error)
}

type maintenanceService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewMaintenanceService creates a MaintenanceService instance. The clock is
// injected so tests can pin the month.
func NewMaintenanceService(repo *repository.Repository, logger *zap.Logger, now func() time.Time) MaintenanceService {
	if now == nil {
		now = time.Now
	}
	return &maintenanceService{repo: repo, logger: logger, now: now}
}

// ────────────────────── CheckAndRun ──────────────────────

func (s *maintenanceService) CheckAndRun(ctx context.Context) (*dto.MaintenanceResultResponse, error) {
	month := s.now().Format("2006-01")

	existing, err := s.repo.MaintenanceRun.GetByTypeAndMonth(ctx, model.MaintenanceMonthlyReset, month)
	if err == nil {
		// Marker present: repeat invocations are informational no-ops.
		return &dto.MaintenanceResultResponse{
			RunType:          model.MaintenanceMonthlyReset,
			Month:            month,
			AlreadyCompleted: true,
			RecordsAffected:  0,
			TriggeredBy:      existing.TriggeredBy,
			Note:             "monthly reset already completed for " + month,
			RanAt:            existing.RanAt.Format("2006-01-02T15:04:05Z"),
		}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("query maintenance marker failed", zap.Error(err))
		return nil, err
	}

	return s.runMonthlyReset(ctx, month, model.MaintenanceTriggerAuto)
}

// ────────────────────── TriggerManual ──────────────────────

func (s *maintenanceService) TriggerManual(ctx context.Context) (*dto.MaintenanceResultResponse, error) {
	month := s.now().Format("2006-01")
	return s.runMonthlyReset(ctx, month, model.MaintenanceTriggerManual)
}

// runMonthlyReset zeroes the month's fairness counters and lays down fresh
// rows for members who have none yet. Prior months keep their final values
// under their own keys.
func (s *maintenanceService) runMonthlyReset(ctx context.Context, month, trigger string) (*dto.MaintenanceResultResponse, error) {
	ranAt := s.now()

	zeroed, err := s.repo.FairnessScore.ResetMonth(ctx, month)
	if err != nil {
		s.logger.Error("reset fairness month failed", zap.String("month", month), zap.Error(err))
		return nil, err
	}
	created, err := ensureFairnessMonth(ctx, s.repo, s.logger, month)
	if err != nil {
		return nil, err
	}
	affected := zeroed + created

	run := &model.MaintenanceRun{
		RunID:           uuid.NewString(),
		RunType:         model.MaintenanceMonthlyReset,
		Month:           month,
		RecordsAffected: int(affected),
		TriggeredBy:     trigger,
		RanAt:           ranAt,
	}
	if err := s.repo.MaintenanceRun.Upsert(ctx, run); err != nil {
		s.logger.Error("write maintenance marker failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("monthly reset completed",
		zap.String("month", month),
		zap.String("triggered_by", trigger),
		zap.Int64("records_affected", affected))

	return &dto.MaintenanceResultResponse{
		RunType:         model.MaintenanceMonthlyReset,
		Month:           month,
		RecordsAffected: int(affected),
		TriggeredBy:     trigger,
		Note:            "monthly reset completed for " + month,
		RanAt:           ranAt.Format("2006-01-02T15:04:05Z"),
	}, nil
}
