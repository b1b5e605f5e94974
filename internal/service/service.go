package service

import (
	"go.uber.org/zap"

	"github.com/SwiftWareCo/GolfSync-sub005/config"
	"github.com/SwiftWareCo/GolfSync-sub005/internal/repository"
)

// Service aggregates every business logic interface.
type Service struct {
	Entry        LotteryEntryService
	Processing   LotteryProcessingService
	SpeedProfile SpeedProfileService
	Fairness     FairnessService
	Config       AlgorithmConfigService
	Maintenance  MaintenanceService
	Export       ExportService
	Calendar     CalendarService
	ChargeSignal ChargeSignalService
}

// NewService creates the Service aggregate.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	logger *zap.Logger,
) *Service {
	notifier := NewLogNotifier(logger)
	return &Service{
		Entry:        NewLotteryEntryService(repo, logger),
		Processing:   NewLotteryProcessingService(repo, notifier, logger),
		SpeedProfile: NewSpeedProfileService(repo, logger),
		Fairness:     NewFairnessService(repo, logger),
		Config:       NewAlgorithmConfigService(repo, logger),
		Maintenance:  NewMaintenanceService(repo, logger, nil),
		Export:       NewExportService(repo, logger),
		Calendar:     NewCalendarService(repo, logger, cfg.Lottery.DefaultRoundMinutes),
		ChargeSignal: NewChargeSignalService(repo, logger),
	}
}
