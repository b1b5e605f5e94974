package handler

import (
	"github.com/SwiftWareCo/GolfSync-sub005/config"
	"github.com/SwiftWareCo/GolfSync-sub005/internal/service"
	"github.com/SwiftWareCo/GolfSync-sub005/pkg/redis"
)

// Handler aggregates every HTTP handler.
type Handler struct {
	Lottery      *LotteryHandler
	SpeedProfile *SpeedProfileHandler
	Fairness     *FairnessHandler
	Config       *AlgorithmConfigHandler
	Maintenance  *MaintenanceHandler
	Export       *ExportHandler
	Calendar     *CalendarHandler
	ChargeSignal *ChargeSignalHandler
}

// NewHandler creates the Handler aggregate. rdb may be nil; the processing
// endpoint then runs without the cross-instance date lock.
func NewHandler(cfg *config.Config, svc *service.Service, rdb *redis.Client) *Handler {
	return &Handler{
		Lottery:      NewLotteryHandler(svc.Entry, svc.Processing, rdb, cfg.Lottery.ProcessingLockTTL),
		SpeedProfile: NewSpeedProfileHandler(svc.SpeedProfile),
		Fairness:     NewFairnessHandler(svc.Fairness),
		Config:       NewAlgorithmConfigHandler(svc.Config),
		Maintenance:  NewMaintenanceHandler(svc.Maintenance),
		Export:       NewExportHandler(svc.Export),
		Calendar:     NewCalendarHandler(svc.Calendar),
		ChargeSignal: NewChargeSignalHandler(svc.ChargeSignal),
	}
}
