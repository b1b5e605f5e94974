package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/SwiftWareCo/GolfSync-sub005/internal/dto"
	"github.com/SwiftWareCo/GolfSync-sub005/internal/model"
	"github.com/SwiftWareCo/GolfSync-sub005/internal/repository"
)

// ── algorithm config errors ──

var (
	ErrThresholdOrder = errors.New("fast threshold must not exceed the average threshold")
)

// AlgorithmConfigService exposes the lottery tuning knobs to staff.
type AlgorithmConfigService interface {
	Get(ctx context.Context) (*dto.AlgorithmConfigResponse, error)
	Update(ctx context.Context, req *dto.UpdateAlgorithmConfigRequest, callerID string) (*dto.AlgorithmConfigResponse, error)
}

type algorithmConfigService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAlgorithmConfigService creates an AlgorithmConfigService instance.
func NewAlgorithmConfigService(repo *repository.Repository, logger *zap.Logger) AlgorithmConfigService {
	return &algorithmConfigService{repo: repo, logger: logger}
}

// getOrCreateAlgorithmConfig loads the singleton, seeding it from defaults on
// first use. A missing row is an expected state, not a failure.
func getOrCreateAlgorithmConfig(ctx context.Context, repo *repository.Repository, logger *zap.Logger) (*model.AlgorithmConfig, error) {
	cfg, err := repo.AlgorithmConfig.Get(ctx)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("query algorithm config failed", zap.Error(err))
		return nil, err
	}

	cfg = model.DefaultAlgorithmConfig()
	if err := repo.AlgorithmConfig.Create(ctx, cfg); err != nil {
		logger.Error("seed algorithm config failed", zap.Error(err))
		return nil, err
	}
	logger.Info("algorithm config initialized with defaults")
	return cfg, nil
}

// ────────────────────── Get ──────────────────────

func (s *algorithmConfigService) Get(ctx context.Context) (*dto.AlgorithmConfigResponse, error) {
	cfg, err := getOrCreateAlgorithmConfig(ctx, s.repo, s.logger)
	if err != nil {
		return nil, err
	}
	return buildAlgorithmConfigDTO(cfg), nil
}

// ────────────────────── Update ──────────────────────

func (s *algorithmConfigService) Update(ctx context.Context, req *dto.UpdateAlgorithmConfigRequest, callerID string) (*dto.AlgorithmConfigResponse, error) {
	cfg, err := getOrCreateAlgorithmConfig(ctx, s.repo, s.logger)
	if err != nil {
		return nil, err
	}

	if req.FastThresholdMinutes != nil {
		cfg.FastThresholdMinutes = *req.FastThresholdMinutes
	}
	if req.AverageThresholdMinutes != nil {
		cfg.AverageThresholdMinutes = *req.AverageThresholdMinutes
	}
	if req.FairnessWeight != nil {
		cfg.FairnessWeight = *req.FairnessWeight
	}
	if req.SpeedBiasWeight != nil {
		cfg.SpeedBiasWeight = *req.SpeedBiasWeight
	}
	if req.DeniedStreakWeight != nil {
		cfg.DeniedStreakWeight = *req.DeniedStreakWeight
	}

	if cfg.FastThresholdMinutes > cfg.AverageThresholdMinutes {
		return nil, ErrThresholdOrder
	}

	cfg.UpdatedBy = &callerID

	if err := s.repo.AlgorithmConfig.Update(ctx, cfg); err != nil {
		s.logger.Error("update algorithm config failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("algorithm config updated", zap.String("caller", callerID))
	return buildAlgorithmConfigDTO(cfg), nil
}

func buildAlgorithmConfigDTO(cfg *model.AlgorithmConfig) *dto.AlgorithmConfigResponse {
	return &dto.AlgorithmConfigResponse{
		FastThresholdMinutes:    cfg.FastThresholdMinutes,
		AverageThresholdMinutes: cfg.AverageThresholdMinutes,
		FairnessWeight:          cfg.FairnessWeight,
		SpeedBiasWeight:         cfg.SpeedBiasWeight,
		DeniedStreakWeight:      cfg.DeniedStreakWeight,
		UpdatedAt:               cfg.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
