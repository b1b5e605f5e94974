package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/SwiftWareCo/GolfSync-sub005/internal/dto"
	"github.com/SwiftWareCo/GolfSync-sub005/internal/model"
	"github.com/SwiftWareCo/GolfSync-sub005/internal/repository"
)

// ── fairness errors ──

var (
	ErrFairnessScoreNotFound = errors.New("fairness score not found for this member and month")
	ErrInvalidMonth          = errors.New("month must be YYYY-MM")
)

// Fairness display bands.
const (
	fairnessBandHigh   = "high"
	fairnessBandMedium = "medium"
	fairnessBandLow    = "low"
)

// FairnessService reads the monthly lottery luck ledger. The allocation pass
// writes it; everything here is read or lazily-create surface.
type FairnessService interface {
	Get(ctx context.Context, memberID, month string) (*dto.FairnessScoreResponse, error)
	ListByMonth(ctx context.Context, month string) ([]dto.FairnessScoreResponse, error)
	// EnsureMonth bulk-creates zeroed rows for every active member missing
	// one, returning how many rows were created.
	EnsureMonth(ctx context.Context, month string) (int64, error)
}

type fairnessService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewFairnessService creates a FairnessService instance.
func NewFairnessService(repo *repository.Repository, logger *zap.Logger) FairnessService {
	return &fairnessService{repo: repo, logger: logger}
}

// fairnessBand maps a score to the band the member screens display.
func fairnessBand(score int) string {
	switch {
	case score > 20:
		return fairnessBandHigh
	case score >= 10:
		return fairnessBandMedium
	default:
		return fairnessBandLow
	}
}

func validMonth(month string) bool {
	_, err := time.Parse("2006-01", month)
	return err == nil
}

// ────────────────────── Get ──────────────────────

func (s *fairnessService) Get(ctx context.Context, memberID, month string) (*dto.FairnessScoreResponse, error) {
	if !validMonth(month) {
		return nil, ErrInvalidMonth
	}

	score, err := s.repo.FairnessScore.GetByMemberAndMonth(ctx, memberID, month)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFairnessScoreNotFound
		}
		s.logger.Error("query fairness score failed", zap.Error(err))
		return nil, err
	}
	return buildFairnessScoreDTO(score), nil
}

// ────────────────────── ListByMonth ──────────────────────

func (s *fairnessService) ListByMonth(ctx context.Context, month string) ([]dto.FairnessScoreResponse, error) {
	if !validMonth(month) {
		return nil, ErrInvalidMonth
	}

	scores, err := s.repo.FairnessScore.ListByMonth(ctx, month)
	if err != nil {
		s.logger.Error("list fairness scores failed", zap.Error(err))
		return nil, err
	}

	out := make([]dto.FairnessScoreResponse, 0, len(scores))
	for i := range scores {
		out = append(out, *buildFairnessScoreDTO(&scores[i]))
	}
	return out, nil
}

// ────────────────────── EnsureMonth ──────────────────────

func (s *fairnessService) EnsureMonth(ctx context.Context, month string) (int64, error) {
	if !validMonth(month) {
		return 0, ErrInvalidMonth
	}
	return ensureFairnessMonth(ctx, s.repo, s.logger, month)
}

// ensureFairnessMonth is shared with the allocation pass and the monthly
// reset.
func ensureFairnessMonth(ctx context.Context, repo *repository.Repository, logger *zap.Logger, month string) (int64, error) {
	members, err := repo.Member.ListActive(ctx)
	if err != nil {
		logger.Error("list active members failed", zap.Error(err))
		return 0, err
	}

	rows := make([]model.MemberFairnessScore, 0, len(members))
	for _, m := range members {
		rows = append(rows, model.MemberFairnessScore{
			MemberID: m.MemberID,
			Month:    month,
		})
	}

	created, err := repo.FairnessScore.BulkEnsure(ctx, rows)
	if err != nil {
		logger.Error("bulk ensure fairness rows failed", zap.Error(err))
		return 0, err
	}
	return created, nil
}

func buildFairnessScoreDTO(score *model.MemberFairnessScore) *dto.FairnessScoreResponse {
	return &dto.FairnessScoreResponse{
		MemberID:                  score.MemberID,
		Month:                     score.Month,
		TotalEntriesMonth:         score.TotalEntriesMonth,
		PreferencesGrantedMonth:   score.PreferencesGrantedMonth,
		PreferenceFulfillmentRate: score.PreferenceFulfillmentRate,
		DaysWithoutGoodTime:       score.DaysWithoutGoodTime,
		FairnessScore:             score.FairnessScore,
		Band:                      fairnessBand(score.FairnessScore),
	}
}
