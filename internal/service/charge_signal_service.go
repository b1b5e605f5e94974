package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/SwiftWareCo/GolfSync-sub005/internal/dto"
	"github.com/SwiftWareCo/GolfSync-sub005/internal/model"
	"github.com/SwiftWareCo/GolfSync-sub005/internal/repository"
)

// ── charge signal errors ──

var (
	ErrInvalidSince = errors.New("since must be an RFC 3339 timestamp")
)

// ChargeSignalService is the read surface of the billing outbox. The billing
// system polls it; nothing here ever charges anyone.
type ChargeSignalService interface {
	List(ctx context.Context, req *dto.ChargeSignalListRequest) ([]dto.ChargeSignalResponse, int64, error)
}

type chargeSignalService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewChargeSignalService creates a ChargeSignalService instance.
func NewChargeSignalService(repo *repository.Repository, logger *zap.Logger) ChargeSignalService {
	return &chargeSignalService{repo: repo, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *chargeSignalService) List(ctx context.Context, req *dto.ChargeSignalListRequest) ([]dto.ChargeSignalResponse, int64, error) {
	since := time.Time{}
	if req.Since != "" {
		parsed, err := time.Parse(time.RFC3339, req.Since)
		if err != nil {
			return nil, 0, ErrInvalidSince
		}
		since = parsed
	}

	signals, total, err := s.repo.ChargeSignal.ListSince(ctx, since, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("list charge signals failed", zap.Error(err))
		return nil, 0, err
	}

	out := make([]dto.ChargeSignalResponse, 0, len(signals))
	for i := range signals {
		out = append(out, *buildChargeSignalDTO(&signals[i]))
	}
	return out, total, nil
}

func buildChargeSignalDTO(sig *model.ChargeSignal) *dto.ChargeSignalResponse {
	resp := &dto.ChargeSignalResponse{
		SignalID:      sig.SignalID,
		MemberID:      sig.MemberID,
		EntryID:       sig.EntryID,
		RestrictionID: sig.RestrictionID,
		Amount:        sig.Amount.StringFixed(2),
		Currency:      sig.Currency,
		Reason:        sig.Reason,
		EmittedAt:     sig.EmittedAt.Format("2006-01-02T15:04:05Z"),
	}
	if sig.Member != nil {
		resp.Member = buildMemberBrief(sig.Member)
	}
	return resp
}
