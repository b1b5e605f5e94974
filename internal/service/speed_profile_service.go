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
	pkgerrors "github.com/SwiftWareCo/GolfSync-sub005/pkg/errors"
)

// ── speed profile errors ──

var (
	ErrProfileNotFound      = errors.New("speed profile not found")
	ErrInvalidSpeedTier     = errors.New("speed tier must be FAST, AVERAGE or SLOW")
	ErrAdjustmentOutOfRange = errors.New("admin priority adjustment must be between -20 and 20")
	ErrInvalidRoundMinutes  = errors.New("round duration must be between 60 and 600 minutes")
)

// SpeedProfileService maintains pace-of-play profiles: automatic averaging
// from recorded rounds plus the staff override surface.
type SpeedProfileService interface {
	Get(ctx context.Context, memberID string) (*dto.SpeedProfileResponse, error)
	List(ctx context.Context, req *dto.PaginationRequest) ([]dto.SpeedProfileResponse, int64, error)
	Update(ctx context.Context, memberID string, req *dto.UpdateSpeedProfileRequest, callerID string) (*dto.SpeedProfileResponse, error)
	RecordRound(ctx context.Context, memberID string, req *dto.RecordRoundRequest) (*dto.SpeedProfileResponse, error)
	ReclassifyAll(ctx context.Context, callerID string) (*dto.ReclassifyResponse, error)
}

type speedProfileService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSpeedProfileService creates a SpeedProfileService instance.
func NewSpeedProfileService(repo *repository.Repository, logger *zap.Logger) SpeedProfileService {
	return &speedProfileService{repo: repo, logger: logger}
}

// classifyTier applies the threshold rule to an average round duration.
func classifyTier(averageMinutes float64, cfg *model.AlgorithmConfig) string {
	switch {
	case averageMinutes <= float64(cfg.FastThresholdMinutes):
		return model.SpeedTierFast
	case averageMinutes <= float64(cfg.AverageThresholdMinutes):
		return model.SpeedTierAverage
	default:
		return model.SpeedTierSlow
	}
}

// ────────────────────── Get ──────────────────────

func (s *speedProfileService) Get(ctx context.Context, memberID string) (*dto.SpeedProfileResponse, error) {
	profile, err := s.repo.SpeedProfile.GetByMemberID(ctx, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		s.logger.Error("query speed profile failed", zap.Error(err))
		return nil, err
	}
	return buildSpeedProfileDTO(profile), nil
}

// ────────────────────── List ──────────────────────

func (s *speedProfileService) List(ctx context.Context, req *dto.PaginationRequest) ([]dto.SpeedProfileResponse, int64, error) {
	profiles, total, err := s.repo.SpeedProfile.List(ctx, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("list speed profiles failed", zap.Error(err))
		return nil, 0, err
	}

	out := make([]dto.SpeedProfileResponse, 0, len(profiles))
	for i := range profiles {
		out = append(out, *buildSpeedProfileDTO(&profiles[i]))
	}
	return out, total, nil
}

// ────────────────────── Update (staff surface) ──────────────────────

// Update patches tier, adjustment, override flag, and notes. Pinning a tier
// that disagrees with the threshold rule turns the manual override on even
// when the caller left it off; otherwise the next round recording would undo
// the staff decision.
func (s *speedProfileService) Update(ctx context.Context, memberID string, req *dto.UpdateSpeedProfileRequest, callerID string) (*dto.SpeedProfileResponse, error) {
	if req.SpeedTier != nil && !validSpeedTier(*req.SpeedTier) {
		return nil, ErrInvalidSpeedTier
	}
	if req.AdminPriorityAdjustment != nil {
		adj := *req.AdminPriorityAdjustment
		if adj < -model.MaxAdminAdjustment || adj > model.MaxAdminAdjustment {
			return nil, ErrAdjustmentOutOfRange
		}
	}

	profile, err := s.getOrCreateProfile(ctx, memberID)
	if err != nil {
		return nil, err
	}

	cfg, err := getOrCreateAlgorithmConfig(ctx, s.repo, s.logger)
	if err != nil {
		return nil, err
	}

	if req.SpeedTier != nil {
		profile.SpeedTier = *req.SpeedTier
		ruleTier := classifyTier(profile.AverageMinutes, cfg)
		if profile.HasData && *req.SpeedTier != ruleTier {
			profile.ManualOverride = true
		}
	}
	if req.ManualOverride != nil {
		// An explicit true always sticks; explicit false only clears when the
		// stored tier agrees with the rule again.
		if *req.ManualOverride {
			profile.ManualOverride = true
		} else if !profile.HasData || profile.SpeedTier == classifyTier(profile.AverageMinutes, cfg) {
			profile.ManualOverride = false
		}
	}
	if req.AdminPriorityAdjustment != nil {
		profile.AdminPriorityAdjustment = *req.AdminPriorityAdjustment
	}
	if req.Notes != nil {
		profile.Notes = *req.Notes
	}

	profile.UpdatedBy = &callerID

	if err := s.repo.SpeedProfile.Update(ctx, profile); err != nil {
		if errors.Is(err, pkgerrors.ErrOptimisticLock) {
			return nil, err
		}
		s.logger.Error("update speed profile failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("speed profile updated",
		zap.String("member_id", memberID),
		zap.String("caller", callerID),
	)
	return buildSpeedProfileDTO(profile), nil
}

// ────────────────────── RecordRound ──────────────────────

// RecordRound folds one completed round into the running average and retiers
// the member unless staff pinned the tier.
func (s *speedProfileService) RecordRound(ctx context.Context, memberID string, req *dto.RecordRoundRequest) (*dto.SpeedProfileResponse, error) {
	if req.Minutes < 60 || req.Minutes > 600 {
		return nil, ErrInvalidRoundMinutes
	}

	profile, err := s.getOrCreateProfile(ctx, memberID)
	if err != nil {
		return nil, err
	}

	cfg, err := getOrCreateAlgorithmConfig(ctx, s.repo, s.logger)
	if err != nil {
		return nil, err
	}

	// Incremental mean: never recomputed from raw history.
	n := profile.RoundsSampled + 1
	profile.AverageMinutes += (float64(req.Minutes) - profile.AverageMinutes) / float64(n)
	profile.RoundsSampled = n
	profile.HasData = true
	now := time.Now()
	profile.LastCalculated = &now

	if !profile.ManualOverride {
		profile.SpeedTier = classifyTier(profile.AverageMinutes, cfg)
	}

	if err := s.repo.SpeedProfile.Update(ctx, profile); err != nil {
		s.logger.Error("record round failed", zap.Error(err))
		return nil, err
	}

	return buildSpeedProfileDTO(profile), nil
}

// ────────────────────── ReclassifyAll ──────────────────────

// ReclassifyAll re-applies the threshold rule to every measurable profile.
// Staff call this after changing thresholds; pinned profiles are skipped.
func (s *speedProfileService) ReclassifyAll(ctx context.Context, callerID string) (*dto.ReclassifyResponse, error) {
	cfg, err := getOrCreateAlgorithmConfig(ctx, s.repo, s.logger)
	if err != nil {
		return nil, err
	}

	profiles, err := s.repo.SpeedProfile.ListAll(ctx)
	if err != nil {
		s.logger.Error("list speed profiles failed", zap.Error(err))
		return nil, err
	}

	count := 0
	for i := range profiles {
		p := &profiles[i]
		if !p.HasData || p.ManualOverride {
			continue
		}
		newTier := classifyTier(p.AverageMinutes, cfg)
		if newTier == p.SpeedTier {
			continue
		}
		p.SpeedTier = newTier
		p.UpdatedBy = &callerID
		if err := s.repo.SpeedProfile.Update(ctx, p); err != nil {
			// A concurrent edit wins; skip this member rather than abort the
			// batch.
			s.logger.Warn("reclassify skipped member",
				zap.String("member_id", p.MemberID),
				zap.Error(err),
			)
			continue
		}
		count++
	}

	s.logger.Info("speed profiles reclassified",
		zap.Int("count", count),
		zap.String("caller", callerID),
	)
	return &dto.ReclassifyResponse{ReclassifiedCount: count}, nil
}

// ────────────────────── helpers ──────────────────────

func (s *speedProfileService) getOrCreateProfile(ctx context.Context, memberID string) (*model.MemberSpeedProfile, error) {
	profile, err := s.repo.SpeedProfile.GetByMemberID(ctx, memberID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("query speed profile failed", zap.Error(err))
		return nil, err
	}

	// Lazily create against the member directory so a typo'd id fails loudly.
	if _, err := s.repo.Member.GetByID(ctx, memberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		s.logger.Error("query member failed", zap.Error(err))
		return nil, err
	}

	profile = &model.MemberSpeedProfile{
		MemberID:  memberID,
		SpeedTier: model.SpeedTierAverage,
	}
	profile.Version = 1
	if err := s.repo.SpeedProfile.Create(ctx, profile); err != nil {
		s.logger.Error("create speed profile failed", zap.Error(err))
		return nil, err
	}
	return profile, nil
}

func validSpeedTier(tier string) bool {
	switch tier {
	case model.SpeedTierFast, model.SpeedTierAverage, model.SpeedTierSlow:
		return true
	}
	return false
}

func buildSpeedProfileDTO(p *model.MemberSpeedProfile) *dto.SpeedProfileResponse {
	resp := &dto.SpeedProfileResponse{
		MemberID:                p.MemberID,
		AverageMinutes:          p.AverageMinutes,
		RoundsSampled:           p.RoundsSampled,
		SpeedTier:               p.SpeedTier,
		HasData:                 p.HasData,
		ManualOverride:          p.ManualOverride,
		AdminPriorityAdjustment: p.AdminPriorityAdjustment,
		Notes:                   p.Notes,
		UpdatedAt:               p.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if p.LastCalculated != nil {
		v := p.LastCalculated.Format("2006-01-02T15:04:05Z")
		resp.LastCalculated = &v
	}
	if p.Member != nil {
		resp.Member = &dto.MemberBrief{
			ID:          p.Member.MemberID,
			Name:        p.Member.Name,
			MemberClass: p.Member.MemberClass,
		}
	}
	return resp
}
