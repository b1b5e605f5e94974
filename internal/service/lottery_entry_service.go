package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/SwiftWareCo/GolfSync-sub005/internal/dto"
	"github.com/SwiftWareCo/GolfSync-sub005/internal/model"
	"github.com/SwiftWareCo/GolfSync-sub005/internal/repository"
	"github.com/SwiftWareCo/GolfSync-sub005/internal/timewindow"
)

// ── member errors (shared across services) ──

var (
	ErrMemberNotFound = errors.New("member not found")
	ErrMemberInactive = errors.New("member is not active")
)

// ── lottery entry errors ──

var (
	ErrEntryNotFound            = errors.New("lottery entry not found")
	ErrEntryNotPending          = errors.New("only pending entries can be cancelled")
	ErrEntryTypeMismatch        = errors.New("entry type does not match the requested shape")
	ErrNotEntryOrganizer        = errors.New("only the organizer or staff can cancel this entry")
	ErrInvalidLotteryDate       = errors.New("lottery date must be YYYY-MM-DD")
	ErrInvalidWindow            = errors.New("unknown time window")
	ErrAlternateSameAsPreferred = errors.New("alternate window must differ from the preferred window")
	ErrInvalidGroupSize         = errors.New("group entries need 2 to 4 members including the organizer")
	ErrPartyTooLarge            = errors.New("party size exceeds the four-player tee time limit")
	ErrFillsNotAllowed          = errors.New("fills are only allowed on group entries")
	ErrMembersNotAllowed        = errors.New("individual entries cannot list additional members")
	ErrDuplicateMember          = errors.New("duplicate member in group entry")
	ErrMemberAlreadyEntered     = errors.New("member already has an individual entry for this date")
	ErrMemberInGroupEntry       = errors.New("member already belongs to a group entry for this date")
	ErrGroupMemberConflict      = errors.New("member already has an active entry for this date")
	ErrOrganizerGroupExists     = errors.New("organizer already has a pending group entry for this date")
)

// LotteryEntryService is the entry submission business logic interface.
type LotteryEntryService interface {
	Submit(ctx context.Context, organizerID string, req *dto.SubmitEntryRequest) (*dto.EntryResponse, error)
	Cancel(ctx context.Context, entryID, callerID string, isStaff, isGroup bool) (*dto.EntryResponse, error)
	GetByID(ctx context.Context, entryID string) (*dto.EntryResponse, error)
	DataForDate(ctx context.Context, date string) (*dto.LotteryDateDataResponse, error)
}

type lotteryEntryService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewLotteryEntryService creates a LotteryEntryService instance.
func NewLotteryEntryService(repo *repository.Repository, logger *zap.Logger) LotteryEntryService {
	return &lotteryEntryService{repo: repo, logger: logger}
}

// ────────────────────── Submit ──────────────────────

func (s *lotteryEntryService) Submit(ctx context.Context, organizerID string, req *dto.SubmitEntryRequest) (*dto.EntryResponse, error) {
	if !validDate(req.LotteryDate) {
		return nil, ErrInvalidLotteryDate
	}
	if err := validateWindows(req.PreferredWindow, req.AlternateWindow); err != nil {
		return nil, err
	}

	organizer, err := s.lookupActiveMember(ctx, organizerID)
	if err != nil {
		return nil, err
	}

	memberIDs, membersByID, err := s.resolveParty(ctx, organizer, req)
	if err != nil {
		return nil, err
	}

	if err := s.checkUniqueness(ctx, req, memberIDs, membersByID); err != nil {
		return nil, err
	}

	entry := &model.LotteryEntry{
		LotteryDate:     req.LotteryDate,
		EntryType:       req.EntryType,
		OrganizerID:     organizer.MemberID,
		MemberIDs:       model.UUIDArray(memberIDs),
		Fills:           model.StringArray(req.Fills),
		PreferredWindow: req.PreferredWindow,
		AlternateWindow: req.AlternateWindow,
		Status:          model.EntryStatusPending,
		SubmittedAt:     time.Now(),
	}
	if err := s.repo.LotteryEntry.Create(ctx, entry); err != nil {
		s.logger.Error("create lottery entry failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("lottery entry submitted",
		zap.String("entry_id", entry.EntryID),
		zap.String("date", entry.LotteryDate),
		zap.String("type", entry.EntryType),
		zap.Int("party_size", entry.PartySize()))

	entry.Organizer = organizer
	return buildEntryDTO(entry, membersByID), nil
}

// resolveParty expands the request into the stored member id list (organizer
// always first) and validates the shape constraints for each entry type.
func (s *lotteryEntryService) resolveParty(ctx context.Context, organizer *model.Member, req *dto.SubmitEntryRequest) ([]string, map[string]*model.Member, error) {
	membersByID := map[string]*model.Member{organizer.MemberID: organizer}

	if req.EntryType == model.EntryTypeIndividual {
		if len(req.MemberIDs) > 0 {
			return nil, nil, ErrMembersNotAllowed
		}
		if len(req.Fills) > 0 {
			return nil, nil, ErrFillsNotAllowed
		}
		return []string{organizer.MemberID}, membersByID, nil
	}

	// GROUP: organizer plus 1..3 named partners, fills optional.
	memberIDs := []string{organizer.MemberID}
	seen := map[string]bool{organizer.MemberID: true}
	for _, id := range req.MemberIDs {
		if seen[id] {
			return nil, nil, ErrDuplicateMember
		}
		seen[id] = true
		memberIDs = append(memberIDs, id)
	}
	if len(memberIDs) < 2 || len(memberIDs) > model.MaxPartySize {
		return nil, nil, ErrInvalidGroupSize
	}
	if len(memberIDs)+len(req.Fills) > model.MaxPartySize {
		return nil, nil, ErrPartyTooLarge
	}

	partners, err := s.repo.Member.ListByIDs(ctx, req.MemberIDs)
	if err != nil {
		s.logger.Error("query group members failed", zap.Error(err))
		return nil, nil, err
	}
	for i := range partners {
		membersByID[partners[i].MemberID] = &partners[i]
	}
	for _, id := range req.MemberIDs {
		m, ok := membersByID[id]
		if !ok {
			return nil, nil, fmt.Errorf("%w: %s", ErrMemberNotFound, id)
		}
		if !m.IsActive {
			return nil, nil, fmt.Errorf("%w: %s", ErrMemberInactive, m.Name)
		}
	}
	return memberIDs, membersByID, nil
}

// checkUniqueness enforces one active entry per member per date, reporting
// which kind of entry the member collided with.
func (s *lotteryEntryService) checkUniqueness(ctx context.Context, req *dto.SubmitEntryRequest, memberIDs []string, membersByID map[string]*model.Member) error {
	if req.EntryType == model.EntryTypeGroup {
		_, err := s.repo.LotteryEntry.GetPendingGroupByOrganizer(ctx, memberIDs[0], req.LotteryDate)
		if err == nil {
			return ErrOrganizerGroupExists
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("query organizer group failed", zap.Error(err))
			return err
		}
	}

	for _, id := range memberIDs {
		existing, err := s.repo.LotteryEntry.ListActiveByMemberAndDate(ctx, id, req.LotteryDate)
		if err != nil {
			s.logger.Error("query member entries failed", zap.Error(err))
			return err
		}
		if len(existing) == 0 {
			continue
		}
		if req.EntryType == model.EntryTypeGroup {
			name := id
			if m, ok := membersByID[id]; ok {
				name = m.Name
			}
			return fmt.Errorf("%w: %s", ErrGroupMemberConflict, name)
		}
		if existing[0].IsGroup() {
			return ErrMemberInGroupEntry
		}
		return ErrMemberAlreadyEntered
	}
	return nil
}

// ────────────────────── Cancel ──────────────────────

func (s *lotteryEntryService) Cancel(ctx context.Context, entryID, callerID string, isStaff, isGroup bool) (*dto.EntryResponse, error) {
	entry, err := s.repo.LotteryEntry.GetByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		s.logger.Error("query lottery entry failed", zap.Error(err))
		return nil, err
	}

	if entry.IsGroup() != isGroup {
		return nil, ErrEntryTypeMismatch
	}
	if !isStaff && entry.OrganizerID != callerID {
		return nil, ErrNotEntryOrganizer
	}
	if entry.Status != model.EntryStatusPending {
		return nil, ErrEntryNotPending
	}

	now := time.Now()
	rows, err := s.repo.LotteryEntry.MarkCancelled(ctx, entryID, now)
	if err != nil {
		s.logger.Error("cancel lottery entry failed", zap.Error(err))
		return nil, err
	}
	if rows == 0 {
		// Lost the race with a processing pass.
		return nil, ErrEntryNotPending
	}

	s.logger.Info("lottery entry cancelled",
		zap.String("entry_id", entryID),
		zap.String("date", entry.LotteryDate))

	entry.Status = model.EntryStatusCancelled
	entry.CancelledAt = &now
	return buildEntryDTO(entry, nil), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *lotteryEntryService) GetByID(ctx context.Context, entryID string) (*dto.EntryResponse, error) {
	entry, err := s.repo.LotteryEntry.GetByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		s.logger.Error("query lottery entry failed", zap.Error(err))
		return nil, err
	}
	membersByID, err := s.loadMembers(ctx, entry.MemberIDs)
	if err != nil {
		return nil, err
	}
	return buildEntryDTO(entry, membersByID), nil
}

// ────────────────────── DataForDate ──────────────────────

func (s *lotteryEntryService) DataForDate(ctx context.Context, date string) (*dto.LotteryDateDataResponse, error) {
	if !validDate(date) {
		return nil, ErrInvalidLotteryDate
	}

	entries, err := s.repo.LotteryEntry.ListByDate(ctx, date)
	if err != nil {
		s.logger.Error("list lottery entries failed", zap.Error(err))
		return nil, err
	}
	blocks, err := s.repo.TeeTimeBlock.ListByDate(ctx, date)
	if err != nil {
		s.logger.Error("list tee time blocks failed", zap.Error(err))
		return nil, err
	}

	var allMemberIDs []string
	for i := range entries {
		allMemberIDs = append(allMemberIDs, entries[i].MemberIDs...)
	}
	membersByID, err := s.loadMembers(ctx, allMemberIDs)
	if err != nil {
		return nil, err
	}

	stats := dto.LotteryDateStats{
		BlockCount:   len(blocks),
		WindowDemand: make(map[string]int, 4),
	}
	for _, v := range timewindow.Values() {
		stats.WindowDemand[string(v)] = 0
	}

	individual := make([]dto.EntryResponse, 0)
	groups := make([]dto.EntryResponse, 0)
	for i := range entries {
		e := &entries[i]
		stats.TotalEntries++
		switch e.Status {
		case model.EntryStatusPending:
			stats.PendingEntries++
			stats.WindowDemand[e.PreferredWindow]++
		case model.EntryStatusAssigned:
			stats.AssignedEntries++
		case model.EntryStatusCancelled:
			stats.CancelledEntries++
		}
		if e.Status != model.EntryStatusCancelled {
			stats.TotalPlayers += e.PartySize()
		}

		resp := buildEntryDTO(e, membersByID)
		if e.IsGroup() {
			groups = append(groups, *resp)
		} else {
			individual = append(individual, *resp)
		}
	}

	return &dto.LotteryDateDataResponse{
		Date:       date,
		Stats:      stats,
		Individual: individual,
		Groups:     groups,
	}, nil
}

// ────────────────────── helpers ──────────────────────

func (s *lotteryEntryService) lookupActiveMember(ctx context.Context, memberID string) (*model.Member, error) {
	member, err := s.repo.Member.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		s.logger.Error("query member failed", zap.Error(err))
		return nil, err
	}
	if !member.IsActive {
		return nil, ErrMemberInactive
	}
	return member, nil
}

func (s *lotteryEntryService) loadMembers(ctx context.Context, ids []string) (map[string]*model.Member, error) {
	if len(ids) == 0 {
		return map[string]*model.Member{}, nil
	}
	members, err := s.repo.Member.ListByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("query members failed", zap.Error(err))
		return nil, err
	}
	out := make(map[string]*model.Member, len(members))
	for i := range members {
		out[members[i].MemberID] = &members[i]
	}
	return out, nil
}

func validDate(s string) bool {
	if len(s) != 10 {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func validateWindows(preferred string, alternate *string) error {
	if !timewindow.Valid(timewindow.Value(preferred)) {
		return ErrInvalidWindow
	}
	if alternate != nil {
		if !timewindow.Valid(timewindow.Value(*alternate)) {
			return ErrInvalidWindow
		}
		if *alternate == preferred {
			return ErrAlternateSameAsPreferred
		}
	}
	return nil
}

func buildEntryDTO(entry *model.LotteryEntry, membersByID map[string]*model.Member) *dto.EntryResponse {
	resp := &dto.EntryResponse{
		ID:              entry.EntryID,
		LotteryDate:     entry.LotteryDate,
		EntryType:       entry.EntryType,
		MemberIDs:       []string(entry.MemberIDs),
		Fills:           []string(entry.Fills),
		PartySize:       entry.PartySize(),
		PreferredWindow: entry.PreferredWindow,
		AlternateWindow: entry.AlternateWindow,
		Status:          entry.Status,
		SubmittedAt:     entry.SubmittedAt.Format("2006-01-02T15:04:05Z"),
	}
	if entry.ProcessedAt != nil {
		t := entry.ProcessedAt.Format("2006-01-02T15:04:05Z")
		resp.ProcessedAt = &t
	}
	if entry.Organizer != nil {
		resp.Organizer = buildMemberBrief(entry.Organizer)
	} else if m, ok := membersByID[entry.OrganizerID]; ok {
		resp.Organizer = buildMemberBrief(m)
	}
	for _, id := range entry.MemberIDs {
		if m, ok := membersByID[id]; ok {
			resp.Members = append(resp.Members, *buildMemberBrief(m))
		}
	}
	if entry.AssignedBlock != nil {
		resp.AssignedBlock = buildBlockBrief(entry.AssignedBlock)
	}
	return resp
}

func buildMemberBrief(m *model.Member) *dto.MemberBrief {
	return &dto.MemberBrief{
		ID:          m.MemberID,
		Name:        m.Name,
		MemberClass: m.MemberClass,
	}
}

func buildBlockBrief(b *model.TeeTimeBlock) *dto.TeeTimeBlockBrief {
	return &dto.TeeTimeBlockBrief{
		ID:         b.BlockID,
		BlockDate:  b.BlockDate,
		StartTime:  b.StartTime,
		MaxPlayers: b.MaxPlayers,
	}
}
