package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/SwiftWareCo/GolfSync-sub005/internal/model"
	pkgerrors "github.com/SwiftWareCo/GolfSync-sub005/pkg/errors"
)

// ── Mock MemberRepository ──

type mockMemberRepo struct {
	members map[string]*model.Member
}

func newMockMemberRepo() *mockMemberRepo {
	return &mockMemberRepo{members: make(map[string]*model.Member)}
}

func (m *mockMemberRepo) add(id, name, class string, active bool) *model.Member {
	member := &model.Member{MemberID: id, Name: name, Email: id + "@club.test", MemberClass: class, IsActive: active}
	m.members[id] = member
	return member
}

func (m *mockMemberRepo) GetByID(_ context.Context, id string) (*model.Member, error) {
	if member, ok := m.members[id]; ok {
		return member, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMemberRepo) ListByIDs(_ context.Context, ids []string) ([]model.Member, error) {
	var result []model.Member
	for _, id := range ids {
		if member, ok := m.members[id]; ok {
			result = append(result, *member)
		}
	}
	return result, nil
}

func (m *mockMemberRepo) ListActive(_ context.Context) ([]model.Member, error) {
	var result []model.Member
	for _, member := range m.members {
		if member.IsActive {
			result = append(result, *member)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// ── Mock LotteryEntryRepository ──

type mockLotteryEntryRepo struct {
	entries   map[string]*model.LotteryEntry
	idCounter int
}

func newMockLotteryEntryRepo() *mockLotteryEntryRepo {
	return &mockLotteryEntryRepo{entries: make(map[string]*model.LotteryEntry)}
}

func (m *mockLotteryEntryRepo) Create(_ context.Context, entry *model.LotteryEntry) error {
	if entry.EntryID == "" {
		m.idCounter++
		entry.EntryID = fmt.Sprintf("entry-%03d", m.idCounter)
	}
	m.entries[entry.EntryID] = entry
	return nil
}

func (m *mockLotteryEntryRepo) GetByID(_ context.Context, id string) (*model.LotteryEntry, error) {
	if e, ok := m.entries[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLotteryEntryRepo) sortedByDate(date string, statuses ...string) []model.LotteryEntry {
	var result []model.LotteryEntry
	for _, e := range m.entries {
		if e.LotteryDate != date {
			continue
		}
		if len(statuses) > 0 {
			match := false
			for _, s := range statuses {
				if e.Status == s {
					match = true
				}
			}
			if !match {
				continue
			}
		}
		result = append(result, *e)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].SubmittedAt.Equal(result[j].SubmittedAt) {
			return result[i].SubmittedAt.Before(result[j].SubmittedAt)
		}
		return result[i].EntryID < result[j].EntryID
	})
	return result
}

func (m *mockLotteryEntryRepo) ListByDate(_ context.Context, date string) ([]model.LotteryEntry, error) {
	return m.sortedByDate(date), nil
}

func (m *mockLotteryEntryRepo) ListPendingByDate(_ context.Context, date string) ([]model.LotteryEntry, error) {
	return m.sortedByDate(date, model.EntryStatusPending), nil
}

func (m *mockLotteryEntryRepo) ListActiveByMemberAndDate(_ context.Context, memberID, date string) ([]model.LotteryEntry, error) {
	var result []model.LotteryEntry
	for _, e := range m.entries {
		if e.LotteryDate != date || e.Status == model.EntryStatusCancelled {
			continue
		}
		if e.MemberIDs.Contains(memberID) {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (m *mockLotteryEntryRepo) GetPendingGroupByOrganizer(_ context.Context, organizerID, date string) (*model.LotteryEntry, error) {
	for _, e := range m.entries {
		if e.LotteryDate == date && e.OrganizerID == organizerID &&
			e.EntryType == model.EntryTypeGroup && e.Status == model.EntryStatusPending {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLotteryEntryRepo) MarkAssigned(_ context.Context, entryID, blockID string, processedAt time.Time) (int64, error) {
	e, ok := m.entries[entryID]
	if !ok || e.Status != model.EntryStatusPending {
		return 0, nil
	}
	e.Status = model.EntryStatusAssigned
	e.AssignedBlockID = &blockID
	e.ProcessedAt = &processedAt
	return 1, nil
}

func (m *mockLotteryEntryRepo) MarkCancelled(_ context.Context, entryID string, cancelledAt time.Time) (int64, error) {
	e, ok := m.entries[entryID]
	if !ok || e.Status != model.EntryStatusPending {
		return 0, nil
	}
	e.Status = model.EntryStatusCancelled
	e.CancelledAt = &cancelledAt
	return 1, nil
}

// ── Mock TeeTimeBlockRepository ──

type mockTeeTimeBlockRepo struct {
	blocks    map[string]*model.TeeTimeBlock
	idCounter int
}

func newMockTeeTimeBlockRepo() *mockTeeTimeBlockRepo {
	return &mockTeeTimeBlockRepo{blocks: make(map[string]*model.TeeTimeBlock)}
}

func (m *mockTeeTimeBlockRepo) add(date, startTime string, maxPlayers int) *model.TeeTimeBlock {
	m.idCounter++
	block := &model.TeeTimeBlock{
		BlockID:    fmt.Sprintf("block-%03d", m.idCounter),
		BlockDate:  date,
		StartTime:  startTime,
		MaxPlayers: maxPlayers,
	}
	m.blocks[block.BlockID] = block
	return block
}

func (m *mockTeeTimeBlockRepo) GetByID(_ context.Context, id string) (*model.TeeTimeBlock, error) {
	if b, ok := m.blocks[id]; ok {
		return b, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeeTimeBlockRepo) ListByDate(_ context.Context, date string) ([]model.TeeTimeBlock, error) {
	var result []model.TeeTimeBlock
	for _, b := range m.blocks {
		if b.BlockDate == date {
			result = append(result, *b)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartTime < result[j].StartTime })
	return result, nil
}

// ── Mock TeeTimeBookingRepository ──

type mockTeeTimeBookingRepo struct {
	bookings   []model.TeeTimeBooking
	blockRepo  *mockTeeTimeBlockRepo
	memberRepo *mockMemberRepo
	idCounter  int
}

func newMockTeeTimeBookingRepo(blocks *mockTeeTimeBlockRepo, members *mockMemberRepo) *mockTeeTimeBookingRepo {
	return &mockTeeTimeBookingRepo{blockRepo: blocks, memberRepo: members}
}

func (m *mockTeeTimeBookingRepo) BatchCreate(_ context.Context, bookings []model.TeeTimeBooking) error {
	for i := range bookings {
		if bookings[i].BookingID == "" {
			m.idCounter++
			bookings[i].BookingID = fmt.Sprintf("booking-%03d", m.idCounter)
		}
	}
	m.bookings = append(m.bookings, bookings...)
	return nil
}

func (m *mockTeeTimeBookingRepo) ListByDate(_ context.Context, date string) ([]model.TeeTimeBooking, error) {
	var result []model.TeeTimeBooking
	for _, b := range m.bookings {
		if b.BlockDate != date {
			continue
		}
		if b.MemberID != nil && m.memberRepo != nil {
			if member, ok := m.memberRepo.members[*b.MemberID]; ok {
				b.Member = member
			}
		}
		result = append(result, b)
	}
	return result, nil
}

func (m *mockTeeTimeBookingRepo) CountByMemberAndMonth(_ context.Context, memberID, month string) (int64, error) {
	var count int64
	for _, b := range m.bookings {
		if b.MemberID != nil && *b.MemberID == memberID && strings.HasPrefix(b.BlockDate, month+"-") {
			count++
		}
	}
	return count, nil
}

func (m *mockTeeTimeBookingRepo) ListByMemberBetween(_ context.Context, memberID, fromDate, toDate string) ([]model.TeeTimeBooking, error) {
	var result []model.TeeTimeBooking
	for _, b := range m.bookings {
		if b.MemberID == nil || *b.MemberID != memberID {
			continue
		}
		if b.BlockDate < fromDate || b.BlockDate > toDate {
			continue
		}
		if m.blockRepo != nil {
			if block, ok := m.blockRepo.blocks[b.BlockID]; ok {
				b.Block = block
			}
		}
		result = append(result, b)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].BlockDate < result[j].BlockDate })
	return result, nil
}

// ── Mock SpeedProfileRepository ──

type mockSpeedProfileRepo struct {
	profiles map[string]*model.MemberSpeedProfile
}

func newMockSpeedProfileRepo() *mockSpeedProfileRepo {
	return &mockSpeedProfileRepo{profiles: make(map[string]*model.MemberSpeedProfile)}
}

func (m *mockSpeedProfileRepo) Create(_ context.Context, profile *model.MemberSpeedProfile) error {
	if profile.Version == 0 {
		profile.Version = 1
	}
	cp := *profile
	m.profiles[profile.MemberID] = &cp
	return nil
}

func (m *mockSpeedProfileRepo) GetByMemberID(_ context.Context, memberID string) (*model.MemberSpeedProfile, error) {
	if p, ok := m.profiles[memberID]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSpeedProfileRepo) List(_ context.Context, offset, limit int) ([]model.MemberSpeedProfile, int64, error) {
	all, _ := m.ListAll(context.Background())
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockSpeedProfileRepo) ListAll(_ context.Context) ([]model.MemberSpeedProfile, error) {
	var result []model.MemberSpeedProfile
	for _, p := range m.profiles {
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].MemberID < result[j].MemberID })
	return result, nil
}

func (m *mockSpeedProfileRepo) Update(_ context.Context, profile *model.MemberSpeedProfile) error {
	stored, ok := m.profiles[profile.MemberID]
	if !ok || stored.Version != profile.Version {
		return pkgerrors.ErrOptimisticLock
	}
	profile.Version++
	cp := *profile
	m.profiles[profile.MemberID] = &cp
	return nil
}

// ── Mock FairnessScoreRepository ──

type mockFairnessScoreRepo struct {
	scores map[string]*model.MemberFairnessScore // memberID|month
}

func newMockFairnessScoreRepo() *mockFairnessScoreRepo {
	return &mockFairnessScoreRepo{scores: make(map[string]*model.MemberFairnessScore)}
}

func fairnessKey(memberID, month string) string { return memberID + "|" + month }

func (m *mockFairnessScoreRepo) GetByMemberAndMonth(_ context.Context, memberID, month string) (*model.MemberFairnessScore, error) {
	if s, ok := m.scores[fairnessKey(memberID, month)]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockFairnessScoreRepo) ListByMonth(_ context.Context, month string) ([]model.MemberFairnessScore, error) {
	var result []model.MemberFairnessScore
	for _, s := range m.scores {
		if s.Month == month {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].MemberID < result[j].MemberID })
	return result, nil
}

func (m *mockFairnessScoreRepo) BulkEnsure(_ context.Context, scores []model.MemberFairnessScore) (int64, error) {
	var created int64
	for i := range scores {
		key := fairnessKey(scores[i].MemberID, scores[i].Month)
		if _, ok := m.scores[key]; ok {
			continue
		}
		cp := scores[i]
		m.scores[key] = &cp
		created++
	}
	return created, nil
}

func (m *mockFairnessScoreRepo) Update(_ context.Context, score *model.MemberFairnessScore) error {
	key := fairnessKey(score.MemberID, score.Month)
	if _, ok := m.scores[key]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *score
	m.scores[key] = &cp
	return nil
}

func (m *mockFairnessScoreRepo) ResetMonth(_ context.Context, month string) (int64, error) {
	var touched int64
	for _, s := range m.scores {
		if s.Month != month {
			continue
		}
		s.TotalEntriesMonth = 0
		s.PreferencesGrantedMonth = 0
		s.PreferenceFulfillmentRate = 0
		s.DaysWithoutGoodTime = 0
		s.FairnessScore = 0
		touched++
	}
	return touched, nil
}

// ── Mock AlgorithmConfigRepository ──

type mockAlgorithmConfigRepo struct {
	cfg *model.AlgorithmConfig
}

func newMockAlgorithmConfigRepo() *mockAlgorithmConfigRepo {
	return &mockAlgorithmConfigRepo{}
}

func (m *mockAlgorithmConfigRepo) Get(_ context.Context) (*model.AlgorithmConfig, error) {
	if m.cfg == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *m.cfg
	return &cp, nil
}

func (m *mockAlgorithmConfigRepo) Create(_ context.Context, cfg *model.AlgorithmConfig) error {
	cp := *cfg
	m.cfg = &cp
	return nil
}

func (m *mockAlgorithmConfigRepo) Update(_ context.Context, cfg *model.AlgorithmConfig) error {
	cp := *cfg
	m.cfg = &cp
	return nil
}

// ── Mock RestrictionRepository ──

type mockRestrictionRepo struct {
	restrictions []model.LotteryRestriction
	overrides    []model.RestrictionOverride
}

func newMockRestrictionRepo() *mockRestrictionRepo {
	return &mockRestrictionRepo{}
}

func (m *mockRestrictionRepo) ListActive(_ context.Context) ([]model.LotteryRestriction, error) {
	var result []model.LotteryRestriction
	for _, r := range m.restrictions {
		if r.IsActive {
			result = append(result, r)
		}
	}
	return result, nil
}

func (m *mockRestrictionRepo) ListOverrides(_ context.Context) ([]model.RestrictionOverride, error) {
	return append([]model.RestrictionOverride{}, m.overrides...), nil
}

// ── Mock MaintenanceRunRepository ──

type mockMaintenanceRunRepo struct {
	runs map[string]*model.MaintenanceRun // runType|month
}

func newMockMaintenanceRunRepo() *mockMaintenanceRunRepo {
	return &mockMaintenanceRunRepo{runs: make(map[string]*model.MaintenanceRun)}
}

func runKey(runType, month string) string { return runType + "|" + month }

func (m *mockMaintenanceRunRepo) GetByTypeAndMonth(_ context.Context, runType, month string) (*model.MaintenanceRun, error) {
	if r, ok := m.runs[runKey(runType, month)]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMaintenanceRunRepo) Create(_ context.Context, run *model.MaintenanceRun) error {
	key := runKey(run.RunType, run.Month)
	if _, ok := m.runs[key]; ok {
		return gorm.ErrDuplicatedKey
	}
	cp := *run
	m.runs[key] = &cp
	return nil
}

func (m *mockMaintenanceRunRepo) Upsert(_ context.Context, run *model.MaintenanceRun) error {
	cp := *run
	m.runs[runKey(run.RunType, run.Month)] = &cp
	return nil
}

// ── Mock ChargeSignalRepository ──

type mockChargeSignalRepo struct {
	signals []model.ChargeSignal
}

func newMockChargeSignalRepo() *mockChargeSignalRepo {
	return &mockChargeSignalRepo{}
}

func (m *mockChargeSignalRepo) Create(_ context.Context, signal *model.ChargeSignal) error {
	m.signals = append(m.signals, *signal)
	return nil
}

func (m *mockChargeSignalRepo) ListSince(_ context.Context, since time.Time, offset, limit int) ([]model.ChargeSignal, int64, error) {
	var filtered []model.ChargeSignal
	for _, s := range m.signals {
		if !s.EmittedAt.Before(since) {
			filtered = append(filtered, s)
		}
	}
	sort.Slice(filtered, func(i, j int) bool { return filtered[i].EmittedAt.Before(filtered[j].EmittedAt) })
	total := int64(len(filtered))
	if offset >= len(filtered) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], total, nil
}
