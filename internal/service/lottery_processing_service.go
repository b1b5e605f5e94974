package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/SwiftWareCo/GolfSync-sub005/internal/dto"
	"github.com/SwiftWareCo/GolfSync-sub005/internal/model"
	"github.com/SwiftWareCo/GolfSync-sub005/internal/repository"
	"github.com/SwiftWareCo/GolfSync-sub005/internal/timewindow"
)

// ── lottery processing errors ──

var (
	ErrLotteryNotAvailable = errors.New("lottery is not available for this tee sheet configuration")
	// ErrNoTimeBlocks aborts the whole pass before any entry is touched. The
	// message is surfaced verbatim to staff.
	ErrNoTimeBlocks = errors.New("No available time blocks for this date")

	errEntryNoLongerPending = errors.New("entry no longer pending")
)

// LotteryProcessingService runs the allocation pass for one date.
type LotteryProcessingService interface {
	ProcessDate(ctx context.Context, date string, req *dto.ProcessLotteryRequest) (*dto.ProcessLotteryResponse, error)
}

type lotteryProcessingService struct {
	repo     *repository.Repository
	notifier AssignmentNotifier
	logger   *zap.Logger
}

// NewLotteryProcessingService creates a LotteryProcessingService instance.
func NewLotteryProcessingService(repo *repository.Repository, notifier AssignmentNotifier, logger *zap.Logger) LotteryProcessingService {
	return &lotteryProcessingService{repo: repo, notifier: notifier, logger: logger}
}

// blockState is the in-pass view of one tee time block. Remaining capacity is
// decremented as assignments land so later entries never see stale counts.
type blockState struct {
	block     *model.TeeTimeBlock
	startMin  int
	remaining int
}

// rankedEntry pairs an entry with its ordering signals.
type rankedEntry struct {
	entry   *model.LotteryEntry
	signals rankSignals
}

// chargeIntent is a billing signal decided during matching but only written
// if the entry actually seats.
type chargeIntent struct {
	memberID    string
	restriction *model.LotteryRestriction
}

// passState carries everything the pass snapshots once at start.
type passState struct {
	date        string
	month       string
	windows     []timewindow.Window
	cfg         *model.AlgorithmConfig
	blocks      []*blockState
	members     map[string]*model.Member
	profiles    map[string]*model.MemberSpeedProfile
	fairness    map[string]*model.MemberFairnessScore
	checker     *restrictionChecker
	processedAt time.Time
}

// ────────────────────── ProcessDate ──────────────────────

func (s *lotteryProcessingService) ProcessDate(ctx context.Context, date string, req *dto.ProcessLotteryRequest) (*dto.ProcessLotteryResponse, error) {
	if !validDate(date) {
		return nil, ErrInvalidLotteryDate
	}

	windows := timewindow.Calculate(timewindow.SheetConfig{
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Custom:    req.Custom,
	})
	if len(windows) == 0 {
		return nil, ErrLotteryNotAvailable
	}

	blocks, err := s.repo.TeeTimeBlock.ListByDate(ctx, date)
	if err != nil {
		s.logger.Error("list tee time blocks failed", zap.Error(err))
		return nil, err
	}
	if len(blocks) == 0 {
		return nil, ErrNoTimeBlocks
	}

	pending, err := s.repo.LotteryEntry.ListPendingByDate(ctx, date)
	if err != nil {
		s.logger.Error("list pending entries failed", zap.Error(err))
		return nil, err
	}

	result := &dto.ProcessLotteryResponse{
		Date:         date,
		TotalPending: len(pending),
		Assignments:  make([]dto.AssignmentResponse, 0, len(pending)),
	}
	if len(pending) == 0 {
		return result, nil
	}

	state, err := s.snapshot(ctx, date, windows, blocks, pending)
	if err != nil {
		return nil, err
	}

	ranked := s.rank(pending, state)

	for _, re := range ranked {
		s.placeEntry(ctx, re.entry, state, result)
	}

	s.applyFairnessOutcomes(ctx, ranked, state)

	result.UnplacedCount = result.TotalPending - result.ProcessedCount

	s.logger.Info("lottery pass completed",
		zap.String("date", date),
		zap.Int("pending", result.TotalPending),
		zap.Int("processed", result.ProcessedCount),
		zap.Int("unplaced", result.UnplacedCount))
	return result, nil
}

// ────────────────────── snapshot ──────────────────────

// snapshot loads everything the pass reads, once. Submissions and config
// edits landing mid-pass are invisible until the next pass.
func (s *lotteryProcessingService) snapshot(ctx context.Context, date string, windows []timewindow.Window, blocks []model.TeeTimeBlock, pending []model.LotteryEntry) (*passState, error) {
	month := date[:7]

	cfg, err := getOrCreateAlgorithmConfig(ctx, s.repo, s.logger)
	if err != nil {
		return nil, err
	}

	bookings, err := s.repo.TeeTimeBooking.ListByDate(ctx, date)
	if err != nil {
		s.logger.Error("list bookings failed", zap.Error(err))
		return nil, err
	}
	consumed := make(map[string]int, len(blocks))
	for i := range bookings {
		consumed[bookings[i].BlockID]++
	}

	states := make([]*blockState, 0, len(blocks))
	for i := range blocks {
		b := &blocks[i]
		startMin, ok := timewindow.ParseClock(b.StartTime)
		if !ok {
			s.logger.Warn("block has unparseable start time, skipped",
				zap.String("block_id", b.BlockID),
				zap.String("start_time", b.StartTime))
			continue
		}
		remaining := b.MaxPlayers - consumed[b.BlockID]
		if remaining < 0 {
			remaining = 0
		}
		states = append(states, &blockState{block: b, startMin: startMin, remaining: remaining})
	}

	var memberIDs []string
	seen := map[string]bool{}
	for i := range pending {
		for _, id := range pending[i].MemberIDs {
			if !seen[id] {
				seen[id] = true
				memberIDs = append(memberIDs, id)
			}
		}
	}

	members, err := s.repo.Member.ListByIDs(ctx, memberIDs)
	if err != nil {
		s.logger.Error("load entry members failed", zap.Error(err))
		return nil, err
	}
	membersByID := make(map[string]*model.Member, len(members))
	for i := range members {
		membersByID[members[i].MemberID] = &members[i]
	}

	profiles, err := s.repo.SpeedProfile.ListAll(ctx)
	if err != nil {
		s.logger.Error("load speed profiles failed", zap.Error(err))
		return nil, err
	}
	profilesByID := make(map[string]*model.MemberSpeedProfile, len(profiles))
	for i := range profiles {
		profilesByID[profiles[i].MemberID] = &profiles[i]
	}

	if _, err := ensureFairnessMonth(ctx, s.repo, s.logger, month); err != nil {
		return nil, err
	}
	fairnessRows, err := s.repo.FairnessScore.ListByMonth(ctx, month)
	if err != nil {
		s.logger.Error("load fairness scores failed", zap.Error(err))
		return nil, err
	}
	fairnessByID := make(map[string]*model.MemberFairnessScore, len(fairnessRows))
	for i := range fairnessRows {
		fairnessByID[fairnessRows[i].MemberID] = &fairnessRows[i]
	}

	checker, err := s.buildRestrictionChecker(ctx, date, month, memberIDs, membersByID)
	if err != nil {
		return nil, err
	}

	return &passState{
		date:        date,
		month:       month,
		windows:     windows,
		cfg:         cfg,
		blocks:      states,
		members:     membersByID,
		profiles:    profilesByID,
		fairness:    fairnessByID,
		checker:     checker,
		processedAt: time.Now(),
	}, nil
}

// ────────────────────── ranking ──────────────────────

func (s *lotteryProcessingService) rank(pending []model.LotteryEntry, state *passState) []rankedEntry {
	bucket := state.cfg.FairnessWeight
	if bucket < 1 {
		bucket = 1
	}

	ranked := make([]rankedEntry, 0, len(pending))
	for i := range pending {
		e := &pending[i]

		maxScore := 0
		tiers := make([]string, 0, len(e.MemberIDs))
		for _, id := range e.MemberIDs {
			if row, ok := state.fairness[id]; ok && row.FairnessScore > maxScore {
				maxScore = row.FairnessScore
			}
			tier := model.SpeedTierAverage
			if p, ok := state.profiles[id]; ok {
				tier = p.SpeedTier
			}
			tiers = append(tiers, tier)
		}

		adjust := 0
		if p, ok := state.profiles[e.OrganizerID]; ok {
			adjust = p.AdminPriorityAdjustment
		}

		ranked = append(ranked, rankedEntry{
			entry: e,
			signals: rankSignals{
				fairness:    maxScore / bucket,
				tierBias:    speedTierBias(slowestTier(tiers), state.cfg.SpeedBiasWeight),
				adminAdjust: adjust,
				submittedAt: e.SubmittedAt,
				entryID:     e.EntryID,
			},
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		return rankBefore(ranked[i].signals, ranked[j].signals)
	})
	return ranked
}

// ────────────────────── matching & assignment ──────────────────────

// placeEntry seats one entry if any candidate block survives window,
// capacity, and restriction checks. Failure to place is a normal outcome.
func (s *lotteryProcessingService) placeEntry(ctx context.Context, entry *model.LotteryEntry, state *passState, result *dto.ProcessLotteryResponse) {
	party := entry.PartySize()

	cleared, charges, reason := state.checker.entryClearance(entry)
	if !cleared {
		result.Warnings = append(result.Warnings, fmt.Sprintf("entry %s left pending: %s", entry.EntryID, reason))
		return
	}

	chosen, window := s.chooseBlock(entry, party, state)
	if chosen == nil {
		return
	}

	if err := s.commitAssignment(ctx, entry, chosen, charges, state); err != nil {
		if errors.Is(err, errEntryNoLongerPending) {
			result.Warnings = append(result.Warnings, fmt.Sprintf("entry %s was no longer pending, skipped", entry.EntryID))
		} else {
			s.logger.Error("assignment write failed",
				zap.String("entry_id", entry.EntryID),
				zap.Error(err))
			result.Warnings = append(result.Warnings, fmt.Sprintf("entry %s failed to assign: storage error", entry.EntryID))
		}
		return
	}

	chosen.remaining -= party
	for _, id := range entry.MemberIDs {
		state.checker.recordRound(id)
	}

	granted := window == timewindow.Value(entry.PreferredWindow)
	entry.Status = model.EntryStatusAssigned
	entry.AssignedBlockID = &chosen.block.BlockID
	processedAt := state.processedAt
	entry.ProcessedAt = &processedAt

	assignment := dto.AssignmentResponse{
		EntryID:   entry.EntryID,
		EntryType: entry.EntryType,
		BlockID:   chosen.block.BlockID,
		StartTime: chosen.block.StartTime,
		Window:    string(window),
		Players:   s.playerNames(entry, state),
		Granted:   granted,
	}
	result.Assignments = append(result.Assignments, assignment)
	result.ProcessedCount++

	if s.notifier != nil {
		s.notifier.AssignmentMade(ctx, entry, chosen.block, granted)
	}
}

// chooseBlock scans the preferred window then the alternate. Within a window
// the tightest fitting block wins, earliest start on ties, so large blocks
// stay whole for later groups.
func (s *lotteryProcessingService) chooseBlock(entry *model.LotteryEntry, party int, state *passState) (*blockState, timewindow.Value) {
	windows := []timewindow.Value{timewindow.Value(entry.PreferredWindow)}
	if entry.AlternateWindow != nil {
		windows = append(windows, timewindow.Value(*entry.AlternateWindow))
	}

	for _, w := range windows {
		var best *blockState
		for _, bs := range state.blocks {
			if bs.remaining < party {
				continue
			}
			if !timewindow.ContainsTime(state.windows, w, bs.startMin) {
				continue
			}
			if !state.checker.blockAllowed(entry, bs.startMin) {
				continue
			}
			if best == nil ||
				bs.remaining < best.remaining ||
				(bs.remaining == best.remaining && bs.startMin < best.startMin) {
				best = bs
			}
		}
		if best != nil {
			return best, w
		}
	}
	return nil, ""
}

// commitAssignment writes the status flip, the bookings, and any charge
// signals in one transaction. The PENDING guard on the status update makes
// re-runs and racing cancels safe.
func (s *lotteryProcessingService) commitAssignment(ctx context.Context, entry *model.LotteryEntry, chosen *blockState, charges []chargeIntent, state *passState) error {
	return s.repo.WithinTransaction(ctx, func(tx *repository.Repository) error {
		rows, err := tx.LotteryEntry.MarkAssigned(ctx, entry.EntryID, chosen.block.BlockID, state.processedAt)
		if err != nil {
			return err
		}
		if rows == 0 {
			return errEntryNoLongerPending
		}

		bookings := make([]model.TeeTimeBooking, 0, entry.PartySize())
		for _, id := range entry.MemberIDs {
			memberID := id
			bookings = append(bookings, model.TeeTimeBooking{
				BlockID:   chosen.block.BlockID,
				BlockDate: chosen.block.BlockDate,
				MemberID:  &memberID,
				EntryID:   entry.EntryID,
				BookedAt:  state.processedAt,
			})
		}
		for _, fill := range entry.Fills {
			label := fill
			bookings = append(bookings, model.TeeTimeBooking{
				BlockID:   chosen.block.BlockID,
				BlockDate: chosen.block.BlockDate,
				FillLabel: &label,
				EntryID:   entry.EntryID,
				BookedAt:  state.processedAt,
			})
		}
		if err := tx.TeeTimeBooking.BatchCreate(ctx, bookings); err != nil {
			return err
		}

		for _, c := range charges {
			signal := &model.ChargeSignal{
				SignalID:      uuid.NewString(),
				MemberID:      c.memberID,
				EntryID:       entry.EntryID,
				RestrictionID: c.restriction.RestrictionID,
				Currency:      "CAD",
				Reason:        fmt.Sprintf("override past monthly round cap (%s)", c.restriction.Name),
				EmittedAt:     state.processedAt,
			}
			if c.restriction.OverrideCharge != nil {
				signal.Amount = *c.restriction.OverrideCharge
			}
			if err := tx.ChargeSignal.Create(ctx, signal); err != nil {
				return err
			}
			s.logger.Info("charge signal emitted",
				zap.String("member_id", c.memberID),
				zap.String("restriction", c.restriction.Name),
				zap.String("amount", signal.Amount.String()))
		}
		return nil
	})
}

func (s *lotteryProcessingService) playerNames(entry *model.LotteryEntry, state *passState) []string {
	names := make([]string, 0, entry.PartySize())
	for _, id := range entry.MemberIDs {
		if m, ok := state.members[id]; ok {
			names = append(names, m.Name)
		} else {
			names = append(names, id)
		}
	}
	names = append(names, entry.Fills...)
	return names
}

// ────────────────────── fairness outcomes ──────────────────────

// applyFairnessOutcomes writes the month ledger once per member at pass end.
// Seating in the preferred window is a grant; the alternate window or no seat
// at all is a denial.
func (s *lotteryProcessingService) applyFairnessOutcomes(ctx context.Context, ranked []rankedEntry, state *passState) {
	for _, re := range ranked {
		e := re.entry
		granted := e.Status == model.EntryStatusAssigned &&
			e.AssignedBlockID != nil &&
			s.assignedInPreferred(e, state)

		for _, id := range e.MemberIDs {
			row, ok := state.fairness[id]
			if !ok {
				// Member joined after the month rows were ensured.
				row = &model.MemberFairnessScore{MemberID: id, Month: state.month}
				if _, err := s.repo.FairnessScore.BulkEnsure(ctx, []model.MemberFairnessScore{*row}); err != nil {
					s.logger.Error("create fairness row failed", zap.String("member_id", id), zap.Error(err))
					continue
				}
				state.fairness[id] = row
			}

			row.TotalEntriesMonth++
			if granted {
				row.PreferencesGrantedMonth++
				row.DaysWithoutGoodTime = 0
			} else {
				row.DaysWithoutGoodTime++
			}
			row.PreferenceFulfillmentRate = float64(row.PreferencesGrantedMonth) / float64(row.TotalEntriesMonth)
			row.FairnessScore = state.cfg.DeniedStreakWeight * row.DaysWithoutGoodTime

			if err := s.repo.FairnessScore.Update(ctx, row); err != nil {
				s.logger.Error("update fairness score failed", zap.String("member_id", id), zap.Error(err))
			}
		}
	}
}

func (s *lotteryProcessingService) assignedInPreferred(e *model.LotteryEntry, state *passState) bool {
	for _, bs := range state.blocks {
		if e.AssignedBlockID != nil && bs.block.BlockID == *e.AssignedBlockID {
			return timewindow.ContainsTime(state.windows, timewindow.Value(e.PreferredWindow), bs.startMin)
		}
	}
	return false
}

// ────────────────────── restriction checker ──────────────────────

// restrictionChecker evaluates the club rules against a candidate
// entry/block. It is built once per pass from a snapshot of the active
// restrictions, overrides, and each member's booked rounds this month.
type restrictionChecker struct {
	date         string
	timeOfDay    []*model.LotteryRestriction
	frequency    []*model.LotteryRestriction
	availability []*model.LotteryRestriction
	overrides    map[string]bool // restrictionID|memberID
	monthRounds  map[string]int64
	members      map[string]*model.Member
}

func (s *lotteryProcessingService) buildRestrictionChecker(ctx context.Context, date, month string, memberIDs []string, members map[string]*model.Member) (*restrictionChecker, error) {
	restrictions, err := s.repo.Restriction.ListActive(ctx)
	if err != nil {
		s.logger.Error("load restrictions failed", zap.Error(err))
		return nil, err
	}
	overrides, err := s.repo.Restriction.ListOverrides(ctx)
	if err != nil {
		s.logger.Error("load restriction overrides failed", zap.Error(err))
		return nil, err
	}

	checker := &restrictionChecker{
		date:        date,
		overrides:   make(map[string]bool, len(overrides)),
		monthRounds: make(map[string]int64, len(memberIDs)),
		members:     members,
	}
	for i := range restrictions {
		r := &restrictions[i]
		switch r.RestrictionType {
		case model.RestrictionTimeOfDay:
			checker.timeOfDay = append(checker.timeOfDay, r)
		case model.RestrictionFrequency:
			checker.frequency = append(checker.frequency, r)
		case model.RestrictionAvailability:
			checker.availability = append(checker.availability, r)
		}
	}
	for i := range overrides {
		o := &overrides[i]
		checker.overrides[o.RestrictionID+"|"+o.MemberID] = true
	}

	if len(checker.frequency) > 0 {
		for _, id := range memberIDs {
			count, err := s.repo.TeeTimeBooking.CountByMemberAndMonth(ctx, id, month)
			if err != nil {
				s.logger.Error("count member rounds failed", zap.String("member_id", id), zap.Error(err))
				return nil, err
			}
			checker.monthRounds[id] = count
		}
	}
	return checker, nil
}

func (c *restrictionChecker) exempt(restrictionID, memberID string) bool {
	return c.overrides[restrictionID+"|"+memberID]
}

// entryClearance evaluates the block-independent rules: blackout ranges and
// monthly frequency caps. Charges are intents only; the caller writes them
// when the entry actually seats.
func (c *restrictionChecker) entryClearance(entry *model.LotteryEntry) (bool, []chargeIntent, string) {
	for _, r := range c.availability {
		if !dateWithin(c.date, r.StartDate, r.EndDate) {
			continue
		}
		for _, id := range entry.MemberIDs {
			if !c.exempt(r.RestrictionID, id) {
				return false, nil, fmt.Sprintf("date falls in blackout %q", r.Name)
			}
		}
	}

	var charges []chargeIntent
	for _, r := range c.frequency {
		if r.MaxRoundsPerMonth == nil {
			continue
		}
		cap64 := int64(*r.MaxRoundsPerMonth)
		for _, id := range entry.MemberIDs {
			if c.monthRounds[id] < cap64 {
				continue
			}
			if !c.exempt(r.RestrictionID, id) {
				return false, nil, fmt.Sprintf("%s is at the monthly round cap (%s)", c.memberName(id), r.Name)
			}
			if r.ChargeOnOverride {
				charges = append(charges, chargeIntent{memberID: id, restriction: r})
			}
		}
	}
	return true, charges, ""
}

// blockAllowed evaluates the time-of-day bans for one candidate block start.
func (c *restrictionChecker) blockAllowed(entry *model.LotteryEntry, startMin int) bool {
	for _, r := range c.timeOfDay {
		if r.StartTime == nil || r.EndTime == nil {
			continue
		}
		banStart, ok := timewindow.ParseClock(*r.StartTime)
		if !ok {
			continue
		}
		banEnd, ok := timewindow.ParseClock(*r.EndTime)
		if !ok {
			continue
		}
		if startMin < banStart || startMin >= banEnd {
			continue
		}
		for _, id := range entry.MemberIDs {
			m, known := c.members[id]
			if r.MemberClass != nil && (!known || m.MemberClass != *r.MemberClass) {
				continue
			}
			if !c.exempt(r.RestrictionID, id) {
				return false
			}
		}
	}
	return true
}

// recordRound reflects a just-written booking in the frequency bookkeeping.
func (c *restrictionChecker) recordRound(memberID string) {
	if len(c.frequency) > 0 {
		c.monthRounds[memberID]++
	}
}

func (c *restrictionChecker) memberName(id string) string {
	if m, ok := c.members[id]; ok {
		return m.Name
	}
	return id
}

// dateWithin tests an ISO date against an optional inclusive range. ISO dates
// compare correctly as strings.
func dateWithin(date string, from, to *string) bool {
	if from != nil && date < *from {
		return false
	}
	if to != nil && date > *to {
		return false
	}
	return true
}
