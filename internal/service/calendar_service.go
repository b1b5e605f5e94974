package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/SwiftWareCo/GolfSync-sub005/internal/repository"
	"github.com/SwiftWareCo/GolfSync-sub005/internal/timewindow"
)

// ── calendar errors ──

var (
	ErrInvalidDateRange = errors.New("feed range must be valid dates with from on or before to")
	ErrDateRangeTooWide = errors.New("feed range cannot exceed one year")
)

const feedProductID = "-//GolfSync//Tee Time Lottery//EN"

// CalendarService renders a member's assigned tee times as an iCalendar
// (RFC 5545) feed members subscribe to from their phone.
type CalendarService interface {
	MemberFeed(ctx context.Context, memberID, fromDate, toDate string) (string, string, error)
}

type calendarService struct {
	repo         *repository.Repository
	logger       *zap.Logger
	roundMinutes int
}

// NewCalendarService creates a CalendarService instance. roundMinutes sets
// each event's duration since a tee time block only records its start.
func NewCalendarService(repo *repository.Repository, logger *zap.Logger, roundMinutes int) CalendarService {
	if roundMinutes <= 0 {
		roundMinutes = 240
	}
	return &calendarService{repo: repo, logger: logger, roundMinutes: roundMinutes}
}

// ────────────────────── MemberFeed ──────────────────────

func (s *calendarService) MemberFeed(ctx context.Context, memberID, fromDate, toDate string) (string, string, error) {
	if !validDate(fromDate) || !validDate(toDate) || fromDate > toDate {
		return "", "", ErrInvalidDateRange
	}
	from, _ := time.Parse("2006-01-02", fromDate)
	to, _ := time.Parse("2006-01-02", toDate)
	if to.Sub(from) > 366*24*time.Hour {
		return "", "", ErrDateRangeTooWide
	}

	member, err := s.repo.Member.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", ErrMemberNotFound
		}
		s.logger.Error("query member failed", zap.Error(err))
		return "", "", err
	}

	bookings, err := s.repo.TeeTimeBooking.ListByMemberBetween(ctx, memberID, fromDate, toDate)
	if err != nil {
		s.logger.Error("list member bookings failed", zap.Error(err))
		return "", "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(feedProductID)
	cal.SetName("GolfSync tee times")

	now := time.Now().UTC()
	for i := range bookings {
		b := &bookings[i]
		if b.Block == nil {
			continue
		}
		startMin, ok := timewindow.ParseClock(b.Block.StartTime)
		if !ok {
			continue
		}
		day, err := time.Parse("2006-01-02", b.Block.BlockDate)
		if err != nil {
			continue
		}
		start := day.Add(time.Duration(startMin) * time.Minute)
		end := start.Add(time.Duration(s.roundMinutes) * time.Minute)

		event := cal.AddEvent(b.BookingID + "@golfsync")
		event.SetDtStampTime(now)
		event.SetStartAt(start)
		event.SetEndAt(end)
		event.SetSummary(fmt.Sprintf("Tee time %s", b.Block.StartTime))
		event.SetDescription(fmt.Sprintf("Lottery tee time for %s", member.Name))
	}

	filename := fmt.Sprintf("tee_times_%s_%s.ics", fromDate, toDate)
	return cal.Serialize(), filename, nil
}
