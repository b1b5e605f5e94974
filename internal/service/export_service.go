package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/SwiftWareCo/GolfSync-sub005/internal/model"
	"github.com/SwiftWareCo/GolfSync-sub005/internal/repository"
	"github.com/SwiftWareCo/GolfSync-sub005/internal/timewindow"
)

// ── export errors ──

var (
	ErrExportNoBlocks     = errors.New("no tee sheet exists for this date")
	ErrExportGenerateFail = errors.New("failed to generate the Excel file")
)

// ExportService renders a date's tee sheet as an .xlsx workbook for the pro
// shop. The buffer is returned raw; the handler sets the HTTP headers.
type ExportService interface {
	ExportTeeSheet(ctx context.Context, date string, sheetCfg timewindow.SheetConfig) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService creates an ExportService instance.
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportTeeSheet: one block per row, plus the still-pending entries
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportTeeSheet(ctx context.Context, date string, sheetCfg timewindow.SheetConfig) (*bytes.Buffer, string, error) {
	if !validDate(date) {
		return nil, "", ErrInvalidLotteryDate
	}

	blocks, err := s.repo.TeeTimeBlock.ListByDate(ctx, date)
	if err != nil {
		s.logger.Error("list tee time blocks failed", zap.Error(err))
		return nil, "", err
	}
	if len(blocks) == 0 {
		return nil, "", ErrExportNoBlocks
	}

	bookings, err := s.repo.TeeTimeBooking.ListByDate(ctx, date)
	if err != nil {
		s.logger.Error("list bookings failed", zap.Error(err))
		return nil, "", err
	}
	entries, err := s.repo.LotteryEntry.ListByDate(ctx, date)
	if err != nil {
		s.logger.Error("list lottery entries failed", zap.Error(err))
		return nil, "", err
	}

	windows := timewindow.Calculate(sheetCfg)

	// players per block, in booking order
	playersByBlock := make(map[string][]string)
	for i := range bookings {
		b := &bookings[i]
		name := "guest"
		switch {
		case b.Member != nil:
			name = b.Member.Name
		case b.FillLabel != nil:
			name = *b.FillLabel
		}
		playersByBlock[b.BlockID] = append(playersByBlock[b.BlockID], name)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Tee Sheet"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 10)
	f.SetColWidth(sheetName, "B", "B", 22)
	f.SetColWidth(sheetName, "C", "C", 10)
	f.SetColWidth(sheetName, "D", "D", 50)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#2E7D32"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	f.SetCellValue(sheetName, "A1", fmt.Sprintf("GolfSync tee sheet %s", date))
	f.MergeCell(sheetName, "A1", "D1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	row := 2
	f.SetCellValue(sheetName, cell("A", row), "Time")
	f.SetCellValue(sheetName, cell("B", row), "Window")
	f.SetCellValue(sheetName, cell("C", row), "Seats")
	f.SetCellValue(sheetName, cell("D", row), "Players")

	row = 3
	for i := range blocks {
		b := &blocks[i]
		windowLabel := "-"
		if startMin, ok := timewindow.ParseClock(b.StartTime); ok {
			if w, found := timewindow.Locate(windows, startMin); found {
				windowLabel = w.Label
			}
		}
		players := playersByBlock[b.BlockID]

		f.SetCellValue(sheetName, cell("A", row), b.StartTime)
		f.SetCellValue(sheetName, cell("B", row), windowLabel)
		f.SetCellValue(sheetName, cell("C", row), fmt.Sprintf("%d/%d", len(players), b.MaxPlayers))
		if len(players) > 0 {
			f.SetCellValue(sheetName, cell("D", row), strings.Join(players, ", "))
		} else {
			f.SetCellValue(sheetName, cell("D", row), "-")
		}
		row++
	}

	// pending section for manual resolution
	var pendingRows [][]string
	for i := range entries {
		e := &entries[i]
		if e.Status != model.EntryStatusPending {
			continue
		}
		organizer := e.OrganizerID
		if e.Organizer != nil {
			organizer = e.Organizer.Name
		}
		pendingRows = append(pendingRows, []string{
			organizer,
			e.EntryType,
			fmt.Sprintf("%d players", e.PartySize()),
			e.PreferredWindow,
		})
	}
	if len(pendingRows) > 0 {
		row++
		f.SetCellValue(sheetName, cell("A", row), "Pending entries")
		f.MergeCell(sheetName, cell("A", row), cell("D", row))
		f.SetCellStyle(sheetName, cell("A", row), cell("A", row), headerStyle)
		row++
		for _, pr := range pendingRows {
			f.SetCellValue(sheetName, cell("A", row), pr[0])
			f.SetCellValue(sheetName, cell("B", row), pr[1])
			f.SetCellValue(sheetName, cell("C", row), pr[2])
			f.SetCellValue(sheetName, cell("D", row), pr[3])
			row++
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write Excel failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("tee_sheet_%s.xlsx", date)
	return buf, filename, nil
}

// ── helpers ──

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
