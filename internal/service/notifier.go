package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/SwiftWareCo/GolfSync-sub005/internal/model"
)

// AssignmentNotifier receives assignment outcomes for delivery to members.
// Delivery itself (email, push) lives in the host club system; the default
// implementation just records the outcome.
type AssignmentNotifier interface {
	AssignmentMade(ctx context.Context, entry *model.LotteryEntry, block *model.TeeTimeBlock, granted bool)
}

type logNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates the log-only AssignmentNotifier.
func NewLogNotifier(logger *zap.Logger) AssignmentNotifier {
	return &logNotifier{logger: logger}
}

func (n *logNotifier) AssignmentMade(_ context.Context, entry *model.LotteryEntry, block *model.TeeTimeBlock, granted bool) {
	n.logger.Info("assignment notification",
		zap.String("entry_id", entry.EntryID),
		zap.String("organizer_id", entry.OrganizerID),
		zap.String("date", block.BlockDate),
		zap.String("start_time", block.StartTime),
		zap.Bool("preferred_granted", granted))
}
