package notify

import (
	"context"
	"log/slog"
)

// Log writes messages to the logger instead of delivering them. Used when
// no webhook is configured.
type Log struct {
	log *slog.Logger
}

// NewLog creates a log-only notifier.
func NewLog(logger *slog.Logger) *Log {
	return &Log{log: logger.With("adapter", "log_notifier")}
}

// Notify logs the message and always succeeds.
func (l *Log) Notify(ctx context.Context, recipientID int64, text string) error {
	l.log.InfoContext(ctx, "partner message",
		slog.Int64("recipient_id", recipientID),
		slog.String("text", text))
	return nil
}
