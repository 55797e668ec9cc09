package notify

import (
	"context"
	"log/slog"
)

// Sender delivers account notifications to a phone number. Production
// deployments plug in an SMS gateway; the rest of the system only sees this
// interface.
type Sender interface {
	SendActivation(ctx context.Context, phone, code string) error
	SendRecovery(ctx context.Context, phone, newPassword string) error
}

// LogSender writes notifications to the log instead of sending them. Used in
// development and tests.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) SendActivation(ctx context.Context, phone, code string) error {
	s.logger.InfoContext(ctx, "activation notification", "phone", phone, "code", code)
	return nil
}

func (s *LogSender) SendRecovery(ctx context.Context, phone, newPassword string) error {
	s.logger.InfoContext(ctx, "recovery notification", "phone", phone)
	return nil
}
