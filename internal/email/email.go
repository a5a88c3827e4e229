package email

import (
	"context"

	"github.com/Domenick1991/rocketbooking/internal/kafka"
	"go.uber.org/zap"
)

// Sender logs outbound booking notifications. Real delivery sits behind
// this type so the worker does not care which transport is wired in.
type Sender struct {
	logger *zap.Logger
}

func NewSender(logger *zap.Logger) *Sender {
	return &Sender{logger: logger}
}

func (s *Sender) Send(_ context.Context, event kafka.BookingEvent) error {
	s.logger.Info("sending booking notification",
		zap.String("to", event.CustomerEmail),
		zap.String("event", event.Type),
		zap.String("booking_id", event.BookingID),
		zap.String("launch_id", event.LaunchID),
		zap.Int("seats", event.Seats),
	)
	return nil
}
