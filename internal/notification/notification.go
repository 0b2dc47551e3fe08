package notification

import (
	"context"
	"log/slog"
)

// LoginSucceeded is the fixed message sent after a successful login.
const LoginSucceeded = "login succeeded"

// Message describes a notification payload as sent to the downstream service.
type Message struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Notifier delivers notifications to downstream systems.
type Notifier interface {
	Send(ctx context.Context, message Message) error
}

// Dispatcher hands a message off for delivery without waiting for the outcome.
type Dispatcher interface {
	Dispatch(message Message)
}

// Queue is a Dispatcher that owns background delivery workers.
type Queue interface {
	Dispatcher
	// Close stops accepting messages and waits for in-flight deliveries
	// until ctx is done.
	Close(ctx context.Context) error
}

// LoggerNotifier writes notifications to the logger instead of delivering them.
type LoggerNotifier struct {
	logger *slog.Logger
}

// NewLoggerNotifier constructs a logging notifier.
func NewLoggerNotifier(logger *slog.Logger) *LoggerNotifier {
	return &LoggerNotifier{logger: logger}
}

// Send writes the message to the structured logger.
func (n *LoggerNotifier) Send(_ context.Context, message Message) error {
	if n == nil || n.logger == nil {
		return nil
	}
	n.logger.Info("notification", "email", message.Email, "message", message.Message)
	return nil
}
