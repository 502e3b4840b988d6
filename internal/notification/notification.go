package notification

import (
	"context"
	"log/slog"
)

const (
	// KindDepositDecision indicates an admin decided a deposit request.
	KindDepositDecision = "deposit_decision"
	// KindWithdrawalDecision indicates an admin decided a withdrawal request.
	KindWithdrawalDecision = "withdrawal_decision"
	// KindKYCDecision indicates an admin decided an investor verification.
	KindKYCDecision = "kyc_decision"
)

// Message describes a notification payload. Destination is the investor's
// user id; the delivery channel resolves it to an address.
type Message struct {
	Kind        string
	Destination string
	Body        string
}

// Notifier delivers notifications to downstream systems.
type Notifier interface {
	Send(ctx context.Context, message Message) error
}

// LoggerNotifier is a stub implementation that writes notifications to the
// logger. The investor-facing platform owns real delivery.
type LoggerNotifier struct {
	logger *slog.Logger
}

// NewLoggerNotifier constructs a logging notifier stub.
func NewLoggerNotifier(logger *slog.Logger) *LoggerNotifier {
	return &LoggerNotifier{logger: logger}
}

// Send writes the message to the structured logger.
func (n *LoggerNotifier) Send(_ context.Context, message Message) error {
	if n == nil || n.logger == nil {
		return nil
	}
	n.logger.Info("notification", "kind", message.Kind, "destination", message.Destination, "body", message.Body)
	return nil
}
