package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

// ErrUnexpectedStatus is returned when the downstream answers with anything but 200.
var ErrUnexpectedStatus = errors.New("unexpected notification status")

// HTTPNotifier posts messages as JSON to a downstream endpoint.
type HTTPNotifier struct {
	url     string
	timeout time.Duration
}

// NewHTTPNotifier builds a notifier for url. Every call is bounded by timeout.
func NewHTTPNotifier(url string, timeout time.Duration) *HTTPNotifier {
	return &HTTPNotifier{url: url, timeout: timeout}
}

// Send posts the message and expects a 200 response. It does not retry.
func (n *HTTPNotifier) Send(ctx context.Context, message Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	timeout := n.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	agent := fiber.Post(n.url)
	agent.Timeout(timeout)
	agent.JSON(message)

	status, _, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("post notification: %w", errors.Join(errs...))
	}
	if status != fiber.StatusOK {
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, status)
	}
	return nil
}
