package notification

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type recordingNotifier struct {
	mu       sync.Mutex
	messages []Message
	err      error
	release  chan struct{}
	sent     chan Message
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{sent: make(chan Message, 64)}
}

func (n *recordingNotifier) Send(ctx context.Context, message Message) error {
	if n.release != nil {
		select {
		case <-n.release:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	n.mu.Lock()
	n.messages = append(n.messages, message)
	n.mu.Unlock()
	n.sent <- message
	return n.err
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.messages)
}

var errDownstream = errors.New("connection refused")

func waitFor(ch <-chan Message, timeout time.Duration) (Message, bool) {
	select {
	case msg := <-ch:
		return msg, true
	case <-time.After(timeout):
		return Message{}, false
	}
}

// silentRedis accepts connections and never answers, like a hung Redis.
func silentRedis(t *testing.T) *redis.Client {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	var (
		mu    sync.Mutex
		conns []net.Conn
	)
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			mu.Lock()
			conns = append(conns, conn)
			mu.Unlock()
		}
	}()
	cache := redis.NewClient(&redis.Options{
		Addr:                  ln.Addr().String(),
		DialTimeout:           200 * time.Millisecond,
		ReadTimeout:           200 * time.Millisecond,
		WriteTimeout:          200 * time.Millisecond,
		ContextTimeoutEnabled: true,
	})
	t.Cleanup(func() {
		cache.Close()
		ln.Close()
		mu.Lock()
		defer mu.Unlock()
		for _, c := range conns {
			c.Close()
		}
	})
	return cache
}

func TestLoggerNotifierWritesMessage(t *testing.T) {
	var buf bytes.Buffer
	n := NewLoggerNotifier(slog.New(slog.NewJSONHandler(&buf, nil)))

	if err := n.Send(context.Background(), Message{Email: "alice@example.com", Message: LoginSucceeded}); err != nil {
		t.Fatalf("send: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"email":"alice@example.com"`) || !strings.Contains(out, `"message":"login succeeded"`) {
		t.Fatalf("unexpected log output %s", out)
	}

	var nilNotifier *LoggerNotifier
	if err := nilNotifier.Send(context.Background(), Message{}); err != nil {
		t.Fatalf("nil notifier should be a no-op, got %v", err)
	}
}
