package notification

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// PoolOptions sizes a Pool.
type PoolOptions struct {
	Workers   int
	QueueSize int
	Timeout   time.Duration
}

// Pool delivers messages from a bounded in-process queue using a fixed set of workers.
type Pool struct {
	notifier Notifier
	logger   *slog.Logger
	timeout  time.Duration
	queue    chan Message
	dropped  atomic.Int64
	wg       sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// NewPool starts the workers immediately.
func NewPool(notifier Notifier, logger *slog.Logger, opts PoolOptions) *Pool {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = 1
	}
	p := &Pool{
		notifier: notifier,
		logger:   logger,
		timeout:  opts.Timeout,
		queue:    make(chan Message, opts.QueueSize),
	}
	p.wg.Add(opts.Workers)
	for i := 0; i < opts.Workers; i++ {
		go p.work()
	}
	return p
}

// Dispatch enqueues the message. It never blocks: when the queue is full or
// the pool is closed the message is dropped and logged.
func (p *Pool) Dispatch(message Message) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		p.drop(message, "pool closed")
		return
	}
	select {
	case p.queue <- message:
	default:
		p.drop(message, "queue full")
	}
}

// Dropped reports how many messages were discarded without a delivery attempt.
func (p *Pool) Dropped() int64 {
	return p.dropped.Load()
}

func (p *Pool) drop(message Message, reason string) {
	total := p.dropped.Add(1)
	p.logger.Warn("notification dropped", "email", message.Email, "reason", reason, "dropped_total", total)
}

// Close stops intake and waits for queued messages to be delivered.
func (p *Pool) Close(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.queue)
	}
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Pool) work() {
	defer p.wg.Done()
	for message := range p.queue {
		deliver(p.notifier, p.timeout, p.logger, message)
	}
}

// deliver runs one detached Send and absorbs its failure.
func deliver(notifier Notifier, timeout time.Duration, logger *slog.Logger, message Message) {
	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if err := notifier.Send(ctx, message); err != nil {
		logger.Warn("notification failed", "email", message.Email, "error", err)
		return
	}
	logger.Debug("notification delivered", "email", message.Email)
}
