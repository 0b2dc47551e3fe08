package notification

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	enqueueTimeout = 2 * time.Second
	popTimeout     = time.Second
	retryBackoff   = 500 * time.Millisecond
)

// RedisQueueOptions configures a RedisQueue.
type RedisQueueOptions struct {
	Key     string
	Workers int
	// QueueSize bounds the in-process buffer in front of LPUSH.
	QueueSize int
	Timeout   time.Duration
}

// RedisQueue buffers messages in process, pushes them onto a Redis list from a
// single goroutine and delivers them from workers that pop the other end.
type RedisQueue struct {
	cache    *redis.Client
	notifier Notifier
	logger   *slog.Logger
	key      string
	timeout  time.Duration
	pending  chan Message
	dropped  atomic.Int64

	mu     sync.RWMutex
	closed bool

	cancel context.CancelFunc
	pushWG sync.WaitGroup
	wg     sync.WaitGroup
}

// NewRedisQueue starts the pusher and the workers immediately.
func NewRedisQueue(cache *redis.Client, notifier Notifier, logger *slog.Logger, opts RedisQueueOptions) *RedisQueue {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	q := &RedisQueue{
		cache:    cache,
		notifier: notifier,
		logger:   logger,
		key:      opts.Key,
		timeout:  opts.Timeout,
		pending:  make(chan Message, opts.QueueSize),
		cancel:   cancel,
	}
	q.pushWG.Add(1)
	go q.push()
	q.wg.Add(opts.Workers)
	for i := 0; i < opts.Workers; i++ {
		go q.work(ctx)
	}
	return q
}

// Dispatch buffers the message for the pusher. It never touches Redis and
// never blocks: a full buffer or a closed queue drops the message.
func (q *RedisQueue) Dispatch(message Message) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		q.drop(message, "queue closed")
		return
	}
	select {
	case q.pending <- message:
	default:
		q.drop(message, "queue full")
	}
}

// Dropped reports how many messages were discarded before reaching Redis.
func (q *RedisQueue) Dropped() int64 {
	return q.dropped.Load()
}

// Close flushes buffered messages to Redis, then stops the workers.
// Messages still on the list stay there for the next start.
func (q *RedisQueue) Close(ctx context.Context) error {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.pending)
	}
	q.mu.Unlock()

	done := make(chan struct{})
	go func() {
		q.pushWG.Wait()
		q.cancel()
		q.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		q.cancel()
		return ctx.Err()
	}
}

func (q *RedisQueue) drop(message Message, reason string) {
	total := q.dropped.Add(1)
	q.logger.Warn("notification dropped", "email", message.Email, "reason", reason, "dropped_total", total)
}

func (q *RedisQueue) push() {
	defer q.pushWG.Done()
	for message := range q.pending {
		payload, err := json.Marshal(message)
		if err != nil {
			q.drop(message, err.Error())
			continue
		}
		ctx, cancel := context.WithTimeout(context.Background(), enqueueTimeout)
		err = q.cache.LPush(ctx, q.key, payload).Err()
		cancel()
		if err != nil {
			q.drop(message, err.Error())
		}
	}
}

func (q *RedisQueue) work(ctx context.Context) {
	defer q.wg.Done()
	for {
		if ctx.Err() != nil {
			return
		}
		result, err := q.cache.BRPop(ctx, popTimeout, q.key).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			if ctx.Err() != nil {
				return
			}
			q.logger.Warn("notification queue read failed", "key", q.key, "error", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(retryBackoff):
			}
			continue
		}
		// result is [key, value]
		var message Message
		if err := json.Unmarshal([]byte(result[1]), &message); err != nil {
			q.logger.Warn("notification discarded", "key", q.key, "error", err)
			continue
		}
		deliver(q.notifier, q.timeout, q.logger, message)
	}
}
