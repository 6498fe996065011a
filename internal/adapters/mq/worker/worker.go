// Package worker runs the notification dispatch pool. Workers drain the
// notification queue and hand messages to the notifier; a delivery failure
// is logged and counted, never propagated back to the submitter.
package worker

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/fullcircle/internal/adapters/notify"
	"github.com/okian/fullcircle/pkg/logger"
	"github.com/okian/fullcircle/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerCount = 2
	sendTimeout        = 15 * time.Second
)

// Message is what workers read off the queue.
type Message = notify.Message

// Queue defines how workers receive messages.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Message
	Len(ctx context.Context) int
}

// Pool runs a fixed set of dispatch workers over one queue.
type Pool struct {
	queue    Queue
	notifier notify.Notifier
	workers  int
	logger   logger.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	group   *errgroup.Group
	started bool
}

// NewPool creates a dispatch pool with configuration options.
func NewPool(q Queue, n notify.Notifier, opts ...Option) *Pool {
	p := &Pool{
		queue:    q,
		notifier: n,
		workers:  defaultWorkerCount,
	}

	// Apply all options
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Start launches the worker goroutines.
func (p *Pool) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return
	}
	if p.logger == nil {
		p.logger = logger.Named("notify-worker")
	}

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.group, runCtx = errgroup.WithContext(runCtx)

	for i := 0; i < p.workers; i++ {
		p.group.Go(func() error {
			p.run(runCtx)
			return nil
		})
	}
	p.started = true

	metrics.UpdateNotifyWorkerCount(p.workers)
	p.logger.Info(ctx, "notification workers started", logger.Int("workers", p.workers))
}

// Stop cancels the workers and waits for them to drain.
func (p *Pool) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}
	p.cancel()
	_ = p.group.Wait()
	p.started = false

	metrics.UpdateNotifyWorkerCount(0)
}

// run is one worker loop: dequeue, dispatch, repeat until the queue closes
// or the context is canceled.
func (p *Pool) run(ctx context.Context) {
	msgs := p.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			p.dispatch(ctx, msg)
			metrics.UpdateNotifyQueueSize(p.queue.Len(ctx))
		}
	}
}

// dispatch sends one message with a bounded timeout.
func (p *Pool) dispatch(ctx context.Context, msg Message) {
	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	if err := p.notifier.Send(sendCtx, msg); err != nil {
		metrics.RecordNotificationFailed()
		p.logger.Warn(ctx, "notification delivery failed",
			logger.String("to", msg.To),
			logger.Error(err),
		)
		return
	}
	metrics.RecordNotificationSent()
}
