package worker_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/fullcircle/internal/adapters/mq/queue"
	"github.com/okian/fullcircle/internal/adapters/mq/worker"
	"github.com/okian/fullcircle/internal/adapters/notify"
	"github.com/okian/fullcircle/pkg/logger"
)

func init() {
	_ = logger.Init()
}

// captureNotifier records delivered messages and can be told to fail.
type captureNotifier struct {
	mu     sync.Mutex
	sent   []notify.Message
	failTo string
}

func (c *captureNotifier) Send(_ context.Context, msg notify.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if msg.To == c.failTo {
		return errors.New("delivery refused")
	}
	c.sent = append(c.sent, msg)
	return nil
}

func (c *captureNotifier) delivered() []notify.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]notify.Message, len(c.sent))
	copy(out, c.sent)
	return out
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(cond func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

func TestPool(t *testing.T) {
	ctx := context.Background()

	Convey("Given a pool over a queue of pending messages", t, func() {
		q := queue.NewInMemoryQueue(queue.WithCapacity(16))
		notifier := &captureNotifier{}
		pool := worker.NewPool(q, notifier, worker.WithWorkerCount(3))

		for _, to := range []string{"a@example.com", "b@example.com", "c@example.com"} {
			So(q.Enqueue(ctx, queue.Message{To: to, RaterName: "Rater", Role: "peer"}), ShouldBeTrue)
		}

		Convey("When the pool starts", func() {
			pool.Start(ctx)

			Convey("Then all messages should be dispatched", func() {
				So(waitFor(func() bool { return len(notifier.delivered()) == 3 }), ShouldBeTrue)
				So(q.Len(ctx), ShouldEqual, 0)

				pool.Stop()
			})

			Convey("Then starting again should be a no-op", func() {
				pool.Start(ctx)
				pool.Stop()
			})
		})
	})

	Convey("Given a notifier that fails for one recipient", t, func() {
		q := queue.NewInMemoryQueue(queue.WithCapacity(16))
		notifier := &captureNotifier{failTo: "broken@example.com"}
		pool := worker.NewPool(q, notifier)

		So(q.Enqueue(ctx, queue.Message{To: "broken@example.com"}), ShouldBeTrue)
		So(q.Enqueue(ctx, queue.Message{To: "fine@example.com"}), ShouldBeTrue)

		Convey("When the pool runs", func() {
			pool.Start(ctx)

			Convey("Then the failure should not stop later deliveries", func() {
				So(waitFor(func() bool { return len(notifier.delivered()) == 1 }), ShouldBeTrue)
				So(notifier.delivered()[0].To, ShouldEqual, "fine@example.com")

				pool.Stop()
			})
		})
	})

	Convey("Given a running pool whose queue closes", t, func() {
		q := queue.NewInMemoryQueue(queue.WithCapacity(4))
		notifier := &captureNotifier{}
		pool := worker.NewPool(q, notifier, worker.WithWorkerCount(1))

		So(q.Enqueue(ctx, queue.Message{To: "last@example.com"}), ShouldBeTrue)
		pool.Start(ctx)

		Convey("Then close should drain the queue and workers should exit", func() {
			So(q.Close(), ShouldBeNil)
			So(waitFor(func() bool { return len(notifier.delivered()) == 1 }), ShouldBeTrue)

			done := make(chan struct{})
			go func() {
				pool.Stop()
				close(done)
			}()
			select {
			case <-done:
			case <-time.After(2 * time.Second):
				t.Fatal("pool did not stop after queue close")
			}
		})
	})

	Convey("Given a pool that was never started", t, func() {
		q := queue.NewInMemoryQueue()
		pool := worker.NewPool(q, &captureNotifier{})

		Convey("Then stop should be safe", func() {
			pool.Stop()
		})
	})
}
