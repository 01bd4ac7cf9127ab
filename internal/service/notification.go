package service

import (
	"context"
	"sync"
	"time"

	"caelis-storefront/internal/model"

	"go.uber.org/zap"
)

// Mailer delivers a single message; implementations must be safe for use
// from the notifier worker goroutine.
type Mailer interface {
	SendOrderConfirmation(ctx context.Context, order *model.Order) error
	SendSubscriptionNotification(ctx context.Context, subscriberEmail string) error
}

// NotificationDispatcher is the fire-and-forget side of lifecycle
// transitions. Failures are logged and never reach order state.
type NotificationDispatcher interface {
	OrderConfirmation(order *model.Order)
	SubscriptionNotification(subscriberEmail string)
}

type notification struct {
	kind string
	send func(ctx context.Context) error
}

// Notifier queues notifications behind a buffered channel and delivers
// them from a single worker with bounded retries. Enqueueing never blocks
// the request path: when the backlog is full the notification is dropped
// with a log line.
type Notifier struct {
	mailer Mailer
	logger *zap.Logger

	queue chan notification
	wg    sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

const (
	notifierBacklog  = 64
	deliveryAttempts = 3
	deliveryTimeout  = 15 * time.Second
)

func NewNotifier(mailer Mailer, logger *zap.Logger) *Notifier {
	n := &Notifier{
		mailer: mailer,
		logger: logger,
		queue:  make(chan notification, notifierBacklog),
	}
	n.wg.Add(1)
	go n.run()
	return n
}

func (n *Notifier) OrderConfirmation(order *model.Order) {
	n.enqueue(notification{
		kind: "order_confirmation",
		send: func(ctx context.Context) error {
			return n.mailer.SendOrderConfirmation(ctx, order)
		},
	})
}

func (n *Notifier) SubscriptionNotification(subscriberEmail string) {
	n.enqueue(notification{
		kind: "subscription",
		send: func(ctx context.Context) error {
			return n.mailer.SendSubscriptionNotification(ctx, subscriberEmail)
		},
	})
}

func (n *Notifier) enqueue(job notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		n.logger.Warn("notifier closed, dropping notification", zap.String("kind", job.kind))
		return
	}
	select {
	case n.queue <- job:
	default:
		n.logger.Warn("notification backlog full, dropping", zap.String("kind", job.kind))
	}
}

func (n *Notifier) run() {
	defer n.wg.Done()
	for job := range n.queue {
		n.deliver(job)
	}
}

func (n *Notifier) deliver(job notification) {
	for attempt := 1; attempt <= deliveryAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
		err := job.send(ctx)
		cancel()
		if err == nil {
			return
		}
		n.logger.Warn("send notification",
			zap.String("kind", job.kind),
			zap.Int("attempt", attempt),
			zap.Error(err))
		if attempt < deliveryAttempts {
			time.Sleep(time.Duration(attempt) * time.Second)
		}
	}
	n.logger.Error("notification dropped after retries", zap.String("kind", job.kind))
}

// Close stops accepting new notifications and drains the backlog.
func (n *Notifier) Close() {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	n.closed = true
	close(n.queue)
	n.mu.Unlock()

	n.wg.Wait()
}
