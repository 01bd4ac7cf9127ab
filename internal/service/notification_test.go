package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"caelis-storefront/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeMailer struct {
	mu            sync.Mutex
	failuresLeft  int
	confirmations []string
	admin         []string
}

func (m *fakeMailer) SendOrderConfirmation(ctx context.Context, order *model.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failuresLeft > 0 {
		m.failuresLeft--
		return errors.New("smtp unavailable")
	}
	m.confirmations = append(m.confirmations, order.OrderID)
	return nil
}

func (m *fakeMailer) SendSubscriptionNotification(ctx context.Context, subscriberEmail string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failuresLeft > 0 {
		m.failuresLeft--
		return errors.New("smtp unavailable")
	}
	m.admin = append(m.admin, subscriberEmail)
	return nil
}

func (m *fakeMailer) sent() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.confirmations...)
}

func TestNotifierDeliversAndDrainsOnClose(t *testing.T) {
	mailer := &fakeMailer{}
	n := NewNotifier(mailer, zap.NewNop())

	n.OrderConfirmation(&model.Order{OrderID: "order_1"})
	n.OrderConfirmation(&model.Order{OrderID: "order_2"})
	n.SubscriptionNotification("reader@example.com")
	n.Close()

	assert.Equal(t, []string{"order_1", "order_2"}, mailer.sent())
	assert.Equal(t, []string{"reader@example.com"}, mailer.admin)
}

func TestNotifierRetriesTransientFailure(t *testing.T) {
	mailer := &fakeMailer{failuresLeft: 1}
	n := NewNotifier(mailer, zap.NewNop())

	n.OrderConfirmation(&model.Order{OrderID: "order_1"})
	n.Close()

	require.Equal(t, []string{"order_1"}, mailer.sent())
}

func TestNotifierEnqueueAfterCloseIsSafe(t *testing.T) {
	mailer := &fakeMailer{}
	n := NewNotifier(mailer, zap.NewNop())
	n.Close()

	// must not panic or block
	n.OrderConfirmation(&model.Order{OrderID: "order_late"})
	assert.Empty(t, mailer.sent())
}
