package mock

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/vvatanabe/shiptracker"
)

var ErrNotImplemented = errors.New("not implemented")

type Store struct {
	LoadFunc   func(ctx context.Context) ([]shiptracker.Shipment, error)
	AppendFunc func(ctx context.Context, shipments ...shiptracker.Shipment) error
}

func (m Store) Load(ctx context.Context) ([]shiptracker.Shipment, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx)
	}
	return nil, ErrNotImplemented
}

func (m Store) Append(ctx context.Context, shipments ...shiptracker.Shipment) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, shipments...)
	}
	return ErrNotImplemented
}

type Clock struct {
	T time.Time
}

func (m Clock) Now() time.Time {
	return m.T
}

// Publisher records every notification it receives.
type Publisher struct {
	mu            sync.Mutex
	notifications []shiptracker.Notification
}

func (m *Publisher) Publish(n shiptracker.Notification) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifications = append(m.notifications, n)
}

func (m *Publisher) Notifications() []shiptracker.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]shiptracker.Notification(nil), m.notifications...)
}
