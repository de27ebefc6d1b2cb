package mock_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/vvatanabe/shiptracker"
	"github.com/vvatanabe/shiptracker/internal/mock"
)

func TestMockStore(t *testing.T) {
	ctx := context.Background()
	notImplemented := mock.Store{}
	if _, err := notImplemented.Load(ctx); !errors.Is(err, mock.ErrNotImplemented) {
		t.Errorf("Load() error = %v, want %v", err, mock.ErrNotImplemented)
	}
	if err := notImplemented.Append(ctx); !errors.Is(err, mock.ErrNotImplemented) {
		t.Errorf("Append() error = %v, want %v", err, mock.ErrNotImplemented)
	}

	var appended []shiptracker.Shipment
	implemented := mock.Store{
		LoadFunc: func(ctx context.Context) ([]shiptracker.Shipment, error) {
			return []shiptracker.Shipment{{ID: 0}}, nil
		},
		AppendFunc: func(ctx context.Context, shipments ...shiptracker.Shipment) error {
			appended = append(appended, shipments...)
			return nil
		},
	}
	got, err := implemented.Load(ctx)
	if err != nil || len(got) != 1 {
		t.Errorf("Load() = %v, %v, want 1 shipment", got, err)
	}
	if err := implemented.Append(ctx, shiptracker.Shipment{ID: 1}); err != nil {
		t.Errorf("Append() error = %v", err)
	}
	if !reflect.DeepEqual(appended, []shiptracker.Shipment{{ID: 1}}) {
		t.Errorf("Append() recorded %v", appended)
	}
}

func TestMockClock(t *testing.T) {
	now := time.Date(2023, time.December, 1, 12, 0, 0, 0, time.UTC)
	c := mock.Clock{T: now}
	if !c.Now().Equal(now) {
		t.Errorf("Now() = %v, want %v", c.Now(), now)
	}
}

func TestMockPublisher(t *testing.T) {
	p := &mock.Publisher{}
	p.Publish(shiptracker.Notification{Seq: 1})
	p.Publish(shiptracker.Notification{Seq: 2})
	got := p.Notifications()
	if len(got) != 2 || got[0].Seq != 1 || got[1].Seq != 2 {
		t.Errorf("Notifications() = %+v", got)
	}
}
