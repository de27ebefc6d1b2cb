package shiptracker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"slices"
	"sync"

	"github.com/vvatanabe/shiptracker/internal/clock"
	"go.uber.org/zap"
)

// Method names accepted by Host.Call.
const (
	MethodInit            = "init"
	MethodCreateShipment  = "create_shipment"
	MethodTrackShipment   = "track_shipment"
	MethodGetAllShipments = "get_all_shipments"
)

// HostOptions defines configuration options for a Host.
//
// Note: Clock is primarily used for testing purposes.
type HostOptions struct {
	// Logger receives the host's own lines as well as the ledger's diagnostic lines.
	Logger *zap.Logger
	// Publisher receives the events of every successful call. Events are discarded when nil.
	Publisher Publisher
	// Clock stamps EmittedAt of every notification.
	Clock clock.Clock
}

// WithHostLogger is an option function to set the logger of a Host.
func WithHostLogger(logger *zap.Logger) func(*HostOptions) {
	return func(o *HostOptions) {
		o.Logger = logger
	}
}

// WithPublisher is an option function to set where the notifications of a Host are delivered.
func WithPublisher(publisher Publisher) func(*HostOptions) {
	return func(o *HostOptions) {
		o.Publisher = publisher
	}
}

// WithClock is an option function to set the clock used for notification timestamps.
func WithClock(c clock.Clock) func(*HostOptions) {
	return func(o *HostOptions) {
		if c != nil {
			o.Clock = c
		}
	}
}

// Host runs ledger operations on behalf of callers. Around each call it loads the ledger from its Store,
// stores the shipments the call appended and then publishes the events the call emitted.
// Calls are serialized, so a Host is safe for concurrent use.
type Host struct {
	mu        sync.Mutex
	store     Store
	logger    *zap.Logger
	publisher Publisher
	clock     clock.Clock
	seq       uint64
}

func NewHost(store Store, optFns ...func(*HostOptions)) *Host {
	o := &HostOptions{
		Logger: zap.NewNop(),
		Clock:  clock.RealClock{},
	}
	for _, opt := range optFns {
		opt(o)
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return &Host{
		store:     store,
		logger:    o.Logger,
		publisher: o.Publisher,
		clock:     o.Clock,
	}
}

func (h *Host) withLedger(ctx context.Context, method string, fn func(l *Ledger) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	persisted, err := h.store.Load(ctx)
	if err != nil {
		h.logger.Error("failed to load ledger", zap.String("method", method), zap.Error(err))
		return err
	}
	events := &EventBuffer{}
	l, err := Restore(persisted, WithEventSink(events), WithLogger(h.logger))
	if err != nil {
		h.logger.Error("failed to restore ledger", zap.String("method", method), zap.Error(err))
		return err
	}
	before := l.Len()
	if err := fn(l); err != nil {
		return err
	}
	if l.Len() > before {
		if err := h.store.Append(ctx, slices.Clone(l.shipments[before:])...); err != nil {
			h.logger.Error("failed to store ledger", zap.String("method", method), zap.Error(err))
			return err
		}
	}
	h.publish(events.Drain())
	return nil
}

func (h *Host) publish(events []Event) {
	if h.publisher == nil {
		return
	}
	for _, e := range events {
		h.seq++
		h.publisher.Publish(Notification{
			Seq:       h.seq,
			Type:      e.EventType(),
			Event:     e,
			EmittedAt: clock.FormatRFC3339Nano(h.clock.Now()),
		})
	}
}

// Init sets up a fresh ledger. An empty ledger needs nothing to be stored,
// so Init only checks that no shipment exists yet and returns an AlreadyInitializedError otherwise.
func (h *Host) Init(ctx context.Context) error {
	return h.withLedger(ctx, MethodInit, func(l *Ledger) error {
		if l.Len() > 0 {
			return &AlreadyInitializedError{Len: l.Len()}
		}
		h.logger.Info("ledger initialized")
		return nil
	})
}

func (h *Host) CreateShipment(ctx context.Context, params *CreateShipmentInput) (Shipment, error) {
	var created Shipment
	err := h.withLedger(ctx, MethodCreateShipment, func(l *Ledger) error {
		created = l.CreateShipment(params)
		return nil
	})
	if err != nil {
		return Shipment{}, err
	}
	return created, nil
}

// TrackShipment reports found as false, with a nil error, when no shipment has the id.
func (h *Host) TrackShipment(ctx context.Context, id int) (shipment Shipment, found bool, err error) {
	err = h.withLedger(ctx, MethodTrackShipment, func(l *Ledger) error {
		shipment, found = l.TrackShipment(id)
		return nil
	})
	if err != nil {
		return Shipment{}, false, err
	}
	return shipment, found, nil
}

func (h *Host) GetAllShipments(ctx context.Context) ([]Shipment, error) {
	var all []Shipment
	err := h.withLedger(ctx, MethodGetAllShipments, func(l *Ledger) error {
		all = l.GetAllShipments()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return all, nil
}

// TrackShipmentArgs are the arguments of the track_shipment method.
type TrackShipmentArgs struct {
	ID *int `json:"id"`
}

// Call dispatches a method by name with its arguments given as a JSON object.
// track_shipment returns a *Shipment that is nil when no shipment has the id.
func (h *Host) Call(ctx context.Context, method string, args json.RawMessage) (any, error) {
	switch method {
	case MethodInit:
		return nil, h.Init(ctx)
	case MethodCreateShipment:
		var params CreateShipmentInput
		if err := decodeArgs(args, &params); err != nil {
			return nil, &InvalidArgumentError{Method: method, Cause: err}
		}
		created, err := h.CreateShipment(ctx, &params)
		if err != nil {
			return nil, err
		}
		return &created, nil
	case MethodTrackShipment:
		var params TrackShipmentArgs
		if err := decodeArgs(args, &params); err != nil {
			return nil, &InvalidArgumentError{Method: method, Cause: err}
		}
		if params.ID == nil {
			return nil, &InvalidArgumentError{Method: method, Cause: errors.New("id is required")}
		}
		shipment, found, err := h.TrackShipment(ctx, *params.ID)
		if err != nil {
			return nil, err
		}
		if !found {
			return (*Shipment)(nil), nil
		}
		return &shipment, nil
	case MethodGetAllShipments:
		return h.GetAllShipments(ctx)
	default:
		return nil, &UnknownMethodError{Method: method}
	}
}

func decodeArgs(args json.RawMessage, out any) error {
	args = bytes.TrimSpace(args)
	if len(args) == 0 || bytes.Equal(args, []byte("null")) {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(args))
	dec.DisallowUnknownFields()
	return dec.Decode(out)
}
