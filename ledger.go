package shiptracker

import (
	"fmt"
	"slices"

	"go.uber.org/zap"
)

// LedgerOptions defines configuration options for a Ledger.
type LedgerOptions struct {
	// EventSink receives ShipmentCreated and ShipmentTracked events. Events are discarded when nil.
	EventSink EventSink
	// Logger receives one diagnostic line per operation. Nothing is logged when nil.
	Logger *zap.Logger
}

// WithEventSink is an option function to set the sink that receives the events emitted by the ledger.
func WithEventSink(sink EventSink) func(*LedgerOptions) {
	return func(o *LedgerOptions) {
		o.EventSink = sink
	}
}

// WithLogger is an option function to set the logger used for the diagnostic lines of the ledger.
// The lines are informational only.
func WithLogger(logger *zap.Logger) func(*LedgerOptions) {
	return func(o *LedgerOptions) {
		o.Logger = logger
	}
}

// Ledger is an ordered, append-only collection of shipments.
// The id of every shipment equals its position, so the length of the ledger is the next id.
//
// A Ledger does no locking of its own. The owner must serialize calls against the same instance.
type Ledger struct {
	shipments []Shipment
	sink      EventSink
	logger    *zap.Logger
}

// New creates an empty ledger.
func New(optFns ...func(*LedgerOptions)) *Ledger {
	o := &LedgerOptions{}
	for _, opt := range optFns {
		opt(o)
	}
	l := &Ledger{
		sink:   o.EventSink,
		logger: o.Logger,
	}
	if l.sink == nil {
		l.sink = discardSink{}
	}
	if l.logger == nil {
		l.logger = zap.NewNop()
	}
	return l
}

// Restore rebuilds a ledger from a previously persisted sequence of shipments.
// It returns a CorruptLedgerError if any shipment is not stored at the position equal to its id.
func Restore(shipments []Shipment, optFns ...func(*LedgerOptions)) (*Ledger, error) {
	for i, s := range shipments {
		if s.ID != i {
			return nil, &CorruptLedgerError{Position: i, ID: s.ID}
		}
	}
	l := New(optFns...)
	l.shipments = slices.Clone(shipments)
	return l, nil
}

// CreateShipment appends a new shipment with the next id and the status StatusCreated.
// A ShipmentCreated event carrying the id of the new shipment is emitted before it is appended.
// A nil params is treated as four empty values.
func (l *Ledger) CreateShipment(params *CreateShipmentInput) Shipment {
	if params == nil {
		params = &CreateShipmentInput{}
	}
	l.logger.Info(fmt.Sprintf("Creating shipment for product: %q from %q to %q",
		params.ProductName, params.LocationOrigin, params.LocationDestination),
		zap.String("product_name", params.ProductName),
		zap.String("location_origin", params.LocationOrigin),
		zap.String("location_destination", params.LocationDestination))

	id := len(l.shipments)
	l.sink.Emit(ShipmentCreated{
		ID:                  id,
		ProductName:         params.ProductName,
		LocationOrigin:      params.LocationOrigin,
		LocationDestination: params.LocationDestination,
	})
	l.shipments = append(l.shipments, newShipment(id, params))
	return l.shipments[id]
}

// TrackShipment looks up the shipment whose id is the given one.
// The second return value is false when no shipment has that id; this is a normal outcome, not an error,
// and no event is emitted for it. Otherwise a ShipmentTracked event is emitted.
func (l *Ledger) TrackShipment(id int) (Shipment, bool) {
	l.logger.Info(fmt.Sprintf("Tracking shipment with id: %d", id), zap.Int("id", id))
	if id < 0 || id >= len(l.shipments) {
		return Shipment{}, false
	}
	s := l.shipments[id]
	l.sink.Emit(ShipmentTracked{
		ID:            id,
		CurrentStatus: s.Status,
	})
	return s, true
}

// GetAllShipments returns every shipment in creation order.
// The returned slice is a copy; changing it does not affect the ledger.
func (l *Ledger) GetAllShipments() []Shipment {
	l.logger.Info("Getting all shipments", zap.Int("count", len(l.shipments)))
	if len(l.shipments) == 0 {
		return []Shipment{}
	}
	return slices.Clone(l.shipments)
}

// Len returns the number of shipments, which is also the id the next shipment will receive.
func (l *Ledger) Len() int {
	return len(l.shipments)
}
