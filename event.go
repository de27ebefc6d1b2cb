package shiptracker

// EventType names the shape of an Event.
type EventType string

const (
	EventTypeShipmentCreated EventType = "ShipmentCreated"
	EventTypeShipmentTracked EventType = "ShipmentTracked"
)

// Event is a domain notification emitted by the Ledger.
// The concrete types are ShipmentCreated and ShipmentTracked.
type Event interface {
	EventType() EventType
}

// ShipmentCreated is emitted once per CreateShipment call.
type ShipmentCreated struct {
	ID                  int    `json:"id"`
	ProductName         string `json:"product_name"`
	LocationOrigin      string `json:"location_origin"`
	LocationDestination string `json:"location_destination"`
}

func (ShipmentCreated) EventType() EventType {
	return EventTypeShipmentCreated
}

// ShipmentTracked is emitted when TrackShipment finds the requested shipment.
type ShipmentTracked struct {
	ID            int    `json:"id"`
	CurrentStatus string `json:"current_status"`
}

func (ShipmentTracked) EventType() EventType {
	return EventTypeShipmentTracked
}

// EventSink receives the events emitted by a Ledger.
type EventSink interface {
	Emit(event Event)
}

// EventSinkFunc adapts a function to the EventSink interface.
type EventSinkFunc func(event Event)

func (f EventSinkFunc) Emit(event Event) {
	f(event)
}

// EventBuffer is an EventSink that keeps emitted events in order until they are drained.
type EventBuffer struct {
	events []Event
}

func (b *EventBuffer) Emit(event Event) {
	b.events = append(b.events, event)
}

// Events returns the buffered events in emission order.
func (b *EventBuffer) Events() []Event {
	return append([]Event(nil), b.events...)
}

// Drain returns the buffered events and empties the buffer.
func (b *EventBuffer) Drain() []Event {
	events := b.events
	b.events = nil
	return events
}

type discardSink struct{}

func (discardSink) Emit(Event) {}
