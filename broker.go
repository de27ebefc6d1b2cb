package shiptracker

import (
	"sync"
	"sync/atomic"
)

// Notification is an Event as delivered by the host, numbered in publication order.
type Notification struct {
	Seq       uint64    `json:"seq"`
	Type      EventType `json:"type"`
	Event     Event     `json:"event"`
	EmittedAt string    `json:"emitted_at"`
}

// Publisher receives the notifications of a Host.
type Publisher interface {
	Publish(n Notification)
}

// Broker fans notifications out to its subscribers from a single goroutine.
// A subscriber whose buffer is full misses the notification; the miss is counted in Dropped.
type Broker struct {
	in   chan Notification
	done chan struct{}
	wg   sync.WaitGroup

	mu     sync.Mutex
	subs   map[*Subscription]struct{}
	closed bool
	once   sync.Once
}

// Subscription receives notifications on C until it is unsubscribed or the broker is closed,
// at which point C is closed.
type Subscription struct {
	C <-chan Notification

	c       chan Notification
	broker  *Broker
	dropped atomic.Uint64
	once    sync.Once
}

func NewBroker(buffer int) *Broker {
	if buffer < 0 {
		buffer = 0
	}
	b := &Broker{
		in:   make(chan Notification, buffer),
		done: make(chan struct{}),
		subs: make(map[*Subscription]struct{}),
	}
	b.wg.Add(1)
	go b.run()
	return b
}

func (b *Broker) run() {
	defer b.wg.Done()
	for {
		select {
		case <-b.done:
			b.mu.Lock()
			for s := range b.subs {
				delete(b.subs, s)
				s.close()
			}
			b.mu.Unlock()
			return
		case n := <-b.in:
			b.fanOut(n)
		}
	}
}

func (b *Broker) fanOut(n Notification) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for s := range b.subs {
		select {
		case s.c <- n:
		default:
			s.dropped.Add(1)
		}
	}
}

// Publish hands a notification to the broker. It is a no-op once the broker is closed.
func (b *Broker) Publish(n Notification) {
	select {
	case <-b.done:
	case b.in <- n:
	}
}

// Subscribe registers a subscriber with a buffer of the given size.
// Subscribing to a closed broker returns a subscription whose channel is already closed.
func (b *Broker) Subscribe(buffer int) *Subscription {
	if buffer < 0 {
		buffer = 0
	}
	c := make(chan Notification, buffer)
	s := &Subscription{C: c, c: c, broker: b}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		s.close()
		return s
	}
	b.subs[s] = struct{}{}
	return s
}

// Close stops the dispatch goroutine and closes every subscription. It is safe to call more than once.
func (b *Broker) Close() {
	b.once.Do(func() {
		b.mu.Lock()
		b.closed = true
		b.mu.Unlock()
		close(b.done)
		b.wg.Wait()
	})
}

// Unsubscribe stops delivery and closes C.
func (s *Subscription) Unsubscribe() {
	s.broker.mu.Lock()
	defer s.broker.mu.Unlock()
	delete(s.broker.subs, s)
	s.close()
}

// Dropped returns the number of notifications this subscriber missed because its buffer was full.
func (s *Subscription) Dropped() uint64 {
	return s.dropped.Load()
}

func (s *Subscription) close() {
	s.once.Do(func() {
		close(s.c)
	})
}
