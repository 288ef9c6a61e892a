package events

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"mcpmanager/pkg/logging"
)

const subsystem = "Events"

// Event is one notification delivered to subscribers. Events carry a unique
// ID and a timestamp so consumers can deduplicate and order them.
type Event struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	Timestamp time.Time              `json:"timestamp"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
}

// Broadcaster fans events out to registered subscribers. Delivery is
// non-blocking per subscriber: a full channel drops the event for that
// subscriber and logs it, so one slow consumer cannot stall the emitter.
type Broadcaster struct {
	mu          sync.RWMutex
	subscribers map[string]chan Event
	bufSize     int
}

// NewBroadcaster creates a broadcaster with the given per-subscriber buffer.
func NewBroadcaster(bufSize int) *Broadcaster {
	if bufSize <= 0 {
		bufSize = 16
	}
	return &Broadcaster{
		subscribers: make(map[string]chan Event),
		bufSize:     bufSize,
	}
}

// Subscribe registers a new subscriber and returns its channel together with
// an unsubscribe function. The channel is closed on unsubscribe.
func (b *Broadcaster) Subscribe() (<-chan Event, func()) {
	id := uuid.New().String()
	ch := make(chan Event, b.bufSize)

	b.mu.Lock()
	b.subscribers[id] = ch
	b.mu.Unlock()

	logging.Debug(subsystem, "Subscriber %s registered", id)

	return ch, func() {
		b.mu.Lock()
		if existing, ok := b.subscribers[id]; ok {
			delete(b.subscribers, id)
			close(existing)
		}
		b.mu.Unlock()
	}
}

// Emit delivers an event to all current subscribers. Implements the notifier
// contract of the config store.
func (b *Broadcaster) Emit(name string, payload map[string]interface{}) {
	event := Event{
		ID:        uuid.New().String(),
		Name:      name,
		Timestamp: time.Now(),
		Payload:   payload,
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for id, ch := range b.subscribers {
		select {
		case ch <- event:
		default:
			logging.Warn(subsystem, "Dropped event %s for slow subscriber %s", name, id)
		}
	}
}

// SubscriberCount returns the number of active subscribers.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// Close unsubscribes everyone and closes their channels.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, ch := range b.subscribers {
		delete(b.subscribers, id)
		close(ch)
	}
}
