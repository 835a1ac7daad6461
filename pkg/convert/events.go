package convert

import (
	"sync"
	"time"

	"github.com/urmzd/sdfwot/pkg/document"
)

// Event reports a finished conversion attempt to subscribers.
type Event struct {
	ID        string        `json:"id"`
	From      document.Kind `json:"from"`
	To        document.Kind `json:"to"`
	Status    string        `json:"status"`
	Source    string        `json:"source,omitempty"`
	Error     string        `json:"error,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// subscriberBuffer is the capacity of each subscription channel.
const subscriberBuffer = 16

// Broadcaster fans conversion events out to subscribers. Slow subscribers
// miss events rather than block conversions.
type Broadcaster struct {
	mu          sync.Mutex
	subscribers []chan Event
}

// NewBroadcaster creates an empty broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{}
}

// Subscribe returns a channel that receives every published event.
func (b *Broadcaster) Subscribe() chan Event {
	ch := make(chan Event, subscriberBuffer)
	b.mu.Lock()
	b.subscribers = append(b.subscribers, ch)
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes and closes a subscription.
func (b *Broadcaster) Unsubscribe(ch chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, sub := range b.subscribers {
		if sub == ch {
			b.subscribers = append(b.subscribers[:i], b.subscribers[i+1:]...)
			close(ch)
			return
		}
	}
}

// Publish sends evt to every subscriber that has room for it.
func (b *Broadcaster) Publish(evt Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- evt:
		default:
		}
	}
}

// WithEvents publishes every conversion attempt on b.
func WithEvents(b *Broadcaster) Option {
	return func(s *Service) {
		s.events = b
	}
}
