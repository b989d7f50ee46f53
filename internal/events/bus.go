package events

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// Subscriber handles one event. Subscribers run synchronously on the
// publisher's goroutine; their errors and panics stay inside the bus.
type Subscriber func(ctx context.Context, event Event) error

// Bus is an in-process publish/subscribe registry keyed by event kind.
// Subscribers for a kind are invoked in registration order.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[Kind][]Subscriber
	logger      *logrus.Logger
}

// NewBus creates an empty event bus.
func NewBus(logger *logrus.Logger) *Bus {
	if logger == nil {
		logger = logrus.New()
	}
	return &Bus{
		subscribers: make(map[Kind][]Subscriber),
		logger:      logger,
	}
}

// Subscribe registers fn for the given event kind.
func (b *Bus) Subscribe(kind Kind, fn Subscriber) {
	if fn == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[kind] = append(b.subscribers[kind], fn)
}

// Publish delivers the event to every subscriber of its kind, in order.
// Publishing is fire-and-forget: a failing or panicking subscriber is logged
// and the remaining subscribers still run. Nothing propagates to the caller.
func (b *Bus) Publish(ctx context.Context, event Event) {
	b.mu.RLock()
	subscribers := make([]Subscriber, len(b.subscribers[event.Kind()]))
	copy(subscribers, b.subscribers[event.Kind()])
	b.mu.RUnlock()

	for i, fn := range subscribers {
		b.dispatch(ctx, event, i, fn)
	}
}

func (b *Bus) dispatch(ctx context.Context, event Event, index int, fn Subscriber) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.WithFields(logrus.Fields{
				"event":      event.Kind(),
				"subscriber": index,
				"panic":      r,
			}).Error("event subscriber panicked")
		}
	}()

	if err := fn(ctx, event); err != nil {
		b.logger.WithFields(logrus.Fields{
			"event":      event.Kind(),
			"subscriber": index,
		}).WithError(err).Error("event subscriber failed")
	}
}
