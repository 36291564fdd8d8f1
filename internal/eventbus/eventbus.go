package eventbus

import (
	"log"
	"runtime/debug"
	"sync"

	"rstr/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventMatchFound    = domain.EventMatchFound
	EventScanStarted   = domain.EventScanStarted
	EventScanProgress  = domain.EventScanProgress
	EventScanCompleted = domain.EventScanCompleted
	EventError         = domain.EventError
)

// Re-export domain event types
type MatchFoundEvent = domain.MatchFoundEvent
type ScanStartedEvent = domain.ScanStartedEvent
type ScanProgressEvent = domain.ScanProgressEvent
type ScanCompletedEvent = domain.ScanCompletedEvent
type ErrorEvent = domain.ErrorEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
}

// subscription pairs a handler with a stable identity so unsubscribing
// one never removes another.
type subscription struct {
	id      uint64
	handler EventHandler
}

// bus is the concrete implementation of EventBus
type bus struct {
	mu        sync.RWMutex
	handlers  map[EventType][]subscription
	nextID    uint64
	eventChan chan DomainEvent
	wg        sync.WaitGroup
}

// New creates a new event bus
func New() EventBus {
	b := &bus{
		handlers:  make(map[EventType][]subscription),
		eventChan: make(chan DomainEvent, 1000),
	}

	// Start the event dispatcher
	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish publishes an event to all subscribers. Delivery is lossless:
// when the buffer is full the caller blocks until the dispatcher
// catches up. The result set is fed entirely through this path, so a
// burst of matches must never be dropped.
func (b *bus) Publish(event DomainEvent) {
	b.eventChan <- event
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, sub := range subs {
			if sub.id == id {
				b.handlers[eventType] = append(subs[:i], subs[i+1:]...)
				return
			}
		}
	}
}

// dispatch handles event distribution to subscribers
func (b *bus) dispatch() {
	defer b.wg.Done()

	for event := range b.eventChan {
		b.mu.RLock()
		subs := b.handlers[event.Type()]
		// Copy so handlers can subscribe/unsubscribe without holding the lock
		subsCopy := make([]subscription, len(subs))
		copy(subsCopy, subs)
		b.mu.RUnlock()

		for _, sub := range subsCopy {
			func(h EventHandler) {
				defer func() {
					if r := recover(); r != nil {
						log.Printf("Event handler panic for %s: %v\nStack: %s", event.Type(), r, debug.Stack())
					}
				}()
				h(event)
			}(sub.handler)
		}
	}
}
