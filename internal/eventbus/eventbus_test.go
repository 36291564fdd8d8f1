package eventbus

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rstr/internal/domain"
)

func TestBusDeliversToSubscriber(t *testing.T) {
	bus := New()
	received := make(chan DomainEvent, 1)

	bus.Subscribe(EventScanStarted, func(e DomainEvent) {
		received <- e
	})

	bus.Publish(ScanStartedEvent{Root: "/tmp", Pattern: "TODO"})

	select {
	case e := <-received:
		event, ok := e.(ScanStartedEvent)
		require.True(t, ok)
		assert.Equal(t, "/tmp", event.Root)
		assert.Equal(t, "TODO", event.Pattern)
	case <-time.After(time.Second):
		t.Fatal("event was not delivered")
	}
}

func TestBusPreservesPublishOrder(t *testing.T) {
	bus := New()
	received := make(chan int, 10)

	bus.Subscribe(EventMatchFound, func(e DomainEvent) {
		if event, ok := e.(MatchFoundEvent); ok {
			received <- event.Match.LineNumber
		}
	})

	for i := 1; i <= 10; i++ {
		bus.Publish(MatchFoundEvent{Match: domain.Match{LineNumber: i}})
	}

	for i := 1; i <= 10; i++ {
		select {
		case got := <-received:
			require.Equal(t, i, got, "events must be dispatched in publish order")
		case <-time.After(time.Second):
			t.Fatal("event was not delivered")
		}
	}
}

func TestBusDeliversEveryEventUnderBackpressure(t *testing.T) {
	bus := New()

	var mu sync.Mutex
	received := 0
	completed := make(chan struct{})

	// A handler slower than the publisher, so the channel buffer fills
	bus.Subscribe(EventMatchFound, func(e DomainEvent) {
		time.Sleep(100 * time.Microsecond)
		mu.Lock()
		received++
		mu.Unlock()
	})
	bus.Subscribe(EventScanCompleted, func(e DomainEvent) {
		close(completed)
	})

	const total = 3000 // well past the channel buffer
	go func() {
		for i := 1; i <= total; i++ {
			bus.Publish(MatchFoundEvent{Match: domain.Match{LineNumber: i}})
		}
		bus.Publish(ScanCompletedEvent{MatchesFound: total})
	}()

	select {
	case <-completed:
	case <-time.After(30 * time.Second):
		t.Fatal("completion event never arrived")
	}

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, total, received, "every published match must reach the handler")
}

func TestBusUnsubscribeRemovesOnlyItsHandler(t *testing.T) {
	bus := New()
	received := make(chan string, 3)

	unsubFirst := bus.Subscribe(EventError, func(DomainEvent) { received <- "first" })
	unsubSecond := bus.Subscribe(EventError, func(DomainEvent) { received <- "second" })
	bus.Subscribe(EventError, func(DomainEvent) { received <- "third" })

	// Removing an earlier subscriber must not shift which handler the
	// later unsubscribe removes
	unsubFirst()
	unsubSecond()

	bus.Publish(ErrorEvent{Message: "x"})

	select {
	case got := <-received:
		assert.Equal(t, "third", got)
	case <-time.After(time.Second):
		t.Fatal("remaining handler did not receive the event")
	}
	select {
	case got := <-received:
		t.Fatalf("unsubscribed handler %q still received the event", got)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBusIgnoresOtherEventTypes(t *testing.T) {
	bus := New()
	received := make(chan DomainEvent, 1)

	bus.Subscribe(EventError, func(e DomainEvent) {
		received <- e
	})

	bus.Publish(ScanCompletedEvent{})

	select {
	case <-received:
		t.Fatal("handler should not see events of other types")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBusRecoversFromHandlerPanic(t *testing.T) {
	bus := New()
	received := make(chan DomainEvent, 1)

	bus.Subscribe(EventError, func(e DomainEvent) {
		panic("boom")
	})
	bus.Subscribe(EventError, func(e DomainEvent) {
		received <- e
	})

	bus.Publish(ErrorEvent{Message: "still delivered"})

	select {
	case e := <-received:
		event, ok := e.(ErrorEvent)
		require.True(t, ok)
		assert.Equal(t, "still delivered", event.Message)
	case <-time.After(time.Second):
		t.Fatal("a panicking handler must not stop delivery to others")
	}
}
