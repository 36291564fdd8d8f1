package scan

import (
	"context"
	"path/filepath"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rstr/internal/domain"
	"rstr/internal/eventbus"
)

// eventCollector records bus traffic for assertions
type eventCollector struct {
	mu        sync.Mutex
	matches   []domain.Match
	completed chan eventbus.ScanCompletedEvent
}

func newEventCollector(bus eventbus.EventBus) *eventCollector {
	c := &eventCollector{completed: make(chan eventbus.ScanCompletedEvent, 1)}
	bus.Subscribe(eventbus.EventMatchFound, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.MatchFoundEvent); ok {
			c.mu.Lock()
			c.matches = append(c.matches, event.Match)
			c.mu.Unlock()
		}
	})
	bus.Subscribe(eventbus.EventScanCompleted, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ScanCompletedEvent); ok {
			c.completed <- event
		}
	})
	return c
}

func (c *eventCollector) waitCompleted(t *testing.T) eventbus.ScanCompletedEvent {
	t.Helper()
	select {
	case e := <-c.completed:
		return e
	case <-time.After(5 * time.Second):
		t.Fatal("scan did not complete in time")
		return eventbus.ScanCompletedEvent{}
	}
}

func (c *eventCollector) collected() []domain.Match {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Match, len(c.matches))
	copy(out, c.matches)
	return out
}

func TestScanServiceStreamsMatchesInDiscoveryOrder(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "TODO one\nplain\nTODO two\n")
	writeFile(t, filepath.Join(root, "b.txt"), "nothing\n")
	writeFile(t, filepath.Join(root, "sub", "c.txt"), "TODO three\n")

	bus := eventbus.New()
	collector := newEventCollector(bus)

	svc := NewScanService(bus, regexp.MustCompile("TODO"))
	require.NoError(t, svc.StartScan(context.Background(), root))

	done := collector.waitCompleted(t)
	assert.False(t, done.Canceled)
	assert.Equal(t, 3, done.FilesScanned)
	assert.Equal(t, 3, done.MatchesFound)

	matches := collector.collected()
	require.Len(t, matches, 3)
	// Traversal order, then line order within a file
	assert.Equal(t, filepath.Join(root, "a.txt"), matches[0].FilePath)
	assert.Equal(t, 1, matches[0].LineNumber)
	assert.Equal(t, filepath.Join(root, "a.txt"), matches[1].FilePath)
	assert.Equal(t, 3, matches[1].LineNumber)
	assert.Equal(t, filepath.Join(root, "sub", "c.txt"), matches[2].FilePath)
}

func TestScanServiceEmptyDirectory(t *testing.T) {
	bus := eventbus.New()
	collector := newEventCollector(bus)

	svc := NewScanService(bus, regexp.MustCompile("TODO"))
	require.NoError(t, svc.StartScan(context.Background(), t.TempDir()))

	done := collector.waitCompleted(t)
	assert.Equal(t, 0, done.FilesScanned)
	assert.Equal(t, 0, done.MatchesFound)
	assert.Empty(t, collector.collected())
}

func TestScanServiceCanceledBeforeStart(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "TODO\n")

	bus := eventbus.New()
	collector := newEventCollector(bus)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := NewScanService(bus, regexp.MustCompile("TODO"))
	require.NoError(t, svc.StartScan(ctx, root))

	done := collector.waitCompleted(t)
	assert.True(t, done.Canceled)
	assert.Empty(t, collector.collected())
}

func TestScanServiceStopScanWaitsForWorker(t *testing.T) {
	root := t.TempDir()
	for i := 0; i < 50; i++ {
		writeFile(t, filepath.Join(root, "dir", string(rune('a'+i%26))+"file.txt"), "TODO\n")
	}

	bus := eventbus.New()
	newEventCollector(bus)

	svc := NewScanService(bus, regexp.MustCompile("TODO"))
	require.NoError(t, svc.StartScan(context.Background(), root))

	// Must return only after the worker goroutine has exited
	svc.StopScan()

	// A fresh scan may start once the previous one has stopped
	require.NoError(t, svc.StartScan(context.Background(), root))
	svc.StopScan()
}
